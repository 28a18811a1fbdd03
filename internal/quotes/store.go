// Package quotes persists priced estimates as immutable snapshots.
package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cleanquote/internal/pricing"
)

var ErrNotFound = errors.New("quote not found")

// Quote is a saved estimate. Breakdown and Adjustment are read back exactly as
// they were stored; nothing is recomputed.
type Quote struct {
	ID         uuid.UUID                 `json:"id"`
	Number     string                    `json:"number"`
	Title      string                    `json:"title"`
	Notes      string                    `json:"notes"`
	CreatedAt  time.Time                 `json:"created_at"`
	Job        pricing.JobDescription    `json:"job"`
	Breakdown  pricing.Breakdown         `json:"breakdown"`
	Adjustment *pricing.AdjustmentResult `json:"adjustment,omitempty"`
	TotalPrice decimal.Decimal           `json:"total_price"`
}

// Summary is one row of the quote list.
type Summary struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	Title      string          `json:"title"`
	CreatedAt  time.Time       `json:"created_at"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type NewQuote struct {
	Title      string
	Notes      string
	Job        pricing.JobDescription
	Breakdown  pricing.Breakdown
	Adjustment *pricing.AdjustmentResult
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Number formats a quote number from its year and sequence.
func Number(year int, seq int64) string {
	return fmt.Sprintf("Q-%d-%04d", year, seq)
}

// Save stores a snapshot and assigns its ID and sequential number.
func (s *Store) Save(ctx context.Context, in NewQuote) (Quote, error) {
	const operation = "quotes.Save"

	q := Quote{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  s.now().UTC().Truncate(time.Second),
		Job:        in.Job,
		Breakdown:  in.Breakdown,
		Adjustment: in.Adjustment,
		TotalPrice: in.Breakdown.TotalPrice,
	}
	if in.Adjustment != nil {
		q.TotalPrice = in.Adjustment.TotalPrice
	}

	jobJSON, err := json.Marshal(q.Job)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: marshal job: %w", operation, err)
	}
	breakdownJSON, err := json.Marshal(q.Breakdown)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: marshal breakdown: %w", operation, err)
	}
	var adjustmentJSON sql.NullString
	if q.Adjustment != nil {
		raw, err := json.Marshal(q.Adjustment)
		if err != nil {
			return Quote{}, fmt.Errorf("%s: marshal adjustment: %w", operation, err)
		}
		adjustmentJSON = sql.NullString{String: string(raw), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: begin transaction: %w", operation, err)
	}
	defer func() { _ = tx.Rollback() }()

	year := q.CreatedAt.Year()
	var seq int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO quote_counters (year, last_seq) VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = last_seq + 1
		RETURNING last_seq
	`, year).Scan(&seq)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: next quote number: %w", operation, err)
	}
	q.Number = Number(year, seq)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quotes (
			id, number, title, notes, created_at, job_json, breakdown_json, adjustment_json, total_price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.ID.String(),
		q.Number,
		q.Title,
		q.Notes,
		q.CreatedAt.Format(time.RFC3339),
		string(jobJSON),
		string(breakdownJSON),
		adjustmentJSON,
		q.TotalPrice.StringFixed(2),
	); err != nil {
		return Quote{}, fmt.Errorf("%s: insert quote: %w", operation, err)
	}

	if err := tx.Commit(); err != nil {
		return Quote{}, fmt.Errorf("%s: commit: %w", operation, err)
	}
	return q, nil
}

// List returns quotes newest first. A non-empty query filters on title and notes.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	const operation = "quotes.List"

	query = strings.TrimSpace(query)
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, title, created_at, total_price
		FROM quotes
		WHERE (? = '' OR title LIKE ? ESCAPE '\' OR notes LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, number DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", operation, err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			item               Summary
			id, created, total string
		)
		if err := rows.Scan(&id, &item.Number, &item.Title, &created, &total); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", operation, err)
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%s: parse id: %w", operation, err)
		}
		if item.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("%s: parse created_at: %w", operation, err)
		}
		if item.TotalPrice, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("%s: parse total: %w", operation, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", operation, err)
	}
	return out, nil
}

// Get reads one snapshot by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Quote, error) {
	const operation = "quotes.Get"

	var (
		q                               Quote
		created, total, jobJSON, bdJSON string
		adjJSON                         sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT number, title, notes, created_at, job_json, breakdown_json, adjustment_json, total_price
		FROM quotes
		WHERE id = ?
	`, id.String()).Scan(&q.Number, &q.Title, &q.Notes, &created, &jobJSON, &bdJSON, &adjJSON, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, fmt.Errorf("%s: query: %w", operation, err)
	}

	q.ID = id
	if q.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return Quote{}, fmt.Errorf("%s: parse created_at: %w", operation, err)
	}
	if q.TotalPrice, err = decimal.NewFromString(total); err != nil {
		return Quote{}, fmt.Errorf("%s: parse total: %w", operation, err)
	}
	if err := json.Unmarshal([]byte(jobJSON), &q.Job); err != nil {
		return Quote{}, fmt.Errorf("%s: decode job: %w", operation, err)
	}
	if err := json.Unmarshal([]byte(bdJSON), &q.Breakdown); err != nil {
		return Quote{}, fmt.Errorf("%s: decode breakdown: %w", operation, err)
	}
	if adjJSON.Valid {
		q.Adjustment = &pricing.AdjustmentResult{}
		if err := json.Unmarshal([]byte(adjJSON.String), q.Adjustment); err != nil {
			return Quote{}, fmt.Errorf("%s: decode adjustment: %w", operation, err)
		}
	}
	return q, nil
}
