package quotes

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/db"
	"github.com/Simplici0/cleanquote/internal/migrations"
	"github.com/Simplici0/cleanquote/internal/pricing"
	"github.com/Simplici0/cleanquote/internal/rates"
)

func newTestStore(t *testing.T, now time.Time) (*Store, *sql.DB) {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "quotes.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(ctx, database, zap.NewNop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	store := NewStore(database)
	store.now = func() time.Time { return now }
	return store, database
}

func officeJob() pricing.JobDescription {
	return pricing.JobDescription{
		ProjectType:     rates.ProjectOffice,
		CleaningType:    rates.CleaningFinal,
		ServiceCategory: rates.ServiceStandard,
		SquareFootage:   5000,
		DistanceMiles:   20,
		CrewSize:        2,
		ApplyMarkup:     true,
		UrgencyLevel:    1,
	}
}

func newQuote(t *testing.T, title, notes string) NewQuote {
	t.Helper()

	job := officeJob()
	bd, err := pricing.Compute(job)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return NewQuote{Title: title, Notes: notes, Job: job, Breakdown: bd}
}

func TestSaveAssignsSequentialNumbers(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := store.Save(ctx, newQuote(t, "Lobby", ""))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.Save(ctx, newQuote(t, "Suite 200", ""))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}

	if first.Number != "Q-2026-0001" || second.Number != "Q-2026-0002" {
		t.Fatalf("unexpected numbers %q, %q", first.Number, second.Number)
	}
	if first.ID == uuid.Nil || first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %s and %s", first.ID, second.ID)
	}
	if !first.TotalPrice.Equal(decimal.RequireFromString("1524.75")) {
		t.Fatalf("expected total 1524.75, got %s", first.TotalPrice)
	}
}

func TestSaveRestartsNumberingPerYear(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := store.Save(ctx, newQuote(t, "Old", "")); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }
	q, err := store.Save(ctx, newQuote(t, "New", ""))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if q.Number != "Q-2026-0001" {
		t.Fatalf("expected Q-2026-0001, got %q", q.Number)
	}
}

func TestSaveUsesAdjustedTotal(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	in := newQuote(t, "Adjusted", "")
	adj, err := pricing.Adjust(in.Breakdown, pricing.Adjustment{Percent: decimal.NewFromInt(10), Direction: pricing.Markup})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	in.Adjustment = &adj

	q, err := store.Save(context.Background(), in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !q.TotalPrice.Equal(adj.TotalPrice) {
		t.Fatalf("expected adjusted total %s, got %s", adj.TotalPrice, q.TotalPrice)
	}

	got, err := store.Get(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Adjustment == nil || !got.Adjustment.Items.Equal(adj.Items) {
		t.Fatalf("adjustment not read back: %+v", got.Adjustment)
	}
}

func TestListOrdersByDateDescAndFilters(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Time{})
	ctx := context.Background()

	seed := []struct {
		at           time.Time
		title, notes string
	}{
		{time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC), "Bank branch", "night crew"},
		{time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC), "Clinic", "after the bank closes"},
		{time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC), "Warehouse", "dock doors"},
	}
	for _, s := range seed {
		store.now = func() time.Time { return s.at }
		if _, err := store.Save(ctx, newQuote(t, s.title, s.notes)); err != nil {
			t.Fatalf("save %q: %v", s.title, err)
		}
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(all))
	}
	if all[0].Title != "Clinic" || all[1].Title != "Warehouse" || all[2].Title != "Bank branch" {
		t.Fatalf("quotes are not sorted desc by created_at: %+v", all)
	}

	byTitle, err := store.List(ctx, "Ware")
	if err != nil {
		t.Fatalf("list by title: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Title != "Warehouse" {
		t.Fatalf("expected 1 quote filtered by title, got %+v", byTitle)
	}

	byNotes, err := store.List(ctx, "bank")
	if err != nil {
		t.Fatalf("list by notes: %v", err)
	}
	if len(byNotes) != 2 {
		t.Fatalf("expected 2 quotes filtered by notes/title, got %+v", byNotes)
	}
}

func TestGetReadsSnapshotWithoutRecalculation(t *testing.T) {
	t.Parallel()

	store, database := newTestStore(t, time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC))
	ctx := context.Background()

	q, err := store.Save(ctx, newQuote(t, "Snapshot", "keep as priced"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Simulate a rate change after the quote was priced.
	if _, err := database.Exec(`
		UPDATE quotes
		SET breakdown_json = json_set(breakdown_json, '$.line_items.basePrice', '123.45', '$.total_price', '999.99'),
		    total_price = '999.99'
		WHERE id = ?
	`, q.ID.String()); err != nil {
		t.Fatalf("tamper snapshot: %v", err)
	}

	got, err := store.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Breakdown.Items.Get(pricing.BasePrice).Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("expected snapshot base price 123.45, got %s", got.Breakdown.Items.Get(pricing.BasePrice))
	}
	if !got.TotalPrice.Equal(decimal.RequireFromString("999.99")) {
		t.Fatalf("expected snapshot total 999.99, got %s", got.TotalPrice)
	}
	if got.Job.SquareFootage != 5000 || got.Notes != "keep as priced" {
		t.Fatalf("unexpected job detail: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Now())
	_, err := store.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTextSummary(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC))
	q, err := store.Save(context.Background(), newQuote(t, "Office tower", "Use the loading dock"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	body := Text(q)
	for _, expected := range []string{
		"Quote Q-2026-0001: Office tower",
		"Total: $1,524.75",
		"- Area: 5,000 sq ft",
		"- basePrice: $900.00",
		"- Markup: $475.00",
		"Use the loading dock",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got:\n%s", expected, body)
		}
	}
}

func TestTextSummaryMarksDisplayCasesAsInBase(t *testing.T) {
	t.Parallel()

	job := pricing.JobDescription{
		ProjectType:     rates.ProjectJewelry,
		CleaningType:    rates.CleaningFinal,
		ServiceCategory: rates.ServiceStandard,
		SquareFootage:   3000,
		DisplayCases:    10,
		UrgencyLevel:    1,
	}
	bd, err := pricing.Compute(job)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	body := Text(Quote{Number: "Q-2026-0007", Title: "Jeweler", Job: job, Breakdown: bd, TotalPrice: bd.TotalPrice})

	for _, expected := range []string{
		"- basePrice: $875.00",
		"- displayCaseCost (in base): $250.00",
		"- Before markup: $875.00",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got:\n%s", expected, body)
		}
	}
	if strings.Contains(body, "- displayCaseCost: ") {
		t.Fatalf("display case line should be marked as included in base:\n%s", body)
	}
}

func TestListTreatsWildcardsLiterally(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, title := range []string{"10% off lobby", "100 off lobby", "suite_2", "suite 2"} {
		if _, err := store.Save(ctx, newQuote(t, title, "")); err != nil {
			t.Fatalf("save %q: %v", title, err)
		}
	}

	tests := []struct {
		query string
		want  string
	}{
		{"10%", "10% off lobby"},
		{"suite_", "suite_2"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := store.List(ctx, tt.query)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != 1 || got[0].Title != tt.want {
				t.Fatalf("List(%q) = %+v, want only %q", tt.query, got, tt.want)
			}
		})
	}
}
