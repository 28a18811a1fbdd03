package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/intake"
	"github.com/Simplici0/cleanquote/internal/pricing"
	"github.com/Simplici0/cleanquote/internal/quotes"
)

type quoteRequest struct {
	Title      string              `json:"title"`
	Notes      string              `json:"notes"`
	Job        json.RawMessage     `json:"job"`
	Adjustment *pricing.Adjustment `json:"adjustment,omitempty"`
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInputError(w, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeInputError(w, &intake.ValidationError{Fields: []intake.FieldError{{Field: "title", Message: "is required"}}})
		return
	}
	if len(req.Job) == 0 {
		writeInputError(w, errors.New("job is required"))
		return
	}

	job, err := intake.DecodeJob(bytes.NewReader(req.Job))
	if err != nil {
		writeInputError(w, err)
		return
	}
	b, err := s.calc.Compute(job)
	if err != nil {
		writeInputError(w, err)
		return
	}

	in := quotes.NewQuote{Title: req.Title, Notes: req.Notes, Job: job, Breakdown: b}
	if req.Adjustment != nil {
		if err := intake.Adjustment(*req.Adjustment); err != nil {
			writeInputError(w, err)
			return
		}
		res, err := s.calc.Adjust(b, *req.Adjustment)
		if err != nil {
			writeInputError(w, err)
			return
		}
		in.Adjustment = &res
	}

	q, err := s.quotes.Save(r.Context(), in)
	if err != nil {
		s.log.Error("save quote", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}
	s.log.Info("quote saved", zap.String("number", q.Number), zap.String("total", q.TotalPrice.StringFixed(2)))
	writeJSON(w, http.StatusCreated, q)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	list, err := s.quotes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.log.Error("list quotes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) getQuote(w http.ResponseWriter, r *http.Request) (quotes.Quote, bool) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return quotes.Quote{}, false
	}

	q, err := s.quotes.Get(r.Context(), id)
	if errors.Is(err, quotes.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quote not found")
		return quotes.Quote{}, false
	}
	if err != nil {
		s.log.Error("get quote", zap.Stringer("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load quote")
		return quotes.Quote{}, false
	}
	return q, true
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	q, ok := s.getQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, ok := s.getQuote(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(quotes.Text(q)))
}
