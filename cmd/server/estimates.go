package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/cleanquote/internal/intake"
	"github.com/Simplici0/cleanquote/internal/pricing"
)

type adjustRequest struct {
	Job       json.RawMessage   `json:"job"`
	Percent   decimal.Decimal   `json:"percent"`
	Direction pricing.Direction `json:"direction"`
}

type adjustResponse struct {
	Breakdown  pricing.Breakdown        `json:"breakdown"`
	Adjustment pricing.AdjustmentResult `json:"adjustment"`
}

func (s *server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	job, err := intake.DecodeJob(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeInputError(w, err)
		return
	}

	b, err := s.calc.Compute(job)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInputError(w, err)
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
	adj := pricing.Adjustment{Percent: req.Percent, Direction: req.Direction}
	if err := intake.Adjustment(adj); err != nil {
		writeInputError(w, err)
		return
	}

	b, err := s.calc.Compute(job)
	if err != nil {
		writeInputError(w, err)
		return
	}
	res, err := s.calc.Adjust(b, adj)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adjustResponse{Breakdown: b, Adjustment: res})
}
