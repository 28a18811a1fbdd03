package main

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/drafts"
	"github.com/Simplici0/cleanquote/internal/pricing"
)

type draftRequest struct {
	Title      string                 `json:"title"`
	Job        pricing.JobDescription `json:"job"`
	Adjustment *pricing.Adjustment    `json:"adjustment,omitempty"`
}

func (s *server) draftsEnabled(w http.ResponseWriter) bool {
	if s.drafts == nil {
		writeError(w, http.StatusServiceUnavailable, "draft storage is not configured")
		return false
	}
	return true
}

func (s *server) saveDraft(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	var req draftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInputError(w, err)
		return
	}

	d, err := s.drafts.Save(r.Context(), drafts.Draft{
		ID:         id,
		Title:      req.Title,
		Job:        req.Job,
		Adjustment: req.Adjustment,
	})
	if err != nil {
		s.log.Error("save draft", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save draft")
		return
	}
	writeJSON(w, status, d)
}

func (s *server) handleDraftCreate(w http.ResponseWriter, r *http.Request) {
	if !s.draftsEnabled(w) {
		return
	}
	s.saveDraft(w, r, uuid.Nil, http.StatusCreated)
}

func (s *server) handleDraftUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.draftsEnabled(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveDraft(w, r, id, http.StatusOK)
}

func (s *server) handleDraftGet(w http.ResponseWriter, r *http.Request) {
	if !s.draftsEnabled(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := s.drafts.Load(r.Context(), id)
	if errors.Is(err, drafts.ErrNotFound) {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		s.log.Error("load draft", zap.Stringer("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *server) handleDraftDelete(w http.ResponseWriter, r *http.Request) {
	if !s.draftsEnabled(w) {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.drafts.Delete(r.Context(), id)
	if errors.Is(err, drafts.ErrNotFound) {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		s.log.Error("delete draft", zap.Stringer("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
