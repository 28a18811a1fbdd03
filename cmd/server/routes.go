package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/drafts"
	"github.com/Simplici0/cleanquote/internal/pricing"
	"github.com/Simplici0/cleanquote/internal/quotes"
)

type server struct {
	auth   *authService
	calc   *pricing.Calculator
	quotes *quotes.Store
	// nil when REDIS_ADDR is not configured.
	drafts *drafts.Store
	log    *zap.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Post("/estimates", s.handleEstimate)
		r.Post("/estimates/adjust", s.handleAdjust)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/quotes", s.handleQuoteCreate)
			r.Get("/quotes", s.handleQuotesList)
			r.Get("/quotes/{id}", s.handleQuoteDetail)
			r.Get("/quotes/{id}/text", s.handleQuoteText)

			r.Post("/drafts", s.handleDraftCreate)
			r.Put("/drafts/{id}", s.handleDraftUpdate)
			r.Get("/drafts/{id}", s.handleDraftGet)
			r.Delete("/drafts/{id}", s.handleDraftDelete)
		})
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAuthenticated(r, s.auth) {
			writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
