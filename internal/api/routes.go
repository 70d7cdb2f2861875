package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mathverse/internal/errors"
)

const requestTimeout = 15 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware(s.CORSOrigin))
	r.Use(timeoutMiddleware(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    errors.ErrCodeBadRequest,
			Message: "method not allowed",
			Status:  http.StatusMethodNotAllowed,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/readyz", s.handleReady)

		r.Get("/questions/{mode}", s.handleQuestion)
		r.Get("/generate/{mode}", s.handleQuestion)

		if s.AuthService != nil {
			r.Post("/auth/register", s.handleRegister)
			r.Post("/auth/login", s.handleLogin)
		}

		r.Group(func(r chi.Router) {
			r.Use(s.userMiddleware)

			r.Post("/answers", s.handleAnswer)
			r.Get("/progress", s.handleGetProgress)
			r.Put("/progress", s.handleSaveProgress)
			r.Post("/progress", s.handleSaveProgress)
			r.Delete("/progress", s.handleResetProgress)
			r.Post("/progress/time", s.handleAddTime)
			r.Get("/analytics", s.handleAnalytics)
			r.Get("/history", s.handleHistory)
		})
	})
	return r
}
