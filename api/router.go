package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)

	// bridge command surface
	r.Route("/device", func(r chi.Router) {
		r.Get("/status", s.handleDeviceStatus)
		r.Get("/health", s.handleDeviceHealth)
		r.Post("/on", s.handleTurnOn)
		r.Post("/off", s.handleTurnOff)
		r.Post("/toggle", s.handleToggle)
		r.Post("/mode", s.handleSetMode)
		r.Post("/brightness", s.handleSetBrightness)
		r.Post("/mock", s.handleMockState)
	})

	if s.params.Auth != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Get("/me", s.handleMe)
		})
	}

	if s.params.Roles != nil {
		r.Post("/roles", s.handleCreateRole)
	}

	if s.params.Reviews != nil {
		r.Get("/reviews", s.handleListReviews)
		r.Post("/reviews", s.handleCreateReview)
	}

	// direct device web server polling
	if s.params.Device != nil {
		r.Route("/led", func(r chi.Router) {
			r.Get("/status", s.handleLedStatus)
			r.Get("/sensor/status", s.handleLedSensorStatus)
			r.Get("/full-status", s.handleLedFullStatus)
			r.Get("/ping", s.handleLedPing)
			r.Post("/", s.handleLedControl)
			r.Post("/toggle", s.handleLedToggle)
			r.Post("/mode", s.handleLedMode)
		})
	}

	if s.params.Motion != nil {
		r.Route("/api/motion", func(r chi.Router) {
			r.Post("/update", s.handleMotionUpdate)
			r.Get("/latest", s.handleMotionLatest)
			r.Get("/stream", s.handleMotionStream)
		})
	}

	return r
}
