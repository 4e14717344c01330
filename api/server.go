package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lightbridge/application"

	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

type ServerParams struct {
	Addr string

	Bridge  application.BridgeService
	Auth    application.AuthService
	Roles   application.RoleRepository
	Reviews application.ReviewRepository
	Device  application.DeviceWebClient
	Motion  *application.MotionService

	Log zerolog.Logger
}

// Server is the HTTP surface in front of the bridge and the CRUD services.
type Server struct {
	params ServerParams

	server *http.Server

	log zerolog.Logger
}

func NewServer(params ServerParams) (*Server, error) {
	if params.Bridge == nil {
		return nil, fmt.Errorf("BridgeService is nil")
	}
	if params.Addr == "" {
		params.Addr = ":5000"
	}

	s := &Server{params: params, log: params.Log}
	s.server = &http.Server{
		Addr:              params.Addr,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.params.Addr).Msg("http server listening")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info().Msg("http server shutting down")
	return s.server.Shutdown(shutdownCtx)
}
