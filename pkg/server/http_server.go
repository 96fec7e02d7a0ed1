package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// HTTPServer runs the JSON endpoint on addr
type HTTPServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	log       zerolog.Logger
}

// NewHTTPServer creates a server for router. Routes are registered when Run starts.
func NewHTTPServer(router *Router, muxRouter *mux.Router, addr string, log zerolog.Logger) *HTTPServer {
	return &HTTPServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		log:       log,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.log.Info().Msg("server exiting")
	return nil
}
