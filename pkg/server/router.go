package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Handlers are the endpoints served by the router
type Handlers interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// Router binds Handlers to a gorilla/mux router
type Router struct {
	handlers Handlers
	router   *mux.Router
	log      zerolog.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(handlers Handlers, router *mux.Router, log zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		router:   router,
		log:      log,
	}
}

// RegisterRoutes installs the request logging middleware and the GET routes.
func (r *Router) RegisterRoutes() {
	r.router.Use(r.logRequests)

	// expects ?date={DD/MM/YYYY}, optional
	r.router.HandleFunc("/v1/week", r.handlers.GetWeek).Methods("GET")

	r.router.HandleFunc("/ping", r.handlers.Ping).Methods("GET")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		r.log.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
