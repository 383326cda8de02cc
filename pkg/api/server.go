package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/calexi/crossfire/pkg/api/handlers"
	"github.com/calexi/crossfire/pkg/log"
	"github.com/calexi/crossfire/pkg/registry"
	"github.com/gorilla/mux"
)

// APIServer serves read-only session stats over HTTP.
type APIServer struct {
	server *http.Server
}

type NewAPIServerOptions struct {
	Port     int
	Registry *registry.Registry
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	router := NewRouter(opts.Registry, time.Now())
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &APIServer{
		server: server,
	}
}

// NewRouter builds the API route table.
func NewRouter(reg *registry.Registry, startedAt time.Time) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/status", handlers.HandleStatus(reg, startedAt)).Methods(http.MethodGet)
	router.HandleFunc("/api/players", handlers.HandleListPlayers(reg)).Methods(http.MethodGet)
	return router
}

// Start starts the APIServer
func (s *APIServer) Start() {
	log.Info("API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
