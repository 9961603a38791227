package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"storeadmin/src/services/crud"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger   *slog.Logger
	server   *http.Server
	mux      *http.ServeMux
	port     int
	registry *crud.Registry
}

// NewServer cria uma nova instância do servidor.
// graphqlHandler e adminHandler são opcionais (nil desabilita a rota).
func NewServer(
	logger *slog.Logger,
	port int,
	registry *crud.Registry,
	graphqlHandler http.Handler,
	adminHandler http.Handler,
) *Server {
	server := &Server{
		mux:      http.NewServeMux(),
		port:     port,
		logger:   logger,
		registry: registry,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	for _, collection := range registry.All() {
		server.registerEntityRoutes(collection)
	}

	if graphqlHandler != nil {
		server.mux.Handle("POST /graphql", graphqlHandler)
		server.mux.Handle("GET /graphql", graphqlHandler)
	}

	if adminHandler != nil {
		server.mux.Handle("GET /admin/", adminHandler)
	}

	server.mux.HandleFunc("GET /health", server.Health)

	return server
}

func (s *Server) registerEntityRoutes(collection crud.Collection) {
	resource := &entityResource{server: s, collection: collection}
	route := "/" + collection.Schema().Route

	s.mux.HandleFunc("POST "+route, resource.Create)
	s.mux.HandleFunc("GET "+route, resource.FindMany)
	s.mux.HandleFunc("GET "+route+"/{id}", resource.FindOne)
	s.mux.HandleFunc("PATCH "+route+"/{id}", resource.Update)
	s.mux.HandleFunc("PUT "+route+"/{id}", resource.Update)
	s.mux.HandleFunc("DELETE "+route+"/{id}", resource.Delete)

	// Relações to_many
	s.mux.HandleFunc("GET "+route+"/{id}/{relation}", resource.FindRelated)
	s.mux.HandleFunc("POST "+route+"/{id}/{relation}", resource.ConnectRelated)
	s.mux.HandleFunc("PATCH "+route+"/{id}/{relation}", resource.SetRelated)
	s.mux.HandleFunc("DELETE "+route+"/{id}/{relation}", resource.DisconnectRelated)

	s.logger.Debug("Entity routes registered", "entity", collection.Schema().Name, "route", route)
}

// Handler expõe o mux (usado pelos testes com httptest).
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
