// Package server exposes the traffic simulation as a JSON position API
// for an external rendering client, plus a WebSocket stream that pushes
// positions after every step.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/citymesh/internal/config"
	"github.com/Faultbox/citymesh/internal/logger"
	"github.com/Faultbox/citymesh/internal/sim"
)

// ModelFactory builds a fresh simulation; /init calls it to reset.
type ModelFactory func() (*sim.Model, error)

// Server serializes all model access behind one mutex; the model itself
// is single-threaded by design.
type Server struct {
	cfg      config.ServerConfig
	newModel ModelFactory

	mu    sync.Mutex
	model *sim.Model
	step  int

	mux      *http.ServeMux
	upgrader websocket.Upgrader

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]*sync.Mutex
}

// New creates a server with an initial model from the factory.
func New(cfg config.ServerConfig, newModel ModelFactory) (*Server, error) {
	model, err := newModel()
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		newModel: newModel,
		model:    model,
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}

	s.mux.HandleFunc("/init", s.handleInit)
	s.mux.HandleFunc("/update", s.handleUpdate)
	s.mux.HandleFunc("/getCars", s.handleCars)
	s.mux.HandleFunc("/getTrafficLights", s.handleLights)
	s.mux.HandleFunc("/getObstacles", s.handleObstacles)
	s.mux.HandleFunc("/getRoads", s.handleRoads)
	s.mux.HandleFunc("/getDestinations", s.handleDestinations)
	s.mux.HandleFunc("/getBuilding", s.handleBuilding)
	s.mux.HandleFunc("/ws", s.handleWS)

	return s, nil
}

// Handler returns the routed handler with CORS headers applied.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux)
}

// Run serves the position API until the listener fails. When a step
// interval is configured the simulation also advances on a timer, so
// WebSocket clients receive updates without anyone polling /update.
func (s *Server) Run() error {
	if s.cfg.StepInterval > 0 {
		go s.autoStep()
	}
	logger.Info("position API listening", zap.String("addr", s.cfg.ListenAddr))
	return http.ListenAndServe(s.cfg.ListenAddr, s.Handler())
}

// autoStep advances the simulation on a ticker while at least one
// WebSocket client is connected.
func (s *Server) autoStep() {
	ticker := time.NewTicker(s.cfg.StepInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.clientsMu.Lock()
		idle := len(s.clients) == 0
		s.clientsMu.Unlock()
		if idle {
			continue
		}

		s.mu.Lock()
		s.model.Step()
		s.step++
		s.mu.Unlock()
		s.broadcastPositions()
	}
}

// corsMiddleware mirrors the headers the rendering client expects.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
