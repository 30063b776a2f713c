package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/citymesh/internal/logger"
)

// stepUpdate is the payload pushed to every WebSocket client after a
// simulation step.
type stepUpdate struct {
	Type   string     `json:"type"`
	Step   int        `json:"step"`
	Cars   []position `json:"cars"`
	Lights []position `json:"lights"`
}

// handleWS upgrades the connection and registers it for step broadcasts.
// Each connection carries its own write mutex so broadcasts from the
// update handler never interleave frames.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade", zap.Error(err))
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = &sync.Mutex{}
	count := len(s.clients)
	s.clientsMu.Unlock()
	logger.Info("websocket client connected", zap.Int("clients", count))

	// Reader loop exists only to detect the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.dropClient(conn)
				return
			}
		}
	}()
}

// broadcastPositions pushes the current car and light positions to all
// connected clients, dropping any that fail to write.
func (s *Server) broadcastPositions() {
	s.mu.Lock()
	update := stepUpdate{
		Type:   "positions",
		Step:   s.step,
		Cars:   s.carPositions(),
		Lights: s.lightPositions(),
	}
	s.mu.Unlock()

	s.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	locks := make([]*sync.Mutex, 0, len(s.clients))
	for conn, lock := range s.clients {
		conns = append(conns, conn)
		locks = append(locks, lock)
	}
	s.clientsMu.Unlock()

	for i, conn := range conns {
		locks[i].Lock()
		err := conn.WriteJSON(update)
		locks[i].Unlock()
		if err != nil {
			s.dropClient(conn)
		}
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
		logger.Info("websocket client disconnected", zap.Int("clients", len(s.clients)))
	}
	s.clientsMu.Unlock()
}
