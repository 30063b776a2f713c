package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/citymesh/internal/logger"
	"github.com/Faultbox/citymesh/internal/sim"
	"github.com/Faultbox/citymesh/pkg/building"
)

// Render heights for each agent kind; the rendering client draws
// everything on a ground plane and expects these offsets.
const (
	carRenderY    = 0.25
	lightRenderY  = 0.4
	groundRenderY = 0.0
)

// position is one entry of a positions payload. Field names match the
// original rendering client's expectations.
type position struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Waiting   *bool   `json:"waiting,omitempty"`
	State     *bool   `json:"state,omitempty"`
	Direction string  `json:"direction,omitempty"`
}

// cardinal translates a road direction to the client's compass names.
func cardinal(d sim.Direction) string {
	switch d {
	case sim.DirUp:
		return "Norte"
	case sim.DirDown:
		return "Sur"
	case sim.DirRight:
		return "Este"
	case sim.DirLeft:
		return "Oeste"
	default:
		return "Norte"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	model, err := s.newModel()
	if err != nil {
		logger.Error("resetting simulation", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.model = model
	s.step = 0
	s.mu.Unlock()

	logger.Info("simulation initialized")
	writeJSON(w, map[string]string{"message": "Traffic model initialized successfully."})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.model.Step()
	s.step++
	step := s.step
	running := s.model.Running()
	s.mu.Unlock()

	s.broadcastPositions()

	writeJSON(w, map[string]any{
		"message":     "Model updated to step " + strconv.Itoa(step) + ".",
		"currentStep": step,
		"running":     running,
	})
}

func (s *Server) handleCars(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	positions := s.carPositions()
	s.mu.Unlock()
	writeJSON(w, map[string]any{"positions": positions})
}

func (s *Server) handleLights(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	positions := s.lightPositions()
	s.mu.Unlock()
	writeJSON(w, map[string]any{"positions": positions})
}

func (s *Server) handleObstacles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []position
	grid := s.model.Map().Grid
	id := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.At(x, y).Obstacle {
				positions = append(positions, position{
					ID: strconv.Itoa(id), X: float64(x), Y: groundRenderY, Z: float64(y),
				})
				id++
			}
		}
	}
	writeJSON(w, map[string]any{"positions": positions})
}

func (s *Server) handleRoads(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []position
	grid := s.model.Map().Grid
	id := 0
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			cell := grid.At(x, y)
			if cell.Road {
				positions = append(positions, position{
					ID: strconv.Itoa(id), X: float64(x), Y: groundRenderY, Z: float64(y),
					Direction: cell.Direction.String(),
				})
				id++
			}
		}
	}
	writeJSON(w, map[string]any{"positions": positions})
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []position
	for i, dest := range s.model.Map().Destinations {
		positions = append(positions, position{
			ID: strconv.Itoa(i), X: float64(dest[0]), Y: groundRenderY, Z: float64(dest[1]),
		})
	}
	writeJSON(w, map[string]any{"positions": positions})
}

// handleBuilding generates and returns the OBJ document for the
// building standing on an obstacle cell.
func (s *Server) handleBuilding(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	z, errZ := strconv.Atoi(r.URL.Query().Get("z"))
	if errX != nil || errZ != nil {
		http.Error(w, "x and z query parameters required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	params, ok := s.model.BuildingAt(x, z)
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no building at cell", http.StatusNotFound)
		return
	}

	model, err := building.Generate(params)
	if err != nil {
		logger.Error("generating building mesh", zap.Error(err), zap.Int("x", x), zap.Int("z", z))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	if err := model.Encode(w); err != nil {
		logger.Error("writing building mesh", zap.Error(err))
	}
}

// carPositions and lightPositions are called with s.mu held.
func (s *Server) carPositions() []position {
	var positions []position
	for _, car := range s.model.Cars() {
		waiting := car.Waiting
		positions = append(positions, position{
			ID:        strconv.Itoa(car.ID),
			X:         float64(car.X),
			Y:         carRenderY,
			Z:         float64(car.Y),
			Waiting:   &waiting,
			Direction: cardinal(car.Direction),
		})
	}
	return positions
}

func (s *Server) lightPositions() []position {
	var positions []position
	for _, light := range s.model.Lights() {
		state := light.Green
		positions = append(positions, position{
			ID:    strconv.Itoa(light.ID),
			X:     float64(light.X),
			Y:     lightRenderY,
			Z:     float64(light.Y),
			State: &state,
		})
	}
	return positions
}
