package sim

import (
	"math/rand"

	"github.com/Faultbox/citymesh/pkg/building"
)

// spawnAttempts bounds the search for a valid spawn/destination pair.
const spawnAttempts = 100

// Model is the running simulation. Not safe for concurrent use; the
// server serializes access.
type Model struct {
	cityMap       *CityMap
	cars          []*Car
	steps         int
	spawnInterval int
	seed          int64
	rng           *rand.Rand
	nextCarID     int
	carsSpawned   int
	carsReached   int
	running       bool
}

// NewModel creates a simulation over a parsed city map.
func NewModel(cityMap *CityMap, spawnInterval int, seed int64) *Model {
	if spawnInterval < 1 {
		spawnInterval = 1
	}
	return &Model{
		cityMap:       cityMap,
		spawnInterval: spawnInterval,
		seed:          seed,
		rng:           rand.New(rand.NewSource(seed)),
		running:       true,
	}
}

// Step advances the simulation: spawns a car on the spawn interval,
// cycles lights, moves cars in shuffled order, and removes arrivals.
func (m *Model) Step() {
	m.steps++

	if m.steps%m.spawnInterval == 0 {
		m.spawnCar()
	}

	for _, light := range m.cityMap.Lights {
		light.step(m.steps)
	}

	m.rng.Shuffle(len(m.cars), func(i, j int) {
		m.cars[i], m.cars[j] = m.cars[j], m.cars[i]
	})
	for _, car := range m.cars {
		car.step(m)
	}

	remaining := m.cars[:0]
	for _, car := range m.cars {
		if car.ReachedDst {
			m.carsReached++
			continue
		}
		remaining = append(remaining, car)
	}
	m.cars = remaining

	if len(m.cars) == 0 && !m.canSpawn() {
		m.running = false
	}
}

// spawnCar places a new car at a random free edge spawn point with a
// random destination, but only if a route exists right now.
func (m *Model) spawnCar() *Car {
	if len(m.cityMap.SpawnPoints) == 0 || len(m.cityMap.Destinations) == 0 {
		return nil
	}

	for attempt := 0; attempt < spawnAttempts; attempt++ {
		spawn := m.cityMap.SpawnPoints[m.rng.Intn(len(m.cityMap.SpawnPoints))]
		if m.carAt(spawn[0], spawn[1]) != nil {
			continue
		}
		dest := m.cityMap.Destinations[m.rng.Intn(len(m.cityMap.Destinations))]

		car := &Car{
			ID:    m.nextCarID,
			X:     spawn[0],
			Y:     spawn[1],
			DestX: dest[0],
			DestY: dest[1],
		}
		if cell := m.cityMap.Grid.At(spawn[0], spawn[1]); cell != nil {
			car.Direction = cell.Direction
		}

		path := car.findPath(m)
		if len(path) == 0 {
			continue
		}
		car.path = path

		m.nextCarID++
		m.carsSpawned++
		m.cars = append(m.cars, car)
		return car
	}
	return nil
}

// canSpawn reports whether any spawn point is currently free.
func (m *Model) canSpawn() bool {
	for _, spawn := range m.cityMap.SpawnPoints {
		if m.carAt(spawn[0], spawn[1]) == nil {
			return true
		}
	}
	return false
}

// carAt returns the car occupying (x, y), or nil.
func (m *Model) carAt(x, y int) *Car {
	for _, car := range m.cars {
		if car.X == x && car.Y == y {
			return car
		}
	}
	return nil
}

// Cars returns the live cars.
func (m *Model) Cars() []*Car {
	return m.cars
}

// Lights returns the traffic lights.
func (m *Model) Lights() []*TrafficLight {
	return m.cityMap.Lights
}

// Map returns the parsed city layout.
func (m *Model) Map() *CityMap {
	return m.cityMap
}

// Steps returns the number of completed steps.
func (m *Model) Steps() int {
	return m.steps
}

// Running reports whether the simulation can still make progress.
func (m *Model) Running() bool {
	return m.running
}

// CarsSpawned returns the total number of cars created.
func (m *Model) CarsSpawned() int {
	return m.carsSpawned
}

// CarsReached returns the number of cars that arrived.
func (m *Model) CarsReached() int {
	return m.carsReached
}

// BuildingAt returns deterministic building parameters for an obstacle
// cell, derived from the model seed and the cell coordinates so every
// client sees the same skyline. ok is false for non-obstacle cells.
func (m *Model) BuildingAt(x, y int) (building.Params, bool) {
	cell := m.cityMap.Grid.At(x, y)
	if cell == nil || !cell.Obstacle {
		return building.Params{}, false
	}

	rng := rand.New(rand.NewSource(m.seed ^ (int64(x)<<32 | int64(y&0xffffffff))))
	sides := []int{4, 6, 8, 12}[rng.Intn(4)]
	height := 4 + rng.Float32()*10
	radiusBottom := 0.3 + rng.Float32()*0.2
	radiusTop := radiusBottom * (0.6 + rng.Float32()*0.4)

	return building.Params{
		Sides:        sides,
		Height:       height,
		RadiusBottom: radiusBottom,
		RadiusTop:    radiusTop,
	}, true
}
