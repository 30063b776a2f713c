package sim

// TrafficLight cycles between green and red every Cycle steps.
type TrafficLight struct {
	ID        int
	X, Y      int
	Green     bool
	Cycle     int
	Direction Direction
}

func (l *TrafficLight) step(stepCount int) {
	if l.Cycle > 0 && stepCount%l.Cycle == 0 {
		l.Green = !l.Green
	}
}

// Car moves one cell per step along a direction-following path toward
// its destination, waiting at red lights and behind other cars.
type Car struct {
	ID         int
	X, Y       int
	DestX      int
	DestY      int
	Direction  Direction
	Waiting    bool
	ReachedDst bool

	path [][2]int
}

// findPath runs BFS from the car's position to its destination,
// following road directions. Road cells have at most one successor, so
// the search is a guarded walk; the visited set only protects against
// circular road loops. Returns nil when no path exists.
func (c *Car) findPath(m *Model) [][2]int {
	if c.X == c.DestX && c.Y == c.DestY {
		return nil
	}

	type node struct {
		x, y int
	}
	start := node{c.X, c.Y}
	queue := []node{start}
	visited := map[node]bool{start: true}
	parent := map[node]node{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.x == c.DestX && cur.y == c.DestY {
			// Walk parents back to the start; the path excludes the
			// current cell.
			var path [][2]int
			for n := cur; n != start; n = parent[n] {
				path = append(path, [2]int{n.x, n.y})
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		cell := m.cityMap.Grid.At(cur.x, cur.y)
		if cell == nil || !cell.Road {
			continue
		}
		dx, dy := cell.Direction.Offset()
		next := node{cur.x + dx, cur.y + dy}
		nextCell := m.cityMap.Grid.At(next.x, next.y)
		if nextCell == nil || !nextCell.Drivable() || nextCell.Obstacle {
			continue
		}
		if m.carAt(next.x, next.y) != nil {
			continue
		}
		if !visited[next] {
			visited[next] = true
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

// canMoveForward reports whether the next path cell can be entered:
// the current cell's light must not be red and the next cell must be
// free of cars.
func (c *Car) canMoveForward(m *Model) bool {
	if len(c.path) == 0 {
		return false
	}

	cell := m.cityMap.Grid.At(c.X, c.Y)
	if cell != nil && cell.Light != nil && !cell.Light.Green {
		c.Waiting = true
		return false
	}
	c.Waiting = false

	next := c.path[0]
	return m.carAt(next[0], next[1]) == nil
}

func (c *Car) step(m *Model) {
	if c.X == c.DestX && c.Y == c.DestY {
		c.ReachedDst = true
		return
	}

	if len(c.path) == 0 {
		c.path = c.findPath(m)
	}
	if c.canMoveForward(m) {
		next := c.path[0]
		c.path = c.path[1:]
		c.X, c.Y = next[0], next[1]
		if cell := m.cityMap.Grid.At(c.X, c.Y); cell != nil && cell.Direction != DirNone {
			c.Direction = cell.Direction
		}
	}
}
