package building

import (
	gomath "math"

	"github.com/Faultbox/citymesh/pkg/math"
)

// Ring count limits and the bulge amplitude relative to the larger radius.
const (
	minRings    = 3
	maxRings    = 8
	bulgeFactor = 0.3
)

// RingCount returns the number of rings for a building of the given
// height: floor(height/2) clamped to [minRings, maxRings].
func RingCount(height float32) int {
	n := int(height / 2)
	if n < minRings {
		n = minRings
	}
	if n > maxRings {
		n = maxRings
	}
	return n
}

// Profile returns the ring radii from bottom to top. The first radius is
// exactly RadiusBottom and the last exactly RadiusTop; interior rings
// interpolate linearly with a sinusoidal bulge bounded by
// bulgeFactor * max(RadiusBottom, RadiusTop). Deterministic.
func Profile(p Params) []float32 {
	n := RingCount(p.Height)
	radii := make([]float32, n)

	maxRadius := p.RadiusBottom
	if p.RadiusTop > maxRadius {
		maxRadius = p.RadiusTop
	}

	for i := range radii {
		switch i {
		case 0:
			radii[i] = p.RadiusBottom
		case n - 1:
			radii[i] = p.RadiusTop
		default:
			t := float32(i) / float32(n-1)
			bulge := float32(gomath.Sin(float64(t)*gomath.Pi)) * bulgeFactor * maxRadius
			radii[i] = math.Lerp(p.RadiusBottom, p.RadiusTop, t) + bulge
		}
	}
	return radii
}

// Vertex stream roles. The poles have stable identity: bottom pole
// first, top pole last, ring vertices in ring-major order between them.
const bottomPoleIndex = 0

func ringVertexIndex(ring, side, sides int) int {
	return 1 + ring*sides + side
}

func topPoleIndex(rings, sides int) int {
	return 1 + rings*sides
}

// ringVertices expands the profile into the full vertex stream.
func ringVertices(p Params, radii []float32) []math.Vec3 {
	n := len(radii)
	vertices := make([]math.Vec3, 0, n*p.Sides+2)

	vertices = append(vertices, math.Vec3{X: 0, Y: 0, Z: 0})
	for ring := 0; ring < n; ring++ {
		y := float32(ring) / float32(n-1) * p.Height
		for side := 0; side < p.Sides; side++ {
			theta := float64(side) / float64(p.Sides) * 2 * gomath.Pi
			sin, cos := gomath.Sincos(theta)
			vertices = append(vertices, math.Vec3{
				X: radii[ring] * float32(cos),
				Y: y,
				Z: radii[ring] * float32(sin),
			})
		}
	}
	vertices = append(vertices, math.Vec3{X: 0, Y: p.Height, Z: 0})

	return vertices
}
