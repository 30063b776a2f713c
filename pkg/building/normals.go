package building

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/citymesh/pkg/math"
)

// Cap normals are synthetic: the caps are planar so their normals never
// need to be computed.
var (
	bottomCapNormal = math.Vec3{X: 0, Y: -1, Z: 0}
	topCapNormal    = math.Vec3{X: 0, Y: 1, Z: 0}
)

// Normal stream roles, mirroring the cap-first layout built in Generate.
const (
	bottomCapNormalIndex = 0
	topCapNormalIndex    = 1
)

func lateralNormalIndex(segment, sector, sides int) int {
	return 2 + segment*sides + sector
}

// sectorNormals computes one outward unit normal per (segment, sector)
// from the revolved surface's parametric derivatives, evaluated at the
// sector's midpoint angle. The same normal serves both triangles of the
// sector's quad, preserving flat shading.
//
// Degenerate inputs (zero mean radius, zero segment height, zero-length
// cross product) fail with ErrDegenerateGeometry instead of producing
// NaN components.
func sectorNormals(p Params, radii []float32) ([]math.Vec3, error) {
	n := len(radii)
	segHeight := p.Height / float32(n-1)
	if segHeight <= 0 {
		return nil, fmt.Errorf("%w: segment height %v", ErrDegenerateGeometry, segHeight)
	}

	normals := make([]math.Vec3, 0, (n-1)*p.Sides)
	for seg := 0; seg < n-1; seg++ {
		r0, r1 := radii[seg], radii[seg+1]
		rMid := (r0 + r1) / 2
		if rMid == 0 {
			return nil, fmt.Errorf("%w: segment %d has zero mean radius", ErrDegenerateGeometry, seg)
		}
		rSlope := (r1 - r0) / segHeight

		for sector := 0; sector < p.Sides; sector++ {
			theta := (float64(sector) + 0.5) / float64(p.Sides) * 2 * gomath.Pi
			sin, cos := gomath.Sincos(theta)

			// Tangents of the parametric surface p(theta, y).
			pTheta := math.Vec3{X: -rMid * float32(sin), Y: 0, Z: rMid * float32(cos)}
			pY := math.Vec3{X: rSlope * float32(cos), Y: 1, Z: rSlope * float32(sin)}

			cross := pTheta.Cross(pY)
			if cross.Length() == 0 {
				return nil, fmt.Errorf("%w: segment %d sector %d has zero-length normal",
					ErrDegenerateGeometry, seg, sector)
			}

			normal := cross.Normalize()
			radial := math.Vec3{X: float32(cos), Y: 0, Z: float32(sin)}
			if normal.Dot(radial) < 0 {
				normal = normal.Neg()
			}
			normals = append(normals, normal)
		}
	}
	return normals, nil
}
