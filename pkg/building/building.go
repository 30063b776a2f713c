// Package building generates parametric building meshes: solids of
// revolution shaped like truncated cones with a sinusoidal bulge,
// triangulated with outward-facing flat-shaded normals.
package building

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Faultbox/citymesh/pkg/math"
	"github.com/Faultbox/citymesh/pkg/obj"
)

// Generation errors.
var (
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// Side count limits. Values outside the range are recoverable by
// clamping; see ClampSides.
const (
	MinSides = 3
	MaxSides = 36
)

// Params describes one building.
type Params struct {
	Sides        int
	Height       float32
	RadiusBottom float32
	RadiusTop    float32
}

// DefaultParams returns the standard building shape.
func DefaultParams() Params {
	return Params{Sides: 8, Height: 6.0, RadiusBottom: 1.0, RadiusTop: 0.8}
}

// Validate checks the parameters. Non-positive height or radii are
// fatal; an out-of-range side count is also rejected here because
// callers are expected to have applied ClampSides first.
func (p Params) Validate() error {
	if p.Height <= 0 {
		return fmt.Errorf("%w: height %v must be positive", ErrInvalidParameter, p.Height)
	}
	if p.RadiusBottom <= 0 {
		return fmt.Errorf("%w: bottom radius %v must be positive", ErrInvalidParameter, p.RadiusBottom)
	}
	if p.RadiusTop <= 0 {
		return fmt.Errorf("%w: top radius %v must be positive", ErrInvalidParameter, p.RadiusTop)
	}
	if p.Sides < MinSides || p.Sides > MaxSides {
		return fmt.Errorf("%w: sides %d outside [%d, %d]", ErrInvalidParameter, p.Sides, MinSides, MaxSides)
	}
	return nil
}

// ClampSides clamps a side count to [MinSides, MaxSides] and reports
// whether clamping occurred.
func ClampSides(sides int) (int, bool) {
	if sides < MinSides {
		return MinSides, true
	}
	if sides > MaxSides {
		return MaxSides, true
	}
	return sides, false
}

// Generate builds the indexed mesh for the given parameters.
//
// Vertex stream layout: the bottom pole is always the first vertex and
// the top pole the last, with ring vertices in ring-major order between
// them. Normal stream layout: the two cap normals first, then one
// lateral normal per (segment, sector).
func Generate(p Params) (*obj.Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	radii := Profile(p)
	vertices := ringVertices(p, radii)

	laterals, err := sectorNormals(p, radii)
	if err != nil {
		return nil, err
	}
	normals := make([]math.Vec3, 0, 2+len(laterals))
	normals = append(normals, bottomCapNormal, topCapNormal)
	normals = append(normals, laterals...)

	return &obj.Model{
		Vertices: vertices,
		Normals:  normals,
		Faces:    buildFaces(p.Sides, len(radii)),
	}, nil
}

// Filename derives the deterministic output filename for a parameter set.
func Filename(p Params) string {
	return fmt.Sprintf("building_%d_%s_%s_%s.obj",
		p.Sides, ftoa(p.Height), ftoa(p.RadiusBottom), ftoa(p.RadiusTop))
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
