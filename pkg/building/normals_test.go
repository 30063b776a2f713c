package building

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/citymesh/pkg/math"
)

func TestSectorNormals_UnitLength(t *testing.T) {
	p := Params{Sides: 9, Height: 11, RadiusBottom: 1.4, RadiusTop: 0.6}
	normals, err := sectorNormals(p, Profile(p))
	if err != nil {
		t.Fatalf("sectorNormals failed: %v", err)
	}

	wantCount := (RingCount(p.Height) - 1) * p.Sides
	if len(normals) != wantCount {
		t.Fatalf("got %d normals, want %d", len(normals), wantCount)
	}
	for i, n := range normals {
		if l := n.Length(); gomath.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("normal %d has length %v, want 1", i, l)
		}
	}
}

func TestSectorNormals_Outward(t *testing.T) {
	p := Params{Sides: 7, Height: 13, RadiusBottom: 0.9, RadiusTop: 1.6}
	normals, err := sectorNormals(p, Profile(p))
	if err != nil {
		t.Fatalf("sectorNormals failed: %v", err)
	}

	segments := RingCount(p.Height) - 1
	for seg := 0; seg < segments; seg++ {
		for sector := 0; sector < p.Sides; sector++ {
			theta := (float64(sector) + 0.5) / float64(p.Sides) * 2 * gomath.Pi
			sin, cos := gomath.Sincos(theta)
			radial := math.Vec3{X: float32(cos), Y: 0, Z: float32(sin)}

			n := normals[seg*p.Sides+sector]
			if n.Dot(radial) < 0 {
				t.Errorf("segment %d sector %d: normal %v points inward", seg, sector, n)
			}
		}
	}
}

func TestSectorNormals_NearCylinder(t *testing.T) {
	// Constant end radii: the only radial variation left is the interior
	// bulge, so lateral normals are close to horizontal.
	p := Params{Sides: 4, Height: 4.5, RadiusBottom: 0.3, RadiusTop: 0.3}
	normals, err := sectorNormals(p, Profile(p))
	if err != nil {
		t.Fatalf("sectorNormals failed: %v", err)
	}
	for i, n := range normals {
		if gomath.Abs(float64(n.Y)) > 0.1 {
			t.Errorf("normal %d has y = %v, want near-horizontal", i, n.Y)
		}
	}
}

func TestSectorNormals_TrueCylinderHorizontal(t *testing.T) {
	// With a flat profile (no bulge) the normals are exactly horizontal.
	p := Params{Sides: 6, Height: 6, RadiusBottom: 0.5, RadiusTop: 0.5}
	radii := []float32{0.5, 0.5, 0.5}
	normals, err := sectorNormals(p, radii)
	if err != nil {
		t.Fatalf("sectorNormals failed: %v", err)
	}
	for i, n := range normals {
		if n.Y != 0 {
			t.Errorf("normal %d has y = %v, want 0", i, n.Y)
		}
	}
}

func TestSectorNormals_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		p     Params
		radii []float32
	}{
		{
			name:  "zero mean radius",
			p:     Params{Sides: 4, Height: 6, RadiusBottom: 1, RadiusTop: 1},
			radii: []float32{1, -1, 1},
		},
		{
			name:  "zero segment height",
			p:     Params{Sides: 4, Height: 0, RadiusBottom: 1, RadiusTop: 1},
			radii: []float32{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sectorNormals(tt.p, tt.radii)
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("got error %v, want ErrDegenerateGeometry", err)
			}
		})
	}
}
