package obj

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/citymesh/pkg/math"
)

func testModel() *Model {
	return &Model{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Normals: []math.Vec3{
			{X: 0, Y: 1, Z: 0},
		},
		Faces: []Face{
			{Vertex: [3]int{0, 2, 1}, Normal: [3]int{0, 0, 0}},
		},
	}
}

func TestMarshal_Layout(t *testing.T) {
	data, err := testModel().Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"# vertices: 3",
		"# normals: 1",
		"# faces: 1",
		"v 0.0000 0.0000 0.0000",
		"v 1.0000 0.0000 0.0000",
		"v 0.0000 0.0000 1.0000",
		"vn 0.0000 1.0000 0.0000",
		"f 1//1 3//1 2//1",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), data)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: got %q, want %q", i, lines[i], w)
		}
	}
}

func TestMarshal_Precision(t *testing.T) {
	m := &Model{
		Vertices: []math.Vec3{{X: 0.123456, Y: -1.98765, Z: 2.5}},
	}
	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "v 0.1235 -1.9877 2.5000") {
		t.Errorf("expected 4-decimal vertex record, got:\n%s", data)
	}
}

func TestMarshal_IndexRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Model)
	}{
		{"vertex index too large", func(m *Model) { m.Faces[0].Vertex[1] = 3 }},
		{"vertex index negative", func(m *Model) { m.Faces[0].Vertex[0] = -1 }},
		{"normal index too large", func(m *Model) { m.Faces[0].Normal[2] = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			tt.mutate(m)
			_, err := m.Marshal()
			if !errors.Is(err, ErrFaceIndexRange) {
				t.Errorf("got error %v, want ErrFaceIndexRange", err)
			}
		})
	}
}

func TestWriteFile_NoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.obj")

	m := testModel()
	m.Faces[0].Vertex[0] = 99
	if err := m.WriteFile(path); err == nil {
		t.Fatal("expected error for out-of-range face index")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file to be written, stat err = %v", err)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")

	if err := testModel().WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	mesh, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("got %d triangles, want 1", mesh.TriangleCount())
	}
}
