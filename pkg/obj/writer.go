package obj

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Writer errors.
var (
	ErrFaceIndexRange = errors.New("face index out of range")
)

// Marshal serializes the model as OBJ text. Coordinates are written with
// 4 decimal digits and indices are 1-based. Faces reference vertex and
// normal indices as `v//n` (no texture index).
//
// Every face index is validated against the record counts before any
// output is produced, so a model with broken index bookkeeping yields an
// error and no partial document.
func (m *Model) Marshal() ([]byte, error) {
	if err := m.checkIndices(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# vertices: %d\n", len(m.Vertices))
	fmt.Fprintf(&buf, "# normals: %d\n", len(m.Normals))
	fmt.Fprintf(&buf, "# faces: %d\n", len(m.Faces))

	for _, v := range m.Vertices {
		fmt.Fprintf(&buf, "v %.4f %.4f %.4f\n", v.X, v.Y, v.Z)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(&buf, "vn %.4f %.4f %.4f\n", n.X, n.Y, n.Z)
	}
	for _, f := range m.Faces {
		fmt.Fprintf(&buf, "f %d//%d %d//%d %d//%d\n",
			f.Vertex[0]+1, f.Normal[0]+1,
			f.Vertex[1]+1, f.Normal[1]+1,
			f.Vertex[2]+1, f.Normal[2]+1)
	}

	return buf.Bytes(), nil
}

// Encode writes the serialized model to w in a single write.
func (m *Model) Encode(w io.Writer) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the serialized model to path. The file is not created
// if serialization fails.
func (m *Model) WriteFile(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// checkIndices verifies that every face reference points at an existing
// vertex and normal record.
func (m *Model) checkIndices() error {
	for i, f := range m.Faces {
		for c := 0; c < 3; c++ {
			if f.Vertex[c] < 0 || f.Vertex[c] >= len(m.Vertices) {
				return fmt.Errorf("face %d: %w: vertex index %d, have %d vertices",
					i, ErrFaceIndexRange, f.Vertex[c], len(m.Vertices))
			}
			if f.Normal[c] < 0 || f.Normal[c] >= len(m.Normals) {
				return fmt.Errorf("face %d: %w: normal index %d, have %d normals",
					i, ErrFaceIndexRange, f.Normal[c], len(m.Normals))
			}
		}
	}
	return nil
}
