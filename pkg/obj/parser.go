package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Parser errors.
var (
	ErrMalformedRecord = errors.New("malformed record")
)

// DefaultExcludePrefixes lists sub-object name prefixes treated as
// authoring decoration (manipulator widgets, reference planes). Faces
// declared under a matching `o` record are dropped; their vertices are
// kept so global indexing stays valid.
var DefaultExcludePrefixes = []string{"WGT-", "Plane"}

// defaultColor is the flat vertex color attached to every parsed vertex.
var defaultColor = [4]float32{1, 1, 1, 1}

// defaultNormal is used when a face reference carries no normal index.
var defaultNormal = [3]float32{0, 1, 0}

// ParseOptions controls reader behavior.
type ParseOptions struct {
	// ExcludePrefixes overrides DefaultExcludePrefixes when non-nil.
	ExcludePrefixes []string
}

// Parse parses OBJ text with default options.
func Parse(data []byte) (*Mesh, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseFile parses an OBJ file from disk with default options.
func ParseFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return Parse(data)
}

// ParseWithOptions parses line-oriented OBJ text into a flat triangle
// mesh. Comment and blank lines are skipped and unknown record types are
// ignored. Faces with more than 3 vertices are fan-triangulated around
// the first vertex; this is only correct for convex planar faces, which
// is all the supported authoring tools produce.
func ParseWithOptions(data []byte, opts ParseOptions) (*Mesh, error) {
	prefixes := opts.ExcludePrefixes
	if prefixes == nil {
		prefixes = DefaultExcludePrefixes
	}

	p := &parser{
		prefixes: prefixes,
		mesh:     &Mesh{},
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.record(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ text: %w", err)
	}

	return p.mesh, nil
}

// parser holds the sequential-scan state. The exclusion flag is explicit
// parser state toggled by each `o` record, never process-global.
type parser struct {
	positions [][3]float32
	normals   [][3]float32
	texcoords [][2]float32
	excluded  bool
	prefixes  []string
	mesh      *Mesh
}

// record processes one non-blank, non-comment line.
func (p *parser) record(line string) error {
	fields := strings.Fields(line)

	switch fields[0] {
	case "o":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		p.excluded = p.isExcluded(name)
	case "v":
		v, err := parseFloats3(fields[1:])
		if err != nil {
			return fmt.Errorf("%w: vertex: %v", ErrMalformedRecord, err)
		}
		p.positions = append(p.positions, v)
	case "vn":
		n, err := parseFloats3(fields[1:])
		if err != nil {
			return fmt.Errorf("%w: normal: %v", ErrMalformedRecord, err)
		}
		p.normals = append(p.normals, n)
	case "vt":
		t, err := parseFloats2(fields[1:])
		if err != nil {
			return fmt.Errorf("%w: texcoord: %v", ErrMalformedRecord, err)
		}
		p.texcoords = append(p.texcoords, t)
	case "f":
		if p.excluded {
			return nil
		}
		return p.face(fields[1:])
	}

	// Unknown record types (s, g, mtllib, usemtl, ...) are ignored.
	return nil
}

// isExcluded reports whether a sub-object name matches an exclusion prefix.
func (p *parser) isExcluded(name string) bool {
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// faceRef is one corner of a face record. Indices are 1-based; zero
// means the field was absent.
type faceRef struct {
	v, vt, vn int
}

// face parses a face record's corner references and emits its fan
// triangulation into the flat mesh.
func (p *parser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("%w: face has %d vertices, need at least 3", ErrMalformedRecord, len(refs))
	}

	corners := make([]faceRef, len(refs))
	for i, s := range refs {
		ref, err := p.parseRef(s)
		if err != nil {
			return err
		}
		corners[i] = ref
	}

	for i := 1; i < len(corners)-1; i++ {
		p.emit(corners[0])
		p.emit(corners[i])
		p.emit(corners[i+1])
	}
	return nil
}

// parseRef parses one `v`, `v/vt`, `v/vt/vn`, or `v//vn` reference and
// bounds-checks each present index against the records collected so far.
func (p *parser) parseRef(s string) (faceRef, error) {
	parts := strings.Split(s, "/")

	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceRef{}, fmt.Errorf("%w: vertex index %q", ErrMalformedRecord, parts[0])
	}
	if v < 1 || v > len(p.positions) {
		return faceRef{}, fmt.Errorf("%w: vertex index %d, have %d vertices", ErrMalformedRecord, v, len(p.positions))
	}
	ref := faceRef{v: v}

	// Empty middle field ("v//vn") means no texture coordinate.
	if len(parts) > 1 && parts[1] != "" {
		vt, err := strconv.Atoi(parts[1])
		if err != nil {
			return faceRef{}, fmt.Errorf("%w: texcoord index %q", ErrMalformedRecord, parts[1])
		}
		if vt < 1 || vt > len(p.texcoords) {
			return faceRef{}, fmt.Errorf("%w: texcoord index %d, have %d texcoords", ErrMalformedRecord, vt, len(p.texcoords))
		}
		ref.vt = vt
	}

	if len(parts) > 2 && parts[2] != "" {
		vn, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceRef{}, fmt.Errorf("%w: normal index %q", ErrMalformedRecord, parts[2])
		}
		if vn < 1 || vn > len(p.normals) {
			return faceRef{}, fmt.Errorf("%w: normal index %d, have %d normals", ErrMalformedRecord, vn, len(p.normals))
		}
		ref.vn = vn
	}

	return ref, nil
}

// emit appends one complete triangle-vertex record, substituting the
// documented defaults for absent normal and texcoord indices.
func (p *parser) emit(ref faceRef) {
	pos := p.positions[ref.v-1]
	p.mesh.Positions = append(p.mesh.Positions, pos[0], pos[1], pos[2])

	n := defaultNormal
	if ref.vn > 0 {
		n = p.normals[ref.vn-1]
	}
	p.mesh.Normals = append(p.mesh.Normals, n[0], n[1], n[2])

	var t [2]float32
	if ref.vt > 0 {
		t = p.texcoords[ref.vt-1]
	}
	p.mesh.TexCoords = append(p.mesh.TexCoords, t[0], t[1])

	p.mesh.Colors = append(p.mesh.Colors, defaultColor[0], defaultColor[1], defaultColor[2], defaultColor[3])
}

// parseFloats3 parses exactly three leading float fields.
func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("have %d fields, need 3", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("field %q is not numeric", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFloats2 parses two leading float fields, tolerating a trailing w.
func parseFloats2(fields []string) ([2]float32, error) {
	var out [2]float32
	if len(fields) < 2 {
		return out, fmt.Errorf("have %d fields, need 2", len(fields))
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("field %q is not numeric", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
