package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Loader error kinds. Callers match them with errors.Is; the wrapped message
// carries line and value detail.
var (
	// ErrUnreadableSource reports an I/O failure opening or reading mesh data.
	ErrUnreadableSource = errors.New("models: unreadable source")
	// ErrMalformedIndex reports a face index that is zero, negative, or past
	// the end of the vertex list.
	ErrMalformedIndex = errors.New("models: malformed vertex index")
	// ErrEmptyMesh reports that parsing produced zero triangles.
	ErrEmptyMesh = errors.New("models: empty mesh")
)

// DecodeOBJ parses a Wavefront OBJ stream into a triangle soup.
//
// Only "v x y z" and "f i1 i2 ... iN" records are consumed; normal and
// texture-coordinate indices in face entries ("i/t/n") are ignored, as are
// all other record types. Faces use 1-based indices into the vertices seen so
// far. Polygons with more than three vertices are fan-triangulated from the
// first vertex, so triangle order follows face declaration order, then fan
// order within a face.
func DecodeOBJ(r io.Reader) (Mesh, error) {
	var (
		vertices []float64x3
		mesh     Mesh
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)
		case "f":
			tris, err := parseFace(fields[1:], vertices)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			mesh = append(mesh, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	if len(mesh) == 0 {
		return nil, ErrEmptyMesh
	}
	return mesh, nil
}

// LoadOBJ opens and decodes an OBJ file.
func LoadOBJ(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()
	return DecodeOBJ(f)
}

type float64x3 = [3]float64

func parseVertex(fields []string) (float64x3, error) {
	var v float64x3
	if len(fields) < 3 {
		return v, fmt.Errorf("vertex has %d coordinates, want 3", len(fields))
	}
	for i := range 3 {
		c, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, fmt.Errorf("vertex coordinate %q: %v", fields[i], err)
		}
		v[i] = c
	}
	return v, nil
}

func parseFace(fields []string, vertices []float64x3) ([]Triangle, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: face has %d vertices, want at least 3", ErrMalformedIndex, len(fields))
	}

	corners := make([]float64x3, len(fields))
	for i, field := range fields {
		// "i", "i/t", "i/t/n", and "i//n" all start with the position index.
		idxText, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(idxText)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedIndex, field)
		}
		if idx < 1 || idx > len(vertices) {
			return nil, fmt.Errorf("%w: %d of %d vertices", ErrMalformedIndex, idx, len(vertices))
		}
		corners[i] = vertices[idx-1]
	}

	// Fan triangulation: (v0, v1, v2), (v0, v2, v3), ...
	tris := make([]Triangle, 0, len(corners)-2)
	for i := 1; i+1 < len(corners); i++ {
		tris = append(tris, Triangle{
			A: vec3Of(corners[0]),
			B: vec3Of(corners[i]),
			C: vec3Of(corners[i+1]),
		})
	}
	return tris, nil
}
