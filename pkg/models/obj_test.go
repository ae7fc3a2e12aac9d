package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/amigash/pixel-rendering/pkg/math3d"
)

const singleTriangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestDecodeOBJSingleTriangle(t *testing.T) {
	mesh, err := DecodeOBJ(strings.NewReader(singleTriangleOBJ))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(mesh) != 1 {
		t.Fatalf("got %d triangles, want 1", len(mesh))
	}
	tri := mesh[0]
	if tri.A != math3d.V3(0, 0, 0) || tri.B != math3d.V3(1, 0, 0) || tri.C != math3d.V3(0, 1, 0) {
		t.Errorf("triangle = %+v, want referenced vertex coordinates", tri)
	}
}

func TestDecodeOBJTriangleCount(t *testing.T) {
	// 4 vertices, 4 triangular faces: output must have exactly 4 triangles,
	// in face declaration order.
	input := `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3
f 1 2 4
f 1 3 4
f 2 3 4
`
	mesh, err := DecodeOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(mesh) != 4 {
		t.Fatalf("got %d triangles, want 4", len(mesh))
	}
	if mesh[3].A != math3d.V3(1, 0, 0) {
		t.Errorf("face order not preserved: last triangle starts at %v", mesh[3].A)
	}
}

func TestDecodeOBJQuadFan(t *testing.T) {
	input := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	mesh, err := DecodeOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(mesh) != 2 {
		t.Fatalf("quad produced %d triangles, want 2", len(mesh))
	}
	// Fan from the first vertex: (v1,v2,v3), (v1,v3,v4).
	if mesh[0].A != mesh[1].A {
		t.Errorf("fan triangles do not share the first vertex: %v vs %v", mesh[0].A, mesh[1].A)
	}
	if mesh[0].C != mesh[1].B {
		t.Errorf("fan not contiguous: first.C=%v second.B=%v", mesh[0].C, mesh[1].B)
	}
}

func TestDecodeOBJMalformedIndex(t *testing.T) {
	tests := []struct {
		name string
		face string
	}{
		{"zero index", "f 0 1 2"},
		{"negative index", "f -1 1 2"},
		{"past vertex count", "f 1 2 4"},
		{"not a number", "f 1 2 x"},
		{"too few vertices", "f 1 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := "v 0 0 0\nv 1 0 0\nv 0 1 0\n" + tc.face + "\n"
			_, err := DecodeOBJ(strings.NewReader(input))
			if !errors.Is(err, ErrMalformedIndex) {
				t.Errorf("DecodeOBJ(%q) error = %v, want ErrMalformedIndex", tc.face, err)
			}
		})
	}
}

func TestDecodeOBJEmptyMesh(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"vertices but no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"only comments", "# nothing here\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeOBJ(strings.NewReader(tc.input))
			if !errors.Is(err, ErrEmptyMesh) {
				t.Errorf("DecodeOBJ error = %v, want ErrEmptyMesh", err)
			}
		})
	}
}

func TestDecodeOBJIgnoresUnknownRecords(t *testing.T) {
	input := `# comment
mtllib scene.mtl
o triangle
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0 0
usemtl none
s off
f 1/1/1 2/1/1 3/1/1
`
	mesh, err := DecodeOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeOBJ: %v", err)
	}
	if len(mesh) != 1 {
		t.Errorf("got %d triangles, want 1", len(mesh))
	}
}

// failingReader always errors, exercising the unreadable-source path.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestDecodeOBJUnreadableSource(t *testing.T) {
	_, err := DecodeOBJ(failingReader{})
	if !errors.Is(err, ErrUnreadableSource) {
		t.Errorf("DecodeOBJ error = %v, want ErrUnreadableSource", err)
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	_, err := LoadOBJ("/nonexistent/model.obj")
	if !errors.Is(err, ErrUnreadableSource) {
		t.Errorf("LoadOBJ error = %v, want ErrUnreadableSource", err)
	}
}
