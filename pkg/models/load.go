package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, picking the decoder from the file extension.
// Supported formats are Wavefront OBJ (.obj) and binary glTF (.glb/.gltf).
func Load(path string) (Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
}
