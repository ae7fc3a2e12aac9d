// Package models provides triangle-soup geometry and mesh loading for pixel-rendering.
package models

import "github.com/amigash/pixel-rendering/pkg/math3d"

// Triangle is three 3D points in winding order. The winding determines the
// direction of the surface normal: counter-clockwise vertices (seen from the
// front) produce an outward normal under the right-hand rule.
type Triangle struct {
	A, B, C math3d.Vec3
}

// SurfaceNormal returns the unit normal of the triangle's plane,
// normalize((B-A) x (C-A)). Degenerate triangles return the zero vector.
func (t Triangle) SurfaceNormal() math3d.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// Centroid returns the average of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// Mesh is an ordered sequence of triangles. The order is the paint order;
// it never affects correctness. A mesh is built once at load time and not
// mutated afterwards.
type Mesh []Triangle

// Bounds is an axis-aligned bounding box over a mesh.
type Bounds struct {
	Min, Max math3d.Vec3
}

// ComputeBounds returns the axis-aligned bounds of the mesh.
// An empty mesh yields a zero box at the origin.
func ComputeBounds(m Mesh) Bounds {
	if len(m) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m[0].A, Max: m[0].A}
	for _, t := range m {
		for _, v := range [3]math3d.Vec3{t.A, t.B, t.C} {
			b.Min = b.Min.Min(v)
			b.Max = b.Max.Max(v)
		}
	}
	return b
}

func vec3Of(c [3]float64) math3d.Vec3 {
	return math3d.V3(c[0], c[1], c[2])
}

// Center returns the center of the box.
func (b Bounds) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b Bounds) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}
