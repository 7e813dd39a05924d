// Package geometry constructs the rigid primitive meshes the body-part
// assembler fuses into per-bone units. Location, rotation and scale are baked
// into the vertices at build time so later merges produce correct absolute
// positions with no residual per-object transform state.
package geometry

import (
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
)

// Face is one triangle with a per-face material reference.
// Multi-material meshes carry a different material per face.
type Face struct {
	V   [3]int
	Mat *material.Material
}

// Mesh is a triangle soup with per-face materials.
type Mesh struct {
	Verts []mathutil.Vec3
	Faces []Face
}

// Append fuses src into m, rewriting face indices. Used by the body-part
// assembler; src is not modified.
func (m *Mesh) Append(src *Mesh) {
	base := len(m.Verts)
	m.Verts = append(m.Verts, src.Verts...)
	for _, f := range src.Faces {
		m.Faces = append(m.Faces, Face{
			V:   [3]int{f.V[0] + base, f.V[1] + base, f.V[2] + base},
			Mat: f.Mat,
		})
	}
}

// Materials returns the distinct materials referenced by the mesh,
// in first-use order.
func (m *Mesh) Materials() []*material.Material {
	seen := make(map[*material.Material]bool)
	var out []*material.Material
	for _, f := range m.Faces {
		if f.Mat != nil && !seen[f.Mat] {
			seen[f.Mat] = true
			out = append(out, f.Mat)
		}
	}
	return out
}
