package geometry

import (
	"fmt"

	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
)

// Primitive is a single frozen geometric unit. It exists only between
// construction and the merge into a body part; Take consumes it and any
// further use is an error.
type Primitive struct {
	Name     string
	mesh     Mesh
	consumed bool
}

// Take hands over the primitive's mesh and marks it consumed.
func (p *Primitive) Take() (Mesh, error) {
	if p.consumed {
		return Mesh{}, fmt.Errorf("geometry: primitive %q already merged", p.Name)
	}
	p.consumed = true
	return p.mesh, nil
}

// Consumed reports whether the primitive has been merged away.
func (p *Primitive) Consumed() bool {
	return p.consumed
}

// VertexCount returns the number of vertices, zero once consumed.
func (p *Primitive) VertexCount() int {
	if p.consumed {
		return 0
	}
	return len(p.mesh.Verts)
}

// Option adjusts optional primitive parameters.
type Option func(*params)

type params struct {
	rotation mathutil.Vec3 // Euler XYZ degrees
	bevel    float64
	segments int
	rings    int
}

// WithRotation sets the Euler XYZ rotation in degrees, frozen into the
// vertices before the location offset is applied.
func WithRotation(x, y, z float64) Option {
	return func(p *params) { p.rotation = mathutil.Vec3{x, y, z} }
}

// WithBevel sets a chamfer width in world units. Boxes get a real one-segment
// chamfer; the other shapes record and ignore it, matching its purely visual
// role in this art style.
func WithBevel(width float64) Option {
	return func(p *params) { p.bevel = width }
}

// WithSegments sets the radial segment count for cylinders and spheres.
func WithSegments(n int) Option {
	return func(p *params) { p.segments = n }
}

// WithRings sets the latitude ring count for spheres.
func WithRings(n int) Option {
	return func(p *params) { p.rings = n }
}

// bake freezes rotation, then translation, into every vertex. Scale is
// already applied by the shape constructors. Zero scale is accepted silently;
// degenerate geometry surfaces only visually.
func bake(m *Mesh, loc mathutil.Vec3, rotDeg mathutil.Vec3) {
	r := mathutil.EulerXYZDeg(rotDeg)
	for i, v := range m.Verts {
		m.Verts[i] = loc.Add(r.MulVec3(v))
	}
}

func assignMaterial(m *Mesh, mat *material.Material) {
	for i := range m.Faces {
		m.Faces[i].Mat = mat
	}
}
