package geometry

import (
	"math"

	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
)

// Box builds a unit cube scaled to scale, with rotation and location baked in.
// A bevel option produces a one-segment chamfer in world units.
func Box(name string, loc, scale mathutil.Vec3, mat *material.Material, opts ...Option) *Primitive {
	var p params
	for _, opt := range opts {
		opt(&p)
	}

	half := scale.Scale(0.5)
	var m Mesh
	if p.bevel > 0 {
		m = chamferedBox(half, p.bevel)
	} else {
		m = plainBox(half)
	}

	assignMaterial(&m, mat)
	bake(&m, loc, p.rotation)
	return &Primitive{Name: name, mesh: m}
}

// Wedge builds a four-sided tapering prism: a diamond base of radius 0.5 at
// local -Z with the apex along local +Z, scaled per axis. Used for ears,
// fangs, spikes and noses.
func Wedge(name string, loc, scale mathutil.Vec3, mat *material.Material, opts ...Option) *Primitive {
	var p params
	for _, opt := range opts {
		opt(&p)
	}

	base := []mathutil.Vec3{
		{0.5, 0, -0.5},
		{0, 0.5, -0.5},
		{-0.5, 0, -0.5},
		{0, -0.5, -0.5},
	}
	m := Mesh{}
	for _, v := range base {
		m.Verts = append(m.Verts, v.MulPerAxis(scale))
	}
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, 0.5}.MulPerAxis(scale))

	apex := 4
	for i := 0; i < 4; i++ {
		m.Faces = append(m.Faces, Face{V: [3]int{i, (i + 1) % 4, apex}})
	}
	// Base cap
	m.Faces = append(m.Faces,
		Face{V: [3]int{0, 2, 1}},
		Face{V: [3]int{0, 3, 2}},
	)

	assignMaterial(&m, mat)
	bake(&m, loc, p.rotation)
	return &Primitive{Name: name, mesh: m}
}

// Cylinder builds an n-segment cylinder of radius 0.5 and depth 1 along
// local Z, scaled per axis. Default segment count is 8.
func Cylinder(name string, loc, scale mathutil.Vec3, mat *material.Material, opts ...Option) *Primitive {
	p := params{segments: 8}
	for _, opt := range opts {
		opt(&p)
	}
	n := p.segments
	if n < 3 {
		n = 3
	}

	m := Mesh{}
	for _, z := range []float64{-0.5, 0.5} {
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			v := mathutil.Vec3{0.5 * math.Cos(a), 0.5 * math.Sin(a), z}
			m.Verts = append(m.Verts, v.MulPerAxis(scale))
		}
	}
	bottomC := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, -0.5}.MulPerAxis(scale))
	topC := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, 0.5}.MulPerAxis(scale))

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		b0, b1 := i, j
		t0, t1 := n+i, n+j
		// Side quad
		m.Faces = append(m.Faces,
			Face{V: [3]int{b0, b1, t1}},
			Face{V: [3]int{b0, t1, t0}},
		)
		// Caps
		m.Faces = append(m.Faces,
			Face{V: [3]int{bottomC, b1, b0}},
			Face{V: [3]int{topC, t0, t1}},
		)
	}

	assignMaterial(&m, mat)
	bake(&m, loc, p.rotation)
	return &Primitive{Name: name, mesh: m}
}

// Sphere builds a UV sphere of radius 0.5, scaled per axis.
// Defaults: 8 segments, 6 rings.
func Sphere(name string, loc, scale mathutil.Vec3, mat *material.Material, opts ...Option) *Primitive {
	p := params{segments: 8, rings: 6}
	for _, opt := range opts {
		opt(&p)
	}
	segs := p.segments
	if segs < 3 {
		segs = 3
	}
	rings := p.rings
	if rings < 2 {
		rings = 2
	}

	m := Mesh{}
	south := 0
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, -0.5}.MulPerAxis(scale))
	for r := 1; r < rings; r++ {
		phi := math.Pi * (float64(r)/float64(rings) - 0.5)
		z := 0.5 * math.Sin(phi)
		rad := 0.5 * math.Cos(phi)
		for s := 0; s < segs; s++ {
			a := 2 * math.Pi * float64(s) / float64(segs)
			v := mathutil.Vec3{rad * math.Cos(a), rad * math.Sin(a), z}
			m.Verts = append(m.Verts, v.MulPerAxis(scale))
		}
	}
	north := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{0, 0, 0.5}.MulPerAxis(scale))

	ring := func(r, s int) int { return 1 + (r-1)*segs + s%segs }

	// Polar fans
	for s := 0; s < segs; s++ {
		m.Faces = append(m.Faces,
			Face{V: [3]int{south, ring(1, s+1), ring(1, s)}},
			Face{V: [3]int{north, ring(rings-1, s), ring(rings-1, s+1)}},
		)
	}
	// Latitude bands
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segs; s++ {
			a, b := ring(r, s), ring(r, s+1)
			c, d := ring(r+1, s), ring(r+1, s+1)
			m.Faces = append(m.Faces,
				Face{V: [3]int{a, b, d}},
				Face{V: [3]int{a, d, c}},
			)
		}
	}

	assignMaterial(&m, mat)
	bake(&m, loc, p.rotation)
	return &Primitive{Name: name, mesh: m}
}

func plainBox(half mathutil.Vec3) Mesh {
	m := Mesh{}
	for c := 0; c < 8; c++ {
		m.Verts = append(m.Verts, corner(c, half))
	}
	// Corner bits: 1=+x, 2=+y, 4=+z (see corner).
	quads := [6][4]int{
		{0, 2, 6, 4},
		{1, 5, 7, 3},
		{0, 4, 5, 1},
		{2, 3, 7, 6},
		{0, 1, 3, 2},
		{4, 6, 7, 5},
	}
	for _, q := range quads {
		m.Faces = append(m.Faces,
			Face{V: [3]int{q[0], q[1], q[2]}},
			Face{V: [3]int{q[0], q[2], q[3]}},
		)
	}
	return m
}

func corner(c int, half mathutil.Vec3) mathutil.Vec3 {
	v := half
	if c&1 == 0 {
		v[0] = -v[0]
	}
	if c&2 == 0 {
		v[1] = -v[1]
	}
	if c&4 == 0 {
		v[2] = -v[2]
	}
	return v
}

// chamferedBox builds a one-segment chamfer: 24 vertices (three per cube
// corner, one per adjacent face), six inset axis faces, twelve edge strips
// and eight corner triangles. Width is clamped so faces never invert.
func chamferedBox(half mathutil.Vec3, width float64) Mesh {
	minHalf := math.Min(half[0], math.Min(half[1], half[2]))
	w := width
	if limit := 0.9 * minHalf; w > limit {
		w = limit
	}

	m := Mesh{}
	// vertex (c, a): the corner vertex lying on the face normal to axis a.
	vid := func(c, a int) int { return c*3 + a }
	for c := 0; c < 8; c++ {
		full := corner(c, half)
		inset := corner(c, mathutil.Vec3{half[0] - w, half[1] - w, half[2] - w})
		for a := 0; a < 3; a++ {
			v := inset
			v[a] = full[a]
			m.Verts = append(m.Verts, v)
		}
	}

	// Axis faces: four corners sharing one sign on axis a.
	for a := 0; a < 3; a++ {
		bit := 1 << a
		for sign := 0; sign < 2; sign++ {
			var q []int
			for c := 0; c < 8; c++ {
				if (c&bit != 0) == (sign == 1) {
					q = append(q, vid(c, a))
				}
			}
			m.Faces = append(m.Faces,
				Face{V: [3]int{q[0], q[1], q[2]}},
				Face{V: [3]int{q[1], q[3], q[2]}},
			)
		}
	}

	// Edge strips: edges run along axis a between the faces of axes b and c.
	for a := 0; a < 3; a++ {
		b, cAxis := (a+1)%3, (a+2)%3
		for sb := 0; sb < 2; sb++ {
			for sc := 0; sc < 2; sc++ {
				lo := sb<<b | sc<<cAxis
				hi := lo | 1<<a
				m.Faces = append(m.Faces,
					Face{V: [3]int{vid(lo, b), vid(lo, cAxis), vid(hi, cAxis)}},
					Face{V: [3]int{vid(lo, b), vid(hi, cAxis), vid(hi, b)}},
				)
			}
		}
	}

	// Corner triangles
	for c := 0; c < 8; c++ {
		m.Faces = append(m.Faces, Face{V: [3]int{vid(c, 0), vid(c, 1), vid(c, 2)}})
	}
	return m
}
