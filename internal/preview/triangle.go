package preview

import (
	"math"

	"marches-modelforge/internal/material"
)

// RasterizeTriangle fills one flat-shaded triangle with z-buffering. The art
// style is untextured blocks, so the whole face is a single lit color — the
// per-pixel work is only coverage and depth.
//
// This is the hot path; the inner loop allocates nothing.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	vi [3]int,
	mat *material.Material,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}
	if mat == nil {
		return
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Face normal in screen space for flat shading
	e1x, e1y, e1z := x1-x0, y1-y0, z1-z0
	e2x, e2y, e2z := x2-x0, y2-y0, z2-z0
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	inv := 1.0 / nl
	normal := [3]float64{nx * inv, ny * inv, nz * inv}

	lr, lg, lb := lc.ShadeFace(normal, mat)
	cr := encode(lr, lc.InvGamma)
	cg := encode(lg, lc.InvGamma)
	cb := encode(lb, lc.InvGamma)
	ca := uint8(math.Min(mat.Color[3], 1) * 255)

	// Bounding box
	w, h := fb.Width, fb.Height
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5
		rowOff := y * w
		for x := minX; x <= maxX; x++ {
			fx := float64(x) + 0.5
			w0 := (dy12*(fx-x2) + dx21*(fy-y2)) * invDet
			w1 := (dy20*(fx-x0) + dx02*(fy-y0)) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*z0 + w1*z1 + w2*z2
			pi := rowOff + x
			if z <= fb.ZBuf[pi] {
				continue
			}
			fb.ZBuf[pi] = z
			ci := pi * 4
			fb.Color[ci] = cr
			fb.Color[ci+1] = cg
			fb.Color[ci+2] = cb
			fb.Color[ci+3] = ca
		}
	}
}

// encode tonemaps a linear value and gamma-encodes it to 8 bits.
func encode(v, invGamma float64) uint8 {
	t := ACESTonemap(v)
	if t < 0 {
		t = 0
	}
	e := math.Pow(t, invGamma)
	if e > 1 {
		e = 1
	}
	return uint8(e*255 + 0.5)
}
