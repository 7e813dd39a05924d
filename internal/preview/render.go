// Package preview renders posed assets to still frames for visual review.
// This is the only place authoring mistakes like mirror-sign errors or
// unexpected rest snaps actually surface, so every clip gets stepped frame
// renders during batch generation. Preview output is a review artifact, not
// engine interchange.
package preview

import (
	"image"
	"math"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/mathutil"
)

// Options controls frame rendering.
type Options struct {
	Size        int     // output edge in pixels
	Supersample int     // render at Size*Supersample, then downsample
	AzimuthDeg  float64 // model turn about world Z
	TiltDeg     float64 // camera tilt about screen X
}

// DefaultOptions is the standard three-quarter review framing.
func DefaultOptions() Options {
	return Options{
		Size:        256,
		Supersample: 2,
		AzimuthDeg:  35,
		TiltDeg:     -18,
	}
}

// ViewMatrix builds the rotation applied to world-space vertices before
// projection: turn the model by azimuth about Z, then tilt about X.
func ViewMatrix(azimuthDeg, tiltDeg float64) mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.RotX(mathutil.Deg2Rad(tiltDeg)),
		mathutil.RotZ(mathutil.Deg2Rad(azimuthDeg)),
	)
}

// RenderFrame renders the asset in the given pose. rot and trans are indexed
// like the skeleton's bones (nil means rest pose, e.g. for static props).
func RenderFrame(a *asset.Asset, rot, trans []mathutil.Vec3, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}

	nb := len(a.Skeleton.Bones)
	if rot == nil {
		rot = make([]mathutil.Vec3, nb)
	}
	if trans == nil {
		trans = make([]mathutil.Vec3, nb)
	}
	worlds := a.Skeleton.WorldMatrices(rot, trans)

	R := ViewMatrix(opts.AzimuthDeg, opts.TiltDeg)

	// Pose, rotate and collect all vertices; track the screen-plane bounds
	// (view axes 0 and 2) for framing.
	type partVerts struct {
		part  int
		verts []mathutil.Vec3
	}
	posed := make([]partVerts, 0, len(a.Parts))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for pi, bp := range a.Parts {
		w := worlds[bp.Bone]
		vs := make([]mathutil.Vec3, len(bp.Part.Mesh.Verts))
		for i, v := range bp.Part.Mesh.Verts {
			t := R.MulVec3(w.MulPoint(v))
			vs[i] = t
			minX = math.Min(minX, t[0])
			maxX = math.Max(maxX, t[0])
			minZ = math.Min(minZ, t[2])
			maxZ = math.Max(maxZ, t[2])
		}
		posed = append(posed, partVerts{part: pi, verts: vs})
	}

	renderSize := opts.Size * opts.Supersample
	img := image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	if len(posed) == 0 {
		return img
	}

	cx := (minX + maxX) / 2
	cz := (minZ + maxZ) / 2
	span := math.Max(maxX-minX, maxZ-minZ)
	if span < 0.001 {
		span = 0.001
	}
	margin := 16 * opts.Supersample
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for _, pv := range posed {
		mesh := &a.Parts[pv.part].Part.Mesh
		n := len(pv.verts)
		px := make([]float64, n)
		py := make([]float64, n)
		pz := make([]float64, n)
		for i, t := range pv.verts {
			px[i] = (t[0]-cx)*scale + half
			py[i] = -(t[2]-cz)*scale + half
			pz[i] = -t[1] // larger = closer to the review camera
		}
		for _, f := range mesh.Faces {
			RasterizeTriangle(fb, px, py, pz, f.V, f.Mat, &lc)
		}
	}

	full := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(full.Pix, fb.Color)
	if opts.Supersample > 1 {
		return Downsample(full, opts.Size)
	}
	return full
}

// RenderClipFrame samples the clip and renders the asset at that frame.
func RenderClipFrame(a *asset.Asset, clip *anim.Clip, frame float64, opts Options) *image.NRGBA {
	rot, trans := clip.SampleChannels(frame)
	return RenderFrame(a, rot, trans, opts)
}
