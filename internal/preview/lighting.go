package preview

import (
	"math"

	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters: a warm key light, a cool
// rim and a hemisphere fill, roughly matching the sun + area preview setup
// the models were reviewed under.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	ViewDir  mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns the standard preview lighting.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{3, -3, 5}.Normalize()
	rimDir := mathutil.Vec3{-2, 2, 3}.Normalize()
	viewDir := mathutil.Vec3{0, -1, -0.4}.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		ViewDir:  viewDir,
		HalfMain: halfMain,
		Ambient:  0.45,
		Hemi:     0.40,
		Direct:   1.35,
		Rim:      0.35,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// ShadeFace computes the lit linear RGB for one flat-shaded face of the given
// material. Roughness drives the specular lobe width, metallic trades diffuse
// for specular, and emission adds the material color back on top so glowing
// surfaces (eyes, fuses) read even in shadow.
func (lc *LightConfig) ShadeFace(normal mathutil.Vec3, mat *material.Material) (r, g, b float64) {
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill keyed on world up
	hemi := (math.Abs(normal[2]))*0.5 + 0.5
	diffuse := lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim
	diffuse *= 1.0 - 0.5*mat.Metallic

	// Blinn-Phong; rougher surfaces get a wider, weaker lobe
	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	specPow := 4.0 + (1.0-mat.Roughness)*56.0
	specInt := (0.15 + 0.85*mat.Metallic) * (1.0 - 0.7*mat.Roughness)
	spec := math.Pow(ndh, specPow) * specInt

	cr, cg, cb := mat.Color[0], mat.Color[1], mat.Color[2]
	r = cr*diffuse + spec + cr*mat.Emission*0.6
	g = cg*diffuse + spec + cg*mat.Emission*0.6
	b = cb*diffuse + spec + cb*mat.Emission*0.6
	return r * lc.Exposure, g * lc.Exposure, b * lc.Exposure
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
