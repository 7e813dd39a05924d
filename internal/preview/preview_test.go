package preview

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/bodypart"
	"marches-modelforge/internal/geometry"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/rig"
	"marches-modelforge/internal/skeleton"
)

func previewAsset(t *testing.T) *asset.Asset {
	t.Helper()
	b := skeleton.NewBuilder("PreviewRig")
	require.NoError(t, b.AddBone("Root", mathutil.Vec3{0, 0, 0.1}, mathutil.Vec3{0, 0, 0.3}, "", false))
	skel, err := b.Build()
	require.NoError(t, err)

	skin := &material.Material{Name: "skin", Color: material.Color{0.5, 0.6, 0.3, 1}, Roughness: 0.9}
	part, err := bodypart.Assemble("Grp_Root", []*geometry.Primitive{
		geometry.Box("Body", mathutil.Vec3{0, 0, 0.3}, mathutil.Vec3{0.3, 0.2, 0.4}, skin),
	}, "Root")
	require.NoError(t, err)
	bound, err := rig.BindAll([]*bodypart.BodyPart{part}, skel)
	require.NoError(t, err)

	return &asset.Asset{Name: "Preview", Skeleton: skel, Parts: bound}
}

func opaquePixels(pix []uint8) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestViewMatrixIdentityAtZero(t *testing.T) {
	m := ViewMatrix(0, 0)
	v := m.MulVec3(mathutil.Vec3{1, 2, 3})
	assert.InDelta(t, 1, v[0], 1e-9)
	assert.InDelta(t, 2, v[1], 1e-9)
	assert.InDelta(t, 3, v[2], 1e-9)
}

func TestRenderFrameRestPose(t *testing.T) {
	a := previewAsset(t)
	opts := Options{Size: 64, Supersample: 1, AzimuthDeg: 35, TiltDeg: -18}
	img := RenderFrame(a, nil, nil, opts)
	require.NotNil(t, img)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.Greater(t, opaquePixels(img.Pix), 0)
}

func TestRenderFrameSupersampled(t *testing.T) {
	a := previewAsset(t)
	opts := Options{Size: 32, Supersample: 2, AzimuthDeg: 35, TiltDeg: -18}
	img := RenderFrame(a, nil, nil, opts)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Greater(t, opaquePixels(img.Pix), 0)
}

func TestRenderFrameDefaultsApplied(t *testing.T) {
	a := previewAsset(t)
	img := RenderFrame(a, nil, nil, Options{})
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestRenderClipFrame(t *testing.T) {
	a := previewAsset(t)
	clip, err := anim.NewAnimator(a.Skeleton).Author("Turn", []*anim.Keyframe{
		anim.Key(1),
		anim.Key(9).Rot("Root", 0, 0, 45),
	}, anim.Linear)
	require.NoError(t, err)

	opts := Options{Size: 32, Supersample: 1, AzimuthDeg: 0, TiltDeg: 0}
	rest := RenderClipFrame(a, clip, 1, opts)
	posed := RenderClipFrame(a, clip, 9, opts)
	assert.Greater(t, opaquePixels(rest.Pix), 0)
	assert.Greater(t, opaquePixels(posed.Pix), 0)
}

func TestWriteWebP(t *testing.T) {
	a := previewAsset(t)
	img := RenderFrame(a, nil, nil, Options{Size: 16, Supersample: 1})
	path := t.TempDir() + "/sub/frame.webp"
	require.NoError(t, WriteWebP(path, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
