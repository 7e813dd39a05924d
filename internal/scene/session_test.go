package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
	"marches-modelforge/internal/track"
)

func authorAsset(t *testing.T, name string, retained ...string) *asset.Asset {
	t.Helper()
	b := skeleton.NewBuilder(name + "Rig")
	require.NoError(t, b.AddBone("Root", mathutil.Vec3{}, mathutil.Vec3{0, 0, 0.2}, "", false))
	skel, err := b.Build()
	require.NoError(t, err)

	keep := make(map[string]bool)
	for _, n := range retained {
		keep[n] = true
	}

	an := anim.NewAnimator(skel)
	var clips []*anim.Clip
	for _, n := range []string{"Walk", "Die"} {
		var opts []anim.ClipOption
		if keep[n] {
			opts = append(opts, anim.WithRetained())
		}
		c, err := an.Author(n, []*anim.Keyframe{anim.Key(1)}, anim.Linear, opts...)
		require.NoError(t, err)
		clips = append(clips, c)
	}
	tracks, err := track.PackageAll(clips, "")
	require.NoError(t, err)
	return &asset.Asset{Name: name, Skeleton: skel, Tracks: tracks}
}

func TestAddAssetRejectsDuplicate(t *testing.T) {
	s := New()
	require.NoError(t, s.AddAsset(authorAsset(t, "Orc")))
	err := s.AddAsset(authorAsset(t, "Orc"))
	assert.Error(t, err)
}

func TestAssetLookup(t *testing.T) {
	s := New()
	a := authorAsset(t, "Orc")
	require.NoError(t, s.AddAsset(a))

	got, ok := s.Asset("Orc")
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = s.Asset("Goblin")
	assert.False(t, ok)
	assert.Len(t, s.Assets(), 1)
}

func TestResetCarriesRetainedClips(t *testing.T) {
	s := New()
	require.NoError(t, s.AddAsset(authorAsset(t, "Orc", "Walk")))

	n := s.Reset(ResetOptions{})
	assert.Empty(t, n.Assets())
	assert.Equal(t, 1, n.RetainedCount())

	// Retained clips are keyed by qualified name so same-named clips from
	// different assets never collide.
	c, ok := n.RetainedClip("Orc/Walk")
	require.True(t, ok)
	assert.Equal(t, "Walk", c.Name)
	_, ok = n.RetainedClip("Walk")
	assert.False(t, ok)
	_, ok = n.RetainedClip("Orc/Die")
	assert.False(t, ok)
}

func TestResetQualifiedNamesKeepArchetypesApart(t *testing.T) {
	s := New()
	require.NoError(t, s.AddAsset(authorAsset(t, "Orc", "Walk")))
	require.NoError(t, s.AddAsset(authorAsset(t, "Pikeman", "Walk")))

	n := s.Reset(ResetOptions{})
	assert.Equal(t, 2, n.RetainedCount())

	orc, ok := n.RetainedClip("Orc/Walk")
	require.True(t, ok)
	pik, ok := n.RetainedClip("Pikeman/Walk")
	require.True(t, ok)
	assert.NotSame(t, orc, pik)
	assert.Equal(t, "OrcRig", orc.Skeleton().Name)
	assert.Equal(t, "PikemanRig", pik.Skeleton().Name)
}

func TestForcedResetPurges(t *testing.T) {
	s := New()
	require.NoError(t, s.AddAsset(authorAsset(t, "Orc", "Walk")))

	n := s.Reset(ResetOptions{Force: true})
	assert.Equal(t, 0, n.RetainedCount())
}

func TestRetainedSurvivesSecondReset(t *testing.T) {
	s := New()
	require.NoError(t, s.AddAsset(authorAsset(t, "Orc", "Walk")))

	// A reset with no regeneration in between must not drop carried clips.
	n := s.Reset(ResetOptions{}).Reset(ResetOptions{})
	_, ok := n.RetainedClip("Orc/Walk")
	assert.True(t, ok)
}

func TestResetGivesFreshCatalog(t *testing.T) {
	s := New()
	_, err := s.Materials.Define("Skin", material.Color{1, 0, 0, 1})
	require.NoError(t, err)

	n := s.Reset(ResetOptions{})
	assert.Equal(t, 0, n.Materials.Len())
}
