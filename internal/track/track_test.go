package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

func testClips(t *testing.T, names ...string) []*anim.Clip {
	t.Helper()
	b := skeleton.NewBuilder("r")
	require.NoError(t, b.AddBone("Root", mathutil.Vec3{}, mathutil.Vec3{0, 0, 0.2}, "", false))
	skel, err := b.Build()
	require.NoError(t, err)

	a := anim.NewAnimator(skel)
	clips := make([]*anim.Clip, len(names))
	for i, n := range names {
		clips[i], err = a.Author(n, []*anim.Keyframe{anim.Key(1)}, anim.Linear)
		require.NoError(t, err)
	}
	return clips
}

func TestPackageMutes(t *testing.T) {
	c := testClips(t, "Walk")[0]
	tr := Package(c)
	assert.Equal(t, "Walk", tr.Name)
	assert.Same(t, c, tr.Clip)
	assert.True(t, tr.Mute)
}

func TestPackageAllPreview(t *testing.T) {
	clips := testClips(t, "Walk", "Attack", "Die")
	tracks, err := PackageAll(clips, "Attack")
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.True(t, tracks[0].Mute)
	assert.False(t, tracks[1].Mute)
	assert.True(t, tracks[2].Mute)
}

func TestPackageAllAllMuted(t *testing.T) {
	tracks, err := PackageAll(testClips(t, "Walk", "Die"), "")
	require.NoError(t, err)
	for _, tr := range tracks {
		assert.True(t, tr.Mute)
	}
}

func TestPackageAllUnknownPreview(t *testing.T) {
	_, err := PackageAll(testClips(t, "Walk"), "Attack")
	assert.Error(t, err)
}
