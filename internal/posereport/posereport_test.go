package posereport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

func reportSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	b := skeleton.NewBuilder("ReportRig")
	require.NoError(t, b.AddBone("Root", mathutil.Vec3{}, mathutil.Vec3{0, 0, 0.2}, "", false))
	require.NoError(t, b.AddBone("Spine", mathutil.Vec3{0, 0, 0.2}, mathutil.Vec3{0, 0, 0.5}, "Root", true))
	require.NoError(t, b.AddBone("Head", mathutil.Vec3{0, 0, 0.5}, mathutil.Vec3{0, 0, 0.7}, "Spine", true))
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func TestFromPoseSkipsRestAndSubThreshold(t *testing.T) {
	skel := reportSkeleton(t)
	pose := []anim.Pose{
		{}, // Root at rest
		{Rot: mathutil.Vec3{0.4, 0, 0}},  // under rotation threshold
		{Rot: mathutil.Vec3{-25, 0, 10}}, // reportable
	}
	entries := FromPose(skel, pose)
	require.Len(t, entries, 1)
	assert.Equal(t, "Head", entries[0].Bone)
	require.NotNil(t, entries[0].Rot)
	assert.Nil(t, entries[0].Trans)
}

func TestFromPoseSplitsChannels(t *testing.T) {
	skel := reportSkeleton(t)
	pose := []anim.Pose{
		{Trans: mathutil.Vec3{0, -0.35, 0.30}},
		{Rot: mathutil.Vec3{-80, 0, 5}, Trans: mathutil.Vec3{0, 0.0005, 0}},
		{},
	}
	entries := FromPose(skel, pose)
	require.Len(t, entries, 2)

	assert.Equal(t, "Root", entries[0].Bone)
	assert.Nil(t, entries[0].Rot)
	require.NotNil(t, entries[0].Trans)

	// Spine's translation is under threshold; only rotation reports.
	assert.Equal(t, "Spine", entries[1].Bone)
	require.NotNil(t, entries[1].Rot)
	assert.Nil(t, entries[1].Trans)
}

func TestFromPoseShortSlice(t *testing.T) {
	skel := reportSkeleton(t)
	entries := FromPose(skel, []anim.Pose{{Rot: mathutil.Vec3{10, 0, 0}}})
	require.Len(t, entries, 1)
	assert.Equal(t, "Root", entries[0].Bone)
}

func TestFormat(t *testing.T) {
	rot := mathutil.Vec3{-25.04, 0, 10}
	trans := mathutil.Vec3{0, -0.3512, 0.3}
	out := Format("ReportRig", 30, []Entry{
		{Bone: "Head", Rot: &rot},
		{Bone: "Root", Trans: &trans},
	})

	assert.Contains(t, out, "frame 30")
	assert.Contains(t, out, "Skeleton: ReportRig")
	assert.Contains(t, out, "Head:")
	assert.Contains(t, out, "rot=(-25.0, 0.0, 10.0)")
	assert.Contains(t, out, "loc=(0.0000, -0.3512, 0.3000)")
	assert.False(t, strings.Contains(out, "all bones at rest"))
}

func TestFormatEmpty(t *testing.T) {
	out := Format("ReportRig", 1, nil)
	assert.Contains(t, out, "all bones at rest")
}
