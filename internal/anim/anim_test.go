package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

func nodSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	b := skeleton.NewBuilder("NodRig")
	require.NoError(t, b.AddBone("Root", mathutil.Vec3{0, 0, 0.1}, mathutil.Vec3{0, 0, 0.4}, "", false))
	require.NoError(t, b.AddBone("Head", mathutil.Vec3{0, 0, 0.4}, mathutil.Vec3{0, 0, 0.7}, "Root", true))
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func poseOf(t *testing.T, c *Clip, frame int, bone string) Pose {
	t.Helper()
	i, ok := c.Skeleton().Find(bone)
	require.True(t, ok)
	for _, k := range c.Keys {
		if k.Frame == frame {
			return k.Pose[i]
		}
	}
	t.Fatalf("clip %q has no key at frame %d", c.Name, frame)
	return Pose{}
}

func TestAuthorResetThenOverride(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	// Head is keyed at frame 5 only. At frame 10 it must snap back to rest,
	// not hold the frame-5 value.
	c, err := a.Author("Nod", []*Keyframe{
		Key(1),
		Key(5).Rot("Head", -25, 0, 0),
		Key(10).Loc("Root", 0, 0, 0.02),
	}, Linear)
	require.NoError(t, err)

	assert.Equal(t, Pose{}, poseOf(t, c, 1, "Head"))
	assert.Equal(t, mathutil.Vec3{-25, 0, 0}, poseOf(t, c, 5, "Head").Rot)
	assert.Equal(t, Pose{}, poseOf(t, c, 10, "Head"))
	assert.Equal(t, mathutil.Vec3{0, 0, 0.02}, poseOf(t, c, 10, "Root").Trans)
}

func TestAuthorRotAndLocIndependent(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	c, err := a.Author("n", []*Keyframe{
		Key(1).Rot("Root", 10, 0, 0).Loc("Root", 0, 0.1, 0),
	}, Stepped)
	require.NoError(t, err)
	p := poseOf(t, c, 1, "Root")
	assert.Equal(t, mathutil.Vec3{10, 0, 0}, p.Rot)
	assert.Equal(t, mathutil.Vec3{0, 0.1, 0}, p.Trans)
}

func TestAuthorSortsKeyframes(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	c, err := a.Author("n", []*Keyframe{Key(10), Key(1), Key(5)}, Linear)
	require.NoError(t, err)
	first, last := c.FrameRange()
	assert.Equal(t, 1, first)
	assert.Equal(t, 10, last)
}

func TestAuthorRejectsDuplicateFrame(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	_, err := a.Author("n", []*Keyframe{Key(1), Key(1)}, Linear)
	assert.Error(t, err)
}

func TestAuthorRejectsUnknownBone(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	_, err := a.Author("n", []*Keyframe{Key(1).Rot("Tail", 1, 0, 0)}, Linear)
	var bnf *skeleton.BoneNotFoundError
	require.ErrorAs(t, err, &bnf)
	assert.Equal(t, "Tail", bnf.Bone)
}

func TestAuthorRejectsEmpty(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	_, err := a.Author("n", nil, Linear)
	assert.Error(t, err)
}

func TestLoopRequiresClosure(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))

	open := []*Keyframe{
		Key(1).Rot("Head", -25, 0, 0),
		Key(25),
	}
	_, err := a.Author("n", open, Linear, WithLoop())
	assert.Error(t, err)

	first := Key(1).Rot("Head", -25, 0, 0)
	closed := []*Keyframe{first, Key(13), first.Clone(25)}
	c, err := a.Author("n", closed, Linear, WithLoop())
	require.NoError(t, err)
	assert.True(t, c.Loop)
}

func TestLoopClosureComparesValues(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	keys := []*Keyframe{
		Key(1).Rot("Head", -25, 0, 0),
		Key(25).Rot("Head", -25, 0, 1),
	}
	_, err := a.Author("n", keys, Linear, WithLoop())
	assert.Error(t, err)
}

func TestClipOptions(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	c, err := a.Author("n", []*Keyframe{Key(1)}, Smoothed,
		WithStage(StageCaptured), WithRetained())
	require.NoError(t, err)
	assert.Equal(t, StageCaptured, c.Stage)
	assert.True(t, c.Retained)
	assert.Equal(t, Smoothed, c.Interp)
}

func TestSampleClamps(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	c, err := a.Author("n", []*Keyframe{
		Key(5).Rot("Head", -10, 0, 0),
		Key(15).Rot("Head", -30, 0, 0),
	}, Linear)
	require.NoError(t, err)

	head, _ := c.Skeleton().Find("Head")
	assert.Equal(t, mathutil.Vec3{-10, 0, 0}, c.Sample(1)[head].Rot)
	assert.Equal(t, mathutil.Vec3{-30, 0, 0}, c.Sample(99)[head].Rot)
}

func TestSampleInterpModes(t *testing.T) {
	keys := []*Keyframe{
		Key(1).Rot("Head", 0, 0, 0),
		Key(11).Rot("Head", 20, 0, 0),
	}
	head := 1

	a := NewAnimator(nodSkeleton(t))

	stepped, err := a.Author("s", keys, Stepped)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stepped.Sample(6)[head].Rot[0])

	linear, err := a.Author("l", keys, Linear)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, linear.Sample(6)[head].Rot[0], 1e-9)
	assert.InDelta(t, 4.0, linear.Sample(3)[head].Rot[0], 1e-9)

	smoothed, err := a.Author("m", keys, Smoothed)
	require.NoError(t, err)
	// In-out easing: midpoint matches linear, earlier samples lag it.
	assert.InDelta(t, 10.0, smoothed.Sample(6)[head].Rot[0], 1e-5)
	assert.Less(t, smoothed.Sample(3)[head].Rot[0], 4.0)
	assert.Greater(t, smoothed.Sample(3)[head].Rot[0], 0.0)
}

func TestSampleSteppedAtKeyedFrame(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	c, err := a.Author("s", []*Keyframe{
		Key(1).Rot("Head", 15, 0, 0),
		Key(10).Loc("Root", 0, 0, 0.05),
		Key(20).Rot("Head", 15, 0, 0),
	}, Stepped)
	require.NoError(t, err)

	head, _ := c.Skeleton().Find("Head")
	// Head is unmentioned at frame 10, so sampling exactly there must show
	// rest, not the held value from frame 1.
	assert.Equal(t, mathutil.Vec3{0, 0, 0}, c.Sample(10)[head].Rot)
	assert.Equal(t, mathutil.Vec3{0, 0, 0.05}, c.Sample(10)[0].Trans)
	// Mid-interval still holds the earlier key.
	assert.Equal(t, mathutil.Vec3{15, 0, 0}, c.Sample(5)[head].Rot)
	assert.Equal(t, mathutil.Vec3{0, 0, 0.05}, c.Sample(15)[0].Trans)
}

func TestSampleChannels(t *testing.T) {
	a := NewAnimator(nodSkeleton(t))
	c, err := a.Author("n", []*Keyframe{
		Key(1).Rot("Head", -25, 0, 0).Loc("Root", 0, 0, 0.05),
	}, Linear)
	require.NoError(t, err)

	rot, trans := c.SampleChannels(1)
	assert.Equal(t, mathutil.Vec3{-25, 0, 0}, rot[1])
	assert.Equal(t, mathutil.Vec3{0, 0, 0.05}, trans[0])
}

func limbConvention() *Convention {
	return NewConvention().
		Pair("L_UpperLeg", "R_UpperLeg", FlipX, FlipX).
		Pair("L_UpperArm", "R_UpperArm", FlipX, FlipX).
		SelfPair("Spine", FlipZ, NoFlip)
}

func TestExpandFillsMissingSide(t *testing.T) {
	c := limbConvention()
	k := c.Expand(Key(7).Rot("L_UpperLeg", 30, 5, 2))

	o, ok := k.Overrides["R_UpperLeg"]
	require.True(t, ok)
	assert.Equal(t, mathutil.Vec3{-30, 5, 2}, o.Rot)
}

func TestExpandExplicitWins(t *testing.T) {
	// A pinned counterpart declares asymmetry; expansion must not clobber it.
	c := limbConvention()
	k := c.Expand(Key(7).
		Rot("L_UpperLeg", 30, 0, 0).
		Rot("R_UpperLeg", 0, 0, 0))

	assert.Equal(t, mathutil.Vec3{0, 0, 0}, k.Overrides["R_UpperLeg"].Rot)
}

func TestExpandLeavesCenterline(t *testing.T) {
	c := limbConvention()
	k := c.Expand(Key(7).Rot("Spine", 0, 0, 3))
	assert.Len(t, k.Overrides, 1)
}

func TestExpandTranslationMask(t *testing.T) {
	c := NewConvention().Pair("L_Hand", "R_Hand", FlipYZ, FlipX)
	k := c.Expand(Key(1).
		Rot("L_Hand", 10, 20, 30).
		Loc("L_Hand", 0.1, 0.2, 0.3))

	o := k.Overrides["R_Hand"]
	assert.Equal(t, mathutil.Vec3{10, -20, -30}, o.Rot)
	assert.Equal(t, mathutil.Vec3{-0.1, 0.2, 0.3}, o.Trans)
}

func TestSwappedTradesPairs(t *testing.T) {
	c := limbConvention()
	stride := c.Expand(Key(7).
		Rot("L_UpperLeg", 30, 0, 0).
		Rot("Spine", 0, 0, 3).
		Loc("Root", 0, 0, 0.02))

	swapped := c.Swapped(stride, 19)
	assert.Equal(t, 19, swapped.Frame)

	// Paired overrides trade sides unchanged.
	assert.Equal(t, mathutil.Vec3{30, 0, 0}, swapped.Overrides["R_UpperLeg"].Rot)
	assert.Equal(t, mathutil.Vec3{-30, 0, 0}, swapped.Overrides["L_UpperLeg"].Rot)
	// Centerline bones negate their declared axes.
	assert.Equal(t, mathutil.Vec3{0, 0, -3}, swapped.Overrides["Spine"].Rot)
	// Unpaired bones carry over as-is.
	assert.Equal(t, mathutil.Vec3{0, 0, 0.02}, swapped.Overrides["Root"].Trans)
}

func TestSwappedRoundTrips(t *testing.T) {
	c := limbConvention()
	stride := c.Expand(Key(7).
		Rot("L_UpperLeg", 30, 0, 0).
		Rot("Spine", 0, 0, 3))

	back := c.Swapped(c.Swapped(stride, 19), 31)
	assert.Equal(t, stride.Overrides, back.Overrides)
}

func TestCloneIsIndependent(t *testing.T) {
	k := Key(1).Rot("Head", 1, 2, 3)
	n := k.Clone(9)
	n.Rot("Head", 4, 5, 6)
	assert.Equal(t, mathutil.Vec3{1, 2, 3}, k.Overrides["Head"].Rot)
	assert.Equal(t, 9, n.Frame)
}
