package anim

import (
	"github.com/tanema/gween/ease"

	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

// Interp selects the interpolation applied uniformly to every channel of a
// clip. Locomotion loops read best Linear (snappy), percussive strikes and
// falls Smoothed.
type Interp int

const (
	Stepped Interp = iota
	Linear
	Smoothed
)

func (i Interp) String() string {
	switch i {
	case Stepped:
		return "stepped"
	case Linear:
		return "linear"
	case Smoothed:
		return "smoothed"
	}
	return "unknown"
}

// Stage records how finished a clip is, so tooling can warn before an asset
// ships with placeholder animation.
type Stage int

const (
	// StageDraft marks a placeholder: a rest frame plus one or two
	// provisional frames, awaiting externally captured pose data.
	StageDraft Stage = iota
	// StageCaptured means hand-posed values have been transcribed in but not
	// yet reviewed.
	StageCaptured
	// StageFinal is reviewed and shippable.
	StageFinal
)

func (s Stage) String() string {
	switch s {
	case StageDraft:
		return "draft"
	case StageCaptured:
		return "captured"
	case StageFinal:
		return "final"
	}
	return "unknown"
}

// BakedKey is one keyframe expanded to a full skeleton pose, indexed like the
// skeleton's bone slice. Bones the source keyframe did not mention are rest.
type BakedKey struct {
	Frame int
	Pose  []Pose
}

// Clip is a named, baked sequence of sparse pose keyframes with one
// interpolation mode for all channels.
type Clip struct {
	Name     string
	Interp   Interp
	Stage    Stage
	Retained bool
	Loop     bool

	// Source holds the authored keyframes in frame order; the explicit
	// override sets stay inspectable for loop checks and review tooling.
	Source []*Keyframe
	Keys   []BakedKey

	skel *skeleton.Skeleton
}

// Skeleton returns the skeleton the clip was authored against.
func (c *Clip) Skeleton() *skeleton.Skeleton {
	return c.skel
}

// FrameRange returns the first and last keyed frame.
func (c *Clip) FrameRange() (first, last int) {
	if len(c.Keys) == 0 {
		return 0, 0
	}
	return c.Keys[0].Frame, c.Keys[len(c.Keys)-1].Frame
}

// Sample returns the full pose at a frame. Frames outside the range clamp to
// the first or last key. Between keys the clip's interpolation mode applies:
// Stepped holds the earlier key until the next keyed frame is reached, Linear
// interpolates, Smoothed eases with an in-out quadratic curve.
func (c *Clip) Sample(frame float64) []Pose {
	n := len(c.Keys)
	pose := make([]Pose, len(c.skel.Bones))
	if n == 0 {
		return pose
	}
	if frame <= float64(c.Keys[0].Frame) {
		copy(pose, c.Keys[0].Pose)
		return pose
	}
	if frame >= float64(c.Keys[n-1].Frame) {
		copy(pose, c.Keys[n-1].Pose)
		return pose
	}

	// Find the surrounding key pair.
	hi := 1
	for hi < n-1 && float64(c.Keys[hi].Frame) < frame {
		hi++
	}
	a, b := c.Keys[hi-1], c.Keys[hi]

	if c.Interp == Stepped {
		// Landing exactly on a key returns that key's pose; holding the
		// earlier key here would carry values past a frame that reset them.
		if frame == float64(b.Frame) {
			copy(pose, b.Pose)
		} else {
			copy(pose, a.Pose)
		}
		return pose
	}

	t := (frame - float64(a.Frame)) / float64(b.Frame-a.Frame)
	if c.Interp == Smoothed {
		t = float64(ease.InOutQuad(float32(t), 0, 1, 1))
	}
	for i := range pose {
		pose[i] = Pose{
			Rot:   a.Pose[i].Rot.Lerp(b.Pose[i].Rot, t),
			Trans: a.Pose[i].Trans.Lerp(b.Pose[i].Trans, t),
		}
	}
	return pose
}

// SampleChannels splits the sampled pose into the rotation and translation
// slices skeleton.WorldMatrices consumes.
func (c *Clip) SampleChannels(frame float64) (rot, trans []mathutil.Vec3) {
	pose := c.Sample(frame)
	rot = make([]mathutil.Vec3, len(pose))
	trans = make([]mathutil.Vec3, len(pose))
	for i, p := range pose {
		rot[i] = p.Rot
		trans[i] = p.Trans
	}
	return rot, trans
}
