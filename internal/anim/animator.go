package anim

import (
	"fmt"
	"sort"

	"marches-modelforge/internal/skeleton"
)

// Animator authors clips against one skeleton.
type Animator struct {
	skel *skeleton.Skeleton
}

// NewAnimator returns an animator for skel.
func NewAnimator(skel *skeleton.Skeleton) *Animator {
	return &Animator{skel: skel}
}

// ClipOption sets optional clip attributes at author time.
type ClipOption func(*Clip)

// WithStage sets the clip's finish stage. Default is StageFinal.
func WithStage(s Stage) ClipOption {
	return func(c *Clip) { c.Stage = s }
}

// WithRetained marks the clip to survive a non-forced session reset.
func WithRetained() ClipOption {
	return func(c *Clip) { c.Retained = true }
}

// WithLoop declares a seamless loop. Author then requires the first and last
// keyframes to carry identical explicit override sets and values.
func WithLoop() ClipOption {
	return func(c *Clip) { c.Loop = true }
}

// Author bakes keyframes into a clip. Per keyframe, in increasing frame
// order: every bone resets to rest, only the keyframe's explicit overrides
// are applied, and the resulting full pose is recorded. Any bone that should
// hold a non-rest value across keyframes must be re-specified at each one.
func (a *Animator) Author(name string, keys []*Keyframe, interp Interp, opts ...ClipOption) (*Clip, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("anim: clip %q has no keyframes", name)
	}

	c := &Clip{
		Name:   name,
		Interp: interp,
		Stage:  StageFinal,
		skel:   a.skel,
	}
	for _, opt := range opts {
		opt(c)
	}

	ordered := make([]*Keyframe, len(keys))
	copy(ordered, keys)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Frame < ordered[j].Frame })
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Frame == ordered[i-1].Frame {
			return nil, fmt.Errorf("anim: clip %q keys frame %d twice", name, ordered[i].Frame)
		}
	}

	for _, kf := range ordered {
		// Reset to rest, then apply only the explicit overrides.
		pose := make([]Pose, len(a.skel.Bones))
		for bone, o := range kf.Overrides {
			i, ok := a.skel.Find(bone)
			if !ok {
				return nil, fmt.Errorf("anim: clip %q frame %d: %w", name, kf.Frame,
					&skeleton.BoneNotFoundError{Skeleton: a.skel.Name, Bone: bone})
			}
			if o.HasRot {
				pose[i].Rot = o.Rot
			}
			if o.HasTrans {
				pose[i].Trans = o.Trans
			}
		}
		c.Keys = append(c.Keys, BakedKey{Frame: kf.Frame, Pose: pose})
	}
	c.Source = ordered

	if c.Loop {
		first, last := ordered[0], ordered[len(ordered)-1]
		if !sameOverrides(first, last) {
			return nil, fmt.Errorf("anim: looping clip %q: override sets at frames %d and %d differ",
				name, first.Frame, last.Frame)
		}
	}
	return c, nil
}
