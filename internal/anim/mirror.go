package anim

// Bilateral motion used to be authored by hand-writing sign-flipped literals
// for the opposite side, the most common source of animation-asymmetry
// defects. A Convention encodes the per-bone-pair sign rules once so one
// authored side produces the other automatically.

// Common axis negation masks, indexed X, Y, Z.
var (
	NoFlip = [3]bool{}
	FlipX  = [3]bool{true, false, false}
	FlipY  = [3]bool{false, true, false}
	FlipZ  = [3]bool{false, false, true}
	FlipYZ = [3]bool{false, true, true}
)

type mirrorRule struct {
	counterpart string
	rot         [3]bool
	trans       [3]bool
}

// Convention holds the bilateral mirror rules for one skeleton's naming and
// local-frame conventions.
type Convention struct {
	rules map[string]mirrorRule
}

// NewConvention returns an empty rule set.
func NewConvention() *Convention {
	return &Convention{rules: make(map[string]mirrorRule)}
}

// Pair declares left and right as mirror counterparts. rot and trans select
// the axes whose sign flips when a value crosses sides.
func (c *Convention) Pair(left, right string, rot, trans [3]bool) *Convention {
	c.rules[left] = mirrorRule{counterpart: right, rot: rot, trans: trans}
	c.rules[right] = mirrorRule{counterpart: left, rot: rot, trans: trans}
	return c
}

// SelfPair declares a centerline bone (spine twist, say) whose selected axes
// negate under a side swap.
func (c *Convention) SelfPair(bone string, rot, trans [3]bool) *Convention {
	c.rules[bone] = mirrorRule{counterpart: bone, rot: rot, trans: trans}
	return c
}

func negate(o Override, rot, trans [3]bool) Override {
	for i := 0; i < 3; i++ {
		if o.HasRot && rot[i] {
			o.Rot[i] = -o.Rot[i]
		}
		if o.HasTrans && trans[i] {
			o.Trans[i] = -o.Trans[i]
		}
	}
	return o
}

// Expand fills in the missing side of every paired override: if a keyframe
// sets one side and not its counterpart, the counterpart receives the
// sign-flipped value. An explicitly set counterpart always wins, which is how
// asymmetric stances (a one-handed weapon, a bent trailing knee) are
// declared. Centerline bones are left alone. Returns the same keyframe.
func (c *Convention) Expand(k *Keyframe) *Keyframe {
	added := make(map[string]Override)
	for bone, o := range k.Overrides {
		r, ok := c.rules[bone]
		if !ok || r.counterpart == bone {
			continue
		}
		if _, explicit := k.Overrides[r.counterpart]; explicit {
			continue
		}
		added[r.counterpart] = negate(o, r.rot, r.trans)
	}
	for bone, o := range added {
		k.Overrides[bone] = o
	}
	return k
}

// Swapped builds the opposite half-cycle keyframe at a new frame: paired
// overrides trade places unchanged, centerline bones negate their declared
// axes, unpaired bones carry over as-is. A walk cycle authors one stride and
// derives the other with this.
func (c *Convention) Swapped(k *Keyframe, frame int) *Keyframe {
	n := Key(frame)
	for bone, o := range k.Overrides {
		r, ok := c.rules[bone]
		switch {
		case !ok:
			n.Overrides[bone] = o
		case r.counterpart == bone:
			n.Overrides[bone] = negate(o, r.rot, r.trans)
		default:
			n.Overrides[r.counterpart] = o
		}
	}
	return n
}
