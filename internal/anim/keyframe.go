// Package anim authors sparse-keyframe animation clips against a skeleton.
// Baking follows a reset-then-override policy: at every keyframe each bone
// starts from rest and only the explicit overrides are applied, so a bone a
// keyframe does not mention snaps to rest instead of holding its prior value.
package anim

import "marches-modelforge/internal/mathutil"

// Override is one bone's explicit pose at a keyframe: a rotation (Euler XYZ
// degrees, world axes, pivoting on the bone head) and/or a translation
// (world-axis units).
type Override struct {
	Rot      mathutil.Vec3
	Trans    mathutil.Vec3
	HasRot   bool
	HasTrans bool
}

// Pose is a bone's fully baked transform at a frame; the zero value is rest.
type Pose struct {
	Rot   mathutil.Vec3
	Trans mathutil.Vec3
}

// Keyframe is a frame index plus explicit per-bone overrides. Bones not
// listed default to rest at this keyframe.
type Keyframe struct {
	Frame     int
	Overrides map[string]Override
}

// Key starts a keyframe at the given frame. Overrides chain fluently:
//
//	anim.Key(7).Rot("L_UpperLeg", 30, 0, 0).Loc("Root", 0, 0, 0.02)
func Key(frame int) *Keyframe {
	return &Keyframe{Frame: frame, Overrides: make(map[string]Override)}
}

// Rot sets the bone's rotation override in degrees.
func (k *Keyframe) Rot(bone string, x, y, z float64) *Keyframe {
	o := k.Overrides[bone]
	o.Rot = mathutil.Vec3{x, y, z}
	o.HasRot = true
	k.Overrides[bone] = o
	return k
}

// Loc sets the bone's translation override.
func (k *Keyframe) Loc(bone string, x, y, z float64) *Keyframe {
	o := k.Overrides[bone]
	o.Trans = mathutil.Vec3{x, y, z}
	o.HasTrans = true
	k.Overrides[bone] = o
	return k
}

// Clone copies the keyframe, optionally at a new frame index.
func (k *Keyframe) Clone(frame int) *Keyframe {
	n := Key(frame)
	for bone, o := range k.Overrides {
		n.Overrides[bone] = o
	}
	return n
}

// sameOverrides reports whether two keyframes carry identical explicit
// override sets and values. Looping clips require this for their first and
// last keyframes.
func sameOverrides(a, b *Keyframe) bool {
	if len(a.Overrides) != len(b.Overrides) {
		return false
	}
	for bone, oa := range a.Overrides {
		ob, ok := b.Overrides[bone]
		if !ok || oa != ob {
			return false
		}
	}
	return true
}
