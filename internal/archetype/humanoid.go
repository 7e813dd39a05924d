package archetype

import (
	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

// v3 shortens the coordinate literals the generators are full of.
func v3(x, y, z float64) mathutil.Vec3 {
	return mathutil.Vec3{x, y, z}
}

// humanoidDims holds the key joint coordinates of a biped armature, ground
// offset already applied. X values are magnitudes for the left/right sides;
// centerline bones run up the Z axis.
type humanoidDims struct {
	RootHeadZ, RootTailZ  float64
	SpineTailZ, HeadTailZ float64
	ShoulderX, ShoulderZ  float64
	ElbowX, ElbowZ        float64
	WristX, WristZ        float64
	HandTipZ              float64 // hands only
	HipX                  float64
	KneeZ, AnkleZ         float64
}

// Orc build: broad shoulders, long arms, stubby legs.
var orcDims = humanoidDims{
	RootHeadZ: 0.33, RootTailZ: 0.37,
	SpineTailZ: 0.64, HeadTailZ: 0.92,
	ShoulderX: 0.19, ShoulderZ: 0.61,
	ElbowX: 0.28, ElbowZ: 0.59,
	WristX: 0.30, WristZ: 0.35,
	HipX:  0.12,
	KneeZ: 0.16, AnkleZ: 0.03,
}

// Human build, with hand joints for weapon grips.
var humanDims = humanoidDims{
	RootHeadZ: 0.26, RootTailZ: 0.30,
	SpineTailZ: 0.52, HeadTailZ: 0.70,
	ShoulderX: 0.12, ShoulderZ: 0.50,
	ElbowX: 0.16, ElbowZ: 0.46,
	WristX: 0.17, WristZ: 0.30,
	HandTipZ: 0.25,
	HipX:     0.07,
	KneeZ:    0.14, AnkleZ: 0.03,
}

// Goblin build: oversized head, short limbs.
var goblinDims = humanoidDims{
	RootHeadZ: 0.24, RootTailZ: 0.28,
	SpineTailZ: 0.48, HeadTailZ: 0.68,
	ShoulderX: 0.11, ShoulderZ: 0.46,
	ElbowX: 0.17, ElbowZ: 0.44,
	WristX: 0.18, WristZ: 0.26,
	HipX:  0.07,
	KneeZ: 0.12, AnkleZ: 0.03,
}

// humanoidRig positions one biped skeleton, optionally name-prefixed and
// spatially offset so several actors can share a single armature.
type humanoidRig struct {
	Prefix string
	Offset mathutil.Vec3
	Parent string // "" for a standalone biped; crew rigs hang under a shared root
	Hands  bool
	Dims   humanoidDims
}

func (h humanoidRig) bone(name string) string {
	return h.Prefix + name
}

func (h humanoidRig) at(x, y, z float64) mathutil.Vec3 {
	return mathutil.Vec3{x + h.Offset[0], y + h.Offset[1], z + h.Offset[2]}
}

// addBones appends the full biped chain to b: Root, Spine, Head, both arms
// (optionally with hands) and both legs.
func (h humanoidRig) addBones(b *skeleton.Builder) error {
	d := h.Dims

	if err := b.AddBone(h.bone("Root"), h.at(0, 0, d.RootHeadZ), h.at(0, 0, d.RootTailZ), h.Parent, false); err != nil {
		return err
	}
	if err := b.AddBone(h.bone("Spine"), h.at(0, 0, d.RootTailZ), h.at(0, 0, d.SpineTailZ), h.bone("Root"), true); err != nil {
		return err
	}
	if err := b.AddBone(h.bone("Head"), h.at(0, 0, d.SpineTailZ), h.at(0, 0, d.HeadTailZ), h.bone("Spine"), true); err != nil {
		return err
	}

	for _, side := range []struct {
		tag  string
		sign float64
	}{{"L_", -1}, {"R_", 1}} {
		sx := side.sign
		upper := h.bone(side.tag + "UpperArm")
		fore := h.bone(side.tag + "ForeArm")
		if err := b.AddBone(upper, h.at(sx*d.ShoulderX, 0, d.ShoulderZ), h.at(sx*d.ElbowX, 0, d.ElbowZ), h.bone("Spine"), false); err != nil {
			return err
		}
		if err := b.AddBone(fore, h.at(sx*d.ElbowX, 0, d.ElbowZ), h.at(sx*d.WristX, 0, d.WristZ), upper, true); err != nil {
			return err
		}
		if h.Hands {
			hand := h.bone(side.tag + "Hand")
			if err := b.AddBone(hand, h.at(sx*d.WristX, 0, d.WristZ), h.at(sx*d.WristX, 0, d.HandTipZ), fore, true); err != nil {
				return err
			}
		}

		upLeg := h.bone(side.tag + "UpperLeg")
		loLeg := h.bone(side.tag + "LowerLeg")
		if err := b.AddBone(upLeg, h.at(sx*d.HipX, 0, d.RootHeadZ), h.at(sx*d.HipX, 0, d.KneeZ), h.bone("Root"), false); err != nil {
			return err
		}
		if err := b.AddBone(loLeg, h.at(sx*d.HipX, 0, d.KneeZ), h.at(sx*d.HipX, 0, d.AnkleZ), upLeg, true); err != nil {
			return err
		}
	}
	return nil
}

func (h humanoidRig) limbNames() []string {
	limbs := []string{"UpperArm", "ForeArm", "UpperLeg", "LowerLeg"}
	if h.Hands {
		limbs = append(limbs, "Hand")
	}
	return limbs
}

// strideMirror pairs the limbs for anti-phase motion: walking counterparts
// live half a cycle apart, and crossing sides flips the swing axis. The
// spine twist is a centerline channel that negates on a half-cycle swap.
func (h humanoidRig) strideMirror() *anim.Convention {
	c := anim.NewConvention()
	for _, limb := range h.limbNames() {
		c.Pair(h.bone("L_"+limb), h.bone("R_"+limb), anim.FlipX, anim.FlipX)
	}
	c.SelfPair(h.bone("Spine"), anim.FlipZ, anim.NoFlip)
	return c
}

// fallMirror pairs the limbs for same-frame bilateral symmetry: crossing
// sides negates Y/Z rotation and X translation. Falls, braces and
// arms-spread poses use this.
func (h humanoidRig) fallMirror() *anim.Convention {
	c := anim.NewConvention()
	for _, limb := range h.limbNames() {
		c.Pair(h.bone("L_"+limb), h.bone("R_"+limb), anim.FlipYZ, anim.FlipX)
	}
	return c
}

// dieStagger authors the shared hit-stagger and backward-topple frames
// (1, 6, 12, 20) of the standard death: lurch forward, recoil, rigid timber
// fall. The final settled frame differs per archetype and is appended by the
// caller. Only the right arm and left leg are authored; conv expands the
// other side.
func (h humanoidRig) dieStagger(conv *anim.Convention) []*anim.Keyframe {
	k1 := anim.Key(1)

	k6 := conv.Expand(anim.Key(6).
		Rot(h.bone("Spine"), 15, 0, 0).
		Rot(h.bone("Head"), 10, 0, 5).
		Rot(h.bone("R_UpperArm"), 10, 0, 20).
		Loc(h.bone("Root"), 0, -0.02, 0))

	k12 := conv.Expand(anim.Key(12).
		Rot(h.bone("Spine"), -20, 0, 3).
		Rot(h.bone("Head"), -15, 0, -5).
		Rot(h.bone("R_UpperArm"), -20, 0, 30).
		Rot(h.bone("R_ForeArm"), -20, 0, 0).
		Rot(h.bone("L_UpperLeg"), -20, 0, 0).
		Loc(h.bone("Root"), 0, -0.05, 0.05))

	k20 := conv.Expand(anim.Key(20).
		Rot(h.bone("Spine"), -50, 0, 5).
		Rot(h.bone("Head"), -30, 0, -10).
		Rot(h.bone("R_UpperArm"), -40, 0, 45).
		Rot(h.bone("R_ForeArm"), -30, 0, 0).
		Rot(h.bone("L_UpperLeg"), -50, 0, 0).
		Loc(h.bone("Root"), 0, -0.20, 0.15))

	return []*anim.Keyframe{k1, k6, k12, k20}
}
