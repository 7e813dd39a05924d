package archetype

import (
	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/geometry"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/rig"
	"marches-modelforge/internal/scene"
	"marches-modelforge/internal/skeleton"
	"marches-modelforge/internal/track"
)

func init() {
	register(Generator{Name: "Cannoneer", Build: buildCannoneer})
}

// Goblin crew offsets behind the cannon: A left, B right.
const (
	gobAX, gobAY = -0.22, 0.28
	gobBX, gobBY = 0.22, 0.28
)

// cannoneerMats bundles the goblin surface materials shared by both crew
// members.
type cannoneerMats struct {
	skin, skinDk, eyes, mouth, teeth, cloth *material.Material
}

// buildCannoneer generates the crewed weapon: one armature carrying the
// cannon, its wheels, and two prefixed goblin sub-rigs that push it, fire it
// and die with it as a single unit.
func buildCannoneer(s *scene.Session, p Params) (*asset.Asset, error) {
	pal := &palette{cat: s.Materials, overrides: p.Palette}
	gm := cannoneerMats{
		skin:   pal.define("CannonGobSkin", material.Color{0.20, 0.40, 0.20, 1}),
		skinDk: pal.define("CannonGobSkinDark", material.Color{0.14, 0.28, 0.12, 1}),
		mouth:  pal.define("CannonGobMouth", material.Color{0.25, 0.08, 0.05, 1}),
		eyes:   pal.define("CannonGobEyes", material.Color{1.0, 0.8, 0.1, 1}, material.WithEmission(4.0)),
		cloth:  pal.define("CannonGobCloth", material.Color{0.25, 0.15, 0.08, 1}),
		teeth:  pal.define("CannonGobTeeth", material.Color{0.90, 0.85, 0.60, 1}),
	}
	wood := pal.define("CannonWood", material.Color{0.35, 0.20, 0.08, 1})
	iron := pal.define("CannonIron", material.Color{0.25, 0.25, 0.28, 1}, material.WithRoughness(0.5))
	ironDk := pal.define("CannonIronDark", material.Color{0.15, 0.15, 0.18, 1}, material.WithRoughness(0.6))
	fuse := pal.define("CannonFuse", material.Color{1.0, 0.5, 0.0, 1}, material.WithEmission(3.0))
	ball := pal.define("CannonBall", material.Color{0.10, 0.10, 0.12, 1}, material.WithRoughness(0.3))
	if pal.err != nil {
		return nil, pal.err
	}

	var ps partSet

	// Barrel tilts slightly up; the whole gun body recoils on the Cannon
	// bone while the wheels keep their own spin channel.
	ps.add("Grp_Cannon", "Cannon",
		geometry.Cylinder("Barrel", v3(0, -0.02, 0.20), v3(0.14, 0.14, 0.40), iron,
			geometry.WithRotation(85, 0, 0), geometry.WithSegments(10), geometry.WithBevel(0.005)),
		geometry.Cylinder("MuzzleRing", v3(0, -0.22, 0.22), v3(0.16, 0.16, 0.03), ironDk,
			geometry.WithRotation(85, 0, 0), geometry.WithSegments(10)),
		geometry.Cylinder("RearRing", v3(0, 0.16, 0.18), v3(0.16, 0.16, 0.03), ironDk,
			geometry.WithRotation(85, 0, 0), geometry.WithSegments(10)),
		geometry.Box("Carriage", v3(0, 0.04, 0.10), v3(0.28, 0.42, 0.06), wood, geometry.WithBevel(0.01)),
		geometry.Box("RailL", v3(-0.12, 0.12, 0.12), v3(0.04, 0.34, 0.08), wood, geometry.WithBevel(0.01)),
		geometry.Box("RailR", v3(0.12, 0.12, 0.12), v3(0.04, 0.34, 0.08), wood, geometry.WithBevel(0.01)),
		geometry.Box("HandleL", v3(-0.10, 0.34, 0.10), v3(0.04, 0.16, 0.04), wood, geometry.WithBevel(0.005)),
		geometry.Box("HandleR", v3(0.10, 0.34, 0.10), v3(0.04, 0.16, 0.04), wood, geometry.WithBevel(0.005)),
		geometry.Box("Axle", v3(0, 0, 0.08), v3(0.40, 0.04, 0.04), ironDk),
		geometry.Cylinder("Fuse", v3(0, 0.20, 0.22), v3(0.015, 0.015, 0.08), fuse,
			geometry.WithRotation(30, 0, 0), geometry.WithSegments(6)),
		geometry.Sphere("FuseSpark", v3(0, 0.24, 0.26), v3(0.025, 0.025, 0.025), fuse,
			geometry.WithSegments(6), geometry.WithRings(4)),
		geometry.Sphere("Ball1", v3(-0.06, 0.08, 0.16), v3(0.06, 0.06, 0.06), ball),
		geometry.Sphere("Ball2", v3(0.06, 0.08, 0.16), v3(0.06, 0.06, 0.06), ball),
		geometry.Sphere("Ball3", v3(0, 0.08, 0.22), v3(0.06, 0.06, 0.06), ball),
	)

	for _, side := range []struct {
		tag  string
		sign float64
	}{{"L", -1}, {"R", 1}} {
		x := side.sign * 0.18
		ps.add("Grp_Wheel_"+side.tag, "Wheel_"+side.tag,
			geometry.Cylinder("Wheel"+side.tag, v3(x, 0, 0.08), v3(0.16, 0.16, 0.04), wood,
				geometry.WithRotation(0, 90, 0), geometry.WithSegments(10), geometry.WithBevel(0.005)),
			geometry.Cylinder("Hub"+side.tag, v3(x, 0, 0.08), v3(0.06, 0.06, 0.05), iron,
				geometry.WithRotation(0, 90, 0), geometry.WithSegments(8)),
		)
	}

	addGoblinParts(&ps, gm, "A_", gobAX, gobAY)
	addGoblinParts(&ps, gm, "B_", gobBX, gobBY)
	if ps.err != nil {
		return nil, ps.err
	}

	sb := skeleton.NewBuilder("CannoneerRig")
	if err := sb.AddBone("Root", v3(0, 0, 0.10), v3(0, 0, 0.14), "", false); err != nil {
		return nil, err
	}
	if err := sb.AddBone("Cannon", v3(0, 0, 0.14), v3(0, 0, 0.24), "Root", false); err != nil {
		return nil, err
	}
	// Wheels are children of the cannon so they tip with it during the
	// death topple.
	if err := sb.AddBone("Wheel_L", v3(-0.18, 0, 0.08), v3(-0.20, 0, 0.08), "Cannon", false); err != nil {
		return nil, err
	}
	if err := sb.AddBone("Wheel_R", v3(0.18, 0, 0.08), v3(0.20, 0, 0.08), "Cannon", false); err != nil {
		return nil, err
	}

	gobA := humanoidRig{Prefix: "A_", Offset: v3(gobAX, gobAY, 0), Parent: "Root", Dims: goblinDims}
	gobB := humanoidRig{Prefix: "B_", Offset: v3(gobBX, gobBY, 0), Parent: "Root", Dims: goblinDims}
	if err := gobA.addBones(sb); err != nil {
		return nil, err
	}
	if err := gobB.addBones(sb); err != nil {
		return nil, err
	}
	skel, err := sb.Build()
	if err != nil {
		return nil, err
	}

	bound, err := rig.BindAll(ps.parts, skel)
	if err != nil {
		return nil, err
	}

	ca := newClipAuthor(s, skel, "Cannoneer", p)
	walk, err := ca.author("Walk", cannoneerWalkKeys(), anim.Linear)
	if err != nil {
		return nil, err
	}
	attack, err := ca.author("Attack", cannoneerAttackKeys(), anim.Smoothed)
	if err != nil {
		return nil, err
	}
	die, err := ca.author("Die", cannoneerDieKeys(), anim.Smoothed)
	if err != nil {
		return nil, err
	}

	tracks, err := track.PackageAll([]*anim.Clip{walk, attack, die}, "")
	if err != nil {
		return nil, err
	}

	a := &asset.Asset{Name: "Cannoneer", Skeleton: skel, Parts: bound, Tracks: tracks}
	if err := s.AddAsset(a); err != nil {
		return nil, err
	}
	return a, nil
}

// addGoblinParts assembles one crew goblin's body parts at offset (ox, oy),
// bone names carrying the actor prefix.
func addGoblinParts(ps *partSet, m cannoneerMats, prefix string, ox, oy float64) {
	ps.add("Grp_"+prefix+"Spine", prefix+"Spine",
		geometry.Box(prefix+"Torso", v3(ox, oy, 0.40), v3(0.22, 0.16, 0.18), m.skin, geometry.WithBevel(0.02)),
		geometry.Box(prefix+"WaistCloth", v3(ox, oy, 0.29), v3(0.24, 0.18, 0.05), m.cloth, geometry.WithBevel(0.01)),
		geometry.Box(prefix+"Loincloth", v3(ox, oy-0.06, 0.22), v3(0.12, 0.03, 0.10), m.cloth, geometry.WithBevel(0.01)),
	)

	ps.add("Grp_"+prefix+"Head", prefix+"Head",
		geometry.Box(prefix+"Head", v3(ox, oy, 0.58), v3(0.24, 0.20, 0.20), m.skin, geometry.WithBevel(0.03)),
		geometry.Box(prefix+"Brow", v3(ox, oy-0.09, 0.63), v3(0.22, 0.05, 0.04), m.skinDk, geometry.WithBevel(0.02)),
		geometry.Box(prefix+"EyeL", v3(ox-0.07, oy-0.10, 0.60), v3(0.06, 0.04, 0.05), m.eyes),
		geometry.Box(prefix+"EyeR", v3(ox+0.07, oy-0.10, 0.60), v3(0.06, 0.04, 0.05), m.eyes),
		geometry.Wedge(prefix+"Nose", v3(ox, oy-0.14, 0.57), v3(0.04, 0.06, 0.06), m.skinDk, geometry.WithRotation(-90, 0, 0)),
		geometry.Box(prefix+"Mouth", v3(ox, oy-0.10, 0.51), v3(0.12, 0.03, 0.04), m.mouth),
		geometry.Wedge(prefix+"ToothL", v3(ox-0.03, oy-0.11, 0.53), v3(0.02, 0.02, 0.03), m.teeth),
		geometry.Wedge(prefix+"ToothR", v3(ox+0.03, oy-0.11, 0.53), v3(0.02, 0.02, 0.03), m.teeth),
		geometry.Wedge(prefix+"EarL", v3(ox-0.16, oy, 0.60), v3(0.04, 0.10, 0.12), m.skinDk, geometry.WithRotation(0, 0, -40)),
		geometry.Wedge(prefix+"EarR", v3(ox+0.16, oy, 0.60), v3(0.04, 0.10, 0.12), m.skinDk, geometry.WithRotation(0, 0, 40)),
	)

	for _, side := range []struct {
		tag  string
		sign float64
	}{{"L", -1}, {"R", 1}} {
		sx := side.sign
		ps.add("Grp_"+prefix+side.tag+"_UpperArm", prefix+side.tag+"_UpperArm",
			geometry.Box(prefix+"Arm"+side.tag+"U", v3(ox+sx*0.17, oy, 0.44), v3(0.09, 0.09, 0.14), m.skin, geometry.WithBevel(0.02)))
		ps.add("Grp_"+prefix+side.tag+"_ForeArm", prefix+side.tag+"_ForeArm",
			geometry.Box(prefix+"Arm"+side.tag+"L", v3(ox+sx*0.18, oy-0.02, 0.32), v3(0.08, 0.08, 0.12), m.skin, geometry.WithBevel(0.02)),
			geometry.Box(prefix+"Hand"+side.tag, v3(ox+sx*0.18, oy-0.03, 0.25), v3(0.07, 0.07, 0.05), m.skinDk, geometry.WithBevel(0.02)),
		)
		ps.add("Grp_"+prefix+side.tag+"_UpperLeg", prefix+side.tag+"_UpperLeg",
			geometry.Box(prefix+"Leg"+side.tag+"U", v3(ox+sx*0.07, oy, 0.18), v3(0.09, 0.10, 0.14), m.skin, geometry.WithBevel(0.02)))
		ps.add("Grp_"+prefix+side.tag+"_LowerLeg", prefix+side.tag+"_LowerLeg",
			geometry.Box(prefix+"Leg"+side.tag+"L", v3(ox+sx*0.07, oy, 0.07), v3(0.08, 0.09, 0.10), m.cloth, geometry.WithBevel(0.02)),
			geometry.Box(prefix+"Foot"+side.tag, v3(ox+sx*0.07, oy-0.03, 0.03), v3(0.09, 0.14, 0.05), m.cloth, geometry.WithBevel(0.02)),
		)
	}
}

// pushStance poses one goblin leaning into the cannon handles. side -1 is
// goblin A, whose left arm reaches across to a handle; +1 is goblin B in a
// plain symmetric push.
func pushStance(k *anim.Keyframe, prefix string, side float64) *anim.Keyframe {
	if side < 0 {
		k.Rot(prefix+"L_UpperArm", -45.5, -19.3, 3.8).
			Rot(prefix+"L_ForeArm", -15, 0, 0).
			Rot(prefix+"R_UpperArm", -30, 0, 0).
			Rot(prefix+"R_ForeArm", 2.8, -7.7, -50.1)
	} else {
		k.Rot(prefix+"L_UpperArm", 30, 0, 0).
			Rot(prefix+"L_ForeArm", -15, 0, 0).
			Rot(prefix+"R_UpperArm", -30, 0, 0).
			Rot(prefix+"R_ForeArm", -15, 0, 0)
	}
	return k.
		Rot(prefix+"Spine", 15, 10*side, 0).
		Rot(prefix+"Head", -10, 0, 0)
}

func pushBoth(k *anim.Keyframe) *anim.Keyframe {
	pushStance(k, "A_", -1)
	pushStance(k, "B_", 1)
	return k
}

// crewStrideMirror pairs only the legs of both goblins: the push-stance arms
// are asymmetric per actor and must carry unchanged through a half-cycle
// swap.
func crewStrideMirror() *anim.Convention {
	c := anim.NewConvention()
	for _, prefix := range []string{"A_", "B_"} {
		c.Pair(prefix+"L_UpperLeg", prefix+"R_UpperLeg", anim.FlipX, anim.FlipX)
		c.Pair(prefix+"L_LowerLeg", prefix+"R_LowerLeg", anim.FlipX, anim.FlipX)
	}
	return c
}

// crewFallMirror pairs each goblin's limbs for same-frame symmetric braces
// and falls.
func crewFallMirror() *anim.Convention {
	c := anim.NewConvention()
	for _, prefix := range []string{"A_", "B_"} {
		for _, limb := range []string{"UpperArm", "ForeArm", "UpperLeg", "LowerLeg"} {
			c.Pair(prefix+"L_"+limb, prefix+"R_"+limb, anim.FlipYZ, anim.FlipX)
		}
	}
	return c
}

// crewCrossMirror maps goblin A's bones to goblin B's across the cannon
// centerline: A's left limbs mirror onto B's right and vice versa, the
// centerline bones map straight across. Authoring A and expanding through
// this yields B's diverging fall.
func crewCrossMirror() *anim.Convention {
	c := anim.NewConvention()
	for _, center := range []string{"Root", "Spine", "Head"} {
		c.Pair("A_"+center, "B_"+center, anim.FlipYZ, anim.FlipX)
	}
	for _, limb := range []string{"UpperArm", "ForeArm", "UpperLeg", "LowerLeg"} {
		c.Pair("A_L_"+limb, "B_R_"+limb, anim.FlipYZ, anim.FlipX)
		c.Pair("A_R_"+limb, "B_L_"+limb, anim.FlipYZ, anim.FlipX)
	}
	return c
}

// cannoneerWalkKeys is the push loop: both goblins lean into the handles,
// legs stride in anti-phase, wheels roll 15 degrees a frame. The wheel
// channel winds a full turn plus the stride remainder, so the clip is
// left numerically open instead of loop-flagged.
func cannoneerWalkKeys() []*anim.Keyframe {
	conv := crewStrideMirror()
	const wheelSpin = 15.0

	wheels := func(k *anim.Keyframe, frame int) *anim.Keyframe {
		spin := wheelSpin * float64(frame)
		return k.Rot("Wheel_L", 0, spin, 0).Rot("Wheel_R", 0, spin, 0)
	}

	stride := pushBoth(anim.Key(7))
	for _, prefix := range []string{"A_", "B_"} {
		stride.
			Rot(prefix+"L_UpperLeg", 25, 0, 0).
			Rot(prefix+"L_LowerLeg", -7.5, 0, 0).
			Rot(prefix+"R_UpperLeg", -25, 0, 0).
			Rot(prefix+"R_LowerLeg", 0, 0, 0)
	}
	wheels(stride, 7)

	return []*anim.Keyframe{
		pushBoth(anim.Key(1)),
		stride,
		wheels(pushBoth(anim.Key(13)), 13),
		wheels(conv.Swapped(stride, 19), 19),
		wheels(pushBoth(anim.Key(25)), 25),
	}
}

// cannoneerAttackKeys: goblin A turns and lights the fuse, goblin B covers
// its ears, the cannon fires and recoils, everyone recovers to the push.
func cannoneerAttackKeys() []*anim.Keyframe {
	conv := crewFallMirror()

	reach := conv.Expand(anim.Key(5).
		Rot("A_Spine", 10, 15, 0).
		Rot("A_Head", -5, 10, 0).
		Rot("A_R_UpperArm", -40, 0, 0).
		Rot("A_R_ForeArm", -20, 0, 0).
		Rot("A_L_UpperArm", 10, 0, 0).
		Rot("A_L_ForeArm", 0, 0, 0).
		Rot("B_Spine", 5, 0, 0).
		Rot("B_Head", -5, -10, 0).
		Rot("B_R_UpperArm", 0, 0, -20))

	light := conv.Expand(anim.Key(9).
		Rot("A_Spine", 15, 20, 0).
		Rot("A_Head", -5, 15, 0).
		Rot("A_R_UpperArm", -50, 0, -10).
		Rot("A_R_ForeArm", -30, 0, 0).
		Rot("A_L_UpperArm", 15, 0, 0).
		Rot("A_L_ForeArm", 0, 0, 0).
		Rot("B_Spine", -5, 0, 0).
		Rot("B_Head", 5, 0, 0).
		Rot("B_R_UpperArm", 0, 0, -70).
		Rot("B_R_ForeArm", -40, 0, 0))

	// Fire: the whole unit jolts backward on the master root, the barrel
	// kicks up, both goblins hop.
	fire := conv.Expand(anim.Key(12).
		Loc("Root", 0, 0.06, 0).
		Rot("Cannon", -8, 0, 0).
		Rot("A_Spine", -10, 10, 0).
		Rot("A_Head", 10, 0, 0).
		Rot("A_R_UpperArm", 15, 0, -30).
		Rot("A_R_ForeArm", -20, 0, 0).
		Loc("A_Root", 0, 0.04, 0).
		Rot("B_Spine", -8, 0, 0).
		Rot("B_Head", 8, 0, 0).
		Rot("B_R_UpperArm", 0, 0, -65).
		Rot("B_R_ForeArm", -45, 0, 0).
		Loc("B_Root", 0, 0.04, 0))

	settle := anim.Key(16).
		Loc("Root", 0, 0.03, 0).
		Rot("Cannon", -3, 0, 0)
	for _, prefix := range []string{"A_", "B_"} {
		settle.
			Rot(prefix+"Spine", -3, 0, 0).
			Rot(prefix+"Head", 5, 0, 0).
			Loc(prefix+"Root", 0, 0.02, 0)
	}

	return []*anim.Keyframe{
		pushBoth(anim.Key(1)),
		reach, light, fire, settle,
		pushBoth(anim.Key(24)),
	}
}

// cannoneerDieKeys: the cannon tips sideways while the goblins fall outward
// along opposite diagonals. Goblin A is authored; goblin B is its mirror
// across the cannon centerline.
func cannoneerDieKeys() []*anim.Keyframe {
	intra := crewFallMirror()
	cross := crewCrossMirror()

	stagger := anim.Key(6).
		Loc("Root", 0, 0.02, 0).
		Rot("Cannon", 5, 0, 3)
	for _, prefix := range []string{"A_", "B_"} {
		stagger.
			Rot(prefix+"Spine", 5, 0, 0).
			Rot(prefix+"Head", 10, 0, 5).
			Rot(prefix+"R_UpperArm", 10, 0, 20)
	}
	intra.Expand(stagger)

	tipping := anim.Key(12).
		Rot("Cannon", 10, 0, 25).
		Loc("Root", 0, -0.02, -0.02).
		Loc("A_Root", -0.05, -0.06, -0.04)
	for _, prefix := range []string{"A_", "B_"} {
		tipping.
			Rot(prefix+"Spine", -25, 0, 0).
			Rot(prefix+"Head", -15, 0, 0).
			Rot(prefix+"R_UpperArm", -15, 0, 35).
			Rot(prefix+"R_ForeArm", -15, 0, 0).
			Rot(prefix+"L_UpperLeg", -15, 0, 0)
	}
	cross.Expand(intra.Expand(tipping))

	falling := cross.Expand(intra.Expand(anim.Key(20).
		Rot("Cannon", 15, 0, 60).
		Loc("Root", 0, -0.04, -0.02).
		Rot("A_Spine", -55, -15, 0).
		Rot("A_Head", -30, 0, -10).
		Rot("A_R_UpperArm", -30, 0, 50).
		Rot("A_R_ForeArm", -20, 0, 0).
		Rot("A_L_UpperLeg", -55, 0, 0).
		Loc("A_Root", -0.12, -0.14, -0.12)))

	grounded := cross.Expand(intra.Expand(anim.Key(30).
		Rot("Cannon", 15, 0, 85).
		Loc("Root", 0, -0.06, 0).
		Rot("A_Spine", -80, -25, 5).
		Rot("A_Head", -10, 0, -15).
		Rot("A_R_UpperArm", -30, 0, 65).
		Rot("A_R_ForeArm", -15, 0, 0).
		Rot("A_L_UpperLeg", -80, 0, -15).
		Loc("A_Root", -0.20, -0.22, -0.18)))

	return []*anim.Keyframe{pushBoth(anim.Key(1)), stagger, tipping, falling, grounded}
}
