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
	register(Generator{Name: "Pikeman", Build: buildPikeman})
}

// buildPikeman generates the human wall defender: blue tunic, chain mail
// vest, open helmet, and a pike gripped by a dedicated hand bone. The Attack
// clip is hand-posed data transcribed from a pose report, so its track is
// the one left unmuted for review.
func buildPikeman(s *scene.Session, p Params) (*asset.Asset, error) {
	pal := &palette{cat: s.Materials, overrides: p.Palette}
	skin := pal.define("PikemanSkin", material.Color{0.76, 0.57, 0.42, 1})
	skinDk := pal.define("PikemanSkinDark", material.Color{0.62, 0.44, 0.32, 1})
	hair := pal.define("PikemanHair", material.Color{0.20, 0.12, 0.06, 1})
	eyes := pal.define("PikemanEyes", material.Color{0.85, 0.85, 0.90, 1})
	mouth := pal.define("PikemanMouth", material.Color{0.55, 0.25, 0.20, 1})
	tunic := pal.define("PikemanTunic", material.Color{0.20, 0.40, 0.80, 1})
	tunicDk := pal.define("PikemanTunicDk", material.Color{0.14, 0.28, 0.60, 1})
	chain := pal.define("PikemanChain", material.Color{0.45, 0.45, 0.48, 1}, material.WithRoughness(0.5))
	belt := pal.define("PikemanBelt", material.Color{0.30, 0.18, 0.08, 1})
	leather := pal.define("PikemanLeather", material.Color{0.35, 0.22, 0.10, 1})
	boots := pal.define("PikemanBoots", material.Color{0.25, 0.15, 0.07, 1})
	metal := pal.define("PikemanMetal", material.Color{0.55, 0.55, 0.58, 1}, material.WithRoughness(0.35))
	wood := pal.define("PikemanWood", material.Color{0.40, 0.25, 0.10, 1})
	if pal.err != nil {
		return nil, pal.err
	}

	var ps partSet

	ps.add("Grp_Spine", "Spine",
		geometry.Box("Torso", v3(0, 0, 0.42), v3(0.22, 0.16, 0.22), skin, geometry.WithBevel(0.02)),
		geometry.Box("Tunic", v3(0, -0.005, 0.42), v3(0.24, 0.17, 0.24), tunic, geometry.WithBevel(0.02)),
		geometry.Box("ChainVest", v3(0, -0.01, 0.44), v3(0.25, 0.18, 0.18), chain, geometry.WithBevel(0.01)),
		geometry.Box("TunicSkirt", v3(0, 0, 0.27), v3(0.22, 0.15, 0.10), tunic, geometry.WithBevel(0.01)),
		geometry.Box("Belt", v3(0, 0, 0.32), v3(0.26, 0.18, 0.05), belt, geometry.WithBevel(0.01)),
		geometry.Box("BeltBuckle", v3(0, -0.09, 0.32), v3(0.04, 0.02, 0.04), metal),
	)

	ps.add("Grp_Head", "Head",
		geometry.Box("Head", v3(0, 0, 0.60), v3(0.16, 0.16, 0.18), skin, geometry.WithBevel(0.04)),
		geometry.Box("HairBack", v3(0, 0.05, 0.61), v3(0.14, 0.08, 0.12), hair, geometry.WithBevel(0.02)),
		geometry.Box("HelmetCap", v3(0, 0.01, 0.68), v3(0.18, 0.18, 0.08), metal, geometry.WithBevel(0.02)),
		geometry.Box("NoseGuard", v3(0, -0.09, 0.64), v3(0.02, 0.04, 0.10), metal, geometry.WithBevel(0.01)),
		geometry.Box("EyeL", v3(-0.05, -0.08, 0.62), v3(0.04, 0.02, 0.03), eyes),
		geometry.Box("EyeR", v3(0.05, -0.08, 0.62), v3(0.04, 0.02, 0.03), eyes),
		geometry.Box("Nose", v3(0, -0.08, 0.59), v3(0.03, 0.03, 0.04), skinDk),
		geometry.Box("Mouth", v3(0, -0.08, 0.54), v3(0.08, 0.02, 0.02), mouth),
		geometry.Box("EarL", v3(-0.09, 0, 0.61), v3(0.03, 0.04, 0.05), skinDk, geometry.WithBevel(0.02)),
		geometry.Box("EarR", v3(0.09, 0, 0.61), v3(0.03, 0.04, 0.05), skinDk, geometry.WithBevel(0.02)),
	)

	for _, side := range []struct {
		tag  string
		sign float64
	}{{"L", -1}, {"R", 1}} {
		sx := side.sign
		ps.add("Grp_"+side.tag+"_UpperArm", side.tag+"_UpperArm",
			geometry.Box("Arm"+side.tag+"U", v3(sx*0.15, 0, 0.46), v3(0.09, 0.09, 0.12), tunic, geometry.WithBevel(0.02)),
			geometry.Box("ChainArm"+side.tag, v3(sx*0.15, 0, 0.48), v3(0.10, 0.10, 0.06), chain, geometry.WithBevel(0.01)),
		)
		ps.add("Grp_"+side.tag+"_ForeArm", side.tag+"_ForeArm",
			geometry.Box("Arm"+side.tag+"L", v3(sx*0.16, -0.02, 0.36), v3(0.08, 0.08, 0.10), skin, geometry.WithBevel(0.02)),
			geometry.Box("Bracer"+side.tag, v3(sx*0.16, -0.01, 0.38), v3(0.09, 0.09, 0.06), leather, geometry.WithBevel(0.01)),
		)
		ps.add("Grp_"+side.tag+"_UpperLeg", side.tag+"_UpperLeg",
			geometry.Box("Leg"+side.tag+"U", v3(sx*0.07, 0, 0.20), v3(0.09, 0.10, 0.12), tunicDk, geometry.WithBevel(0.02)))
		ps.add("Grp_"+side.tag+"_LowerLeg", side.tag+"_LowerLeg",
			geometry.Box("Leg"+side.tag+"L", v3(sx*0.07, 0, 0.10), v3(0.08, 0.09, 0.10), skin, geometry.WithBevel(0.02)),
			geometry.Box("Boot"+side.tag, v3(sx*0.07, -0.02, 0.04), v3(0.09, 0.13, 0.06), boots, geometry.WithBevel(0.02)),
		)
	}

	ps.add("Grp_L_Hand", "L_Hand",
		geometry.Box("HandL", v3(-0.16, -0.03, 0.30), v3(0.06, 0.06, 0.05), skinDk, geometry.WithBevel(0.02)))
	// Pike mesh rides the right hand bone so the grip stays honest through
	// the thrust.
	ps.add("Grp_R_Hand", "R_Hand",
		geometry.Box("HandR", v3(0.16, -0.03, 0.30), v3(0.06, 0.06, 0.05), skinDk, geometry.WithBevel(0.02)),
		geometry.Cylinder("PikeShaft", v3(0.16, -0.22, 0.30), v3(0.025, 0.025, 0.65), wood,
			geometry.WithRotation(90, 0, 0), geometry.WithSegments(6), geometry.WithBevel(0.005)),
		geometry.Wedge("PikeHead", v3(0.16, -0.56, 0.30), v3(0.05, 0.05, 0.12), metal, geometry.WithRotation(90, 0, 0)),
		geometry.Box("PikeCross", v3(0.16, -0.50, 0.30), v3(0.06, 0.02, 0.02), metal),
	)
	if ps.err != nil {
		return nil, ps.err
	}

	h := humanoidRig{Dims: humanDims, Hands: true}
	sb := skeleton.NewBuilder("PikemanRig")
	if err := h.addBones(sb); err != nil {
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

	ca := newClipAuthor(s, skel, "Pikeman", p)
	walk, err := ca.author("Walk", pikemanWalkKeys(), anim.Linear, anim.WithLoop())
	if err != nil {
		return nil, err
	}
	attack, err := ca.author("Attack", pikemanAttackKeys(), anim.Smoothed, anim.WithStage(anim.StageCaptured))
	if err != nil {
		return nil, err
	}
	die, err := ca.author("Die", pikemanDieKeys(h), anim.Smoothed)
	if err != nil {
		return nil, err
	}

	tracks, err := track.PackageAll([]*anim.Clip{walk, attack, die}, "Attack")
	if err != nil {
		return nil, err
	}

	a := &asset.Asset{Name: "Pikeman", Skeleton: skel, Parts: bound, Tracks: tracks}
	if err := s.AddAsset(a); err != nil {
		return nil, err
	}
	return a, nil
}

// pikemanWalkKeys carries the pike upright: the right forearm holds -90 on X
// in every key so the shaft stays vertical, and only the left arm swings.
// The asymmetric carry rules out deriving the second stride with a side
// swap, so both strides are explicit.
func pikemanWalkKeys() []*anim.Keyframe {
	carry := anim.Key(1).Rot("R_ForeArm", -90, 0, 0)

	return []*anim.Keyframe{
		carry,
		anim.Key(7).
			Rot("R_ForeArm", -90, 0, 0).
			Rot("L_UpperLeg", 30, 0, 0).
			Rot("L_LowerLeg", -9, 0, 0).
			Rot("R_UpperLeg", -30, 0, 0).
			Rot("L_UpperArm", 25, 0, 0).
			Rot("L_ForeArm", -10, 0, 0).
			Rot("Spine", 0, 0, 3).
			Loc("Root", 0, 0, 0.02),
		anim.Key(13).Rot("R_ForeArm", -90, 0, 0),
		anim.Key(19).
			Rot("R_ForeArm", -90, 0, 0).
			Rot("R_UpperLeg", 30, 0, 0).
			Rot("R_LowerLeg", -9, 0, 0).
			Rot("L_UpperLeg", -30, 0, 0).
			Rot("L_UpperArm", -25, 0, 0).
			Rot("Spine", 0, 0, -3).
			Loc("Root", 0, 0, 0.02),
		carry.Clone(25),
	}
}

// pikemanAttackKeys is the two-handed thrust toward -Y, transcribed from
// hand-posed capture output: turn side-on, level the pike, drive it forward,
// return to the carry.
func pikemanAttackKeys() []*anim.Keyframe {
	rest := anim.Key(1).
		Rot("R_ForeArm", -86.2, -6.9, -0.2).
		Rot("R_Hand", -10.8, 0, 0)

	stance := anim.Key(6).
		Rot("Spine", 0, 89.5, 0).
		Rot("Head", 0, -87.1, 0).
		Rot("L_UpperArm", -46.6, 53.0, 16.5).
		Rot("L_ForeArm", -0.4, -1.9, -7.0).
		Rot("R_UpperArm", 5.8, -9.2, 5.8).
		Rot("R_ForeArm", -75.8, -6.6, -1.3).
		Rot("R_Hand", -70.2, 76.9, -62.7)

	thrust := anim.Key(11).
		Rot("Spine", 0, 93.9, 0).
		Rot("Head", 0, -94.6, 0).
		Rot("L_UpperArm", 34.2, 57.6, 53.0).
		Rot("R_UpperArm", -54.4, -44.7, -11.3).
		Rot("R_ForeArm", 3.1, 11.7, 35.5).
		Rot("R_Hand", 58.1, 59.4, 3.4)

	return []*anim.Keyframe{rest, stance, thrust, stance.Clone(16), rest.Clone(20)}
}

// pikemanDieKeys shares the stagger-and-topple template and ends in a
// hand-posed splayed ground pose, all limbs explicit.
func pikemanDieKeys(h humanoidRig) []*anim.Keyframe {
	keys := h.dieStagger(h.fallMirror())
	return append(keys, anim.Key(30).
		Rot("Spine", -80, 0, 5).
		Rot("Head", -40, 0, -15).
		Rot("L_UpperArm", 161.5, -21.8, -92.9).
		Rot("L_ForeArm", -10, 0, -20).
		Rot("R_UpperArm", 69.1, -41.8, -46.0).
		Rot("R_ForeArm", -10, 0, 20).
		Rot("L_UpperLeg", -67.7, 30.3, 23.3).
		Rot("L_LowerLeg", 10, 0, 0).
		Rot("R_UpperLeg", -74.0, -16.0, -20.8).
		Rot("R_LowerLeg", 10, 0, 0).
		Loc("Root", 0, -0.35, 0.30))
}
