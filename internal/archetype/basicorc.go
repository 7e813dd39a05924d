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
	register(Generator{Name: "BasicOrc", Build: buildBasicOrc})
}

// buildBasicOrc generates the melee grunt: a blocky club-wielding orc with
// Walk (24-frame loop), Attack (overhead club smash) and Die (backward
// timber fall) clips.
func buildBasicOrc(s *scene.Session, p Params) (*asset.Asset, error) {
	pal := &palette{cat: s.Materials, overrides: p.Palette}
	skin := pal.define("OrcSkin", material.Color{0.45, 0.55, 0.15, 1})
	skinDk := pal.define("OrcSkinDark", material.Color{0.30, 0.40, 0.10, 1})
	mouth := pal.define("OrcMouth", material.Color{0.20, 0.08, 0.05, 1})
	eyes := pal.define("OrcEyes", material.Color{1.0, 0.3, 0.05, 1}, material.WithEmission(3.0))
	leather := pal.define("OrcLeather", material.Color{0.35, 0.22, 0.10, 1})
	metal := pal.define("OrcMetal", material.Color{0.40, 0.40, 0.42, 1}, material.WithRoughness(0.5))
	wood := pal.define("OrcWood", material.Color{0.35, 0.22, 0.08, 1})
	teeth := pal.define("OrcTeeth", material.Color{0.90, 0.88, 0.70, 1})
	if pal.err != nil {
		return nil, pal.err
	}

	var ps partSet

	ps.add("Grp_Spine", "Spine",
		geometry.Box("Torso", v3(0, 0, 0.49), v3(0.38, 0.26, 0.30), skin, geometry.WithBevel(0.03)),
		geometry.Box("Belly", v3(0, -0.12, 0.43), v3(0.32, 0.10, 0.18), skin, geometry.WithBevel(0.04)),
		geometry.Box("Belt", v3(0, 0, 0.33), v3(0.40, 0.28, 0.06), leather, geometry.WithBevel(0.01)),
		geometry.Box("Loincloth", v3(0, -0.10, 0.25), v3(0.18, 0.04, 0.12), leather, geometry.WithBevel(0.02)),
		geometry.Box("Strap", v3(0.06, -0.02, 0.51), v3(0.08, 0.04, 0.30), leather,
			geometry.WithRotation(0, 0, 25), geometry.WithBevel(0.01)),
	)

	ps.add("Grp_Head", "Head",
		geometry.Box("Head", v3(0, 0, 0.78), v3(0.34, 0.30, 0.28), skin, geometry.WithBevel(0.03)),
		geometry.Box("Brow", v3(0, -0.14, 0.84), v3(0.30, 0.06, 0.06), skinDk, geometry.WithBevel(0.02)),
		geometry.Box("EyeL", v3(-0.09, -0.15, 0.80), v3(0.08, 0.04, 0.05), eyes),
		geometry.Box("EyeR", v3(0.09, -0.15, 0.80), v3(0.08, 0.04, 0.05), eyes),
		geometry.Box("Mouth", v3(0, -0.15, 0.70), v3(0.18, 0.04, 0.06), mouth),
		geometry.Wedge("FangL", v3(-0.06, -0.17, 0.74), v3(0.04, 0.03, 0.06), teeth),
		geometry.Wedge("FangR", v3(0.06, -0.17, 0.74), v3(0.04, 0.03, 0.06), teeth),
		geometry.Wedge("EarL", v3(-0.22, 0, 0.82), v3(0.06, 0.10, 0.12), skinDk, geometry.WithRotation(0, 0, -30)),
		geometry.Wedge("EarR", v3(0.22, 0, 0.82), v3(0.06, 0.10, 0.12), skinDk, geometry.WithRotation(0, 0, 30)),
	)

	ps.add("Grp_L_UpperArm", "L_UpperArm",
		geometry.Box("ArmLUpper", v3(-0.28, 0, 0.59), v3(0.14, 0.14, 0.20), skin, geometry.WithBevel(0.02)))
	ps.add("Grp_L_ForeArm", "L_ForeArm",
		geometry.Box("ArmLLower", v3(-0.30, -0.04, 0.41), v3(0.13, 0.13, 0.18), skin, geometry.WithBevel(0.02)),
		geometry.Box("HandL", v3(-0.30, -0.06, 0.31), v3(0.10, 0.10, 0.08), skinDk, geometry.WithBevel(0.02)),
	)

	ps.add("Grp_R_UpperArm", "R_UpperArm",
		geometry.Box("ArmRUpper", v3(0.28, 0, 0.59), v3(0.14, 0.14, 0.20), skin, geometry.WithBevel(0.02)))
	// The club travels with the right forearm.
	ps.add("Grp_R_ForeArm", "R_ForeArm",
		geometry.Box("ArmRLower", v3(0.30, -0.04, 0.41), v3(0.13, 0.13, 0.18), skin, geometry.WithBevel(0.02)),
		geometry.Box("HandR", v3(0.30, -0.06, 0.31), v3(0.10, 0.10, 0.08), skinDk, geometry.WithBevel(0.02)),
		geometry.Box("ClubHandle", v3(0.30, -0.24, 0.31), v3(0.05, 0.05, 0.36), wood,
			geometry.WithRotation(90, 0, 0), geometry.WithBevel(0.01)),
		geometry.Box("ClubHead", v3(0.30, -0.40, 0.31), v3(0.10, 0.10, 0.14), wood,
			geometry.WithRotation(90, 0, 0), geometry.WithBevel(0.02)),
		geometry.Box("ClubBand1", v3(0.30, -0.34, 0.31), v3(0.11, 0.11, 0.02), metal, geometry.WithRotation(90, 0, 0)),
		geometry.Box("ClubBand2", v3(0.30, -0.44, 0.31), v3(0.11, 0.11, 0.02), metal, geometry.WithRotation(90, 0, 0)),
	)

	for _, side := range []struct {
		tag  string
		sign float64
	}{{"L", -1}, {"R", 1}} {
		x := side.sign * 0.12
		ps.add("Grp_"+side.tag+"_UpperLeg", side.tag+"_UpperLeg",
			geometry.Box("Leg"+side.tag+"Upper", v3(x, 0, 0.23), v3(0.14, 0.16, 0.18), skin, geometry.WithBevel(0.02)))
		ps.add("Grp_"+side.tag+"_LowerLeg", side.tag+"_LowerLeg",
			geometry.Box("Leg"+side.tag+"Lower", v3(x, 0, 0.09), v3(0.12, 0.14, 0.14), leather, geometry.WithBevel(0.02)),
			geometry.Box("Foot"+side.tag, v3(x, -0.04, 0.03), v3(0.12, 0.18, 0.06), leather, geometry.WithBevel(0.02)),
		)
	}
	if ps.err != nil {
		return nil, ps.err
	}

	h := humanoidRig{Dims: orcDims}
	sb := skeleton.NewBuilder("OrcRig")
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

	ca := newClipAuthor(s, skel, "BasicOrc", p)
	walk, err := ca.author("Walk", orcWalkKeys(h), anim.Linear, anim.WithLoop())
	if err != nil {
		return nil, err
	}
	attack, err := ca.author("Attack", orcAttackKeys(), anim.Smoothed)
	if err != nil {
		return nil, err
	}
	die, err := ca.author("Die", orcDieKeys(h), anim.Smoothed)
	if err != nil {
		return nil, err
	}

	tracks, err := track.PackageAll([]*anim.Clip{walk, attack, die}, "")
	if err != nil {
		return nil, err
	}

	a := &asset.Asset{Name: "BasicOrc", Skeleton: skel, Parts: bound, Tracks: tracks}
	if err := s.AddAsset(a); err != nil {
		return nil, err
	}
	return a, nil
}

// orcWalkKeys authors one stride and derives the other half of the cycle.
// Frames 1/13/25 are full-rest passing poses.
func orcWalkKeys(h humanoidRig) []*anim.Keyframe {
	conv := h.strideMirror()

	// Left stride. The trailing knee and the leading forearm stay straight,
	// so their counterparts are pinned explicitly against expansion.
	stride := conv.Expand(anim.Key(7).
		Rot("L_UpperLeg", 30, 0, 0).
		Rot("L_LowerLeg", -9, 0, 0).
		Rot("R_LowerLeg", 0, 0, 0).
		Rot("R_UpperArm", 20, 0, 0).
		Rot("R_ForeArm", -8, 0, 0).
		Rot("L_ForeArm", 0, 0, 0).
		Rot("Spine", 0, 0, 3).
		Loc("Root", 0, 0, 0.02))

	return []*anim.Keyframe{
		anim.Key(1),
		stride,
		anim.Key(13),
		conv.Swapped(stride, 19),
		anim.Key(25),
	}
}

// orcAttackKeys is the overhead club smash: wind up beside the head, slam
// down past horizontal, hold the impact, recover.
func orcAttackKeys() []*anim.Keyframe {
	return []*anim.Keyframe{
		anim.Key(1),
		anim.Key(5).
			Rot("R_UpperArm", 0, 0, -70).
			Rot("R_ForeArm", -30, 0, 0).
			Rot("Spine", 0, 0, -5).
			Rot("Head", 0, 0, 0),
		anim.Key(8).
			Rot("R_UpperArm", 0, 0, -85).
			Rot("R_ForeArm", -40, 0, 0).
			Rot("Spine", -5, 0, -8).
			Rot("Head", 5, 0, 0),
		anim.Key(11).
			Rot("R_UpperArm", 15, 0, 30).
			Rot("R_ForeArm", 20, 0, 0).
			Rot("Spine", 8, 0, 5).
			Rot("Head", -5, 0, 0).
			Loc("Root", 0, -0.02, -0.03),
		anim.Key(14).
			Rot("R_UpperArm", 10, 0, 25).
			Rot("R_ForeArm", 15, 0, 0).
			Rot("Spine", 5, 0, 3).
			Loc("Root", 0, -0.02, -0.02),
		anim.Key(20),
	}
}

// orcDieKeys is the standard stagger-and-topple plus the settled ground
// pose, arms spread symmetrically.
func orcDieKeys(h humanoidRig) []*anim.Keyframe {
	conv := h.fallMirror()
	keys := h.dieStagger(conv)
	return append(keys, conv.Expand(anim.Key(30).
		Rot("Spine", -80, 0, 5).
		Rot("Head", -40, 0, -15).
		Rot("R_UpperArm", -30, 0, 60).
		Rot("R_ForeArm", -20, 0, 0).
		Rot("L_UpperLeg", -80, 0, 0).
		Loc("Root", 0, -0.35, 0.30)))
}
