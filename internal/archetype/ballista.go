package archetype

import (
	"fmt"
	"math"

	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/geometry"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/rig"
	"marches-modelforge/internal/scene"
	"marches-modelforge/internal/skeleton"
)

func init() {
	register(Generator{Name: "Ballista", Build: buildBallista})
}

// buildBallista generates the tower-mounted scorpio: a torsion siege crossbow
// built as one rigid unit on a single root bone. The game aims it by yawing
// the whole asset, so it carries no clips.
//
// Layout: X is width, Y is length with +Y the firing direction, Z is height.
// Base frame ~0.44 x 1.40 x 0.06 centered at the origin.
func buildBallista(s *scene.Session, p Params) (*asset.Asset, error) {
	pal := &palette{cat: s.Materials, overrides: p.Palette}
	wood := pal.define("BallistaWood", material.Color{0.40, 0.25, 0.12, 1}, material.WithRoughness(0.85))
	woodDk := pal.define("BallistaWoodDk", material.Color{0.28, 0.16, 0.07, 1}, material.WithRoughness(0.90))
	bow := pal.define("BallistaBow", material.Color{0.35, 0.15, 0.06, 1}, material.WithRoughness(0.75))
	iron := pal.define("BallistaIron", material.Color{0.25, 0.23, 0.22, 1},
		material.WithRoughness(0.4), material.WithMetallic(0.7))
	str := pal.define("BallistaString", material.Color{0.55, 0.45, 0.30, 1}, material.WithRoughness(0.95))
	if pal.err != nil {
		return nil, pal.err
	}

	const (
		frameW = 0.44
		frameL = 1.40
		frameH = 0.06
		hw     = frameW / 2
		hl     = frameL / 2
	)

	var prims []*geometry.Primitive
	add := func(p *geometry.Primitive) { prims = append(prims, p) }

	add(geometry.Box("Deck", v3(0, 0, frameH/2), v3(frameW, frameL, frameH), wood, geometry.WithBevel(0.004)))

	// Heavy side rails along the full length.
	const railW, railH = 0.05, 0.10
	for _, sx := range []float64{-1, 1} {
		add(geometry.Box(fmt.Sprintf("Rail_%+.0f", sx),
			v3(sx*(hw-railW/2+0.012), 0, railH/2), v3(railW, frameL+0.02, railH), woodDk,
			geometry.WithBevel(0.003)))
	}

	// Three transverse braces.
	const beamD, beamH = 0.06, 0.07
	for _, by := range []float64{-0.50, -0.05, 0.35} {
		add(geometry.Box(fmt.Sprintf("Beam_%.2f", by),
			v3(0, by, beamH/2), v3(frameW+0.04, beamD, beamH), woodDk, geometry.WithBevel(0.003)))
	}

	// Torsion spring housings flanking the trough, banded in iron, with a
	// cylindrical bundle cap on top.
	const (
		housW = 0.14
		housD = 0.18
		housH = 0.16
		housY = 0.38
	)
	housZ := frameH + housH/2
	for _, sx := range []float64{-1, 1} {
		hx := sx * 0.18
		add(geometry.Box(fmt.Sprintf("Housing_%+.0f", sx),
			v3(hx, housY, housZ), v3(housW, housD, housH), wood, geometry.WithBevel(0.005)))
		for _, off := range []float64{0.03, -0.04} {
			add(geometry.Box(fmt.Sprintf("HBand_%+.0f_%.2f", sx, off),
				v3(hx, housY, housZ+off), v3(housW+0.02, housD+0.02, 0.025), iron))
		}
		add(geometry.Cylinder(fmt.Sprintf("TorsionCap_%+.0f", sx),
			v3(hx, housY, housZ+housH/2+0.01), v3(housW*0.7, housW*0.7, 0.02), iron,
			geometry.WithSegments(10)))
	}

	// Bow limbs angle outward from the housing fronts; iron caps at the tips.
	const (
		armL     = 0.38
		armW     = 0.055
		armH     = 0.04
		armAngle = 20.0
	)
	ang := armAngle * math.Pi / 180
	armStartY := housY + housD/2
	for _, sx := range []float64{-1, 1} {
		armCX := sx*0.18 + sx*math.Sin(ang)*armL/2
		armCY := armStartY + math.Cos(ang)*armL/2
		add(geometry.Box(fmt.Sprintf("Arm_%+.0f", sx),
			v3(armCX, armCY, housZ), v3(armW, armL, armH), bow,
			geometry.WithRotation(0, 0, sx*armAngle), geometry.WithBevel(0.003)))

		tipX := sx*0.18 + sx*math.Sin(ang)*armL
		tipY := armStartY + math.Cos(ang)*armL
		add(geometry.Box(fmt.Sprintf("ArmTip_%+.0f", sx),
			v3(tipX, tipY, housZ), v3(armW+0.02, 0.04, armH+0.015), iron))
	}

	// Bowstring spans the arm tips, wrapped at each end.
	lTipX := -0.18 - math.Sin(ang)*armL
	rTipX := 0.18 + math.Sin(ang)*armL
	stringY := armStartY + math.Cos(ang)*armL
	add(geometry.Box("Bowstring", v3(0, stringY, housZ), v3(rTipX-lTipX, 0.015, 0.015), str))
	for _, sx := range []float64{-1, 1} {
		wx := rTipX
		if sx < 0 {
			wx = lTipX
		}
		add(geometry.Box(fmt.Sprintf("StringWrap_%+.0f", sx),
			v3(wx, stringY, housZ), v3(0.03, 0.03, 0.025), str))
	}

	// Slide trough with raised iron edges.
	const (
		troughW = 0.05
		troughL = 1.15
		troughH = 0.035
		troughY = -0.08
	)
	troughZ := frameH + troughH/2
	add(geometry.Box("Trough", v3(0, troughY, troughZ), v3(troughW, troughL, troughH), wood))
	for _, sx := range []float64{-1, 1} {
		add(geometry.Box(fmt.Sprintf("TroughEdge_%+.0f", sx),
			v3(sx*(troughW/2+0.008), troughY, troughZ+troughH/2+0.008),
			v3(0.012, troughL, 0.016), iron))
	}

	// Bolt slider and trigger lever.
	sliderZ := troughZ + troughH/2 + 0.02
	add(geometry.Box("Slider", v3(0, 0.22, sliderZ), v3(0.08, 0.10, 0.04), iron))
	add(geometry.Box("Trigger", v3(0, 0.14, sliderZ+0.01), v3(0.03, 0.05, 0.05), iron))

	// Windlass crank at the rear: posts, axle, handle knobs, winch drum and
	// rope coil.
	const crankY = -0.58
	crankZ := frameH + 0.07
	for _, sx := range []float64{-1, 1} {
		add(geometry.Box(fmt.Sprintf("CrankPost_%+.0f", sx),
			v3(sx*0.12, crankY, (crankZ+frameH)/2), v3(0.04, 0.04, crankZ-frameH+0.04), wood))
	}
	add(geometry.Box("CrankAxle", v3(0, crankY, crankZ+0.03), v3(0.30, 0.03, 0.03), iron))
	for _, sx := range []float64{-1, 1} {
		add(geometry.Cylinder(fmt.Sprintf("CrankHandle_%+.0f", sx),
			v3(sx*0.17, crankY, crankZ+0.03), v3(0.02, 0.02, 0.06), wood,
			geometry.WithRotation(0, 90, 0), geometry.WithSegments(8)))
	}
	add(geometry.Cylinder("WinchDrum", v3(0, crankY, crankZ+0.03), v3(0.04, 0.04, 0.12), woodDk,
		geometry.WithRotation(0, 90, 0), geometry.WithSegments(10)))
	add(geometry.Cylinder("RopeCoil", v3(0, crankY, crankZ+0.03), v3(0.05, 0.05, 0.08), str,
		geometry.WithRotation(0, 90, 0), geometry.WithSegments(10)))

	// Iron corner brackets, deck bands and rail studs.
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			add(geometry.Box(fmt.Sprintf("LBracket_%+.0f_%+.0f", sx, sy),
				v3(sx*(hw-0.025), sy*(hl-0.025), frameH+0.005), v3(0.06, 0.06, 0.01), iron))
		}
	}
	for _, by := range []float64{-0.30, 0.10} {
		add(geometry.Box(fmt.Sprintf("DeckBand_%.2f", by),
			v3(0, by, frameH+0.003), v3(frameW+0.01, 0.025, 0.012), iron))
	}
	for _, sx := range []float64{-1, 1} {
		for _, syOff := range []float64{-0.50, -0.20, 0.10, 0.40} {
			add(geometry.Box(fmt.Sprintf("Stud_%+.0f_%.2f", sx, syOff),
				v3(sx*(hw+0.008), syOff, frameH/2), v3(0.02, 0.02, 0.02), iron))
		}
	}

	// Operator's back plate.
	add(geometry.Box("RearShield", v3(0, -hl+0.02, frameH+0.06), v3(0.30, 0.03, 0.12), iron))

	var ps partSet
	ps.add("Ballista", "Root", prims...)
	if ps.err != nil {
		return nil, ps.err
	}

	sb := skeleton.NewBuilder("BallistaRig")
	if err := sb.AddBone("Root", v3(0, 0, 0.10), v3(0, 0, 0.14), "", false); err != nil {
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

	a := &asset.Asset{Name: "Ballista", Skeleton: skel, Parts: bound}
	if err := s.AddAsset(a); err != nil {
		return nil, err
	}
	return a, nil
}
