// Package archetype holds the parametric character and prop generators.
// Each generator rebuilds its asset from scratch inside a session: define
// materials, assemble body parts, build the skeleton, bind, author clips,
// package tracks. Generators never patch an existing asset; fixing output
// means fixing the generator and regenerating.
package archetype

import (
	"fmt"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/bodypart"
	"marches-modelforge/internal/geometry"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/scene"
	"marches-modelforge/internal/skeleton"
)

// Params carries the per-run tuning a generator honors without source edits.
type Params struct {
	// Palette overrides material colors by material name.
	Palette map[string]material.Color
	// Retain marks clips by name to survive a non-forced session reset.
	Retain func(clip string) bool
}

// Generator produces one asset inside the given session.
type Generator struct {
	Name  string
	Build func(s *scene.Session, p Params) (*asset.Asset, error)
}

var registry []Generator

func register(g Generator) {
	registry = append(registry, g)
}

// All returns every registered generator in registration order.
func All() []Generator {
	out := make([]Generator, len(registry))
	copy(out, registry)
	return out
}

// Find returns the named generator.
func Find(name string) (Generator, bool) {
	for _, g := range registry {
		if g.Name == name {
			return g, true
		}
	}
	return Generator{}, false
}

// Names returns the registered generator names in order.
func Names() []string {
	names := make([]string, len(registry))
	for i, g := range registry {
		names[i] = g.Name
	}
	return names
}

// palette defines materials against the session catalog with the run's
// color overrides applied. The first error sticks; check err once at the end.
type palette struct {
	cat       *material.Catalog
	overrides map[string]material.Color
	err       error
}

func (p *palette) define(name string, c material.Color, opts ...material.Option) *material.Material {
	if p.err != nil {
		return nil
	}
	if over, ok := p.overrides[name]; ok {
		c = over
	}
	m, err := p.cat.Define(name, c, opts...)
	if err != nil {
		p.err = err
	}
	return m
}

// partSet accumulates assembled body parts with the same sticky-error
// pattern; each add merges its primitives into one rigid unit.
type partSet struct {
	parts []*bodypart.BodyPart
	err   error
}

func (ps *partSet) add(name, bone string, prims ...*geometry.Primitive) {
	if ps.err != nil {
		return
	}
	bp, err := bodypart.Assemble(name, prims, bone)
	if err != nil {
		ps.err = err
		return
	}
	ps.parts = append(ps.parts, bp)
}

// clipAuthor authors clips for one asset, reusing retained clips from the
// previous run when the rebuilt skeleton still matches, and marking clips
// retained per the run params.
type clipAuthor struct {
	session *scene.Session
	anim    *anim.Animator
	skel    *skeleton.Skeleton
	asset   string
	retain  func(string) bool
}

func newClipAuthor(s *scene.Session, skel *skeleton.Skeleton, assetName string, p Params) *clipAuthor {
	return &clipAuthor{
		session: s,
		anim:    anim.NewAnimator(skel),
		skel:    skel,
		asset:   assetName,
		retain:  p.Retain,
	}
}

func (ca *clipAuthor) author(name string, keys []*anim.Keyframe, interp anim.Interp, opts ...anim.ClipOption) (*anim.Clip, error) {
	if rc, ok := ca.session.RetainedClip(ca.asset + "/" + name); ok {
		if skeleton.Equal(rc.Skeleton(), ca.skel) {
			return rc, nil
		}
		return nil, fmt.Errorf("archetype %s: retained clip %q was authored against a different %q skeleton; rerun with a forced reset",
			ca.asset, name, rc.Skeleton().Name)
	}
	if ca.retain != nil && ca.retain(name) {
		opts = append(opts, anim.WithRetained())
	}
	return ca.anim.Author(name, keys, interp, opts...)
}
