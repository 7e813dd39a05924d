// Package scene holds the authoring workspace. The workspace is an explicit
// Session value threaded through every generation call — there is no ambient
// global state — with exactly one writer and no concurrent readers during a
// run. Regeneration discipline: reset, then rebuild everything from scratch.
package scene

import (
	"fmt"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/material"
)

// Session is one authoring workspace: the material catalog plus the assets
// authored so far, in order.
type Session struct {
	Materials *material.Catalog

	assets   []*asset.Asset
	byName   map[string]*asset.Asset
	retained map[string]*anim.Clip
}

// New returns an empty session.
func New() *Session {
	return &Session{
		Materials: material.NewCatalog(),
		byName:    make(map[string]*asset.Asset),
		retained:  make(map[string]*anim.Clip),
	}
}

// ResetOptions controls what Reset destroys.
type ResetOptions struct {
	// Force purges retained clips too. This mirrors the old unconditional
	// behavior that silently discarded hand-tuned poses; it stays available
	// for a truly clean regeneration but is no longer the default.
	Force bool
}

// Reset returns a fresh session, purging every authored asset, mesh and
// material so the next run cannot collide with stale names or accumulate
// geometry. Clips marked retained survive into the new session unless Force
// is set, keyed "Asset/Clip"; generators pick them up through RetainedClip
// instead of re-authoring.
func (s *Session) Reset(opts ResetOptions) *Session {
	n := New()
	if !opts.Force {
		for _, a := range s.assets {
			for _, c := range a.Clips() {
				if c.Retained {
					n.retained[a.Name+"/"+c.Name] = c
				}
			}
		}
		for name, c := range s.retained {
			if _, ok := n.retained[name]; !ok {
				n.retained[name] = c
			}
		}
	}
	return n
}

// AddAsset registers a finished asset under its name.
func (s *Session) AddAsset(a *asset.Asset) error {
	if _, dup := s.byName[a.Name]; dup {
		return fmt.Errorf("scene: asset %q already authored this run; reset before regenerating", a.Name)
	}
	s.byName[a.Name] = a
	s.assets = append(s.assets, a)
	return nil
}

// Asset returns the named asset, if authored this run.
func (s *Session) Asset(name string) (*asset.Asset, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Assets returns the authored assets in order.
func (s *Session) Assets() []*asset.Asset {
	return s.assets
}

// RetainedClip returns a clip carried over from the previous run under the
// qualified "Asset/Clip" name. The caller must still verify the clip's
// skeleton matches before reusing it.
func (s *Session) RetainedClip(name string) (*anim.Clip, bool) {
	c, ok := s.retained[name]
	return c, ok
}

// RetainedCount returns how many clips survived the last reset.
func (s *Session) RetainedCount() int {
	return len(s.retained)
}
