// Package asset assembles the top-level generated output for one character
// or prop: a skeleton, the body parts rigidly bound to it, and the packaged
// animation tracks. An asset is fully constructed per run and handed to an
// external export step; it is never patched incrementally.
package asset

import (
	"fmt"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/rig"
	"marches-modelforge/internal/skeleton"
	"marches-modelforge/internal/track"
)

// Asset is the complete generated output for one archetype.
type Asset struct {
	Name     string
	Skeleton *skeleton.Skeleton
	Parts    []*rig.BoundPart
	Tracks   []*track.Track
}

// Report summarizes a finalized asset. Regenerating with identical inputs
// must reproduce identical counts — no duplication, no orphaned entities.
type Report struct {
	Bones      int
	Parts      int
	Materials  int
	Tracks     int
	DraftClips []string
}

// Clips returns the wrapped clips in track order.
func (a *Asset) Clips() []*anim.Clip {
	clips := make([]*anim.Clip, len(a.Tracks))
	for i, t := range a.Tracks {
		clips[i] = t.Clip
	}
	return clips
}

// FindTrack returns the track wrapping the named clip.
func (a *Asset) FindTrack(name string) (*track.Track, bool) {
	for _, t := range a.Tracks {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Materials returns the distinct materials referenced across all parts.
func (a *Asset) Materials() []*material.Material {
	seen := make(map[*material.Material]bool)
	var out []*material.Material
	for _, bp := range a.Parts {
		for _, m := range bp.Part.Mesh.Materials() {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// Finalize re-checks the asset's structural invariants and returns the
// summary report: every part binds to a bone present in this skeleton, every
// clip was authored against this skeleton, looping clips close their loops,
// and draft clips are listed so unfinished animation is visible before the
// export step picks the asset up.
func (a *Asset) Finalize() (Report, error) {
	r := Report{
		Bones:     len(a.Skeleton.Bones),
		Parts:     len(a.Parts),
		Materials: len(a.Materials()),
		Tracks:    len(a.Tracks),
	}

	for _, bp := range a.Parts {
		if bp.Bone < 0 || bp.Bone >= len(a.Skeleton.Bones) {
			return r, fmt.Errorf("asset %q: part %q bound to out-of-range bone %d",
				a.Name, bp.Part.Name, bp.Bone)
		}
		if !a.Skeleton.Has(bp.Part.BoneBinding) {
			return r, &skeleton.BoneNotFoundError{Skeleton: a.Skeleton.Name, Bone: bp.Part.BoneBinding}
		}
	}

	unmuted := 0
	for _, t := range a.Tracks {
		c := t.Clip
		// Retained clips carry the previous run's skeleton value; structural
		// equality is what matters.
		if c.Skeleton() != a.Skeleton && !skeleton.Equal(c.Skeleton(), a.Skeleton) {
			return r, fmt.Errorf("asset %q: clip %q authored against skeleton %q",
				a.Name, c.Name, c.Skeleton().Name)
		}
		if c.Loop && len(c.Source) > 1 {
			first, last := c.Source[0], c.Source[len(c.Source)-1]
			if !sameKeyframes(first, last) {
				return r, fmt.Errorf("asset %q: looping clip %q does not close", a.Name, c.Name)
			}
		}
		if c.Stage == anim.StageDraft {
			r.DraftClips = append(r.DraftClips, c.Name)
		}
		if !t.Mute {
			unmuted++
		}
	}
	if unmuted > 1 {
		return r, fmt.Errorf("asset %q: %d tracks unmuted, at most one preview track allowed", a.Name, unmuted)
	}
	return r, nil
}

func sameKeyframes(a, b *anim.Keyframe) bool {
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
