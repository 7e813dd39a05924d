// Package track wraps clips in independently selectable, non-blending
// tracks. One clip per track keeps named clips coexisting without the
// consuming runtime blending them together.
package track

import (
	"fmt"

	"marches-modelforge/internal/anim"
)

// Track wraps exactly one clip. Muted tracks are ignored by preview; the
// consumer unmutes (solos) one track at a time.
type Track struct {
	Name string
	Clip *anim.Clip
	Mute bool
}

// Package wraps one clip in a muted track.
func Package(clip *anim.Clip) *Track {
	return &Track{Name: clip.Name, Clip: clip, Mute: true}
}

// PackageAll wraps each clip in its own track, all muted except at most the
// named preview track, so a reviewer immediately sees a meaningful pose.
// Pass "" to leave everything muted.
func PackageAll(clips []*anim.Clip, preview string) ([]*Track, error) {
	tracks := make([]*Track, 0, len(clips))
	found := preview == ""
	for _, c := range clips {
		t := Package(c)
		if c.Name == preview {
			t.Mute = false
			found = true
		}
		tracks = append(tracks, t)
	}
	if !found {
		return nil, fmt.Errorf("track: preview clip %q not among packaged clips", preview)
	}
	return tracks, nil
}
