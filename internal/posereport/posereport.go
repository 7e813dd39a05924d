// Package posereport implements the hand-posing capture step: it reads a
// posed skeleton and reports every bone meaningfully away from rest, in a
// form meant to be transcribed by hand back into keyframe definitions. This
// is a one-way human-mediated path, not an automated feedback loop.
package posereport

import (
	"fmt"
	"math"
	"strings"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

// Reporting thresholds: rotation in degrees per axis, translation in world
// units per axis. Bones under both thresholds are omitted.
const (
	RotThreshold   = 0.5
	TransThreshold = 0.001
)

// Entry is one bone's reportable deviation from rest. Rot and Trans are nil
// when that channel is within threshold.
type Entry struct {
	Bone  string
	Rot   *mathutil.Vec3
	Trans *mathutil.Vec3
}

// FromPose collects entries for every bone whose pose deviates from rest,
// in skeleton order. pose is indexed like skel.Bones.
func FromPose(skel *skeleton.Skeleton, pose []anim.Pose) []Entry {
	var out []Entry
	for i, b := range skel.Bones {
		if i >= len(pose) {
			break
		}
		p := pose[i]
		e := Entry{Bone: b.Name}
		if over(p.Rot, RotThreshold) {
			r := p.Rot
			e.Rot = &r
		}
		if over(p.Trans, TransThreshold) {
			t := p.Trans
			e.Trans = &t
		}
		if e.Rot != nil || e.Trans != nil {
			out = append(out, e)
		}
	}
	return out
}

func over(v mathutil.Vec3, threshold float64) bool {
	return math.Abs(v[0]) > threshold ||
		math.Abs(v[1]) > threshold ||
		math.Abs(v[2]) > threshold
}

// Format renders a transcription-ready report block.
func Format(skelName string, frame int, entries []Entry) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&sb, "%s\n", rule)
	fmt.Fprintf(&sb, "  Pose bone transforms at frame %d\n", frame)
	fmt.Fprintf(&sb, "  Skeleton: %s\n", skelName)
	fmt.Fprintf(&sb, "%s\n", rule)
	if len(entries) == 0 {
		fmt.Fprintf(&sb, "  (all bones at rest)\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, "  %s:\n", e.Bone)
		if e.Rot != nil {
			fmt.Fprintf(&sb, "    rot=(%.1f, %.1f, %.1f)\n", e.Rot[0], e.Rot[1], e.Rot[2])
		}
		if e.Trans != nil {
			fmt.Fprintf(&sb, "    loc=(%.4f, %.4f, %.4f)\n", e.Trans[0], e.Trans[1], e.Trans[2])
		}
	}
	sb.WriteString(rule)
	sb.WriteString("\n")
	return sb.String()
}
