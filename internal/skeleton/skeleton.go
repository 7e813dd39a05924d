// Package skeleton defines the hierarchical bone tree for one archetype and
// the rigid world-transform math used when posing it.
package skeleton

import (
	"fmt"

	"marches-modelforge/internal/mathutil"
)

// MaxDepth bounds the parent chain; a valid skeleton reaches a parentless
// root within this many hops.
const MaxDepth = 16

// ConnectTolerance is the allowed distance between a connected bone's head
// and its parent's tail.
const ConnectTolerance = 1e-6

// Bone is one node of the tree. Parent is an index into Skeleton.Bones,
// -1 for a root. Connected means the head coincides with the parent's tail;
// the caller supplies that consistently, it is not recomputed.
type Bone struct {
	Name      string
	Head      mathutil.Vec3
	Tail      mathutil.Vec3
	Parent    int
	Connected bool
}

// Skeleton is the ordered, validated bone set for one archetype. It is
// rebuilt from scratch every generation run, never patched incrementally.
type Skeleton struct {
	Name  string
	Bones []Bone
	index map[string]int
}

// Find returns the index of the named bone.
func (s *Skeleton) Find(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the named bone exists.
func (s *Skeleton) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns bone names in definition order.
func (s *Skeleton) Names() []string {
	names := make([]string, len(s.Bones))
	for i, b := range s.Bones {
		names[i] = b.Name
	}
	return names
}

// Depth returns the number of parent hops from bone i to its root.
func (s *Skeleton) Depth(i int) int {
	d := 0
	for p := s.Bones[i].Parent; p >= 0; p = s.Bones[p].Parent {
		d++
		if d > MaxDepth {
			break
		}
	}
	return d
}

// WorldMatrices composes the posed world transform for every bone. rot holds
// Euler XYZ degrees and trans world-axis offsets, both indexed like Bones;
// zero entries mean rest. Each bone rotates about its own head, children
// inherit the parent transform rigidly.
func (s *Skeleton) WorldMatrices(rot, trans []mathutil.Vec3) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(s.Bones))
	for i, b := range s.Bones {
		local := mathutil.Mat4Identity()
		if !rot[i].IsZero() || !trans[i].IsZero() {
			r := mathutil.EulerXYZDeg(rot[i])
			local = mathutil.PivotRotation(r, b.Head, trans[i])
		}
		if b.Parent >= 0 && b.Parent < i {
			worlds[i] = mathutil.Mat4Mul(worlds[b.Parent], local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// Equal reports whether two skeletons have identical structure: name, bone
// order, heads, tails, parenting and connection flags. Clips retained across
// a session reset are only reusable against an equal skeleton.
func Equal(a, b *Skeleton) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Name != b.Name || len(a.Bones) != len(b.Bones) {
		return false
	}
	for i := range a.Bones {
		if a.Bones[i] != b.Bones[i] {
			return false
		}
	}
	return true
}

// BoneNotFoundError reports a reference to a bone name absent from a
// skeleton, at rig-bind or clip-author time.
type BoneNotFoundError struct {
	Skeleton string
	Bone     string
}

func (e *BoneNotFoundError) Error() string {
	return fmt.Sprintf("skeleton %q has no bone %q", e.Skeleton, e.Bone)
}
