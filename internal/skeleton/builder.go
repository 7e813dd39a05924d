package skeleton

import (
	"fmt"

	"marches-modelforge/internal/mathutil"
)

// Builder accumulates bones in definition order. Parents must be added
// before their children, matching how the armatures are authored.
type Builder struct {
	name  string
	bones []Bone
	index map[string]int
}

// NewBuilder starts an empty skeleton for one archetype.
func NewBuilder(name string) *Builder {
	return &Builder{name: name, index: make(map[string]int)}
}

// AddBone appends a bone. parent is the name of an already-added bone, or ""
// for a root. connected declares head == parent.tail; Build verifies it.
func (b *Builder) AddBone(name string, head, tail mathutil.Vec3, parent string, connected bool) error {
	if _, dup := b.index[name]; dup {
		return fmt.Errorf("skeleton %q: duplicate bone name %q", b.name, name)
	}

	pi := -1
	if parent != "" {
		i, ok := b.index[parent]
		if !ok {
			return &BoneNotFoundError{Skeleton: b.name, Bone: parent}
		}
		pi = i
	} else if connected {
		return fmt.Errorf("skeleton %q: bone %q connected without a parent", b.name, name)
	}

	b.index[name] = len(b.bones)
	b.bones = append(b.bones, Bone{
		Name:      name,
		Head:      head,
		Tail:      tail,
		Parent:    pi,
		Connected: connected,
	})
	return nil
}

// Build validates and returns the skeleton: every bone reaches a root within
// MaxDepth, and connected bones sit on their parent's tail within tolerance.
func (b *Builder) Build() (*Skeleton, error) {
	s := &Skeleton{Name: b.name, Bones: b.bones, index: b.index}

	for _, bone := range s.Bones {
		depth := 0
		for p := bone.Parent; p >= 0; p = s.Bones[p].Parent {
			depth++
			if depth > MaxDepth {
				return nil, fmt.Errorf("skeleton %q: bone %q exceeds max parent depth %d", b.name, bone.Name, MaxDepth)
			}
		}

		if bone.Connected {
			gap := bone.Head.Sub(s.Bones[bone.Parent].Tail).Len()
			if gap > ConnectTolerance {
				return nil, fmt.Errorf("skeleton %q: connected bone %q head is %.6g from parent tail", b.name, bone.Name, gap)
			}
		}
	}
	return s, nil
}

// Len returns the number of bones added so far.
func (b *Builder) Len() int {
	return len(b.bones)
}
