// Package bodypart merges frozen primitives into the per-bone rigid mesh
// units the rig binder attaches to the skeleton. Characters are built from
// dozens of small primitives grouped by which bone moves them as one block.
package bodypart

import (
	"fmt"

	"marches-modelforge/internal/geometry"
)

// BodyPart is one merged, multi-material mesh unit bound to exactly one bone.
// The mesh is immutable after assembly; treat Mesh as read-only.
type BodyPart struct {
	Name        string
	BoneBinding string
	Mesh        geometry.Mesh
}

// Assemble fuses prims into one body part. The constituent primitives are
// consumed and cease to exist as separate entities; the merge is
// irreversible. boneBinding may name a bone that does not exist yet —
// resolution is deferred to rig bind time so mesh-authoring order stays
// decoupled from skeleton-authoring order.
func Assemble(name string, prims []*geometry.Primitive, boneBinding string) (*BodyPart, error) {
	if len(prims) == 0 {
		return nil, fmt.Errorf("bodypart %q: no primitives to merge", name)
	}

	bp := &BodyPart{Name: name, BoneBinding: boneBinding}
	for _, p := range prims {
		m, err := p.Take()
		if err != nil {
			return nil, fmt.Errorf("bodypart %q: %w", name, err)
		}
		bp.Mesh.Append(&m)
	}
	return bp, nil
}
