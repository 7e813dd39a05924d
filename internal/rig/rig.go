// Package rig rigidly attaches body parts to skeleton bones. Posing a bone
// transforms every part bound to it and to any descendant bone as a solid,
// with no deformation or blended influence from any other bone.
package rig

import (
	"marches-modelforge/internal/bodypart"
	"marches-modelforge/internal/skeleton"
)

// BoundPart is a body part whose bone binding has been resolved.
type BoundPart struct {
	Part *bodypart.BodyPart
	Bone int // index into the skeleton's bone slice
}

// Bind resolves part.BoneBinding (or an explicit boneName override) against
// skel. Returns *skeleton.BoneNotFoundError when the bone is absent; the
// failure aborts that character's generation — the fix is to correct the
// authoring input and regenerate, never to patch.
func Bind(part *bodypart.BodyPart, skel *skeleton.Skeleton, boneName string) (*BoundPart, error) {
	if boneName == "" {
		boneName = part.BoneBinding
	}
	i, ok := skel.Find(boneName)
	if !ok {
		return nil, &skeleton.BoneNotFoundError{Skeleton: skel.Name, Bone: boneName}
	}
	return &BoundPart{Part: part, Bone: i}, nil
}

// BindAll binds every part to its own BoneBinding, stopping at the first
// missing bone.
func BindAll(parts []*bodypart.BodyPart, skel *skeleton.Skeleton) ([]*BoundPart, error) {
	bound := make([]*BoundPart, 0, len(parts))
	for _, p := range parts {
		bp, err := Bind(p, skel, "")
		if err != nil {
			return nil, err
		}
		bound = append(bound, bp)
	}
	return bound, nil
}
