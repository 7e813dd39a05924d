package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/bodypart"
	"marches-modelforge/internal/geometry"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/mathutil"
	"marches-modelforge/internal/skeleton"
)

func testSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	b := skeleton.NewBuilder("r")
	require.NoError(t, b.AddBone("Root", mathutil.Vec3{}, mathutil.Vec3{0, 0, 0.2}, "", false))
	require.NoError(t, b.AddBone("Spine", mathutil.Vec3{0, 0, 0.2}, mathutil.Vec3{0, 0, 0.5}, "Root", true))
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func testPart(t *testing.T, binding string) *bodypart.BodyPart {
	t.Helper()
	m := &material.Material{Name: "m"}
	p := geometry.Box("b", mathutil.Vec3{}, mathutil.Vec3{1, 1, 1}, m)
	bp, err := bodypart.Assemble("Part", []*geometry.Primitive{p}, binding)
	require.NoError(t, err)
	return bp
}

func TestBindResolvesBinding(t *testing.T) {
	s := testSkeleton(t)
	bp := testPart(t, "Spine")

	bound, err := Bind(bp, s, "")
	require.NoError(t, err)
	assert.Equal(t, 1, bound.Bone)
	assert.Same(t, bp, bound.Part)
}

func TestBindExplicitOverride(t *testing.T) {
	s := testSkeleton(t)
	bound, err := Bind(testPart(t, "Spine"), s, "Root")
	require.NoError(t, err)
	assert.Equal(t, 0, bound.Bone)
}

func TestBindMissingBone(t *testing.T) {
	s := testSkeleton(t)
	_, err := Bind(testPart(t, "Tail"), s, "")
	var bnf *skeleton.BoneNotFoundError
	require.ErrorAs(t, err, &bnf)
	assert.Equal(t, "Tail", bnf.Bone)
	assert.Equal(t, "r", bnf.Skeleton)
}

func TestBindAllStopsAtFirstMissing(t *testing.T) {
	s := testSkeleton(t)
	parts := []*bodypart.BodyPart{testPart(t, "Root"), testPart(t, "Nope"), testPart(t, "Spine")}
	_, err := BindAll(parts, s)
	assert.Error(t, err)

	bound, err := BindAll(parts[:1], s)
	require.NoError(t, err)
	assert.Len(t, bound, 1)
}
