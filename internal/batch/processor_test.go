package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marches-modelforge/internal/archetype"
	"marches-modelforge/internal/config"
	"marches-modelforge/internal/material"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		OutputDir:   t.TempDir(),
		Tuning:      &config.Tuning{},
		RenderSize:  32,
		Supersample: 1,
		FrameStep:   12,
		Workers:     2,
	}
}

func TestRunGeneratesPreviews(t *testing.T) {
	cfg := testConfig(t)
	g, ok := archetype.Find("BasicOrc")
	require.True(t, ok)

	results := Run(cfg, []archetype.Generator{g})
	require.Len(t, results, 1)
	r := results[0]
	require.True(t, r.Success, "error: %s", r.Error)
	assert.Equal(t, 11, r.Bones)
	require.Len(t, r.Clips, 3)

	// Rest pose plus stepped frames per clip, last frame always included.
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "BasicOrc", "rest.webp"))
	walk := r.Clips[0]
	assert.Equal(t, "Walk", walk.Name)
	assert.Equal(t, 1, walk.First)
	assert.Equal(t, 25, walk.Last)
	assert.Equal(t, 3, walk.Frames) // 1, 13, 25
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "BasicOrc", "Walk", "001.webp"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "BasicOrc", "Walk", "025.webp"))
}

func TestRunStaticProp(t *testing.T) {
	cfg := testConfig(t)
	g, ok := archetype.Find("Ballista")
	require.True(t, ok)

	results := Run(cfg, []archetype.Generator{g})
	require.Len(t, results, 1)
	require.True(t, results[0].Success, "error: %s", results[0].Error)
	assert.Empty(t, results[0].Clips)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "Ballista", "rest.webp"))
}

func TestGeneratorParams(t *testing.T) {
	tn := &config.Tuning{
		Palettes: map[string]config.Palette{
			"BasicOrc": {"OrcSkin": [4]float64{0.1, 0.2, 0.3, 1}},
		},
		Retain: []string{"BasicOrc/Walk"},
	}

	p := GeneratorParams(tn, "BasicOrc")
	assert.Equal(t, material.Color{0.1, 0.2, 0.3, 1}, p.Palette["OrcSkin"])
	assert.True(t, p.Retain("Walk"))
	assert.False(t, p.Retain("Die"))

	other := GeneratorParams(tn, "Pikeman")
	assert.Nil(t, other.Palette)
	assert.False(t, other.Retain("Walk"))
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	results := []Result{{Name: "BasicOrc", Success: true, Bones: 11}}
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back []Result
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "BasicOrc", back[0].Name)
	assert.Equal(t, 11, back[0].Bones)
}
