package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"output_dir": "out",
		"render_size": 512,
		"frame_step": 3,
		"workers": 4
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 512, cfg.RenderSize)
	assert.Equal(t, 3, cfg.FrameStep)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	path := writeFile(t, "bad.json", "{not json")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{OutputDir: "from-file", RenderSize: 512, Workers: 2}
	cfg.Resolve(Flags{OutputDir: "from-flag", Size: 128})
	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.Equal(t, 128, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Workers)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, "Model_Preview", cfg.OutputDir)
	assert.Equal(t, 256, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 5, cfg.FrameStep)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestLoadTuning(t *testing.T) {
	path := writeFile(t, "tuning.yaml", `
palettes:
  BasicOrc:
    OrcSkin: [0.2, 0.6, 0.2, 1.0]
retain:
  - Pikeman/Attack
`)
	tn, err := LoadTuning(path)
	require.NoError(t, err)

	pal := tn.PaletteFor("BasicOrc")
	require.NotNil(t, pal)
	assert.Equal(t, [4]float64{0.2, 0.6, 0.2, 1.0}, pal["OrcSkin"])
	assert.Nil(t, tn.PaletteFor("Pikeman"))

	assert.True(t, tn.ShouldRetain("Pikeman", "Attack"))
	assert.False(t, tn.ShouldRetain("Pikeman", "Walk"))
	assert.False(t, tn.ShouldRetain("BasicOrc", "Attack"))
}

func TestLoadTuningMissingIsEmpty(t *testing.T) {
	tn, err := LoadTuning("")
	require.NoError(t, err)
	assert.False(t, tn.ShouldRetain("X", "Y"))

	tn, err = LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, tn.PaletteFor("X"))
}

func TestLoadTuningInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "palettes: [not a map")
	_, err := LoadTuning(path)
	assert.Error(t, err)
}
