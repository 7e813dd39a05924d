// Package config holds the generation run settings: a JSON config file,
// overridden by CLI flags, plus an optional YAML tuning file for palette and
// clip-retention overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable output and render settings.
type Config struct {
	OutputDir   string `json:"output_dir"`
	TuningFile  string `json:"tuning_file"`
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	FrameStep   int    `json:"frame_step"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir  string
	TuningFile string
	Size       int
	FrameStep  int
	Workers    int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TuningFile != "" {
		c.TuningFile = flags.TuningFile
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.FrameStep > 0 {
		c.FrameStep = flags.FrameStep
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "Model_Preview"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FrameStep <= 0 {
		c.FrameStep = 5
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Palette maps material names to RGBA color overrides (components 0..1).
type Palette map[string][4]float64

// Tuning is the optional YAML overlay reviewers use to recolor archetypes
// and protect hand-tuned clips across regeneration, without touching the
// generator source.
type Tuning struct {
	// Palettes keys are archetype names; values override that archetype's
	// material colors by material name.
	Palettes map[string]Palette `yaml:"palettes"`
	// Retain lists "Archetype/Clip" entries to mark retained, so a
	// non-forced reset preserves them.
	Retain []string `yaml:"retain"`
}

// LoadTuning reads a YAML tuning file. A missing path returns an empty
// tuning, not an error.
func LoadTuning(path string) (*Tuning, error) {
	if path == "" {
		return &Tuning{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Tuning{}, nil
		}
		return nil, fmt.Errorf("config: read tuning %s: %w", path, err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("config: parse tuning %s: %w", path, err)
	}
	return &t, nil
}

// PaletteFor returns the palette overrides for one archetype, possibly nil.
func (t *Tuning) PaletteFor(archetype string) Palette {
	if t == nil {
		return nil
	}
	return t.Palettes[archetype]
}

// ShouldRetain reports whether the archetype's clip is listed for retention.
func (t *Tuning) ShouldRetain(archetype, clip string) bool {
	if t == nil {
		return false
	}
	key := archetype + "/" + clip
	for _, r := range t.Retain {
		if r == key {
			return true
		}
	}
	return false
}
