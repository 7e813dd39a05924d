// Package batch runs every requested archetype generator through a worker
// pool: generate inside a fresh session, finalize, render stepped preview
// frames for each clip, and write a manifest of what was produced.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"marches-modelforge/internal/anim"
	"marches-modelforge/internal/archetype"
	"marches-modelforge/internal/asset"
	"marches-modelforge/internal/config"
	"marches-modelforge/internal/material"
	"marches-modelforge/internal/preview"
	"marches-modelforge/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Tuning      *config.Tuning
	RenderSize  int
	Supersample int
	FrameStep   int
	Workers     int
}

// ClipResult summarizes one rendered clip.
type ClipResult struct {
	Name   string `json:"name"`
	Stage  string `json:"stage"`
	First  int    `json:"first_frame"`
	Last   int    `json:"last_frame"`
	Frames int    `json:"frames_rendered"`
}

// Result holds the outcome of generating one archetype.
type Result struct {
	Name    string       `json:"name"`
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Bones   int          `json:"bones,omitempty"`
	Parts   int          `json:"parts,omitempty"`
	Mats    int          `json:"materials,omitempty"`
	Clips   []ClipResult `json:"clips,omitempty"`
}

// Run generates all given archetypes using a worker pool and writes
// manifest.json into the output directory.
func Run(cfg Config, gens []archetype.Generator) []Result {
	total := len(gens)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f archetypes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool. Each archetype generates inside its own session, so
	// workers never share authoring state.
	genChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range genChan {
				results[idx] = processArchetype(cfg, gens[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range gens {
		genChan <- i
	}
	close(genChan)

	wg.Wait()
	close(done)

	return results
}

// WriteManifest records what the run produced.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// GeneratorParams converts the tuning overlay into the Params one generator
// consumes: its palette overrides and its clip-retention predicate.
func GeneratorParams(t *config.Tuning, name string) archetype.Params {
	p := archetype.Params{
		Retain: func(clip string) bool { return t.ShouldRetain(name, clip) },
	}
	if pal := t.PaletteFor(name); len(pal) > 0 {
		p.Palette = make(map[string]material.Color, len(pal))
		for mat, c := range pal {
			p.Palette[mat] = material.Color(c)
		}
	}
	return p
}

func processArchetype(cfg Config, gen archetype.Generator) Result {
	res := Result{Name: gen.Name}

	s := scene.New()
	a, err := gen.Build(s, GeneratorParams(cfg.Tuning, gen.Name))
	if err != nil {
		res.Error = err.Error()
		return res
	}

	report, err := a.Finalize()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Bones = report.Bones
	res.Parts = report.Parts
	res.Mats = report.Materials

	opts := preview.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		AzimuthDeg:  preview.DefaultOptions().AzimuthDeg,
		TiltDeg:     preview.DefaultOptions().TiltDeg,
	}
	outDir := filepath.Join(cfg.OutputDir, a.Name)

	// Rest pose first: the one frame every asset has, clips or not.
	rest := preview.RenderFrame(a, nil, nil, opts)
	if err := preview.WriteWebP(filepath.Join(outDir, "rest.webp"), rest); err != nil {
		res.Error = err.Error()
		return res
	}

	for _, clip := range a.Clips() {
		cr, err := renderClip(a, clip, outDir, cfg.FrameStep, opts)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Clips = append(res.Clips, cr)
	}

	res.Success = true
	return res
}

// renderClip writes stepped frames for one clip, always including the last
// keyed frame so loop-closure and settle poses are reviewable.
func renderClip(a *asset.Asset, clip *anim.Clip, outDir string, step int, opts preview.Options) (ClipResult, error) {
	first, last := clip.FrameRange()
	cr := ClipResult{Name: clip.Name, Stage: clip.Stage.String(), First: first, Last: last}

	if step <= 0 {
		step = 1
	}
	frames := make([]int, 0, (last-first)/step+2)
	for f := first; f < last; f += step {
		frames = append(frames, f)
	}
	frames = append(frames, last)

	for _, f := range frames {
		img := preview.RenderClipFrame(a, clip, float64(f), opts)
		path := filepath.Join(outDir, clip.Name, fmt.Sprintf("%03d.webp", f))
		if err := preview.WriteWebP(path, img); err != nil {
			return cr, err
		}
		cr.Frames++
	}
	return cr, nil
}
