package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"marches-modelforge/internal/archetype"
	"marches-modelforge/internal/batch"
	"marches-modelforge/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	name := flag.String("archetype", "", "Generate only this archetype")
	list := flag.Bool("list", false, "List registered archetypes and exit")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: Model_Preview)")
	tuningFile := flag.String("tuning", "", "Path to tuning.yaml (palettes, retained clips)")
	size := flag.Int("size", 0, "Preview frame size in pixels (default: 256)")
	step := flag.Int("step", 0, "Frames between preview renders (default: 5)")

	flag.Parse()

	if *list {
		for _, n := range archetype.Names() {
			fmt.Println(n)
		}
		return
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:  *outputDir,
		TuningFile: *tuningFile,
		Size:       *size,
		FrameStep:  *step,
		Workers:    *workers,
	})

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
		os.Exit(1)
	}

	gens := archetype.All()
	if *name != "" {
		g, ok := archetype.Find(*name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown archetype %q (use -list)\n", *name)
			os.Exit(1)
		}
		gens = []archetype.Generator{g}
	}

	if len(gens) == 0 {
		fmt.Println("No archetypes to generate.")
		os.Exit(0)
	}

	fmt.Printf("Marches ModelForge → WebP previews\n")
	fmt.Printf("Archetypes: %d, Workers: %d\n", len(gens), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Tuning:      tuning,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FrameStep:   cfg.FrameStep,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, gens)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Generated: %d/%d\n", success, len(gens))
	for _, r := range results {
		if !r.Success {
			continue
		}
		fmt.Printf("  %s: %d bones, %d parts, %d materials, %d clips\n",
			r.Name, r.Bones, r.Parts, r.Mats, len(r.Clips))
		for _, c := range r.Clips {
			fmt.Printf("    %s [%s] frames %d-%d, %d rendered\n",
				c.Name, c.Stage, c.First, c.Last, c.Frames)
		}
	}

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type Result = batch.Result
