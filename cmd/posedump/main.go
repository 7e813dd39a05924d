package main

import (
	"flag"
	"fmt"
	"os"

	"marches-modelforge/internal/archetype"
	"marches-modelforge/internal/posereport"
	"marches-modelforge/internal/scene"
)

// posedump prints the pose-report block for one clip frame, the same format
// hand-posed captures are transcribed from. Useful for diffing an authored
// clip against a captured pose.
func main() {
	name := flag.String("archetype", "", "Archetype to generate")
	clipName := flag.String("clip", "", "Clip to sample")
	frame := flag.Int("frame", 1, "Frame to report")

	flag.Parse()

	if *name == "" || *clipName == "" {
		fmt.Fprintln(os.Stderr, "Usage: posedump -archetype NAME -clip NAME [-frame N]")
		os.Exit(1)
	}

	g, ok := archetype.Find(*name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown archetype %q\n", *name)
		os.Exit(1)
	}

	s := scene.New()
	a, err := g.Build(s, archetype.Params{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, c := range a.Clips() {
		if c.Name != *clipName {
			continue
		}
		entries := posereport.FromPose(a.Skeleton, c.Sample(float64(*frame)))
		fmt.Print(posereport.Format(a.Skeleton.Name, *frame, entries))
		return
	}

	fmt.Fprintf(os.Stderr, "Error: archetype %q has no clip %q\n", *name, *clipName)
	os.Exit(1)
}
