package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"WaveInterference/internal/lattice"
	"WaveInterference/internal/scene"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	stop, err := startProfiling(*cpuProfileFlag, *heapProfileFlag)
	if err != nil {
		return err
	}
	defer stop()

	cfg, err := sceneConfig()
	if err != nil {
		return err
	}
	log.Printf("Scene %s: %dx%d cells, cell %.3g, step %.3g, boundary %s",
		cfg.Name, cfg.Lattice.Width, cfg.Lattice.Height, cfg.CellWidth, cfg.StepDuration(), cfg.Lattice.Boundary)

	g, err := newGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(g.visW*windowScale, g.visH*windowScale)
	ebiten.SetWindowTitle(fmt.Sprintf("Wave Interference: %s", cfg.Name))
	runErr := ebiten.RunGame(g)
	if err := g.close(); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	return runErr
}

// sceneConfig resolves -scene-file or -scene and applies the remaining
// command-line overrides.
func sceneConfig() (scene.Config, error) {
	var (
		cfg scene.Config
		err error
	)
	if *sceneFileFlag != "" {
		cfg, err = scene.LoadFile(*sceneFileFlag)
	} else {
		cfg, err = scene.Preset(*sceneFlag)
	}
	if err != nil {
		return scene.Config{}, err
	}
	if *boundaryFlag != "" {
		b, err := lattice.ParseBoundary(*boundaryFlag)
		if err != nil {
			return scene.Config{}, err
		}
		cfg.Lattice.Boundary = b
	}
	if *twoSourcesFlag {
		if _, ok := cfg.Spatial.(scene.PointSources); ok {
			cfg.Spatial = scene.PointSources{Count: 2}
		}
	}
	return cfg, nil
}
