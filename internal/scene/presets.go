package scene

import (
	"fmt"
	"sort"

	"WaveInterference/internal/lattice"
	"WaveInterference/internal/mask"
)

const (
	presetVisible = 151
	presetDamp    = 40
	presetTick    = 1.0 / 60
	// At the highest frequency one wavelength spans this many cells.
	presetMinWavelengthCells = 10
)

type medium struct {
	speed            float64 // model length per model time
	minF, maxF       float64
	pointCalibration float64
	planeWaveScale   float64
}

// Model units: water in metres and seconds, sound in metres and seconds,
// light in nanometres and femtoseconds.
var media = map[string]medium{
	"water": {speed: 0.25, minF: 0.5, maxF: 2, pointCalibration: 0.5, planeWaveScale: 0.5},
	"sound": {speed: 343, minF: 250, maxF: 1000, pointCalibration: 0.4, planeWaveScale: 0.4},
	"light": {speed: 299.792458, minF: 0.43, maxF: 0.75, pointCalibration: 0.6, planeWaveScale: 0.6},
}

// Names lists the built-in presets.
func Names() []string {
	names := make([]string, 0, len(media))
	for name := range media {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the configuration of a built-in scene.
func Preset(name string) (Config, error) {
	m, ok := media[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}

	size := presetVisible + 2*presetDamp
	lc := lattice.DefaultConfig(size, size, presetDamp, presetDamp)

	// Pick the step so that the highest frequency still has presetMinWavelengthCells
	// cells per wavelength at the lattice wave speed.
	cellWidth := m.speed / m.maxF / presetMinWavelengthCells
	stepDuration := lc.WaveSpeed * cellWidth / m.speed

	return Config{
		Name:             name,
		Lattice:          lc,
		Mask:             mask.DefaultConfig(lc.WaveSpeed, 0),
		TimeScale:        stepDuration / presetTick,
		TickDuration:     presetTick,
		CellWidth:        cellWidth,
		MinFrequency:     m.minF,
		MaxFrequency:     m.maxF,
		Frequency:        (m.minF + m.maxF) / 2,
		Amplitude:        1,
		PointCalibration: m.pointCalibration,
		PlaneWaveScale:   m.planeWaveScale,
		SourceColumn:     presetDamp + presetVisible/6,
		SourceSeparation: 30 * cellWidth,
		BarrierColumn:    size / 2,
		SlitWidth:        4 * cellWidth,
		SlitSeparation:   20 * cellWidth,
		Spatial:          PointSources{Count: 1},
		Disturbance:      Continuous,
	}, nil
}
