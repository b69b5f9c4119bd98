package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"WaveInterference/internal/lattice"
)

// FileConfig is the JSON form of a scene: a preset name plus optional
// overrides. Lengths are in model units, zero values keep the preset's.
type FileConfig struct {
	Preset      string `json:"preset"`
	Spatial     string `json:"spatial,omitempty"`
	Sources     int    `json:"sources,omitempty"`
	Barrier     string `json:"barrier,omitempty"`
	Disturbance string `json:"disturbance,omitempty"`
	Boundary    string `json:"boundary,omitempty"`

	Frequency        float64 `json:"frequency,omitempty"`
	Amplitude        float64 `json:"amplitude,omitempty"`
	SourceSeparation float64 `json:"sourceSeparation,omitempty"`
	SlitWidth        float64 `json:"slitWidth,omitempty"`
	SlitSeparation   float64 `json:"slitSeparation,omitempty"`
	BarrierColumn    int     `json:"barrierColumn,omitempty"`

	// ReflectCoefficient only matters for the reflecting boundary.
	ReflectCoefficient float64 `json:"reflectCoefficient,omitempty"`
}

// LoadFile reads and builds a JSON scene file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg, err := fc.Build()
	if err != nil {
		return Config{}, fmt.Errorf("scene file %s: %w", path, err)
	}
	return cfg, nil
}

// Build applies the overrides to the named preset. Value checks that New would
// panic on are reported as errors here.
func (fc FileConfig) Build() (Config, error) {
	name := fc.Preset
	if name == "" {
		name = "water"
	}
	cfg, err := Preset(name)
	if err != nil {
		return Config{}, err
	}

	if fc.Boundary != "" {
		b, err := lattice.ParseBoundary(fc.Boundary)
		if err != nil {
			return Config{}, err
		}
		cfg.Lattice.Boundary = b
	}
	if fc.ReflectCoefficient != 0 {
		if fc.ReflectCoefficient < 0 || fc.ReflectCoefficient > 1 {
			return Config{}, fmt.Errorf("reflect coefficient %g outside [0,1]", fc.ReflectCoefficient)
		}
		cfg.Lattice.ReflectCoefficient = fc.ReflectCoefficient
	}

	if fc.Frequency != 0 {
		if fc.Frequency < cfg.MinFrequency || fc.Frequency > cfg.MaxFrequency {
			return Config{}, fmt.Errorf("frequency %g outside [%g, %g]", fc.Frequency, cfg.MinFrequency, cfg.MaxFrequency)
		}
		cfg.Frequency = fc.Frequency
	}
	if fc.Amplitude < 0 {
		return Config{}, fmt.Errorf("negative amplitude %g", fc.Amplitude)
	}
	if fc.Amplitude > 0 {
		cfg.Amplitude = fc.Amplitude
	}
	if fc.SourceSeparation < 0 || fc.SlitWidth < 0 || fc.SlitSeparation < 0 {
		return Config{}, fmt.Errorf("negative length in scene file")
	}
	if fc.SourceSeparation > 0 {
		lc := cfg.Lattice
		offset := int(math.Round(fc.SourceSeparation / 2 / cfg.CellWidth))
		center := lc.Height / 2
		if center-offset < lc.DampY || center+offset >= lc.Height-lc.DampY {
			return Config{}, fmt.Errorf("source separation %g places sources outside the visible region", fc.SourceSeparation)
		}
		cfg.SourceSeparation = fc.SourceSeparation
	}
	if fc.SlitWidth > 0 {
		cfg.SlitWidth = fc.SlitWidth
	}
	if fc.SlitSeparation > 0 {
		cfg.SlitSeparation = fc.SlitSeparation
	}
	if fc.BarrierColumn != 0 {
		lc := cfg.Lattice
		if fc.BarrierColumn <= lc.DampX || fc.BarrierColumn >= lc.Width-lc.DampX-1 {
			return Config{}, fmt.Errorf("barrier column %d outside the visible interior", fc.BarrierColumn)
		}
		cfg.BarrierColumn = fc.BarrierColumn
	}

	if fc.Disturbance != "" {
		d, err := ParseDisturbance(fc.Disturbance)
		if err != nil {
			return Config{}, err
		}
		cfg.Disturbance = d
	}

	switch fc.Spatial {
	case "", "point":
		count := fc.Sources
		if count == 0 {
			count = 1
		}
		if count != 1 && count != 2 {
			return Config{}, fmt.Errorf("%d point sources, want 1 or 2", count)
		}
		if fc.Barrier != "" {
			return Config{}, fmt.Errorf("barrier %q needs a plane wave", fc.Barrier)
		}
		cfg.Spatial = PointSources{Count: count}
	case "plane":
		b, err := ParseBarrier(fc.Barrier, cfg.SlitWidth, cfg.SlitSeparation)
		if err != nil {
			return Config{}, err
		}
		cfg.Spatial = PlaneWave{Barrier: b}
	default:
		return Config{}, fmt.Errorf("unknown spatial mode %q (want point or plane)", fc.Spatial)
	}
	return cfg, nil
}

// ParseDisturbance accepts the names printed by Disturbance.String.
func ParseDisturbance(s string) (Disturbance, error) {
	switch s {
	case "continuous":
		return Continuous, nil
	case "pulse":
		return Pulse, nil
	}
	return 0, fmt.Errorf("unknown disturbance %q (want continuous or pulse)", s)
}

// ParseBarrier builds a barrier from its name and the slit geometry.
func ParseBarrier(s string, width, separation float64) (Barrier, error) {
	switch s {
	case "", "none":
		return NoBarrier{}, nil
	case "one-slit":
		if !(width > 0) {
			return nil, fmt.Errorf("slit width %g must be positive", width)
		}
		return OneSlit{Width: width}, nil
	case "two-slits":
		if !(width > 0) || !(separation > 0) {
			return nil, fmt.Errorf("two slits need positive width and separation, got %g and %g", width, separation)
		}
		return TwoSlits{Width: width, Separation: separation}, nil
	}
	return nil, fmt.Errorf("unknown barrier %q (want none, one-slit or two-slits)", s)
}
