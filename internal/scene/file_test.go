package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"WaveInterference/internal/lattice"
)

func TestPresetsBuildScenes(t *testing.T) {
	for _, name := range Names() {
		cfg, err := Preset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		s := New(cfg)
		// The fastest oscillation is resolved by ten cells per wavelength.
		s.SetFrequency(cfg.MaxFrequency)
		if got := s.WavelengthCells(); got < 9.999 || got > 10.001 {
			t.Fatalf("%s: wavelength at max frequency %g cells", name, got)
		}
	}
	if _, err := Preset("plasma"); err == nil {
		t.Fatal("unknown preset accepted")
	}
}

func TestFileConfigOverrides(t *testing.T) {
	cfg, err := FileConfig{
		Preset:      "light",
		Spatial:     "plane",
		Barrier:     "two-slits",
		Disturbance: "pulse",
		Boundary:    "reflecting",
		Frequency:   0.5,
	}.Build()
	if err != nil {
		t.Fatal(err)
	}
	pw, ok := cfg.Spatial.(PlaneWave)
	if !ok {
		t.Fatalf("spatial: %T", cfg.Spatial)
	}
	if _, ok := pw.Barrier.(TwoSlits); !ok {
		t.Fatalf("barrier: %T", pw.Barrier)
	}
	if cfg.Disturbance != Pulse || cfg.Lattice.Boundary != lattice.Reflecting || cfg.Frequency != 0.5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	New(cfg)
}

func TestFileConfigRejects(t *testing.T) {
	cases := map[string]FileConfig{
		"preset":     {Preset: "plasma"},
		"spatial":    {Spatial: "line"},
		"sources":    {Sources: 3},
		"barrier":    {Barrier: "one-slit"},
		"frequency":  {Preset: "sound", Frequency: 5},
		"boundary":   {Boundary: "periodic"},
		"column":     {BarrierColumn: 1},
		"amplitude":  {Amplitude: -1},
		"separation": {Sources: 2, SourceSeparation: 1e6},
	}
	for name, fc := range cases {
		if _, err := fc.Build(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestFileConfigSourceSeparationLimit(t *testing.T) {
	base, err := Preset("water")
	if err != nil {
		t.Fatal(err)
	}
	lc := base.Lattice
	// The widest separation that keeps both sources on visible rows.
	center := lc.Height / 2
	widest := float64(2*min(center-lc.DampY, lc.Height-lc.DampY-1-center)) * base.CellWidth
	cfg, err := FileConfig{Sources: 2, SourceSeparation: widest}.Build()
	if err != nil {
		t.Fatalf("widest separation rejected: %v", err)
	}
	New(cfg)
	if _, err := (FileConfig{Sources: 2, SourceSeparation: widest + 4*base.CellWidth}).Build(); err == nil {
		t.Fatal("separation past the visible region accepted")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(`{"preset":"sound","sources":2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "sound" || cfg.Spatial != (PointSources{Count: 2}) {
		t.Fatalf("loaded %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"preset":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Fatalf("malformed file: %v", err)
	}
}
