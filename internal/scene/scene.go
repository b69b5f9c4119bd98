// Package scene drives a lattice from a parameterized source: point oscillators or
// a plane wave through an optional slit barrier, followed by the causal masking pass.
package scene

import (
	"fmt"
	"math"

	"WaveInterference/internal/lattice"
	"WaveInterference/internal/mask"
)

// Config is the immutable part of a scene. Times are in model units (seconds,
// milliseconds, femtoseconds, ... depending on the medium) and lengths in model
// units per CellWidth.
type Config struct {
	Name    string
	Lattice lattice.Config
	Mask    mask.Config

	// TimeScale converts wall-clock seconds into model time.
	TimeScale float64
	// TickDuration is the nominal wall-clock duration of one AdvanceTime call.
	TickDuration float64
	CellWidth    float64

	MinFrequency, MaxFrequency float64
	Frequency                  float64
	Amplitude                  float64

	// PointCalibration scales the point-source oscillator into lattice units.
	PointCalibration float64
	// PlaneWaveScale scales the plane-wave amplitude into lattice units.
	PlaneWaveScale float64

	SourceColumn     int
	SourceSeparation float64
	BarrierColumn    int
	// SlitWidth and SlitSeparation are the defaults used when a barrier is
	// switched on interactively.
	SlitWidth      float64
	SlitSeparation float64

	Spatial     Spatial
	Disturbance Disturbance
}

// StepDuration is the nominal model time covered by one lattice step.
func (c Config) StepDuration() float64 { return c.TickDuration * c.TimeScale }

// WaveSpeed is the propagation speed in model length per model time.
func (c Config) WaveSpeed() float64 {
	return c.Lattice.WaveSpeed * c.CellWidth / c.StepDuration()
}

// Scene owns one lattice and the temporal masks of its two sources.
type Scene struct {
	cfg      Config
	lattice  *lattice.Lattice
	masks    [2]*mask.TemporalMask
	waveform Waveform

	time        float64
	frequency   float64
	phase       float64
	amplitude   float64
	disturbance Disturbance
	spatial     Spatial

	barrierColumn    int
	sourceSeparation float64

	sourceOn           [2]bool
	pressTime          float64
	pulseFiring        bool
	pulseStartTime     float64
	pulseJustCompleted bool

	muted  bool
	paused bool

	listeners []func()
}

// New builds a scene and its lattice. It panics if cfg violates an invariant.
func New(cfg Config) *Scene {
	lc := cfg.Lattice
	visW, visH := lc.Width-2*lc.DampX, lc.Height-2*lc.DampY
	if visW%2 == 0 || visH%2 == 0 {
		panic(fmt.Sprintf("scene: visible region %dx%d must have odd dimensions", visW, visH))
	}
	if !(cfg.TimeScale > 0) || !(cfg.TickDuration > 0) || !(cfg.CellWidth > 0) {
		panic("scene: time scale, tick duration and cell width must be positive")
	}
	if !(cfg.MinFrequency > 0) || cfg.MaxFrequency < cfg.MinFrequency {
		panic(fmt.Sprintf("scene: bad frequency range [%g, %g]", cfg.MinFrequency, cfg.MaxFrequency))
	}
	validateSpatial(cfg.Spatial)

	l := lattice.New(lc)
	s := &Scene{
		cfg:              cfg,
		lattice:          l,
		waveform:         Sine{},
		disturbance:      cfg.Disturbance,
		spatial:          cfg.Spatial,
		amplitude:        cfg.Amplitude,
		sourceSeparation: cfg.SourceSeparation,
	}
	s.setFrequency(cfg.Frequency)
	s.setBarrierColumn(cfg.BarrierColumn)
	s.checkSourceRows(cfg.SourceSeparation)
	if cfg.SourceColumn < 1 || cfg.SourceColumn >= lc.Width-1 {
		panic(fmt.Sprintf("scene: source column %d outside the interior", cfg.SourceColumn))
	}

	mc := cfg.Mask
	mc.WaveSpeed = lc.WaveSpeed
	mc.SourceColumn = cfg.SourceColumn
	for n := range s.masks {
		s.masks[n] = mask.New(mc)
	}
	return s
}

func (s *Scene) Config() Config                { return s.cfg }
func (s *Scene) Lattice() *lattice.Lattice     { return s.lattice }
func (s *Scene) Time() float64                 { return s.time }
func (s *Scene) Frequency() float64            { return s.frequency }
func (s *Scene) Amplitude() float64            { return s.amplitude }
func (s *Scene) Disturbance() Disturbance      { return s.disturbance }
func (s *Scene) Spatial() Spatial              { return s.spatial }
func (s *Scene) BarrierColumn() int            { return s.barrierColumn }
func (s *Scene) SourceSeparation() float64     { return s.sourceSeparation }
func (s *Scene) Muted() bool                   { return s.muted }
func (s *Scene) Paused() bool                  { return s.paused }
func (s *Scene) PulseFiring() bool             { return s.pulseFiring }
func (s *Scene) Mask(n int) *mask.TemporalMask { return s.masks[s.checkSource(n)] }

// Wavelength returns the nominal wavelength in model units.
func (s *Scene) Wavelength() float64 { return s.cfg.WaveSpeed() / s.frequency }

// WavelengthCells returns the nominal wavelength in lattice cells.
func (s *Scene) WavelengthCells() float64 { return s.Wavelength() / s.cfg.CellWidth }

// SourceOn reports whether continuous source n (0 or 1) is switched on.
func (s *Scene) SourceOn(n int) bool { return s.sourceOn[s.checkSource(n)] }

// AddChangeListener registers fn to run after every AdvanceTime and Clear.
func (s *Scene) AddChangeListener(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Scene) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

func (s *Scene) checkSource(n int) int {
	if n < 0 || n > 1 {
		panic(fmt.Sprintf("scene: source index %d, want 0 or 1", n))
	}
	return n
}

// AdvanceTime runs one tick: wallDt seconds of wall-clock time are scaled into
// model time and the lattice takes exactly one step. A paused scene only
// advances when manualStep is set.
func (s *Scene) AdvanceTime(wallDt float64, manualStep bool) {
	if s.paused && !manualStep {
		return
	}
	dt := wallDt * s.cfg.TimeScale
	if s.pulseFiring {
		period := 1 / s.frequency
		elapsed := s.time - s.pulseStartTime
		if elapsed+dt >= period {
			// End the tick exactly on the period so the oscillator is back at zero.
			dt = period - elapsed
			s.pulseFiring = false
			s.pulseJustCompleted = true
		}
	}
	s.time += dt

	if !s.muted {
		s.lattice.Step()
		s.setSourceValues()
		s.applyTemporalMasks()
	}
	s.pulseJustCompleted = false
	s.notify()
}

func (s *Scene) setSourceValues() {
	switch sp := s.spatial.(type) {
	case PointSources:
		s.writePointSources(sp)
	case PlaneWave:
		s.writePlaneWave(sp)
	default:
		panic(fmt.Sprintf("scene: unknown spatial type %T", sp))
	}
}

// applyTemporalMasks recomputes the allowed grid from the two source histories.
// Plane waves have no localized light cone; their scene clears the downstream
// region on topology changes instead.
func (s *Scene) applyTemporalMasks() {
	if _, ok := s.spatial.(PointSources); !ok {
		return
	}
	l := s.lattice
	step := l.Tick()
	m0, m1 := s.masks[0], s.masks[1]
	for j := 0; j < l.Height(); j++ {
		for i := 0; i < l.Width(); i++ {
			l.SetAllowed(i, j, m0.Matches(i, j, step) || m1.Matches(i, j, step))
		}
	}
	maxDistance := math.Hypot(float64(l.Width()), float64(l.Height()))
	m0.Prune(maxDistance, step)
	m1.Prune(maxDistance, step)
}

// Clear discards all wave state and source history.
func (s *Scene) Clear() {
	s.lattice.Clear()
	for _, m := range s.masks {
		m.Clear()
	}
	s.pulseFiring = false
	s.pulseJustCompleted = false
	s.notify()
}

// SetSourceOn switches continuous source n on or off. Source 0 also controls the
// plane wave.
func (s *Scene) SetSourceOn(n int, on bool) {
	n = s.checkSource(n)
	if on && !s.sourceOn[n] && n == 0 {
		s.pressTime = s.time
	}
	s.sourceOn[n] = on
}

// FirePulse starts a single-period pulse unless one is already running.
func (s *Scene) FirePulse() {
	if s.disturbance != Pulse || s.pulseFiring {
		return
	}
	s.pulseFiring = true
	s.pulseStartTime = s.time
	s.pressTime = s.time
}

// SetFrequency changes the source frequency, keeping point oscillators phase
// continuous. A running plane wave restarts from the left edge.
func (s *Scene) SetFrequency(f float64) {
	old := s.frequency
	s.setFrequency(f)
	switch s.spatial.(type) {
	case PointSources:
		p := 2*math.Pi*old*s.time + s.phase - 2*math.Pi*f*s.time
		s.phase = math.Mod(p, 2*math.Pi)
	case PlaneWave:
		if old != f {
			s.Clear()
			s.pressTime = s.time
		}
	}
}

func (s *Scene) setFrequency(f float64) {
	if !(f > 0) || f < s.cfg.MinFrequency || f > s.cfg.MaxFrequency {
		panic(fmt.Sprintf("scene: frequency %g outside [%g, %g]", f, s.cfg.MinFrequency, s.cfg.MaxFrequency))
	}
	s.frequency = f
}

func (s *Scene) SetAmplitude(a float64) {
	if a < 0 {
		panic(fmt.Sprintf("scene: negative amplitude %g", a))
	}
	s.amplitude = a
}

// SetWaveform replaces the point-source oscillator; nil restores Sine.
func (s *Scene) SetWaveform(w Waveform) {
	if w == nil {
		w = Sine{}
	}
	s.waveform = w
}

// SetDisturbance switches between continuous and pulse driving. Sources are
// switched off and the lattice is cleared.
func (s *Scene) SetDisturbance(d Disturbance) {
	if d != Continuous && d != Pulse {
		panic(fmt.Sprintf("scene: unknown disturbance %d", int(d)))
	}
	if d == s.disturbance {
		return
	}
	s.disturbance = d
	s.sourceOn = [2]bool{}
	s.Clear()
}

// SetSpatial changes the source geometry. Switching between point sources and a
// plane wave clears the lattice; changing the point-source count does not.
func (s *Scene) SetSpatial(sp Spatial) {
	validateSpatial(sp)
	prev := s.spatial
	s.spatial = sp
	switch sp.(type) {
	case PointSources:
		if _, ok := prev.(PointSources); !ok {
			s.Clear()
		}
	case PlaneWave:
		if _, ok := prev.(PlaneWave); !ok {
			s.Clear()
			return
		}
		s.topologyChanged(s.barrierColumn)
	}
}

// SetBarrier replaces the barrier of a plane-wave scene.
func (s *Scene) SetBarrier(b Barrier) {
	validateBarrier(b)
	if _, ok := s.spatial.(PlaneWave); !ok {
		panic("scene: barrier set on a point-source scene")
	}
	s.spatial = PlaneWave{Barrier: b}
	s.topologyChanged(s.barrierColumn)
}

// SetBarrierColumn moves the barrier.
func (s *Scene) SetBarrierColumn(col int) {
	old := s.barrierColumn
	s.setBarrierColumn(col)
	if _, ok := s.spatial.(PlaneWave); ok {
		s.topologyChanged(min(old, col))
	}
}

func (s *Scene) setBarrierColumn(col int) {
	lc := s.cfg.Lattice
	if col <= lc.DampX || col >= lc.Width-lc.DampX-1 {
		panic(fmt.Sprintf("scene: barrier column %d outside the visible interior", col))
	}
	s.barrierColumn = col
}

// SetSourceSeparation moves the two point sources apart symmetrically. The
// masks record the new rows, so the lattice is kept.
func (s *Scene) SetSourceSeparation(sep float64) {
	s.checkSourceRows(sep)
	s.sourceSeparation = sep
}

func (s *Scene) checkSourceRows(sep float64) {
	if sep < 0 {
		panic(fmt.Sprintf("scene: negative source separation %g", sep))
	}
	lc := s.cfg.Lattice
	offset := s.rowOffset(sep)
	center := lc.Height / 2
	if center-offset < lc.DampY || center+offset >= lc.Height-lc.DampY {
		panic(fmt.Sprintf("scene: source separation %g leaves the visible region", sep))
	}
}

func (s *Scene) rowOffset(sep float64) int {
	return int(math.Round(sep / 2 / s.cfg.CellWidth))
}

// SourceRows returns the lattice rows of the active point sources.
func (s *Scene) SourceRows() []int {
	sp, ok := s.spatial.(PointSources)
	if !ok {
		return nil
	}
	center := s.cfg.Lattice.Height / 2
	if sp.Count == 1 {
		return []int{center}
	}
	off := s.rowOffset(s.sourceSeparation)
	return []int{center - off, center + off}
}

// BarrierBlocks reports whether the barrier blocks row j of the barrier column.
// It is false without a plane-wave barrier.
func (s *Scene) BarrierBlocks(j int) bool {
	sp, ok := s.spatial.(PlaneWave)
	if !ok {
		return false
	}
	y := float64(j-s.cfg.Lattice.Height/2) * s.cfg.CellWidth
	return !transmits(sp.Barrier, y)
}

// SetMuted stops lattice integration while model time keeps running.
func (s *Scene) SetMuted(m bool) { s.muted = m }

// SetPaused makes AdvanceTime a no-op unless a manual step is requested.
func (s *Scene) SetPaused(p bool) { s.paused = p }

// topologyChanged clears everything right of column and, when the plane-wave
// front has already passed the barrier, moves the press time so that the front
// sits on the barrier.
func (s *Scene) topologyChanged(column int) {
	s.lattice.ClearRight(column + 1)
	barrierX := float64(s.barrierColumn-s.cfg.Lattice.DampX) * s.cfg.CellWidth
	if s.planeFront() > barrierX {
		s.pressTime = s.time - barrierX/s.cfg.WaveSpeed()
	}
}

// planeFront is the distance travelled by the plane-wave front from the left
// edge of the visible region.
func (s *Scene) planeFront() float64 {
	return s.cfg.WaveSpeed() * (s.time - s.pressTime)
}
