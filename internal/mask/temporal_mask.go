// Package mask records when a wave source was on and answers whether a lattice
// cell could have been reached by that source, given the finite wave speed.
package mask

import (
	"fmt"
	"math"
)

const (
	// DefaultHeadTolerance widens the arrival window at the wavefront head, where
	// the numerical group velocity runs slightly ahead of the nominal speed.
	DefaultHeadTolerance = 2
	// DefaultTailTolerance widens the window at the tail, which lags behind.
	DefaultTailTolerance = 4
	// DefaultMaxDeltas bounds the recorded history.
	DefaultMaxDeltas = 10
)

// Config holds the tunable parameters of a TemporalMask.
type Config struct {
	// WaveSpeed is the propagation speed in cells per step.
	WaveSpeed float64
	// SourceColumn is the fixed horizontal position of the source.
	SourceColumn  int
	HeadTolerance float64
	TailTolerance float64
	MaxDeltas     int
}

// DefaultConfig returns the tuned tolerances for a source at sourceColumn.
func DefaultConfig(waveSpeed float64, sourceColumn int) Config {
	return Config{
		WaveSpeed:     waveSpeed,
		SourceColumn:  sourceColumn,
		HeadTolerance: DefaultHeadTolerance,
		TailTolerance: DefaultTailTolerance,
		MaxDeltas:     DefaultMaxDeltas,
	}
}

// Delta is a recorded change of source state.
type Delta struct {
	IsOn      bool
	Step      int
	SourceRow int
}

// TemporalMask is the on/off history of one source.
type TemporalMask struct {
	cfg    Config
	deltas []Delta
}

// New returns an empty mask. It panics on a non-positive wave speed or
// negative tolerances.
func New(cfg Config) *TemporalMask {
	if cfg.WaveSpeed <= 0 {
		panic(fmt.Sprintf("mask: wave speed %g must be positive", cfg.WaveSpeed))
	}
	if cfg.HeadTolerance < 0 || cfg.TailTolerance < 0 {
		panic("mask: negative tolerance")
	}
	if cfg.MaxDeltas < 1 {
		cfg.MaxDeltas = DefaultMaxDeltas
	}
	return &TemporalMask{cfg: cfg, deltas: make([]Delta, 0, cfg.MaxDeltas+1)}
}

// Set records the source state at step. Nothing is appended unless isOn or
// sourceRow differ from the last recorded delta.
func (m *TemporalMask) Set(isOn bool, step, sourceRow int) {
	if n := len(m.deltas); n > 0 {
		last := m.deltas[n-1]
		if last.IsOn == isOn && last.SourceRow == sourceRow {
			return
		}
	}
	m.deltas = append(m.deltas, Delta{IsOn: isOn, Step: step, SourceRow: sourceRow})
}

// Matches reports whether cell (i, j) at currentStep lies inside the arrival
// window of any recorded on-interval.
func (m *TemporalMask) Matches(i, j, currentStep int) bool {
	for k, d := range m.deltas {
		if !d.IsOn {
			continue
		}
		start := float64(d.Step)
		end := float64(currentStep)
		if k+1 < len(m.deltas) {
			end = float64(m.deltas[k+1].Step)
		}
		dist := math.Hypot(float64(i-m.cfg.SourceColumn), float64(j-d.SourceRow))
		arrival := float64(currentStep) - dist/m.cfg.WaveSpeed
		if arrival >= start-m.cfg.HeadTolerance && arrival <= end+m.cfg.TailTolerance {
			return true
		}
	}
	return false
}

// Prune drops history that no cell within maxDistance of the source can still
// depend on at currentStep, then keeps at most MaxDeltas entries. The most
// recent delta is always kept.
func (m *TemporalMask) Prune(maxDistance float64, currentStep int) {
	earliest := float64(currentStep) - maxDistance/m.cfg.WaveSpeed
	drop := 0
	for drop+1 < len(m.deltas) {
		// Delta drop covers [deltas[drop].Step, deltas[drop+1].Step).
		if float64(m.deltas[drop+1].Step)+m.cfg.TailTolerance >= earliest {
			break
		}
		drop++
	}
	// A leading off delta never opens an interval.
	for drop+1 < len(m.deltas) && !m.deltas[drop].IsOn {
		drop++
	}
	if extra := len(m.deltas) - drop - m.cfg.MaxDeltas; extra > 0 {
		drop += extra
	}
	if drop > 0 {
		m.deltas = append(m.deltas[:0], m.deltas[drop:]...)
	}
}

// Clear forgets all history.
func (m *TemporalMask) Clear() {
	m.deltas = m.deltas[:0]
}

// Len returns the number of recorded deltas.
func (m *TemporalMask) Len() int { return len(m.deltas) }

// Deltas returns a copy of the recorded history.
func (m *TemporalMask) Deltas() []Delta {
	out := make([]Delta, len(m.deltas))
	copy(out, m.deltas)
	return out
}
