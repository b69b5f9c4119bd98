// Package intensity accumulates the time-averaged intensity on one lattice
// column, the "screen" of the light and diffraction views.
package intensity

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"WaveInterference/internal/lattice"
)

// Sampler keeps the squared masked values of one column for the last window
// lattice steps. Only the visible rows are sampled.
//
// The lattice notifies mid-tick, before sources and the causal mask are
// applied, so samples are taken by Record, which the owner calls once the tick
// is complete. The lattice notifications are only used to detect clears.
type Sampler struct {
	l      *lattice.Lattice
	column int
	minY   int

	ring  [][]float64
	next  int
	count int
	sum   []float64

	seenTick     int
	recordedTick int
	scratch      []float64
}

// New attaches a sampler to l. It forgets its history whenever the lattice is
// cleared.
func New(l *lattice.Lattice, column, window int) *Sampler {
	minX, minY, maxX, maxY := l.VisibleBounds()
	if column < minX || column >= maxX {
		panic(fmt.Sprintf("intensity: column %d outside visible range [%d,%d)", column, minX, maxX))
	}
	if window < 1 {
		panic(fmt.Sprintf("intensity: window %d must be positive", window))
	}
	rows := maxY - minY
	s := &Sampler{
		l:            l,
		column:       column,
		minY:         minY,
		ring:         make([][]float64, window),
		sum:          make([]float64, rows),
		seenTick:     l.Tick(),
		recordedTick: l.Tick(),
	}
	for k := range s.ring {
		s.ring[k] = make([]float64, rows)
	}
	l.AddChangeListener(s.onLatticeChange)
	return s
}

func (s *Sampler) onLatticeChange() {
	tick := s.l.Tick()
	if tick == s.seenTick {
		// No step happened, so the lattice was cleared.
		s.Clear()
		return
	}
	s.seenTick = tick
}

// Record takes one sample if the lattice stepped since the last one. Call it
// after the tick's source writes and masking pass, e.g. from a scene change
// listener. Ticks without a step (muted, paused, cleared) are not sampled.
func (s *Sampler) Record() {
	tick := s.l.Tick()
	if tick == s.recordedTick {
		return
	}
	s.recordedTick = tick
	s.sample()
}

func (s *Sampler) sample() {
	s.scratch = s.l.Column(s.column, s.scratch)
	slot := s.ring[s.next]
	floats.Sub(s.sum, slot)
	for k := range slot {
		v := s.scratch[s.minY+k]
		slot[k] = v * v
	}
	floats.Add(s.sum, slot)
	s.next = (s.next + 1) % len(s.ring)
	if s.count < len(s.ring) {
		s.count++
	}
}

// Column returns the sampled lattice column.
func (s *Sampler) Column() int { return s.column }

// Samples returns how many steps the current average covers.
func (s *Sampler) Samples() int { return s.count }

// Clear forgets all samples.
func (s *Sampler) Clear() {
	for _, slot := range s.ring {
		clear(slot)
	}
	clear(s.sum)
	s.next, s.count = 0, 0
	s.seenTick = s.l.Tick()
	s.recordedTick = s.seenTick
}

// Values returns the mean intensity per visible row, top to bottom. The result
// is all zeros before the first sample.
func (s *Sampler) Values() []float64 {
	out := make([]float64, len(s.sum))
	if s.count == 0 {
		return out
	}
	copy(out, s.sum)
	floats.Scale(1/float64(s.count), out)
	return out
}

// Peak returns the largest mean intensity on the column.
func (s *Sampler) Peak() float64 {
	return floats.Max(s.Values())
}

// FringePeriod estimates the spacing of intensity fringes in rows from the
// strongest non-zero spatial frequency. It returns 0 for a flat profile.
func (s *Sampler) FringePeriod() float64 {
	return fringePeriod(s.Values())
}

func fringePeriod(values []float64) float64 {
	n := len(values)
	if n < 4 {
		return 0
	}
	centered := make([]float64, n)
	copy(centered, values)
	floats.AddConst(-floats.Sum(values)/float64(n), centered)

	spectrum := fft.FFTReal(centered)
	best, bestPower := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if p := cmplx.Abs(spectrum[k]); p > bestPower {
			best, bestPower = k, p
		}
	}
	if best == 0 || bestPower < 1e-12*math.Max(1, floats.Norm(values, 2)) {
		return 0
	}
	return float64(n) / float64(best)
}
