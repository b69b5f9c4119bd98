package scene

import "math"

// Waveform is the oscillator behind the point sources. Sample returns a value in
// [-1, 1] for model time t.
type Waveform interface {
	Sample(t, frequency, phase float64) float64
}

// Sine is the default oscillator.
type Sine struct{}

func (Sine) Sample(t, frequency, phase float64) float64 {
	return math.Sin(2*math.Pi*frequency*t + phase)
}

// writePointSources forces the oscillator value into the source cells and
// records the on/off state of each source in its temporal mask.
func (s *Scene) writePointSources(sp PointSources) {
	l := s.lattice
	step := l.Tick()
	col := s.cfg.SourceColumn
	rows := s.SourceRows()

	t, phase := s.time, s.phase
	pulse := s.disturbance == Pulse && (s.pulseFiring || s.pulseJustCompleted)
	if pulse {
		// A pulse always starts and ends on a zero crossing.
		t, phase = s.time-s.pulseStartTime, 0
	}
	value := -s.waveform.Sample(t, s.frequency, phase) * s.amplitude * s.cfg.PointCalibration
	if pulse && s.pulseJustCompleted {
		// Sampled waveforms need not cross zero after one period.
		value = 0
	}

	for n := range s.masks {
		row := rows[0]
		if n < len(rows) {
			row = rows[n]
		}
		active := n < sp.Count && (pulse || s.disturbance == Continuous && s.sourceOn[n])
		if active {
			l.Set(col, row, value)
		}
		s.masks[n].Set(active, step, row)
	}
}

// writePlaneWave forces the plane wave into every cell between the left damping
// border and the barrier. Cells ahead of the front or blocked by the barrier are
// zeroed. Everything is recomputed each tick because the barrier may change
// between ticks.
func (s *Scene) writePlaneWave(sp PlaneWave) {
	l := s.lattice
	lc := s.cfg.Lattice
	_, blocking := sp.Barrier.(NoBarrier)
	blocking = !blocking

	active := s.disturbance == Continuous && s.sourceOn[0] ||
		s.disturbance == Pulse && (s.pulseFiring || s.pulseJustCompleted)

	centerRow := lc.Height / 2
	if !active {
		if blocking {
			for j := 1; j < lc.Height-1; j++ {
				if !transmits(sp.Barrier, float64(j-centerRow)*s.cfg.CellWidth) {
					l.Set(s.barrierColumn, j, 0)
				}
			}
		}
		return
	}

	lastCol := lc.Width - lc.DampX - 1
	if blocking {
		lastCol = s.barrierColumn
	}
	elapsed := s.time - s.pressTime
	front := s.cfg.WaveSpeed() * elapsed
	omega := 2 * math.Pi * s.frequency
	k := omega / s.cfg.WaveSpeed()
	amp := s.amplitude * s.cfg.PlaneWaveScale

	for i := lc.DampX; i <= lastCol; i++ {
		x := float64(i-lc.DampX) * s.cfg.CellWidth
		reached := x <= front
		v := 0.0
		if reached {
			v = amp * math.Sin(k*x-omega*elapsed)
		}
		for j := 1; j < lc.Height-1; j++ {
			if !reached || blocking && i == s.barrierColumn && !transmits(sp.Barrier, float64(j-centerRow)*s.cfg.CellWidth) {
				l.Set(i, j, 0)
				continue
			}
			l.Set(i, j, v)
		}
	}
}
