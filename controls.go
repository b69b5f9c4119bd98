package main

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"WaveInterference/internal/scene"
)

// handleControls applies the key bindings:
//
//	Space       source 0 on/off, or fire a pulse
//	2           source 1 on/off
//	T           continuous / pulse
//	M           point sources / plane wave
//	N           one / two point sources
//	B           cycle barrier: none, one slit, two slits
//	Up/Down     frequency
//	Left/Right  barrier column
//	[ ]         source separation
//	- =         amplitude
//	P           pause, '.' steps while paused
//	U           mute
//	C           clear
func (g *Game) handleControls() {
	s := g.scene
	pressed := inpututil.IsKeyJustPressed

	if pressed(ebiten.KeySpace) {
		if s.Disturbance() == scene.Pulse {
			s.FirePulse()
		} else {
			s.SetSourceOn(0, !s.SourceOn(0))
		}
	}
	if pressed(ebiten.KeyDigit2) && s.Disturbance() == scene.Continuous {
		s.SetSourceOn(1, !s.SourceOn(1))
	}
	if pressed(ebiten.KeyT) {
		next := scene.Pulse
		if s.Disturbance() == scene.Pulse {
			next = scene.Continuous
		}
		s.SetDisturbance(next)
	}
	if pressed(ebiten.KeyM) {
		g.toggleSpatial()
	}
	if pressed(ebiten.KeyN) {
		if sp, ok := s.Spatial().(scene.PointSources); ok {
			s.SetSpatial(scene.PointSources{Count: 3 - sp.Count})
		}
	}
	if pressed(ebiten.KeyB) {
		g.cycleBarrier()
	}

	if pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyArrowDown) {
		g.adjustFrequency(pressed(ebiten.KeyArrowUp))
	}
	if pressed(ebiten.KeyArrowLeft) || pressed(ebiten.KeyArrowRight) {
		g.moveBarrier(pressed(ebiten.KeyArrowRight))
	}
	if pressed(ebiten.KeyBracketLeft) || pressed(ebiten.KeyBracketRight) {
		g.adjustSeparation(pressed(ebiten.KeyBracketRight))
	}
	if pressed(ebiten.KeyMinus) || pressed(ebiten.KeyKPSubtract) {
		s.SetAmplitude(math.Max(0, s.Amplitude()-amplitudeStep))
	}
	if pressed(ebiten.KeyEqual) || pressed(ebiten.KeyKPAdd) {
		s.SetAmplitude(math.Min(2, s.Amplitude()+amplitudeStep))
	}

	if pressed(ebiten.KeyP) {
		s.SetPaused(!s.Paused())
	}
	if pressed(ebiten.KeyPeriod) && s.Paused() {
		g.manualStep()
	}
	if pressed(ebiten.KeyU) {
		s.SetMuted(!s.Muted())
	}
	if pressed(ebiten.KeyC) {
		s.Clear()
	}
}

func (g *Game) toggleSpatial() {
	s := g.scene
	if _, ok := s.Spatial().(scene.PlaneWave); ok {
		s.SetSpatial(scene.PointSources{Count: 1})
		return
	}
	s.SetSpatial(scene.PlaneWave{Barrier: scene.NoBarrier{}})
}

func (g *Game) cycleBarrier() {
	s := g.scene
	sp, ok := s.Spatial().(scene.PlaneWave)
	if !ok {
		return
	}
	cfg := s.Config()
	var next scene.Barrier
	switch sp.Barrier.(type) {
	case scene.NoBarrier:
		next = scene.OneSlit{Width: cfg.SlitWidth}
	case scene.OneSlit:
		next = scene.TwoSlits{Width: cfg.SlitWidth, Separation: cfg.SlitSeparation}
	default:
		next = scene.NoBarrier{}
	}
	s.SetBarrier(next)
	log.Printf("Barrier: %s", scene.BarrierName(next))
}

func (g *Game) adjustFrequency(up bool) {
	s := g.scene
	cfg := s.Config()
	step := (cfg.MaxFrequency - cfg.MinFrequency) / frequencySteps
	if !up {
		step = -step
	}
	f := math.Max(cfg.MinFrequency, math.Min(cfg.MaxFrequency, s.Frequency()+step))
	if f != s.Frequency() {
		s.SetFrequency(f)
	}
}

func (g *Game) moveBarrier(right bool) {
	s := g.scene
	if _, ok := s.Spatial().(scene.PlaneWave); !ok {
		return
	}
	lc := s.Config().Lattice
	col := s.BarrierColumn() - 1
	if right {
		col += 2
	}
	if col > lc.DampX && col < lc.Width-lc.DampX-1 {
		s.SetBarrierColumn(col)
	}
}

func (g *Game) adjustSeparation(wider bool) {
	s := g.scene
	cfg := s.Config()
	step := separationStepCells * cfg.CellWidth
	if !wider {
		step = -step
	}
	limit := float64(g.visH/2) * 2 * cfg.CellWidth
	s.SetSourceSeparation(math.Max(0, math.Min(limit, s.SourceSeparation()+step)))
}
