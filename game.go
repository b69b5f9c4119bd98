package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"WaveInterference/internal/intensity"
	"WaveInterference/internal/scene"
)

// Game owns one scene and everything that presents it: the frame buffer, the
// intensity screen, audio and recording.
type Game struct {
	scene   *scene.Scene
	sampler *intensity.Sampler

	minX, minY int
	visW, visH int
	probeX     int
	probeY     int

	frame   *ebiten.Image
	pixels  []byte
	palette palette

	accumulator     float64
	lastUpdate      time.Time
	lastSimDuration time.Duration
	lastTicks       int

	audioCtx    *audio.Context
	audioStream *probeAudioStream
	audioPlayer *audio.Player

	recorder *frameRecorder
}

// newGame builds the scene for cfg and the optional audio and recording
// outputs requested on the command line.
func newGame(cfg scene.Config) (*Game, error) {
	s := scene.New(cfg)
	l := s.Lattice()
	minX, minY, maxX, maxY := l.VisibleBounds()
	g := &Game{
		scene:   s,
		sampler: intensity.New(l, maxX-1, intensityWindow),
		minX:    minX,
		minY:    minY,
		visW:    maxX - minX,
		visH:    maxY - minY,
		probeX:  maxX - (maxX-minX)/4,
		probeY:  l.Height() / 2,
	}
	s.AddChangeListener(g.sampler.Record)
	g.frame = ebiten.NewImage(g.visW, g.visH)
	g.pixels = make([]byte, g.visW*g.visH*4)

	if *sourceWAVFlag != "" {
		samples, err := loadLoopSamples(audioSampleRate, *sourceWAVFlag)
		if err != nil {
			return nil, err
		}
		s.SetWaveform(newLoopWaveform(samples, audioSampleRate, loopPitch))
		log.Printf("Point sources driven by %s (%d samples)", *sourceWAVFlag, len(samples))
	}

	if *enableAudioFlag && cfg.Name != "sound" {
		log.Printf("Audio is only available in the sound scene")
	}
	if *enableAudioFlag && cfg.Name == "sound" {
		ctx := audio.NewContext(audioSampleRate)
		g.audioCtx = ctx
		g.audioStream = newProbeAudioStream()
		if player, err := ctx.NewPlayer(g.audioStream); err != nil {
			log.Printf("Audio player creation failed: %v", err)
		} else {
			g.audioPlayer = player
			g.audioPlayer.SetBufferSize(audioBufferDuration)
			g.audioPlayer.Play()
		}
	}

	if *recordFlag != "" {
		r, err := newFrameRecorder(*recordFlag, g.visW, g.visH, int(tickRate))
		if err != nil {
			return nil, err
		}
		g.recorder = r
		log.Printf("Recording frames to %s", *recordFlag)
	}
	return g, nil
}

// Update handles input and advances the scene by as many fixed ticks as the
// elapsed wall-clock time covers.
func (g *Game) Update() error {
	g.handleControls()

	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	g.accumulator += now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now

	dt := g.scene.Config().TickDuration
	if limit := maxTicksPerUpdate * dt; g.accumulator > limit {
		// Drop time we cannot catch up on instead of spiralling.
		g.accumulator = limit
	}

	simStart := time.Now()
	ticks := 0
	for g.accumulator >= dt {
		g.scene.AdvanceTime(dt, false)
		g.accumulator -= dt
		ticks++
	}
	g.lastTicks = ticks
	if ticks > 0 {
		g.lastSimDuration = time.Since(simStart)
	}
	g.scene.Lattice().SetInterpolationRatio(min(1, g.accumulator/dt))

	if g.audioStream != nil {
		g.audioStream.SetProbe(g.scene.Lattice().Get(g.probeX, g.probeY), g.scene.Frequency())
	}
	return nil
}

// manualStep advances a paused scene by one tick.
func (g *Game) manualStep() {
	g.scene.AdvanceTime(g.scene.Config().TickDuration, true)
}

// Layout reports the visible lattice size; the window scales it up.
func (g *Game) Layout(_, _ int) (int, int) { return g.visW, g.visH }

// close flushes the recording and writes the intensity chart.
func (g *Game) close() error {
	var firstErr error
	if g.recorder != nil {
		if err := g.recorder.Close(); err != nil {
			firstErr = fmt.Errorf("closing recording: %w", err)
		} else {
			log.Printf("Recorded %d frames", g.recorder.frames)
		}
	}
	if g.audioPlayer != nil {
		g.audioPlayer.Pause()
	}
	if *intensityChartFlag != "" {
		cfg := g.scene.Config()
		if err := writeIntensityChart(*intensityChartFlag, cfg.Name, g.sampler.Values(), cfg.CellWidth); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("intensity chart: %w", err)
		}
		if p := g.sampler.FringePeriod(); p > 0 {
			log.Printf("Fringe period %.1f cells (%.3g model units)", p, p*cfg.CellWidth)
		}
	}
	return firstErr
}
