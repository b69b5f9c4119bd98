package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"WaveInterference/internal/scene"
)

const paletteSize = 256

// palette maps a lattice value in [-1, 1] to a colour. It is rebuilt when the
// scene or the light frequency changes.
type palette struct {
	scene     string
	frequency float64
	colors    [paletteSize][4]byte
}

var (
	waterTrough = colorful.Color{R: 0.02, G: 0.08, B: 0.25}
	waterCrest  = colorful.Color{R: 0.60, G: 0.88, B: 1.00}
	barrierGrey = color.RGBA{R: 110, G: 110, B: 120, A: 255}
	sourceOn    = color.RGBA{R: 255, G: 60, B: 40, A: 255}
	sourceOff   = color.RGBA{R: 120, G: 40, B: 30, A: 255}
	graphColor  = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

// wavelengthHue maps a visible wavelength in nanometres onto a hue: 700 nm is
// red and 400 nm violet.
func wavelengthHue(nm float64) float64 {
	t := (700 - nm) / 300
	return 270 * math.Max(0, math.Min(1, t))
}

func (p *palette) rebuild(s *scene.Scene) {
	name := s.Config().Name
	p.scene, p.frequency = name, s.Frequency()
	for k := range p.colors {
		v := 2*float64(k)/(paletteSize-1) - 1
		var c colorful.Color
		switch name {
		case "light":
			c = colorful.Hsv(wavelengthHue(s.Wavelength()), 1, math.Abs(v))
		case "sound":
			g := (v + 1) / 2
			c = colorful.Color{R: g, G: g, B: g}
		default:
			c = waterTrough.BlendLab(waterCrest, (v+1)/2)
		}
		r, g, b := c.Clamped().RGB255()
		p.colors[k] = [4]byte{r, g, b, 255}
	}
}

func (p *palette) lookup(v float64) [4]byte {
	k := int((v + 1) / 2 * (paletteSize - 1))
	k = max(0, min(paletteSize-1, k))
	return p.colors[k]
}

// Draw renders the visible lattice, the barrier, source markers and the
// intensity graph.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.scene
	if g.palette.scene != s.Config().Name || g.palette.frequency != s.Frequency() {
		g.palette.rebuild(s)
	}
	g.renderField()
	g.frame.WritePixels(g.pixels)
	screen.DrawImage(g.frame, nil)

	if g.recorder != nil {
		if err := g.recorder.AddFrame(g.pixels); err != nil {
			log.Printf("Recording stopped: %v", err)
			_ = g.recorder.Close()
			g.recorder = nil
		}
	}

	g.drawBarrier(screen)
	g.drawSources(screen)
	g.drawIntensityGraph(screen)
	g.drawHUD(screen)
}

// renderField writes the interpolated field of the visible region into the
// RGBA buffer. The light scene keeps cells no wave has reached pure black.
func (g *Game) renderField() {
	l := g.scene.Lattice()
	light := g.scene.Config().Name == "light"
	for y := 0; y < g.visH; y++ {
		j := y + g.minY
		row := y * g.visW * 4
		for x := 0; x < g.visW; x++ {
			i := x + g.minX
			base := row + x*4
			if light && !l.Visited(i, j) {
				g.pixels[base] = 0
				g.pixels[base+1] = 0
				g.pixels[base+2] = 0
				g.pixels[base+3] = 255
				continue
			}
			c := g.palette.lookup(l.GetInterpolated(i, j))
			copy(g.pixels[base:base+4], c[:])
		}
	}
}

// drawBarrier fills the blocked runs of the barrier column.
func (g *Game) drawBarrier(screen *ebiten.Image) {
	if _, ok := g.scene.Spatial().(scene.PlaneWave); !ok {
		return
	}
	x := float32(g.scene.BarrierColumn() - g.minX)
	start := -1
	for y := 0; y <= g.visH; y++ {
		blocked := y < g.visH && g.scene.BarrierBlocks(y+g.minY)
		switch {
		case blocked && start < 0:
			start = y
		case !blocked && start >= 0:
			vector.DrawFilledRect(screen, x-0.5, float32(start), 2, float32(y-start), barrierGrey, false)
			start = -1
		}
	}
}

func (g *Game) drawSources(screen *ebiten.Image) {
	rows := g.scene.SourceRows()
	x := float32(g.scene.Config().SourceColumn - g.minX)
	for n, row := range rows {
		clr := sourceOff
		if g.scene.SourceOn(n) || g.scene.PulseFiring() {
			clr = sourceOn
		}
		vector.DrawFilledCircle(screen, x, float32(row-g.minY), sourceMarkerRadius, clr, true)
	}
}

// drawIntensityGraph plots the time-averaged screen intensity along the right
// edge, scaled to its peak.
func (g *Game) drawIntensityGraph(screen *ebiten.Image) {
	if _, ok := g.scene.Spatial().(scene.PlaneWave); !ok {
		return
	}
	peak := g.sampler.Peak()
	if peak <= 0 {
		return
	}
	values := g.sampler.Values()
	right := float32(g.visW - 1)
	prevX, prevY := right, float32(0)
	for y, v := range values {
		px := right - float32(v/peak)*intensityGraphWidth
		if y > 0 {
			vector.StrokeLine(screen, prevX, prevY, px, float32(y), 1, graphColor, true)
		}
		prevX, prevY = px, float32(y)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.scene
	cfg := s.Config()
	var mode string
	switch sp := s.Spatial().(type) {
	case scene.PointSources:
		mode = fmt.Sprintf("%d point source(s)", sp.Count)
	case scene.PlaneWave:
		mode = "plane wave, barrier: " + scene.BarrierName(sp.Barrier)
	}
	msg := fmt.Sprintf("%s | %s | %s\nf=%.3g  lambda=%.3g (%.1f cells)  A=%.1f",
		cfg.Name, mode, s.Disturbance(), s.Frequency(), s.Wavelength(), s.WavelengthCells(), s.Amplitude())
	if s.Paused() {
		msg += "\nPAUSED ('.' steps)"
	}
	if s.Muted() {
		msg += "\nMUTED"
	}
	if *debugFlag {
		msg += fmt.Sprintf("\nFPS: %.1f TPS: %.1f\nTicks/update: %d  Sim: %.2f ms\nTick %d  energy %.3g",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.lastTicks, g.lastSimDuration.Seconds()*1000,
			s.Lattice().Tick(), s.Lattice().Energy())
		if p := g.sampler.FringePeriod(); p > 0 {
			msg += fmt.Sprintf("  fringes %.1f cells", p)
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}
