package scene

import (
	"fmt"
	"math"
)

// Disturbance selects how a source is driven over time.
type Disturbance int

const (
	// Continuous oscillates for as long as the source is switched on.
	Continuous Disturbance = iota
	// Pulse emits exactly one period per FirePulse.
	Pulse
)

func (d Disturbance) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Pulse:
		return "pulse"
	default:
		return fmt.Sprintf("Disturbance(%d)", int(d))
	}
}

// Spatial is the source geometry: PointSources or PlaneWave.
type Spatial interface {
	isSpatial()
}

// PointSources drives one or two oscillating cells on the source column.
type PointSources struct {
	Count int
}

// PlaneWave drives a plane wave travelling right towards an optional barrier.
type PlaneWave struct {
	Barrier Barrier
}

func (PointSources) isSpatial() {}
func (PlaneWave) isSpatial()    {}

// Barrier is the obstacle in front of a plane wave: NoBarrier, OneSlit or
// TwoSlits. Lengths are in model units.
type Barrier interface {
	isBarrier()
}

type NoBarrier struct{}

type OneSlit struct {
	Width float64
}

// TwoSlits has two openings of Width whose centres are Separation apart.
type TwoSlits struct {
	Width      float64
	Separation float64
}

func (NoBarrier) isBarrier() {}
func (OneSlit) isBarrier()   {}
func (TwoSlits) isBarrier()  {}

func validateSpatial(sp Spatial) {
	switch sp := sp.(type) {
	case PointSources:
		if sp.Count != 1 && sp.Count != 2 {
			panic(fmt.Sprintf("scene: %d point sources, want 1 or 2", sp.Count))
		}
	case PlaneWave:
		validateBarrier(sp.Barrier)
	default:
		panic(fmt.Sprintf("scene: unknown spatial type %T", sp))
	}
}

func validateBarrier(b Barrier) {
	switch b := b.(type) {
	case NoBarrier:
	case OneSlit:
		if !(b.Width > 0) {
			panic(fmt.Sprintf("scene: slit width %g must be positive", b.Width))
		}
	case TwoSlits:
		if !(b.Width > 0) || !(b.Separation > 0) {
			panic(fmt.Sprintf("scene: two slits need positive width and separation, got %g and %g", b.Width, b.Separation))
		}
	default:
		panic(fmt.Sprintf("scene: unknown barrier type %T", b))
	}
}

// transmits reports whether a barrier lets the wave through at vertical offset y
// from the centre row.
func transmits(b Barrier, y float64) bool {
	switch b := b.(type) {
	case NoBarrier:
		return true
	case OneSlit:
		return math.Abs(y) <= b.Width/2
	case TwoSlits:
		return math.Abs(math.Abs(y)-b.Separation/2) <= b.Width/2
	default:
		panic(fmt.Sprintf("scene: unknown barrier type %T", b))
	}
}

// BarrierName returns a short label for HUDs and logs.
func BarrierName(b Barrier) string {
	switch b.(type) {
	case NoBarrier:
		return "none"
	case OneSlit:
		return "one slit"
	case TwoSlits:
		return "two slits"
	default:
		return fmt.Sprintf("%T", b)
	}
}
