// Package lattice implements the explicit finite-difference wave integrator used by
// every scene: a scalar field over three rolling time slices, an absorbing border and
// the per-cell visited and allowed grids read by the renderers.
package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Boundary selects the edge treatment applied after the interior update.
type Boundary int

const (
	// Absorbing applies a first-order Mur one-way wave condition on every edge.
	Absorbing Boundary = iota
	// Reflecting mirrors the neighbouring cell with a sign flip, scaled by
	// Config.ReflectCoefficient.
	Reflecting
)

func (b Boundary) String() string {
	switch b {
	case Absorbing:
		return "absorbing"
	case Reflecting:
		return "reflecting"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary accepts the names printed by Boundary.String.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "absorbing":
		return Absorbing, nil
	case "reflecting":
		return Reflecting, nil
	}
	return 0, fmt.Errorf("unknown boundary %q (want absorbing or reflecting)", s)
}

const (
	// DefaultWaveSpeed is the wave speed in cells per step. 1 degenerates into
	// diamond-shaped propagation and 0.1 attenuates high frequencies.
	DefaultWaveSpeed = 0.5
	// DefaultVisitThreshold is the magnitude above which a cell counts as visited.
	DefaultVisitThreshold = 1e-3
	// DefaultReflectCoefficient is only used by the Reflecting boundary.
	DefaultReflectCoefficient = 0.9
)

// Config holds the immutable parameters of a lattice.
type Config struct {
	Width, Height      int
	DampX, DampY       int
	WaveSpeed          float64
	VisitThreshold     float64
	Boundary           Boundary
	ReflectCoefficient float64
}

// DefaultConfig returns the configuration used by the scenes for the given
// dimensions and damping border.
func DefaultConfig(width, height, dampX, dampY int) Config {
	return Config{
		Width:              width,
		Height:             height,
		DampX:              dampX,
		DampY:              dampY,
		WaveSpeed:          DefaultWaveSpeed,
		VisitThreshold:     DefaultVisitThreshold,
		Boundary:           Absorbing,
		ReflectCoefficient: DefaultReflectCoefficient,
	}
}

func (c Config) validate() {
	if c.Width < 3 || c.Height < 3 {
		panic(fmt.Sprintf("lattice: dimensions %dx%d must be at least 3x3", c.Width, c.Height))
	}
	if c.DampX < 0 || 2*c.DampX >= c.Width || c.DampY < 0 || 2*c.DampY >= c.Height {
		panic(fmt.Sprintf("lattice: damping %d,%d out of range for %dx%d", c.DampX, c.DampY, c.Width, c.Height))
	}
	// 1/sqrt(2) is the stability limit of the 2D five-point leapfrog scheme.
	if c.WaveSpeed <= 0 || c.WaveSpeed > 1/math.Sqrt2 {
		panic(fmt.Sprintf("lattice: wave speed %g outside (0, 1/sqrt(2)]", c.WaveSpeed))
	}
	if c.VisitThreshold < 0 {
		panic("lattice: negative visit threshold")
	}
}

// grid is a row-major width x height array of float64 values.
type grid struct {
	width int
	data  []float64
}

func newGrid(width, height int) grid {
	return grid{width: width, data: make([]float64, width*height)}
}

func (g grid) at(i, j int) float64 { return g.data[j*g.width+i] }

func (g grid) set(i, j int, v float64) { g.data[j*g.width+i] = v }

// Lattice is the wave field. Slot head of the ring holds the current slice,
// head+1 the previous one and head+2 the slice before that.
type Lattice struct {
	cfg Config

	slices [3]grid
	head   int

	visited []bool
	allowed []bool

	tick               int
	interpolationRatio float64
	wc2                float64
	murCoeff           float64

	listeners []func()
}

// New allocates a quiescent lattice. It panics if cfg violates an invariant.
func New(cfg Config) *Lattice {
	cfg.validate()
	l := &Lattice{
		cfg:                cfg,
		visited:            make([]bool, cfg.Width*cfg.Height),
		allowed:            make([]bool, cfg.Width*cfg.Height),
		interpolationRatio: 1,
		wc2:                cfg.WaveSpeed * cfg.WaveSpeed,
		murCoeff:           (cfg.WaveSpeed - 1) / (cfg.WaveSpeed + 1),
	}
	for k := range l.slices {
		l.slices[k] = newGrid(cfg.Width, cfg.Height)
	}
	for k := range l.allowed {
		l.allowed[k] = true
	}
	return l
}

func (l *Lattice) Config() Config { return l.cfg }
func (l *Lattice) Width() int     { return l.cfg.Width }
func (l *Lattice) Height() int    { return l.cfg.Height }
func (l *Lattice) DampX() int     { return l.cfg.DampX }
func (l *Lattice) DampY() int     { return l.cfg.DampY }

// WaveSpeed returns the propagation speed in cells per step.
func (l *Lattice) WaveSpeed() float64 { return l.cfg.WaveSpeed }

// Tick returns the number of steps taken since construction.
func (l *Lattice) Tick() int { return l.tick }

// VisibleBounds returns the half-open cell range [minX, maxX) x [minY, maxY) that
// excludes the damping border.
func (l *Lattice) VisibleBounds() (minX, minY, maxX, maxY int) {
	return l.cfg.DampX, l.cfg.DampY, l.cfg.Width - l.cfg.DampX, l.cfg.Height - l.cfg.DampY
}

// Contains reports whether (i, j) is a cell of the lattice.
func (l *Lattice) Contains(i, j int) bool {
	return i >= 0 && i < l.cfg.Width && j >= 0 && j < l.cfg.Height
}

func (l *Lattice) mustContain(i, j int) {
	if !l.Contains(i, j) {
		panic(fmt.Sprintf("lattice: cell (%d,%d) outside %dx%d", i, j, l.cfg.Width, l.cfg.Height))
	}
}

func (l *Lattice) current() grid  { return l.slices[l.head] }
func (l *Lattice) previous() grid { return l.slices[(l.head+1)%3] }
func (l *Lattice) oldest() grid   { return l.slices[(l.head+2)%3] }

// Get returns the current value at (i, j), or zero where the causal mask
// disallows the cell.
func (l *Lattice) Get(i, j int) float64 {
	l.mustContain(i, j)
	idx := j*l.cfg.Width + i
	if !l.allowed[idx] {
		return 0
	}
	return l.current().data[idx]
}

// Raw returns the current value at (i, j) ignoring the causal mask.
func (l *Lattice) Raw(i, j int) float64 {
	l.mustContain(i, j)
	return l.current().at(i, j)
}

// SetInterpolationRatio sets how far between the previous and the current slice
// GetInterpolated samples. The scheduler updates it between steps.
func (l *Lattice) SetInterpolationRatio(r float64) {
	if r < 0 || r > 1 {
		panic(fmt.Sprintf("lattice: interpolation ratio %g outside [0,1]", r))
	}
	l.interpolationRatio = r
}

// GetInterpolated blends the previous and current slices, masked like Get.
func (l *Lattice) GetInterpolated(i, j int) float64 {
	l.mustContain(i, j)
	idx := j*l.cfg.Width + i
	if !l.allowed[idx] {
		return 0
	}
	prev := l.previous().data[idx]
	return prev + l.interpolationRatio*(l.current().data[idx]-prev)
}

// Set overwrites the current value at (i, j).
func (l *Lattice) Set(i, j int, v float64) {
	l.mustContain(i, j)
	l.current().set(i, j, v)
}

// Visited reports whether |value| ever exceeded the visit threshold at (i, j).
func (l *Lattice) Visited(i, j int) bool {
	l.mustContain(i, j)
	return l.visited[j*l.cfg.Width+i]
}

// Allowed reports the causal mask at (i, j).
func (l *Lattice) Allowed(i, j int) bool {
	l.mustContain(i, j)
	return l.allowed[j*l.cfg.Width+i]
}

// SetAllowed writes the causal mask. Only the masking pass should call it.
func (l *Lattice) SetAllowed(i, j int, allowed bool) {
	l.mustContain(i, j)
	l.allowed[j*l.cfg.Width+i] = allowed
}

// AddChangeListener registers fn to run after every Step and Clear.
func (l *Lattice) AddChangeListener(fn func()) {
	l.listeners = append(l.listeners, fn)
}

func (l *Lattice) notify() {
	for _, fn := range l.listeners {
		fn()
	}
}

// Step advances the field by exactly one time unit.
func (l *Lattice) Step() {
	// The oldest slot becomes the new current slice.
	l.head = (l.head + 2) % 3
	next, prev, prev2 := l.current(), l.previous(), l.oldest()

	width, height := l.cfg.Width, l.cfg.Height
	wc2 := l.wc2
	threshold := l.cfg.VisitThreshold
	for j := 1; j < height-1; j++ {
		row := j * width
		up := row - width
		down := row + width
		for i := 1; i < width-1; i++ {
			idx := row + i
			p := prev.data[idx]
			lap := prev.data[idx-1] + prev.data[idx+1] + prev.data[up+i] + prev.data[down+i] - 4*p
			v := 2*p - prev2.data[idx] + wc2*lap
			next.data[idx] = v
			if v > threshold || v < -threshold {
				l.visited[idx] = true
			}
		}
	}

	switch l.cfg.Boundary {
	case Absorbing:
		l.absorbEdges(next, prev)
	case Reflecting:
		l.reflectEdges(next)
	default:
		panic(fmt.Sprintf("lattice: unknown boundary %d", l.cfg.Boundary))
	}

	l.tick++
	l.notify()
}

// Clear zeroes the whole lattice.
func (l *Lattice) Clear() {
	l.ClearRight(0)
}

// ClearRight zeroes every time slice and the visited flags, and resets the
// causal mask to allowed, for all columns >= column.
func (l *Lattice) ClearRight(column int) {
	if column < 0 {
		column = 0
	}
	width := l.cfg.Width
	if column >= width {
		return
	}
	for j := 0; j < l.cfg.Height; j++ {
		lo, hi := j*width+column, (j+1)*width
		for k := range l.slices {
			clear(l.slices[k].data[lo:hi])
		}
		clear(l.visited[lo:hi])
		for idx := lo; idx < hi; idx++ {
			l.allowed[idx] = true
		}
	}
	l.notify()
}

// Energy returns the sum of squared current values over the visible region,
// ignoring the causal mask.
func (l *Lattice) Energy() float64 {
	minX, minY, maxX, maxY := l.VisibleBounds()
	cur := l.current()
	total := 0.0
	for j := minY; j < maxY; j++ {
		row := cur.data[j*l.cfg.Width+minX : j*l.cfg.Width+maxX]
		total += floats.Dot(row, row)
	}
	return total
}

// Column copies the masked values of column col into dst, growing it as
// needed, and returns it.
func (l *Lattice) Column(col int, dst []float64) []float64 {
	l.mustContain(col, 0)
	if cap(dst) < l.cfg.Height {
		dst = make([]float64, l.cfg.Height)
	}
	dst = dst[:l.cfg.Height]
	for j := range dst {
		dst[j] = l.Get(col, j)
	}
	return dst
}
