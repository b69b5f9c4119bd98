package lattice

import (
	"math"
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := map[string]Config{
		"tiny":         DefaultConfig(2, 5, 0, 0),
		"dampX":        DefaultConfig(11, 11, 6, 0),
		"dampY":        DefaultConfig(11, 11, 0, -1),
		"diamondSpeed": func() Config { c := DefaultConfig(11, 11, 2, 2); c.WaveSpeed = 1; return c }(),
		"zeroSpeed":    func() Config { c := DefaultConfig(11, 11, 2, 2); c.WaveSpeed = 0; return c }(),
	}
	for name, cfg := range cases {
		cfg := cfg
		mustPanic(t, name, func() { New(cfg) })
	}
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	l := New(DefaultConfig(11, 9, 2, 2))
	mustPanic(t, "get", func() { l.Get(11, 0) })
	mustPanic(t, "set", func() { l.Set(-1, 0, 1) })
	mustPanic(t, "ratio", func() { l.SetInterpolationRatio(1.5) })
}

func TestStepRotatesSlicesWithoutCopy(t *testing.T) {
	l := New(DefaultConfig(11, 11, 2, 2))
	l.Set(5, 5, 1)
	l.Step()
	l.SetInterpolationRatio(0)
	if got := l.GetInterpolated(5, 5); got != 1 {
		t.Fatalf("previous slice after step: got %g want 1", got)
	}
	// next = 2*1 - 0 + c^2*(0 - 4) = 1
	l.SetInterpolationRatio(1)
	if got, want := l.Get(5, 5), 2-4*DefaultWaveSpeed*DefaultWaveSpeed; math.Abs(got-want) > 1e-12 {
		t.Fatalf("current after step: got %g want %g", got, want)
	}
	if got, want := l.Get(6, 5), DefaultWaveSpeed*DefaultWaveSpeed; math.Abs(got-want) > 1e-12 {
		t.Fatalf("neighbour after step: got %g want %g", got, want)
	}
	l.SetInterpolationRatio(0.5)
	if got, want := l.GetInterpolated(6, 5), 0.5*DefaultWaveSpeed*DefaultWaveSpeed; math.Abs(got-want) > 1e-12 {
		t.Fatalf("interpolated: got %g want %g", got, want)
	}
	if l.Tick() != 1 {
		t.Fatalf("tick: got %d", l.Tick())
	}
}

func TestGetHonoursAllowedMask(t *testing.T) {
	l := New(DefaultConfig(11, 11, 2, 2))
	l.Set(4, 4, 0.7)
	l.SetAllowed(4, 4, false)
	if got := l.Get(4, 4); got != 0 {
		t.Fatalf("masked get: got %g", got)
	}
	if got := l.Raw(4, 4); got != 0.7 {
		t.Fatalf("raw get: got %g", got)
	}
}

func TestClearThenStepStaysZero(t *testing.T) {
	l := New(DefaultConfig(31, 31, 5, 5))
	for k := 0; k < 20; k++ {
		l.Step()
		l.Set(15, 15, math.Sin(float64(k)))
	}
	l.SetAllowed(3, 3, false)
	l.Clear()
	for k := 0; k < 50; k++ {
		l.Step()
	}
	for j := 0; j < l.Height(); j++ {
		for i := 0; i < l.Width(); i++ {
			if v := l.Raw(i, j); v != 0 {
				t.Fatalf("cell (%d,%d) = %g after clear", i, j, v)
			}
			if l.Visited(i, j) {
				t.Fatalf("cell (%d,%d) still visited after clear", i, j)
			}
			if !l.Allowed(i, j) {
				t.Fatalf("cell (%d,%d) still disallowed after clear", i, j)
			}
		}
	}
}

func TestClearRightKeepsLeftColumns(t *testing.T) {
	l := New(DefaultConfig(21, 11, 2, 2))
	for i := 0; i < l.Width(); i++ {
		l.Set(i, 5, 1)
	}
	l.SetAllowed(15, 5, false)
	l.ClearRight(10)
	for i := 0; i < l.Width(); i++ {
		want := 1.0
		if i >= 10 {
			want = 0
		}
		if got := l.Raw(i, 5); got != want {
			t.Fatalf("column %d: got %g want %g", i, got, want)
		}
	}
	if !l.Allowed(15, 5) {
		t.Fatal("allowed mask not reset right of the cleared column")
	}
}

func TestChangeListenerFiresOncePerStep(t *testing.T) {
	l := New(DefaultConfig(11, 11, 2, 2))
	calls := 0
	l.AddChangeListener(func() { calls++ })
	for k := 0; k < 7; k++ {
		l.Step()
	}
	if calls != 7 {
		t.Fatalf("listener calls: got %d want 7", calls)
	}
}

// visitedReach returns the farthest distance from (cx, cy) along (dx, dy) at
// which a visited cell is found.
func visitedReach(l *Lattice, cx, cy, dx, dy int) float64 {
	reach := 0.0
	for s := 1; ; s++ {
		i, j := cx+s*dx, cy+s*dy
		if !l.Contains(i, j) {
			break
		}
		if l.Visited(i, j) {
			reach = math.Hypot(float64(s*dx), float64(s*dy))
		}
	}
	return reach
}

func TestPointSourceWavefrontIsCircular(t *testing.T) {
	const (
		size   = 161
		steps  = 100
		period = 20.0
	)
	l := New(DefaultConfig(size, size, 0, 0))
	c := size / 2
	for k := 1; k <= steps; k++ {
		l.Step()
		l.Set(c, c, math.Sin(2*math.Pi*float64(k)/period))
	}
	want := DefaultWaveSpeed * steps
	axis := visitedReach(l, c, c, 1, 0)
	diag := visitedReach(l, c, c, 1, 1)
	if axis < want-5 || axis > want+10 {
		t.Fatalf("axis radius %.1f, want about %.1f", axis, want)
	}
	if diag < want-5 || diag > want+10 {
		t.Fatalf("diagonal radius %.1f, want about %.1f", diag, want)
	}
	// A diamond would give diag/axis close to 1/sqrt(2).
	if ratio := diag / axis; ratio < 0.85 || ratio > 1.15 {
		t.Fatalf("wavefront not isotropic: diag/axis = %.3f", ratio)
	}
	for _, d := range [][2]int{{-1, 0}, {0, 1}, {0, -1}} {
		if r := visitedReach(l, c, c, d[0], d[1]); math.Abs(r-axis) > 1 {
			t.Fatalf("direction %v reach %.1f differs from %.1f", d, r, axis)
		}
	}
}

// residualAfterPulse emits one sine period from the centre and returns the peak
// and final visible energy.
func residualAfterPulse(boundary Boundary) (peak, final float64) {
	const (
		size   = 121
		damp   = 20
		period = 30
		steps  = 300
	)
	cfg := DefaultConfig(size, size, damp, damp)
	cfg.Boundary = boundary
	l := New(cfg)
	c := size / 2
	for k := 1; k <= steps; k++ {
		l.Step()
		if k <= period {
			l.Set(c, c, math.Sin(2*math.Pi*float64(k)/period))
		}
		if e := l.Energy(); e > peak {
			peak = e
		}
	}
	return peak, l.Energy()
}

func TestAbsorbingBoundarySuppressesReflections(t *testing.T) {
	peak, final := residualAfterPulse(Absorbing)
	if peak <= 0 {
		t.Fatal("pulse produced no energy")
	}
	if final > 0.05*peak {
		t.Fatalf("absorbing residual %.4g exceeds 5%% of peak %.4g", final, peak)
	}
	reflPeak, reflFinal := residualAfterPulse(Reflecting)
	if reflFinal/reflPeak < 2*final/peak {
		t.Fatalf("reflecting residual ratio %.4g not clearly above absorbing %.4g",
			reflFinal/reflPeak, final/peak)
	}
}

func TestEnergyIgnoresDampingBorder(t *testing.T) {
	l := New(DefaultConfig(21, 21, 5, 5))
	l.Set(1, 1, 3)
	l.Set(10, 10, 2)
	if got := l.Energy(); got != 4 {
		t.Fatalf("energy: got %g want 4", got)
	}
}

func TestColumnReadsMaskedValues(t *testing.T) {
	l := New(DefaultConfig(11, 7, 1, 1))
	l.Set(9, 2, 5)
	l.Set(9, 3, 6)
	l.SetAllowed(9, 3, false)
	col := l.Column(9, nil)
	if len(col) != 7 || col[2] != 5 || col[3] != 0 {
		t.Fatalf("column: %v", col)
	}
}
