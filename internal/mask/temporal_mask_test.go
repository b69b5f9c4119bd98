package mask

import (
	"math"
	"testing"
)

func TestSetCompressesRuns(t *testing.T) {
	m := New(DefaultConfig(0.5, 0))
	for step := 0; step < 8; step++ {
		m.Set(true, step, 5)
	}
	if m.Len() != 1 {
		t.Fatalf("repeated on: got %d deltas want 1", m.Len())
	}
	m.Set(true, 8, 6)
	m.Set(true, 9, 6)
	m.Set(false, 10, 6)
	m.Set(false, 11, 6)
	want := []Delta{{true, 0, 5}, {true, 8, 6}, {false, 10, 6}}
	got := m.Deltas()
	if len(got) != len(want) {
		t.Fatalf("deltas: got %v want %v", got, want)
	}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("delta %d: got %+v want %+v", k, got[k], want[k])
		}
	}
}

func TestMatchesFollowsLightCone(t *testing.T) {
	const (
		speed   = 0.5
		col     = 50
		row     = 50
		onStep  = 10
		offStep = 20
		now     = 60
	)
	m := New(DefaultConfig(speed, col))
	for step := 0; step <= now; step++ {
		m.Set(step >= onStep && step < offStep, step, row)
	}

	// Inside the cone: arrival = 60 - 20/0.5 = 20.
	if !m.Matches(col+20, row, now) {
		t.Fatal("cell inside the light cone rejected")
	}
	// Too close: the source was already off when this energy would have left.
	if m.Matches(col+5, row, now) {
		t.Fatal("cell behind the pulse accepted")
	}
	// Too far: the wave has not arrived yet.
	if m.Matches(col+30, row+10, now) {
		t.Fatal("cell ahead of the wavefront accepted")
	}

	for i := col - 40; i <= col+40; i++ {
		for _, j := range []int{row, row + 7, row - 13} {
			arrival := now - math.Hypot(float64(i-col), float64(j-row))/speed
			want := arrival >= onStep-DefaultHeadTolerance && arrival <= offStep+DefaultTailTolerance
			if got := m.Matches(i, j, now); got != want {
				t.Fatalf("cell (%d,%d) arrival %.2f: got %v want %v", i, j, arrival, got, want)
			}
		}
	}
}

func TestMatchesOpenIntervalEndsAtCurrentStep(t *testing.T) {
	m := New(DefaultConfig(0.5, 0))
	m.Set(true, 4, 0)
	if !m.Matches(0, 0, 100) {
		t.Fatal("source cell of a running source rejected")
	}
	if !m.Matches(48, 0, 100) {
		t.Fatal("cell reached by a running source rejected")
	}
	if m.Matches(0, 200, 100) {
		t.Fatal("unreached cell accepted")
	}
}

func TestMatchesEmptyHistoryRejectsEverything(t *testing.T) {
	m := New(DefaultConfig(0.5, 3))
	if m.Matches(3, 3, 10) {
		t.Fatal("empty mask accepted a cell")
	}
	m.Set(false, 0, 3)
	if m.Matches(3, 3, 10) {
		t.Fatal("off-only mask accepted a cell")
	}
}

func TestPruneBoundsHistory(t *testing.T) {
	m := New(DefaultConfig(0.5, 0))
	for step := 0; step < 200; step++ {
		m.Set(step%4 < 2, step, 0)
		m.Prune(1e6, step)
		if m.Len() > DefaultMaxDeltas {
			t.Fatalf("step %d: %d deltas retained", step, m.Len())
		}
	}
	d := m.Deltas()
	if last := d[len(d)-1]; last.Step != 198 {
		t.Fatalf("latest delta dropped: %+v", last)
	}
}

func TestPruneDropsUnreachableIntervals(t *testing.T) {
	m := New(DefaultConfig(0.5, 0))
	m.Set(true, 0, 0)
	m.Set(false, 5, 0)
	m.Set(true, 100, 0)
	// Nothing within 10 cells can depend on steps before 100 - 20.
	m.Prune(10, 100)
	d := m.Deltas()
	if len(d) != 1 || d[0].Step != 100 || !d[0].IsOn {
		t.Fatalf("prune kept %v", d)
	}
	m.Set(false, 110, 0)
	m.Prune(10, 112)
	if m.Len() != 2 {
		t.Fatalf("prune dropped a reachable interval: %v", m.Deltas())
	}
}

func TestClearEmptiesHistory(t *testing.T) {
	m := New(DefaultConfig(0.5, 0))
	m.Set(true, 1, 0)
	m.Clear()
	if m.Len() != 0 || m.Matches(0, 0, 2) {
		t.Fatal("clear left history behind")
	}
}
