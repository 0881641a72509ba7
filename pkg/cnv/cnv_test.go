// 5 Feb 2024

package cnv_test

import (
	"math"
	"testing"

	. "github.com/andrew-torda/seqhmm/pkg/cnv"
)

// A clean rise to 6, a crash, then a small rise at the end. The
// fall-off closes the first segment at its peak of 6 and the floor
// keeps the weak tail run out of the report.
func TestRunFallOff(t *testing.T) {
	scores := []float64{2, 2, 2, -5, -5, 2, 2}
	sg := Segmenter{FallOff: 4, Floor: 5}
	segs := sg.Run(scores)
	if len(segs) != 1 {
		t.Fatalf("got %d segments %v, want 1", len(segs), segs)
	}
	if segs[0].Start != 0 || segs[0].End != 2 || segs[0].Score != 6 {
		t.Error("segment wrong:", segs[0])
	}
}

// Dropping the floor lets the tail run through, ending at its own
// peak. Two segments, in order, not overlapping.
func TestRunFloorLow(t *testing.T) {
	scores := []float64{2, 2, 2, -5, -5, 2, 2}
	sg := Segmenter{FallOff: 4, Floor: 1}
	segs := sg.Run(scores)
	if len(segs) != 2 {
		t.Fatalf("got %d segments %v, want 2", len(segs), segs)
	}
	if segs[1].Start <= segs[0].End {
		t.Error("segments overlap:", segs)
	}
	if segs[1].End != 6 || segs[1].Score != 4 {
		t.Error("tail segment wrong:", segs[1])
	}
}

// A run that goes non-positive resets and can never reach back into
// the scores before the reset.
func TestRunReset(t *testing.T) {
	scores := []float64{5, -6, 5, 5}
	sg := Segmenter{FallOff: 100, Floor: 4}
	segs := sg.Run(scores)
	if len(segs) != 2 {
		t.Fatalf("got %v, want the peak before and after the reset", segs)
	}
	if segs[0].Score != 5 || segs[1].Score != 10 {
		t.Error("scores wrong:", segs)
	}
	if segs[1].Start != 2 {
		t.Error("second segment should start after the reset:", segs[1])
	}
}

func TestRunAllNegative(t *testing.T) {
	sg := Segmenter{FallOff: 4, Floor: 1}
	if segs := sg.Run([]float64{-1, -2, -3}); len(segs) != 0 {
		t.Error("segments from an all-negative stream:", segs)
	}
	if segs := sg.Run(nil); len(segs) != 0 {
		t.Error("segments from an empty stream:", segs)
	}
}

func TestSchemeCap(t *testing.T) {
	sch := Scheme{0: -0.1, 1: 0.5, 2: 1.1, 3: 1.7}
	if sch.Score(3) != sch.Score(17) {
		t.Error("read counts above the cap must share a score")
	}
}

// Scan on synthetic reads: a stretch of zeroes, a burst of high
// counts, more zeroes. The burst must come out elevated and the
// frequency estimates must split background from elevated.
func TestScanAndFreqs(t *testing.T) {
	sch := Scheme{0: -0.5, 1: 0.5, 2: 1.0, 3: 1.5}
	reads := make([]int, 60)
	for i := 20; i < 30; i++ {
		reads[i] = 3
	}
	h := Scan(reads, sch, 5)
	if len(h.Segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(h.Segs))
	}
	if h.Segs[0].Score != 15 {
		t.Error("peak score", h.Segs[0].Score)
	}
	if h.Segs[0].Start != 20 || h.Segs[0].End != 29 {
		t.Error("segment should cover the burst up to its peak:", h.Segs[0])
	}
	if h.Elevated[3] != 10 {
		t.Error("elevated class 3 count", h.Elevated[3])
	}

	bg, err := h.BackgroundFreqs(0)
	if err != nil {
		t.Fatal(err)
	}
	// 50 zero sites outside the segment, minus the elevated zeroes.
	wantZero := float64(h.Total[0]-h.Elevated[0]) / 50.0
	if math.Abs(bg[0]-wantZero) > 1e-12 {
		t.Errorf("background zero class got %g want %g", bg[0], wantZero)
	}
	el, err := h.ElevatedFreqs()
	if err != nil {
		t.Fatal(err)
	}
	if el[3] != 1.0 { // the burst is all threes up to its peak
		t.Error("elevated class 3 frequency", el[3])
	}
}

func TestNewScheme(t *testing.T) {
	el := map[int]float64{0: 0.25, 1: 0.25, 2: 0.25, 3: 0.25}
	bg := map[int]float64{0: 0.5, 1: 0.25, 2: 0.125, 3: 0.125}
	sch := NewScheme(el, bg)
	if math.Abs(sch[0]+1) > 1e-12 { // log2(0.25/0.5)
		t.Error("class 0 score", sch[0])
	}
	if math.Abs(sch[2]-1) > 1e-12 { // log2(0.25/0.125)
		t.Error("class 2 score", sch[2])
	}
}

func TestSurvivalAndRatios(t *testing.T) {
	segs := []Segment{{Score: 5.5}, {Score: 7}, {Score: 12}}
	counts := Survival(segs, 5, 8)
	want := []int{3, 2, 2, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("survival got %v want %v", counts, want)
		}
	}
	ratios := Ratios(counts)
	if ratios[0] != 1.5 || ratios[2] != 2 {
		t.Error("ratios", ratios)
	}
	if r := Ratios([]int{2, 0}); r[0] != -1 {
		t.Error("zero denominator should give -1, got", r)
	}
}

func TestTopScores(t *testing.T) {
	segs := []Segment{{Score: 5.5}, {Score: 12}, {Score: 7}}
	top := TopScores(segs, 2)
	if len(top) != 2 || top[0].Score != 12 || top[1].Score != 7 {
		t.Error("top segments wrong:", top)
	}
	if segs[0].Score != 5.5 {
		t.Error("input order was disturbed:", segs)
	}
	if n := len(TopScores(segs, 10)); n != 3 {
		t.Error("asking for more than there are gave", n)
	}
}

// Simulated data from flat background frequencies and a scheme that
// punishes zeroes should produce few strong segments, and the same
// seed must reproduce them.
func TestSimulate(t *testing.T) {
	bg := map[int]float64{0: 0.85, 1: 0.1, 2: 0.04, 3: 0.01}
	sch := NewScheme(map[int]float64{0: 0.5, 1: 0.25, 2: 0.15, 3: 0.1}, bg)
	h1 := Simulate(5000, bg, sch, 5, 1637)
	h2 := Simulate(5000, bg, sch, 5, 1637)
	if len(h1.Segs) != len(h2.Segs) {
		t.Fatal("same seed, different segment counts")
	}
	var n int
	for _, c := range h1.Total {
		n += c
	}
	if n != 5000 {
		t.Error("simulated site count", n)
	}
}
