// 5 Feb 2024

// Package cnv finds stretches of elevated read depth in a stream of
// per-site scores. This is not a Markov decode. There is one running
// score, a running maximum, and a segment closes when the score falls
// far enough below the maximum, the way local alignments are cut off.
// The rest of the package estimates the log-odds scoring scheme from
// the data itself, background frequencies against elevated-segment
// frequencies.
package cnv

import (
	"fmt"
	"math"
	"sort"
)

// MaxClass caps the per-site read count. Sites with three or more
// reads are all one class, there are too few of them to subdivide.
const MaxClass = 3

// Scheme is the per-class score, log2 of elevated over background
// frequency.
type Scheme map[int]float64

// Score looks up the score for a read count, capping at MaxClass.
func (sch Scheme) Score(reads int) float64 {
	if reads > MaxClass {
		reads = MaxClass
	}
	return sch[reads]
}

// Segment is a scored run of sites. Start and End are indices into
// the scanned stream, both inclusive, End being the site where the
// running score peaked. Score is that peak.
type Segment struct {
	Start, End int
	Score      float64
}

// Segmenter carries the two knobs of the scan. FallOff closes a
// segment once the running score has dropped that far below its
// maximum. Floor is the peak a segment needs to be worth reporting.
type Segmenter struct {
	FallOff float64
	Floor   float64
}

// Run scans a stream of per-site scores and returns the reported
// segments in position order. The running score resets to zero
// whenever it goes non-positive. Segments never overlap, a new one
// cannot open before the old one has been closed.
func (sg *Segmenter) Run(scores []float64) []Segment {
	var segs []Segment
	var cum, max float64
	start, end := 0, 0
	for i, sc := range scores {
		cum += sc
		if cum >= max {
			max = cum
			end = i
		}
		if cum <= 0 || cum <= max-sg.FallOff || i == len(scores)-1 {
			if max >= sg.Floor {
				segs = append(segs, Segment{start, end, max})
			}
			cum, max = 0, 0
			start, end = i+1, i+1
		}
	}
	return segs
}

// Hist is what a scan of real read counts produces, the segments plus
// the per-class bookkeeping needed to re-estimate frequencies.
// Elevated counts only the sites inside reported segments, up to each
// segment's peak. Total counts everything.
type Hist struct {
	Segs     []Segment
	Elevated [MaxClass + 1]int
	Total    [MaxClass + 1]int
}

// Scan walks per-site read counts, scores each with the scheme, and
// segments the stream. The fall-off doubles as the reporting floor
// here, a segment has to climb at least as high as it is later allowed
// to fall.
func Scan(reads []int, sch Scheme, fallOff float64) *Hist {
	h := &Hist{}
	var cum, max float64
	var cls, atMax [MaxClass + 1]int
	start, end := 0, 0
	for i, r := range reads {
		c := r
		if c > MaxClass {
			c = MaxClass
		}
		cls[c]++
		h.Total[c]++
		cum += sch.Score(r)
		if cum >= max {
			max = cum
			end = i
			atMax = cls
		}
		if cum <= 0 || cum <= max-fallOff || i == len(reads)-1 {
			if max >= fallOff {
				h.Segs = append(h.Segs, Segment{start, end, max})
				for k, n := range atMax {
					h.Elevated[k] += n
				}
			}
			cum, max = 0, 0
			start, end = i+1, i+1
			cls = [MaxClass + 1]int{}
			atMax = cls
		}
	}
	return h
}

// BackgroundFreqs estimates the class frequencies outside elevated
// segments. nExtraZero is the number of zero-read sites missing from
// the input because a pileup does not list them; it is added to class
// zero before normalizing. The caller knows the genome size, we do
// not.
func (h *Hist) BackgroundFreqs(nExtraZero int) (map[int]float64, error) {
	var total float64
	counts := make(map[int]float64, MaxClass+1)
	for c := 0; c <= MaxClass; c++ {
		n := float64(h.Total[c] - h.Elevated[c])
		if c == 0 {
			n += float64(nExtraZero)
		}
		if n < 0 {
			return nil, fmt.Errorf("class %d has %g background sites, more elevated than total", c, n)
		}
		counts[c] = n
		total += n
	}
	if total == 0 {
		return nil, fmt.Errorf("no background sites at all")
	}
	for c := range counts {
		counts[c] /= total
	}
	return counts, nil
}

// ElevatedFreqs estimates the class frequencies inside elevated
// segments.
func (h *Hist) ElevatedFreqs() (map[int]float64, error) {
	var total float64
	for _, n := range h.Elevated {
		total += float64(n)
	}
	if total == 0 {
		return nil, fmt.Errorf("no elevated sites, cannot estimate frequencies")
	}
	freqs := make(map[int]float64, MaxClass+1)
	for c := 0; c <= MaxClass; c++ {
		freqs[c] = float64(h.Elevated[c]) / total
	}
	return freqs, nil
}

// NewScheme builds the log2-odds scoring scheme from elevated and
// background frequencies.
func NewScheme(elevated, background map[int]float64) Scheme {
	sch := make(Scheme, len(elevated))
	for c, e := range elevated {
		sch[c] = math.Log2(e) - math.Log2(background[c])
	}
	return sch
}

// Survival counts, for each integer threshold from lo to hi
// inclusive, how many segments scored at least that much. Comparing
// how fast real and simulated counts die off says whether the strong
// segments are signal or luck.
func Survival(segs []Segment, lo, hi int) []int {
	out := make([]int, hi-lo+1)
	for i := range out {
		thr := float64(lo + i)
		for _, sg := range segs {
			if sg.Score >= thr {
				out[i]++
			}
		}
	}
	return out
}

// Ratios returns consecutive ratios of a survival histogram,
// count(i-1)/count(i). A ratio is -1 where the denominator is zero.
func Ratios(counts []int) []float64 {
	if len(counts) < 2 {
		return nil
	}
	out := make([]float64, len(counts)-1)
	for i := 1; i < len(counts); i++ {
		if counts[i] == 0 {
			out[i-1] = -1
			continue
		}
		out[i-1] = float64(counts[i-1]) / float64(counts[i])
	}
	return out
}

// TopScores returns the n highest scoring segments, best first.
// The input order is not disturbed.
func TopScores(segs []Segment, n int) []Segment {
	out := make([]Segment, len(segs))
	copy(out, segs)
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
