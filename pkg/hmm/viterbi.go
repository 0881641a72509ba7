// 25 Jan 2024

package hmm

import (
	"github.com/andrew-torda/matrix"
)

// Segment is a maximal run of one decoded state. Start and End are
// positions into the sequence, both inclusive. Score is the best-path
// log score accumulated across the run, that is, the path score at End
// minus the path score just before Start.
type Segment struct {
	Start, End int
	State      int
	Score      float64
}

// Decode is Viterbi decoding. It returns the single most probable
// state path, one state per position, and that path collapsed into
// constant-state segments. When two predecessors score exactly the
// same, the lower numbered state wins, and the same rule picks the
// final state, so results are reproducible.
func (m *Model) Decode(syms []string) ([]int, []Segment, error) {
	if err := m.checkSeq(syms); err != nil {
		return nil, nil, err
	}
	n := len(syms)
	k := m.NState()
	score := newTable(n, k)
	from := matrix.NewBMatrix2d(n, k) // predecessor of (t, s), as in an alignment traceback

	for s := 0; s < k; s++ {
		score[0][s] = m.Start[s] + m.Emit[s][syms[0]]
	}
	for t := 1; t < n; t++ {
		for s := 0; s < k; s++ {
			best := score[t-1][0] + m.Trans[0][s]
			bestFrom := 0
			for sp := 1; sp < k; sp++ {
				if sc := score[t-1][sp] + m.Trans[sp][s]; sc > best {
					best, bestFrom = sc, sp
				}
			}
			score[t][s] = best + m.Emit[s][syms[t]]
			from.Mat[t][s] = byte(bestFrom)
		}
	}

	last := 0
	for s := 1; s < k; s++ {
		if score[n-1][s] > score[n-1][last] {
			last = s
		}
	}
	path := make([]int, n)
	path[n-1] = last
	for t := n - 1; t > 0; t-- {
		path[t-1] = int(from.Mat[t][path[t]])
	}

	return path, collapse(path, score), nil
}

// collapse turns a state path into maximal constant-state segments.
// Segments come out in position order and cannot overlap, since each
// position belongs to exactly one run.
func collapse(path []int, score [][]float64) []Segment {
	var segs []Segment
	var entry float64 // path score just before the current run
	start := 0
	for t := 1; t <= len(path); t++ {
		if t < len(path) && path[t] == path[t-1] {
			continue
		}
		segs = append(segs, Segment{
			Start: start,
			End:   t - 1,
			State: path[start],
			Score: score[t-1][path[t-1]] - entry,
		})
		if t < len(path) {
			entry = score[t-1][path[t-1]]
			start = t
		}
	}
	return segs
}
