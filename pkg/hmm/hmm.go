// 18 Jan 2024

// Package hmm is a hidden Markov model over discrete emission symbols.
// Parameters live in natural log space from the moment a model is
// built. The number of states is not fixed, although everything here
// grew out of two-state models (background / elevated and
// neutral / conserved), so that is what gets exercised most.
// Symbols are strings, not bytes, because an emission can be a whole
// alignment column squashed into one token.
package hmm

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// The three ways a run can go wrong. Wrapped versions carry the
// detail, these are for errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNumerical    = errors.New("numerical instability")
	ErrNoConverge   = errors.New("no convergence")
)

// Model holds the parameters as log probabilities. Start and each row
// of Trans and each Emit map should sum to one in probability space.
// During re-estimation they are overwritten in place, so a model you
// hand to Train will not be the model you started with.
type Model struct {
	Start []float64            // log probability of starting in each state
	Trans [][]float64          // log transition probability, [from][to]
	Emit  []map[string]float64 // per state, symbol to log probability
}

// New builds a model from probabilities, not logs. This is the path
// for hand-specified priors. A zero probability becomes log(0) and
// stays there.
func New(start []float64, trans [][]float64, emit []map[string]float64) *Model {
	m := &Model{
		Start: make([]float64, len(start)),
		Trans: make([][]float64, len(trans)),
		Emit:  make([]map[string]float64, len(emit)),
	}
	for i, p := range start {
		m.Start[i] = math.Log(p)
	}
	for i, row := range trans {
		m.Trans[i] = make([]float64, len(row))
		for j, p := range row {
			m.Trans[i][j] = math.Log(p)
		}
	}
	for i, dist := range emit {
		m.Emit[i] = make(map[string]float64, len(dist))
		for sym, p := range dist {
			m.Emit[i][sym] = math.Log(p)
		}
	}
	return m
}

// EmitFromCounts turns raw symbol counts into a log frequency
// distribution, count over total. It is how empirical emission tables
// get into a model.
func EmitFromCounts(counts map[string]int) map[string]float64 {
	var total float64
	for _, c := range counts {
		total += float64(c)
	}
	dist := make(map[string]float64, len(counts))
	for sym, c := range counts {
		dist[sym] = math.Log(float64(c) / total)
	}
	return dist
}

// NState returns the number of hidden states.
func (m *Model) NState() int { return len(m.Start) }

// Alphabet returns the emission symbols of state 0, sorted. After a
// successful Validate all states have the same alphabet.
func (m *Model) Alphabet() []string {
	if len(m.Emit) == 0 {
		return nil
	}
	syms := make([]string, 0, len(m.Emit[0]))
	for sym := range m.Emit[0] {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// sumTol is how far from one a probability distribution may sum and
// still count as a distribution. Re-estimated parameters come out of a
// long chain of log-space addition, so demand less than machine
// epsilon times sequence length.
const sumTol = 1e-9

// checkDist is the workhorse for Validate. dist is in log space.
func checkDist(dist []float64, what string) error {
	var sum float64
	for _, lp := range dist {
		if math.IsNaN(lp) || lp > 0 {
			return fmt.Errorf("%w: %s holds an impossible log probability %g",
				ErrInvalidInput, what, lp)
		}
		sum += math.Exp(lp)
	}
	if math.Abs(sum-1) > sumTol {
		return fmt.Errorf("%w: %s sums to %.12g, not 1", ErrInvalidInput, what, sum)
	}
	return nil
}

// Validate checks dimensions and that every distribution sums to one
// in probability space. All the problems are collected, not just the
// first, since a mis-built model usually has several.
// Re-estimation can pass through transiently invalid parameters, so
// this is only called at the start of a run, never mid-iteration.
func (m *Model) Validate() error {
	var result *multierror.Error
	k := m.NState()
	if k == 0 {
		return fmt.Errorf("%w: model has no states", ErrInvalidInput)
	}
	if k > 255 { // the Viterbi traceback stores states in bytes
		result = multierror.Append(result,
			fmt.Errorf("%w: %d states, more than traceback can hold", ErrInvalidInput, k))
	}
	if len(m.Trans) != k {
		result = multierror.Append(result,
			fmt.Errorf("%w: %d transition rows for %d states", ErrInvalidInput, len(m.Trans), k))
	}
	for i, row := range m.Trans {
		if len(row) != k {
			result = multierror.Append(result,
				fmt.Errorf("%w: transition row %d has %d entries for %d states",
					ErrInvalidInput, i, len(row), k))
			continue
		}
		result = multierror.Append(result, checkDist(row, fmt.Sprintf("transitions from state %d", i)))
	}
	if len(m.Emit) != k {
		result = multierror.Append(result,
			fmt.Errorf("%w: %d emission tables for %d states", ErrInvalidInput, len(m.Emit), k))
		return result.ErrorOrNil()
	}
	result = multierror.Append(result, checkDist(m.Start, "start probabilities"))
	alpha := m.Emit[0]
	for i, dist := range m.Emit {
		if len(dist) != len(alpha) {
			result = multierror.Append(result,
				fmt.Errorf("%w: state %d emits %d symbols, state 0 emits %d",
					ErrInvalidInput, i, len(dist), len(alpha)))
			continue
		}
		tmp := make([]float64, 0, len(dist))
		for sym, lp := range dist {
			if _, ok := alpha[sym]; !ok {
				result = multierror.Append(result,
					fmt.Errorf("%w: state %d emits %q, unknown to state 0",
						ErrInvalidInput, i, sym))
			}
			tmp = append(tmp, lp)
		}
		result = multierror.Append(result, checkDist(tmp, fmt.Sprintf("emissions of state %d", i)))
	}
	return result.ErrorOrNil()
}

// checkSeq does the eager structural checks at the start of every
// pass. Every symbol must have an emission slot in every state, or
// the re-estimation would leak probability.
func (m *Model) checkSeq(syms []string) error {
	if len(syms) == 0 {
		return fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	}
	for t, sym := range syms {
		for s, dist := range m.Emit {
			if _, ok := dist[sym]; !ok {
				return fmt.Errorf("%w: symbol %q at position %d not in state %d's alphabet",
					ErrInvalidInput, sym, t, s)
			}
		}
	}
	return nil
}

// newTable gives an n x k table of log probabilities in one backing
// allocation.
func newTable(n, k int) [][]float64 {
	backing := make([]float64, n*k)
	tbl := make([][]float64, n)
	for i := range tbl {
		tbl[i] = backing[:k]
		backing = backing[k:]
	}
	return tbl
}

// StartProbs, TransProbs and EmitProbs convert back to probability
// space. They exist for printing, nothing in the engine uses them.
func (m *Model) StartProbs() []float64 {
	out := make([]float64, len(m.Start))
	for i, lp := range m.Start {
		out[i] = math.Exp(lp)
	}
	return out
}

func (m *Model) TransProbs() [][]float64 {
	out := make([][]float64, len(m.Trans))
	for i, row := range m.Trans {
		out[i] = make([]float64, len(row))
		for j, lp := range row {
			out[i][j] = math.Exp(lp)
		}
	}
	return out
}

func (m *Model) EmitProbs() []map[string]float64 {
	out := make([]map[string]float64, len(m.Emit))
	for i, dist := range m.Emit {
		out[i] = make(map[string]float64, len(dist))
		for sym, lp := range dist {
			out[i][sym] = math.Exp(lp)
		}
	}
	return out
}
