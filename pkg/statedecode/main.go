// 8 Feb 2024

// Package statedecode labels alignment columns as neutral or
// conserved. The emission tables come from two count files, ancestral
// repeat columns for the neutral state and first/second codon
// position columns for the conserved one. The decode is Viterbi, one
// best path, collapsed into segments.
package statedecode

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/andrew-torda/seqhmm/pkg/hmm"
	"github.com/andrew-torda/seqhmm/pkg/seqio"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	NeutralFile   string // emission counts for the neutral state
	ConservedFile string // emission counts for the conserved state
	TopN          int    // how many of the longest conserved segments to list
}

// buildModel glues the empirical emissions onto the fixed start and
// transition probabilities. State 0 is neutral, state 1 conserved.
func buildModel(neutral, conserved map[string]int) *hmm.Model {
	ln := math.Log
	return &hmm.Model{
		Start: []float64{ln(0.95), ln(0.05)},
		Trans: [][]float64{
			{ln(0.95), ln(0.05)},
			{ln(0.10), ln(0.90)},
		},
		Emit: []map[string]float64{
			hmm.EmitFromCounts(neutral),
			hmm.EmitFromCounts(conserved),
		},
	}
}

// report writes the histograms and tables. Genomic positions are the
// alignment offset plus the column index.
func report(fp io.Writer, m *hmm.Model, aln *seqio.Alignment, path []int, segs []hmm.Segment, topn int) {
	k := m.NState()
	posTotal := make([]int, k)
	for _, s := range path {
		posTotal[s]++
	}
	segTotal := make([]int, k)
	for _, sg := range segs {
		segTotal[sg.State]++
	}

	fmt.Fprintln(fp, "\nState Histogram:")
	for s := 0; s < k; s++ {
		fmt.Fprintf(fp, "%d=%d\n", s+1, posTotal[s])
	}
	fmt.Fprintln(fp, "\nSegment Histogram:")
	for s := 0; s < k; s++ {
		fmt.Fprintf(fp, "%d=%d\n", s+1, segTotal[s])
	}

	fmt.Fprintln(fp, "\nInitial State Probabilities:")
	for s, p := range m.StartProbs() {
		fmt.Fprintf(fp, "%d=%.5f\n", s+1, p)
	}
	fmt.Fprintln(fp, "\nTransition Probabilities:")
	for i, row := range m.TransProbs() {
		for j, p := range row {
			fmt.Fprintf(fp, "%d,%d=%.5f\n", i+1, j+1, p)
		}
	}
	fmt.Fprintln(fp, "\nEmission Probabilities:")
	emit := m.EmitProbs()
	for s := range emit {
		for _, sym := range m.Alphabet() {
			fmt.Fprintf(fp, "%d,%s=%.5f\n", s+1, sym, emit[s][sym])
		}
	}

	var conserved []hmm.Segment
	for _, sg := range segs {
		if sg.State == 1 {
			conserved = append(conserved, sg)
		}
	}
	sort.SliceStable(conserved, func(i, j int) bool {
		return conserved[i].End-conserved[i].Start > conserved[j].End-conserved[j].Start
	})
	if topn < len(conserved) {
		conserved = conserved[:topn]
	}
	fmt.Fprintln(fp, "\nLongest Segment List:")
	for _, sg := range conserved {
		fmt.Fprintf(fp, "%d %d\n", aln.Start+sg.Start, aln.Start+sg.End)
	}
}

// Mymain is the main function for decoding an alignment.
func Mymain(flags *CmdFlag, alnfile, outfile string) error {
	neutral, err := seqio.ReadCounts(flags.NeutralFile)
	if err != nil {
		return fmt.Errorf("neutral state counts: %w", err)
	}
	conserved, err := seqio.ReadCounts(flags.ConservedFile)
	if err != nil {
		return fmt.Errorf("conserved state counts: %w", err)
	}
	aln, err := seqio.ReadAlignment(alnfile)
	if err != nil {
		return fmt.Errorf("reading alignment: %w", err)
	}

	m := buildModel(neutral, conserved)
	if err := m.Validate(); err != nil {
		return err
	}
	path, segs, err := m.Decode(aln.Cols)
	if err != nil {
		return err
	}

	var fp io.WriteCloser = os.Stdout
	if outfile != "" && outfile != "-" {
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
	}
	report(fp, m, aln, path, segs, flags.TopN)
	return nil
}
