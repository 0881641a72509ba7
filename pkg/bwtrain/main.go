// 2 Feb 2024

// Package bwtrain fits a two state nucleotide model to a fasta
// sequence by Baum-Welch and prints the converged parameters. The
// starting point is a deliberately vague prior, one state leaning
// towards A/T and one towards G/C, which is enough for training to
// find CpG island like structure on its own.
package bwtrain

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/seqhmm/pkg/hmm"
	"github.com/andrew-torda/seqhmm/pkg/seqio"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Eps     float64 // stop when the log likelihood moves less than this
	MaxIter int     // give up after this many iterations
}

// prior is where training starts from.
func prior() *hmm.Model {
	return hmm.New(
		[]float64{0.996, 0.004},
		[][]float64{{0.999, 0.001}, {0.01, 0.99}},
		[]map[string]float64{
			{"A": 0.3, "T": 0.3, "G": 0.2, "C": 0.2},
			{"A": 0.15, "T": 0.15, "G": 0.35, "C": 0.35},
		})
}

// report prints the fitted parameters back in probability space.
func report(fp io.Writer, m *hmm.Model, res hmm.Result) {
	fmt.Fprintf(fp, "\nIterations for Convergence:\n%d\n", res.Iterations)
	fmt.Fprintf(fp, "\nLog Likelihood:\n%.3f\n", res.LogLikelihood)

	fmt.Fprintln(fp, "\nInitial State Probabilities:")
	for i, p := range m.StartProbs() {
		fmt.Fprintf(fp, "%d=%.3e\n", i, p)
	}
	fmt.Fprintln(fp, "\nTransition Probabilities:")
	for i, row := range m.TransProbs() {
		for j, p := range row {
			fmt.Fprintf(fp, "%d,%d=%.3e\n", i+1, j+1, p)
		}
	}
	fmt.Fprintln(fp, "\nEmission Probabilities:")
	emit := m.EmitProbs()
	for i := range emit {
		for _, sym := range m.Alphabet() {
			fmt.Fprintf(fp, "%d,%s=%.3e\n", i+1, sym, emit[i][sym])
		}
	}
}

// Mymain is the main function for Baum-Welch training.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	seq, name, err := seqio.ReadFasta(infile)
	if err != nil {
		return fmt.Errorf("reading sequence: %w", err)
	}

	var fp io.WriteCloser = os.Stdout
	if outfile != "" && outfile != "-" {
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
	}
	fmt.Fprintln(fp, "Fasta:", name)

	m := prior()
	res, err := m.Train(seqio.Letters(seq), flags.Eps, flags.MaxIter)
	if err != nil {
		if !errors.Is(err, hmm.ErrNoConverge) {
			return err
		}
		// Not fatal. The model holds the best parameters found, say
		// so and report them anyway.
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	report(fp, m, res)
	return nil
}
