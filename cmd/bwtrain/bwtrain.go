// 2 Feb 2024
// Fit a two state nucleotide model to a fasta sequence with
// Baum-Welch and print the converged parameters.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/seqhmm/pkg/bwtrain"
	. "github.com/andrew-torda/seqhmm/pkg/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "infile [outfile]")
	long := `Reads a fasta file, trains the two state model and prints the
parameters. With one argument output goes to stdout, with two it goes
to the named file.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags bwtrain.CmdFlag
	var outfile string

	flag.Float64Var(&flags.Eps, "e", 0.1, "convergence threshold on the log likelihood")
	flag.IntVar(&flags.MaxIter, "m", 0, "iteration cap, 0 for the built-in default")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(ExitUsageError)
	}
	if flag.NArg() > 1 {
		outfile = flag.Arg(1)
	}

	if err := bwtrain.Mymain(&flags, flag.Arg(0), outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
