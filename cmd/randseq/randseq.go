// 12 Feb 2024
// Generate a random nucleotide sequence from a known two state model,
// for exercising the training and decoding programs.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/seqhmm/pkg/common"
	"github.com/andrew-torda/seqhmm/pkg/randseq"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[options] length [outfile]")
	long := `Writes a fasta sequence of the given length sampled from a built in
two state model. With one argument output goes to stdout, with two it
goes to the named file.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags randseq.CmdFlag
	var outfile string

	flag.Int64Var(&flags.Seed, "r", 1637, "random number seed")
	flag.BoolVar(&flags.States, "s", false, "also write the hidden state path")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(ExitUsageError)
	}
	if _, err := fmt.Sscan(flag.Arg(0), &flags.N); err != nil {
		fmt.Fprintln(os.Stderr, "length must be a number:", flag.Arg(0))
		os.Exit(ExitUsageError)
	}
	if flag.NArg() > 1 {
		outfile = flag.Arg(1)
	}

	if err := randseq.Mymain(&flags, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
