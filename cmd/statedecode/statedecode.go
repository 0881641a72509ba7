// 8 Feb 2024
// Label alignment columns neutral or conserved with a Viterbi decode
// and list the longest conserved segments.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/seqhmm/pkg/common"
	"github.com/andrew-torda/seqhmm/pkg/statedecode"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"-1 neutral_counts -2 conserved_counts alignment [outfile]")
	flag.PrintDefaults()
}

func main() {
	var flags statedecode.CmdFlag
	var outfile string

	flag.StringVar(&flags.NeutralFile, "1", "", "emission counts for the neutral state")
	flag.StringVar(&flags.ConservedFile, "2", "", "emission counts for the conserved state")
	flag.IntVar(&flags.TopN, "n", 10, "how many of the longest conserved segments to list")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 || flags.NeutralFile == "" || flags.ConservedFile == "" {
		usage()
		os.Exit(ExitUsageError)
	}
	if flag.NArg() > 1 {
		outfile = flag.Arg(1)
	}

	if err := statedecode.Mymain(&flags, flag.Arg(0), outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
