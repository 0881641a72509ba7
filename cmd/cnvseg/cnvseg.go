// 9 Feb 2024
// Segment a read depth pileup into stretches of elevated copy number
// and compare the segment scores against simulated background noise.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/seqhmm/pkg/cnv"
	. "github.com/andrew-torda/seqhmm/pkg/common"
	"github.com/andrew-torda/seqhmm/pkg/seqio"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[options] depthfile [outfile]")
	long := `The depth file has whitespace separated chromosome, position and
read count columns. Sites missing from the file count as zero reads if
you say how many there are with -z.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags cnv.CmdFlag
	var outfile string

	flag.Float64Var(&flags.FirstPass, "d1", 20, "fall-off for the scheme-estimation scan")
	flag.Float64Var(&flags.SecondPass, "d2", 5, "fall-off for the reporting scan")
	flag.IntVar(&flags.NZero, "z", 0, "zero-read sites missing from the file")
	flag.Uint64Var(&flags.Seed, "s", 1637, "seed for the simulated run")
	flag.StringVar(&flags.PlotFile, "plot", "", "write a segment score histogram to this file")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(ExitUsageError)
	}
	if flag.NArg() > 1 {
		outfile = flag.Arg(1)
	}

	_, reads, err := seqio.ReadDepth(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	if err := cnv.Mymain(&flags, reads, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
