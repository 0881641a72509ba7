// 12 Feb 2024

package cnv

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteHist draws the distribution of segment scores and writes it to
// a file, format decided by the extension (.png, .pdf, .svg).
func WriteHist(fname string, segs []Segment) error {
	if len(segs) == 0 {
		return fmt.Errorf("no segments to plot")
	}
	vals := make(plotter.Values, len(segs))
	for i, sg := range segs {
		vals[i] = sg.Score
	}
	h, err := plotter.NewHist(vals, 16)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "Segment scores"
	p.X.Label.Text = "peak score"
	p.Y.Label.Text = "segments"
	p.Add(h)
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}
