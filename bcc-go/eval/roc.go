package eval

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// SaveROCPlot renders an ROC curve (with the chance diagonal) to a PNG
// at path.
func SaveROCPlot(points []ROCPoint, path string) error {
	if len(points) == 0 {
		return errors.Errorf("no ROC points to plot")
	}

	p, err := plot.New()
	if err != nil {
		return errors.Wrapf(err, "error creating plot")
	}
	p.Title.Text = "ROC"
	p.X.Label.Text = "false positive rate"
	p.Y.Label.Text = "true positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.FPR
		xys[i].Y = pt.TPR
	}
	curve, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrapf(err, "error building ROC line")
	}
	p.Add(curve)

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrapf(err, "error building diagonal")
	}
	diag.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)

	return errors.WrapfOrNil(p.Save(5*vg.Inch, 5*vg.Inch, path), "error saving %s", path)
}
