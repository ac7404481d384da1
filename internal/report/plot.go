package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/drakos74/offset-model/internal/fit"
	"github.com/drakos74/offset-model/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	rawColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	keptColor = color.RGBA{B: 255, A: 255}
	fitColor  = color.RGBA{R: 255, A: 255}
)

// PlotFile is the image name for the axis plot.
func PlotFile(dir string, axis model.Axis) string {
	return filepath.Join(dir, fmt.Sprintf("%s_fit.png", axis.Target()))
}

// Plot draws the raw samples, the retained samples and the fitted curve of the axis
// and saves the image to path. The format follows the file extension.
func Plot(axis model.Axis, samples fit.Samples, r fit.Result, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s", axis.Target(), axis.Input())
	p.X.Label.Text = fmt.Sprintf("%s (deg)", axis.Input())
	p.Y.Label.Text = fmt.Sprintf("%s (arcsec)", axis.Label())
	p.Add(plotter.NewGrid())

	raw, err := plotter.NewScatter(points(samples.X, samples.Y))
	if err != nil {
		return fmt.Errorf("could not plot raw data: %w", err)
	}
	raw.GlyphStyle.Color = rawColor
	p.Add(raw)
	p.Legend.Add("Raw data", raw)

	xx := r.Select(samples.X, true)
	yy := r.Select(samples.Y, true)
	kept, err := plotter.NewScatter(points(xx, yy))
	if err != nil {
		return fmt.Errorf("could not plot filtered data: %w", err)
	}
	kept.GlyphStyle.Color = keptColor
	p.Add(kept)
	p.Legend.Add("Filtered data", kept)

	if len(xx) > 0 {
		f := plotter.NewFunction(r.Evaluate)
		f.XMin = floats.Min(xx)
		f.XMax = floats.Max(xx)
		f.Samples = 200
		f.Color = fitColor
		f.Width = vg.Points(1.5)
		p.Add(f)
		p.Legend.Add("Fit", f)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s plot: %w", axis, err)
	}
	return nil
}

func points(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if i < len(y) {
			pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
		}
	}
	return pts
}
