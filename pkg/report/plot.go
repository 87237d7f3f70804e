package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fraudprep/pkg/dataset"
	"fraudprep/pkg/pipeline"
)

var (
	trainColor = color.RGBA{R: 50, G: 50, B: 255, A: 160}
	testColor  = color.RGBA{R: 255, G: 80, B: 40, A: 160}
)

// PlotFeatureSplit saves overlaid histograms of column for the train and
// test partitions. The format follows the file extension (png, svg, pdf).
func PlotFeatureSplit(split *pipeline.Split, column string, bins int, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s by partition", column)
	p.X.Label.Text = column
	p.Y.Label.Text = "Rows"

	parts := []struct {
		name  string
		X     *dataset.Dataset
		color color.Color
	}{
		{"train", split.XTrain, trainColor},
		{"test", split.XTest, testColor},
	}

	added := 0
	for _, part := range parts {
		values, err := part.X.Column(column)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(values), bins)
		if err != nil {
			return fmt.Errorf("%s histogram: %w", part.name, err)
		}
		h.FillColor = part.color
		h.LineStyle.Width = vg.Points(0.5)
		p.Add(h)
		p.Legend.Add(part.name, h)
		added++
	}
	if added == 0 {
		return fmt.Errorf("no rows to plot for %q", column)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
