package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrackPlot creates new time vs position plot of the simulation samples:
// true position, sensor readings and filter estimates.
// It returns error if samples are empty or if gonum plot fails to be created.
func NewTrackPlot(samples []Sample) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("invalid data supplied: %d samples", len(samples))
	}

	p := plot.New()

	p.Title.Text = "Tracking"
	p.X.Label.Text = "time"
	p.Y.Label.Text = "position"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	model := make(plotter.XYs, len(samples))
	filter := make(plotter.XYs, len(samples))
	meas := make(plotter.XYs, 0, len(samples))
	for i, s := range samples {
		model[i].X, model[i].Y = s.T, s.X
		filter[i].X, filter[i].Y = s.T, s.Mu[0]
		if z, ok := s.Z.Value(); ok {
			meas = append(meas, plotter.XY{X: s.T, Y: z})
		}
	}

	// Make a scatter plotter for model data
	modelScatter, err := plotter.NewScatter(model)
	if err != nil {
		return nil, err
	}
	modelScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	modelScatter.Shape = draw.PyramidGlyph{}
	modelScatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(modelScatter)
	p.Legend.Add("model", modelScatter)

	// every reading may have dropped out
	if len(meas) > 0 {
		measScatter, err := plotter.NewScatter(meas)
		if err != nil {
			return nil, err
		}
		measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
		measScatter.GlyphStyle.Radius = vg.Points(2)

		p.Add(measScatter)
		p.Legend.Add("measurement", measScatter)
	}

	// Make a scatter plotter for filter data
	filterScatter, err := plotter.NewScatter(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	filterScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	filterScatter.Shape = draw.CrossGlyph{}
	filterScatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(filterScatter)
	p.Legend.Add("filtered", filterScatter)

	return p, nil
}
