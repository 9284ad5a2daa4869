package sim

import (
	"fmt"
	"image/color"

	localise "github.com/milosgajdos/go-localise"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates new plot of a localisation run from three data sources:
// truth:     ground truth trajectory, one (x, y) pose per row
// filter:    filter estimates, one (x, y) pose per row
// landmarks: the landmark catalogue
// It returns error if either trajectory matrix is nil or has fewer than 2 columns.
func New2DPlot(truth, filter *mat.Dense, landmarks []*localise.Landmark) (*plot.Plot, error) {
	if truth == nil || filter == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, ct := truth.Dims()
	_, cf := filter.Dims()

	if ct < 2 || cf < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Localisation"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// ground truth trajectory
	truthScatter, err := plotter.NewScatter(makePoints(truth))
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// filter estimates
	filterScatter, err := plotter.NewScatter(makePoints(filter))
	if err != nil {
		return nil, err
	}
	filterScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	filterScatter.Shape = draw.CrossGlyph{}
	filterScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(filterScatter)
	p.Legend.Add("filtered", filterScatter)

	// landmark catalogue
	lmPoints := make(plotter.XYs, len(landmarks))
	for i, lm := range landmarks {
		pos := lm.Position()
		lmPoints[i].X = pos.AtVec(0)
		lmPoints[i].Y = pos.AtVec(1)
	}

	lmScatter, err := plotter.NewScatter(lmPoints)
	if err != nil {
		return nil, err
	}
	lmScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 255}
	lmScatter.Shape = draw.CircleGlyph{}
	lmScatter.GlyphStyle.Radius = vg.Points(4)

	p.Add(lmScatter)
	p.Legend.Add("landmarks", lmScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
