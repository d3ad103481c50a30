// Package figkit provides helpers around github.com/tdewolff/canvas for
// preparing publication figures: style sheets applied onto an explicit
// configuration, sizes in document-relative units, save-time size
// measurement and correction, monochrome colormaps, panel labels and figure
// export with version-control metadata.
package figkit

import (
	"fmt"
	"io"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
)

// Size is a width and height in millimeters.
type Size struct {
	W, H float64
}

// Figure is a drawing together with its draw-time size. The draw callback is
// invoked anew on every render, so that rendering the figure at a different
// size reflows its contents instead of scaling them. Fixed-size elements
// such as text keep their size.
type Figure struct {
	W, H  float64 // draw-time size in millimeters
	Label string
	Draw  func(*canvas.Canvas) error
}

// New returns a figure drawn by the given callback.
func New(label string, size Size, draw func(*canvas.Context)) *Figure {
	return &Figure{
		W:     size.W,
		H:     size.H,
		Label: label,
		Draw: func(c *canvas.Canvas) error {
			draw(canvas.NewContext(c))
			return nil
		},
	}
}

// NewGonumFigure wraps a gonum/plot plot so that it can be sized and saved
// like any other figure.
func NewGonumFigure(label string, size Size, p *plot.Plot) *Figure {
	return &Figure{
		W:     size.W,
		H:     size.H,
		Label: label,
		Draw: func(c *canvas.Canvas) error {
			p.Draw(renderers.NewGonumPlot(c))
			return nil
		},
	}
}

// NewGoChartFigure wraps a go-chart chart so that it can be sized and saved
// like any other figure. The chart is laid out at 96 dpi.
func NewGoChartFigure(label string, size Size, graph *chart.Chart) *Figure {
	const pxPerMm = 96.0 / 25.4
	return &Figure{
		W:     size.W,
		H:     size.H,
		Label: label,
		Draw: func(c *canvas.Canvas) error {
			graph.Width = int(math.Round(c.W * pxPerMm))
			graph.Height = int(math.Round(c.H * pxPerMm))
			onto := func(_ io.Writer, cc *canvas.Canvas) error {
				cc.RenderTo(c)
				return nil
			}
			return graph.Render(renderers.NewGoChart(onto), io.Discard)
		},
	}
}

// Size returns the draw-time size of the figure.
func (f *Figure) Size() Size {
	return Size{f.W, f.H}
}

// SetSize sets the draw-time size of the figure.
func (f *Figure) SetSize(size Size) {
	f.W = size.W
	f.H = size.H
}

// Canvas renders the figure at its current draw-time size.
func (f *Figure) Canvas() (*canvas.Canvas, error) {
	c := canvas.New(f.W, f.H)
	if f.Draw != nil {
		if err := f.Draw(c); err != nil {
			return nil, fmt.Errorf("figkit: draw figure %q: %w", f.Label, err)
		}
	}
	return c, nil
}
