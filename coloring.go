package figkit

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
)

// Lucid is a monochrome colormap interpolating opacity from fully
// transparent to a fixed color. Overlaying lucid-mapped data keeps the
// underlying layers readable. It implements gonum/plot's palette.ColorMap.
type Lucid struct {
	r, g, b  uint8
	min, max float64
}

// NewLucid returns the lucid colormap of c over the unit interval.
func NewLucid(c color.Color) *Lucid {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return &Lucid{r: nrgba.R, g: nrgba.G, b: nrgba.B, max: 1.0}
}

// Name returns the colormap name, the hex code of its color with a "_lucid"
// suffix.
func (l *Lucid) Name() string {
	c := colorful.Color{R: float64(l.r) / 255.0, G: float64(l.g) / 255.0, B: float64(l.b) / 255.0}
	return c.Hex() + "_lucid"
}

// At returns the color at v: the colormap color with its opacity scaled
// linearly from transparent at Min to opaque at Max.
func (l *Lucid) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, palette.ErrNaN
	} else if v < l.min {
		return nil, palette.ErrUnderflow
	} else if v > l.max {
		return nil, palette.ErrOverflow
	}
	t := 1.0
	if l.min < l.max {
		t = (v - l.min) / (l.max - l.min)
	}
	return color.NRGBA{R: l.r, G: l.g, B: l.b, A: uint8(t*255.0 + 0.5)}, nil
}

// Min returns the value mapped to fully transparent.
func (l *Lucid) Min() float64 { return l.min }

// SetMin sets the value mapped to fully transparent.
func (l *Lucid) SetMin(v float64) { l.min = v }

// Max returns the value mapped to fully opaque.
func (l *Lucid) Max() float64 { return l.max }

// SetMax sets the value mapped to fully opaque.
func (l *Lucid) SetMax(v float64) { l.max = v }

// Palette divides the colormap into n equally spaced opacities.
func (l *Lucid) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		t := 0.0
		if 1 < n {
			t = float64(i) / float64(n-1)
		}
		colors[i] = color.NRGBA{R: l.r, G: l.g, B: l.b, A: uint8(t*255.0 + 0.5)}
	}
	return lucidPalette(colors)
}

type lucidPalette []color.Color

func (p lucidPalette) Colors() []color.Color { return p }

// ParseColor parses a hex color specification such as "#1f77b4".
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
