package figkit

import (
	"fmt"

	"github.com/tdewolff/canvas"
)

// Loc anchors a panel label inside its panel rectangle.
type Loc int

const (
	Center Loc = iota
	NorthWest
	North
	NorthEast
	West
	East
	SouthWest
	South
	SouthEast
)

func (l Loc) aligns() (canvas.TextAlign, canvas.TextAlign) {
	halign, valign := canvas.Center, canvas.Center
	switch l {
	case NorthWest, West, SouthWest:
		halign = canvas.Left
	case NorthEast, East, SouthEast:
		halign = canvas.Right
	}
	switch l {
	case NorthWest, North, NorthEast:
		valign = canvas.Top
	case SouthWest, South, SouthEast:
		valign = canvas.Bottom
	}
	return halign, valign
}

// Enumerator yields the i-th panel label.
type Enumerator func(i int) string

// Letters enumerates panels a, b, c, ... and aa, ab, ... beyond z.
func Letters(i int) string {
	s := ""
	for {
		s = string(rune('a'+i%26)) + s
		if i /= 26; i == 0 {
			return s
		}
		i--
	}
}

// Numbers enumerates panels 1, 2, 3, ...
func Numbers(i int) string {
	return fmt.Sprintf("%d", i+1)
}

// EnumPanels labels the panels (subfigures) of a figure, drawing an
// enumerated label anchored at loc inside each panel rectangle. An empty
// format defaults to "(%s)" and a nil enum to Letters. The drawn labels are
// returned.
func EnumPanels(ctx *canvas.Context, face *canvas.FontFace, panels []canvas.Rect, loc Loc, format string, enum Enumerator) []string {
	labels := panelLabels(len(panels), format, enum)
	halign, valign := loc.aligns()
	for i, r := range panels {
		text := canvas.NewTextBox(face, labels[i], r.W(), r.H(), halign, valign, nil)
		ctx.DrawText(r.X0, r.Y1, text)
	}
	return labels
}

func panelLabels(n int, format string, enum Enumerator) []string {
	if format == "" {
		format = "(%s)"
	}
	if enum == nil {
		enum = Letters
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf(format, enum(i))
	}
	return labels
}
