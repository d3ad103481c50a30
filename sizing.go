package figkit

import (
	"math"
)

// maxRounds is the number of render-measure rounds SetFigSize performs at
// most. Each round is a full render-encode-decode trip, so the bound keeps
// the cost of a correction predictable.
const maxRounds = 2

// SetFigSize adjusts the draw-time size of fig so that its rendered output
// measures target. Contrary to SetSize, which fixes the draw-time size, this
// fixes the save-time size by guessing appropriate draw-time values; the
// result depends on the output format.
//
// A zero target keeps the current save-time size of the figure. The figure
// is left at the returned draw-time size. The boolean reports whether the
// last measurement matched target; with a false result the returned size is
// a best effort extrapolation.
func SetFigSize(cfg *Config, fig *Figure, target Size, opts *SaveOptions) (Size, bool, error) {
	if target == (Size{}) {
		target = fig.Size()
	}
	draw, converged, err := correctSize(target, func(size Size) (Size, error) {
		fig.SetSize(size)
		return MeasureFig(cfg, fig, opts)
	})
	if err != nil {
		return Size{}, false, err
	}
	fig.SetSize(draw)
	return draw, converged, nil
}

// correctSize searches a draw size whose measurement is target, starting
// from target itself and interpolating linearly between the two most recent
// (draw, show) samples, per dimension. The relation between draw and show
// sizes is affine up to encoder rounding, so a couple of rounds suffice.
func correctSize(target Size, measure func(Size) (Size, error)) (Size, bool, error) {
	draw := []Size{{}, target}
	show := []Size{{}}
	for range maxRounds {
		shown, err := measure(draw[len(draw)-1])
		if err != nil {
			return Size{}, false, err
		}
		show = append(show, shown)
		if closeTo(shown, target) {
			return draw[len(draw)-1], true, nil
		}
		draw = append(draw, interpolate(draw, show, target))
	}
	return draw[len(draw)-1], false, nil
}

// interpolate proposes the next draw size from the last two samples. A
// dimension in which the two measurements coincide admits no secant slope
// and keeps its last proposed value.
func interpolate(draw, show []Size, target Size) Size {
	d0, d1 := draw[len(draw)-2], draw[len(draw)-1]
	s0, s1 := show[len(show)-2], show[len(show)-1]
	next := d1
	if ds := s1.W - s0.W; ds != 0.0 {
		next.W = d1.W + (target.W-s1.W)*(d1.W-d0.W)/ds
	}
	if ds := s1.H - s0.H; ds != 0.0 {
		next.H = d1.H + (target.H-s1.H)*(d1.H-d0.H)/ds
	}
	return next
}

// closeTo reports whether a matches b within measurement tolerance.
func closeTo(a, b Size) bool {
	const rtol, atol = 1e-5, 1e-8
	return math.Abs(a.W-b.W) <= atol+rtol*math.Abs(b.W) &&
		math.Abs(a.H-b.H) <= atol+rtol*math.Abs(b.H)
}
