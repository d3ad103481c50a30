// Package grids implements 1-dimensional grids of evenly spaced points, as
// used for indexing lattice sites or time-evolution samples.
package grids

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid1D is a uniform partition of an interval [a, b] into n subintervals.
// Each grid point is the center of one subinterval. The zero value is not a
// valid grid; use New or one of the other constructors.
type Grid1D struct {
	N        int        // number of points/subintervals
	Step     float64    // spacing between the points, (b - a) / n
	Extent   [2]float64 // lower and upper extremals of the interval
	Periodic bool       // open segment (false) or closed ring (true)
}

// Spec describes a grid to construct. At least one of N and Extent must be
// given. Extent is either the interval [a, b], or its length (b - a), which
// is placed via Origin and Anchor: the interval spans Extent[0] with Origin
// sitting at relative position Anchor in it. A missing N follows from Step,
// which defaults to 1 and is ignored when both N and Extent are given.
type Spec struct {
	N        int
	Extent   []float64 // nil, {size} or {a, b}
	Step     float64
	Origin   float64
	Anchor   float64
	Periodic bool
}

// New constructs the grid described by spec.
func New(spec Spec) (Grid1D, error) {
	step := spec.Step
	if step == 0.0 {
		step = 1.0 // ignored if n and extent are given
	}

	var extent [2]float64
	switch len(spec.Extent) {
	case 0:
		if spec.N == 0 {
			return Grid1D{}, fmt.Errorf("grids: at least one of n and extent must be given")
		}
		size := step * float64(spec.N)
		extent = place(size, spec.Origin, spec.Anchor)
	case 1:
		extent = place(spec.Extent[0], spec.Origin, spec.Anchor)
	case 2:
		extent = [2]float64{spec.Extent[0], spec.Extent[1]}
	default:
		return Grid1D{}, fmt.Errorf("grids: extent must have at most 2 elements, got %d", len(spec.Extent))
	}
	if extent[1] <= extent[0] {
		return Grid1D{}, fmt.Errorf("grids: empty interval [%g, %g]", extent[0], extent[1])
	}

	size := extent[1] - extent[0]
	n := spec.N
	if n == 0 {
		var err error
		if n, err = asInt(size / step); err != nil {
			return Grid1D{}, fmt.Errorf("grids: interval of size %g does not hold a whole number of steps %g", size, step)
		}
	}
	if n < 1 {
		return Grid1D{}, fmt.Errorf("grids: need at least one point, got n=%d", n)
	}
	return Grid1D{
		N:        n,
		Step:     size / float64(n),
		Extent:   extent,
		Periodic: spec.Periodic,
	}, nil
}

// place converts an interval size to extremals: origin sits at relative
// position anchor in the interval.
func place(size, origin, anchor float64) [2]float64 {
	return [2]float64{origin - anchor*size, origin + (1.0-anchor)*size}
}

// asInt converts a float that must already be integral.
func asInt(f float64) (int, error) {
	i := math.Round(f)
	if math.Abs(i-f) > 1e-9*math.Max(1.0, math.Abs(f)) {
		return 0, fmt.Errorf("grids: %g is not integral", f)
	}
	return int(i), nil
}

// FromPoints constructs the grid whose points are the given evenly spaced
// values.
func FromPoints(points []float64) (Grid1D, error) {
	if len(points) < 2 {
		return Grid1D{}, fmt.Errorf("grids: need at least 2 points, got %d", len(points))
	}
	step := points[1] - points[0]
	if step <= 0.0 {
		return Grid1D{}, fmt.Errorf("grids: points must be increasing")
	}
	for i := 2; i < len(points); i++ {
		if d := points[i] - points[i-1]; math.Abs(d-step) > 1e-9*step {
			return Grid1D{}, fmt.Errorf("grids: points are not evenly spaced")
		}
	}
	return New(Spec{
		N:      len(points),
		Extent: []float64{points[0] - 0.5*step, points[len(points)-1] + 0.5*step},
	})
}

// Points returns the grid points, the centers of the subintervals of the
// partition.
func (g Grid1D) Points() []float64 {
	points := make([]float64, g.N)
	if g.N == 1 {
		points[0] = g.Extent[0] + 0.5*g.Step
		return points
	}
	return floats.Span(points, g.Extent[0]+0.5*g.Step, g.Extent[1]-0.5*g.Step)
}

// Size returns the length of the interval, (b - a).
func (g Grid1D) Size() float64 {
	return g.Extent[1] - g.Extent[0]
}

// Index returns the index of the grid point closest to val, the index of the
// subinterval containing it. On a periodic grid indices wrap around; on an
// open one values outside the interval are an error.
func (g Grid1D) Index(val float64) (int, error) {
	if !g.Periodic && (val < g.Extent[0] || val > g.Extent[1]) {
		return 0, fmt.Errorf("grids: %g is outside the grid interval [%g, %g]", val, g.Extent[0], g.Extent[1])
	}
	i := int(math.Floor((val - g.Extent[0]) / g.Step))
	if g.Periodic {
		if i %= g.N; i < 0 {
			i += g.N
		}
	} else if i > g.N-1 { // val == b lands in the last subinterval
		i = g.N - 1
	}
	return i, nil
}

// Dual returns the dual grid, whose points are the partition bounds of g.
// Without extremals the bounds of the full interval are discarded.
func (g Grid1D) Dual(extremals bool) Grid1D {
	n := g.N - 1
	if extremals {
		n += 2
	}
	dual, _ := New(Spec{
		N:      n,
		Step:   g.Step,
		Origin: 0.5 * (g.Extent[0] + g.Extent[1]),
		Anchor: 0.5,
	})
	return dual
}

// RGFlow returns the grid produced by a renormalization-group transformation
// of g: the same interval coarse grained by the given factor, the ratio of
// the point counts before and after the transformation.
func (g Grid1D) RGFlow(factor float64) (Grid1D, error) {
	if factor == 1.0 {
		return g, nil
	}
	return New(Spec{
		N:        int(math.Round(float64(g.N) / factor)),
		Extent:   []float64{g.Extent[0], g.Extent[1]},
		Periodic: g.Periodic,
	})
}

// BroadcastTo broadcasts g to a grid with n points, via a duality and a
// subsequent RG transformation. The broadcast must be unambiguous: exactly
// one of g, its inner dual and its outer dual must have a point count that
// is a multiple or divisor of n.
func (g Grid1D) BroadcastTo(n int) (Grid1D, error) {
	type candidate struct {
		factor float64
		delta  int
	}
	var cands []candidate
	for _, delta := range []int{0, +1, -1} {
		if f, ok := rgFactor(n, g.N+delta); ok {
			cands = append(cands, candidate{f, delta})
		}
	}
	if len(cands) != 1 {
		return Grid1D{}, fmt.Errorf("grids: unbroadcastable from n=%d to n=%d", g.N, n)
	}

	broadcasted := g
	if cands[0].delta != 0 {
		broadcasted = broadcasted.Dual(cands[0].delta > 0)
	}
	return broadcasted.RGFlow(cands[0].factor)
}

// rgFactor returns nOld/nNew when one divides the other.
func rgFactor(nNew, nOld int) (float64, bool) {
	if nNew < 1 || nOld < 1 || (nOld%nNew != 0 && nNew%nOld != 0) {
		return 0.0, false
	}
	return float64(nOld) / float64(nNew), true
}
