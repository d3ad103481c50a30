package figkit

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestCorrectSizeAffine(t *testing.T) {
	var tts = []struct {
		a, b   float64
		target Size
	}{
		{0.9, 0.0, Size{3.0, 2.0}},
		{1.1, 0.0, Size{100.0, 60.0}},
		{0.8, 5.0, Size{80.0, 50.0}},
		{2.0, -1.0, Size{40.0, 25.0}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			calls := 0
			measure := func(s Size) (Size, error) {
				calls++
				return Size{tt.a*s.W + tt.b, tt.a*s.H + tt.b}, nil
			}

			draw, _, err := correctSize(tt.target, measure)
			test.Error(t, err)
			test.That(t, calls <= 2, "measure called", calls, "times")

			// the returned draw size hits the target exactly under any
			// affine measurement model
			test.That(t, math.Abs(tt.a*draw.W+tt.b-tt.target.W) < 1e-9, "width off target")
			test.That(t, math.Abs(tt.a*draw.H+tt.b-tt.target.H) < 1e-9, "height off target")
		})
	}
}

func TestCorrectSizeScaleDown(t *testing.T) {
	// round 1 measures (2.7, 1.8), round 2 lands on target
	calls := 0
	measure := func(s Size) (Size, error) {
		calls++
		return Size{0.9 * s.W, 0.9 * s.H}, nil
	}

	draw, converged, err := correctSize(Size{3.0, 2.0}, measure)
	test.Error(t, err)
	test.T(t, calls, 2)
	test.That(t, converged, "expected convergence")
	test.Float(t, draw.W, 3.0/0.9)
	test.Float(t, draw.H, 2.0/0.9)
}

func TestCorrectSizeFixedPoint(t *testing.T) {
	// an exact measurement stops after a single round
	calls := 0
	measure := func(s Size) (Size, error) {
		calls++
		return s, nil
	}

	draw, converged, err := correctSize(Size{1.0, 1.0}, measure)
	test.Error(t, err)
	test.T(t, calls, 1)
	test.That(t, converged, "expected convergence")
	test.T(t, draw, Size{1.0, 1.0})
}

func TestCorrectSizeConstantMeasure(t *testing.T) {
	// a measurement that never moves gives no slope to interpolate on; the
	// corrector must hold its last proposal instead of dividing by zero
	calls := 0
	measure := func(Size) (Size, error) {
		calls++
		return Size{1.0, 1.0}, nil
	}

	draw, converged, err := correctSize(Size{3.0, 2.0}, measure)
	test.Error(t, err)
	test.T(t, calls, 2)
	test.That(t, !converged, "expected no convergence")
	test.That(t, !math.IsNaN(draw.W) && !math.IsInf(draw.W, 0), "width is", draw.W)
	test.That(t, !math.IsNaN(draw.H) && !math.IsInf(draw.H, 0), "height is", draw.H)
}

func TestCorrectSizeDegenerateDimension(t *testing.T) {
	// height measures constant while width behaves; the held height must
	// not poison the width correction
	measure := func(s Size) (Size, error) {
		return Size{0.9 * s.W, 7.0}, nil
	}

	draw, converged, err := correctSize(Size{3.0, 2.0}, measure)
	test.Error(t, err)
	test.That(t, !converged, "expected no convergence")
	test.Float(t, draw.W, 3.0/0.9)
	test.That(t, !math.IsNaN(draw.H) && !math.IsInf(draw.H, 0), "height is", draw.H)
}

func TestCorrectSizeMeasureError(t *testing.T) {
	measure := func(Size) (Size, error) {
		return Size{}, fmt.Errorf("render failed")
	}

	_, _, err := correctSize(Size{3.0, 2.0}, measure)
	test.That(t, err != nil, "expected error")
}

func TestRelSize(t *testing.T) {
	cfg := &Config{FigSize: Size{160.0, 100.0}}

	var tts = []struct {
		width, height, ratio float64
		size                 Size
	}{
		{0.5, 0.0, 0.0, Size{80.0, 80.0 * GoldenRatio}},
		{0.0, 0.5, 0.0, Size{50.0 / GoldenRatio, 50.0}},
		{0.5, 0.5, 0.0, Size{80.0, 50.0}},
		{1.0, 0.0, 1.0, Size{160.0, 160.0}},
		{0.0, 1.0, 0.5, Size{200.0, 100.0}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			size, err := cfg.RelSize(tt.width, tt.height, tt.ratio)
			test.Error(t, err)
			test.Float(t, size.W, tt.size.W)
			test.Float(t, size.H, tt.size.H)
		})
	}

	_, err := cfg.RelSize(0.0, 0.0, 0.0)
	test.That(t, err != nil, "expected error without dimensions")
}
