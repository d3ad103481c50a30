package figkit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/test"
)

// testFigure draws a plain rectangle, enough to exercise every renderer
// without loading fonts.
func testFigure(size Size) *Figure {
	return New("test", size, func(ctx *canvas.Context) {
		ctx.SetFillColor(color.RGBA{128, 0, 0, 255})
		ctx.DrawPath(1.0, 1.0, canvas.Rectangle(5.0, 3.0))
	})
}

func TestSVGSize(t *testing.T) {
	var tts = []struct {
		svg  string
		size Size
	}{
		{`<svg version="1.1" width="100mm" height="60mm" viewBox="0 0 100 60"></svg>`, Size{100.0, 60.0}},
		{`<svg width="7.2pt" height="144pt"></svg>`, Size{7.2 * mmPerPt, 144.0 * mmPerPt}},
		{`<svg width="2in" height="1in"></svg>`, Size{2.0 * mmPerInch, mmPerInch}},
		{`<svg width="96" height="48"></svg>`, Size{mmPerInch, mmPerInch / 2.0}},
		{`<metadata></metadata><svg width="1cm" height="2cm"></svg>`, Size{10.0, 20.0}},
		{`<svg width='50mm' height='30mm'></svg>`, Size{50.0, 30.0}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			size, err := svgSize([]byte(tt.svg))
			test.Error(t, err)
			test.Float(t, size.W, tt.size.W)
			test.Float(t, size.H, tt.size.H)
		})
	}

	_, err := svgSize([]byte(`<svg viewBox="0 0 10 10"></svg>`))
	test.That(t, err != nil, "expected error without dimensions")
}

func TestUnquote(t *testing.T) {
	var tts = []struct {
		val, s string
	}{
		{`"100mm"`, "100mm"},
		{`'100mm'`, "100mm"},
		{`100mm`, "100mm"}, // unquoted values pass through
		{`5`, "5"},
		{`"`, `"`},
		{``, ``},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.String(t, string(unquote([]byte(tt.val))), tt.s)
		})
	}
}

func TestPSSize(t *testing.T) {
	eps := "%!PS-Adobe-3.0 EPSF-3.0\n" +
		"%%Creator: test\n" +
		"%%BoundingBox: 0 0 288 173\n" +
		"%%HiResBoundingBox: 0 0 288.2835 172.9134\n" +
		"%%EndComments\n"
	size, err := psSize([]byte(eps))
	test.Error(t, err)
	test.Float(t, size.W, 288.2835*mmPerPt)
	test.Float(t, size.H, 172.9134*mmPerPt)

	// integer fallback without the high resolution variant
	size, err = psSize([]byte("%!PS-Adobe-3.0\n%%BoundingBox: 0 0 288 173\n"))
	test.Error(t, err)
	test.Float(t, size.W, 288.0*mmPerPt)

	_, err = psSize([]byte("%!PS-Adobe-3.0\n"))
	test.That(t, err != nil, "expected error without bounding box")
}

func TestPDFSize(t *testing.T) {
	pdf := "%PDF-1.7\n1 0 obj\n<< /Type /Page /MediaBox [0 0 283.46457 170.07874] /Parent 2 0 R >>\nendobj\n"
	size, err := pdfSize([]byte(pdf))
	test.Error(t, err)
	test.That(t, math.Abs(size.W-100.0) < 1e-4, "width is", size.W)
	test.That(t, math.Abs(size.H-60.0) < 1e-4, "height is", size.H)

	_, err = pdfSize([]byte("%PDF-1.7\n"))
	test.That(t, err != nil, "expected error without MediaBox")
}

func TestDecodeSizeRaster(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 400, 240))
	test.Error(t, png.Encode(&buf, img))

	size, err := DecodeSize(buf.Bytes(), "png", canvas.DPMM(4.0))
	test.Error(t, err)
	test.Float(t, size.W, 100.0)
	test.Float(t, size.H, 60.0)
}

func TestDecodeSizeUnsupported(t *testing.T) {
	_, err := DecodeSize([]byte{}, "webp", canvas.DPMM(1.0))
	test.That(t, errors.Is(err, ErrFormat), "expected ErrFormat, got", err)
}

func TestMeasureFig(t *testing.T) {
	cfg := DefaultConfig()
	fig := testFigure(Size{100.0, 60.0})

	for _, format := range []string{"svg", "pdf", "png"} {
		t.Run(format, func(t *testing.T) {
			size, err := MeasureFig(cfg, fig, &SaveOptions{Format: format})
			test.Error(t, err)
			test.That(t, math.Abs(size.W-100.0) < 0.5, "width is", size.W)
			test.That(t, math.Abs(size.H-60.0) < 0.5, "height is", size.H)
		})
	}
}

func TestMeasureFigUnsupported(t *testing.T) {
	cfg := DefaultConfig()
	renders := 0
	fig := New("test", Size{10.0, 10.0}, func(*canvas.Context) { renders++ })

	_, err := MeasureFig(cfg, fig, &SaveOptions{Format: "webp"})
	test.That(t, errors.Is(err, ErrFormat), "expected ErrFormat, got", err)
	test.T(t, renders, 0)
}

func TestSetFigSize(t *testing.T) {
	cfg := DefaultConfig()
	fig := testFigure(Size{30.0, 20.0})

	draw, converged, err := SetFigSize(cfg, fig, Size{100.0, 60.0}, &SaveOptions{Format: "svg"})
	test.Error(t, err)
	test.That(t, converged, "expected convergence")
	test.T(t, fig.Size(), draw)

	size, err := MeasureFig(cfg, fig, &SaveOptions{Format: "svg"})
	test.Error(t, err)
	test.That(t, math.Abs(size.W-100.0) < 1e-3, "width is", size.W)
	test.That(t, math.Abs(size.H-60.0) < 1e-3, "height is", size.H)
}

func TestSetFigSizeRaster(t *testing.T) {
	// raster rounding may prevent exact convergence, but the result must
	// stay finite and the figure must be left at the returned size
	cfg := DefaultConfig()
	fig := testFigure(Size{30.0, 20.0})

	draw, _, err := SetFigSize(cfg, fig, Size{100.0, 60.0}, &SaveOptions{Format: "png"})
	test.Error(t, err)
	test.That(t, !math.IsNaN(draw.W) && !math.IsInf(draw.W, 0), "width is", draw.W)
	test.That(t, math.Abs(draw.W-100.0) < 1.0, "width is", draw.W)
	test.T(t, fig.Size(), draw)
}
