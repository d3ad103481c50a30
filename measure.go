package figkit

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	_ "golang.org/x/image/tiff"
)

// Unit conversion constants matching the values formerly exported by the
// canvas package.
const (
	mmPerPt   = 0.3527777777777778
	mmPerInch = 25.4
)

// ErrFormat is returned when an output format has no size decoding support.
var ErrFormat = errors.New("figkit: unsupported format")

// Formats supported by MeasureFig and DecodeSize.
var SupportedFormats = []string{"svg", "pdf", "ps", "eps", "png", "jpg", "jpeg", "gif", "tif", "tiff"}

func supportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// MeasureFig measures the save-time size of a figure. Contrary to
// Figure.Size, which returns the draw-time values, this renders the figure
// to the requested format in memory and decodes the size recorded in the
// output, which may differ by encoder rounding. The figure itself is not
// modified.
func MeasureFig(cfg *Config, fig *Figure, opts *SaveOptions) (Size, error) {
	o := opts.fill(cfg)
	format := strings.ToLower(o.Format)
	if !supportedFormat(format) {
		return Size{}, fmt.Errorf("%w: %q", ErrFormat, o.Format)
	}
	var buf bytes.Buffer
	if err := WriteFig(cfg, fig, &buf, &o); err != nil {
		return Size{}, err
	}
	return DecodeSize(buf.Bytes(), format, canvas.DPI(o.DPI))
}

// DecodeSize decodes the figure size recorded in an encoded figure, in
// millimeters. Vector formats record physical dimensions directly; for
// raster formats the pixel dimensions are divided by the given resolution.
func DecodeSize(data []byte, format string, resolution canvas.Resolution) (Size, error) {
	switch strings.ToLower(format) {
	case "svg":
		return svgSize(data)
	case "pdf":
		return pdfSize(data)
	case "ps", "eps":
		return psSize(data)
	case "png", "jpg", "jpeg", "gif", "tif", "tiff":
		config, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return Size{}, fmt.Errorf("figkit: decode image size: %w", err)
		}
		return Size{
			W: float64(config.Width) / resolution.DPMM(),
			H: float64(config.Height) / resolution.DPMM(),
		}, nil
	}
	return Size{}, fmt.Errorf("%w: %q", ErrFormat, format)
}

// svgSize reads the width and height attributes of the svg root element.
func svgSize(data []byte) (Size, error) {
	l := xml.NewLexer(parse.NewInputBytes(data))
	insvg := false
	var size Size
	var haveW, haveH bool
	for {
		tt, tag := l.Next()
		switch tt {
		case xml.ErrorToken:
			return Size{}, errors.New("figkit: no svg dimensions found")
		case xml.StartTagToken:
			insvg = string(tag[1:]) == "svg"
		case xml.AttributeToken:
			if !insvg {
				continue
			}
			val := unquote(l.AttrVal())
			switch string(l.Text()) {
			case "width":
				w, err := svgLength(string(val))
				if err != nil {
					return Size{}, err
				}
				size.W, haveW = w, true
			case "height":
				h, err := svgLength(string(val))
				if err != nil {
					return Size{}, err
				}
				size.H, haveH = h, true
			}
			if haveW && haveH {
				return size, nil
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if insvg {
				return Size{}, errors.New("figkit: no svg dimensions found")
			}
		}
	}
}

// unquote strips the quotes the lexer keeps around attribute values.
// Unquoted values, legal in documents from lenient producers, pass through.
func unquote(val []byte) []byte {
	if 2 <= len(val) && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
		return val[1 : len(val)-1]
	}
	return val
}

// svgLength converts an svg length such as "100mm" or "288pt" to
// millimeters. Unitless values are user units at 96 dpi.
func svgLength(v string) (float64, error) {
	nn, _ := parse.Dimension([]byte(v))
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		return 0.0, fmt.Errorf("figkit: bad svg dimension %q", v)
	}
	switch strings.ToLower(v[nn:]) {
	case "mm":
		return num, nil
	case "cm":
		return num * 10.0, nil
	case "in":
		return num * mmPerInch, nil
	case "pc":
		return num * 12.0 * mmPerPt, nil
	case "pt":
		return num * mmPerPt, nil
	case "", "px":
		return num * mmPerInch / 96.0, nil
	}
	return 0.0, fmt.Errorf("figkit: bad svg dimension %q", v)
}

// pdfSize reads the MediaBox of the first page. Page dictionaries are
// written in plain text even in compressed documents.
func pdfSize(data []byte) (Size, error) {
	i := bytes.Index(data, []byte("/MediaBox"))
	if i == -1 {
		return Size{}, errors.New("figkit: no pdf MediaBox found")
	}
	rest := data[i+len("/MediaBox"):]
	j := bytes.IndexByte(rest, '[')
	k := bytes.IndexByte(rest, ']')
	if j == -1 || k == -1 || k < j {
		return Size{}, errors.New("figkit: malformed pdf MediaBox")
	}
	box, err := parseBox(string(rest[j+1 : k]))
	if err != nil {
		return Size{}, fmt.Errorf("figkit: malformed pdf MediaBox: %w", err)
	}
	return Size{
		W: (box[2] - box[0]) * mmPerPt,
		H: (box[3] - box[1]) * mmPerPt,
	}, nil
}

// psSize reads the document bounding box from the DSC comments, preferring
// the high resolution variant when present.
func psSize(data []byte) (Size, error) {
	var box []float64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "%%HiResBoundingBox:"); ok {
			if b, err := parseBox(v); err == nil {
				box = b
				break
			}
		} else if v, ok := strings.CutPrefix(line, "%%BoundingBox:"); ok && box == nil {
			if b, err := parseBox(v); err == nil {
				box = b
			}
		}
	}
	if box == nil {
		return Size{}, errors.New("figkit: no postscript bounding box found")
	}
	return Size{
		W: (box[2] - box[0]) * mmPerPt,
		H: (box[3] - box[1]) * mmPerPt,
	}, nil
}

// parseBox parses four whitespace-separated numbers: llx lly urx ury.
func parseBox(s string) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return nil, fmt.Errorf("expected 4 coordinates, got %d", len(fields))
	}
	box := make([]float64, 4)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		box[i] = v
	}
	return box, nil
}
