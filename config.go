package figkit

import "errors"

var errRelSize = errors.New("figkit: either width or height must be given")

// Config carries the ambient options read by the measurement, sizing and
// export helpers. It replaces a process-wide parameter store: every helper
// takes the configuration it uses explicitly.
type Config struct {
	FigSize Size    // reference size for RelSize, in millimeters
	SaveDir string  // anchor for relative save destinations
	Format  string  // default output format
	DPI     float64 // raster output resolution, in dots per inch
}

// DefaultConfig returns the built-in defaults: a 160x100 mm reference size,
// png output at 96 dpi and the working directory as save anchor.
func DefaultConfig() *Config {
	return &Config{
		FigSize: Size{W: 160.0, H: 100.0},
		Format:  "png",
		DPI:     96.0,
	}
}

// GoldenRatio is the default height to width ratio of RelSize.
const GoldenRatio = 0.618

// RelSize converts a size expressed as fractions of the configured reference
// size to millimeters. For figures with a fixed aspect ratio the result is
// to be interpreted as a maximum size.
//
// A zero width or height means unset; the missing dimension follows from
// ratio, which defaults to the golden ratio and is ignored when both
// dimensions are given. At least one dimension must be given.
func (cfg *Config) RelSize(width, height, ratio float64) (Size, error) {
	if width == 0.0 && height == 0.0 {
		return Size{}, errRelSize
	}
	if ratio == 0.0 {
		ratio = GoldenRatio
	}
	w := width * cfg.FigSize.W
	h := height * cfg.FigSize.H
	if width == 0.0 {
		w = h / ratio
	}
	if height == 0.0 {
		h = w * ratio
	}
	return Size{w, h}, nil
}
