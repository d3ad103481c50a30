package figkit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/ps"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"
)

// SaveOptions control WriteFig, SaveFig and MeasureFig. The zero value takes
// the format and resolution from the configuration.
type SaveOptions struct {
	Format  string  // output format, overrides Config.Format
	DPI     float64 // raster resolution in dots per inch, overrides Config.DPI
	Creator string  // creator metadata, defaults to the git HEAD revision
	Minify  bool    // minify svg output
}

// fill resolves the zero values against the configuration and the git
// revision, so that every render of one save or correction run uses the same
// options.
func (o *SaveOptions) fill(cfg *Config) SaveOptions {
	var v SaveOptions
	if o != nil {
		v = *o
	}
	if v.Format == "" {
		v.Format = cfg.Format
	}
	if v.DPI == 0.0 {
		v.DPI = cfg.DPI
	}
	if v.Creator == "" {
		v.Creator = gitRevision()
	}
	return v
}

// Formats whose creator metadata is written by exiftool rather than embedded
// directly.
var exiftoolFormats = map[string]bool{"jpg": true, "jpeg": true, "tif": true, "tiff": true}

var gitRevision = sync.OnceValue(func() string {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
})

func hasExiftool() bool {
	_, err := exec.LookPath("exiftool")
	return err == nil
}

// WriteFig renders the figure to w in the requested format. The creator (by
// default the git HEAD revision of the working directory, when in a
// repository) is embedded as Creator metadata for the formats that carry
// any: pdf, svg, ps, eps and png. It can be retrieved with "exiftool
// -Creator file" or, for svg files, under metadata/RDF/Work/creator/Agent/title.
func WriteFig(cfg *Config, fig *Figure, w io.Writer, opts *SaveOptions) error {
	o := opts.fill(cfg)
	c, err := fig.Canvas()
	if err != nil {
		return err
	}
	resolution := canvas.DPI(o.DPI)

	switch format := strings.ToLower(o.Format); format {
	case "svg":
		var buf bytes.Buffer
		r := svg.New(&buf, c.W, c.H, nil)
		c.RenderTo(r)
		if err := r.Close(); err != nil {
			return err
		}
		data := buf.Bytes()
		if o.Minify {
			// minify before splicing the metadata, the minifier strips
			// metadata elements
			var min bytes.Buffer
			m := minify.New()
			m.AddFunc("image/svg+xml", minifysvg.Minify)
			if err := m.Minify("image/svg+xml", &min, bytes.NewReader(data)); err != nil {
				return err
			}
			data = min.Bytes()
		}
		if o.Creator != "" {
			data = svgSetCreator(data, o.Creator)
		}
		_, err = w.Write(data)
		return err
	case "pdf":
		r := pdf.New(w, c.W, c.H, nil)
		if o.Creator != "" {
			r.SetInfo("", "", "", "", o.Creator)
		}
		c.RenderTo(r)
		return r.Close()
	case "ps", "eps":
		popts := ps.DefaultOptions
		if format == "eps" {
			popts.Format = ps.EncapsulatedPostScript
		}
		var buf bytes.Buffer
		r := ps.New(&buf, c.W, c.H, &popts)
		c.RenderTo(r)
		if err := r.Close(); err != nil {
			return err
		}
		data := buf.Bytes()
		if o.Creator != "" {
			data = psSetCreator(data, o.Creator)
		}
		_, err = w.Write(data)
		return err
	case "png":
		var buf bytes.Buffer
		if err := rasterizer.PNGWriter(resolution)(&buf, c); err != nil {
			return err
		}
		data := buf.Bytes()
		if o.Creator != "" {
			if data, err = pngSetCreator(data, o.Creator); err != nil {
				return err
			}
		}
		_, err = w.Write(data)
		return err
	case "jpg", "jpeg":
		return rasterizer.JPGWriter(resolution, nil)(w, c)
	case "gif":
		return rasterizer.GIFWriter(resolution, nil)(w, c)
	case "tif", "tiff":
		return rasterizer.TIFFWriter(resolution, nil)(w, c)
	}
	return fmt.Errorf("%w: %q", ErrFormat, o.Format)
}

// SaveFig renders the figure to a file and returns the destination path.
//
// An empty dest uses the figure label as file name; relative destinations
// are anchored at Config.SaveDir and the format extension is appended.
// Parent directories are created as needed. For jpeg and tiff files the
// creator metadata is tagged through exiftool when available on PATH; when
// tagging fails the path of the written file is returned with the error.
func SaveFig(cfg *Config, fig *Figure, dest string, opts *SaveOptions) (string, error) {
	o := opts.fill(cfg)
	format := strings.ToLower(o.Format)

	if dest == "" {
		dest = fig.Label
	}
	if dest == "" {
		return "", errors.New("figkit: no destination and figure has no label")
	}
	path := expandUser(dest)
	if !filepath.IsAbs(path) {
		path = filepath.Join(expandUser(cfg.SaveDir), path)
	}
	path += "." + format
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteFig(cfg, fig, f, &o); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	slog.Info("saved figure", "label", fig.Label, "path", path)

	if o.Creator != "" && exiftoolFormats[format] && hasExiftool() {
		cmd := exec.Command("exiftool", "-overwrite_original", "-Creator="+o.Creator, path)
		if out, err := cmd.CombinedOutput(); err != nil {
			// the figure itself was written, return the path so callers can
			// keep or remove it
			return path, fmt.Errorf("figkit: exiftool: %w: %s", err, out)
		}
	}
	return path, nil
}

// expandUser resolves a leading ~ to the home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
