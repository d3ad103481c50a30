package figkit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style is a style sheet: a flat mapping from option name to value, usually
// read from a YAML file. Recognized options:
//
//	figure.width       reference width in millimeters
//	figure.height      reference height in millimeters
//	savefig.format     default output format
//	savefig.dpi        raster resolution in dots per inch
//	savefig.directory  anchor for relative save destinations
//
// savefig.directory is deliberately settable from a style sheet, which
// rc-style parameter stores usually disallow.
type Style map[string]interface{}

// LoadStyle reads a style sheet from a YAML file.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	style := Style{}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return nil, fmt.Errorf("figkit: style sheet %s: %w", path, err)
	}
	return style, nil
}

// Use applies style sheets onto the configuration in order, later sheets
// overriding earlier ones. With reset, the configuration is first restored
// to the defaults. Unknown option names are an error.
func (cfg *Config) Use(reset bool, styles ...Style) error {
	if reset {
		*cfg = *DefaultConfig()
	}
	for _, style := range styles {
		for name, val := range style {
			if err := cfg.set(name, val); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cfg *Config) set(name string, val interface{}) error {
	switch name {
	case "figure.width":
		return setFloat(&cfg.FigSize.W, name, val)
	case "figure.height":
		return setFloat(&cfg.FigSize.H, name, val)
	case "savefig.dpi":
		return setFloat(&cfg.DPI, name, val)
	case "savefig.format":
		return setString(&cfg.Format, name, val)
	case "savefig.directory":
		return setString(&cfg.SaveDir, name, val)
	}
	return fmt.Errorf("figkit: unknown style option %q", name)
}

func setFloat(dst *float64, name string, val interface{}) error {
	switch v := val.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	default:
		return fmt.Errorf("figkit: style option %q: expected number, got %T", name, val)
	}
	return nil
}

func setString(dst *string, name string, val interface{}) error {
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("figkit: style option %q: expected string, got %T", name, val)
	}
	*dst = s
	return nil
}
