package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// Backend selects the imaging backend used for decode/encode.
type Backend string

const (
	// BackendStdlib uses image/jpeg, image/png, and x/image/tiff.
	BackendStdlib Backend = "stdlib"
	// BackendVips uses libvips via govips; requires libvips on the host.
	BackendVips Backend = "vips"
)

// Config is the top-level configuration struct. All fields have safe defaults
// so callers can start with Default() and override only what they need.
type Config struct {
	// Watermark appearance.
	FontSize   float64 // point size; default 24
	Color      string  // CSS-style color spec; default "white"
	Anchor     string  // one of the nine anchor keywords; default "bottom-right"
	DateFormat string  // strftime pattern; default "%Y-%m-%d"

	// FontPath optionally names a TTF file. When empty or unloadable the
	// embedded Go Regular font is used, then a builtin bitmap face as the
	// last resort; both fallbacks are non-fatal.
	FontPath string

	// Encoding.
	JPEGQuality int // 1-100; default 95
	Backend     Backend

	// SortFiles makes batch runs enumerate files in sorted order. Off by
	// default: directory listing order is an explicit non-guarantee.
	SortFiles bool

	// Logging.
	LogLevel string // "debug", "info", "warn", "error"
}

// validAnchors mirrors the closed anchor set; kept here so config validation
// does not depend on core.
var validAnchors = map[string]bool{
	"top-left": true, "top-center": true, "top-right": true,
	"middle-left": true, "center": true, "middle-right": true,
	"bottom-left": true, "bottom-center": true, "bottom-right": true,
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		FontSize:    24,
		Color:       "white",
		Anchor:      "bottom-right",
		DateFormat:  "%Y-%m-%d",
		JPEGQuality: 95,
		Backend:     BackendStdlib,
		LogLevel:    "info",
	}
}

// Validate returns an error if the configuration is inconsistent. Anchor
// validation here is the strict outer gate; the resolver itself falls back
// to bottom-right when bypassed.
func (c Config) Validate() error {
	if c.FontSize <= 0 {
		return errors.New("config: FontSize must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return errors.New("config: JPEGQuality must be between 1 and 100")
	}
	if !validAnchors[c.Anchor] {
		return fmt.Errorf("config: unknown anchor %q", c.Anchor)
	}
	if c.Backend != BackendStdlib && c.Backend != BackendVips {
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.DateFormat == "" {
		return errors.New("config: DateFormat must not be empty")
	}
	return nil
}

// Level maps LogLevel onto slog's levels. Unknown values mean info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
