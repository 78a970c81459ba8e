// Package photostamp stamps photos with their capture date. The date is
// read from embedded metadata, rendered as text, and drawn near one of nine
// anchor points; results land in a sibling <dir>_watermark directory.
package photostamp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/avagner/photostamp/adapters/decoder"
	"github.com/avagner/photostamp/adapters/encoder"
	"github.com/avagner/photostamp/adapters/fontload"
	"github.com/avagner/photostamp/adapters/storage"
	"github.com/avagner/photostamp/adapters/vips"
	"github.com/avagner/photostamp/config"
	"github.com/avagner/photostamp/core"
	apperrors "github.com/avagner/photostamp/errors"
	"github.com/avagner/photostamp/hooks"
	"github.com/avagner/photostamp/pipeline"
)

// Re-export Format constants for convenience.
const (
	JPEG = core.FormatJPEG
	PNG  = core.FormatPNG
	TIFF = core.FormatTIFF
)

// DefaultConfig returns a sensible production configuration.
func DefaultConfig() config.Config { return config.Default() }

// Stamper is the primary entry point.
type Stamper struct {
	inner *core.Stamper
	reg   *core.DefaultRegistry
	vips  *vips.Backend
	steps []core.Step
}

// New creates a fully wired Stamper with JPEG, PNG, and TIFF codecs
// registered. The config is validated here; a libvips-backed codec set is
// used when cfg.Backend selects it.
func New(cfg config.Config) (*Stamper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Stamper{reg: core.NewRegistry()}

	switch cfg.Backend {
	case config.BackendVips:
		s.vips = vips.NewBackend(vips.BackendConfig{DefaultQuality: cfg.JPEGQuality})
		for _, f := range []core.Format{core.FormatJPEG, core.FormatPNG, core.FormatTIFF} {
			s.reg.RegisterDecoder(f, s.vips)
			s.reg.RegisterEncoder(f, s.vips)
		}
	default:
		s.reg.RegisterDecoder(core.FormatJPEG, decoder.NewJPEG())
		s.reg.RegisterDecoder(core.FormatPNG, decoder.NewPNG())
		s.reg.RegisterDecoder(core.FormatTIFF, decoder.NewTIFF())
		s.reg.RegisterEncoder(core.FormatJPEG, encoder.NewJPEG(cfg.JPEGQuality))
		s.reg.RegisterEncoder(core.FormatPNG, encoder.NewPNG())
		s.reg.RegisterEncoder(core.FormatTIFF, encoder.NewTIFF())
	}

	inner, err := core.NewStamper(cfg, storage.NewLocal(0))
	if err != nil {
		if s.vips != nil {
			s.vips.Shutdown()
		}
		return nil, err
	}
	s.inner = inner
	s.steps = pipeline.DefaultSteps(s.reg, fontload.NewOpenType(cfg.FontPath), cfg.JPEGQuality)
	return s, nil
}

// SetLogger attaches a structured logger.
func (s *Stamper) SetLogger(l core.Logger) { s.inner.SetLogger(l) }

// UseSlog wires a *slog.Logger as both logger and step-event observer.
// Passing nil uses slog.Default.
func (s *Stamper) UseSlog(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	sl := hooks.NewSlogLogger(l)
	sl.Debug("codecs registered", "formats", s.reg.Formats())
	s.inner.SetLogger(sl)
	s.inner.AddHook(hooks.NewLoggingHook(sl))
}

// AddHook registers an observer for step events.
func (s *Stamper) AddHook(h core.Hook) { s.inner.AddHook(h) }

// RegisterDecoder registers a custom decoder for the given format.
func (s *Stamper) RegisterDecoder(f core.Format, d core.Decoder) { s.reg.RegisterDecoder(f, d) }

// RegisterEncoder registers a custom encoder for the given format.
func (s *Stamper) RegisterEncoder(f core.Format, e core.Encoder) { s.reg.RegisterEncoder(f, e) }

// ProcessFile stamps a single image file. The output directory is derived
// from the file's parent directory and created only if the stamp succeeds.
func (s *Stamper) ProcessFile(ctx context.Context, path string) (core.FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return core.FileReport{Source: path}, err
	}
	if info.IsDir() {
		return core.FileReport{Source: path}, apperrors.Wrap(apperrors.CategoryInput, "process_file", apperrors.ErrInvalidPath)
	}
	outputDir := core.OutputDirFor(filepath.Dir(path))
	return s.inner.Process(ctx, path, outputDir, s.steps), nil
}

// ProcessDirectory stamps every supported image directly inside dir.
func (s *Stamper) ProcessDirectory(ctx context.Context, dir string) (core.BatchReport, error) {
	return s.inner.ProcessDirectory(ctx, dir, s.steps)
}

// NewPipeline creates a reusable, standalone pipeline with the default
// steps, for callers that want to add their own steps around them.
func (s *Stamper) NewPipeline(extra ...core.Step) *pipeline.Pipeline {
	pl := pipeline.New()
	pl.Use(s.steps...)
	pl.Use(extra...)
	return pl
}

// Stats returns cumulative written/skipped/failed totals.
func (s *Stamper) Stats() (written, skipped, failed int64) {
	return s.inner.Counts()
}

// Close releases backend resources. Only meaningful for the libvips
// backend; a no-op otherwise.
func (s *Stamper) Close() {
	if s.vips != nil {
		s.vips.Shutdown()
	}
}
