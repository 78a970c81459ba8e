// Package vips provides a libvips-powered imaging backend via govips.
// It is selected with config.BackendVips and requires libvips on the host;
// the stdlib backend remains the default.
package vips

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"runtime"

	govips "github.com/davidbyttow/govips/v2/vips"

	"github.com/avagner/photostamp/core"
	apperrors "github.com/avagner/photostamp/errors"
	"github.com/avagner/photostamp/utils"
)

// BackendConfig configures the libvips backend.
type BackendConfig struct {
	DefaultQuality int
	MaxCacheSize   int
	MaxWorkers     int
}

// Backend is a unified libvips-backed Decoder and Encoder for JPEG, PNG,
// and TIFF. Safe for concurrent use.
//
// The stamping steps operate on image.Image, so the backend bridges through
// lossless PNG between libvips and the Go image model: decode exports the
// vips image as PNG and re-decodes it; encode feeds the drawn image back to
// libvips for final serialisation. JPEG/TIFF quality and compression are
// applied by libvips.
type Backend struct {
	cfg BackendConfig
}

// NewBackend initialises libvips and returns a ready Backend.
// Call Shutdown() when the process exits.
func NewBackend(cfg BackendConfig) *Backend {
	if cfg.DefaultQuality <= 0 {
		cfg.DefaultQuality = 95
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.NumCPU()
	}
	govips.Startup(&govips.Config{
		ConcurrencyLevel: cfg.MaxWorkers,
		MaxCacheSize:     cfg.MaxCacheSize,
	})
	return &Backend{cfg: cfg}
}

// Shutdown releases all libvips resources. Call once at process exit.
func (b *Backend) Shutdown() {
	govips.Shutdown()
}

// ── Decoder ──────────────────────────────────────────────────────────────────

func (b *Backend) CanDecode(f core.Format) bool {
	switch f {
	case core.FormatJPEG, core.FormatPNG, core.FormatTIFF, core.FormatUnknown:
		return true
	}
	return false
}

func (b *Backend) Decode(ctx context.Context, r io.Reader) (*core.ImageData, error) {
	buf, err := utils.DrainReader(ctx, r, 0)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.drain", err)
	}
	raw := utils.CloneBytes(buf.Bytes())
	utils.ReleaseBuffer(buf)

	ref, err := govips.NewImageFromBuffer(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.decode", err)
	}
	defer ref.Close()

	pngBytes, _, err := ref.ExportPng(govips.NewPngExportParams())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.export", err)
	}
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "vips.bridge", err)
	}

	format := core.Format(utils.DetectFormat(raw))
	return &core.ImageData{
		Data:   raw,
		Image:  img,
		Format: format,
		Meta: core.Metadata{
			Width:  ref.Width(),
			Height: ref.Height(),
			Format: format,
		},
	}, nil
}

// ── Encoder ──────────────────────────────────────────────────────────────────

func (b *Backend) CanEncode(f core.Format) bool {
	switch f {
	case core.FormatJPEG, core.FormatPNG, core.FormatTIFF:
		return true
	}
	return false
}

func (b *Backend) Encode(ctx context.Context, img *core.ImageData, opts core.EncodeOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "vips.encode", err)
	}
	if img.Image == nil {
		return nil, apperrors.New(apperrors.CategoryEncode, "vips.encode", apperrors.ErrEmptyInput)
	}

	var bridge bytes.Buffer
	if err := png.Encode(&bridge, img.Image); err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "vips.bridge", err)
	}
	ref, err := govips.NewImageFromBuffer(bridge.Bytes())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryEncode, "vips.load", err)
	}
	defer ref.Close()

	quality := opts.Quality
	if quality <= 0 {
		quality = b.cfg.DefaultQuality
	}

	switch img.Format {
	case core.FormatJPEG:
		p := govips.NewJpegExportParams()
		p.Quality = quality
		out, _, err := ref.ExportJpeg(p)
		return out, apperrors.Wrap(apperrors.CategoryEncode, "vips.jpeg", err)
	case core.FormatPNG:
		out, _, err := ref.ExportPng(govips.NewPngExportParams())
		return out, apperrors.Wrap(apperrors.CategoryEncode, "vips.png", err)
	case core.FormatTIFF:
		out, _, err := ref.ExportTiff(govips.NewTiffExportParams())
		return out, apperrors.Wrap(apperrors.CategoryEncode, "vips.tiff", err)
	}
	return nil, apperrors.New(apperrors.CategoryEncode, "vips.encode", apperrors.ErrUnsupportedFormat)
}
