// Package pipeline provides the built-in stamping steps.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/avagner/photostamp/adapters/fontload"
	"github.com/avagner/photostamp/core"
	apperrors "github.com/avagner/photostamp/errors"
	"github.com/avagner/photostamp/exifmeta"
)

// ── Decode ────────────────────────────────────────────────────────────────────

// DecodeStep decodes the raw bytes in job.Image.Data into an image.Image.
type DecodeStep struct {
	Registry core.Registry
}

func (s *DecodeStep) Name() string { return "decode" }

func (s *DecodeStep) Execute(ctx context.Context, job *core.Job) (*core.Job, error) {
	if job.Image == nil || len(job.Image.Data) == 0 {
		return nil, apperrors.New(apperrors.CategoryDecode, s.Name(), apperrors.ErrEmptyInput)
	}
	if job.Image.Image != nil {
		return job, nil // already decoded
	}

	dec, ok := s.Registry.DecoderFor(job.Image.Format)
	if !ok {
		return nil, apperrors.New(apperrors.CategoryDecode, s.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, job.Image.Format))
	}

	decoded, err := dec.Decode(ctx, bytes.NewReader(job.Image.Data))
	if err != nil {
		return nil, err
	}

	// Preserve the raw bytes alongside the decoded representation; the
	// metadata step reads them.
	decoded.Data = job.Image.Data
	decoded.Meta.SizeBytes = int64(len(job.Image.Data))

	out := *job
	out.Image = decoded
	return &out, nil
}

// ── Extract timestamp ─────────────────────────────────────────────────────────

// ExtractTimestampStep pulls the capture timestamp out of the image's
// embedded metadata. Absent or undecodable metadata is not a failure: the
// step returns ErrNoTimestamp, which the orchestrator maps to a skip before
// any output I/O happens. Decode diagnostics land in job.MetaWarning.
type ExtractTimestampStep struct {
	Meta core.MetadataSource
}

func (s *ExtractTimestampStep) Name() string { return "extract_timestamp" }

func (s *ExtractTimestampStep) Execute(_ context.Context, job *core.Job) (*core.Job, error) {
	out := *job
	raw, found, err := s.Meta.CaptureTimestamp(bytes.NewReader(job.Image.Data))
	if err != nil {
		out.MetaWarning = err.Error()
	}
	if !found {
		return &out, apperrors.Wrap(apperrors.CategoryMetadata, s.Name(), apperrors.ErrNoTimestamp)
	}
	out.RawTimestamp = raw
	out.HasTimestamp = true
	return &out, nil
}

// ── Format timestamp ──────────────────────────────────────────────────────────

// FormatTimestampStep renders the raw timestamp with the job's strftime
// pattern. Unparseable raw values pass through verbatim.
type FormatTimestampStep struct{}

func (s *FormatTimestampStep) Name() string { return "format_timestamp" }

func (s *FormatTimestampStep) Execute(_ context.Context, job *core.Job) (*core.Job, error) {
	if !job.HasTimestamp {
		return nil, apperrors.Wrap(apperrors.CategoryPipeline, s.Name(), apperrors.ErrNoTimestamp)
	}
	out := *job
	out.Text = exifmeta.FormatTimestamp(job.RawTimestamp, job.DatePattern)
	return &out, nil
}

// ── Measure ───────────────────────────────────────────────────────────────────

// MeasureStep loads a face at the job's font size and measures the rendered
// pixel footprint of the formatted text. A font-load failure falls back to
// the builtin bitmap face; the fallback is noted on the job, not raised.
type MeasureStep struct {
	Fonts core.FontLoader
}

func (s *MeasureStep) Name() string { return "measure" }

func (s *MeasureStep) Execute(_ context.Context, job *core.Job) (*core.Job, error) {
	out := *job

	face, err := s.Fonts.Load(job.FontSize)
	if err != nil {
		face = fontload.Fallback()
		out.FontNote = fmt.Sprintf("preferred font unavailable, using builtin face: %v", err)
	}
	out.Face = face

	d := &font.Drawer{Face: face}
	adv := d.MeasureString(job.Text)
	m := face.Metrics()
	out.TextSize = core.TextSize{
		Width:  fixedToFloat(adv),
		Height: fixedToFloat(m.Ascent + m.Descent),
	}
	return &out, nil
}

// ── Resolve position ──────────────────────────────────────────────────────────

// ResolvePositionStep maps the anchor keyword to a top-left draw coordinate.
type ResolvePositionStep struct{}

func (s *ResolvePositionStep) Name() string { return "resolve_position" }

func (s *ResolvePositionStep) Execute(_ context.Context, job *core.Job) (*core.Job, error) {
	out := *job
	out.Position = core.Resolve(job.Image.Meta.Width, job.Image.Meta.Height, job.TextSize, job.Anchor)
	return &out, nil
}

// ── Draw ──────────────────────────────────────────────────────────────────────

// DrawStep renders the text onto a fresh RGBA copy of the image at the
// resolved position. Fractional coordinates are converted to fixed point by
// rounding to nearest; truncation would bias placement toward the top-left.
type DrawStep struct{}

func (s *DrawStep) Name() string { return "draw" }

func (s *DrawStep) Execute(_ context.Context, job *core.Job) (*core.Job, error) {
	src := job.Image.Image
	if src == nil {
		return nil, apperrors.New(apperrors.CategoryPipeline, s.Name(), apperrors.ErrEmptyInput)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	// Position is the text box's top-left corner; the drawer's dot sits on
	// the baseline, one ascent below it.
	ascent := fixedToFloat(job.Face.Metrics().Ascent)
	d := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(job.Color),
		Face: job.Face,
		Dot: fixed.Point26_6{
			X: floatToFixed(job.Position.X),
			Y: floatToFixed(job.Position.Y + ascent),
		},
	}
	d.DrawString(job.Text)

	img := *job.Image
	img.Image = rgba

	out := *job
	out.Image = &img
	return &out, nil
}

// ── Encode ────────────────────────────────────────────────────────────────────

// EncodeStep serialises the stamped image back into its source format.
type EncodeStep struct {
	Registry core.Registry
	Quality  int
}

func (s *EncodeStep) Name() string { return "encode" }

func (s *EncodeStep) Execute(ctx context.Context, job *core.Job) (*core.Job, error) {
	enc, ok := s.Registry.EncoderFor(job.Image.Format)
	if !ok {
		return nil, apperrors.New(apperrors.CategoryEncode, s.Name(),
			fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, job.Image.Format))
	}

	data, err := enc.Encode(ctx, job.Image, core.EncodeOptions{Quality: s.Quality})
	if err != nil {
		return nil, err
	}

	out := *job
	out.Encoded = data
	return &out, nil
}

// DefaultSteps returns the standard stamping sequence: decode, extract the
// capture timestamp, format it, measure the text, resolve the anchor
// position, draw, and re-encode in the source format.
func DefaultSteps(reg core.Registry, fonts core.FontLoader, quality int) []core.Step {
	return []core.Step{
		&DecodeStep{Registry: reg},
		&ExtractTimestampStep{Meta: exifmeta.NewReader()},
		&FormatTimestampStep{},
		&MeasureStep{Fonts: fonts},
		&ResolvePositionStep{},
		&DrawStep{},
		&EncodeStep{Registry: reg, Quality: quality},
	}
}

// ── fixed-point helpers ───────────────────────────────────────────────────────

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
