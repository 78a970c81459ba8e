package core

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/font"
)

// Format identifies an image codec.
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatTIFF    Format = "tiff"
	FormatUnknown Format = "unknown"
)

// Anchor names one of the nine watermark placement points.
type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorMiddleLeft   Anchor = "middle-left"
	AnchorCenter       Anchor = "center"
	AnchorMiddleRight  Anchor = "middle-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

// Anchors returns the closed set of valid anchor keywords, in display order.
func Anchors() []Anchor {
	return []Anchor{
		AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
		AnchorMiddleLeft, AnchorCenter, AnchorMiddleRight,
		AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight,
	}
}

// Valid reports whether a belongs to the closed anchor set.
func (a Anchor) Valid() bool {
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
		AnchorMiddleLeft, AnchorCenter, AnchorMiddleRight,
		AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
		return true
	}
	return false
}

// ParseAnchor converts s into an Anchor, rejecting anything outside the
// closed set. This is the strict boundary-layer validation; Resolve applies
// the soft bottom-right fallback instead.
func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown position %q (valid: %v)", s, Anchors())
	}
	return a, nil
}

// Position is a top-left draw coordinate in pixels. Values stay fractional
// until the draw step converts them to fixed-point, rounding to nearest.
type Position struct {
	X, Y float64
}

// TextSize is the measured pixel footprint of a rendered string.
type TextSize struct {
	Width, Height float64
}

// Metadata holds basic information about a decoded image.
type Metadata struct {
	Width     int
	Height    int
	Format    Format
	SizeBytes int64
}

// ImageData is the in-memory representation passed through a stamping run.
// Data holds the original encoded bytes; Image the decoded pixel buffer.
type ImageData struct {
	Data   []byte
	Format Format
	Image  image.Image
	Meta   Metadata
}

// EncodeOptions carries format-specific encoding parameters.
type EncodeOptions struct {
	Quality int // 1-100 for lossy formats; 0 = encoder default
}

// Job is the per-file state threaded through the stamping steps. It is
// created, used, and discarded within a single file's processing; nothing
// is shared across files in a batch run.
type Job struct {
	SourcePath string
	OutputDir  string

	// Stamp parameters, fixed at job creation.
	FontSize    float64
	Color       color.Color
	Anchor      Anchor
	DatePattern string

	// Populated by the steps, in order.
	Image        *ImageData
	RawTimestamp string
	HasTimestamp bool
	MetaWarning  string // non-fatal note from metadata decoding
	Text         string
	Face         font.Face
	FontNote     string // non-fatal note from font fallback
	TextSize     TextSize
	Position     Position
	Encoded      []byte
}

// Outcome classifies the result of processing one file.
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// FileReport describes what happened to a single input file. Exactly one of
// Output (written), Reason (skipped), or Err (failed) carries detail.
type FileReport struct {
	Source  string
	Outcome Outcome
	Output  string
	Reason  string
	Err     error

	StepTimings map[string]time.Duration
}

// BatchReport aggregates per-file reports for one directory run.
type BatchReport struct {
	Dir       string
	OutputDir string
	Files     []FileReport
	Written   int
	Skipped   int
	Failed    int
}

// Step is the fundamental building block of a stamping run. Steps must not
// keep per-job state; everything flows through the Job.
type Step interface {
	Name() string
	Execute(ctx context.Context, job *Job) (*Job, error)
}
