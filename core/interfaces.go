package core

import (
	"context"
	"io"
	"time"

	"golang.org/x/image/font"
)

// Decoder converts raw bytes / a reader into an in-memory ImageData.
// Implementations live in adapters/decoder/.
type Decoder interface {
	// Decode reads from r and returns a decoded ImageData.
	Decode(ctx context.Context, r io.Reader) (*ImageData, error)
	// CanDecode reports whether this decoder handles the given format hint.
	CanDecode(format Format) bool
}

// Encoder serialises an ImageData to bytes in a target format.
// Implementations live in adapters/encoder/.
type Encoder interface {
	Encode(ctx context.Context, img *ImageData, opts EncodeOptions) ([]byte, error)
	CanEncode(format Format) bool
}

// MetadataSource extracts the best-available capture timestamp from an
// image's embedded metadata. The returned string is the raw value in the
// EXIF lexical form "YYYY:MM:DD HH:MM:SS", unmodified.
//
// Absence is not an error: ("", false, nil) means no timestamp exists. A
// non-nil error means the metadata block itself could not be decoded; the
// caller treats this the same as absence and surfaces it as a warning only.
type MetadataSource interface {
	CaptureTimestamp(r io.Reader) (raw string, found bool, err error)
}

// FontLoader is the capability-injected font loading strategy. Load returns
// a face for the requested point size. Errors are non-fatal: the caller is
// expected to fall back to a default face and carry on.
type FontLoader interface {
	Load(size float64) (font.Face, error)
}

// OutputWriter persists stamped images. Directory creation is lazy: EnsureDir
// is only called once a job has actually produced output, so empty output
// directories never appear.
type OutputWriter interface {
	EnsureDir(dir string) error
	// Write stores data under dir using name, overwriting any existing file
	// of the same name, and returns the destination path.
	Write(dir, name string, data []byte) (string, error)
}

// Logger is a minimal structured logging interface.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
}

// Registry maps Format values to Decoder/Encoder implementations.
type Registry interface {
	DecoderFor(format Format) (Decoder, bool)
	EncoderFor(format Format) (Encoder, bool)
	RegisterDecoder(format Format, d Decoder)
	RegisterEncoder(format Format, e Encoder)
}

// Hook is an optional observer invoked around stamping steps.
type Hook interface {
	BeforeStep(ctx context.Context, stepName string, job *Job)
	AfterStep(ctx context.Context, stepName string, job *Job, d time.Duration, err error)
}
