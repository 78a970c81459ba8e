package errors

import (
	"errors"
	"fmt"
)

// Category classifies error types for targeted handling and reporting.
type Category string

const (
	CategoryInput    Category = "input"    // bad CLI path; fatal
	CategoryDecode   Category = "decode"   // image decode failure; per-file
	CategoryEncode   Category = "encode"   // image encode failure; per-file
	CategoryMetadata Category = "metadata" // corrupt/missing metadata; recovered
	CategoryFont     Category = "font"     // font load failure; recovered via fallback
	CategoryStorage  Category = "storage"  // output dir/file I/O; per-file
	CategoryPipeline Category = "pipeline" // step sequencing faults
)

// StampError is the structured error type used throughout the module.
type StampError struct {
	Category Category
	Op       string // operation name
	Err      error
}

func (e *StampError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Err)
}

func (e *StampError) Unwrap() error { return e.Err }

// New creates a StampError.
func New(category Category, op string, err error) *StampError {
	return &StampError{Category: category, Op: op, Err: err}
}

// Wrap wraps an existing error with context.
func Wrap(category Category, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(category, op, err)
}

// IsCategory reports whether err belongs to the given category.
func IsCategory(err error, cat Category) bool {
	var se *StampError
	if errors.As(err, &se) {
		return se.Category == cat
	}
	return false
}

// Sentinel errors for common outcomes.
var (
	// ErrNoTimestamp signals that an image carries no capture timestamp.
	// It marks a skip, not a failure: the file is left alone and the batch
	// moves on.
	ErrNoTimestamp = errors.New("no capture timestamp in metadata")

	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmptyInput        = errors.New("empty input")
	ErrInvalidPath       = errors.New("invalid input path")
)

// IsSkip reports whether err represents the no-timestamp skip condition.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoTimestamp)
}
