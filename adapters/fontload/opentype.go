// Package fontload provides font loading strategies for text rendering.
// The loader is injected as a capability so tests can substitute a
// deterministic fixed-metrics face.
package fontload

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontDPI is the rendering resolution used for all faces.
const fontDPI = 72

// OpenType loads OpenType faces, preferring a caller-supplied TTF file and
// falling back to the embedded Go Regular font when the file is missing or
// unparseable. The underlying font is parsed once and faces are derived per
// requested size. Safe for concurrent use.
type OpenType struct {
	ttfPath string

	once   sync.Once
	parsed *opentype.Font
	err    error
}

// NewOpenType returns a loader. ttfPath may be empty, in which case the
// embedded Go Regular font is used directly.
func NewOpenType(ttfPath string) *OpenType {
	return &OpenType{ttfPath: ttfPath}
}

// Load derives a face at the given point size. An error here is non-fatal by
// contract: callers fall back to Fallback() and carry on.
func (o *OpenType) Load(size float64) (font.Face, error) {
	o.once.Do(o.parse)
	if o.err != nil {
		return nil, o.err
	}
	face, err := opentype.NewFace(o.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontload: new face: %w", err)
	}
	return face, nil
}

func (o *OpenType) parse() {
	if o.ttfPath != "" {
		if data, err := os.ReadFile(o.ttfPath); err == nil {
			if f, perr := opentype.Parse(data); perr == nil {
				o.parsed = f
				return
			}
		}
		// Unreadable or unparseable file: fall through to the embedded font.
	}
	o.parsed, o.err = opentype.Parse(goregular.TTF)
	if o.err != nil {
		o.err = fmt.Errorf("fontload: parse embedded font: %w", o.err)
	}
}

// Fallback returns the builtin fixed-size bitmap face used when no OpenType
// face can be produced.
func Fallback() font.Face {
	return basicfont.Face7x13
}

// Static is a FontLoader that always returns the same face, regardless of
// the requested size. Intended for tests.
type Static struct {
	Face font.Face
}

func (s Static) Load(float64) (font.Face, error) { return s.Face, nil }
