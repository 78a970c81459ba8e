// Package exifmeta extracts and formats EXIF capture timestamps.
package exifmeta

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Vendor maker-note parsers; some cameras hide fields behind these.
	exif.RegisterParsers(mknote.All...)
}

// dateFields is the lookup order; first hit wins, no merging. The first two
// live in the Exif sub-IFD, the last in IFD0.
var dateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// Reader extracts capture timestamps from EXIF blocks. It implements
// core.MetadataSource. Stateless and safe for concurrent use.
type Reader struct{}

// NewReader returns an EXIF-backed metadata source.
func NewReader() *Reader { return &Reader{} }

// CaptureTimestamp returns the raw capture timestamp exactly as stored, or
// found=false when none of the known fields is present. A decode error
// (malformed or absent EXIF block) is returned for diagnostics but must be
// treated as "not found" by callers; it is never a hard failure. The value
// is never synthesized.
func (Reader) CaptureTimestamp(r io.Reader) (string, bool, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return "", false, err
	}
	for _, name := range dateFields {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil || s == "" {
			continue
		}
		return s, true, nil
	}
	return "", false, nil
}
