package exifmeta

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// Layout is the canonical EXIF timestamp lexical form: colon-separated date,
// not hyphen.
const Layout = "2006:01:02 15:04:05"

// FormatTimestamp parses raw strictly against the EXIF layout and re-renders
// it using the strftime pattern (e.g. "%Y-%m-%d"). On any parse failure the
// raw string is returned verbatim; the watermark should still show something
// useful rather than fail the whole operation.
func FormatTimestamp(raw, pattern string) string {
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return raw
	}
	return strftime.Format(pattern, t)
}
