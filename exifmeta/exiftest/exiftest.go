// Package exiftest synthesizes minimal EXIF blocks for tests. It builds
// little-endian TIFF structures by hand so fixtures need no binary testdata
// and no external metadata writer.
package exiftest

import (
	"bytes"
	"encoding/binary"
)

// Tag and type constants for the handful of fields the fixtures need.
const (
	tagDateTime          = 0x0132 // IFD0 ("image" namespace)
	tagExifIFDPointer    = 0x8769
	tagDateTimeOriginal  = 0x9003 // Exif sub-IFD ("capture" namespace)
	tagDateTimeDigitized = 0x9004

	typeASCII = 2
	typeLong  = 4
)

// DateTimes selects which timestamp fields the synthesized block carries.
// Empty strings are omitted entirely; the builder never fabricates a field.
type DateTimes struct {
	Original  string // Exif IFD DateTimeOriginal
	Digitized string // Exif IFD DateTimeDigitized
	Image     string // IFD0 DateTime
}

type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	value uint32
}

// TIFF returns a raw little-endian TIFF stream containing only the requested
// datetime fields. goexif parses this directly, and JPEG embeds it in an
// APP1 segment.
func TIFF(dt DateTimes) []byte {
	// ASCII values are stored out of line, 20 bytes each including the NUL.
	var values []byte
	hasExifIFD := dt.Original != "" || dt.Digitized != ""

	n0 := 0 // IFD0 entry count
	if dt.Image != "" {
		n0++
	}
	if hasExifIFD {
		n0++
	}
	n1 := 0 // Exif sub-IFD entry count
	if dt.Original != "" {
		n1++
	}
	if dt.Digitized != "" {
		n1++
	}

	ifd0Start := uint32(8)
	ifd0Size := uint32(2 + 12*n0 + 4)
	exifStart := ifd0Start + ifd0Size
	exifSize := uint32(0)
	if hasExifIFD {
		exifSize = uint32(2 + 12*n1 + 4)
	}
	valueStart := exifStart + exifSize

	addValue := func(s string) uint32 {
		off := valueStart + uint32(len(values))
		v := make([]byte, 20)
		copy(v, s)
		values = append(values, v...)
		return off
	}

	var ifd0, exifIFD []entry
	if dt.Image != "" {
		ifd0 = append(ifd0, entry{tagDateTime, typeASCII, 20, addValue(dt.Image)})
	}
	if hasExifIFD {
		ifd0 = append(ifd0, entry{tagExifIFDPointer, typeLong, 1, exifStart})
	}
	if dt.Original != "" {
		exifIFD = append(exifIFD, entry{tagDateTimeOriginal, typeASCII, 20, addValue(dt.Original)})
	}
	if dt.Digitized != "" {
		exifIFD = append(exifIFD, entry{tagDateTimeDigitized, typeASCII, 20, addValue(dt.Digitized)})
	}

	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II")
	binaryWrite(&buf, le, uint16(42))
	binaryWrite(&buf, le, ifd0Start)
	writeIFD(&buf, le, ifd0)
	if hasExifIFD {
		writeIFD(&buf, le, exifIFD)
	}
	buf.Write(values)
	return buf.Bytes()
}

// JPEG splices a TIFF block into jpegData as an EXIF APP1 segment directly
// after the SOI marker. jpegData must be a valid JPEG stream (for example
// from image/jpeg Encode, which writes no APP1 of its own).
func JPEG(jpegData, tiffBlock []byte) []byte {
	header := []byte("Exif\x00\x00")
	segLen := 2 + len(header) + len(tiffBlock)

	var buf bytes.Buffer
	buf.Write(jpegData[:2]) // SOI
	buf.WriteByte(0xFF)
	buf.WriteByte(0xE1)
	buf.WriteByte(byte(segLen >> 8))
	buf.WriteByte(byte(segLen))
	buf.Write(header)
	buf.Write(tiffBlock)
	buf.Write(jpegData[2:])
	return buf.Bytes()
}

func writeIFD(buf *bytes.Buffer, le binary.ByteOrder, entries []entry) {
	binaryWrite(buf, le, uint16(len(entries)))
	for _, e := range entries {
		binaryWrite(buf, le, e.tag)
		binaryWrite(buf, le, e.typ)
		binaryWrite(buf, le, e.count)
		binaryWrite(buf, le, e.value)
	}
	binaryWrite(buf, le, uint32(0)) // no next IFD
}

func binaryWrite(buf *bytes.Buffer, le binary.ByteOrder, v any) {
	_ = binary.Write(buf, le, v)
}
