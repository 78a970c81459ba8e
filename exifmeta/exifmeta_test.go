package exifmeta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avagner/photostamp/exifmeta/exiftest"
)

func TestCaptureTimestamp_PriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		dt        exiftest.DateTimes
		want      string
		wantFound bool
	}{
		{
			name:      "original wins over image namespace",
			dt:        exiftest.DateTimes{Original: "2023:05:20 15:30:45", Image: "2020:01:01 00:00:00"},
			want:      "2023:05:20 15:30:45",
			wantFound: true,
		},
		{
			name:      "digitized wins over image namespace",
			dt:        exiftest.DateTimes{Digitized: "2022:02:02 02:02:02", Image: "2020:01:01 00:00:00"},
			want:      "2022:02:02 02:02:02",
			wantFound: true,
		},
		{
			name:      "image namespace alone is used",
			dt:        exiftest.DateTimes{Image: "2020:01:01 00:00:00"},
			want:      "2020:01:01 00:00:00",
			wantFound: true,
		},
		{
			name:      "all three present picks original",
			dt:        exiftest.DateTimes{Original: "2023:05:20 15:30:45", Digitized: "2022:02:02 02:02:02", Image: "2020:01:01 00:00:00"},
			want:      "2023:05:20 15:30:45",
			wantFound: true,
		},
	}

	r := NewReader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := exiftest.TIFF(tt.dt)
			got, found, err := r.CaptureTimestamp(bytes.NewReader(block))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaptureTimestamp_ValueUnmodified(t *testing.T) {
	// The extractor must return the stored text as-is, even when it is not
	// a parseable timestamp; formatting policy belongs to the formatter.
	block := exiftest.TIFF(exiftest.DateTimes{Original: "Invalid Date"})
	got, found, err := NewReader().CaptureTimestamp(bytes.NewReader(block))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Invalid Date", got)
}

func TestCaptureTimestamp_MalformedBlock(t *testing.T) {
	_, found, err := NewReader().CaptureTimestamp(bytes.NewReader([]byte("not a metadata block")))
	assert.False(t, found)
	assert.Error(t, err) // diagnostic only; callers treat it as absence
}

func TestCaptureTimestamp_NoDateFields(t *testing.T) {
	block := exiftest.TIFF(exiftest.DateTimes{})
	got, found, err := NewReader().CaptureTimestamp(bytes.NewReader(block))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got)
}
