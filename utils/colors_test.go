package utils

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		spec string
		want color.NRGBA
	}{
		{"white", color.NRGBA{255, 255, 255, 255}},
		{"black", color.NRGBA{0, 0, 0, 255}},
		{"#ff8800", color.NRGBA{255, 136, 0, 255}},
		{"rgb(255,165,0)", color.NRGBA{255, 165, 0, 255}},
		{"rgba(0,0,255,0.5)", color.NRGBA{0, 0, 255, 128}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.spec)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tc.spec, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tc.spec, got, tc.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, bad := range []string{"", "notacolor", "#zzzzzz", "rgb(300)"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): expected error", bad)
		}
	}
}
