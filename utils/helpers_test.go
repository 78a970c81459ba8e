package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, formatJPEG},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, formatPNG},
		{"tiff little-endian", []byte{0x49, 0x49, 0x2A, 0x00}, formatTIFF},
		{"tiff big-endian", []byte{0x4D, 0x4D, 0x00, 0x2A}, formatTIFF},
		{"text", []byte("hello world"), formatUnknown},
		{"short", []byte{0xFF}, formatUnknown},
		{"empty", nil, formatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.data); got != tc.want {
			t.Errorf("%s: DetectFormat = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	yes := []string{"a.jpg", "b.jpeg", "c.png", "d.tiff", "e.tif", "F.JPG", "G.PnG"}
	no := []string{"a.txt", "b.gif", "c.webp", "noext", "d.jpg.bak", ".jpg.swp"}
	for _, n := range yes {
		if !IsImageFile(n) {
			t.Errorf("IsImageFile(%q) = false", n)
		}
	}
	for _, n := range no {
		if IsImageFile(n) {
			t.Errorf("IsImageFile(%q) = true", n)
		}
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.png", "a.jpg", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub.png", "d.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListImages(dir, true)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListImages_MissingDir(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "absent"), false); err == nil {
		t.Fatal("expected error")
	}
}
