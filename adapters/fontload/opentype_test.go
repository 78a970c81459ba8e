package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	face, err := NewOpenType("").Load(24)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := face.Metrics()
	if m.Ascent <= 0 || m.Descent < 0 {
		t.Errorf("implausible metrics %+v", m)
	}
}

func TestLoad_CustomTTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewOpenType(path).Load(18); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_BadFileFallsBackToEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewOpenType(path).Load(24); err != nil {
		t.Fatalf("bad TTF must fall back, got %v", err)
	}
	if _, err := NewOpenType(filepath.Join(t.TempDir(), "absent.ttf")).Load(24); err != nil {
		t.Fatalf("missing TTF must fall back, got %v", err)
	}
}

func TestLoad_SizeScalesMetrics(t *testing.T) {
	l := NewOpenType("")
	small, err := l.Load(12)
	if err != nil {
		t.Fatal(err)
	}
	big, err := l.Load(48)
	if err != nil {
		t.Fatal(err)
	}
	if big.Metrics().Ascent <= small.Metrics().Ascent {
		t.Error("larger point size must yield a larger ascent")
	}
}

func TestFallbackIsAlwaysAvailable(t *testing.T) {
	if Fallback() == nil {
		t.Fatal("Fallback returned nil")
	}
}
