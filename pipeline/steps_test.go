package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/avagner/photostamp/adapters/decoder"
	"github.com/avagner/photostamp/adapters/encoder"
	"github.com/avagner/photostamp/adapters/fontload"
	"github.com/avagner/photostamp/core"
	apperrors "github.com/avagner/photostamp/errors"
	"github.com/avagner/photostamp/exifmeta/exiftest"
)

// ── Test helpers ──────────────────────────────────────────────────────────────

func newDarkJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func newDarkPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func stampedJPEG(t *testing.T, w, h int, dt exiftest.DateTimes) []byte {
	t.Helper()
	return exiftest.JPEG(newDarkJPEG(t, w, h), exiftest.TIFF(dt))
}

func newTestRegistry(quality int) core.Registry {
	reg := core.NewRegistry()
	reg.RegisterDecoder(core.FormatJPEG, decoder.NewJPEG())
	reg.RegisterDecoder(core.FormatPNG, decoder.NewPNG())
	reg.RegisterEncoder(core.FormatJPEG, encoder.NewJPEG(quality))
	reg.RegisterEncoder(core.FormatPNG, encoder.NewPNG())
	return reg
}

func newTestJob(data []byte, f core.Format) *core.Job {
	return &core.Job{
		SourcePath:  "test.jpg",
		FontSize:    24,
		Color:       color.White,
		Anchor:      core.AnchorBottomRight,
		DatePattern: "%Y-%m-%d",
		Image:       &core.ImageData{Data: data, Format: f},
	}
}

// ── Unit tests ────────────────────────────────────────────────────────────────

func TestDefaultSteps_EndToEnd(t *testing.T) {
	raw := stampedJPEG(t, 400, 300, exiftest.DateTimes{Original: "2023:05:20 15:30:45"})
	reg := newTestRegistry(90)

	pl := New().Use(DefaultSteps(reg, fontload.NewOpenType(""), 90)...)
	out, timings, err := pl.Run(context.Background(), newTestJob(raw, core.FormatJPEG))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Text != "2023-05-20" {
		t.Errorf("Text = %q, want 2023-05-20", out.Text)
	}
	if !out.HasTimestamp || out.RawTimestamp != "2023:05:20 15:30:45" {
		t.Errorf("raw timestamp = %q (has=%v)", out.RawTimestamp, out.HasTimestamp)
	}
	if len(out.Encoded) == 0 {
		t.Fatal("no encoded output")
	}
	img, err := jpeg.Decode(bytes.NewReader(out.Encoded))
	if err != nil {
		t.Fatalf("re-decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("output dimensions = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
	for _, name := range []string{"decode", "extract_timestamp", "format_timestamp",
		"measure", "resolve_position", "draw", "encode"} {
		if _, ok := timings[name]; !ok {
			t.Errorf("missing timing for step %q", name)
		}
	}

	// Bottom-right anchor on a dark image: the stamped text must brighten
	// pixels in the bottom-right quadrant and nowhere else.
	if !hasBrightPixel(img, image.Rect(200, 150, 400, 300)) {
		t.Error("no bright pixels in the bottom-right quadrant")
	}
	if hasBrightPixel(img, image.Rect(0, 0, 200, 150)) {
		t.Error("bright pixels in the top-left quadrant")
	}
}

func hasBrightPixel(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, _, _, _ := img.At(x, y).RGBA()
			if c > 0x8000 {
				return true
			}
		}
	}
	return false
}

func TestExtractTimestampStep_NoMetadataIsSkip(t *testing.T) {
	raw := newDarkPNG(t, 32, 32)
	job := newTestJob(raw, core.FormatPNG)

	step := &ExtractTimestampStep{Meta: noTimestampSource{}}
	out, err := step.Execute(context.Background(), job)
	if err == nil {
		t.Fatal("expected the no-timestamp sentinel")
	}
	if !apperrors.IsSkip(err) {
		t.Fatalf("err = %v, want ErrNoTimestamp in the chain", err)
	}
	if out == nil || out.HasTimestamp {
		t.Error("job must record the absence, not a timestamp")
	}
}

type noTimestampSource struct{}

func (noTimestampSource) CaptureTimestamp(io.Reader) (string, bool, error) {
	return "", false, nil
}

func TestFormatTimestampStep_Passthrough(t *testing.T) {
	job := newTestJob(nil, core.FormatJPEG)
	job.HasTimestamp = true
	job.RawTimestamp = "Invalid Date"

	out, err := (&FormatTimestampStep{}).Execute(context.Background(), job)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Text != "Invalid Date" {
		t.Errorf("Text = %q, want the raw value verbatim", out.Text)
	}
}

func TestMeasureStep_BitmapFaceMetrics(t *testing.T) {
	job := newTestJob(nil, core.FormatJPEG)
	job.HasTimestamp = true
	job.Text = "2023-05-20" // 10 glyphs

	step := &MeasureStep{Fonts: fontload.Static{Face: basicfont.Face7x13}}
	out, err := step.Execute(context.Background(), job)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.TextSize.Width != 70 {
		t.Errorf("Width = %v, want 70 (10 glyphs x 7px advance)", out.TextSize.Width)
	}
	if out.TextSize.Height != 13 {
		t.Errorf("Height = %v, want 13 (ascent 11 + descent 2)", out.TextSize.Height)
	}
	if out.FontNote != "" {
		t.Errorf("unexpected font note %q", out.FontNote)
	}
}

func TestMeasureStep_FallsBackOnLoaderError(t *testing.T) {
	job := newTestJob(nil, core.FormatJPEG)
	job.Text = "x"

	step := &MeasureStep{Fonts: failingLoader{}}
	out, err := step.Execute(context.Background(), job)
	if err != nil {
		t.Fatalf("fallback must not raise: %v", err)
	}
	if out.Face != fontload.Fallback() {
		t.Error("expected the builtin bitmap face")
	}
	if out.FontNote == "" {
		t.Error("fallback must be noted on the job")
	}
}

type failingLoader struct{}

func (failingLoader) Load(float64) (font.Face, error) {
	return nil, errors.New("no usable font")
}

func TestDrawStep_PreservesDimensionsAndSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	job := newTestJob(nil, core.FormatPNG)
	job.Image = &core.ImageData{
		Image:  src,
		Format: core.FormatPNG,
		Meta:   core.Metadata{Width: 100, Height: 50},
	}
	job.Text = "hi"
	job.Face = basicfont.Face7x13
	job.Position = core.Position{X: 5, Y: 5}

	out, err := (&DrawStep{}).Execute(context.Background(), job)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Image.Image == src {
		t.Error("draw must work on a copy, not mutate the decoded source")
	}
	if b := out.Image.Image.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("dimensions changed to %dx%d", b.Dx(), b.Dy())
	}
}

func TestEncodeStep_UnsupportedFormat(t *testing.T) {
	job := newTestJob(nil, core.FormatUnknown)
	job.Image.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))

	_, err := (&EncodeStep{Registry: core.NewRegistry(), Quality: 90}).Execute(context.Background(), job)
	if !apperrors.IsCategory(err, apperrors.CategoryEncode) {
		t.Fatalf("err = %v, want encode category", err)
	}
}

func TestPipelineClone_IsIndependent(t *testing.T) {
	base := New().Use(&FormatTimestampStep{})
	clone := base.Clone().Use(&ResolvePositionStep{})

	if len(base.steps) != 1 {
		t.Errorf("base grew to %d steps after extending the clone", len(base.steps))
	}
	if len(clone.steps) != 2 {
		t.Errorf("clone has %d steps, want 2", len(clone.steps))
	}
}

func TestFixedPointRounding(t *testing.T) {
	cases := []struct {
		in   float64
		want fixed.Int26_6
	}{
		{0, 0},
		{1, 64},
		{0.5, 32},
		{45.5, 2912},
		{0.0078125, 1}, // 0.5/64 rounds up, truncation would drop it
	}
	for _, tc := range cases {
		if got := floatToFixed(tc.in); got != tc.want {
			t.Errorf("floatToFixed(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if got := fixedToFloat(fixed.I(13)); got != 13 {
		t.Errorf("fixedToFloat(13) = %v", got)
	}
}
