package core

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/avagner/photostamp/config"
	apperrors "github.com/avagner/photostamp/errors"
	"github.com/avagner/photostamp/utils"
)

// OutputDirFor derives the output directory for images inside dir:
// <dir>/<basename(dir)>_watermark. For a single file, pass the file's
// parent directory. The directory is only created once a job has actually
// produced output.
func OutputDirFor(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+"_watermark")
}

// Stamper is the central orchestrator. It runs the step sequence for one
// image at a time; batch runs are strictly sequential and no state is
// shared across files.
type Stamper struct {
	cfg    config.Config
	color  color.Color
	anchor Anchor
	writer OutputWriter
	hooks  []Hook
	logger Logger

	written int64
	skipped int64
	failed  int64
}

// NewStamper creates a Stamper. The config must already be validated; the
// color spec is parsed here and rejected as an input error if malformed.
func NewStamper(cfg config.Config, writer OutputWriter) (*Stamper, error) {
	col, err := utils.ParseColor(cfg.Color)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryInput, "stamper.color", err)
	}
	return &Stamper{
		cfg:    cfg,
		color:  col,
		anchor: Anchor(cfg.Anchor),
		writer: writer,
		logger: nopLogger{},
	}, nil
}

// SetLogger attaches a structured logger.
func (s *Stamper) SetLogger(l Logger) {
	if l != nil {
		s.logger = l
	}
}

// AddHook registers an observer for step events.
func (s *Stamper) AddHook(h Hook) { s.hooks = append(s.hooks, h) }

// Process stamps a single image file, writing the result under outputDir.
// Failures and skips are captured in the report, never raised: a batch
// caller moves on to the next file regardless of the outcome.
func (s *Stamper) Process(ctx context.Context, path, outputDir string, steps []Step) FileReport {
	report := FileReport{Source: path}

	job, err := s.newJob(ctx, path, outputDir)
	if err != nil {
		return s.fail(report, err)
	}

	job, timings, err := s.runSteps(ctx, job, steps)
	report.StepTimings = timings
	if err != nil {
		if apperrors.IsSkip(err) {
			atomic.AddInt64(&s.skipped, 1)
			report.Outcome = OutcomeSkipped
			report.Reason = "no timestamp"
			if job != nil && job.MetaWarning != "" {
				s.logger.Warn("metadata unreadable", "source", path, "detail", job.MetaWarning)
			}
			s.logger.Info("skipped, no timestamp", "source", path)
			return report
		}
		return s.fail(report, err)
	}

	// Output directories only appear when at least one image actually
	// produced a watermark, so creation happens after the steps succeed.
	if err := s.writer.EnsureDir(outputDir); err != nil {
		return s.fail(report, err)
	}
	dest, err := s.writer.Write(outputDir, filepath.Base(path), job.Encoded)
	if err != nil {
		return s.fail(report, err)
	}

	atomic.AddInt64(&s.written, 1)
	report.Outcome = OutcomeWritten
	report.Output = dest
	s.logger.Info("watermarked", "source", path, "output", dest, "text", job.Text)
	return report
}

// ProcessDirectory stamps every supported image directly inside dir,
// sequentially. One file's failure or skip never aborts the batch.
// Enumeration follows the directory listing order unless SortFiles is set.
func (s *Stamper) ProcessDirectory(ctx context.Context, dir string, steps []Step) (BatchReport, error) {
	outputDir := OutputDirFor(dir)
	report := BatchReport{Dir: dir, OutputDir: outputDir}

	files, err := utils.ListImages(dir, s.cfg.SortFiles)
	if err != nil {
		return report, apperrors.Wrap(apperrors.CategoryInput, "batch.list", err)
	}

	for _, f := range files {
		fr := s.Process(ctx, f, outputDir, steps)
		report.Files = append(report.Files, fr)
		switch fr.Outcome {
		case OutcomeWritten:
			report.Written++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeFailed:
			report.Failed++
		}
	}
	return report, nil
}

// Counts returns the cumulative written/skipped/failed totals.
func (s *Stamper) Counts() (written, skipped, failed int64) {
	return atomic.LoadInt64(&s.written), atomic.LoadInt64(&s.skipped), atomic.LoadInt64(&s.failed)
}

// newJob reads the source file and builds the per-file state. The file
// handle is released before any processing begins.
func (s *Stamper) newJob(ctx context.Context, path, outputDir string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "job.open", err)
	}
	buf, err := utils.DrainReader(ctx, f, 0)
	f.Close()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CategoryDecode, "job.read", err)
	}
	raw := utils.CloneBytes(buf.Bytes())
	utils.ReleaseBuffer(buf)

	return &Job{
		SourcePath:  path,
		OutputDir:   outputDir,
		FontSize:    s.cfg.FontSize,
		Color:       s.color,
		Anchor:      s.anchor,
		DatePattern: s.cfg.DateFormat,
		Image: &ImageData{
			Data:   raw,
			Format: Format(utils.DetectFormat(raw)),
		},
	}, nil
}

// runSteps executes the step sequence with hook notifications. Mirrors the
// standalone pipeline runner; kept local to avoid an import cycle.
func (s *Stamper) runSteps(ctx context.Context, job *Job, steps []Step) (*Job, map[string]time.Duration, error) {
	timings := make(map[string]time.Duration, len(steps))
	current := job
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return current, timings, apperrors.Wrap(apperrors.CategoryPipeline, step.Name(), err)
		}
		for _, h := range s.hooks {
			h.BeforeStep(ctx, step.Name(), current)
		}
		start := time.Now()
		next, err := step.Execute(ctx, current)
		elapsed := time.Since(start)
		timings[step.Name()] = elapsed
		for _, h := range s.hooks {
			h.AfterStep(ctx, step.Name(), next, elapsed, err)
		}
		if err != nil {
			if next != nil {
				current = next // keep warnings gathered by the failing step
			}
			return current, timings, err
		}
		current = next
	}
	return current, timings, nil
}

func (s *Stamper) fail(report FileReport, err error) FileReport {
	atomic.AddInt64(&s.failed, 1)
	report.Outcome = OutcomeFailed
	report.Err = err
	s.logger.Error("stamp failed", "source", report.Source, "error", err)
	return report
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
