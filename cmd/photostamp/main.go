// Command photostamp stamps photos with their capture date.
//
// Usage:
//
//	photostamp [flags] <image-file-or-directory>
//
// Given a directory, every supported image directly inside it is stamped
// and written to <dir>/<basename>_watermark/. Given a single file, the
// output directory is derived from the file's parent directory. Images
// without a capture timestamp are skipped and no output directory is
// created for them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/avagner/photostamp"
	"github.com/avagner/photostamp/config"
	"github.com/avagner/photostamp/core"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Default()

	pflag.Float64VarP(&cfg.FontSize, "size", "s", cfg.FontSize, "font size in points")
	pflag.StringVarP(&cfg.Color, "color", "c", cfg.Color, "text color (CSS name, #rrggbb, rgb(...), ...)")
	pflag.StringVarP(&cfg.Anchor, "position", "p", cfg.Anchor, "watermark anchor position")
	pflag.StringVarP(&cfg.DateFormat, "format", "f", cfg.DateFormat, "strftime pattern for the stamped date")
	pflag.IntVar(&cfg.JPEGQuality, "quality", cfg.JPEGQuality, "JPEG output quality (1-100)")
	pflag.StringVar(&cfg.FontPath, "font", cfg.FontPath, "path to a TTF font (embedded default if empty)")
	backend := pflag.String("backend", string(cfg.Backend), "image backend: stdlib or vips")
	pflag.BoolVar(&cfg.SortFiles, "sort", cfg.SortFiles, "process directory entries in sorted order")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() != 1 {
		usage()
		return 2
	}
	path := pflag.Arg(0)
	cfg.Backend = config.Backend(*backend)

	// The anchor keyword is validated hard at the CLI boundary; deeper
	// layers fall back to bottom-right instead of failing.
	if _, err := core.ParseAnchor(cfg.Anchor); err != nil {
		fmt.Fprintf(os.Stderr, "photostamp: %v\nvalid positions: %s\n", err, anchorList())
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "photostamp: %v\n", err)
		return 2
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photostamp: %v\n", err)
		return 1
	}

	if *verbose {
		cfg.LogLevel = "debug"
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	st, err := photostamp.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photostamp: %v\n", err)
		return 2
	}
	defer st.Close()
	if *verbose {
		st.UseSlog(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if info.IsDir() {
		report, err := st.ProcessDirectory(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "photostamp: %v\n", err)
			return 1
		}
		for _, fr := range report.Files {
			printReport(fr)
		}
		fmt.Printf("%d written, %d skipped, %d failed (%d files)\n",
			report.Written, report.Skipped, report.Failed, len(report.Files))
		if report.Written > 0 {
			fmt.Printf("output directory: %s\n", report.OutputDir)
		}
		return 0
	}

	fr, err := st.ProcessFile(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photostamp: %v\n", err)
		return 1
	}
	printReport(fr)
	return 0
}

func printReport(fr core.FileReport) {
	switch fr.Outcome {
	case core.OutcomeWritten:
		fmt.Printf("processed: %s -> %s\n", fr.Source, fr.Output)
	case core.OutcomeSkipped:
		fmt.Printf("skipped (%s): %s\n", fr.Reason, fr.Source)
	case core.OutcomeFailed:
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", fr.Source, fr.Err)
	}
}

func anchorList() string {
	names := make([]string, 0, 9)
	for _, a := range core.Anchors() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: photostamp [flags] <image-file-or-directory>\n\nFlags:\n")
	pflag.PrintDefaults()
}
