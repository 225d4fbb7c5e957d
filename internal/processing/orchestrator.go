// Package processing runs shot analysis end to end: open the stream, detect
// boundaries, render the result and optionally extract the segments.
package processing

import (
	"context"
	"fmt"
	"io"

	"github.com/five82/shotsegments/internal/config"
	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/export"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/render"
	"github.com/five82/shotsegments/internal/reporter"
	"github.com/five82/shotsegments/internal/source"
	"github.com/five82/shotsegments/internal/util"
)

// Run processes cfg.InputFile and writes the listing or ffmpeg commands to
// out. Nothing is written to out unless the whole pass succeeds.
func Run(
	ctx context.Context,
	cfg *config.Config,
	out io.Writer,
	rep reporter.Reporter,
	log *logging.Logger,
) (*AnalysisResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, coreerrors.NewConfigError("invalid configuration", err)
	}

	src, err := source.Open(ctx, cfg.InputFile, cfg.Decoder, log)
	if err != nil {
		if ctx.Err() != nil {
			return nil, coreerrors.NewCancelledError()
		}
		return nil, err
	}

	return RunSource(ctx, cfg, src, out, rep, log)
}

// RunSource is Run over an already opened source, which it closes.
func RunSource(
	ctx context.Context,
	cfg *config.Config,
	src source.Source,
	out io.Writer,
	rep reporter.Reporter,
	log *logging.Logger,
) (*AnalysisResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if log == nil {
		log = logging.Discard()
	}
	alog := log.WithComponent("analysis")

	var exp *export.Exporter
	if cfg.SaveImages {
		if err := util.EnsureDirectoryWritable(cfg.ImageDir); err != nil {
			alog.Warn("image directory not writable", "dir", cfg.ImageDir, "error", err)
			rep.Warning(fmt.Sprintf("cannot save frames to %s: %v", cfg.ImageDir, err))
		}
		exp = export.New(cfg.ImageDir, cfg.JPEGQuality)
	}

	result, err := Analyze(ctx, cfg, src, exp, rep, alog)
	_ = src.Close()
	if err != nil {
		return nil, err
	}

	if err := Renderer(cfg, result.Info.FPS).Render(out, result.Segments); err != nil {
		return result, coreerrors.NewIOError("failed to write output", err)
	}

	if cfg.RunExtract {
		if err := Extract(ctx, cfg.InputFile, result.Info.FPS, result.Segments, rep, log); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Renderer returns the output renderer selected by cfg.
func Renderer(cfg *config.Config, fps float64) render.Renderer {
	if cfg.CommandMode() {
		return render.Command{Input: cfg.InputFile, FPS: fps}
	}
	return render.Listing{}
}
