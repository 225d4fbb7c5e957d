package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/shotsegments/internal/boundary"
	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/ffmpeg"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/render"
	"github.com/five82/shotsegments/internal/reporter"
	"github.com/five82/shotsegments/internal/util"
)

// runExtract is replaced in tests.
var runExtract = ffmpeg.RunExtract

// Extract runs the stream-copy command for every segment in order. The first
// failure stops the run.
func Extract(
	ctx context.Context,
	input string,
	fps float64,
	segments []boundary.Segment,
	rep reporter.Reporter,
	log *logging.Logger,
) error {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("extract")

	cmd := render.Command{Input: input, FPS: fps}
	total := len(segments)

	for i, seg := range segments {
		if ctx.Err() != nil {
			return coreerrors.NewCancelledError()
		}

		params := cmd.Params(seg)
		line := cmd.Line(seg)
		rep.ExtractionStarted(reporter.ExtractionInfo{
			Segment:    i + 1,
			Total:      total,
			OutputFile: params.Output,
			Command:    line,
		})
		log.Info("extracting segment", "segment", seg.Number, "start", seg.Start, "end", seg.End, "output", params.Output)

		if util.FileExists(params.Output) {
			log.Info("overwriting existing segment file", "output", params.Output)
		}

		started := time.Now()
		result := runExtract(ctx, params, func(p ffmpeg.Progress) {
			rep.ExtractionProgress(reporter.ExtractionProgress{
				Segment: i + 1,
				Total:   total,
				Percent: p.Percent,
				Speed:   p.Speed,
				ETA:     p.ETA,
			})
		})

		if !result.Success {
			if coreerrors.IsCancelled(result.Error) {
				return result.Error
			}
			rep.Error(reporter.ReporterError{
				Title:      "Extraction Error",
				Message:    fmt.Sprintf("ffmpeg failed on segment %d: %v", seg.Number, result.Error),
				Context:    line,
				Suggestion: "Check that ffmpeg is installed and the output directory is writable",
			})
			return result.Error
		}

		size, err := util.GetFileSize(params.Output)
		if err != nil {
			log.Warn("extracted file missing", "output", params.Output, "error", err)
		}
		rep.ExtractionComplete(reporter.ExtractionOutcome{
			Segment:    i + 1,
			Total:      total,
			OutputFile: params.Output,
			Size:       size,
			Elapsed:    time.Since(started),
		})
	}

	return nil
}
