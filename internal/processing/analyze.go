package processing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"golang.org/x/image/draw"

	"github.com/five82/shotsegments/internal/boundary"
	"github.com/five82/shotsegments/internal/config"
	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/export"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/luma"
	"github.com/five82/shotsegments/internal/reporter"
	"github.com/five82/shotsegments/internal/source"
)

// progressInterval is the minimum wall time between frame progress events.
const progressInterval = 250 * time.Millisecond

// AnalysisResult is the outcome of one pass over a stream.
type AnalysisResult struct {
	InputFile  string
	Info       source.Info
	Markers    []int
	Segments   []boundary.Segment
	FramesRead int
	Partial    bool // a decode error ended the stream early
	Elapsed    time.Duration
}

// Analyze runs the single-pass detection loop over src: every frame is
// reduced to luma, scored against its predecessor and fed to the boundary
// detector. Boundary frames are saved through exp when it is non-nil.
func Analyze(
	ctx context.Context,
	cfg *config.Config,
	src source.Source,
	exp *export.Exporter,
	rep reporter.Reporter,
	log *logging.Logger,
) (*AnalysisResult, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if log == nil {
		log = logging.Discard()
	}

	start := time.Now()
	info := src.Info()

	rep.AnalysisStarted(reporter.StreamSummary{
		InputFile:   cfg.InputFile,
		Decoder:     info.Decoder,
		Width:       info.Width,
		Height:      info.Height,
		FPS:         info.FPS,
		TotalFrames: info.TotalFrames,
		Threshold:   cfg.Threshold,
		MinDuration: cfg.MinDuration,
	})
	if cfg.Verbose > 0 {
		log.Info("stream opened", "fps", info.FPS, "width", info.Width, "height", info.Height, "decoder", info.Decoder)
	}

	first, err := src.Next()
	if ctx.Err() != nil {
		return nil, coreerrors.NewCancelledError()
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return nil, coreerrors.NewNoFramesError(cfg.InputFile, err)
	}

	prevGray := luma.Reduce(first, nil)
	var curGray *image.Gray
	var prevColor *image.RGBA

	save := func(frame int, img image.Image, tag export.Tag) {
		if _, err := exp.Save(frame, img, tag); err != nil {
			log.Warn("failed to save frame", "frame", frame, "error", err)
			rep.Warning(err.Error())
		}
	}

	if exp != nil {
		save(0, first, export.TagIn)
		prevColor = copyFrame(prevColor, first)
	}

	det := boundary.NewDetector(cfg.Threshold)
	partial := false
	boundaries := 0
	lastProgress := start
	frame := 1

	for {
		if ctx.Err() != nil {
			return nil, coreerrors.NewCancelledError()
		}

		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil && img.Bounds().Size() != prevGray.Bounds().Size() {
			err = fmt.Errorf("frame size changed from %v to %v", prevGray.Bounds().Size(), img.Bounds().Size())
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, coreerrors.NewCancelledError()
			}
			partial = true
			decodeErr := coreerrors.NewDecodeError(frame, err)
			log.Warn("stream ended early", "frame", frame, "error", err)
			rep.Warning(fmt.Sprintf("%v; results cover frames 0-%d", decodeErr, frame-1))
			break
		}

		curGray = luma.Reduce(img, curGray)
		score := luma.Score(curGray, prevGray)
		delta, isBoundary := det.Observe(frame, score)

		if cfg.Verbose > 1 || (cfg.Verbose == 1 && frame%config.VerboseSampleInterval == 0) {
			log.Info("frame", "frame", frame, "score", score, "diff", delta)
		}

		if isBoundary {
			boundaries++
			log.Debug("boundary", "frame", frame, "score", score, "diff", delta)
			rep.BoundaryDetected(reporter.BoundaryEvent{Frame: frame, Score: score, Delta: delta})
			if exp != nil {
				save(frame-1, prevColor, export.TagOut)
				save(frame, img, export.TagIn)
			}
		}

		prevGray, curGray = curGray, prevGray
		if exp != nil {
			prevColor = copyFrame(prevColor, img)
		}

		if now := time.Now(); now.Sub(lastProgress) >= progressInterval {
			lastProgress = now
			rep.FrameProgress(frameProgress(uint64(frame+1), info.TotalFrames, now.Sub(start)))
		}
		frame++
	}

	// A decoder killed by cancellation can still end on a frame boundary.
	if ctx.Err() != nil {
		return nil, coreerrors.NewCancelledError()
	}

	lastFrame := frame - 1
	markers := det.Finish(lastFrame)
	if exp != nil {
		save(lastFrame, prevColor, export.TagOut)
	}

	segments := boundary.Assemble(markers, cfg.MinDuration)
	result := &AnalysisResult{
		InputFile:  cfg.InputFile,
		Info:       info,
		Markers:    markers,
		Segments:   segments,
		FramesRead: frame,
		Partial:    partial,
		Elapsed:    time.Since(start),
	}

	rep.AnalysisComplete(reporter.AnalysisSummary{
		InputFile:  cfg.InputFile,
		FramesRead: result.FramesRead,
		Boundaries: boundaries,
		Segments:   len(segments),
		Dropped:    boundary.Dropped(markers, cfg.MinDuration),
		Elapsed:    result.Elapsed,
		Partial:    partial,
	})
	log.Debug("analysis complete", "frames", result.FramesRead, "markers", len(markers), "segments", len(segments))

	return result, nil
}

// copyFrame copies src into dst, reallocating dst only when the size
// changes. Decoders reuse their frame buffers, so the previous frame must
// be copied out before the next decode.
func copyFrame(dst *image.RGBA, src image.Image) *image.RGBA {
	b := src.Bounds()
	if dst == nil || dst.Bounds().Size() != b.Size() {
		dst = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func frameProgress(current, total uint64, elapsed time.Duration) reporter.FrameProgress {
	p := reporter.FrameProgress{CurrentFrame: current, TotalFrames: total}

	secs := elapsed.Seconds()
	if secs > 0 {
		p.FPS = float32(float64(current) / secs)
	}
	if total > 0 {
		p.Percent = float32(float64(current) / float64(total) * 100)
		if p.Percent > 100 {
			p.Percent = 100
		}
		if p.FPS > 0 && current < total {
			p.ETA = time.Duration(float64(total-current) / float64(p.FPS) * float64(time.Second))
		}
	}
	return p
}
