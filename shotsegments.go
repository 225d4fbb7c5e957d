// Package shotsegments splits a video into shots by scoring the luma
// difference between consecutive frames.
//
// Basic usage:
//
//	analyzer, err := shotsegments.New(
//	    shotsegments.WithThreshold(40),
//	    shotsegments.WithMinDuration(250),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := analyzer.Analyze(ctx, "movie.mp4", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, seg := range result.Segments {
//	    fmt.Printf("shot %d: frames %d-%d\n", seg.Number, seg.Start, seg.End)
//	}
package shotsegments

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/five82/shotsegments/internal/boundary"
	"github.com/five82/shotsegments/internal/config"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/processing"
	"github.com/five82/shotsegments/internal/reporter"
	"github.com/five82/shotsegments/internal/source"
)

// Re-export decoder types
type Decoder = config.Decoder

const (
	DecoderAuto   = config.DecoderAuto
	DecoderFFmpeg = config.DecoderFFmpeg
	DecoderMPEG   = config.DecoderMPEG
)

// ParseDecoder converts a decoder name to a Decoder value.
// Valid values are "auto", "ffmpeg" and "mpeg" (case-insensitive).
func ParseDecoder(s string) (Decoder, error) {
	return config.ParseDecoder(s)
}

// Segment is a retained shot, numbered from 1.
type Segment = boundary.Segment

// Reporter receives progress events during analysis and extraction.
type Reporter = reporter.Reporter

// NullReporter discards every event.
type NullReporter = reporter.NullReporter

// StreamInfo describes an opened stream.
type StreamInfo = source.Info

// FrameSource yields decoded frames in presentation order. Next returns
// io.EOF after the last frame.
type FrameSource = source.Source

// Analyzer detects shot boundaries with a fixed configuration.
type Analyzer struct {
	config    *config.Config
	reporters []Reporter
	logger    *logging.Logger
}

// Result contains the outcome of one analysis.
type Result struct {
	Markers    []int
	Segments   []Segment
	FramesRead int
	FPS        float64
	Partial    bool
	Elapsed    time.Duration
}

// Option configures the analyzer.
type Option func(*Analyzer)

// New creates an Analyzer with the given options.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{config: config.NewConfig(""), logger: logging.Global()}

	for _, opt := range opts {
		opt(a)
	}

	if err := a.config.ValidateSettings(); err != nil {
		return nil, err
	}

	return a, nil
}

// WithThreshold sets the score a frame and its score change must both exceed
// to start a new segment.
func WithThreshold(threshold int) Option {
	return func(a *Analyzer) {
		a.config.Threshold = threshold
	}
}

// WithMinDuration sets the minimum retained segment length in frames.
func WithMinDuration(frames int) Option {
	return func(a *Analyzer) {
		a.config.MinDuration = frames
	}
}

// WithFFmpegCommands writes ffmpeg extraction commands instead of a listing.
func WithFFmpegCommands() Option {
	return func(a *Analyzer) {
		a.config.Mode = config.OutputFFmpeg
	}
}

// WithExtraction runs the ffmpeg extraction commands after writing them.
func WithExtraction() Option {
	return func(a *Analyzer) {
		a.config.RunExtract = true
	}
}

// WithSaveImages saves the frames on both sides of every boundary as JPEG
// files in dir.
func WithSaveImages(dir string) Option {
	return func(a *Analyzer) {
		a.config.SaveImages = true
		if dir != "" {
			a.config.ImageDir = dir
		}
	}
}

// WithJPEGQuality sets the quality of saved frames (1-100).
func WithJPEGQuality(quality int) Option {
	return func(a *Analyzer) {
		a.config.JPEGQuality = quality
	}
}

// WithDecoder selects the frame decoder.
func WithDecoder(d Decoder) Option {
	return func(a *Analyzer) {
		a.config.Decoder = d
	}
}

// WithVerbose sets the frame score logging level.
func WithVerbose(level int) Option {
	return func(a *Analyzer) {
		a.config.Verbose = level
	}
}

// WithReporter adds a progress reporter. It may be given more than once.
func WithReporter(r Reporter) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.reporters = append(a.reporters, r)
		}
	}
}

// WithLogger routes diagnostic logging to l. Without it the package-wide
// logger is used, which writes warnings to stderr.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = &logging.Logger{Logger: l}
		}
	}
}

func (a *Analyzer) reporter() Reporter {
	switch len(a.reporters) {
	case 0:
		return NullReporter{}
	case 1:
		return a.reporters[0]
	default:
		return reporter.NewCompositeReporter(a.reporters...)
	}
}

func (a *Analyzer) configFor(input string) *config.Config {
	cfg := *a.config
	cfg.InputFile = input
	return &cfg
}

// Analyze decodes input and writes the segment listing, or the ffmpeg
// commands, to out. Nothing is written to out when analysis fails.
func (a *Analyzer) Analyze(ctx context.Context, input string, out io.Writer) (*Result, error) {
	r, err := processing.Run(ctx, a.configFor(input), out, a.reporter(), a.logger)
	return newResult(r), err
}

// AnalyzeFrames is Analyze over frames the caller decodes. input names the
// file the ffmpeg commands refer to. src is closed before returning.
func (a *Analyzer) AnalyzeFrames(ctx context.Context, input string, src FrameSource, out io.Writer) (*Result, error) {
	r, err := processing.RunSource(ctx, a.configFor(input), src, out, a.reporter(), a.logger)
	return newResult(r), err
}

func newResult(r *processing.AnalysisResult) *Result {
	if r == nil {
		return nil
	}
	return &Result{
		Markers:    r.Markers,
		Segments:   r.Segments,
		FramesRead: r.FramesRead,
		FPS:        r.Info.FPS,
		Partial:    r.Partial,
		Elapsed:    r.Elapsed,
	}
}
