package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/shotsegments/internal/util"
)

// TerminalReporter outputs human-friendly text to a terminal.
type TerminalReporter struct {
	w          io.Writer
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent float32
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
	faint      *color.Color
}

// NewTerminalReporter creates a terminal reporter writing to w.
func NewTerminalReporter(w io.Writer) *TerminalReporter {
	return &TerminalReporter{
		w:       w,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		faint:   color.New(color.Faint),
	}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

// startProgress replaces the current bar. A max of -1 gives a spinner for
// streams of unknown length.
func (r *TerminalReporter) startProgress(max int64, label string) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		max,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      label + " [",
			BarEnd:        "]",
		}),
	)
}

// setProgress advances the bar without moving it backwards.
func (r *TerminalReporter) setProgress(value int64, percent float32, desc string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	if percent >= r.maxPercent {
		r.maxPercent = percent
		_ = r.progress.Set64(value)
	}
	r.progress.Describe(desc)
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	_, _ = fmt.Fprintf(r.w, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) section(title string) {
	_, _ = fmt.Fprintln(r.w)
	_, _ = r.cyan.Fprintln(r.w, title)
}

func (r *TerminalReporter) AnalysisStarted(summary StreamSummary) {
	r.section("VIDEO")
	const w = 13
	r.printLabel(w, "File:", summary.InputFile)
	r.printLabel(w, "Decoder:", summary.Decoder)
	r.printLabel(w, "Resolution:", fmt.Sprintf("%dx%d", summary.Width, summary.Height))
	r.printLabel(w, "Frame rate:", fmt.Sprintf("%.3f fps", summary.FPS))
	if summary.TotalFrames > 0 {
		r.printLabel(w, "Frames:", fmt.Sprintf("%d", summary.TotalFrames))
	} else {
		r.printLabel(w, "Frames:", r.faint.Sprint("unknown"))
	}
	r.printLabel(w, "Threshold:", fmt.Sprintf("%d", summary.Threshold))
	r.printLabel(w, "Min length:", fmt.Sprintf("%d frames", summary.MinDuration))

	r.section("ANALYSIS")
	if summary.TotalFrames > 0 {
		r.startProgress(100, "Scanning")
	} else {
		r.startProgress(-1, "Scanning")
	}
}

func (r *TerminalReporter) FrameProgress(progress FrameProgress) {
	desc := fmt.Sprintf("frame %d, %.1f fps", progress.CurrentFrame, progress.FPS)
	if progress.TotalFrames == 0 {
		r.setProgress(int64(progress.CurrentFrame), 0, desc)
		return
	}

	clamped := progress.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	desc += ", eta " + util.FormatDuration(progress.ETA.Seconds())
	r.setProgress(int64(clamped), clamped, desc)
}

func (r *TerminalReporter) BoundaryDetected(event BoundaryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		r.progress.Describe(fmt.Sprintf("cut at frame %d (score %d, delta %d)", event.Frame, event.Score, event.Delta))
	}
}

func (r *TerminalReporter) AnalysisComplete(summary AnalysisSummary) {
	r.finishProgress()

	_, _ = fmt.Fprintf(r.w, "  %s %d frames in %s\n",
		r.magenta.Sprint("›"),
		summary.FramesRead,
		util.FormatDuration(summary.Elapsed.Seconds()))
	_, _ = fmt.Fprintf(r.w, "  %s %d boundaries, %s kept, %d shorter than minimum\n",
		r.magenta.Sprint("›"),
		summary.Boundaries,
		r.green.Sprintf("%d segments", summary.Segments),
		summary.Dropped)
	if summary.Partial {
		_, _ = r.yellow.Fprintln(r.w, "  stream ended early, results are partial")
	}
}

func (r *TerminalReporter) ExtractionStarted(info ExtractionInfo) {
	if info.Segment == 1 {
		r.section("EXTRACTION")
	}
	_, _ = fmt.Fprintf(r.w, "  %s %s\n",
		r.bold.Sprintf("[%d/%d]", info.Segment, info.Total),
		info.OutputFile)
	r.startProgress(100, "Copying")
}

func (r *TerminalReporter) ExtractionProgress(progress ExtractionProgress) {
	desc := fmt.Sprintf("speed %.1fx, eta %s",
		progress.Speed, util.FormatDuration(progress.ETA.Seconds()))
	r.setProgress(int64(progress.Percent), progress.Percent, desc)
}

func (r *TerminalReporter) ExtractionComplete(outcome ExtractionOutcome) {
	r.finishProgress()
	_, _ = fmt.Fprintf(r.w, "  %s %s (%s)\n",
		r.green.Sprint("✓"),
		outcome.OutputFile,
		util.FormatBytes(outcome.Size))
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = fmt.Fprintln(r.w)
	_, _ = r.yellow.Fprintf(r.w, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()
	_, _ = fmt.Fprintln(r.w)
	_, _ = r.red.Fprintf(r.w, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.w, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.w, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.w, "  Suggestion: %s\n", err.Suggestion)
	}
}
