package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// JSONReporter outputs one JSON object per event (NDJSON) for tools that
// drive shotsegments as a subprocess.
type JSONReporter struct {
	writer             io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
	now                func() time.Time
}

// NewJSONReporter creates a JSON reporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer:             w,
		lastProgressBucket: -1,
		now:                time.Now,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return r.now().Unix()
}

func (r *JSONReporter) write(v map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) resetThrottle() {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.lastProgressTime = time.Time{}
	r.mu.Unlock()
}

// shouldEmit throttles progress to one event per percent, or one every five
// seconds when the percentage is unknown or stalls.
func (r *JSONReporter) shouldEmit(percent float32) bool {
	const minInterval = 5 * time.Second

	bucket := int(percent)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	if bucket <= r.lastProgressBucket && !intervalElapsed && percent < 99.0 {
		return false
	}
	if bucket > r.lastProgressBucket {
		r.lastProgressBucket = bucket
	}
	r.lastProgressTime = now
	return true
}

func (r *JSONReporter) AnalysisStarted(summary StreamSummary) {
	r.resetThrottle()
	r.write(map[string]any{
		"type":         "analysis_started",
		"input_file":   summary.InputFile,
		"decoder":      summary.Decoder,
		"width":        summary.Width,
		"height":       summary.Height,
		"fps":          summary.FPS,
		"total_frames": summary.TotalFrames,
		"threshold":    summary.Threshold,
		"min_duration": summary.MinDuration,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) FrameProgress(progress FrameProgress) {
	if !r.shouldEmit(progress.Percent) {
		return
	}
	r.write(map[string]any{
		"type":          "frame_progress",
		"current_frame": progress.CurrentFrame,
		"total_frames":  progress.TotalFrames,
		"percent":       progress.Percent,
		"fps":           progress.FPS,
		"eta_seconds":   int64(progress.ETA.Seconds()),
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) BoundaryDetected(event BoundaryEvent) {
	r.write(map[string]any{
		"type":      "boundary",
		"frame":     event.Frame,
		"score":     event.Score,
		"delta":     event.Delta,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) AnalysisComplete(summary AnalysisSummary) {
	r.write(map[string]any{
		"type":             "analysis_complete",
		"input_file":       summary.InputFile,
		"frames_read":      summary.FramesRead,
		"boundaries":       summary.Boundaries,
		"segments":         summary.Segments,
		"dropped":          summary.Dropped,
		"partial":          summary.Partial,
		"duration_seconds": int64(summary.Elapsed.Seconds()),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) ExtractionStarted(info ExtractionInfo) {
	r.resetThrottle()
	r.write(map[string]any{
		"type":        "extraction_started",
		"segment":     info.Segment,
		"total":       info.Total,
		"output_file": info.OutputFile,
		"command":     info.Command,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) ExtractionProgress(progress ExtractionProgress) {
	if !r.shouldEmit(progress.Percent) {
		return
	}
	r.write(map[string]any{
		"type":        "extraction_progress",
		"segment":     progress.Segment,
		"total":       progress.Total,
		"percent":     progress.Percent,
		"speed":       progress.Speed,
		"eta_seconds": int64(progress.ETA.Seconds()),
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) ExtractionComplete(outcome ExtractionOutcome) {
	r.write(map[string]any{
		"type":             "extraction_complete",
		"segment":          outcome.Segment,
		"total":            outcome.Total,
		"output_file":      outcome.OutputFile,
		"size":             outcome.Size,
		"duration_seconds": int64(outcome.Elapsed.Seconds()),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]any{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]any{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}
