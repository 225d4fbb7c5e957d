package reporter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// recorder counts events by name.
type recorder struct {
	NullReporter
	events []string
}

func (r *recorder) AnalysisStarted(StreamSummary)    { r.events = append(r.events, "started") }
func (r *recorder) BoundaryDetected(BoundaryEvent)   { r.events = append(r.events, "boundary") }
func (r *recorder) AnalysisComplete(AnalysisSummary) { r.events = append(r.events, "complete") }
func (r *recorder) Warning(string)                   { r.events = append(r.events, "warning") }

func TestCompositeReporterFansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	c := NewCompositeReporter(a, b, NullReporter{})

	c.AnalysisStarted(StreamSummary{})
	c.FrameProgress(FrameProgress{})
	c.BoundaryDetected(BoundaryEvent{Frame: 3})
	c.AnalysisComplete(AnalysisSummary{})
	c.Warning("w")

	want := "started,boundary,complete,warning"
	for i, r := range []*recorder{a, b} {
		if got := strings.Join(r.events, ","); got != want {
			t.Errorf("reporter %d events = %q, want %q", i, got, want)
		}
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func TestJSONReporterEvents(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	r.AnalysisStarted(StreamSummary{InputFile: "in.mp4", Width: 640, Height: 360, FPS: 25, Threshold: 50, MinDuration: 1000})
	r.BoundaryDetected(BoundaryEvent{Frame: 30, Score: 80, Delta: 80})
	r.AnalysisComplete(AnalysisSummary{FramesRead: 120, Boundaries: 1, Segments: 1, Dropped: 1})

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	types := []string{"analysis_started", "boundary", "analysis_complete"}
	for i, want := range types {
		if got := lines[i]["type"]; got != want {
			t.Errorf("line %d type = %v, want %s", i, got, want)
		}
	}
	if got := lines[1]["frame"]; got != float64(30) {
		t.Errorf("boundary frame = %v, want 30", got)
	}
	if got := lines[2]["dropped"]; got != float64(1) {
		t.Errorf("dropped = %v, want 1", got)
	}
}

func TestJSONReporterThrottlesProgress(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	clock := time.Unix(1000, 0)
	r.now = func() time.Time { return clock }

	r.FrameProgress(FrameProgress{Percent: 10.2})
	r.FrameProgress(FrameProgress{Percent: 10.5}) // same bucket, same instant
	r.FrameProgress(FrameProgress{Percent: 11.0}) // new bucket
	clock = clock.Add(6 * time.Second)
	r.FrameProgress(FrameProgress{Percent: 11.1}) // interval elapsed
	r.FrameProgress(FrameProgress{Percent: 99.5}) // near completion

	if got := len(decodeLines(t, &buf)); got != 4 {
		t.Errorf("emitted %d progress events, want 4", got)
	}
}

func TestJSONReporterResetsThrottlePerPhase(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	clock := time.Unix(1000, 0)
	r.now = func() time.Time { return clock }

	r.ExtractionStarted(ExtractionInfo{Segment: 1, Total: 2})
	r.ExtractionProgress(ExtractionProgress{Percent: 50})
	r.ExtractionStarted(ExtractionInfo{Segment: 2, Total: 2})
	r.ExtractionProgress(ExtractionProgress{Percent: 5})

	lines := decodeLines(t, &buf)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[3]["type"] != "extraction_progress" {
		t.Errorf("last event type = %v, want extraction_progress", lines[3]["type"])
	}
}

func TestTerminalReporterWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalReporter(&buf)

	r.AnalysisStarted(StreamSummary{InputFile: "clip.mpg", Decoder: "mpeg", Width: 320, Height: 240, FPS: 25})
	r.FrameProgress(FrameProgress{CurrentFrame: 10})
	r.AnalysisComplete(AnalysisSummary{FramesRead: 10, Elapsed: 75 * time.Second, Partial: true})
	r.Warning("careful")
	r.Error(ReporterError{Title: "Failed", Message: "boom", Suggestion: "retry"})

	out := buf.String()
	for _, want := range []string{"clip.mpg", "320x240", "unknown", "10 frames", "00:01:15", "partial", "careful", "boom", "retry"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
