// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// StreamSummary describes the opened input before analysis starts.
type StreamSummary struct {
	InputFile   string
	Decoder     string
	Width       int
	Height      int
	FPS         float64
	TotalFrames uint64 // 0 when unknown
	Threshold   int
	MinDuration int
}

// FrameProgress contains analysis progress information.
type FrameProgress struct {
	CurrentFrame uint64
	TotalFrames  uint64
	Percent      float32 // 0 when TotalFrames is unknown
	FPS          float32 // frames analysed per second of wall time
	ETA          time.Duration
}

// BoundaryEvent is emitted for every detected shot boundary.
type BoundaryEvent struct {
	Frame int
	Score int
	Delta int
}

// AnalysisSummary contains the results of a completed pass.
type AnalysisSummary struct {
	InputFile  string
	FramesRead int
	Boundaries int
	Segments   int
	Dropped    int // segments shorter than the minimum duration
	Elapsed    time.Duration
	Partial    bool // stream ended early on a decode error
}

// ExtractionInfo describes one segment extraction about to run.
type ExtractionInfo struct {
	Segment    int
	Total      int
	OutputFile string
	Command    string
}

// ExtractionProgress contains progress of the running extraction.
type ExtractionProgress struct {
	Segment int
	Total   int
	Percent float32
	Speed   float32
	ETA     time.Duration
}

// ExtractionOutcome contains the result of one finished extraction.
type ExtractionOutcome struct {
	Segment    int
	Total      int
	OutputFile string
	Size       uint64
	Elapsed    time.Duration
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}
