package reporter

// Reporter defines the interface for progress reporting. Implementations
// write to stderr or elsewhere, never to the stream carrying the segment
// output.
type Reporter interface {
	AnalysisStarted(summary StreamSummary)
	FrameProgress(progress FrameProgress)
	BoundaryDetected(event BoundaryEvent)
	AnalysisComplete(summary AnalysisSummary)
	ExtractionStarted(info ExtractionInfo)
	ExtractionProgress(progress ExtractionProgress)
	ExtractionComplete(outcome ExtractionOutcome)
	Warning(message string)
	Error(err ReporterError)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) AnalysisStarted(StreamSummary)         {}
func (NullReporter) FrameProgress(FrameProgress)           {}
func (NullReporter) BoundaryDetected(BoundaryEvent)        {}
func (NullReporter) AnalysisComplete(AnalysisSummary)      {}
func (NullReporter) ExtractionStarted(ExtractionInfo)      {}
func (NullReporter) ExtractionProgress(ExtractionProgress) {}
func (NullReporter) ExtractionComplete(ExtractionOutcome)  {}
func (NullReporter) Warning(string)                        {}
func (NullReporter) Error(ReporterError)                   {}
