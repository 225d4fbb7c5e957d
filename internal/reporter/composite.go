package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) AnalysisStarted(summary StreamSummary) {
	for _, r := range c.reporters {
		r.AnalysisStarted(summary)
	}
}

func (c *CompositeReporter) FrameProgress(progress FrameProgress) {
	for _, r := range c.reporters {
		r.FrameProgress(progress)
	}
}

func (c *CompositeReporter) BoundaryDetected(event BoundaryEvent) {
	for _, r := range c.reporters {
		r.BoundaryDetected(event)
	}
}

func (c *CompositeReporter) AnalysisComplete(summary AnalysisSummary) {
	for _, r := range c.reporters {
		r.AnalysisComplete(summary)
	}
}

func (c *CompositeReporter) ExtractionStarted(info ExtractionInfo) {
	for _, r := range c.reporters {
		r.ExtractionStarted(info)
	}
}

func (c *CompositeReporter) ExtractionProgress(progress ExtractionProgress) {
	for _, r := range c.reporters {
		r.ExtractionProgress(progress)
	}
}

func (c *CompositeReporter) ExtractionComplete(outcome ExtractionOutcome) {
	for _, r := range c.reporters {
		r.ExtractionComplete(outcome)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}
