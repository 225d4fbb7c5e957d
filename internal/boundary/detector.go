// Package boundary turns a stream of frame scores into shot boundaries and
// duration-filtered segments.
package boundary

// Detector is the per-pass boundary state machine. A frame starts a new
// segment when both its score and the jump from the previous frame's score
// exceed the threshold, so sustained high motion does not keep triggering.
type Detector struct {
	threshold int
	lastScore int
	markers   []int
}

// NewDetector creates a detector whose marker list already holds frame 0.
func NewDetector(threshold int) *Detector {
	return &Detector{
		threshold: threshold,
		markers:   []int{0},
	}
}

// Threshold returns the configured threshold.
func (d *Detector) Threshold() int {
	return d.threshold
}

// Observe feeds the score of frame (which must be > 0 and follow the
// previously observed frame) and reports the score delta and whether frame
// was recorded as a boundary. lastScore always advances, boundary or not.
func (d *Detector) Observe(frame, score int) (delta int, boundary bool) {
	delta = score - d.lastScore
	if delta < 0 {
		delta = -delta
	}

	if score > d.threshold && delta > d.threshold {
		d.markers = append(d.markers, frame)
		boundary = true
	}

	d.lastScore = score
	return delta, boundary
}

// LastScore returns the score of the most recently observed frame.
func (d *Detector) LastScore() int {
	return d.lastScore
}

// Markers returns the markers recorded so far.
func (d *Detector) Markers() []int {
	return d.markers
}

// Finish appends lastFrame as the closing marker and returns the full list.
// lastFrame is skipped when it is already the final marker, which happens
// for a single-frame stream or a boundary on the very last frame, so the
// list stays strictly increasing.
func (d *Detector) Finish(lastFrame int) []int {
	if lastFrame > d.markers[len(d.markers)-1] {
		d.markers = append(d.markers, lastFrame)
	}
	return d.markers
}
