package boundary

// Segment is the half-open frame range [Start, End) between two markers.
type Segment struct {
	Number int // 1-based, counts retained segments only
	Start  int
	End    int
}

// Length returns the segment length in frames.
func (s Segment) Length() int {
	return s.End - s.Start
}

// Assemble pairs adjacent markers into segments and keeps those at least
// minDuration frames long. Rejected ranges are dropped, not merged, and
// numbering skips them.
func Assemble(markers []int, minDuration int) []Segment {
	if len(markers) < 2 {
		return nil
	}

	var segments []Segment
	for i := 1; i < len(markers); i++ {
		start, end := markers[i-1], markers[i]
		if end-start < minDuration {
			continue
		}
		segments = append(segments, Segment{
			Number: len(segments) + 1,
			Start:  start,
			End:    end,
		})
	}

	return segments
}

// Dropped returns how many marker pairs Assemble rejects.
func Dropped(markers []int, minDuration int) int {
	if len(markers) < 2 {
		return 0
	}
	return len(markers) - 1 - len(Assemble(markers, minDuration))
}
