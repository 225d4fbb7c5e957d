// Package timecode converts frame counts into the HH:MM:SS strings used by
// the extraction commands.
package timecode

import (
	"github.com/five82/shotsegments/internal/util"
)

// Mode selects how a frame count becomes a time-code.
type Mode int

const (
	// InputCut is the coarse pre-input seek, whole minutes only.
	InputCut Mode = iota
	// OutputCut is the fine post-input seek, the seconds within the minute.
	OutputCut
	// Duration is a span length, rounded up by one second.
	Duration
)

func (m Mode) String() string {
	switch m {
	case InputCut:
		return "input-cut"
	case OutputCut:
		return "output-cut"
	case Duration:
		return "duration"
	default:
		return "unknown"
	}
}

// Seconds returns the whole-second value for frame under mode.
// A non-positive fps yields zero elapsed seconds.
func Seconds(frame int, fps float64, mode Mode) int64 {
	var total int64
	if fps > 0 {
		total = int64(float64(frame) / fps)
	}

	switch mode {
	case InputCut:
		total -= total % 60
	case OutputCut:
		total %= 60
	case Duration:
		total++
	}
	return total
}

// Format renders frame under mode as zero-padded HH:MM:SS. Hours are not
// wrapped at 24.
func Format(frame int, fps float64, mode Mode) string {
	return util.FormatDurationFromSecs(Seconds(frame, fps, mode))
}
