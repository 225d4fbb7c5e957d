package ffmpeg

import (
	"github.com/five82/shotsegments/internal/timecode"
)

// ExtractParams describes one segment extraction.
type ExtractParams struct {
	Input  string
	Output string
	Start  int // first frame
	End    int // one past the last frame
	FPS    float64
}

// Frames returns the segment length in frames.
func (p ExtractParams) Frames() int {
	return p.End - p.Start
}

// DurationSecs returns the span passed to -t, in seconds.
func (p ExtractParams) DurationSecs() float64 {
	return float64(timecode.Seconds(p.Frames(), p.FPS, timecode.Duration))
}

// ExtractArgs returns the ffmpeg arguments (without the binary) for a
// stream-copy extraction: a coarse seek to the minute before the input, a
// fine seek after it, then the duration.
func ExtractArgs(p ExtractParams) []string {
	return NewArgsBuilder().
		Seek(timecode.Format(p.Start, p.FPS, timecode.InputCut)).
		Input(p.Input).
		Seek(timecode.Format(p.Start, p.FPS, timecode.OutputCut)).
		Duration(timecode.Format(p.Frames(), p.FPS, timecode.Duration)).
		CopyCodecs().
		Overwrite().
		Add(p.Output).
		Build()
}

// RawVideoArgs returns the arguments that decode the first video stream of
// input to packed RGBA frames on stdout.
func RawVideoArgs(input string) []string {
	return NewArgsBuilder().
		Add("-nostdin", "-v", "error", "-noautorotate").
		Input(input).
		Add("-map", "0:v:0", "-f", "rawvideo", "-pix_fmt", "rgba", "-").
		Build()
}
