// Package render writes the per-segment output lines.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/five82/shotsegments/internal/boundary"
	"github.com/five82/shotsegments/internal/ffmpeg"
)

// Renderer writes one line per retained segment.
type Renderer interface {
	Render(w io.Writer, segments []boundary.Segment) error
}

// Listing renders "<n>: <start> - <end>".
type Listing struct{}

// Render implements Renderer.
func (Listing) Render(w io.Writer, segments []boundary.Segment) error {
	for _, seg := range segments {
		if _, err := fmt.Fprintf(w, "%d: %d - %d\n", seg.Number, seg.Start, seg.End); err != nil {
			return err
		}
	}
	return nil
}

// Command renders one ffmpeg stream-copy command per segment.
type Command struct {
	Input string
	FPS   float64
}

// Render implements Renderer.
func (c Command) Render(w io.Writer, segments []boundary.Segment) error {
	for _, seg := range segments {
		if _, err := fmt.Fprintln(w, c.Line(seg)); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the extraction parameters for seg.
func (c Command) Params(seg boundary.Segment) ffmpeg.ExtractParams {
	return ffmpeg.ExtractParams{
		Input:  c.Input,
		Output: SegmentFilename(c.Input, seg.Number),
		Start:  seg.Start,
		End:    seg.End,
		FPS:    c.FPS,
	}
}

// Line returns the command line for seg. Only the input path is quoted;
// the output name is printed as is.
func (c Command) Line(seg boundary.Segment) string {
	args := ffmpeg.ExtractArgs(c.Params(seg))
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-i" {
			args[i+1] = `"` + args[i+1] + `"`
			break
		}
	}
	return ffmpeg.CommandLine(args)
}

// SegmentFilename derives the output file for segment n by inserting "-n"
// before the extension of input's base name. Names without an extension,
// or whose only dot is leading, get "-n" appended. The directory part is
// preserved.
func SegmentFilename(input string, n int) string {
	dir, base := filepath.Split(input)
	suffix := fmt.Sprintf("-%d", n)

	dot := strings.LastIndex(base, ".")
	if dot <= 0 {
		return dir + base + suffix
	}
	return dir + base[:dot] + suffix + base[dot:]
}
