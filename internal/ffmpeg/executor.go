package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/util"
)

// Progress represents extraction progress for one segment.
type Progress struct {
	CurrentFrame uint64
	TotalFrames  uint64
	Percent      float32
	Speed        float32
	ETA          time.Duration
	ElapsedSecs  float64
}

// ProgressCallback is called with progress updates while ffmpeg runs.
type ProgressCallback func(Progress)

// Result contains the outcome of an ffmpeg run.
type Result struct {
	Success bool
	Error   error
	Stderr  string
}

var timeRegex = regexp.MustCompile(`time=(\d{2}:\d{2}:\d{2}\.?\d*)`)

// RunExtract executes the extraction described by p, reporting progress
// parsed from ffmpeg's stderr.
func RunExtract(ctx context.Context, p ExtractParams, callback ProgressCallback) Result {
	return Run(ctx, ExtractArgs(p), p.DurationSecs(), uint64(p.Frames()), callback)
}

// Run executes ffmpeg with args. duration and totalFrames scale the progress
// percentage and ETA; either may be zero when unknown.
func Run(ctx context.Context, args []string, duration float64, totalFrames uint64, callback ProgressCallback) Result {
	cmd := exec.CommandContext(ctx, Binary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{Error: coreerrors.NewCommandStartError(Binary, err)}
	}

	if err := cmd.Start(); err != nil {
		return Result{Error: coreerrors.NewCommandStartError(Binary, err)}
	}

	logging.Debug("ffmpeg started", "command", CommandLine(args))

	var stderrBuilder strings.Builder
	parseProgress(stderr, &stderrBuilder, duration, totalFrames, callback)

	err = cmd.Wait()
	stderrStr := stderrBuilder.String()

	if err != nil {
		if ctx.Err() != nil {
			return Result{Error: coreerrors.NewCancelledError(), Stderr: stderrStr}
		}
		logging.Debug("ffmpeg failed", "error", err, "stderr", lastLine(stderrStr))
		return Result{
			Error:  coreerrors.WrapExecError(Binary, err, lastLine(stderrStr)),
			Stderr: stderrStr,
		}
	}

	return Result{Success: true, Stderr: stderrStr}
}

// parseProgress copies stderr into stderrBuilder and reports every progress
// line. ffmpeg terminates progress lines with \r and messages with \n.
func parseProgress(stderr io.Reader, stderrBuilder *strings.Builder, duration float64, totalFrames uint64, callback ProgressCallback) {
	reader := bufio.NewReader(stderr)
	var lineBuf strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		stderrBuilder.WriteByte(b)

		if b != '\r' && b != '\n' {
			lineBuf.WriteByte(b)
			continue
		}

		line := lineBuf.String()
		lineBuf.Reset()
		if callback != nil && strings.Contains(line, "time=") {
			callback(parseProgressLine(line, duration, totalFrames))
		}
	}
}

// parseProgressLine extracts progress information from an ffmpeg status line.
// Stream-copy runs report frame=0 for most containers, so time= drives the
// percentage.
func parseProgressLine(line string, duration float64, totalFrames uint64) Progress {
	p := Progress{TotalFrames: totalFrames}

	if matches := timeRegex.FindStringSubmatch(line); len(matches) >= 2 {
		if secs, ok := util.ParseFFmpegTime(matches[1]); ok {
			p.ElapsedSecs = secs
		}
	}

	if v, ok := fieldValue(line, "frame="); ok {
		if f, err := strconv.ParseUint(v, 10, 64); err == nil {
			p.CurrentFrame = f
		}
	}

	if v, ok := fieldValue(line, "speed="); ok {
		if s, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 32); err == nil {
			p.Speed = float32(s)
		}
	}

	if duration > 0 {
		p.Percent = float32(p.ElapsedSecs / duration * 100)
		if p.Percent > 100 {
			p.Percent = 100
		}
		if p.Speed > 0 && p.ElapsedSecs < duration {
			p.ETA = time.Duration((duration - p.ElapsedSecs) / float64(p.Speed) * float64(time.Second))
		}
	}

	return p
}

// fieldValue returns the token following key, skipping the padding ffmpeg
// inserts after '='.
func fieldValue(line, key string) (string, bool) {
	idx := strings.Index(line, key)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(line[idx+len(key):], " ")
	if end := strings.IndexAny(rest, " \t\r\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest, rest != ""
}

// lastLine returns the last non-empty line of s, which is where ffmpeg puts
// the fatal message.
func lastLine(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

// CommandLine renders args as a shell-style command line for display.
func CommandLine(args []string) string {
	return fmt.Sprintf("%s %s", Binary, strings.Join(args, " "))
}
