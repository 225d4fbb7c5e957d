package source

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"

	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/ffmpeg"
	"github.com/five82/shotsegments/internal/ffprobe"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/mp4info"
	"github.com/five82/shotsegments/internal/util"
)

// FFmpegSource decodes any format ffmpeg understands by reading packed RGBA
// frames from an ffmpeg child process.
type FFmpegSource struct {
	info   Info
	cmd    *exec.Cmd
	stderr bytes.Buffer
	frames *rawFrameReader
	waitFn func() error
	waited bool
}

// NewFFmpegSource probes path and starts the decoding process.
func NewFFmpegSource(ctx context.Context, path string, log *logging.Logger) (*FFmpegSource, error) {
	info, err := probe(ctx, path, log)
	if err != nil {
		return nil, err
	}

	s := &FFmpegSource{info: info}
	s.cmd = exec.CommandContext(ctx, ffmpeg.Binary, ffmpeg.RawVideoArgs(path)...)
	s.cmd.Stderr = &s.stderr
	s.waitFn = s.cmd.Wait

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.frames = newRawFrameReader(stdout, info.Width, info.Height)
	log.Debug("ffmpeg decoder started", "path", path, "width", info.Width, "height", info.Height, "fps", info.FPS)
	return s, nil
}

// probe asks ffprobe for the stream geometry and rate, falling back to the
// container boxes for MP4-family files.
func probe(ctx context.Context, path string, log *logging.Logger) (Info, error) {
	vi, probeErr := ffprobe.GetVideoInfo(ctx, path)
	if probeErr == nil {
		return Info{
			Width:       vi.Width,
			Height:      vi.Height,
			FPS:         vi.FPS,
			TotalFrames: vi.TotalFrames,
			Decoder:     "ffmpeg",
		}, nil
	}

	if !util.HasExtension(path, util.MP4Extensions) {
		return Info{}, coreerrors.NewProbeError(path, probeErr)
	}

	log.Info("ffprobe failed, reading MP4 boxes", "path", path, "error", probeErr)
	mi, err := mp4info.Probe(path)
	if err != nil {
		return Info{}, coreerrors.NewProbeError(path, fmt.Errorf("%w; mp4: %v", probeErr, err))
	}
	return Info{
		Width:       mi.Width,
		Height:      mi.Height,
		FPS:         mi.FPS,
		TotalFrames: mi.TotalFrames,
		Decoder:     "ffmpeg",
	}, nil
}

// Info implements Source.
func (s *FFmpegSource) Info() Info {
	return s.info
}

// Next implements Source.
func (s *FFmpegSource) Next() (image.Image, error) {
	img, err := s.frames.Next()
	if err == nil {
		return img, nil
	}
	if err != io.EOF {
		return nil, err
	}

	// A decoder that dies closes the pipe, so a failed exit surfaces here as EOF.
	waitErr := s.wait()
	if waitErr == nil {
		return nil, io.EOF
	}
	msg := strings.TrimSpace(s.stderr.String())
	if s.frames.count == 0 {
		return nil, coreerrors.NewCommandWaitError(ffmpeg.Binary, fmt.Errorf("%w: %s", waitErr, msg))
	}
	return nil, coreerrors.NewCommandWaitError(ffmpeg.Binary,
		fmt.Errorf("exited after %d frames: %w: %s", s.frames.count, waitErr, msg))
}

// Close implements Source. It stops the decoder if frames remain unread.
func (s *FFmpegSource) Close() error {
	if s.waited {
		return nil
	}
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.wait()
	return nil
}

func (s *FFmpegSource) wait() error {
	if s.waited {
		return nil
	}
	s.waited = true
	return s.waitFn()
}

// rawFrameReader slices a byte stream of packed RGBA frames into images. The
// same image buffer is reused for every frame.
type rawFrameReader struct {
	r     *bufio.Reader
	img   *image.RGBA
	count int
}

func newRawFrameReader(r io.Reader, width, height int) *rawFrameReader {
	return &rawFrameReader{
		r:   bufio.NewReaderSize(r, width*height*4),
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Next reads one frame. A stream that ends exactly on a frame boundary
// returns io.EOF; one that ends mid-frame returns io.ErrUnexpectedEOF.
func (f *rawFrameReader) Next() (image.Image, error) {
	if _, err := io.ReadFull(f.r, f.img.Pix); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("truncated frame %d: %w", f.count, err)
		}
		return nil, err
	}
	f.count++
	return f.img, nil
}
