package source

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gen2brain/mpeg"
)

// maxEmptyDecodes bounds how many consecutive calls may return no picture
// before the stream is treated as finished.
const maxEmptyDecodes = 1024

// MPEGSource decodes MPEG-1 program streams in-process.
type MPEGSource struct {
	file *os.File
	mpg  *mpeg.MPEG
	info Info
}

// NewMPEGSource opens path and reads the video sequence header.
func NewMPEGSource(path string) (*MPEGSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	mpg, err := mpeg.New(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mpeg: %w", err)
	}

	if mpg.Width() <= 0 || mpg.Height() <= 0 {
		_ = f.Close()
		return nil, errors.New("mpeg: no video stream")
	}
	mpg.SetAudioEnabled(false)

	return &MPEGSource{
		file: f,
		mpg:  mpg,
		info: Info{
			Width:   mpg.Width(),
			Height:  mpg.Height(),
			FPS:     mpg.Framerate(),
			Decoder: "mpeg",
		},
	}, nil
}

// Info implements Source.
func (s *MPEGSource) Info() Info {
	return s.info
}

// Next implements Source.
func (s *MPEGSource) Next() (image.Image, error) {
	for i := 0; i < maxEmptyDecodes; i++ {
		if frame := s.mpg.DecodeVideo(); frame != nil {
			return frame.YCbCr(), nil
		}
		if s.mpg.HasEnded() {
			return nil, io.EOF
		}
	}
	return nil, io.EOF
}

// Close implements Source.
func (s *MPEGSource) Close() error {
	return s.file.Close()
}
