// Package source provides decoded video frames in presentation order.
package source

import (
	"context"
	"image"
	"os"

	"github.com/five82/shotsegments/internal/config"
	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/logging"
	"github.com/five82/shotsegments/internal/util"
)

// Source yields frames one at a time. The image returned by Next stays valid
// only until the following call to Next. Next returns io.EOF after the last
// frame.
type Source interface {
	Info() Info
	Next() (image.Image, error)
	Close() error
}

// Info describes an opened stream.
type Info struct {
	Width       int
	Height      int
	FPS         float64 // nominal rate, 0 when unknown
	TotalFrames uint64  // 0 when unknown
	Decoder     string
}

// Open opens path with the requested decoder. In auto mode MPEG-1 files are
// decoded in-process and everything else, including MPEG files the native
// decoder rejects, goes through ffmpeg.
func Open(ctx context.Context, path string, decoder config.Decoder, log *logging.Logger) (Source, error) {
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("source")

	if _, err := os.Stat(path); err != nil {
		return nil, coreerrors.NewStreamOpenError(path, err)
	}

	switch decoder {
	case config.DecoderMPEG:
		src, err := NewMPEGSource(path)
		if err != nil {
			return nil, coreerrors.NewStreamOpenError(path, err)
		}
		return src, nil

	case config.DecoderFFmpeg:
		return openFFmpeg(ctx, path, log)

	default:
		if util.HasExtension(path, util.MPEGExtensions) {
			src, err := NewMPEGSource(path)
			if err == nil {
				return src, nil
			}
			log.Info("native MPEG decoder rejected stream, falling back to ffmpeg", "path", path, "error", err)
		}
		return openFFmpeg(ctx, path, log)
	}
}

func openFFmpeg(ctx context.Context, path string, log *logging.Logger) (Source, error) {
	src, err := NewFFmpegSource(ctx, path, log)
	if err != nil {
		return nil, coreerrors.NewStreamOpenError(path, err)
	}
	return src, nil
}
