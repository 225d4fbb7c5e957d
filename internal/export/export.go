// Package export saves boundary frames as JPEG images.
package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	coreerrors "github.com/five82/shotsegments/internal/errors"
	"github.com/five82/shotsegments/internal/util"
)

// Tag marks which side of a boundary a saved frame is on.
type Tag string

const (
	// TagIn is the first frame of a segment.
	TagIn Tag = "in"
	// TagOut is the last frame of a segment.
	TagOut Tag = "out"
)

// Exporter writes frames to a directory.
type Exporter struct {
	dir     string
	quality int
}

// New creates an exporter writing into dir with the given JPEG quality.
// An out-of-range quality falls back to the encoder default.
func New(dir string, quality int) *Exporter {
	if dir == "" {
		dir = "."
	}
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	return &Exporter{dir: dir, quality: quality}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Filename returns the name used for frame and tag, e.g. 00000030-in.jpg.
func Filename(frame int, tag Tag) string {
	return fmt.Sprintf("%08d-%s.jpg", frame, tag)
}

// Path returns the full output path for frame and tag.
func (e *Exporter) Path(frame int, tag Tag) string {
	return filepath.Join(e.dir, Filename(frame, tag))
}

// Save encodes img to the path for frame and tag, replacing any existing
// file, and returns the path written.
func (e *Exporter) Save(frame int, img image.Image, tag Tag) (string, error) {
	path := e.Path(frame, tag)

	if err := util.EnsureDirectory(e.dir); err != nil {
		return path, coreerrors.NewExportError(path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return path, coreerrors.NewExportError(path, err)
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: e.quality}); err != nil {
		_ = f.Close()
		return path, coreerrors.NewExportError(path, err)
	}

	if err := f.Close(); err != nil {
		return path, coreerrors.NewExportError(path, err)
	}
	return path, nil
}
