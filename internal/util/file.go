package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MPEGExtensions lists the extensions of MPEG-1 program and elementary
// streams.
var MPEGExtensions = map[string]bool{
	".mpg":  true,
	".mpeg": true,
	".m1v":  true,
}

// MP4Extensions lists the extensions of ISO base media files.
var MP4Extensions = map[string]bool{
	".mp4": true,
	".m4v": true,
	".mov": true,
}

// HasExtension reports whether path's lowercased extension is in exts.
func HasExtension(path string, exts map[string]bool) bool {
	return exts[strings.ToLower(filepath.Ext(path))]
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// EnsureDirectory creates a directory if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureDirectoryWritable creates path if needed and checks that files can
// be created in it.
func EnsureDirectoryWritable(path string) error {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	if err := EnsureDirectory(path); err != nil {
		return err
	}

	f, err := os.CreateTemp(path, ".shotsegments-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", path, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
