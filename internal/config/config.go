// Package config provides configuration types and defaults for shotsegments.
package config

import (
	"fmt"
	"math"
	"strings"
)

// Default constants
const (
	// DefaultThreshold is the score and score-delta a frame must exceed to start a new segment.
	DefaultThreshold = 50

	// DefaultMinDuration is the minimum segment length in frames.
	DefaultMinDuration = 1000

	// DefaultImageDir is where boundary frames are written with --save-images.
	DefaultImageDir = "."

	// DefaultJPEGQuality is the quality used for saved boundary frames.
	DefaultJPEGQuality = 90

	// VerboseSampleInterval is how often frame scores are logged at verbose level 1.
	VerboseSampleInterval = 1000
)

// Decoder selects the Frame Source implementation.
type Decoder string

const (
	DecoderAuto   Decoder = "auto"
	DecoderFFmpeg Decoder = "ffmpeg"
	DecoderMPEG   Decoder = "mpeg"
)

// ParseDecoder parses a string into a Decoder.
// Valid values are "auto", "ffmpeg" and "mpeg" (case-insensitive).
func ParseDecoder(s string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DecoderAuto, nil
	case "ffmpeg":
		return DecoderFFmpeg, nil
	case "mpeg":
		return DecoderMPEG, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: auto, ffmpeg, mpeg", ErrInvalidDecoder, s)
	}
}

// String returns the string representation of the decoder.
func (d Decoder) String() string {
	return string(d)
}

// OutputMode selects how retained segments are rendered.
type OutputMode int

const (
	// OutputListing prints "<n>: <start> - <end>" per segment.
	OutputListing OutputMode = iota
	// OutputFFmpeg prints one ffmpeg extraction command per segment.
	OutputFFmpeg
)

// Config holds all configuration for one analysis run.
type Config struct {
	InputFile string

	// Boundary detection
	Threshold   int
	MinDuration int // frames

	// Output
	Mode       OutputMode
	RunExtract bool // execute the ffmpeg commands instead of printing them

	// Frame export
	SaveImages  bool
	ImageDir    string
	JPEGQuality int

	Decoder Decoder
	Verbose int
}

// NewConfig creates a new Config with default values.
func NewConfig(inputFile string) *Config {
	return &Config{
		InputFile:   inputFile,
		Threshold:   DefaultThreshold,
		MinDuration: DefaultMinDuration,
		Mode:        OutputListing,
		ImageDir:    DefaultImageDir,
		JPEGQuality: DefaultJPEGQuality,
		Decoder:     DecoderAuto,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return ErrMissingInput
	}
	return c.ValidateSettings()
}

// ValidateSettings checks everything except the input path.
func (c *Config) ValidateSettings() error {
	if c.Threshold < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidThreshold, c.Threshold)
	}

	if c.MinDuration < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidMinDuration, c.MinDuration)
	}

	if _, err := ParseDecoder(string(c.Decoder)); err != nil {
		return err
	}

	return nil
}

// CommandMode reports whether segments are turned into ffmpeg commands.
func (c *Config) CommandMode() bool {
	return c.Mode == OutputFFmpeg || c.RunExtract
}

// ParseCount parses a numeric option the way C atoi does and substitutes def
// for anything that is not a positive number: garbage, zero, negative values
// and values that overflow 32 bits all become def. This means an explicit 0
// can never be requested from the command line.
//
// Plain atoi-with-zero-fallback would let "-5" through as -5. Negative
// values are rejected here instead, since thresholds and durations are
// never negative.
func ParseCount(s string, def int) int {
	n, ok := atoi(s)
	if !ok || n <= 0 {
		return def
	}
	return n
}

// ParseLevel parses an optional verbosity level with atoi semantics.
// Unparseable input yields 0.
func ParseLevel(s string) int {
	n, ok := atoi(s)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// atoi reads an optionally signed run of leading decimal digits after any
// leading whitespace and ignores whatever follows. ok is false when no digits
// were found or the value does not fit in 32 bits.
func atoi(s string) (n int, ok bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	var v int64
	for ; digits < len(s); digits++ {
		ch := s[digits]
		if ch < '0' || ch > '9' {
			break
		}
		v = v*10 + int64(ch-'0')
		if v > math.MaxInt32 {
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}

	if neg {
		v = -v
	}
	return int(v), true
}
