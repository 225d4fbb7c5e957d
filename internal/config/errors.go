// Package config provides configuration types and defaults for shotsegments.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrMissingInput indicates no input video path was given.
	ErrMissingInput = errors.New("input path is required")

	// ErrInvalidThreshold indicates a negative boundary threshold.
	ErrInvalidThreshold = errors.New("threshold out of range")

	// ErrInvalidMinDuration indicates a negative minimum segment length.
	ErrInvalidMinDuration = errors.New("minimum duration out of range")

	// ErrInvalidDecoder indicates an unknown decoder name was provided.
	ErrInvalidDecoder = errors.New("invalid decoder")
)
