// Package errors provides structured error types for shotsegments operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents I/O errors.
	KindIO ErrorKind = iota
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindCommand represents external command execution errors.
	KindCommand
	// KindProbe represents stream probing errors.
	KindProbe
	// KindStreamOpen represents a video that cannot be opened for decoding.
	KindStreamOpen
	// KindNoFrames represents a stream that opened but produced no frames.
	KindNoFrames
	// KindDecode represents a frame decode failure.
	KindDecode
	// KindExport represents a failure writing a boundary frame image.
	KindExport
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "Configuration error"
	case KindCommand:
		return "Command error"
	case KindProbe:
		return "Probe error"
	case KindStreamOpen:
		return "Stream open error"
	case KindNoFrames:
		return "No frames"
	case KindDecode:
		return "Decode error"
	case KindExport:
		return "Export error"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for shotsegments operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandWaitError creates an error for when waiting for a command fails.
func NewCommandWaitError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandWait, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewProbeError creates a new stream probing error.
func NewProbeError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbe, Message: fmt.Sprintf("can't probe %s", path), Underlying: underlying}
}

// NewStreamOpenError creates an error for a video that cannot be opened.
func NewStreamOpenError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindStreamOpen, Message: fmt.Sprintf("%s: can't open video", path), Underlying: underlying}
}

// NewNoFramesError creates an error for a stream that yielded no frames.
func NewNoFramesError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindNoFrames, Message: fmt.Sprintf("%s: need some frames", path), Underlying: underlying}
}

// NewDecodeError creates a frame decode error.
func NewDecodeError(frame int, underlying error) *CoreError {
	return &CoreError{Kind: KindDecode, Message: fmt.Sprintf("failed to decode frame %d", frame), Underlying: underlying}
}

// NewExportError creates a frame export error.
func NewExportError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindExport, Message: fmt.Sprintf("failed to write %s", path), Underlying: underlying}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsStreamError reports whether err is a stream open or no-frames error.
// These are the failures the CLI maps to exit status 1.
func IsStreamError(err error) bool {
	return IsKind(err, KindStreamOpen) || IsKind(err, KindNoFrames)
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}
