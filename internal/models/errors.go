package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidImage    = errors.New("invalid image")
	ErrEmptyOutlineSet = errors.New("empty outline set")
	ErrWriteFailure    = errors.New("write failure")
	ErrInvalidConfig   = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidImage    ErrorKind = "invalid_image"
	KindEmptyOutlineSet ErrorKind = "empty_outline_set"
	KindWriteFailure    ErrorKind = "write_failure"
	KindInvalidConfig   ErrorKind = "invalid_config"
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidImage:    ErrInvalidImage,
	KindEmptyOutlineSet: ErrEmptyOutlineSet,
	KindWriteFailure:    ErrWriteFailure,
	KindInvalidConfig:   ErrInvalidConfig,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidImage) match any OpError of that kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// IsKind classifies err by walking its wrap chain for an OpError.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
