package dnm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is the sentinel wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("dnm: invalid configuration")

	// ErrInvalidRange is returned for offsets outside the buffer or inside
	// a UTF-8 sequence.
	ErrInvalidRange = errors.New("dnm: invalid range")

	// ErrForeignRange is returned when a range is used with a DNM other
	// than the one that produced it.
	ErrForeignRange = errors.New("dnm: range belongs to another DNM")

	// ErrUnmapped is returned for nodes that have no plain-text span, such
	// as descendants of skipped or placeholder elements.
	ErrUnmapped = errors.New("dnm: node not mapped")
)

// ConfigError reports an unknown or contradictory normalization option.
// It is fatal for the document being built.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dnm: option %s: %s", e.Option, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
