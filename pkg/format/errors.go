package format

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInputTooLarge is returned when a query exceeds the configured
	// maximum size. The concrete error is a *SizeLimitError.
	ErrInputTooLarge = errors.New("input query too large")

	// ErrInvalidIndentUnit is returned when the indent unit contains
	// anything other than tabs and spaces.
	ErrInvalidIndentUnit = errors.New("invalid indentation: only spaces and tabs are allowed")
)

// SizeLimitError reports an input rejected by the size guard.
type SizeLimitError struct {
	Size  int
	Limit int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("input query too large: %d bytes exceeds the maximum of %d bytes", e.Size, e.Limit)
}

// Is makes errors.Is(err, ErrInputTooLarge) match.
func (e *SizeLimitError) Is(target error) bool {
	return target == ErrInputTooLarge
}
