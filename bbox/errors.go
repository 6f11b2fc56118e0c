package bbox

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidFrame is returned when an image frame has a non-positive side.
var ErrInvalidFrame = errors.New("invalid image frame")

// UnknownFormatError is returned for a box format outside the supported set.
type UnknownFormatError struct {
	// Format is the rejected format name.
	Format string
	// Role is "source" or "target", or empty when parsing a bare name.
	Role string
	// Supported lists the names accepted where the error was raised.
	Supported []Format
}

func (e *UnknownFormatError) Error() string {
	names := make([]string, len(e.Supported))
	for i, f := range e.Supported {
		names[i] = "'" + string(f) + "'"
	}
	role := "format"
	if e.Role != "" {
		role = e.Role + "_format"
	}
	return fmt.Sprintf("unknown %s %s. Supported formats are: %s", role, e.Format, strings.Join(names, ", "))
}

// RangeError is returned when a coordinate falls outside its permitted range.
type RangeError struct {
	// Axis is the coordinate name, e.g. "x_max" or "width".
	Axis string
	// Box holds all four coordinates of the offending box.
	Box [4]float64
	// Value is the offending coordinate.
	Value float64
	// Range describes the permitted interval, e.g. "[0.0, 1.0]".
	Range string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("expected %s for bbox %v to be in the range %s, got %v", e.Axis, e.Box, e.Range, e.Value)
}

// OrderError is returned when a box's minimum is not below its maximum.
type OrderError struct {
	// Axis is "x" or "y".
	Axis string
	// Box holds all four coordinates of the offending box.
	Box [4]float64
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s_max is less than or equal to %s_min for bbox %v", e.Axis, e.Axis, e.Box)
}

// ConfigurationError is returned when label fields and box data disagree.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

func checkFrame(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return errors.Wrapf(ErrInvalidFrame, "rows=%d cols=%d", rows, cols)
	}
	return nil
}
