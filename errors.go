package rescan

import (
	"errors"
	"fmt"

	"github.com/coregx/rescan/engine"
	"github.com/coregx/rescan/internal/offsets"
)

// Common errors
var (
	// ErrNoMatch indicates the pattern did not match the subject.
	// A single Match reports it; a scan simply ends instead.
	ErrNoMatch = errors.New("no match")

	// ErrRepresentation indicates a representation disagreement:
	// a text pattern given a byte subject (or vice versa), or a
	// subject and replacement of different representations. Matched
	// with errors.Is against RepresentationError values.
	ErrRepresentation = errors.New("representation mismatch")
)

// RepresentationError reports which two inputs disagree about their
// representation. It is detected before any native call, so the
// operation has no partial effects.
type RepresentationError struct {
	// Left and Right name the disagreeing inputs, e.g. "text pattern"
	// and "bytes subject".
	Left  string
	Right string
}

// Error implements the error interface.
func (e *RepresentationError) Error() string {
	return fmt.Sprintf("representation mismatch: %s cannot operate on %s", e.Left, e.Right)
}

// Is reports true for ErrRepresentation, enabling errors.Is checks
// without inspecting the concrete type.
func (e *RepresentationError) Is(target error) bool {
	return target == ErrRepresentation
}

// EngineError reports a negative native return code other than the
// recognized no-match and overflow sentinels. It is fatal to the
// operation that produced it.
type EngineError struct {
	// Op is the operation that failed: "match", "scan", or
	// "substitute".
	Op string

	// Code is the native code, attached unchanged.
	Code engine.Code
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("%s failed: engine code %d (%s)", e.Op, int32(e.Code), e.Code)
}

// Is implements error comparison: two EngineErrors are equal when
// their codes agree, regardless of the operation.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// DecodeError reports ill-formed UTF-8 encountered during offset
// translation on a text subject. It is fatal to the operation.
type DecodeError = offsets.DecodeError
