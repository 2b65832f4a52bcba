// Package offsets translates between codepoint offsets (what callers of
// a text-mode pattern reason about) and codeunit offsets (the byte
// positions the matching primitive operates on).
//
// Both translation directions walk forward from a previously known
// anchor pair, never backward and never from the start of the buffer.
// Successive scan steps therefore pay only for the distance advanced
// since the previous step instead of rescanning the whole subject,
// which keeps a full scan linear in the subject length.
package offsets

import (
	"fmt"
	"unicode/utf8"
)

// Pair is a (codeunit, codepoint) anchor. Invariant: CodeUnit is the
// byte position of the start of the codepoint at Codepoint, and
// CodeUnit >= Codepoint (a UTF-8 codepoint occupies at least one byte).
type Pair struct {
	CodeUnit  int
	Codepoint int
}

// DecodeError reports ill-formed UTF-8 encountered during translation.
// Offset is the byte position of the offending sequence.
type DecodeError struct {
	Offset int
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence at byte offset %d", e.Offset)
}

// ToCodeUnit walks forward from anchor until the codepoint offset
// target is reached or the end of data is hit, and returns the
// resulting pair. The returned pair is a valid anchor for later
// translations.
func ToCodeUnit(data []byte, target int, anchor Pair) (Pair, error) {
	cu, cp := anchor.CodeUnit, anchor.Codepoint
	for cp < target && cu < len(data) {
		r, size := utf8.DecodeRune(data[cu:])
		if r == utf8.RuneError && size == 1 {
			return Pair{}, &DecodeError{Offset: cu}
		}
		cu += size
		cp++
	}
	return Pair{CodeUnit: cu, Codepoint: cp}, nil
}

// ToCodepoint walks forward from anchor until the codeunit offset
// target is reached or the end of data is hit, and returns the
// resulting pair. target must lie on a codepoint boundary; a target
// inside a multi-byte sequence resolves to the start of the next
// codepoint.
func ToCodepoint(data []byte, target int, anchor Pair) (Pair, error) {
	cu, cp := anchor.CodeUnit, anchor.Codepoint
	for cu < target && cu < len(data) {
		r, size := utf8.DecodeRune(data[cu:])
		if r == utf8.RuneError && size == 1 {
			return Pair{}, &DecodeError{Offset: cu}
		}
		cu += size
		cp++
	}
	return Pair{CodeUnit: cu, Codepoint: cp}, nil
}
