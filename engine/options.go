package engine

import "fmt"

// Options is the bitflag set accepted by the match and substitute
// primitives. One unsigned 32-bit type is used for every option value
// in the module.
type Options uint32

const (
	// Anchored restricts a match attempt to the starting offset: the
	// match must begin exactly at the given codeunit position.
	Anchored Options = 1 << iota

	// NotEmptyAtStart rejects a match that is empty and positioned at
	// the starting offset. Used by the scan protocol to force progress
	// after an empty match has already been reported at a position.
	NotEmptyAtStart

	// NoUTFCheck skips UTF-8 validation of the subject. A scan
	// validates on its first step and sets this for every later step;
	// validating once per step would make a scan quadratic.
	NoUTFCheck

	// SubstituteOverflowLength makes the substitute primitive keep
	// measuring after its output buffer overflows, so that the exact
	// required length is reported alongside CodeNoMemory. Without it
	// the primitive gives up at the first write that does not fit.
	SubstituteOverflowLength
)

// Newline identifies the newline convention a pattern was compiled
// with. The convention that treats CRLF as a single newline unit
// affects how the scan protocol advances past an empty match.
type Newline uint8

const (
	// NewlineLF recognizes only "\n".
	NewlineLF Newline = iota

	// NewlineCR recognizes only "\r".
	NewlineCR

	// NewlineCRLF recognizes only the two-codeunit "\r\n" sequence.
	NewlineCRLF

	// NewlineAnyCRLF recognizes "\r", "\n", and "\r\n".
	NewlineAnyCRLF

	// NewlineAny recognizes any Unicode newline sequence.
	NewlineAny
)

// String returns a human-readable convention name.
func (n Newline) String() string {
	switch n {
	case NewlineLF:
		return "LF"
	case NewlineCR:
		return "CR"
	case NewlineCRLF:
		return "CRLF"
	case NewlineAnyCRLF:
		return "AnyCRLF"
	case NewlineAny:
		return "Any"
	default:
		return fmt.Sprintf("UnknownNewline(%d)", uint8(n))
	}
}

// CRLFIsNewline reports whether the convention treats a "\r\n" pair as
// one newline unit. When true, an empty-match retry must never leave
// the scan positioned between the '\r' and the '\n'.
func (n Newline) CRLFIsNewline() bool {
	switch n {
	case NewlineCRLF, NewlineAnyCRLF, NewlineAny:
		return true
	default:
		return false
	}
}

// BSR identifies the backslash-R convention: what the \R escape is
// allowed to match. It is compiled-pattern metadata surfaced to
// callers; the primitives themselves do not consult it.
type BSR uint8

const (
	// BSRUnicode lets \R match any Unicode newline sequence.
	BSRUnicode BSR = iota

	// BSRAnyCRLF restricts \R to "\r", "\n", and "\r\n".
	BSRAnyCRLF
)

// String returns a human-readable convention name.
func (b BSR) String() string {
	switch b {
	case BSRUnicode:
		return "Unicode"
	case BSRAnyCRLF:
		return "AnyCRLF"
	default:
		return fmt.Sprintf("UnknownBSR(%d)", uint8(b))
	}
}

// Config controls pattern compilation at the engine boundary.
type Config struct {
	// UTF marks the pattern as codepoint-aware. Text subjects require
	// a UTF pattern; byte subjects require a non-UTF pattern.
	UTF bool

	// Newline selects the newline convention recorded in the compiled
	// pattern's metadata.
	Newline Newline

	// BSR selects the backslash-R convention recorded in the compiled
	// pattern's metadata.
	BSR BSR

	// Longest enables leftmost-longest (POSIX) match semantics.
	// Default is leftmost-first.
	Longest bool
}

// DefaultConfig returns the configuration used by plain compilation:
// a UTF pattern with the LF newline convention.
func DefaultConfig() Config {
	return Config{UTF: true, Newline: NewlineLF, BSR: BSRUnicode}
}
