package engine

import "fmt"

// Code is the signed return-code space of the native primitives.
// Non-negative values are success (the match primitive returns the
// number of capture group pairs filled, the substitute primitive the
// number of substitutions performed). Negative values are the
// no-match sentinel or an error.
type Code int32

const (
	// CodeNoMatch is the recognized "no match" sentinel. It terminates
	// a scan normally and is not a failure of the primitive.
	CodeNoMatch Code = -1

	// CodeBadUTF reports an ill-formed UTF-8 subject or replacement
	// given to a UTF pattern.
	CodeBadUTF Code = -4

	// CodeBadOffset reports a starting offset outside the subject.
	CodeBadOffset Code = -33

	// CodeInternal reports an inconsistency inside the engine adapter.
	CodeInternal Code = -44

	// CodeNoMemory reports that the substitute output buffer was too
	// small. With SubstituteOverflowLength set, the required length
	// has been stored through the output-length pointer.
	CodeNoMemory Code = -48

	// CodeNoSubstring reports a replacement reference to a capture
	// group the pattern does not have.
	CodeNoSubstring Code = -49

	// CodeBadReplacement reports a syntactically invalid replacement
	// string (e.g. a dangling "$" or an unterminated "${name}").
	CodeBadReplacement Code = -58
)

// String returns a human-readable code name.
func (c Code) String() string {
	switch c {
	case CodeNoMatch:
		return "NoMatch"
	case CodeBadUTF:
		return "BadUTF"
	case CodeBadOffset:
		return "BadOffset"
	case CodeInternal:
		return "Internal"
	case CodeNoMemory:
		return "NoMemory"
	case CodeNoSubstring:
		return "NoSubstring"
	case CodeBadReplacement:
		return "BadReplacement"
	default:
		if c >= 0 {
			return fmt.Sprintf("Success(%d)", int32(c))
		}
		return fmt.Sprintf("UnknownCode(%d)", int32(c))
	}
}
