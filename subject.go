package rescan

// Subject is an immutable window over caller-supplied input plus its
// representation: codepoint-addressed text or a raw byte sequence.
// Offsets given to and reported by pattern operations are codepoints
// for text subjects and codeunits (bytes) for byte subjects.
//
// A Subject borrows its storage. Byte subjects keep a reference to the
// caller's slice (not a copy); the caller must not mutate it while an
// operation or a Match produced from it is in use.
type Subject struct {
	data []byte
	text bool
}

// Text wraps a UTF-8 string as a codepoint-addressed subject.
func Text(s string) Subject {
	return Subject{data: []byte(s), text: true}
}

// Bytes wraps a byte slice as a codeunit-addressed subject. The slice
// is stored by reference for efficiency.
func Bytes(b []byte) Subject {
	return Subject{data: b}
}

// IsText reports whether the subject is codepoint-addressed.
func (s Subject) IsText() bool {
	return s.text
}

// Len returns the length of the underlying storage in codeunits.
func (s Subject) Len() int {
	return len(s.data)
}

// Bytes returns the underlying storage. The returned slice is a view,
// not a copy.
func (s Subject) Bytes() []byte {
	return s.data
}

// String returns the subject's content as a string. This copies.
func (s Subject) String() string {
	return string(s.data)
}

// kind names the representation for error messages.
func (s Subject) kind() string {
	if s.text {
		return "text"
	}
	return "bytes"
}
