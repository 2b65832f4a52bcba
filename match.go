package rescan

import (
	"github.com/coregx/rescan/engine"
	"github.com/coregx/rescan/internal/offsets"
)

// Match represents one successful match of a Pattern against a
// Subject, including the positions of every capture group.
//
// Positions are reported in subject units: codepoints for text
// subjects, codeunits for byte subjects. Group 0 is the whole match;
// groups the pattern did not set report (-1, -1) and empty content.
//
// A Match owns its result storage and borrows the subject's
// underlying buffer; the buffer must stay valid while the Match is in
// use.
type Match struct {
	pat     *Pattern
	subject Subject
	md      *engine.MatchData

	// anchor is a translation anchor at or before the match start,
	// carried over from the operation that produced the match so
	// position reporting never rescans the subject from offset 0.
	anchor offsets.Pair
}

func newMatch(pat *Pattern, subject Subject, md *engine.MatchData, anchor offsets.Pair) *Match {
	return &Match{pat: pat, subject: subject, md: md, anchor: anchor}
}

// GroupCount returns the number of capture groups including group 0.
func (m *Match) GroupCount() int {
	return m.md.Groups()
}

// cuRange returns group i's codeunit range, or (-1, -1) if unset.
func (m *Match) cuRange(i int) (int, int) {
	if i < 0 || i >= m.md.Groups() {
		return -1, -1
	}
	ov := m.md.Ovector()
	return ov[2*i], ov[2*i+1]
}

// toSubjectUnits translates a codeunit offset to subject units.
// Identity for byte subjects. The subject's encoding was validated
// before the match succeeded, so translation cannot fail here; the
// codeunit offset is returned unchanged if it somehow does.
func (m *Match) toSubjectUnits(cu int) int {
	if !m.subject.IsText() {
		return cu
	}
	anchor := m.anchor
	if cu < anchor.CodeUnit {
		anchor = offsets.Pair{}
	}
	pair, err := offsets.ToCodepoint(m.subject.data, cu, anchor)
	if err != nil {
		return cu
	}
	return pair.Codepoint
}

// Start returns the inclusive start position of the whole match, in
// subject units.
func (m *Match) Start() int {
	s, _ := m.cuRange(0)
	return m.toSubjectUnits(s)
}

// End returns the exclusive end position of the whole match, in
// subject units.
func (m *Match) End() int {
	_, e := m.cuRange(0)
	return m.toSubjectUnits(e)
}

// Range returns group i's start and end positions in subject units.
// ok is false when the group exists but did not participate in the
// match, or when i is out of range; start and end are then -1.
func (m *Match) Range(i int) (start, end int, ok bool) {
	s, e := m.cuRange(i)
	if s < 0 || e < 0 {
		return -1, -1, false
	}
	return m.toSubjectUnits(s), m.toSubjectUnits(e), true
}

// Group returns the content of capture group i in the subject's
// representation. Unset and out-of-range groups return an empty
// subject.
func (m *Match) Group(i int) Subject {
	s, e := m.cuRange(i)
	if s < 0 || e < 0 {
		if m.subject.IsText() {
			return Text("")
		}
		return Bytes(nil)
	}
	if m.subject.IsText() {
		return Text(string(m.subject.data[s:e]))
	}
	return Bytes(m.subject.data[s:e])
}

// GroupByName returns the content of the named capture group. ok is
// false when the pattern has no group of that name.
func (m *Match) GroupByName(name string) (Subject, bool) {
	i := m.pat.GroupIndexByName(name)
	if i < 0 {
		return Subject{}, false
	}
	return m.Group(i), true
}

// Bytes returns the matched bytes as a view into the subject's
// storage (not a copy).
func (m *Match) Bytes() []byte {
	s, e := m.cuRange(0)
	if s < 0 || e < 0 {
		return nil
	}
	return m.subject.data[s:e]
}

// String returns the matched text as a string. This copies.
func (m *Match) String() string {
	return string(m.Bytes())
}

// IsEmpty reports whether the match has zero length. Empty matches
// occur with patterns like `x*` that match without consuming input.
func (m *Match) IsEmpty() bool {
	s, e := m.cuRange(0)
	return s == e
}
