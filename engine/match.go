package engine

import (
	"unicode/utf8"

	"github.com/coregx/coregex/meta"
)

// Match performs one attempt of the match primitive against subject,
// starting at the codeunit offset start, and fills md's offset vector
// on success. The return value is the number of capture group pairs
// filled (non-negative) or a negative Code.
//
// Ownership of md transfers to the caller's consumer on success; on a
// negative return the caller still owns md and is expected to release
// it.
func (c *Compiled) Match(subject []byte, start int, opts Options, md *MatchData) int {
	if start < 0 || start > len(subject) {
		return int(CodeBadOffset)
	}
	if c.cfg.UTF && opts&NoUTFCheck == 0 && !utf8.Valid(subject) {
		return int(CodeBadUTF)
	}
	if md.Groups() < c.groups {
		return int(CodeInternal)
	}

	m := c.attempt(subject, start, opts)
	if m == nil {
		return int(CodeNoMatch)
	}

	g0 := m.GroupIndex(0)
	if len(g0) < 2 {
		return int(CodeInternal)
	}
	if opts&NotEmptyAtStart != 0 && g0[0] == start && g0[1] == start {
		// An empty match exactly at the starting offset is forbidden.
		// Anchored attempts have nowhere else to go; unanchored ones
		// resume past the rejected position.
		if opts&Anchored != 0 {
			return int(CodeNoMatch)
		}
		width := 1
		if c.cfg.UTF && start < len(subject) {
			_, width = utf8.DecodeRune(subject[start:])
		}
		if start+width > len(subject) {
			return int(CodeNoMatch)
		}
		m = c.attempt(subject, start+width, opts&^NotEmptyAtStart)
		if m == nil {
			return int(CodeNoMatch)
		}
	}

	ov := md.Ovector()
	for i := 0; i < c.groups; i++ {
		idx := m.GroupIndex(i)
		if len(idx) >= 2 {
			ov[2*i] = idx[0]
			ov[2*i+1] = idx[1]
		} else {
			ov[2*i] = -1
			ov[2*i+1] = -1
		}
	}
	return c.groups
}

// attempt runs the coregx engine over the full subject so assertions
// that look left of start (\b, \B, a multiline ^) see their real
// context. An Anchored attempt accepts the result only when it
// begins exactly at start: leftmost semantics guarantee that if any
// match starts at start, the returned one does.
func (c *Compiled) attempt(subject []byte, start int, opts Options) *meta.MatchWithCaptures {
	m := c.eng.FindSubmatchAt(subject, start)
	if m == nil {
		return nil
	}
	if opts&Anchored != 0 {
		g0 := m.GroupIndex(0)
		if len(g0) < 2 || g0[0] != start {
			return nil
		}
	}
	return m
}
