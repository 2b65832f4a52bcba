package engine

import (
	"bytes"
	"unicode/utf8"
)

// boundedWriter appends into a fixed-capacity destination while
// keeping count of the length the full output needs, so an overflowing
// call can still report the exact required size.
type boundedWriter struct {
	dst    []byte
	limit  int
	needed int
}

func (w *boundedWriter) write(p []byte) {
	if w.needed < w.limit {
		copy(w.dst[w.needed:w.limit], p)
	}
	w.needed += len(p)
}

func (w *boundedWriter) writeByte(b byte) {
	if w.needed < w.limit {
		w.dst[w.needed] = b
	}
	w.needed++
}

func (w *boundedWriter) overflowed() bool {
	return w.needed > w.limit
}

// Substitute performs a global replace of every match of the pattern
// in subject, starting at the codeunit offset start, writing the
// result into out. On input *outLen is the usable capacity of out; on
// return it holds the produced length (or, when the buffer overflowed
// and SubstituteOverflowLength was set, the exact length a successful
// call needs). The return value is the number of substitutions
// performed, or a negative Code.
//
// Replacement syntax: $0…$n, ${n}, ${name}, and $$ for a literal
// dollar sign. A reference to a group the pattern does not have is
// CodeNoSubstring; a dangling "$" or unterminated "${" is
// CodeBadReplacement. Unset groups substitute as empty.
func (c *Compiled) Substitute(subject, repl []byte, start int, opts Options, out []byte, outLen *int) int {
	if start < 0 || start > len(subject) {
		return int(CodeBadOffset)
	}
	if c.cfg.UTF && opts&NoUTFCheck == 0 && (!utf8.Valid(subject) || !utf8.Valid(repl)) {
		return int(CodeBadUTF)
	}

	w := boundedWriter{dst: out, limit: *outLen}
	overflow := opts&SubstituteOverflowLength != 0
	matchOpts := opts &^ SubstituteOverflowLength

	md := NewMatchData(c.groups)
	defer md.Release()

	count := 0
	lastEnd := 0
	pos := start
	for pos <= len(subject) {
		rc := c.Match(subject, pos, matchOpts, md)
		if rc == int(CodeNoMatch) {
			break
		}
		if rc < 0 {
			return rc
		}
		// The subject was validated (or vouched for) once; anchors in
		// later attempts must not re-anchor, and re-validating per
		// match would be quadratic.
		matchOpts = matchOpts&^Anchored | NoUTFCheck

		ov := md.Ovector()
		mstart, mend := ov[0], ov[1]
		w.write(subject[lastEnd:mstart])
		if rc := c.expand(&w, repl, subject, ov); rc < 0 {
			return rc
		}
		count++
		lastEnd = mend
		pos = mend

		if mstart == mend {
			// Empty match: carry over the codepoint (or CRLF unit) it
			// sits in front of, then resume past it.
			if mend >= len(subject) {
				break
			}
			width := 1
			if c.cfg.Newline.CRLFIsNewline() && mend+1 < len(subject) &&
				subject[mend] == '\r' && subject[mend+1] == '\n' {
				width = 2
			} else if c.cfg.UTF {
				_, width = utf8.DecodeRune(subject[mend:])
			}
			w.write(subject[mend : mend+width])
			lastEnd = mend + width
			pos = lastEnd
		}

		if !overflow && w.overflowed() {
			*outLen = w.needed
			return int(CodeNoMemory)
		}
	}
	w.write(subject[lastEnd:])

	*outLen = w.needed
	if w.overflowed() {
		return int(CodeNoMemory)
	}
	return count
}

// expand writes repl into w, substituting group references against the
// offset vector ov.
func (c *Compiled) expand(w *boundedWriter, repl, subject []byte, ov []int) int {
	i := 0
	for i < len(repl) {
		ch := repl[i]
		if ch != '$' {
			w.writeByte(ch)
			i++
			continue
		}
		if i+1 >= len(repl) {
			return int(CodeBadReplacement)
		}
		next := repl[i+1]
		switch {
		case next == '$':
			w.writeByte('$')
			i += 2
		case next == '{':
			end := bytes.IndexByte(repl[i+2:], '}')
			if end < 0 {
				return int(CodeBadReplacement)
			}
			ref := repl[i+2 : i+2+end]
			group, ok := c.resolveGroup(ref)
			if !ok {
				return int(CodeNoSubstring)
			}
			c.writeGroup(w, subject, ov, group)
			i += 2 + end + 1
		case next >= '0' && next <= '9':
			j := i + 1
			group := 0
			for j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				group = group*10 + int(repl[j]-'0')
				j++
			}
			if group >= c.groups {
				return int(CodeNoSubstring)
			}
			c.writeGroup(w, subject, ov, group)
			i = j
		default:
			return int(CodeBadReplacement)
		}
	}
	return 0
}

// resolveGroup maps a ${…} reference, numeric or named, to a group
// index.
func (c *Compiled) resolveGroup(ref []byte) (int, bool) {
	if len(ref) == 0 {
		return 0, false
	}
	numeric := true
	group := 0
	for _, b := range ref {
		if b < '0' || b > '9' {
			numeric = false
			break
		}
		group = group*10 + int(b-'0')
	}
	if numeric {
		return group, group < c.groups
	}
	group, ok := c.nameToGroup[string(ref)]
	return group, ok
}

func (c *Compiled) writeGroup(w *boundedWriter, subject []byte, ov []int, group int) {
	gs, ge := ov[2*group], ov[2*group+1]
	if gs < 0 || ge < 0 {
		return
	}
	w.write(subject[gs:ge])
}
