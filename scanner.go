package rescan

import (
	"fmt"

	"github.com/coregx/rescan/engine"
	"github.com/coregx/rescan/internal/offsets"
)

// scanState is the Scanner's position in its state machine.
type scanState uint8

const (
	// scanSearching attempts an ordinary match at the next position.
	scanSearching scanState = iota

	// scanRetrying re-attempts at the same position with the
	// no-empty-match-at-start and anchored options, after an empty
	// match was reported there.
	scanRetrying

	// scanDone is terminal: the sequence is exhausted.
	scanDone

	// scanFailed is terminal: an error stopped the scan.
	scanFailed
)

// String returns a human-readable state name.
func (s scanState) String() string {
	switch s {
	case scanSearching:
		return "Searching"
	case scanRetrying:
		return "Retrying"
	case scanDone:
		return "Done"
	case scanFailed:
		return "Failed"
	default:
		return fmt.Sprintf("UnknownState(%d)", uint8(s))
	}
}

// ScanStats tracks scan execution counters, useful for performance
// analysis and tests of the iteration protocol.
type ScanStats struct {
	// Steps counts state machine steps (native match attempts).
	Steps uint64

	// Retries counts empty-match retries at the same position.
	Retries uint64

	// Matches counts matches produced.
	Matches uint64
}

// Scanner is a lazy, ordered, finite iterator over the matches of a
// Pattern in a Subject. The usage model follows bufio.Scanner:
//
//	sc, err := re.Scan(subject, 0)
//	if err != nil {
//	    return err
//	}
//	for sc.Scan() {
//	    m := sc.Match()
//	    // ...
//	}
//	if err := sc.Err(); err != nil {
//	    return err
//	}
//
// A Scanner yields at most one empty match per position and always
// makes forward progress, so a scan over a pattern that matches the
// empty string still terminates. When the pattern's newline convention
// treats CRLF as one unit, the advance after an empty match never
// lands between the '\r' and '\n' of a CRLF pair.
//
// A Scanner is single-use and not safe for concurrent use; construct
// a new one to restart. Abandoning a Scanner before exhaustion needs
// no teardown.
type Scanner struct {
	pat     *Pattern
	subject Subject
	groups  int

	state   scanState
	nextObj int          // next codepoint offset to attempt
	anchor  offsets.Pair // translation anchor from the previous step
	pending engine.Options
	base    engine.Options

	cur   *Match
	err   error
	stats ScanStats
}

// Scan scans the subject for successive non-overlapping matches,
// beginning at the given offset (codepoints for text subjects,
// codeunits for byte subjects). A representation mismatch between
// pattern and subject is reported before any native call.
func (p *Pattern) Scan(subject Subject, offset int) (*Scanner, error) {
	if err := p.checkSubject(subject); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, &EngineError{Op: "scan", Code: engine.CodeBadOffset}
	}
	return &Scanner{
		pat:     p,
		subject: subject,
		groups:  p.native.GroupCount(),
		state:   scanSearching,
		nextObj: offset,
	}, nil
}

// Scan advances to the next match. It returns false when the subject
// is exhausted or an error occurred; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.state == scanDone || s.state == scanFailed {
		return false
	}
	data := s.subject.data

	for {
		s.stats.Steps++

		pair, err := s.translate(data)
		if err != nil {
			return s.fail(err)
		}
		if pair.Codepoint < s.nextObj {
			// The requested position lies past the end of the subject.
			s.state = scanDone
			return false
		}
		s.anchor = pair
		ofst := pair.CodeUnit

		md := engine.NewMatchData(s.groups)
		rc := s.pat.native.Match(data, ofst, s.base|s.pending, md)
		s.base |= engine.NoUTFCheck

		if rc == int(engine.CodeNoMatch) {
			md.Release()
			if s.pending == 0 {
				s.state = scanDone
				return false
			}
			// The retry after an empty match found nothing non-empty
			// here; move on by one codepoint, or past a whole CRLF
			// pair when the convention counts it as one newline unit.
			s.pending = 0
			s.nextObj = pair.Codepoint + 1
			if s.pat.native.Newline().CRLFIsNewline() && ofst+1 < len(data) &&
				data[ofst] == '\r' && data[ofst+1] == '\n' {
				s.nextObj++
			}
			s.state = scanSearching
			continue
		}
		if rc < 0 {
			md.Release()
			return s.fail(&EngineError{Op: "scan", Code: engine.Code(rc)})
		}

		ov := md.Ovector()
		if ov[0] == ov[1] {
			// Empty match, possibly ahead of the current position:
			// produce it, then retry at its own position with the
			// forcing options so no position is reported empty twice.
			if ov[0] != ofst {
				startPair := offsets.Pair{CodeUnit: ov[0], Codepoint: ov[0]}
				if s.subject.IsText() {
					startPair, err = offsets.ToCodepoint(data, ov[0], pair)
					if err != nil {
						md.Release()
						return s.fail(err)
					}
				}
				s.anchor = startPair
				s.nextObj = startPair.Codepoint
				pair = startPair
			}
			s.pending = engine.NotEmptyAtStart | engine.Anchored
			s.state = scanRetrying
			s.stats.Retries++
		} else {
			s.pending = 0
			endPair := pair
			if s.subject.IsText() {
				endPair, err = offsets.ToCodepoint(data, ov[1], pair)
				if err != nil {
					md.Release()
					return s.fail(err)
				}
			} else {
				endPair = offsets.Pair{CodeUnit: ov[1], Codepoint: ov[1]}
			}
			s.anchor = endPair
			s.nextObj = endPair.Codepoint
			s.state = scanSearching
		}

		s.cur = newMatch(s.pat, s.subject, md, pair)
		s.stats.Matches++
		return true
	}
}

// translate maps nextObj to a codeunit position, walking forward from
// the previous step's anchor. Identity for byte subjects.
func (s *Scanner) translate(data []byte) (offsets.Pair, error) {
	if !s.subject.IsText() {
		cu := s.nextObj
		if cu > len(data) {
			cu = len(data)
		}
		return offsets.Pair{CodeUnit: cu, Codepoint: cu}, nil
	}
	return offsets.ToCodeUnit(data, s.nextObj, s.anchor)
}

func (s *Scanner) fail(err error) bool {
	s.state = scanFailed
	s.err = err
	return false
}

// Match returns the match produced by the last successful call to
// Scan. Matches already produced remain valid after the scan ends or
// fails.
func (s *Scanner) Match() *Match {
	return s.cur
}

// Err returns the error that stopped the scan, or nil if the subject
// was exhausted normally.
func (s *Scanner) Err() error {
	return s.err
}

// Stats returns execution counters for the scan so far.
func (s *Scanner) Stats() ScanStats {
	return s.stats
}
