// Package rescan exposes a compiled text pattern as an object offering
// single-match, iterative-scan, and find-and-replace operations over a
// subject that is either codepoint-addressed text or a raw byte
// sequence.
//
// Matching itself is delegated to the coregx regex engine; rescan adds
// the protocols around it:
//   - Offset translation between the codepoint positions callers
//     reason about and the codeunit positions the engine requires,
//     anchored so successive scan steps never rescan the subject.
//   - The scan iteration protocol: at most one empty match per
//     position, guaranteed forward progress, and CRLF-aware recovery
//     after empty matches.
//   - The substitution buffer protocol: optimistic allocation with
//     exactly one exact-size retry on overflow.
//
// Basic usage:
//
//	re, err := rescan.Compile(`(\w+)@(\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := re.Match(rescan.Text("mail user@example now"), 0, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.String()) // "user@example"
//
//	sc, _ := re.Scan(rescan.Text("a@b c@d"), 0)
//	for sc.Scan() {
//	    fmt.Println(sc.Match().String())
//	}
//
// Subjects carry their representation explicitly: rescan.Text for
// codepoint-addressed text, rescan.Bytes for codeunit-addressed bytes.
// A pattern compiled with Compile operates on text subjects; one
// compiled with CompileBytes operates on byte subjects. Mixing the two
// is reported as a RepresentationError before the engine is invoked.
package rescan

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/coregx/rescan/engine"
	"github.com/coregx/rescan/internal/offsets"
)

// Options is the option bitflag set accepted by Match, Scan, and
// Substitute. See the engine package for the individual flags.
type Options = engine.Options

// Config controls compilation.
type Config struct {
	// Newline selects the newline convention recorded in the
	// compiled pattern. The conventions that treat CRLF as one unit
	// change how a scan advances past an empty match.
	Newline engine.Newline

	// BSR selects the backslash-R convention recorded in the
	// compiled pattern.
	BSR engine.BSR

	// Longest enables leftmost-longest (POSIX) match semantics.
	Longest bool

	// LowMemory makes Substitute probe for the exact result length
	// with an empty buffer instead of allocating an optimistic one.
	LowMemory bool
}

// DefaultConfig returns the configuration used by Compile and
// CompileBytes: LF newline convention, Unicode \R, leftmost-first.
func DefaultConfig() Config {
	return Config{Newline: engine.NewlineLF, BSR: engine.BSRUnicode}
}

// nativePattern is the compiled-pattern surface the protocols are
// written against. engine.Compiled is the production implementation;
// tests substitute scripted fakes to drive the error and overflow
// paths.
type nativePattern interface {
	Match(subject []byte, start int, opts engine.Options, md *engine.MatchData) int
	Substitute(subject, repl []byte, start int, opts engine.Options, out []byte, outLen *int) int
	GroupCount() int
	IsUTF() bool
	Newline() engine.Newline
	BSR() engine.BSR
	NameTable() (table []byte, entrySize, count int)
}

// Pattern is a compiled pattern. It is immutable after compilation
// and safe for sequential reuse across operations; each Scanner it
// produces is single-use.
type Pattern struct {
	pattern string
	native  nativePattern
	cfg     Config

	namesOnce sync.Once
	names     map[string]int
}

// Compile compiles a pattern that operates on text subjects.
// Syntax is the coregx engine's (Perl-compatible, as in stdlib
// regexp).
//
// Example:
//
//	re, err := rescan.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileBytes compiles a pattern that operates on byte subjects:
// offsets are codeunits and no encoding translation or validation
// occurs.
func CompileBytes(pattern string) (*Pattern, error) {
	return CompileBytesWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be
// compiled. It simplifies safe initialization of global variables
// holding compiled patterns.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("rescan: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// MustCompileBytes is like CompileBytes but panics if the pattern
// cannot be compiled.
func MustCompileBytes(pattern string) *Pattern {
	p, err := CompileBytes(pattern)
	if err != nil {
		panic("rescan: CompileBytes(`" + pattern + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles a text-subject pattern with a custom
// configuration.
func CompileWithConfig(pattern string, cfg Config) (*Pattern, error) {
	return compile(pattern, cfg, true)
}

// CompileBytesWithConfig compiles a byte-subject pattern with a
// custom configuration.
func CompileBytesWithConfig(pattern string, cfg Config) (*Pattern, error) {
	return compile(pattern, cfg, false)
}

func compile(pattern string, cfg Config, utf bool) (*Pattern, error) {
	c, err := engine.Compile(pattern, engine.Config{
		UTF:     utf,
		Newline: cfg.Newline,
		BSR:     cfg.BSR,
		Longest: cfg.Longest,
	})
	if err != nil {
		return nil, err
	}
	return &Pattern{pattern: pattern, native: c, cfg: cfg}, nil
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.pattern
}

// IsText reports whether the pattern operates on text subjects.
func (p *Pattern) IsText() bool {
	return p.native.IsUTF()
}

// GroupCount returns the number of capture groups including group 0,
// the whole match.
func (p *Pattern) GroupCount() int {
	return p.native.GroupCount()
}

// NewlineConvention returns the newline convention the pattern was
// compiled with.
func (p *Pattern) NewlineConvention() engine.Newline {
	return p.native.Newline()
}

// BSRConvention returns the backslash-R convention the pattern was
// compiled with.
func (p *Pattern) BSRConvention() engine.BSR {
	return p.native.BSR()
}

// Names returns the pattern's named capture groups mapped to their
// group indices, parsed from the engine's raw name table (fixed-size
// entries, 2-byte big-endian group index, NUL-terminated name). The
// map is shared and must not be modified.
func (p *Pattern) Names() map[string]int {
	p.namesOnce.Do(func() {
		table, entrySize, count := p.native.NameTable()
		p.names = make(map[string]int, count)
		for i := 0; i < count; i++ {
			entry := table[i*entrySize : (i+1)*entrySize]
			group := int(binary.BigEndian.Uint16(entry))
			name := entry[2:]
			if j := bytes.IndexByte(name, 0); j >= 0 {
				name = name[:j]
			}
			p.names[string(name)] = group
		}
	})
	return p.names
}

// GroupIndexByName returns the group index for a named capture group,
// or -1 if the pattern has no group of that name.
func (p *Pattern) GroupIndexByName(name string) int {
	if i, ok := p.Names()[name]; ok {
		return i
	}
	return -1
}

// checkSubject rejects a subject whose representation disagrees with
// the pattern's, before any native call.
func (p *Pattern) checkSubject(s Subject) error {
	if p.native.IsUTF() == s.IsText() {
		return nil
	}
	left, right := "text pattern", "bytes subject"
	if !p.native.IsUTF() {
		left, right = "bytes pattern", "text subject"
	}
	return &RepresentationError{Left: left, Right: right}
}

// Match returns the first match of the pattern in subject at or after
// offset (subject units). It returns ErrNoMatch when the pattern does
// not match, and a RepresentationError before any native call when
// pattern and subject representations differ.
func (p *Pattern) Match(subject Subject, offset int, opts Options) (*Match, error) {
	if err := p.checkSubject(subject); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, &EngineError{Op: "match", Code: engine.CodeBadOffset}
	}
	data := subject.data

	pair := offsets.Pair{CodeUnit: offset, Codepoint: offset}
	if subject.IsText() {
		var err error
		pair, err = offsets.ToCodeUnit(data, offset, offsets.Pair{})
		if err != nil {
			return nil, err
		}
		if pair.Codepoint < offset {
			return nil, &EngineError{Op: "match", Code: engine.CodeBadOffset}
		}
	}

	md := engine.NewMatchData(p.native.GroupCount())
	rc := p.native.Match(data, pair.CodeUnit, opts, md)
	if rc == int(engine.CodeNoMatch) {
		md.Release()
		return nil, ErrNoMatch
	}
	if rc < 0 {
		md.Release()
		return nil, &EngineError{Op: "match", Code: engine.Code(rc)}
	}
	return newMatch(p, subject, md, pair), nil
}

// FindAll returns all successive matches of the pattern in subject.
// If n > 0, it returns at most n matches. If n <= 0, it returns all
// matches; n == 0 returns nil.
func (p *Pattern) FindAll(subject Subject, n int) ([]*Match, error) {
	if n == 0 {
		return nil, nil
	}
	sc, err := p.Scan(subject, 0)
	if err != nil {
		return nil, err
	}
	var matches []*Match
	for sc.Scan() {
		matches = append(matches, sc.Match())
		if n > 0 && len(matches) >= n {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// Count returns the number of non-overlapping matches of the pattern
// in subject. If n > 0, it counts at most n matches; n <= 0 counts
// all.
func (p *Pattern) Count(subject Subject, n int) (int, error) {
	sc, err := p.Scan(subject, 0)
	if err != nil {
		return 0, err
	}
	count := 0
	for sc.Scan() {
		count++
		if n > 0 && count >= n {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// Split slices subject into the substrings between matches of the
// pattern, in subject's representation.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last is the unsplit remainder.
//	n == 0: nil (zero substrings)
//	n < 0: all substrings
func (p *Pattern) Split(subject Subject, n int) ([]Subject, error) {
	if n == 0 {
		return nil, nil
	}
	sc, err := p.Scan(subject, 0)
	if err != nil {
		return nil, err
	}
	window := func(start, end int) Subject {
		if subject.IsText() {
			return Text(string(subject.data[start:end]))
		}
		return Bytes(subject.data[start:end])
	}

	var result []Subject
	lastEnd := 0
	for sc.Scan() {
		if n > 0 && len(result) >= n-1 {
			break
		}
		s, e := sc.Match().cuRange(0)
		result = append(result, window(lastEnd, s))
		lastEnd = e
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	result = append(result, window(lastEnd, len(subject.data)))
	return result, nil
}
