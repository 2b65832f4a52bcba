package engine

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/coregx/coregex/meta"

	"github.com/coregx/rescan/internal/conv"
)

// Compiled is an immutable compiled pattern handle. It owns the coregx
// engine plus the metadata the facade exposes: group count,
// conventions, and the raw named-group table.
//
// A Compiled is read-only after Compile returns and safe for use by
// sequential operations; the underlying coregx engine pools its own
// per-search state.
type Compiled struct {
	pattern string
	eng     *meta.Engine
	cfg     Config
	groups  int

	// Raw named-group table: nameCount fixed-size entries of
	// nameEntrySize bytes each, a 2-byte big-endian group index
	// followed by the NUL-terminated group name.
	nameTable     []byte
	nameEntrySize int
	nameCount     int

	// nameToGroup duplicates the table for the substitute expander's
	// ${name} lookups so it does not reparse the raw bytes per match.
	nameToGroup map[string]int
}

// CompileError reports a pattern that the engine could not compile.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("engine: compiling %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile compiles pattern with the given configuration.
func Compile(pattern string, cfg Config) (*Compiled, error) {
	eng, err := meta.Compile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	if cfg.Longest {
		eng.SetLongest(true)
	}

	c := &Compiled{
		pattern: pattern,
		eng:     eng,
		cfg:     cfg,
		groups:  eng.NumCaptures(),
	}
	c.buildNameTable(eng.SubexpNames())
	return c, nil
}

// buildNameTable lays out the named-group table in its wire format:
// entries sorted by name, each 2 + maxNameLen + 1 bytes, group index
// big-endian in the first two bytes, name NUL-terminated after it.
func (c *Compiled) buildNameTable(names []string) {
	type entry struct {
		name  string
		group int
	}
	var entries []entry
	maxLen := 0
	for i, name := range names {
		if i == 0 || name == "" {
			continue
		}
		entries = append(entries, entry{name: name, group: i})
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	if len(entries) == 0 {
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	c.nameEntrySize = 2 + maxLen + 1
	c.nameCount = len(entries)
	c.nameTable = make([]byte, c.nameEntrySize*c.nameCount)
	c.nameToGroup = make(map[string]int, c.nameCount)
	for i, e := range entries {
		off := i * c.nameEntrySize
		binary.BigEndian.PutUint16(c.nameTable[off:], conv.IntToUint16(e.group))
		copy(c.nameTable[off+2:], e.name)
		c.nameToGroup[e.name] = e.group
	}
}

// Pattern returns the source text the pattern was compiled from.
func (c *Compiled) Pattern() string {
	return c.pattern
}

// GroupCount returns the number of capture groups including group 0,
// the whole match.
func (c *Compiled) GroupCount() int {
	return c.groups
}

// IsUTF reports whether the pattern is codepoint-aware.
func (c *Compiled) IsUTF() bool {
	return c.cfg.UTF
}

// Newline returns the pattern's newline convention.
func (c *Compiled) Newline() Newline {
	return c.cfg.Newline
}

// BSR returns the pattern's backslash-R convention.
func (c *Compiled) BSR() BSR {
	return c.cfg.BSR
}

// NameTable returns the raw named-group table, its per-entry size, and
// the entry count. The slice is shared and must not be modified.
func (c *Compiled) NameTable() (table []byte, entrySize, count int) {
	return c.nameTable, c.nameEntrySize, c.nameCount
}
