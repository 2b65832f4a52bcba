package rescan_test

import (
	"errors"
	"testing"

	"github.com/coregx/rescan"
	"github.com/coregx/rescan/engine"
)

func TestCompile(t *testing.T) {
	re, err := rescan.Compile(`a+`)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if !re.IsText() {
		t.Error("Compile produced a non-text pattern")
	}
	if re.String() != `a+` {
		t.Errorf("String() = %q, want %q", re.String(), `a+`)
	}

	rb, err := rescan.CompileBytes(`a+`)
	if err != nil {
		t.Fatalf("CompileBytes error: %v", err)
	}
	if rb.IsText() {
		t.Error("CompileBytes produced a text pattern")
	}
}

func TestCompileInvalid(t *testing.T) {
	if _, err := rescan.Compile("("); err == nil {
		t.Error("Compile(\"(\") succeeded, want error")
	}
	if _, err := rescan.CompileBytes("[a-"); err == nil {
		t.Error("CompileBytes(\"[a-\") succeeded, want error")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile(\"(\") did not panic")
		}
	}()
	rescan.MustCompile("(")
}

func TestMatchBasic(t *testing.T) {
	re := rescan.MustCompile(`a+`)
	m, err := re.Match(rescan.Text("baaab"), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if m.Start() != 1 || m.End() != 4 {
		t.Errorf("match at [%d, %d), want [1, 4)", m.Start(), m.End())
	}
	if m.String() != "aaa" {
		t.Errorf("String() = %q, want %q", m.String(), "aaa")
	}
	if m.IsEmpty() {
		t.Error("IsEmpty() = true for a three-codepoint match")
	}
}

func TestMatchNoMatch(t *testing.T) {
	re := rescan.MustCompile(`z`)
	_, err := re.Match(rescan.Text("abc"), 0, 0)
	if !errors.Is(err, rescan.ErrNoMatch) {
		t.Errorf("Match = %v, want ErrNoMatch", err)
	}
}

func TestMatchRepresentationMismatch(t *testing.T) {
	text := rescan.MustCompile(`a`)
	byt := rescan.MustCompileBytes(`a`)

	tests := []struct {
		name    string
		pat     *rescan.Pattern
		subject rescan.Subject
	}{
		{"text pattern, bytes subject", text, rescan.Bytes([]byte("a"))},
		{"bytes pattern, text subject", byt, rescan.Text("a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.pat.Match(tt.subject, 0, 0)
			if !errors.Is(err, rescan.ErrRepresentation) {
				t.Errorf("Match = %v, want ErrRepresentation", err)
			}
			var rerr *rescan.RepresentationError
			if !errors.As(err, &rerr) {
				t.Errorf("Match = %T, want *RepresentationError", err)
			}
		})
	}
}

func TestMatchBadOffset(t *testing.T) {
	re := rescan.MustCompile(`a`)
	tests := []struct {
		name   string
		offset int
	}{
		{"negative", -1},
		{"past end", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := re.Match(rescan.Text("abc"), tt.offset, 0)
			if !errors.Is(err, &rescan.EngineError{Code: engine.CodeBadOffset}) {
				t.Errorf("Match(offset=%d) = %v, want bad-offset EngineError", tt.offset, err)
			}
		})
	}
}

// TestMatchCodepointOffsets tests that positions on a text subject are
// reported in codepoints, not codeunits.
func TestMatchCodepointOffsets(t *testing.T) {
	re := rescan.MustCompile(`a+`)
	// "héllo " is 6 codepoints but 7 codeunits.
	m, err := re.Match(rescan.Text("héllo aaa"), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if m.Start() != 6 || m.End() != 9 {
		t.Errorf("match at [%d, %d), want [6, 9)", m.Start(), m.End())
	}
	if m.String() != "aaa" {
		t.Errorf("String() = %q, want %q", m.String(), "aaa")
	}
}

// TestMatchCodepointStartOffset tests that the starting offset on a
// text subject counts codepoints.
func TestMatchCodepointStartOffset(t *testing.T) {
	re := rescan.MustCompile(`a`)
	// Codepoints: é=0 a=1 é=2 a=3. Codeunits: é=0-1 a=2 é=3-4 a=5.
	m, err := re.Match(rescan.Text("éaéa"), 2, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if m.Start() != 3 || m.End() != 4 {
		t.Errorf("match at [%d, %d), want [3, 4)", m.Start(), m.End())
	}
}

// TestMatchByteOffsets tests that byte subjects report codeunit
// positions with no translation.
func TestMatchByteOffsets(t *testing.T) {
	re := rescan.MustCompileBytes(`a+`)
	m, err := re.Match(rescan.Bytes([]byte("h\xc3\xa9llo aaa")), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if m.Start() != 7 || m.End() != 10 {
		t.Errorf("match at [%d, %d), want [7, 10)", m.Start(), m.End())
	}
}

func TestMatchGroups(t *testing.T) {
	re := rescan.MustCompile(`(\w+)@(\w+)`)
	if re.GroupCount() != 3 {
		t.Fatalf("GroupCount = %d, want 3", re.GroupCount())
	}
	m, err := re.Match(rescan.Text("mail user@example now"), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if got := m.Group(1).String(); got != "user" {
		t.Errorf("Group(1) = %q, want %q", got, "user")
	}
	if got := m.Group(2).String(); got != "example" {
		t.Errorf("Group(2) = %q, want %q", got, "example")
	}
	if s, e, ok := m.Range(2); !ok || s != 10 || e != 17 {
		t.Errorf("Range(2) = (%d, %d, %v), want (10, 17, true)", s, e, ok)
	}
}

func TestMatchUnsetGroup(t *testing.T) {
	re := rescan.MustCompile(`(a)|(b)`)
	m, err := re.Match(rescan.Text("a"), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if s, e, ok := m.Range(2); ok || s != -1 || e != -1 {
		t.Errorf("Range(2) = (%d, %d, %v), want (-1, -1, false)", s, e, ok)
	}
	if got := m.Group(2); got.Len() != 0 {
		t.Errorf("Group(2) = %q, want empty", got.String())
	}
}

func TestNamedGroups(t *testing.T) {
	re := rescan.MustCompile(`(?P<user>\w+)@(?P<host>\w+)`)

	names := re.Names()
	if len(names) != 2 || names["user"] != 1 || names["host"] != 2 {
		t.Fatalf("Names() = %v, want user:1 host:2", names)
	}
	if i := re.GroupIndexByName("host"); i != 2 {
		t.Errorf("GroupIndexByName(host) = %d, want 2", i)
	}
	if i := re.GroupIndexByName("nope"); i != -1 {
		t.Errorf("GroupIndexByName(nope) = %d, want -1", i)
	}

	m, err := re.Match(rescan.Text("user@example"), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	got, ok := m.GroupByName("host")
	if !ok || got.String() != "example" {
		t.Errorf("GroupByName(host) = (%q, %v), want (example, true)", got.String(), ok)
	}
	if _, ok := m.GroupByName("nope"); ok {
		t.Error("GroupByName(nope) = true, want false")
	}
}

func TestMatchAnchoredOption(t *testing.T) {
	re := rescan.MustCompile(`b`)
	if _, err := re.Match(rescan.Text("ab"), 0, engine.Anchored); !errors.Is(err, rescan.ErrNoMatch) {
		t.Errorf("anchored Match at 0 = %v, want ErrNoMatch", err)
	}
	m, err := re.Match(rescan.Text("ab"), 1, engine.Anchored)
	if err != nil {
		t.Fatalf("anchored Match at 1 error: %v", err)
	}
	if m.Start() != 1 || m.End() != 2 {
		t.Errorf("match at [%d, %d), want [1, 2)", m.Start(), m.End())
	}
}

// TestMatchAnchoredWordBoundary tests that an anchored match at a
// non-zero offset evaluates \b against the codepoint before the
// offset, not as if the subject began there.
func TestMatchAnchoredWordBoundary(t *testing.T) {
	re := rescan.MustCompile(`\bb`)
	if _, err := re.Match(rescan.Text("ab"), 1, engine.Anchored); !errors.Is(err, rescan.ErrNoMatch) {
		t.Errorf("anchored Match inside a word = %v, want ErrNoMatch", err)
	}
	m, err := re.Match(rescan.Text("a b"), 2, engine.Anchored)
	if err != nil {
		t.Fatalf("anchored Match at a real boundary error: %v", err)
	}
	if m.Start() != 2 || m.End() != 3 {
		t.Errorf("match at [%d, %d), want [2, 3)", m.Start(), m.End())
	}
}

func TestMatchInvalidUTF(t *testing.T) {
	re := rescan.MustCompile(`a`)
	_, err := re.Match(rescan.Text(string([]byte{'a', 0xff})), 0, 0)
	if !errors.Is(err, &rescan.EngineError{Code: engine.CodeBadUTF}) {
		t.Errorf("Match on invalid UTF-8 = %v, want bad-UTF EngineError", err)
	}
}

func TestLongest(t *testing.T) {
	cfg := rescan.DefaultConfig()
	cfg.Longest = true
	re, err := rescan.CompileWithConfig(`a|ab`, cfg)
	if err != nil {
		t.Fatalf("CompileWithConfig error: %v", err)
	}
	m, err := re.Match(rescan.Text("ab"), 0, 0)
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if m.String() != "ab" {
		t.Errorf("leftmost-longest match = %q, want %q", m.String(), "ab")
	}
}

func TestConventionAccessors(t *testing.T) {
	cfg := rescan.DefaultConfig()
	cfg.Newline = engine.NewlineAnyCRLF
	cfg.BSR = engine.BSRAnyCRLF
	re, err := rescan.CompileWithConfig(`a`, cfg)
	if err != nil {
		t.Fatalf("CompileWithConfig error: %v", err)
	}
	if re.NewlineConvention() != engine.NewlineAnyCRLF {
		t.Errorf("NewlineConvention = %v, want AnyCRLF", re.NewlineConvention())
	}
	if re.BSRConvention() != engine.BSRAnyCRLF {
		t.Errorf("BSRConvention = %v, want AnyCRLF", re.BSRConvention())
	}
}

func TestFindAll(t *testing.T) {
	re := rescan.MustCompile(`a+`)
	subject := rescan.Text("a baa baaa")

	all, err := re.FindAll(subject, -1)
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	want := []string{"a", "aa", "aaa"}
	if len(all) != len(want) {
		t.Fatalf("FindAll returned %d matches, want %d", len(all), len(want))
	}
	for i, m := range all {
		if m.String() != want[i] {
			t.Errorf("match %d = %q, want %q", i, m.String(), want[i])
		}
	}

	two, err := re.FindAll(subject, 2)
	if err != nil {
		t.Fatalf("FindAll(2) error: %v", err)
	}
	if len(two) != 2 {
		t.Errorf("FindAll(2) returned %d matches, want 2", len(two))
	}

	none, err := re.FindAll(subject, 0)
	if err != nil || none != nil {
		t.Errorf("FindAll(0) = (%v, %v), want (nil, nil)", none, err)
	}
}

func TestCount(t *testing.T) {
	re := rescan.MustCompile(`a+`)
	n, err := re.Count(rescan.Text("a baa baaa"), -1)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
	n, err = re.Count(rescan.Text("a baa baaa"), 2)
	if err != nil || n != 2 {
		t.Errorf("Count(limit 2) = (%d, %v), want (2, nil)", n, err)
	}
}

func TestSplit(t *testing.T) {
	re := rescan.MustCompile(`,`)
	parts, err := re.Split(rescan.Text("a,b,c"), -1)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(parts) != len(want) {
		t.Fatalf("Split returned %d parts, want %d", len(parts), len(want))
	}
	for i, p := range parts {
		if p.String() != want[i] {
			t.Errorf("part %d = %q, want %q", i, p.String(), want[i])
		}
		if !p.IsText() {
			t.Errorf("part %d is not a text subject", i)
		}
	}

	parts, err = re.Split(rescan.Text("a,b,c"), 2)
	if err != nil {
		t.Fatalf("Split(2) error: %v", err)
	}
	if len(parts) != 2 || parts[0].String() != "a" || parts[1].String() != "b,c" {
		t.Errorf("Split(2) = %v, want [a b,c]", parts)
	}

	parts, err = re.Split(rescan.Text("a,b,c"), 0)
	if err != nil || parts != nil {
		t.Errorf("Split(0) = (%v, %v), want (nil, nil)", parts, err)
	}
}

func TestSubjectAccessors(t *testing.T) {
	s := rescan.Text("héllo")
	if !s.IsText() || s.Len() != 6 || s.String() != "héllo" {
		t.Errorf("Text subject = (%v, %d, %q)", s.IsText(), s.Len(), s.String())
	}
	b := rescan.Bytes([]byte{0x00, 0xff})
	if b.IsText() || b.Len() != 2 {
		t.Errorf("Bytes subject = (%v, %d)", b.IsText(), b.Len())
	}
}
