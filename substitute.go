package rescan

import (
	"github.com/coregx/rescan/engine"
	"github.com/coregx/rescan/internal/offsets"
)

// Substitute returns a copy of subject with every match of the pattern
// replaced by repl, in the same representation as subject. Inside
// repl, $0…$n, ${n}, and ${name} reference capture groups and $$ is a
// literal dollar sign. offset is where matching begins (subject
// units); the portion before it is copied through unmodified.
//
// A representation mismatch, whether pattern vs subject or subject vs
// replacement, is reported before any native call.
//
// The result buffer is sized in two phases: an optimistic buffer of
// twice the subject length, then, only if the primitive reports it was
// too small, one retry with the exact required length. Compiling with
// Config.LowMemory skips the optimistic buffer and probes for the
// required length with an empty one instead; the result is
// byte-identical either way.
func (p *Pattern) Substitute(repl, subject Subject, offset int, opts Options) (Subject, error) {
	if err := p.checkSubject(subject); err != nil {
		return Subject{}, err
	}
	if subject.IsText() != repl.IsText() {
		return Subject{}, &RepresentationError{
			Left:  subject.kind() + " subject",
			Right: repl.kind() + " replacement",
		}
	}

	if offset < 0 {
		return Subject{}, &EngineError{Op: "substitute", Code: engine.CodeBadOffset}
	}

	data := subject.data
	cu := offset
	if subject.IsText() {
		pair, err := offsets.ToCodeUnit(data, offset, offsets.Pair{})
		if err != nil {
			return Subject{}, err
		}
		if pair.Codepoint < offset {
			return Subject{}, &EngineError{Op: "substitute", Code: engine.CodeBadOffset}
		}
		cu = pair.CodeUnit
	}

	var out []byte
	outLen := 0
	if !p.cfg.LowMemory {
		out = make([]byte, 2*len(data))
		outLen = len(out)
	}

	rc := p.native.Substitute(data, repl.data, cu, opts|engine.SubstituteOverflowLength, out, &outLen)
	if rc == int(engine.CodeNoMemory) {
		// The primitive reported the exact length it needs; retry
		// exactly once with that much room and no overflow flag.
		out = make([]byte, outLen)
		rc = p.native.Substitute(data, repl.data, cu, opts&^engine.SubstituteOverflowLength, out, &outLen)
		if rc == int(engine.CodeNoMemory) {
			// An exact-size retry cannot legally overflow again; the
			// primitive is misbehaving.
			return Subject{}, &EngineError{Op: "substitute", Code: engine.CodeNoMemory}
		}
	}
	if rc < 0 {
		return Subject{}, &EngineError{Op: "substitute", Code: engine.Code(rc)}
	}

	result := out[:outLen]
	if subject.IsText() {
		return Text(string(result)), nil
	}
	return Bytes(result), nil
}
