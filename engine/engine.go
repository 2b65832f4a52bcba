// Package engine adapts the coregx regex engine into the native call
// surface the rescan protocols are written against: a compiled pattern
// handle with a single-attempt match primitive, a global substitute
// primitive with an overflow-length protocol, and compiled-pattern
// metadata (capture group count, newline convention, backslash-R
// convention, raw named-group table).
//
// Both primitives return a signed code: non-negative on success,
// negative for no-match or failure (see Code). Subject offsets at this
// boundary are always codeunits (bytes); codepoint translation for
// text subjects happens above this package.
package engine
