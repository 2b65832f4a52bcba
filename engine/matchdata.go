package engine

import "sync"

// MatchData is the result storage for one match attempt: an offset
// vector of paired codeunit start/end positions, one pair per capture
// group, group 0 being the whole match. Unset groups hold (-1, -1).
//
// MatchData values are pooled. A caller allocates one per attempt with
// NewMatchData and either releases it (no match, error) or hands it to
// the result object that now owns it (success). Release must be called
// at most once; after a successful attempt the storage belongs to the
// consumer and is reclaimed by the garbage collector instead.
type MatchData struct {
	ovector []int
	groups  int
}

// matchDataPool recycles result storage across attempts, the same way
// per-search state is pooled inside the coregx engine itself.
var matchDataPool = sync.Pool{
	New: func() any { return new(MatchData) },
}

// NewMatchData returns result storage sized to groups capture pairs,
// with every slot initialized to -1.
func NewMatchData(groups int) *MatchData {
	md := matchDataPool.Get().(*MatchData)
	need := groups * 2
	if cap(md.ovector) < need {
		md.ovector = make([]int, need)
	}
	md.ovector = md.ovector[:need]
	for i := range md.ovector {
		md.ovector[i] = -1
	}
	md.groups = groups
	return md
}

// Release returns the storage to the pool. The ovector must not be
// used after Release.
func (md *MatchData) Release() {
	matchDataPool.Put(md)
}

// Groups returns the number of capture group pairs the storage holds.
func (md *MatchData) Groups() int {
	return md.groups
}

// Ovector returns the offset vector: Ovector()[2*i] and
// Ovector()[2*i+1] are the codeunit start and end of group i. The
// slice is a view into the storage, valid until Release.
func (md *MatchData) Ovector() []int {
	return md.ovector
}
