package lz4

import "sync"

// compressorStatePool recycles match-finder state across one-shot calls.
var compressorStatePool = sync.Pool{
	New: func() any {
		return &compressorState{}
	},
}

// acquireCompressorState acquires a context from the pool with a cleared
// table of the given kind, so one-shot output never depends on pool history.
func acquireCompressorState(kind tableKind) *compressorState {
	s := compressorStatePool.Get().(*compressorState)
	s.table.reset(kind)
	s.currentOffset = 0
	s.hist = nil
	s.dictCtx = nil
	return s
}

// releaseCompressorState releases a context to the pool.
func releaseCompressorState(s *compressorState) {
	if s == nil {
		return
	}

	s.hist = nil
	s.dictCtx = nil
	compressorStatePool.Put(s)
}
