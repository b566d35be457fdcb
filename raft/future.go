package raft

import "raftsql/rafterrors"

// ApplyResult is what a submitted command resolves to once its entry has
// been applied by the state machine driver.
type ApplyResult struct {
	Value []byte
	Err   error
}

// Future is resolved exactly once, by the applier publishing the result
// of the index this command was appended at (spec.md §4.1 "Client
// submission").
type Future struct {
	c chan ApplyResult
}

func newFuture() *Future {
	return &Future{c: make(chan ApplyResult, 1)}
}

// Wait blocks until the future resolves.
func (f *Future) Wait() ApplyResult {
	return <-f.c
}

func (f *Future) resolve(r ApplyResult) {
	select {
	case f.c <- r:
	default:
	}
}

// pendingKey indexes an in-flight client future by the term it was
// submitted in and the log index it was assigned, per Design Note
// "Pending client futures". Indexing by term lets a term change
// invalidate every future submitted under a now-stale leadership claim
// without touching futures submitted (and already resolved) earlier.
type pendingKey struct {
	term  uint64
	index uint64
}

type pendingTable struct {
	m map[pendingKey]*Future
}

func newPendingTable() *pendingTable {
	return &pendingTable{m: make(map[pendingKey]*Future)}
}

func (t *pendingTable) add(term, index uint64) *Future {
	f := newFuture()
	t.m[pendingKey{term, index}] = f
	return f
}

// resolve completes the future for (term, index), if this node is still
// tracking one, and removes it.
func (t *pendingTable) resolve(term, index uint64, r ApplyResult) {
	k := pendingKey{term, index}
	if f, ok := t.m[k]; ok {
		f.resolve(r)
		delete(t.m, k)
	}
}

// failStaleTerms resolves and drops every pending future submitted in a term
// other than currentTerm, with NotLeaderError — they were appended under
// leadership that is no longer current and may never commit.
func (t *pendingTable) failStaleTerms(currentTerm uint64, hint string) {
	for k, f := range t.m {
		if k.term != currentTerm {
			f.resolve(ApplyResult{Err: &rafterrors.NotLeaderError{Hint: hint}})
			delete(t.m, k)
		}
	}
}

// failAll resolves every pending future with err, used on shutdown.
func (t *pendingTable) failAll(err error) {
	for k, f := range t.m {
		f.resolve(ApplyResult{Err: err})
		delete(t.m, k)
	}
}
