package raft

// progress tracks one follower's replication state from the leader's
// point of view (spec.md §3: next_index[peer], match_index[peer]).
type progress struct {
	next  uint64
	match uint64
}

// newProgressSet initializes next_index[p] = lastLogIndex+1 and
// match_index[p] = 0 for every peer, per spec.md §4.1 "On election".
func newProgressSet(peers []uint64, lastLogIndex uint64) map[uint64]*progress {
	m := make(map[uint64]*progress, len(peers))
	for _, p := range peers {
		m[p] = &progress{next: lastLogIndex + 1, match: 0}
	}
	return m
}
