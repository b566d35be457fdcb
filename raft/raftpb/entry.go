// Package raftpb defines the wire types exchanged between raft peers:
// log entries, persistent hard state, and the RequestVote/AppendEntries
// RPC pairs, plus a length-prefixed binary codec for shipping them over
// a stream.
package raftpb

// Entry is a single replicated log entry. Index is gap-free and
// monotonically increasing starting at 1; index 0 is the sentinel used
// as prev_log_* for the first real entry.
type Entry struct {
	Index   uint64
	Term    uint64
	Command []byte
}

// HardState is the subset of Raft state that must survive a restart:
// current term, the candidate voted for in that term (0 if none), and
// commit index.
type HardState struct {
	Term        uint64
	VotedFor    uint64
	CommitIndex uint64
}

// EmptyHardState is the zero value, used to detect "nothing persisted
// yet" on a fresh log store.
var EmptyHardState = HardState{}

// IsEmpty reports whether st is the zero HardState.
func (st HardState) IsEmpty() bool { return st == EmptyHardState }

// Equal reports whether two HardStates carry the same term/vote/commit.
func (st HardState) Equal(other HardState) bool { return st == other }
