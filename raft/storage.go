package raft

import "raftsql/raft/raftpb"

// Storage is the durable log store contract of spec.md §4.2: an
// append-only, gap-free sequence of entries plus term/vote metadata.
// Every mutating call must be durable before it returns — callers (the
// raft actor loop) rely on that to satisfy the "persist before reply"
// rule of §4.1.
//
// Index 0 is the sentinel with term 0, used as prev_log_* for the first
// real entry; it is never stored explicitly.
type Storage interface {
	// Append durably appends entries, which must be contiguous and
	// begin at LastIndex()+1.
	Append(entries []raftpb.Entry) error

	// Entry returns the entry at index, or ok=false if none is stored
	// there (including index 0, and indexes beyond LastIndex()).
	Entry(index uint64) (entry raftpb.Entry, ok bool, err error)

	// Range returns entries in [lo, hi).
	Range(lo, hi uint64) ([]raftpb.Entry, error)

	// TruncateSuffix discards every entry at index >= fromIndex.
	TruncateSuffix(fromIndex uint64) error

	// Last returns the index and term of the last stored entry, or
	// (0, 0) if the log is empty.
	Last() (index uint64, term uint64, err error)

	// LoadHardState returns the last durably stored term/vote/commit.
	LoadHardState() (raftpb.HardState, error)

	// StoreHardState durably persists term/vote/commit.
	StoreHardState(raftpb.HardState) error
}
