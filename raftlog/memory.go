// Package raftlog implements the raft.Storage contract of spec.md §4.2:
// a durable, gap-free, monotonically-indexed log plus term/vote/commit
// metadata. raftsqld uses MemoryStore when -data-dir is empty and
// BoltStore otherwise.
package raftlog

import (
	"sync"

	"raftsql/raft/raftpb"
)

// MemoryStore is a non-durable Storage, adequate for tests and for the
// spec's explicitly allowed in-memory deployment mode. It is safe for
// concurrent use, though in practice only the raft actor goroutine ever
// calls it.
type MemoryStore struct {
	mu      sync.Mutex
	entries []raftpb.Entry // entries[i] has Index == i+1
	hs      raftpb.HardState
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(entries []raftpb.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *MemoryStore) Entry(index uint64) (raftpb.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index == 0 || index > uint64(len(s.entries)) {
		return raftpb.Entry{}, false, nil
	}
	return s.entries[index-1], true, nil
}

func (s *MemoryStore) Range(lo, hi uint64) ([]raftpb.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := uint64(len(s.entries))
	if lo < 1 {
		lo = 1
	}
	if hi > n+1 {
		hi = n + 1
	}
	if lo >= hi {
		return nil, nil
	}
	out := make([]raftpb.Entry, hi-lo)
	copy(out, s.entries[lo-1:hi-1])
	return out, nil
}

func (s *MemoryStore) TruncateSuffix(fromIndex uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fromIndex < 1 {
		fromIndex = 1
	}
	if fromIndex-1 < uint64(len(s.entries)) {
		s.entries = s.entries[:fromIndex-1]
	}
	return nil
}

func (s *MemoryStore) Last() (uint64, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return 0, 0, nil
	}
	last := s.entries[len(s.entries)-1]
	return last.Index, last.Term, nil
}

func (s *MemoryStore) LoadHardState() (raftpb.HardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hs, nil
}

func (s *MemoryStore) StoreHardState(hs raftpb.HardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hs = hs
	return nil
}
