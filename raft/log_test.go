package raft_test

import (
	"testing"

	"raftsql/raft"
	"raftsql/raft/raftpb"
	"raftsql/raftlog"
)

func TestLogAppendFollowerTruncatesConflictingSuffix(t *testing.T) {
	store := raftlog.NewMemoryStore()
	l, err := raft.NewLog(store)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := l.AppendLeader(1, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AppendLeader(1, []byte("b")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AppendLeader(2, []byte("c")); err != nil {
		t.Fatal(err)
	}
	if l.LastIndex() != 3 || l.LastTerm() != 2 {
		t.Fatalf("unexpected log tail: index=%d term=%d", l.LastIndex(), l.LastTerm())
	}

	// A new leader of term 3 replicates a conflicting entry 2, which
	// must truncate the old entries 2 and 3.
	if err := l.AppendFollower(1, 1, []raftpb.Entry{
		{Index: 2, Term: 3, Command: []byte("d")},
	}); err != nil {
		t.Fatal(err)
	}
	if l.LastIndex() != 2 || l.LastTerm() != 3 {
		t.Fatalf("expected truncation to index 2 term 3, got index=%d term=%d", l.LastIndex(), l.LastTerm())
	}

	// Re-sending the same entry (idempotent duplicate) must not change
	// anything.
	if err := l.AppendFollower(1, 1, []raftpb.Entry{
		{Index: 2, Term: 3, Command: []byte("d")},
	}); err != nil {
		t.Fatal(err)
	}
	if l.LastIndex() != 2 || l.LastTerm() != 3 {
		t.Fatalf("expected no-op re-append, got index=%d term=%d", l.LastIndex(), l.LastTerm())
	}
}

func TestLogIsUpToDate(t *testing.T) {
	store := raftlog.NewMemoryStore()
	l, err := raft.NewLog(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.AppendLeader(1, []byte("a")); err != nil {
		t.Fatal(err)
	}

	if !l.IsUpToDate(1, 1) {
		t.Fatal("expected equal log to be up to date")
	}
	if !l.IsUpToDate(5, 2) {
		t.Fatal("expected higher term to be up to date")
	}
	if l.IsUpToDate(0, 0) {
		t.Fatal("expected empty candidate log to not be up to date")
	}
}
