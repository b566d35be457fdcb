package raftlog

import (
	"testing"

	"raftsql/raft/raftpb"
)

func TestMemoryStoreAppendAndRange(t *testing.T) {
	s := NewMemoryStore()
	entries := []raftpb.Entry{
		{Index: 1, Term: 1, Command: []byte("a")},
		{Index: 2, Term: 1, Command: []byte("b")},
		{Index: 3, Term: 2, Command: []byte("c")},
	}
	if err := s.Append(entries); err != nil {
		t.Fatal(err)
	}

	idx, term, err := s.Last()
	if err != nil || idx != 3 || term != 2 {
		t.Fatalf("Last() = %d, %d, %v", idx, term, err)
	}

	got, err := s.Range(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || string(got[0].Command) != "b" || string(got[1].Command) != "c" {
		t.Fatalf("unexpected range: %+v", got)
	}

	if err := s.TruncateSuffix(2); err != nil {
		t.Fatal(err)
	}
	idx, _, _ = s.Last()
	if idx != 1 {
		t.Fatalf("expected last index 1 after truncate, got %d", idx)
	}

	if _, ok, _ := s.Entry(0); ok {
		t.Fatal("index 0 sentinel must never be stored")
	}
}

func TestMemoryStoreHardState(t *testing.T) {
	s := NewMemoryStore()
	hs, err := s.LoadHardState()
	if err != nil || !hs.IsEmpty() {
		t.Fatalf("expected empty hard state initially, got %+v", hs)
	}
	want := raftpb.HardState{Term: 3, VotedFor: 2, CommitIndex: 1}
	if err := s.StoreHardState(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadHardState()
	if err != nil || got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
