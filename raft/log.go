package raft

import "raftsql/raft/raftpb"

// Log is a thin, cached convenience wrapper over Storage. Every mutation
// goes straight through to Storage (which must be durable before
// returning), so Log never buffers anything the process could lose; the
// in-memory lastIndex/lastTerm are just a cache to avoid a Storage round
// trip on every read.
type Log struct {
	storage Storage

	lastIndex uint64
	lastTerm  uint64
}

// NewLog loads the tail of storage and returns a ready-to-use Log.
func NewLog(storage Storage) (*Log, error) {
	idx, term, err := storage.Last()
	if err != nil {
		return nil, err
	}
	return &Log{storage: storage, lastIndex: idx, lastTerm: term}, nil
}

// LastIndex returns the index of the last stored entry (0 if empty).
func (l *Log) LastIndex() uint64 { return l.lastIndex }

// LastTerm returns the term of the last stored entry (0 if empty).
func (l *Log) LastTerm() uint64 { return l.lastTerm }

// Term returns the term of the entry at index, treating index 0 as the
// term-0 sentinel.
func (l *Log) Term(index uint64) (uint64, bool, error) {
	if index == 0 {
		return 0, true, nil
	}
	if index > l.lastIndex {
		return 0, false, nil
	}
	e, ok, err := l.storage.Entry(index)
	if err != nil || !ok {
		return 0, false, err
	}
	return e.Term, true, nil
}

// MatchTerm reports whether the log contains an entry at index with the
// given term (index 0 always matches term 0).
func (l *Log) MatchTerm(index, term uint64) (bool, error) {
	t, ok, err := l.Term(index)
	if err != nil {
		return false, err
	}
	return ok && t == term, nil
}

// IsUpToDate implements the RequestVote "at least as up-to-date" check:
// compare last term, tiebreak on last index.
func (l *Log) IsUpToDate(lastLogIndex, lastLogTerm uint64) bool {
	if lastLogTerm != l.lastTerm {
		return lastLogTerm > l.lastTerm
	}
	return lastLogIndex >= l.lastIndex
}

// Entries returns entries in [lo, hi).
func (l *Log) Entries(lo, hi uint64) ([]raftpb.Entry, error) {
	if lo > hi {
		return nil, nil
	}
	return l.storage.Range(lo, hi)
}

// AppendLeader appends a brand-new entry authored by this node as
// leader and returns it once durable.
func (l *Log) AppendLeader(term uint64, command []byte) (raftpb.Entry, error) {
	e := raftpb.Entry{Index: l.lastIndex + 1, Term: term, Command: command}
	if err := l.storage.Append([]raftpb.Entry{e}); err != nil {
		return raftpb.Entry{}, err
	}
	l.lastIndex = e.Index
	l.lastTerm = e.Term
	return e, nil
}

// AppendFollower implements the accept branch of AppendEntries: truncate
// any conflicting suffix starting at prevIndex+1, then durably append
// entries (idempotent on exact duplicates already present).
func (l *Log) AppendFollower(prevIndex, prevTerm uint64, entries []raftpb.Entry) error {
	ok, err := l.MatchTerm(prevIndex, prevTerm)
	if err != nil {
		return err
	}
	if !ok {
		return errLogMismatch
	}

	// Skip entries already present with a matching term; only touch
	// storage from the first real conflict or the first genuinely new
	// entry onward, so duplicate heartimg AppendEntries calls are cheap
	// and idempotent.
	i := 0
	next := prevIndex + 1
	for ; i < len(entries); i, next = i+1, next+1 {
		t, ok, err := l.Term(next)
		if err != nil {
			return err
		}
		if !ok || t != entries[i].Term {
			break
		}
	}
	if i == len(entries) {
		return nil
	}

	if next <= l.lastIndex {
		if err := l.storage.TruncateSuffix(next); err != nil {
			return err
		}
		if next == 1 {
			l.lastIndex, l.lastTerm = 0, 0
		} else {
			t, ok, err := l.Term(next - 1)
			if err != nil {
				return err
			}
			if ok {
				l.lastTerm = t
			}
			l.lastIndex = next - 1
		}
	}

	rest := entries[i:]
	if len(rest) == 0 {
		return nil
	}
	if err := l.storage.Append(rest); err != nil {
		return err
	}
	l.lastIndex = rest[len(rest)-1].Index
	l.lastTerm = rest[len(rest)-1].Term
	return nil
}
