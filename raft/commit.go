package raft

import "raftsql/raft/raftpb"

// enqueueCommitted hands newly committed entries to the commit pump.
// Called only from inside the actor loop, so appending to commitQueue
// needs no protection beyond the mutex the pump also takes.
func (n *Node) enqueueCommitted(entries []raftpb.Entry) {
	if len(entries) == 0 {
		return
	}
	n.commitMu.Lock()
	n.commitQueue = append(n.commitQueue, entries...)
	n.commitCond.Signal()
	n.commitMu.Unlock()
}

// commitPump drains commitQueue and forwards to committedC one entry at
// a time. It runs in its own goroutine so the actor loop is never
// blocked by a slow applier (spec.md §5: "Raft driver never blocks on
// state machine work").
func (n *Node) commitPump() {
	defer close(n.committedC)
	for {
		n.commitMu.Lock()
		for len(n.commitQueue) == 0 && !n.commitDone {
			n.commitCond.Wait()
		}
		if len(n.commitQueue) == 0 && n.commitDone {
			n.commitMu.Unlock()
			return
		}
		e := n.commitQueue[0]
		n.commitQueue = n.commitQueue[1:]
		n.commitMu.Unlock()

		select {
		case n.committedC <- e:
		case <-n.stopc:
			return
		}
	}
}

// recomputeCommitIndex applies the commit rule of spec.md §4.1: for a
// leader, the highest N with a majority of match_index >= N and
// log[N].term == currentTerm; for a follower it is set directly from
// the leader's AppendEntries in step_follower.go. Called after any
// change to progress or after accepting entries.
func (n *Node) recomputeCommitIndex() {
	if n.role != Leader {
		return
	}
	matches := make([]uint64, 0, len(n.progress))
	for _, p := range n.progress {
		matches = append(matches, p.match)
	}
	// Find the highest N such that at least quorum() of matches are >= N.
	for n2 := n.log.LastIndex(); n2 > n.commitIndex; n2-- {
		count := 0
		for _, m := range matches {
			if m >= n2 {
				count++
			}
		}
		if count < n.cfg.quorum() {
			continue
		}
		term, ok, err := n.log.Term(n2)
		if err != nil || !ok || term != n.currentTerm {
			continue
		}
		n.advanceCommitTo(n2)
		return
	}
}

// advanceCommitTo sets commitIndex = target (must be > current),
// persists it, and enqueues the newly committed entries for apply.
func (n *Node) advanceCommitTo(target uint64) {
	if target <= n.commitIndex {
		return
	}
	lo := n.commitIndex + 1
	n.commitIndex = target
	if err := n.persistHardState(); err != nil {
		n.logger.Fatalf("failed to persist commit index: %v", err)
	}
	entries, err := n.log.Entries(lo, target+1)
	if err != nil {
		n.logger.Fatalf("failed to read committed entries [%d,%d]: %v", lo, target, err)
	}
	n.enqueueCommitted(entries)
}
