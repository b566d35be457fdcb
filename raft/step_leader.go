package raft

import "raftsql/raft/raftpb"

// broadcastRequestVote sends RequestVote to every peer but self.
func (n *Node) broadcastRequestVote() {
	for _, p := range n.peers {
		if p == n.id {
			continue
		}
		n.cfg.Transport.Send(raftpb.Message{
			Type:         raftpb.MsgRequestVote,
			From:         n.id,
			To:           p,
			Term:         n.currentTerm,
			LastLogIndex: n.log.LastIndex(),
			LastLogTerm:  n.log.LastTerm(),
		})
	}
}

// handleRequestVoteResponse implements "Candidate → Leader: receives
// votes from a strict majority (including self) in the same term."
func (n *Node) handleRequestVoteResponse(msg raftpb.Message) {
	if !msg.VoteGranted {
		return
	}
	n.votesReceived[msg.From] = true
	if len(n.votesReceived) >= n.cfg.quorum() {
		n.becomeLeader()
	}
}

// broadcastAppendEntries sends every peer an AppendEntries starting at
// its next_index (empty for a pure heartbeat), per spec.md §4.1
// "Leader behavior".
func (n *Node) broadcastAppendEntries() {
	for _, p := range n.peers {
		if p == n.id {
			continue
		}
		n.sendAppendTo(p)
	}
}

func (n *Node) sendAppendTo(peer uint64) {
	pr := n.progress[peer]
	prevIndex := pr.next - 1
	prevTerm, ok, err := n.log.Term(prevIndex)
	if err != nil {
		n.logger.Fatalf("failed reading log term at %d: %v", prevIndex, err)
	}
	if !ok {
		// next_index has fallen below what we retain; this study
		// artifact carries no log compaction (spec.md §9), so this
		// only happens if next_index was corrupted — treat as a bug.
		n.logger.Errorf("peer %d: next_index %d has no matching term, resetting to 1", peer, pr.next)
		pr.next = 1
		prevIndex = 0
		prevTerm = 0
	}

	entries, err := n.log.Entries(pr.next, n.log.LastIndex()+1)
	if err != nil {
		n.logger.Fatalf("failed reading entries [%d,%d]: %v", pr.next, n.log.LastIndex()+1, err)
	}

	n.cfg.Transport.Send(raftpb.Message{
		Type:         raftpb.MsgAppendEntries,
		From:         n.id,
		To:           peer,
		Term:         n.currentTerm,
		PrevLogIndex: prevIndex,
		PrevLogTerm:  prevTerm,
		Entries:      entries,
		LeaderCommit: n.commitIndex,
	})
}

// handleAppendEntriesResponse implements the leader's progress updates
// and "no fast-backoff" retry from spec.md §4.1.
func (n *Node) handleAppendEntriesResponse(msg raftpb.Message) {
	pr, ok := n.progress[msg.From]
	if !ok {
		return
	}
	if msg.Success {
		if msg.Index > pr.match {
			pr.match = msg.Index
		}
		if msg.Index+1 > pr.next {
			pr.next = msg.Index + 1
		}
		n.recomputeCommitIndex()
		return
	}

	if pr.next > 1 {
		pr.next--
	}
	n.sendAppendTo(msg.From)
}
