package raft

import "raftsql/raft/raftpb"

// handleRequestVote implements spec.md §4.1's RequestVote rule.
func (n *Node) handleRequestVote(msg raftpb.Message) {
	grant := false
	if msg.Term == n.currentTerm &&
		(n.votedFor == NoLeader || n.votedFor == msg.From) &&
		n.log.IsUpToDate(msg.LastLogIndex, msg.LastLogTerm) {
		grant = true
		n.votedFor = msg.From
		if err := n.persistHardState(); err != nil {
			n.logger.Fatalf("failed to persist vote: %v", err)
		}
		n.resetElectionTimer()
	}

	n.cfg.Transport.Send(raftpb.Message{
		Type:        raftpb.MsgRequestVoteResponse,
		From:        n.id,
		To:          msg.From,
		Term:        n.currentTerm,
		VoteGranted: grant,
	})
}

// handleAppendEntries implements spec.md §4.1's AppendEntries rule.
func (n *Node) handleAppendEntries(msg raftpb.Message) {
	if msg.Term < n.currentTerm {
		n.cfg.Transport.Send(raftpb.Message{
			Type: raftpb.MsgAppendEntriesResponse,
			From: n.id, To: msg.From, Term: n.currentTerm, Success: false,
		})
		return
	}

	// term == n.currentTerm here: either it was just adopted in
	// stepMessage (msg.Term was >), or it already matched. Either way
	// this message's sender is (or is becoming) the leader we recognize.
	n.becomeFollower(msg.Term, msg.From)

	ok, err := n.log.MatchTerm(msg.PrevLogIndex, msg.PrevLogTerm)
	if err != nil {
		n.logger.Fatalf("failed reading log during AppendEntries: %v", err)
	}
	if !ok {
		n.cfg.Transport.Send(raftpb.Message{
			Type: raftpb.MsgAppendEntriesResponse,
			From: n.id, To: msg.From, Term: n.currentTerm, Success: false,
		})
		return
	}

	if err := n.log.AppendFollower(msg.PrevLogIndex, msg.PrevLogTerm, msg.Entries); err != nil {
		n.logger.Fatalf("failed to append entries: %v", err)
	}

	if msg.LeaderCommit > n.commitIndex {
		target := msg.LeaderCommit
		if last := n.log.LastIndex(); target > last {
			target = last
		}
		n.advanceCommitTo(target)
	}

	n.cfg.Transport.Send(raftpb.Message{
		Type: raftpb.MsgAppendEntriesResponse,
		From: n.id, To: msg.From, Term: n.currentTerm, Success: true,
		Index: msg.PrevLogIndex + uint64(len(msg.Entries)),
	})
}
