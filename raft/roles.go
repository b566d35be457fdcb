package raft

// becomeFollower adopts term (if higher) and clears voted_for, per
// spec.md §4.1: "Any role → Follower: on observing a message with term
// > current_term, adopt that term, clear voted_for." leader, if nonzero,
// records the peer we now believe leads this term.
func (n *Node) becomeFollower(term uint64, leader uint64) {
	stepDown := n.role == Leader
	if term > n.currentTerm {
		n.currentTerm = term
		n.votedFor = NoLeader
	}
	n.role = Follower
	n.leaderID = leader
	n.votesReceived = nil
	if stepDown {
		n.stopHeartbeat()
	}
	if err := n.persistHardState(); err != nil {
		n.logger.Fatalf("failed to persist hard state: %v", err)
	}
	n.pending.failStaleTerms(n.currentTerm, n.leaderHint())
	n.resetElectionTimer()
}

// startElection implements "Follower → Candidate: election timeout
// elapses with no heartbeat" and "Candidate on start" from spec.md
// §4.1.
func (n *Node) startElection() {
	n.role = Candidate
	n.currentTerm++
	n.votedFor = n.id
	n.leaderID = NoLeader
	n.votesReceived = map[uint64]bool{n.id: true}

	if err := n.persistHardState(); err != nil {
		n.logger.Fatalf("failed to persist hard state: %v", err)
	}
	n.resetElectionTimer()

	if len(n.votesReceived) >= n.cfg.quorum() {
		n.becomeLeader()
		return
	}
	n.broadcastRequestVote()
}

// becomeLeader implements "Candidate → Leader" in spec.md §4.1: resets
// per-peer replication state and immediately broadcasts heartbeats.
func (n *Node) becomeLeader() {
	n.role = Leader
	n.leaderID = n.id
	n.progress = newProgressSet(n.peers, n.log.LastIndex())
	n.startHeartbeat()
	n.broadcastAppendEntries()
}
