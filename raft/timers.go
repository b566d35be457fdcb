package raft

import "time"

// electionLoop owns the election timer and only ever pushes
// electionTimeoutEvent into the inbox; it never touches raft state
// directly, per the design note that cross-component communication is
// by message passing only.
func (n *Node) electionLoop() {
	timer := time.NewTimer(randElectionTimeout(n.cfg.ElectionTimeoutMin, n.cfg.ElectionTimeoutMax))
	defer timer.Stop()

	for {
		select {
		case <-n.electionStopc:
			return
		case <-n.resetElectionC:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(randElectionTimeout(n.cfg.ElectionTimeoutMin, n.cfg.ElectionTimeoutMax))
		case <-timer.C:
			select {
			case n.inbox <- electionTimeoutEvent{}:
			case <-n.electionStopc:
				return
			}
			timer.Reset(randElectionTimeout(n.cfg.ElectionTimeoutMin, n.cfg.ElectionTimeoutMax))
		}
	}
}

// resetElectionTimer requests a fresh randomized timeout, per spec.md
// §4.1: reset on a valid AppendEntries, on granting a vote, or on
// becoming leader (though a leader's timer firing is a no-op — see
// handle()'s electionTimeoutEvent case).
func (n *Node) resetElectionTimer() {
	select {
	case n.resetElectionC <- struct{}{}:
	default:
	}
}

// startHeartbeat launches the leader's periodic AppendEntries broadcast.
func (n *Node) startHeartbeat() {
	n.heartbeatStopc = make(chan struct{})
	n.heartbeatStopped = make(chan struct{})
	stopc := n.heartbeatStopc
	donec := n.heartbeatStopped
	go func() {
		defer close(donec)
		ticker := time.NewTicker(n.cfg.HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopc:
				return
			case <-ticker.C:
				select {
				case n.inbox <- heartbeatTickEvent{}:
				case <-stopc:
					return
				}
			}
		}
	}()
}

// stopHeartbeat stops the leader's heartbeat goroutine, if any.
func (n *Node) stopHeartbeat() {
	if n.heartbeatStopc == nil {
		return
	}
	close(n.heartbeatStopc)
	<-n.heartbeatStopped
	n.heartbeatStopc = nil
	n.heartbeatStopped = nil
}
