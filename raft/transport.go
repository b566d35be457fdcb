package raft

import "raftsql/raft/raftpb"

// Transport delivers a single Raft RPC message to a peer. Implementations
// (package transport) run the actual network I/O in their own
// goroutines; Send must return promptly so the raft actor loop, which
// calls it, is never blocked on network work — per spec.md §5's "Raft
// driver never blocks on state machine work" (and, by the same
// reasoning, never on network work either).
type Transport interface {
	Send(msg raftpb.Message)
}
