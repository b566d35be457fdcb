// Package raft implements the consensus module of spec.md §4.1: leader
// election, log replication across a fixed peer set, commit-index
// advancement, and a hand-off to an external apply loop. It follows the
// teacher's (gyuho-db) actor design: a single goroutine owns all raft
// state and processes one event at a time from an inbox channel;
// everything else — network I/O, client submissions, timers — only ever
// pushes events into that inbox, never touches state directly.
package raft

import (
	"strconv"
	"sync"

	"raftsql/raft/raftpb"
	"raftsql/rafterrors"
	"raftsql/xlog"
)

// Status is a point-in-time snapshot of a node's role and term, exposed
// to the client-facing Status RPC (spec.md §6).
type Status struct {
	ID       uint64
	Role     Role
	Term     uint64
	LeaderID uint64
}

type msgEvent struct{ msg raftpb.Message }

type proposeEvent struct {
	command []byte
	resultC chan proposeResult
}

type proposeResult struct {
	future *Future
	err    error
}

type statusEvent struct {
	resultC chan Status
}

type electionTimeoutEvent struct{}
type heartbeatTickEvent struct{}

// Node runs one Raft cluster member. Create with New, then Run in its
// own goroutine.
type Node struct {
	cfg    Config
	id     uint64
	peers  []uint64
	log    *Log
	logger *xlog.Logger

	role        Role
	currentTerm uint64
	votedFor    uint64
	leaderID    uint64

	commitIndex uint64
	lastApplied uint64

	progress      map[uint64]*progress
	votesReceived map[uint64]bool

	pending *pendingTable

	inbox chan interface{}
	stopc chan struct{}
	donec chan struct{}

	resetElectionC   chan struct{}
	electionStopc    chan struct{}
	heartbeatStopc   chan struct{} // non-nil while leader
	heartbeatStopped chan struct{}

	commitMu    sync.Mutex
	commitCond  *sync.Cond
	commitQueue []raftpb.Entry
	commitDone  bool
	committedC  chan raftpb.Entry
}

// New constructs a Node from cfg. Call Run to start it.
func New(cfg Config) (*Node, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l, err := NewLog(cfg.Storage)
	if err != nil {
		return nil, err
	}

	hs, err := cfg.Storage.LoadHardState()
	if err != nil {
		return nil, err
	}

	n := &Node{
		cfg:    cfg,
		id:     cfg.ID,
		peers:  append([]uint64(nil), cfg.Peers...),
		log:    l,
		logger: cfg.Logger,

		role:        Follower,
		currentTerm: hs.Term,
		votedFor:    hs.VotedFor,
		leaderID:    NoLeader,

		commitIndex: hs.CommitIndex,

		pending: newPendingTable(),

		inbox: make(chan interface{}, 256),
		stopc: make(chan struct{}),
		donec: make(chan struct{}),

		resetElectionC: make(chan struct{}, 1),
		electionStopc:  make(chan struct{}),

		committedC: make(chan raftpb.Entry, 256),
	}
	n.commitCond = sync.NewCond(&n.commitMu)
	return n, nil
}

// Run drives the node's actor loop until Stop is called. Call it in its
// own goroutine.
func (n *Node) Run() {
	defer close(n.donec)

	go n.electionLoop()
	go n.commitPump()
	n.resetElectionTimer()

	for {
		select {
		case <-n.stopc:
			n.shutdown()
			return
		case ev := <-n.inbox:
			n.handle(ev)
		}
	}
}

func (n *Node) shutdown() {
	close(n.electionStopc)
	n.stopHeartbeat()
	n.pending.failAll(rafterrors.ErrStopped)

	n.commitMu.Lock()
	n.commitDone = true
	n.commitCond.Broadcast()
	n.commitMu.Unlock()
}

// Stop shuts the node down and waits for its goroutines to exit.
func (n *Node) Stop() {
	select {
	case <-n.stopc:
	default:
		close(n.stopc)
	}
	<-n.donec
}

func (n *Node) handle(ev interface{}) {
	switch e := ev.(type) {
	case msgEvent:
		n.stepMessage(e.msg)
	case proposeEvent:
		e.resultC <- n.propose(e.command)
	case statusEvent:
		e.resultC <- Status{ID: n.id, Role: n.role, Term: n.currentTerm, LeaderID: n.leaderID}
	case electionTimeoutEvent:
		if n.role != Leader {
			n.startElection()
		}
	case heartbeatTickEvent:
		if n.role == Leader {
			n.broadcastAppendEntries()
		}
	case appliedEvent:
		n.onApplied(e.index, e.result)
	}
}

// onApplied resolves the pending future (if any) for the entry at index
// and advances lastApplied. It looks up the entry's original term from
// the log rather than requiring the applier to track it, since only the
// node that proposed an entry has a pending future for it.
func (n *Node) onApplied(index uint64, result ApplyResult) {
	if index <= n.lastApplied {
		return
	}
	n.lastApplied = index
	if e, ok, err := n.log.storage.Entry(index); err == nil && ok {
		n.pending.resolve(e.Term, index, result)
	}
}

// Step delivers a peer message into the node's inbox. Safe to call from
// any goroutine (network I/O).
func (n *Node) Step(msg raftpb.Message) {
	select {
	case n.inbox <- msgEvent{msg: msg}:
	case <-n.stopc:
	}
}

// Propose submits a command for replication. On a non-leader it returns
// NotLeaderError immediately. On the leader it returns a Future that
// resolves once the state machine driver reports the applied result for
// the assigned index (or NotLeaderError if leadership is lost first).
func (n *Node) Propose(command []byte) (*Future, error) {
	resultC := make(chan proposeResult, 1)
	select {
	case n.inbox <- proposeEvent{command: command, resultC: resultC}:
	case <-n.stopc:
		return nil, rafterrors.ErrStopped
	}
	select {
	case r := <-resultC:
		return r.future, r.err
	case <-n.stopc:
		return nil, rafterrors.ErrStopped
	}
}

func (n *Node) propose(command []byte) proposeResult {
	if n.role != Leader {
		return proposeResult{err: &rafterrors.NotLeaderError{Hint: n.leaderHint()}}
	}
	entry, err := n.log.AppendLeader(n.currentTerm, command)
	if err != nil {
		return proposeResult{err: &rafterrors.IoError{Op: "append", Err: err}}
	}
	future := n.pending.add(entry.Term, entry.Index)
	n.progress[n.id].match = entry.Index
	n.progress[n.id].next = entry.Index + 1
	n.recomputeCommitIndex()
	n.broadcastAppendEntries()
	return proposeResult{future: future}
}

// leaderHint returns the believed leader's ID as a string; the node
// wiring layer (package node), which knows the ID-to-address map,
// translates this into a dialable hint for the client.
func (n *Node) leaderHint() string {
	if n.leaderID == NoLeader {
		return ""
	}
	return strconv.FormatUint(n.leaderID, 10)
}

// Status returns a snapshot of this node's role and term.
func (n *Node) Status() Status {
	resultC := make(chan Status, 1)
	select {
	case n.inbox <- statusEvent{resultC: resultC}:
	case <-n.stopc:
		return Status{ID: n.id, Role: n.role}
	}
	select {
	case s := <-resultC:
		return s
	case <-n.stopc:
		return Status{ID: n.id, Role: n.role}
	}
}

// Committed returns the channel of committed entries, in order, for the
// applier to consume (spec.md §5's commit-queue).
func (n *Node) Committed() <-chan raftpb.Entry { return n.committedC }

// NotifyApplied lets the applier report the outcome of applying a
// committed entry, resolving any pending client future for it and
// advancing lastApplied. Must be called with indices in increasing
// order, one per entry delivered on Committed().
func (n *Node) NotifyApplied(index uint64, result ApplyResult) {
	select {
	case n.inbox <- appliedEvent{index: index, result: result}:
	case <-n.stopc:
	}
}

type appliedEvent struct {
	index  uint64
	result ApplyResult
}

func (n *Node) stepMessage(msg raftpb.Message) {
	if msg.Term > n.currentTerm {
		n.becomeFollower(msg.Term, NoLeader)
	}

	switch msg.Type {
	case raftpb.MsgRequestVote:
		n.handleRequestVote(msg)
	case raftpb.MsgRequestVoteResponse:
		if n.role == Candidate && msg.Term == n.currentTerm {
			n.handleRequestVoteResponse(msg)
		}
	case raftpb.MsgAppendEntries:
		n.handleAppendEntries(msg)
	case raftpb.MsgAppendEntriesResponse:
		if n.role == Leader && msg.Term == n.currentTerm {
			n.handleAppendEntriesResponse(msg)
		}
	}
}

// persistHardState durably stores term/vote/commit, per §4.1's
// "persist before reply" rule.
func (n *Node) persistHardState() error {
	return n.cfg.Storage.StoreHardState(raftpb.HardState{
		Term:        n.currentTerm,
		VotedFor:    n.votedFor,
		CommitIndex: n.commitIndex,
	})
}

