// Package node wires one raftsql cluster member together: the raft
// engine, its log store, the HTTP peer transport, and the replicated
// state machine driver. It plays the role of the teacher's
// raft-example/raft_node.go raftNode — the glue struct a demonstration
// binary constructs and drives — generalized from that example's fixed
// three-goroutine wiring (start/startRaft/startServe) to spec.md §5's
// three logical threads: raft driver, applier, network I/O.
package node

import (
	"errors"
	"strconv"
	"time"

	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/raft"
	"raftsql/raft/raftpb"
	"raftsql/rafterrors"
	"raftsql/sm"
	"raftsql/transport"
	"raftsql/xlog"
)

var log = xlog.New("node")

// Config parameterizes a Node, per spec.md §6's collaborator-provided
// configuration surface (id, peers, data_dir, listen_addr, heartbeat_ms,
// election_timeout_ms_min/_max, storage).
type Config struct {
	// ID identifies this node; must be a key of Peers.
	ID uint64

	// Peers maps every cluster member, including this one, to its
	// transport address (e.g. "http://10.0.0.2:8080"). This node's own
	// entry is never dialed.
	Peers map[uint64]string

	// ListenAddr is the address this node's peer-RPC HTTP server binds.
	ListenAddr string

	// RaftStorage holds the durable raft log and hard state (package
	// raftlog: MemoryStore or BoltStore).
	RaftStorage raft.Storage

	// Store holds the catalog and table rows the state machine applies
	// commands against (package kv: MemStore or BoltStore).
	Store kv.Store

	HeartbeatInterval  time.Duration
	ElectionTimeoutMin time.Duration
	ElectionTimeoutMax time.Duration
}

func (c Config) raftPeers() []uint64 {
	peers := make([]uint64, 0, len(c.Peers))
	for id := range c.Peers {
		peers = append(peers, id)
	}
	return peers
}

// stepHandler forwards decoded peer messages into the raft.Node once one
// exists. It exists only to break the construction cycle: transport.New
// needs a Handler before raft.New can produce the *raft.Node the handler
// forwards to.
type stepHandler struct {
	target *raft.Node
}

func (h *stepHandler) Step(msg raftpb.Message) { h.target.Step(msg) }

// Node owns a raft.Node, its HTTP transport, and the state machine
// applier loop that connects them, per spec.md §5.
type Node struct {
	id         uint64
	listenAddr string

	raftNode  *raft.Node
	transport *transport.Transport
	machine   *sm.Machine

	stopc chan struct{}
	donec chan struct{}
}

// New constructs a Node. Call Start to run it.
func New(cfg Config) (*Node, error) {
	handler := &stepHandler{}
	tr := transport.New(handler)
	for id, addr := range cfg.Peers {
		if id == cfg.ID {
			continue
		}
		tr.AddPeer(id, addr)
	}

	rn, err := raft.New(raft.Config{
		ID:                 cfg.ID,
		Peers:              cfg.raftPeers(),
		Storage:            cfg.RaftStorage,
		Transport:          tr,
		Logger:             xlog.New("raft"),
		HeartbeatInterval:  cfg.HeartbeatInterval,
		ElectionTimeoutMin: cfg.ElectionTimeoutMin,
		ElectionTimeoutMax: cfg.ElectionTimeoutMax,
	})
	if err != nil {
		return nil, err
	}
	handler.target = rn

	return &Node{
		id:         cfg.ID,
		listenAddr: cfg.ListenAddr,
		raftNode:   rn,
		transport:  tr,
		machine:    sm.New(cfg.Store),
		stopc:      make(chan struct{}),
		donec:      make(chan struct{}),
	}, nil
}

// Start runs the raft driver, the applier loop, and the peer-RPC HTTP
// server, all in their own goroutines, and returns immediately.
func (n *Node) Start() {
	go n.raftNode.Run()
	go n.applyLoop()
	go func() {
		if err := n.transport.Serve(n.listenAddr); err != nil {
			log.Errorf("peer transport server exited: %v", err)
		}
	}()
}

// Stop shuts the node down: the peer server, the raft driver, and the
// applier loop, in that order, then waits for the applier to exit.
func (n *Node) Stop() {
	n.transport.Stop()
	n.raftNode.Stop()
	select {
	case <-n.stopc:
	default:
		close(n.stopc)
	}
	<-n.donec
}

// applyLoop is the applier of spec.md §5: it consumes committed entries
// strictly in index order and applies each synchronously before
// accepting the next, then reports the outcome back so any pending
// client future resolves.
func (n *Node) applyLoop() {
	defer close(n.donec)
	for {
		select {
		case <-n.stopc:
			return
		case entry, ok := <-n.raftNode.Committed():
			if !ok {
				return
			}
			result, err := n.machine.Apply(entry)
			if err != nil {
				// A StateMachineError is fatal to the node process, per
				// spec.md §7's acknowledged limitation.
				log.Fatalf("%v", err)
			}
			n.raftNode.NotifyApplied(entry.Index, raft.ApplyResult{
				Value: sm.EncodeResult(result),
			})
		}
	}
}

// Submit proposes sql for replication and blocks until it has been
// applied (or leadership is lost before that happens), returning the
// decoded statement result.
func (n *Node) Submit(sql string) (sm.Result, error) {
	cmd, err := sm.EncodeCommand(sql)
	if err != nil {
		return sm.Result{}, err
	}
	leaderAddr := func(err error) error {
		var nl *rafterrors.NotLeaderError
		if errors.As(err, &nl) && nl.Hint != "" {
			if id, perr := strconv.ParseUint(nl.Hint, 10, 64); perr == nil {
				nl.Hint = n.addressOf(id)
			}
		}
		return err
	}
	future, err := n.raftNode.Propose(cmd)
	if err != nil {
		return sm.Result{}, leaderAddr(err)
	}
	applied := future.Wait()
	if applied.Err != nil {
		return sm.Result{}, leaderAddr(applied.Err)
	}
	return sm.DecodeResult(applied.Value)
}

// Status reports this node's role, term, and — if not itself the
// leader — a hint at the believed leader's address, per spec.md §6's
// Status RPC.
type Status struct {
	NodeID     uint64
	Role       raft.Role
	Term       uint64
	LeaderHint string
}

func (n *Node) Status() Status {
	s := n.raftNode.Status()
	hint := ""
	if s.Role != raft.Leader && s.LeaderID != raft.NoLeader {
		hint = n.addressOf(s.LeaderID)
	}
	return Status{NodeID: s.ID, Role: s.Role, Term: s.Term, LeaderHint: hint}
}

func (n *Node) addressOf(id uint64) string {
	// The believed leader's numeric ID is resolved to a dialable address
	// here, since only this wiring layer holds the ID-to-address map;
	// raft.Node itself only ever sees numeric IDs (raft/node.go's
	// leaderHint).
	if addr, ok := n.transport.PeerAddr(id); ok {
		return addr
	}
	return ""
}

// ListTables and GetTable are read directly against the local catalog
// rather than through the log, per spec.md §9's "read-only through the
// log" note acknowledging this coarseness: schema reads specifically are
// safe to serve from any node's locally applied state without a fresh
// round of consensus, since they are only used for display purposes by
// the demonstration client.
func (n *Node) ListTables() ([]string, error) {
	return n.machine.Catalog().ListTables()
}

func (n *Node) GetTable(name string) (string, error) {
	t, err := n.machine.Catalog().GetTable(name)
	if err != nil {
		return "", err
	}
	return catalog.CanonicalCreateTable(t), nil
}

// IsNotLeader reports whether err is the NotLeader error a client should
// retry against LeaderHint.
func IsNotLeader(err error) bool { return rafterrors.IsNotLeader(err) }
