package raft_test

import (
	"sync"
	"testing"
	"time"

	"raftsql/raft"
	"raftsql/raft/raftpb"
	"raftsql/raftlog"
)

// fabric is an in-process Transport that delivers messages directly to
// the target node's Step method, simulating a fully-connected network
// with no loss. Each message is delivered on its own goroutine, so
// delivery order is not guaranteed.
type fabric struct {
	mu    sync.Mutex
	nodes map[uint64]*raft.Node
}

func newFabric() *fabric { return &fabric{nodes: make(map[uint64]*raft.Node)} }

func (f *fabric) register(id uint64, n *raft.Node) {
	f.mu.Lock()
	f.nodes[id] = n
	f.mu.Unlock()
}

type fabricTransport struct {
	f *fabric
}

func (t *fabricTransport) Send(msg raftpb.Message) {
	t.f.mu.Lock()
	target := t.f.nodes[msg.To]
	t.f.mu.Unlock()
	if target == nil {
		return
	}
	go target.Step(msg)
}

func newCluster(t *testing.T, n int) ([]*raft.Node, *fabric) {
	t.Helper()
	f := newFabric()

	peers := make([]uint64, n)
	for i := 0; i < n; i++ {
		peers[i] = uint64(i + 1)
	}

	nodes := make([]*raft.Node, n)
	for i := 0; i < n; i++ {
		id := peers[i]
		cfg := raft.Config{
			ID:                 id,
			Peers:              peers,
			Storage:            raftlog.NewMemoryStore(),
			Transport:          &fabricTransport{f: f},
			HeartbeatInterval:  20 * time.Millisecond,
			ElectionTimeoutMin: 100 * time.Millisecond,
			ElectionTimeoutMax: 200 * time.Millisecond,
		}
		node, err := raft.New(cfg)
		if err != nil {
			t.Fatalf("raft.New: %v", err)
		}
		nodes[i] = node
		f.register(id, node)
	}

	for _, n := range nodes {
		go n.Run()
	}
	t.Cleanup(func() {
		for _, n := range nodes {
			n.Stop()
		}
	})
	return nodes, f
}

func waitForLeader(t *testing.T, nodes []*raft.Node, timeout time.Duration) *raft.Node {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, n := range nodes {
			if s := n.Status(); s.Role == raft.Leader {
				return n
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no leader elected within %s", timeout)
	return nil
}

func TestElectsExactlyOneLeader(t *testing.T) {
	nodes, _ := newCluster(t, 3)
	leader := waitForLeader(t, nodes, 2*time.Second)

	leaders := 0
	term := leader.Status().Term
	for _, n := range nodes {
		s := n.Status()
		if s.Role == raft.Leader && s.Term == term {
			leaders++
		}
	}
	if leaders != 1 {
		t.Fatalf("expected exactly one leader in term %d, got %d", term, leaders)
	}
}

func TestProposeCommitsOnMajority(t *testing.T) {
	nodes, _ := newCluster(t, 3)
	leader := waitForLeader(t, nodes, 2*time.Second)

	// Drain committed entries on every node so the raft driver is never
	// backed up waiting for an applier, matching the runtime contract.
	for _, n := range nodes {
		go func(n *raft.Node) {
			for e := range n.Committed() {
				n.NotifyApplied(e.Index, raft.ApplyResult{Value: e.Command})
			}
		}(n)
	}

	future, err := leader.Propose([]byte("hello"))
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	select {
	case r := <-waitC(future):
		if r.Err != nil {
			t.Fatalf("apply error: %v", r.Err)
		}
		if string(r.Value) != "hello" {
			t.Fatalf("got %q, want %q", r.Value, "hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("future never resolved")
	}
}

func waitC(f *raft.Future) <-chan raft.ApplyResult {
	c := make(chan raft.ApplyResult, 1)
	go func() { c <- f.Wait() }()
	return c
}

func TestNonLeaderRejectsPropose(t *testing.T) {
	nodes, _ := newCluster(t, 3)
	leader := waitForLeader(t, nodes, 2*time.Second)

	for _, n := range nodes {
		if n == leader {
			continue
		}
		if _, err := n.Propose([]byte("x")); err == nil {
			t.Fatalf("expected NotLeaderError from a follower")
		}
	}
}
