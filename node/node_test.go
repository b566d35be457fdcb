package node_test

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/coreos/etcd/pkg/testutil"

	"raftsql/kv"
	"raftsql/node"
	"raftsql/raft"
	"raftsql/raftlog"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func newTestCluster(t *testing.T, n int) []*node.Node {
	t.Helper()

	ids := make([]uint64, n)
	addrs := make(map[uint64]string, n)
	for i := 0; i < n; i++ {
		id := uint64(i + 1)
		ids[i] = id
		addrs[id] = "http://" + freeAddr(t)
	}

	nodes := make([]*node.Node, n)
	for i, id := range ids {
		n0, err := node.New(node.Config{
			ID:                 id,
			Peers:              addrs,
			ListenAddr:         mustHostPort(addrs[id]),
			RaftStorage:        raftlog.NewMemoryStore(),
			Store:              kv.NewMemStore(),
			HeartbeatInterval:  20 * time.Millisecond,
			ElectionTimeoutMin: 150 * time.Millisecond,
			ElectionTimeoutMax: 300 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("node.New: %v", err)
		}
		nodes[i] = n0
	}
	for _, n0 := range nodes {
		n0.Start()
	}
	t.Cleanup(func() {
		for _, n0 := range nodes {
			n0.Stop()
		}
	})
	// give the HTTP servers a moment to bind before any peer dials them.
	time.Sleep(50 * time.Millisecond)
	return nodes
}

func mustHostPort(url string) string {
	return url[len("http://"):]
}

func waitForLeader(t *testing.T, nodes []*node.Node, timeout time.Duration) *node.Node {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, n0 := range nodes {
			if n0.Status().Role == raft.Leader {
				return n0
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no leader elected within timeout")
	return nil
}

func TestClusterElectsLeaderAndAppliesCommand(t *testing.T) {
	// Registered before newTestCluster's own t.Cleanup(n0.Stop) calls, so
	// it runs last (t.Cleanup is LIFO) — after every node has actually
	// stopped, not before.
	t.Cleanup(func() { testutil.AfterTest(t) })
	nodes := newTestCluster(t, 3)
	leader := waitForLeader(t, nodes, 5*time.Second)

	res, err := leader.Submit("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	if err != nil {
		t.Fatalf("Submit CREATE TABLE: %v", err)
	}
	if res.Error != nil {
		t.Fatalf("CREATE TABLE statement error: %v", res.Error)
	}

	res, err = leader.Submit("INSERT INTO t (id) VALUES (1)")
	if err != nil || res.Error != nil {
		t.Fatalf("Submit INSERT: %v, %v", err, res.Error)
	}

	res, err = leader.Submit("SELECT * FROM t")
	if err != nil || res.Error != nil {
		t.Fatalf("Submit SELECT: %v, %v", err, res.Error)
	}
	if len(res.Rows) != 1 || res.Rows[0][0].Integer() != 1 {
		t.Fatalf("got %v", res.Rows)
	}

	tables, err := leader.ListTables()
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 || tables[0] != "t" {
		t.Fatalf("got %v", tables)
	}
}

func TestNonLeaderSubmitFails(t *testing.T) {
	t.Cleanup(func() { testutil.AfterTest(t) })
	nodes := newTestCluster(t, 3)
	leader := waitForLeader(t, nodes, 5*time.Second)

	for _, n0 := range nodes {
		if n0 == leader {
			continue
		}
		_, err := n0.Submit("SELECT 1")
		if err == nil {
			t.Fatal("expected NotLeaderError from a follower")
		}
		if !node.IsNotLeader(err) {
			t.Fatalf("expected NotLeaderError, got %v", err)
		}
		return
	}
	t.Fatal(fmt.Sprint("no follower found among ", len(nodes), " nodes"))
}
