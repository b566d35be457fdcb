package client_test

import (
	"context"
	"net"
	"testing"
	"time"

	"raftsql/client"
	"raftsql/kv"
	"raftsql/node"
	"raftsql/raft"
	"raftsql/raftlog"
)

func newSingleNode(t *testing.T) *node.Node {
	t.Helper()
	addr := freeAddr(t)
	n, err := node.New(node.Config{
		ID:                 1,
		Peers:              map[uint64]string{1: "http://" + addr},
		ListenAddr:         addr,
		RaftStorage:        raftlog.NewMemoryStore(),
		Store:              kv.NewMemStore(),
		HeartbeatInterval:  20 * time.Millisecond,
		ElectionTimeoutMin: 100 * time.Millisecond,
		ElectionTimeoutMax: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("node.New: %v", err)
	}
	n.Start()
	t.Cleanup(n.Stop)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if n.Status().Role == raft.Leader {
			return n
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("single node never became leader")
	return nil
}

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

func startClientServer(t *testing.T, n *node.Node) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		ln.Close()
	})
	srv := client.NewServer(n)
	go srv.Serve(ctx, ln)
	return ln.Addr().String()
}

func TestClientQueryAndSchemaRPCs(t *testing.T) {
	n := newSingleNode(t)
	addr := startClientServer(t, n)

	c, err := client.Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.Query("CREATE TABLE t (id INTEGER PRIMARY KEY, name VARCHAR)"); err != nil {
		t.Fatalf("CREATE TABLE: %v", err)
	}
	if _, err := c.Query("INSERT INTO t (id, name) VALUES (1, 'a')"); err != nil {
		t.Fatalf("INSERT: %v", err)
	}

	rows, err := c.Query("SELECT * FROM t")
	if err != nil {
		t.Fatalf("SELECT: %v", err)
	}
	if len(rows) != 1 || len(rows[0].Fields) != 2 {
		t.Fatalf("got %+v", rows)
	}
	if rows[0].Fields[0].I != 1 || rows[0].Fields[1].S != "a" {
		t.Fatalf("got %+v", rows[0].Fields)
	}

	tables, err := c.ListTables()
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 || tables[0] != "t" {
		t.Fatalf("got %v", tables)
	}

	text, err := c.GetTable("t")
	if err != nil {
		t.Fatal(err)
	}
	if text == "" {
		t.Fatal("expected non-empty CREATE TABLE text")
	}

	status, err := c.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.Role != "leader" {
		t.Fatalf("got role %q", status.Role)
	}
}
