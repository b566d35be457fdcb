// Command raftsqld runs one member of a raftsql cluster: the raft
// engine, its peer-RPC HTTP transport, and a TCP client listener
// speaking package client's wire protocol. Grounded on the teacher's
// raft-example/main.go (flag-free three-in-process-node demo), adapted
// to spec.md §6's collaborator-provided configuration surface (id,
// peers, data_dir, listen_addr, heartbeat_ms, election_timeout_ms_min/
// _max, storage) via the standard flag package rather than the
// teacher's hardcoded localhost ports, since a real deployment needs
// one process per node.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"raftsql/client"
	"raftsql/kv"
	"raftsql/node"
	"raftsql/raft"
	"raftsql/raftlog"
	"raftsql/xlog"
)

var log = xlog.New("raftsqld")

func main() {
	var (
		id               = flag.Uint64("id", 0, "this node's numeric ID (must be nonzero and appear in -peers)")
		peersFlag        = flag.String("peers", "", "comma-separated id=address pairs, e.g. 1=http://10.0.0.1:8080,2=http://10.0.0.2:8080")
		listenAddr       = flag.String("listen-addr", "", "host:port this node's peer-RPC server binds (defaults to its own -peers address)")
		clientAddr       = flag.String("client-addr", ":0", "host:port the client TCP listener binds")
		dataDir          = flag.String("data-dir", "", "directory for file-backed storage; empty means in-memory")
		heartbeatMs      = flag.Int("heartbeat-ms", 200, "leader heartbeat interval, in milliseconds")
		electionMinMs    = flag.Int("election-timeout-ms-min", 500, "minimum randomized election timeout, in milliseconds")
		electionMaxMs    = flag.Int("election-timeout-ms-max", 1000, "maximum randomized election timeout, in milliseconds")
		logLevel         = flag.String("log-level", "info", "log verbosity: debug, info, warn, or error")
	)
	flag.Parse()

	lvl, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "raftsqld:", err)
		os.Exit(1)
	}

	peers, err := parsePeers(*peersFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "raftsqld:", err)
		os.Exit(1)
	}
	addr, ok := peers[*id]
	if !ok {
		fmt.Fprintln(os.Stderr, "raftsqld: -id must name one of -peers")
		os.Exit(1)
	}
	if *listenAddr == "" {
		*listenAddr = strings.TrimPrefix(addr, "http://")
	}

	raftStorage, store, err := openStorage(*dataDir, *id)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}

	n, err := node.New(node.Config{
		ID:                 *id,
		Peers:              peers,
		ListenAddr:         *listenAddr,
		RaftStorage:        raftStorage,
		Store:              store,
		HeartbeatInterval:  time.Duration(*heartbeatMs) * time.Millisecond,
		ElectionTimeoutMin: time.Duration(*electionMinMs) * time.Millisecond,
		ElectionTimeoutMax: time.Duration(*electionMaxMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("node.New: %v", err)
	}
	// Set after node.New so the loggers it creates are covered too.
	xlog.SetGlobalMaxLevel(lvl)
	n.Start()

	ln, err := net.Listen("tcp", *clientAddr)
	if err != nil {
		log.Fatalf("client listener: %v", err)
	}
	log.Infof("node %d serving raft on %s, clients on %s", *id, *listenAddr, ln.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	srv := client.NewServer(n)
	go func() {
		if err := srv.Serve(ctx, ln); err != nil {
			log.Errorf("client server: %v", err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	cancel()
	n.Stop()
	log.Infof("node %d stopped", *id)
}

// openStorage builds the raft log store and application KV store per
// spec.md §6's "storage (in-memory | file-backed)" option: an empty
// dataDir selects in-memory, matching raftlog.MemoryStore/kv.MemStore;
// otherwise both stores are opened as separate bolt databases under
// dataDir so a node's log and its applied state persist independently.
func openStorage(dataDir string, id uint64) (raft.Storage, kv.Store, error) {
	if dataDir == "" {
		return raftlog.NewMemoryStore(), kv.NewMemStore(), nil
	}
	nodeDir := filepath.Join(dataDir, "node-"+strconv.FormatUint(id, 10))
	raftStorage, err := raftlog.OpenBoltStore(filepath.Join(nodeDir, "raftlog.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open raft log: %w", err)
	}
	store, err := kv.OpenBoltStore(filepath.Join(nodeDir, "data.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open kv store: %w", err)
	}
	return raftStorage, store, nil
}

func parseLogLevel(s string) (xlog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return xlog.DEBUG, nil
	case "info":
		return xlog.INFO, nil
	case "warn", "warning":
		return xlog.WARN, nil
	case "error":
		return xlog.ERROR, nil
	default:
		return 0, fmt.Errorf("unknown -log-level %q", s)
	}
}

func parsePeers(spec string) (map[uint64]string, error) {
	peers := make(map[uint64]string)
	if spec == "" {
		return nil, fmt.Errorf("-peers must not be empty")
	}
	for _, pair := range strings.Split(spec, ",") {
		idAddr := strings.SplitN(pair, "=", 2)
		if len(idAddr) != 2 {
			return nil, fmt.Errorf("malformed -peers entry %q, want id=address", pair)
		}
		id, err := strconv.ParseUint(idAddr[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed peer ID in %q: %w", pair, err)
		}
		peers[id] = idAddr[1]
	}
	return peers, nil
}
