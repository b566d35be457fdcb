// Package transport delivers raft RPC messages between peers over HTTP,
// grounded on gyuho-db/rafthttp's Transporter interface shape
// (Start/Stop/HTTPHandler/AddPeer/SendMessagesToPeer) but simplified to a
// single request/response POST per message: no connection reuse
// pipelining, no probing, no snapshot transfer (all Non-goals of
// spec.md §1's transport framing). Peer membership is static for the
// lifetime of a Transport since online cluster reconfiguration is out
// of scope, so there is no RemovePeer counterpart to AddPeer.
package transport

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"raftsql/raft"
	"raftsql/raft/raftpb"
	"raftsql/xlog"
)

const raftPath = "/raft/message"

var log = xlog.New("transport")

// Handler receives a decoded message off the wire and steps it into the
// local raft.Node. It is a narrow slice of *raft.Node so this package has
// no import-cycle risk with node.
type Handler interface {
	Step(msg raftpb.Message)
}

// Transport implements raft.Transport over HTTP, keyed by the numeric
// node IDs raft.Message.To/From carry.
type Transport struct {
	handler Handler
	client  *http.Client

	mu    sync.RWMutex
	peers map[uint64]string // node ID -> base URL

	server *http.Server
}

var _ raft.Transport = (*Transport)(nil)

// New constructs a Transport that steps inbound messages into handler.
func New(handler Handler) *Transport {
	return &Transport{
		handler: handler,
		client:  &http.Client{Timeout: 5 * time.Second},
		peers:   make(map[uint64]string),
	}
}

// AddPeer registers baseURL (e.g. "http://10.0.0.2:8080") as the address
// of node id.
func (t *Transport) AddPeer(id uint64, baseURL string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.peers[id] = baseURL
}

// PeerAddr returns the registered address for id, if any. Used by the
// node wiring layer to translate raft's numeric leader-ID hints into a
// dialable address for NotLeaderError.Hint.
func (t *Transport) PeerAddr(id uint64) (string, bool) {
	return t.peerURL(id)
}

func (t *Transport) peerURL(id uint64) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	url, ok := t.peers[id]
	return url, ok
}

// Serve starts an HTTP server bound to addr, handling incoming peer
// messages until Stop is called.
func (t *Transport) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle(raftPath, t.HTTPHandler())
	t.server = &http.Server{Addr: addr, Handler: mux}
	err := t.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the HTTP server down, if one was started with Serve.
func (t *Transport) Stop() error {
	if t.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return t.server.Shutdown(ctx)
}

// HTTPHandler decodes one length-prefixed raftpb.Message per POST body
// and steps it into the local node.
func (t *Transport) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg, err := raftpb.NewDecoder(r.Body).Decode()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t.handler.Step(msg)
		w.WriteHeader(http.StatusNoContent)
	})
}

// Send delivers msg to msg.To asynchronously. Per raft.Transport's
// contract, Send must return promptly; the actual network write happens
// in its own goroutine so the raft actor loop is never blocked on it.
func (t *Transport) Send(msg raftpb.Message) {
	url, ok := t.peerURL(msg.To)
	if !ok {
		log.Warningf("no known address for peer %d, dropping message", msg.To)
		return
	}
	go t.doSend(url, msg)
}

func (t *Transport) doSend(url string, msg raftpb.Message) {
	var buf bytes.Buffer
	if err := raftpb.NewEncoder(&buf).Encode(&msg); err != nil {
		log.Errorf("failed to encode message to %d: %v", msg.To, err)
		return
	}
	resp, err := t.client.Post(url+raftPath, "application/octet-stream", &buf)
	if err != nil {
		log.Warningf("failed to send message to %d: %v", msg.To, err)
		return
	}
	resp.Body.Close()
}
