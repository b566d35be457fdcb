package transport_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreos/etcd/pkg/testutil"

	"raftsql/raft/raftpb"
	"raftsql/transport"
)

type recordingHandler struct {
	received chan raftpb.Message
}

func (h *recordingHandler) Step(msg raftpb.Message) {
	h.received <- msg
}

func TestSendDeliversMessageOverHTTP(t *testing.T) {
	defer testutil.AfterTest(t)

	handler := &recordingHandler{received: make(chan raftpb.Message, 1)}
	tr := transport.New(handler)
	srv := httptest.NewServer(tr.HTTPHandler())
	defer srv.Close()

	tr.AddPeer(2, srv.URL)
	tr.Send(raftpb.Message{Type: raftpb.MsgRequestVote, From: 1, To: 2, Term: 3})

	select {
	case msg := <-handler.received:
		if msg.From != 1 || msg.To != 2 || msg.Term != 3 {
			t.Fatalf("got %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message delivery")
	}
}
