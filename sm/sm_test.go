package sm

import (
	"testing"

	"raftsql/kv"
	"raftsql/raft/raftpb"
)

func TestApplyCreateTableThenSelect(t *testing.T) {
	m := New(kv.NewMemStore())

	cmd, err := EncodeCommand("CREATE TABLE t (id INTEGER PRIMARY KEY, name VARCHAR)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Apply(raftpb.Entry{Index: 1, Command: cmd}); err != nil {
		t.Fatal(err)
	}

	cmd, err = EncodeCommand("INSERT INTO t (id, name) VALUES (1, 'a')")
	if err != nil {
		t.Fatal(err)
	}
	if res, err := m.Apply(raftpb.Entry{Index: 2, Command: cmd}); err != nil || res.Error != nil {
		t.Fatalf("insert failed: %v, %v", err, res.Error)
	}

	cmd, err = EncodeCommand("SELECT * FROM t")
	if err != nil {
		t.Fatal(err)
	}
	res, err := m.Apply(raftpb.Entry{Index: 3, Command: cmd})
	if err != nil || res.Error != nil {
		t.Fatalf("select failed: %v, %v", err, res.Error)
	}
	if len(res.Rows) != 1 || res.Rows[0][1].Text() != "a" {
		t.Fatalf("got %v", res.Rows)
	}
}

func TestApplyNoOpEntry(t *testing.T) {
	m := New(kv.NewMemStore())
	res, err := m.Apply(raftpb.Entry{Index: 1})
	if err != nil || res.Error != nil || res.Rows != nil {
		t.Fatalf("expected no-op result, got %v, %v", res, err)
	}
}

func TestResultWireRoundTrip(t *testing.T) {
	r := Result{Rows: [][]kv.Value{
		{kv.IntegerValue(1), kv.StringValue("a")},
		{kv.NullValue(), kv.FloatValue(2.5)},
	}}
	decoded, err := DecodeResult(EncodeResult(r))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Rows) != 2 || decoded.Rows[0][0].Integer() != 1 {
		t.Fatalf("got %v", decoded.Rows)
	}
}

func TestResultWireRoundTripError(t *testing.T) {
	decoded, err := DecodeResult(EncodeResult(Result{Error: resultError("boom")}))
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Error == nil || decoded.Error.Error() != "boom" {
		t.Fatalf("got %v", decoded.Error)
	}
}
