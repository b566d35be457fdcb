// Package sm is the replicated state machine driver: it applies committed
// raft.raftpb.Entry values, in index order, by executing the SQL command
// each one carries. Grounded on the teacher's raft-example/store.go
// readCommit loop and the never-filled-in intent of gyuho-db/rsm/doc.go
// ("Package rsm is a replicated state machine built on top of consensus
// protocol. It is also an applying machine of those replicated
// commands.").
package sm

import (
	"bytes"
	"encoding/gob"

	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/raft/raftpb"
	"raftsql/rafterrors"
	"raftsql/sql/exec"
	"raftsql/sql/parser"
	"raftsql/sql/plan"
	"raftsql/sql/planner"
	"raftsql/xlog"
)

var log = xlog.New("sm")

// Command is the gob-encoded payload carried by every raftpb.Entry: the
// literal SQL text submitted by a client.
type Command struct {
	SQL string
}

// EncodeCommand gob-encodes a Command for Node.Propose.
func EncodeCommand(sql string) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(Command{SQL: sql}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeCommand(data []byte) (Command, error) {
	var cmd Command
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&cmd); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// Result is what applying one command produces: either a statement-level
// error, or the rows a read-only SELECT produced (mutating statements
// produce no rows).
type Result struct {
	Rows  [][]kv.Value
	Error error
}

// EncodeResult serializes r for storage in raft.ApplyResult.Value, using
// the tagged-cell wire shape of result_wire.go since kv.Value carries
// unexported fields gob cannot see across package boundaries.
func EncodeResult(r Result) []byte {
	return encodeResultWire(r)
}

// DecodeResult is the inverse of EncodeResult.
func DecodeResult(data []byte) (Result, error) {
	return decodeResultWire(data)
}

// Machine applies committed commands against a single catalog+store pair.
// It must be driven by exactly one goroutine, matching spec.md §4.1's
// "applied exactly once per node in index order".
type Machine struct {
	catalog *catalog.Catalog
	engine  *exec.Engine
}

func New(store kv.Store) *Machine {
	cat := catalog.New(store)
	return &Machine{
		catalog: cat,
		engine:  &exec.Engine{Catalog: cat, Store: store},
	}
}

// Apply executes the command carried by entry and returns its Result. A
// malformed command (a decode failure) is fatal per spec.md §7, since it
// means a corrupted or non-conformant log entry reached this node;
// anything else is reported as a normal statement error to the
// submitting client rather than crashing the node.
func (m *Machine) Apply(entry raftpb.Entry) (Result, error) {
	if len(entry.Command) == 0 {
		// An entry with an empty command applies to nothing.
		return Result{}, nil
	}
	cmd, err := decodeCommand(entry.Command)
	if err != nil {
		return Result{}, &rafterrors.StateMachineError{Index: entry.Index, Err: err}
	}

	stmt, err := parser.Parse(cmd.SQL)
	if err != nil {
		return Result{Error: err}, nil
	}
	node, err := planner.Build(m.catalog, stmt)
	if err != nil {
		return Result{Error: err}, nil
	}
	log.Debugf("apply index=%d mutating=%v sql=%q", entry.Index, plan.IsMutating(node), cmd.SQL)
	rows, err := m.engine.Run(node)
	if err != nil {
		return Result{Error: err}, nil
	}
	return Result{Rows: rows}, nil
}

// Catalog exposes the underlying catalog for read-only client RPCs
// (ListTables, GetTable) that do not need to go through the log.
func (m *Machine) Catalog() *catalog.Catalog { return m.catalog }
