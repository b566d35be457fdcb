// Package client defines the wire protocol between a raftsql client and
// a node's demonstration listener (cmd/raftsqld), per spec.md §6's
// external Client RPC surface: Status, Query, ListTables, GetTable.
// Framing follows raftpb.Encoder/Decoder's length-prefixed gob shape
// (raft/raftpb/codec.go), generalized from one fixed message type to a
// tagged Request/Response envelope carrying whichever of the four calls
// the client made.
package client

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"

	"raftsql/kv"
	"raftsql/raft"
)

// RequestKind tags which of the four client RPCs a Request carries.
type RequestKind uint8

const (
	StatusRequest RequestKind = iota
	QueryRequest
	ListTablesRequest
	GetTableRequest
)

// Request is one client call, gob-encoded and length-prefixed over the
// wire. Only the field relevant to Kind is populated.
type Request struct {
	Kind RequestKind
	SQL  string // QueryRequest
	Name string // GetTableRequest
}

// FieldKind mirrors kv.Kind for values that cross the wire, so this
// package does not need to gob-register kv.Value's unexported fields.
type FieldKind uint8

const (
	FieldNull FieldKind = iota
	FieldBoolean
	FieldInteger
	FieldFloat
	FieldString
)

// Field is one cell of a Row, per spec.md §6: "a Row is {error?, fields:
// [{bool|int64|double|string}]}; Null is encoded as an absent value in
// the oneof" — represented here as FieldNull with the other fields left
// zero rather than a literal absent field, since gob has no native oneof.
type Field struct {
	Kind FieldKind
	B    bool
	I    int64
	F    float64
	S    string
}

// FieldFromValue converts an executed kv.Value into its wire Field.
func FieldFromValue(v kv.Value) Field {
	switch v.Kind() {
	case kv.KindBoolean:
		return Field{Kind: FieldBoolean, B: v.Boolean()}
	case kv.KindInteger:
		return Field{Kind: FieldInteger, I: v.Integer()}
	case kv.KindFloat:
		return Field{Kind: FieldFloat, F: v.Float()}
	case kv.KindString:
		return Field{Kind: FieldString, S: v.Text()}
	default:
		return Field{Kind: FieldNull}
	}
}

// Value converts a wire Field back into a kv.Value.
func (f Field) Value() kv.Value {
	switch f.Kind {
	case FieldBoolean:
		return kv.BooleanValue(f.B)
	case FieldInteger:
		return kv.IntegerValue(f.I)
	case FieldFloat:
		return kv.FloatValue(f.F)
	case FieldString:
		return kv.StringValue(f.S)
	default:
		return kv.NullValue()
	}
}

// Row is one result row, or a terminal error ending the stream — per
// spec.md §7's "partial results in a streamed query are followed by a
// terminal error row; once an error is sent, no further rows follow."
type Row struct {
	Fields []Field
	Error  string
}

// Response answers a Request. Rows is populated only for QueryRequest;
// Tables only for ListTablesRequest; CreateTableText only for
// GetTableRequest; the Status fields only for StatusRequest. Error is
// set, and every other field left zero, on a request-level failure
// (e.g. NotLeaderError) that isn't a per-row query error.
type Response struct {
	Error string

	// StatusRequest
	NodeID     uint64
	Role       string
	Term       uint64
	LeaderHint string

	// QueryRequest
	Rows []Row

	// ListTablesRequest
	Tables []string

	// GetTableRequest
	CreateTableText string
}

// RoleString renders a raft.Role the way Status reports it over the
// wire, since raft.Role itself is not gob-friendly across packages that
// never import package raft.
func RoleString(r raft.Role) string { return r.String() }

// WriteFrame writes v as a length-prefixed gob frame.
func WriteFrame(w io.Writer, v interface{}) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint64(buf.Len())); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadFrame reads one length-prefixed gob frame into v.
func ReadFrame(r io.Reader, v interface{}) error {
	var n uint64
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	return gob.NewDecoder(bytes.NewReader(buf)).Decode(v)
}
