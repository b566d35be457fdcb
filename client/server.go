package client

import (
	"context"
	"net"

	"raftsql/node"
	"raftsql/sm"
	"raftsql/xlog"
)

var log = xlog.New("client")

// Server accepts client connections and answers Status/Query/ListTables/
// GetTable requests against a single node.Node, per spec.md §6.
// Grounded on tuannm99-novasql/server/novasqlwire's Run/handleConn
// accept loop, generalized from novasqlwire's single ExecSQL call to
// this package's four-request envelope and from JSON length-prefixed
// frames to gob ones (matching the rest of the module's wire framing,
// raftpb.Encoder/Decoder).
type Server struct {
	node *node.Node
}

// NewServer wraps n for client-facing service.
func NewServer(n *node.Node) *Server { return &Server{node: n} }

// Serve accepts connections on ln until ctx is cancelled or ln is
// closed, handling each on its own goroutine.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			log.Errorf("accept: %v", err)
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	for {
		var req Request
		if err := ReadFrame(conn, &req); err != nil {
			return // client closed or sent a malformed frame
		}
		resp := s.dispatch(req)
		if err := WriteFrame(conn, &resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(req Request) Response {
	switch req.Kind {
	case StatusRequest:
		return s.handleStatus()
	case QueryRequest:
		return s.handleQuery(req.SQL)
	case ListTablesRequest:
		return s.handleListTables()
	case GetTableRequest:
		return s.handleGetTable(req.Name)
	default:
		return Response{Error: "client: unknown request kind"}
	}
}

func (s *Server) handleStatus() Response {
	st := s.node.Status()
	return Response{
		NodeID:     st.NodeID,
		Role:       RoleString(st.Role),
		Term:       st.Term,
		LeaderHint: st.LeaderHint,
	}
}

func (s *Server) handleQuery(sql string) Response {
	result, err := s.node.Submit(sql)
	if err != nil {
		return Response{Error: err.Error()}
	}
	if result.Error != nil {
		return Response{Rows: []Row{{Error: result.Error.Error()}}}
	}
	return Response{Rows: rowsFromResult(result)}
}

func rowsFromResult(result sm.Result) []Row {
	rows := make([]Row, len(result.Rows))
	for i, r := range result.Rows {
		fields := make([]Field, len(r))
		for j, v := range r {
			fields[j] = FieldFromValue(v)
		}
		rows[i] = Row{Fields: fields}
	}
	return rows
}

func (s *Server) handleListTables() Response {
	names, err := s.node.ListTables()
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Tables: names}
}

func (s *Server) handleGetTable(name string) Response {
	text, err := s.node.GetTable(name)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{CreateTableText: text}
}
