package client

import (
	"errors"
	"net"
	"sync"
)

// Client is a connection to one raftsql node's client listener. It does
// not itself retry against LeaderHint on a NotLeader response; callers
// that want single-command convenience should inspect Response.Error
// and redial LeaderHint themselves (the demonstration binary does not
// need more than that).
type Client struct {
	mu   sync.Mutex
	conn net.Conn
}

// Dial connects to a node's client listener at addr ("host:port").
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) call(req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := WriteFrame(c.conn, &req); err != nil {
		return Response{}, err
	}
	var resp Response
	if err := ReadFrame(c.conn, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Status issues a Status RPC.
func (c *Client) Status() (Response, error) {
	return c.call(Request{Kind: StatusRequest})
}

// Query issues a SQL command and returns its rows, or the first
// terminal error row's message as an error.
func (c *Client) Query(sql string) ([]Row, error) {
	resp, err := c.call(Request{Kind: QueryRequest, SQL: sql})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	for _, row := range resp.Rows {
		if row.Error != "" {
			return nil, errors.New(row.Error)
		}
	}
	return resp.Rows, nil
}

// ListTables issues a ListTables RPC.
func (c *Client) ListTables() ([]string, error) {
	resp, err := c.call(Request{Kind: ListTablesRequest})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Tables, nil
}

// GetTable issues a GetTable RPC, returning the canonical CREATE TABLE
// text for name.
func (c *Client) GetTable(name string) (string, error) {
	resp, err := c.call(Request{Kind: GetTableRequest, Name: name})
	if err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", errors.New(resp.Error)
	}
	return resp.CreateTableText, nil
}
