// Package catalog stores table schemas on top of package kv, per spec.md
// §3's "mapping from table name to Table schema" definition. Schemas are
// created and dropped only by CREATE TABLE / DROP TABLE entries applied
// through the state machine (package sm), never directly by a client.
package catalog

import (
	"fmt"

	"raftsql/kv"
)

// DataType is one of the four scalar column types.
type DataType uint8

const (
	Boolean DataType = iota
	Integer
	Float
	Varchar
)

func (d DataType) String() string {
	switch d {
	case Boolean:
		return "BOOLEAN"
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Varchar:
		return "VARCHAR"
	default:
		return "UNKNOWN"
	}
}

// Column is (name, datatype, nullable), per spec.md §3.
type Column struct {
	Name     string
	Type     DataType
	Nullable bool
}

// Table is the schema of a table: an ordered column list plus the name of
// its single primary-key column. Column names are unique within a table.
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey string
}


// ColumnIndex returns the position of name in t.Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// NewTable forces the primary-key column to non-null, keeps every other
// column's Nullable as given, and checks that column names are unique and
// that the named primary-key column exists. The nullable default for
// non-primary columns is applied by the planner, not here.
func NewTable(name string, columns []Column, primaryKey string) (Table, error) {
	seen := make(map[string]bool, len(columns))
	out := make([]Column, len(columns))
	foundPK := false
	for i, c := range columns {
		if seen[c.Name] {
			return Table{}, fmt.Errorf("catalog: duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if c.Name == primaryKey {
			c.Nullable = false
			foundPK = true
		}
		out[i] = c
	}
	if !foundPK {
		return Table{}, fmt.Errorf("catalog: primary key column %q not found in table %q", primaryKey, name)
	}
	return Table{Name: name, Columns: out, PrimaryKey: primaryKey}, nil
}

// Catalog is a mapping from table name to Table schema, backed by a
// kv.Store using the tagged-prefix key encoding of spec.md §4.7.
type Catalog struct {
	store kv.Store
}

func New(store kv.Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) TableExists(name string) (bool, error) {
	_, ok, err := c.store.Get(kv.SchemaKey(name))
	return ok, err
}

func (c *Catalog) GetTable(name string) (Table, error) {
	raw, ok, err := c.store.Get(kv.SchemaKey(name))
	if err != nil {
		return Table{}, err
	}
	if !ok {
		return Table{}, fmt.Errorf("catalog: table %q does not exist", name)
	}
	return decodeTable(raw)
}

func (c *Catalog) CreateTable(t Table) error {
	exists, err := c.TableExists(t.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("catalog: table %q already exists", t.Name)
	}
	return c.store.Set(kv.SchemaKey(t.Name), encodeTable(t))
}

func (c *Catalog) DropTable(name string) error {
	return c.store.Delete(kv.SchemaKey(name))
}

// ListTables returns every table name in ascending order.
func (c *Catalog) ListTables() ([]string, error) {
	it, err := c.store.Scan([]byte{0x01})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var names []string
	for it.Next() {
		names = append(names, string(it.Key()[1:]))
	}
	return names, it.Err()
}
