// Package plan defines the operator tree produced by sql/planner and
// consumed by sql/exec, per spec.md §4.5. Node is a tagged sum with a
// boxed recursive child, mirroring original_source/src/sql/plan/node.rs's
// Node enum but flattened into the Go-interface-plus-marker-method style
// used throughout this repo (sql/ast, raft/raftpb).
package plan

import (
	"raftsql/catalog"
	"raftsql/sql/ast"
)

// Node is one operator in a plan tree.
type Node interface {
	planNode()
}

// Nothing yields exactly one empty row then ends; it is the source for a
// SELECT with no FROM clause.
type Nothing struct{}

func (*Nothing) planNode() {}

// Scan iterates a table's rows in primary-key order.
type Scan struct {
	Table catalog.Table
}

func (*Scan) planNode() {}

// Projection evaluates Exprs against each row pulled from Source.
type Projection struct {
	Source Node
	Exprs  []ast.Expr
	Labels []string // "" for an unaliased expression, per spec.md §4.4
}

func (*Projection) planNode() {}

// Filter drops rows from Source for which Predicate is not truthy under
// three-valued logic (Null is treated as false).
type Filter struct {
	Source    Node
	Predicate ast.Expr
}

func (*Filter) planNode() {}

// CreateTable mutates the catalog as a side effect and produces no rows.
type CreateTable struct {
	Schema catalog.Table
}

func (*CreateTable) planNode() {}

// DropTable mutates the catalog as a side effect and produces no rows.
type DropTable struct {
	Name string
}

func (*DropTable) planNode() {}

// Insert appends Rows to Table, keyed by each row's primary-key cell.
type Insert struct {
	Table catalog.Table
	Rows  [][]ast.Expr
}

func (*Insert) planNode() {}

// Delete removes every row from Source (typically a Filter over a Scan).
type Delete struct {
	Table  catalog.Table
	Source Node
}

func (*Delete) planNode() {}

// Update rewrites every row from Source by evaluating Assignments against
// it before writing the row back.
type Update struct {
	Table       catalog.Table
	Source      Node
	Assignments []ast.Assignment
}

func (*Update) planNode() {}

// IsMutating reports whether root changes catalog or row state, as opposed
// to only reading it. Every command still applies through the log
// uniformly (spec.md §9: "read-only through the log, acknowledged as
// coarse"); package sm uses this only to label its per-apply debug log.
func IsMutating(root Node) bool {
	switch root.(type) {
	case *CreateTable, *DropTable, *Insert, *Delete, *Update:
		return true
	default:
		return false
	}
}
