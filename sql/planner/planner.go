// Package planner lowers an ast.Statement into a plan.Node tree, per
// spec.md §4.5, grounded on original_source/src/sql/plan/mod.rs's
// Planner::build_statement dispatch.
package planner

import (
	"raftsql/catalog"
	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/plan"
)

// Catalog is the read-only subset of catalog.Catalog the planner needs
// for name resolution.
type Catalog interface {
	GetTable(name string) (catalog.Table, error)
	TableExists(name string) (bool, error)
}

// Build lowers stmt into a plan tree, resolving table and column names
// against cat.
func Build(cat Catalog, stmt ast.Statement) (plan.Node, error) {
	switch s := stmt.(type) {
	case *ast.CreateTable:
		return buildCreateTable(s)
	case *ast.DropTable:
		return buildDropTable(cat, s)
	case *ast.Select:
		return buildSelect(cat, s)
	case *ast.Insert:
		return buildInsert(cat, s)
	case *ast.Delete:
		return buildDelete(cat, s)
	case *ast.Update:
		return buildUpdate(cat, s)
	default:
		return nil, rafterrors.ErrNotImplemented
	}
}

func buildCreateTable(s *ast.CreateTable) (plan.Node, error) {
	var primaryKey string
	columns := make([]catalog.Column, len(s.Columns))
	for i, c := range s.Columns {
		nullable := true
		if c.Nullability != nil {
			nullable = *c.Nullability
		}
		if c.PrimaryKey {
			primaryKey = c.Name
			nullable = false
		}
		columns[i] = catalog.Column{Name: c.Name, Type: c.Type, Nullable: nullable}
	}
	table, err := catalog.NewTable(s.Table, columns, primaryKey)
	if err != nil {
		return nil, rafterrors.NewPlanError(rafterrors.TypeMismatch, "%s", err)
	}
	return &plan.CreateTable{Schema: table}, nil
}

func buildDropTable(cat Catalog, s *ast.DropTable) (plan.Node, error) {
	if err := requireTable(cat, s.Table); err != nil {
		return nil, err
	}
	return &plan.DropTable{Name: s.Table}, nil
}

func requireTable(cat Catalog, name string) error {
	exists, err := cat.TableExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return rafterrors.NewPlanError(rafterrors.UnknownTable, "%s", name)
	}
	return nil
}
