package planner

import (
	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/plan"
)

func buildDelete(cat Catalog, s *ast.Delete) (plan.Node, error) {
	table, err := cat.GetTable(s.Table)
	if err != nil {
		return nil, rafterrors.NewPlanError(rafterrors.UnknownTable, "%s", s.Table)
	}

	var source plan.Node = &plan.Scan{Table: table}
	if s.Where != nil {
		if _, err := resolveExpr(table, s.Where); err != nil {
			return nil, err
		}
		source = &plan.Filter{Source: source, Predicate: s.Where}
	}
	return &plan.Delete{Table: table, Source: source}, nil
}

func buildUpdate(cat Catalog, s *ast.Update) (plan.Node, error) {
	table, err := cat.GetTable(s.Table)
	if err != nil {
		return nil, rafterrors.NewPlanError(rafterrors.UnknownTable, "%s", s.Table)
	}
	for _, a := range s.Set {
		if table.ColumnIndex(a.Column) < 0 {
			return nil, rafterrors.NewPlanError(rafterrors.UnknownColumn, "%s", a.Column)
		}
		if _, err := resolveExpr(table, a.Value); err != nil {
			return nil, err
		}
	}

	var source plan.Node = &plan.Scan{Table: table}
	if s.Where != nil {
		if _, err := resolveExpr(table, s.Where); err != nil {
			return nil, err
		}
		source = &plan.Filter{Source: source, Predicate: s.Where}
	}
	assignments := make([]ast.Assignment, len(s.Set))
	copy(assignments, s.Set)
	return &plan.Update{Table: table, Source: source, Assignments: assignments}, nil
}
