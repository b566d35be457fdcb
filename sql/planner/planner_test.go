package planner_test

import (
	"testing"

	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/sql/parser"
	"raftsql/sql/plan"
	"raftsql/sql/planner"
)

func TestBuildCreateTableAppliesNullableDefaults(t *testing.T) {
	cat := catalog.New(kv.NewMemStore())
	stmt, err := parser.Parse("CREATE TABLE t (id INTEGER PRIMARY KEY, name VARCHAR)")
	if err != nil {
		t.Fatal(err)
	}
	node, err := planner.Build(cat, stmt)
	if err != nil {
		t.Fatal(err)
	}
	ct, ok := node.(*plan.CreateTable)
	if !ok {
		t.Fatalf("got %T, want *plan.CreateTable", node)
	}
	if ct.Schema.Columns[0].Nullable {
		t.Fatal("primary key column must be non-nullable")
	}
	if !ct.Schema.Columns[1].Nullable {
		t.Fatal("non-primary column should default nullable")
	}
}

func TestBuildSelectStarExpandsColumns(t *testing.T) {
	cat := catalog.New(kv.NewMemStore())
	table, err := catalog.NewTable("movies", []catalog.Column{
		{Name: "id", Type: catalog.Integer},
		{Name: "title", Type: catalog.Varchar, Nullable: true},
	}, "id")
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.CreateTable(table); err != nil {
		t.Fatal(err)
	}

	stmt, err := parser.Parse("SELECT * FROM movies")
	if err != nil {
		t.Fatal(err)
	}
	node, err := planner.Build(cat, stmt)
	if err != nil {
		t.Fatal(err)
	}
	proj, ok := node.(*plan.Projection)
	if !ok {
		t.Fatalf("got %T, want *plan.Projection", node)
	}
	if len(proj.Exprs) != 2 {
		t.Fatalf("expected 2 expanded columns, got %d", len(proj.Exprs))
	}
}

func TestBuildSelectUnknownTable(t *testing.T) {
	cat := catalog.New(kv.NewMemStore())
	stmt, err := parser.Parse("SELECT * FROM missing")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := planner.Build(cat, stmt); err == nil {
		t.Fatal("expected UnknownTable plan error")
	}
}

func TestBuildSelectUnknownColumnOverNothing(t *testing.T) {
	cat := catalog.New(kv.NewMemStore())
	stmt, err := parser.Parse("SELECT id")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := planner.Build(cat, stmt); err == nil {
		t.Fatal("expected UnknownColumn plan error for free identifier over Nothing")
	}
}
