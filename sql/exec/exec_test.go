package exec_test

import (
	"testing"

	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/sql/exec"
	"raftsql/sql/parser"
	"raftsql/sql/planner"
)

func newEngine() (*exec.Engine, *catalog.Catalog) {
	store := kv.NewMemStore()
	cat := catalog.New(store)
	return &exec.Engine{Catalog: cat, Store: store}, cat
}

func run(t *testing.T, e *exec.Engine, cat *catalog.Catalog, sql string) [][]kv.Value {
	t.Helper()
	stmt, err := parser.Parse(sql)
	if err != nil {
		t.Fatalf("%s: %v", sql, err)
	}
	node, err := planner.Build(cat, stmt)
	if err != nil {
		t.Fatalf("%s: %v", sql, err)
	}
	rows, err := e.Run(node)
	if err != nil {
		t.Fatalf("%s: %v", sql, err)
	}
	return rows
}

func TestSelectLiteralsOverNothing(t *testing.T) {
	e, cat := newEngine()
	rows := run(t, e, cat, "SELECT NULL, TRUE, FALSE, 1, 3.14, 'Hi! 👋'")
	if len(rows) != 1 || len(rows[0]) != 6 {
		t.Fatalf("got %v", rows)
	}
	if !rows[0][0].IsNull() {
		t.Fatal("expected first cell Null")
	}
	if !rows[0][1].Boolean() || rows[0][2].Boolean() {
		t.Fatalf("got %v", rows[0][1:3])
	}
	if rows[0][3].Integer() != 1 {
		t.Fatalf("got %v", rows[0][3])
	}
	if rows[0][5].Text() != "Hi! 👋" {
		t.Fatalf("got %v", rows[0][5])
	}
}

func TestCreateInsertSelectRoundTrip(t *testing.T) {
	e, cat := newEngine()
	run(t, e, cat, "CREATE TABLE movies (id INTEGER PRIMARY KEY, title VARCHAR, year INTEGER, watched BOOLEAN)")
	run(t, e, cat, "INSERT INTO movies (id, title, year, watched) VALUES (2, 'Sicario', 2015, true), (1, 'Stalker', 1979, false), (3, 'Primer', 2004, NULL)")

	rows := run(t, e, cat, "SELECT * FROM movies")
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	// Row order follows primary-key order, not insertion order.
	if rows[0][0].Integer() != 1 || rows[1][0].Integer() != 2 || rows[2][0].Integer() != 3 {
		t.Fatalf("expected pk order 1,2,3, got %v, %v, %v", rows[0][0], rows[1][0], rows[2][0])
	}
	if !rows[2][3].IsNull() {
		t.Fatal("expected watched=NULL for Primer")
	}
}

func TestDeleteWithWhere(t *testing.T) {
	e, cat := newEngine()
	run(t, e, cat, "CREATE TABLE t (id INTEGER PRIMARY KEY)")
	run(t, e, cat, "INSERT INTO t (id) VALUES (1), (2), (3)")
	run(t, e, cat, "DELETE FROM t WHERE id = 2")

	rows := run(t, e, cat, "SELECT * FROM t")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestUpdateSetsColumn(t *testing.T) {
	e, cat := newEngine()
	run(t, e, cat, "CREATE TABLE t (id INTEGER PRIMARY KEY, name VARCHAR)")
	run(t, e, cat, "INSERT INTO t (id, name) VALUES (1, 'a')")
	run(t, e, cat, "UPDATE t SET name = 'b' WHERE id = 1")

	rows := run(t, e, cat, "SELECT * FROM t")
	if rows[0][1].Text() != "b" {
		t.Fatalf("got %v", rows[0][1])
	}
}

func TestArithmeticNullPropagation(t *testing.T) {
	e, cat := newEngine()
	rows := run(t, e, cat, "SELECT 1 + NULL")
	if !rows[0][0].IsNull() {
		t.Fatal("expected Null result from arithmetic involving Null")
	}
}

func TestIntegerFloatPromotion(t *testing.T) {
	e, cat := newEngine()
	rows := run(t, e, cat, "SELECT 1 + 2.5")
	if rows[0][0].Kind() != kv.KindFloat || rows[0][0].Float() != 3.5 {
		t.Fatalf("got %v", rows[0][0])
	}
}
