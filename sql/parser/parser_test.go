package parser_test

import (
	"testing"

	"raftsql/catalog"
	"raftsql/sql/ast"
	"raftsql/sql/parser"
)

func TestParseCreateTable(t *testing.T) {
	stmt, err := parser.Parse("CREATE TABLE movies (id INTEGER PRIMARY KEY, title VARCHAR NOT NULL)")
	if err != nil {
		t.Fatal(err)
	}
	ct, ok := stmt.(*ast.CreateTable)
	if !ok {
		t.Fatalf("got %T, want *ast.CreateTable", stmt)
	}
	if ct.Table != "movies" || len(ct.Columns) != 2 {
		t.Fatalf("unexpected statement: %+v", ct)
	}
	if !ct.Columns[0].PrimaryKey || ct.Columns[0].Type != catalog.Integer {
		t.Fatalf("unexpected first column: %+v", ct.Columns[0])
	}
	if ct.Columns[1].Nullability == nil || *ct.Columns[1].Nullability {
		t.Fatalf("expected NOT NULL on title, got %+v", ct.Columns[1])
	}
}

func TestParseSelectStar(t *testing.T) {
	stmt, err := parser.Parse("SELECT * FROM movies")
	if err != nil {
		t.Fatal(err)
	}
	sel, ok := stmt.(*ast.Select)
	if !ok {
		t.Fatalf("got %T, want *ast.Select", stmt)
	}
	if sel.From != "movies" || len(sel.Items) != 1 {
		t.Fatalf("unexpected select: %+v", sel)
	}
	if _, ok := sel.Items[0].Expr.(*ast.Star); !ok {
		t.Fatalf("expected Star item, got %T", sel.Items[0].Expr)
	}
}

func TestParseSelectLiterals(t *testing.T) {
	stmt, err := parser.Parse("SELECT NULL, TRUE, FALSE, 1, 3.14, 'Hi! 👋'")
	if err != nil {
		t.Fatal(err)
	}
	sel := stmt.(*ast.Select)
	if len(sel.Items) != 6 {
		t.Fatalf("got %d items, want 6", len(sel.Items))
	}
	if _, ok := sel.Items[0].Expr.(*ast.NullLiteral); !ok {
		t.Fatalf("item 0: got %T", sel.Items[0].Expr)
	}
	if s, ok := sel.Items[5].Expr.(*ast.StringLiteral); !ok || s.Value != "Hi! 👋" {
		t.Fatalf("item 5: got %+v", sel.Items[5].Expr)
	}
}

func TestParseInsert(t *testing.T) {
	stmt, err := parser.Parse("INSERT INTO movies (id, title) VALUES (1, 'Primer'), (2, 'Sicario')")
	if err != nil {
		t.Fatal(err)
	}
	ins, ok := stmt.(*ast.Insert)
	if !ok {
		t.Fatalf("got %T, want *ast.Insert", stmt)
	}
	if ins.Table != "movies" || len(ins.Columns) != 2 || len(ins.Values) != 2 {
		t.Fatalf("unexpected insert: %+v", ins)
	}
}

func TestParseDeleteWithWhere(t *testing.T) {
	stmt, err := parser.Parse("DELETE FROM movies WHERE id = 1")
	if err != nil {
		t.Fatal(err)
	}
	del, ok := stmt.(*ast.Delete)
	if !ok {
		t.Fatalf("got %T, want *ast.Delete", stmt)
	}
	if del.Where == nil {
		t.Fatal("expected WHERE clause")
	}
}

func TestParseUpdate(t *testing.T) {
	stmt, err := parser.Parse("UPDATE movies SET title = 'New' WHERE id = 1")
	if err != nil {
		t.Fatal(err)
	}
	upd, ok := stmt.(*ast.Update)
	if !ok {
		t.Fatalf("got %T, want *ast.Update", stmt)
	}
	if len(upd.Set) != 1 || upd.Set[0].Column != "title" {
		t.Fatalf("unexpected update: %+v", upd)
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	if _, err := parser.Parse("SELECT 1 GARBAGE"); err == nil {
		t.Fatal("expected ParseError on trailing input")
	}
}

func TestParseRejectsExplicitNullOnPrimaryKey(t *testing.T) {
	if _, err := parser.Parse("CREATE TABLE t (id INTEGER PRIMARY KEY NULL)"); err == nil {
		t.Fatal("expected ParseError for NULL primary key")
	}
}
