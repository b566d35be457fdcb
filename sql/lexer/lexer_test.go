package lexer_test

import (
	"testing"

	"raftsql/sql/lexer"
	"raftsql/sql/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexCreateTable(t *testing.T) {
	toks, err := lexer.Lex("CREATE TABLE t (id INTEGER PRIMARY KEY)")
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Kind{
		token.Keyword, token.Keyword, token.Ident, token.OpenParen,
		token.Ident, token.Keyword, token.Keyword, token.Keyword,
		token.CloseParen, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexStringEscaping(t *testing.T) {
	toks, err := lexer.Lex(`'it''s "quoted"'`)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Kind != token.String || toks[0].Text != `it's "quoted"` {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexNumberKinds(t *testing.T) {
	toks, err := lexer.Lex("1 3.14")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Text != "1" || toks[1].Text != "3.14" {
		t.Fatalf("got %+v", toks[:2])
	}
}

func TestLexUnexpectedCharacter(t *testing.T) {
	if _, err := lexer.Lex("SELECT @"); err == nil {
		t.Fatal("expected ParseError on unexpected character")
	}
}

func TestLexIdentifiersAreCaseSensitive(t *testing.T) {
	toks, err := lexer.Lex("MyTable")
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Kind != token.Ident || toks[0].Text != "MyTable" {
		t.Fatalf("got %+v", toks[0])
	}
}
