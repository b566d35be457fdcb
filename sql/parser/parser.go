// Package parser turns a token stream into an ast.Statement, per
// spec.md §4.4's grammar. Layout follows askorykh-goDB/internal/sql: a
// top-level Parse dispatches on the leading keyword to one file per
// statement kind (parse_create_table.go, parse_select.go, ...).
package parser

import (
	"strings"

	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/lexer"
	"raftsql/sql/token"
)

// Parse lexes and parses a single SQL statement.
func Parse(sql string) (ast.Statement, error) {
	toks, err := lexer.Lex(sql)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, rafterrors.NewParseError("unexpected trailing input at token %d (%q)", p.pos, p.cur().Text)
	}
	return stmt, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }

func (p *parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// keyword consumes the current token if it is Keyword with this text
// (case-insensitive), reporting whether it matched.
func (p *parser) keyword(kw string) bool {
	t := p.cur()
	if t.Kind == token.Keyword && strings.EqualFold(t.Text, kw) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw string) error {
	if !p.keyword(kw) {
		return rafterrors.NewParseError("expected keyword %s, got %q at token %d", kw, p.cur().Text, p.pos)
	}
	return nil
}

func (p *parser) expect(kind token.Kind, what string) (token.Token, error) {
	if p.cur().Kind != kind {
		return token.Token{}, rafterrors.NewParseError("expected %s, got %q at token %d", what, p.cur().Text, p.pos)
	}
	return p.advance(), nil
}

func (p *parser) expectEq() error {
	_, err := p.expect(token.Eq, "=")
	return err
}

func (p *parser) expectIdent() (string, error) {
	t, err := p.expect(token.Ident, "identifier")
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	t := p.cur()
	if t.Kind != token.Keyword {
		return nil, rafterrors.NewParseError("expected statement keyword, got %q", t.Text)
	}
	switch strings.ToUpper(t.Text) {
	case "CREATE":
		return p.parseCreateTable()
	case "DROP":
		return p.parseDropTable()
	case "SELECT":
		return p.parseSelect()
	case "INSERT":
		return p.parseInsert()
	case "DELETE":
		return p.parseDelete()
	case "UPDATE":
		return p.parseUpdate()
	default:
		return nil, rafterrors.NewParseError("unsupported statement keyword %q", t.Text)
	}
}
