package parser

import (
	"strings"

	"raftsql/catalog"
	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/token"
)

// parseCreateTable parses: CREATE TABLE ident '(' column (',' column)* [','] ')'
// column := ident type [PRIMARY KEY] [NULL | NOT NULL]
// A trailing comma before ')' is accepted, so catalog.CanonicalCreateTable
// output parses back.
func (p *parser) parseCreateTable() (ast.Statement, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpenParen, "("); err != nil {
		return nil, err
	}

	var columns []ast.ColumnSpec
	for {
		col, err := p.parseColumnSpec()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		if p.cur().Kind == token.Comma {
			p.advance()
			if p.cur().Kind == token.CloseParen {
				break
			}
			continue
		}
		break
	}
	if _, err := p.expect(token.CloseParen, ")"); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, rafterrors.NewParseError("CREATE TABLE %s: no column definitions", name)
	}
	return &ast.CreateTable{Table: name, Columns: columns}, nil
}

func (p *parser) parseColumnSpec() (ast.ColumnSpec, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.ColumnSpec{}, err
	}

	dt, err := p.parseDataType()
	if err != nil {
		return ast.ColumnSpec{}, err
	}

	spec := ast.ColumnSpec{Name: name, Type: dt}

	if p.keyword("PRIMARY") {
		if err := p.expectKeyword("KEY"); err != nil {
			return ast.ColumnSpec{}, err
		}
		spec.PrimaryKey = true
	}

	sawNullability := false
	if p.keyword("NOT") {
		if err := p.expectKeyword("NULL"); err != nil {
			return ast.ColumnSpec{}, err
		}
		f := false
		spec.Nullability = &f
		sawNullability = true
	} else if p.keyword("NULL") {
		t := true
		spec.Nullability = &t
		sawNullability = true
	}
	if spec.PrimaryKey && sawNullability && spec.Nullability != nil && *spec.Nullability {
		return ast.ColumnSpec{}, rafterrors.NewParseError("column %q: primary key column cannot be explicitly NULL", name)
	}
	return spec, nil
}

func (p *parser) parseDataType() (catalog.DataType, error) {
	t := p.cur()
	if t.Kind != token.Keyword {
		return 0, rafterrors.NewParseError("expected column type, got %q", t.Text)
	}
	switch strings.ToUpper(t.Text) {
	case "INTEGER":
		p.advance()
		return catalog.Integer, nil
	case "FLOAT":
		p.advance()
		return catalog.Float, nil
	case "BOOLEAN":
		p.advance()
		return catalog.Boolean, nil
	case "VARCHAR":
		p.advance()
		return catalog.Varchar, nil
	default:
		return 0, rafterrors.NewParseError("unknown column type %q", t.Text)
	}
}
