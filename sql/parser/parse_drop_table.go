package parser

import "raftsql/sql/ast"

func (p *parser) parseDropTable() (ast.Statement, error) {
	if err := p.expectKeyword("DROP"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	return &ast.DropTable{Table: name}, nil
}
