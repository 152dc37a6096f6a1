package parser

import (
	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/core/diag"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// Statement parsing. Every statement ends at a NEWLINE; a stray semicolon
// before it is the style warning WarnStraySemicolon and parsing proceeds
// unchanged.

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Type {
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.THROW:
		return p.parseThrow()
	case lexer.ABSENT:
		tok := p.advance()
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &ast.AbsentStmt{Pos: tok.Position}, nil
	case lexer.BREAK:
		tok := p.advance()
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Pos: tok.Position}, nil
	case lexer.CONTINUE:
		tok := p.advance()
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Pos: tok.Position}, nil
	case lexer.IF, lexer.UNLESS:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHEN:
		return p.parseWhen()
	case lexer.VAR, lexer.LET, lexer.PRESET:
		return p.parseVarDecl(ast.VisUnspecified)
	case lexer.DEDENT:
		return nil, p.NewIndentationError("unexpected dedent - no matching indent")
	}

	tok := p.current()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr, Pos: tok.Position}, nil
}

// endOfStatement consumes the statement terminator. Semicolons are
// tolerated with a warning; DEDENT and EOF terminate without being
// consumed so the block engine sees them.
func (p *Parser) endOfStatement() error {
	for p.check(lexer.SEMICOLON) {
		tok := p.advance()
		p.sink.Warn(diag.Warning{
			Message: "unnecessary semicolon: the newline already ends the statement",
			Line:    tok.Position.Line,
			Column:  tok.Position.Column,
			Code:    diag.WarnStraySemicolon,
		})
	}
	if p.match(lexer.NEWLINE) {
		return nil
	}
	if p.check(lexer.DEDENT) || p.atEOF() {
		return nil
	}
	return p.NewUnexpectedTokenError("end of statement", p.current())
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.advance()
	stmt := &ast.ReturnStmt{Pos: tok.Position}

	if !p.checkAny(lexer.NEWLINE, lexer.DEDENT, lexer.SEMICOLON, lexer.EOF) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseThrow() (ast.Statement, error) {
	tok := p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return &ast.ThrowStmt{Value: value, Pos: tok.Position}, nil
}

func (p *Parser) parseIfStatement() (ast.Statement, error) {
	negate := p.check(lexer.UNLESS)
	tok := p.advance()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock("if body")
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Cond: cond, Negate: negate, Then: then, Pos: tok.Position}
	if p.match(lexer.ELSE) {
		if p.checkAny(lexer.IF, lexer.UNLESS) {
			elseStmt, err := p.parseIfStatement()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseStmt
		} else {
			elseBlock, err := p.parseBlock("else body")
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}
	return stmt, nil
}

// parseCondition parses a control-flow head expression with struct
// literals suppressed, so `while x { ... }` never misreads the block
// opener as a literal.
func (p *Parser) parseCondition() (ast.Expression, error) {
	saved := p.noStruct
	p.noStruct = true
	cond, err := p.parseExpression()
	p.noStruct = saved
	return cond, err
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock("while body")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Pos: tok.Position}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	tok := p.advance()
	nameTok, err := p.consume(lexer.IDENTIFIER, "for loop")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.IN, "for loop"); err != nil {
		return nil, err
	}
	iterable, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock("for body")
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Var: nameTok.Text, Iterable: iterable, Body: body, Pos: tok.Position}, nil
}

// parseWhen parses the pattern-match statement. Lambda recognition is
// suppressed inside clause heads so `is x => y` style patterns are never
// misread as parameter lists.
func (p *Parser) parseWhen() (ast.Statement, error) {
	tok := p.advance()
	subject, err := p.parseCondition()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.COLON, "when statement"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.NEWLINE, "when statement"); err != nil {
		return nil, err
	}
	if err := p.expectIndent("when statement"); err != nil {
		return nil, err
	}

	stmt := &ast.WhenStmt{Subject: subject, Pos: tok.Position}
	p.skipNewlines()
	for p.check(lexer.IS) {
		isTok := p.advance()

		savedLambda := p.noLambda
		p.noLambda = true
		pattern, err := p.parseExpression()
		p.noLambda = savedLambda
		if err != nil {
			return nil, err
		}

		body, err := p.parseBlock("when clause")
		if err != nil {
			return nil, err
		}
		stmt.Clauses = append(stmt.Clauses, ast.WhenClause{Pattern: pattern, Body: body, Pos: isTok.Position})
		p.skipNewlines()
	}

	if len(stmt.Clauses) == 0 {
		return nil, p.NewMissingTokenError("at least one 'is' clause in when statement")
	}

	if p.match(lexer.ELSE) {
		elseBlock, err := p.parseBlock("when else")
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
		p.skipNewlines()
	}

	if err := p.expectDedent("when statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseBlock parses the fixed colon-introduced body shape: ':' NEWLINE
// INDENT statements DEDENT. RazorForge tolerates a redundant brace pair
// around the body; Cake reports closing braces as WarnUnnecessaryBrace and
// continues.
func (p *Parser) parseBlock(context string) (*ast.Block, error) {
	colon, err := p.consume(lexer.COLON, context)
	if err != nil {
		return nil, err
	}
	p.consumeOptionalOpenBrace()

	if _, err := p.consume(lexer.NEWLINE, context); err != nil {
		return nil, err
	}
	if err := p.expectIndent(context); err != nil {
		return nil, err
	}

	block := &ast.Block{Pos: colon.Position}
	p.skipNewlines()
	for !p.checkAny(lexer.DEDENT, lexer.EOF) {
		if p.consumeStrayCloseBrace() {
			p.skipNewlines()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipNewlines()
	}

	if err := p.expectDedent(context); err != nil {
		return nil, err
	}
	if p.consumeStrayCloseBrace() {
		p.skipNewlines()
	}
	return block, nil
}

// consumeOptionalOpenBrace eats a redundant '{' after the block colon.
// RazorForge tolerates it silently; Cake warns.
func (p *Parser) consumeOptionalOpenBrace() {
	if !p.check(lexer.LBRACE) {
		return
	}
	tok := p.advance()
	if !p.dialect().allowsBraces() {
		p.sink.Warn(diag.Warning{
			Message: "unnecessary brace: indentation already delimits the block",
			Line:    tok.Position.Line,
			Column:  tok.Position.Column,
			Code:    diag.WarnUnnecessaryBrace,
		})
	}
}

// consumeStrayCloseBrace eats a '}' where indentation terminates the
// block, reporting it in the Cake dialect.
func (p *Parser) consumeStrayCloseBrace() bool {
	if !p.check(lexer.RBRACE) {
		return false
	}
	tok := p.advance()
	if !p.dialect().allowsBraces() {
		p.sink.Warn(diag.Warning{
			Message: "unnecessary closing brace: indentation already ends the block",
			Line:    tok.Position.Line,
			Column:  tok.Position.Column,
			Code:    diag.WarnUnnecessaryBrace,
		})
	}
	p.match(lexer.NEWLINE)
	return true
}
