package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/core/invariant"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// The expression engine: precedence climbing from the loosest band down to
// primaries. Each level parses one tighter sub-expression, then folds
// same-level operators left-associatively; assignment and power fold right.

// parseExpression is the expression entry point at the loosest band.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseLambda()
	if err != nil {
		return nil, err
	}

	op, ok := assignOpFor(p.current().Type)
	if !ok {
		return left, nil
	}
	if !isAssignable(left) {
		return nil, p.NewInvalidError("invalid assignment target: " + left.String())
	}

	tok := p.advance()
	right, err := p.parseAssignment() // right-associative
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Op: op, Target: left, Value: right, Pos: tok.Position}, nil
}

// isAssignable reports whether an expression may sit on the left of an
// assignment operator.
func isAssignable(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}

// parseLambda recognizes the two lambda spellings: bare `x => e` and
// parenthesized `(a, b) => e`. Lambda recognition is suppressed inside
// when-clause heads so a pattern's right-hand side is never misread as a
// parameter list.
func (p *Parser) parseLambda() (ast.Expression, error) {
	if p.noLambda {
		return p.parseConditional()
	}

	if p.check(lexer.IDENTIFIER) && p.peek().Type == lexer.FAT_ARROW {
		nameTok := p.advance()
		p.advance() // =>
		body, err := p.parseLambda()
		if err != nil {
			return nil, err
		}
		return &ast.LambdaExpr{
			Params: []ast.Param{{Name: nameTok.Text, Pos: nameTok.Position}},
			Body:   body,
			Pos:    nameTok.Position,
		}, nil
	}

	if p.check(lexer.LPAREN) {
		mark := p.mark()
		debt := p.gtDebt
		params, ok := p.tryLambdaParams()
		if ok && p.check(lexer.FAT_ARROW) {
			pos := p.advance().Position // =>
			body, err := p.parseLambda()
			if err != nil {
				return nil, err
			}
			return &ast.LambdaExpr{Params: params, Body: body, Pos: pos}, nil
		}
		p.resetTo(mark)
		p.gtDebt = debt
	}

	return p.parseConditional()
}

// tryLambdaParams speculatively parses a parenthesized parameter list.
// Only the cursor moves; on failure the caller rolls it back.
func (p *Parser) tryLambdaParams() ([]ast.Param, bool) {
	p.advance() // (
	var params []ast.Param

	if p.match(lexer.RPAREN) {
		return params, true
	}
	for {
		if !p.check(lexer.IDENTIFIER) {
			return nil, false
		}
		nameTok := p.advance()
		param := ast.Param{Name: nameTok.Text, Pos: nameTok.Position}
		if p.match(lexer.COLON) {
			typ, err := p.parseTypeRef()
			if err != nil {
				return nil, false
			}
			param.Type = &typ
		}
		params = append(params, param)
		if p.match(lexer.COMMA) {
			continue
		}
		break
	}
	if !p.match(lexer.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseConditional handles the postfix if-expression: `value if cond else
// other` and its unless negation.
func (p *Parser) parseConditional() (ast.Expression, error) {
	expr, err := p.parseNoneCoalesce()
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.IF) && !p.check(lexer.UNLESS) {
		return expr, nil
	}
	negate := p.check(lexer.UNLESS)
	tok := p.advance()

	cond, err := p.parseNoneCoalesce()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ELSE, "conditional expression"); err != nil {
		return nil, err
	}
	alt, err := p.parseConditional()
	if err != nil {
		return nil, err
	}

	if negate {
		cond = &ast.UnaryExpr{Op: ast.OpNot, Operand: cond, Pos: tok.Position}
	}
	return &ast.ConditionalExpr{Cond: cond, Then: expr, Else: alt, Pos: tok.Position}, nil
}

func (p *Parser) parseNoneCoalesce() (ast.Expression, error) {
	left, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.COALESCE) {
		tok := p.advance()
		right, err := p.parseRange()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpNoneCoalesce, Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

// parseRange desugars `a to b` and `a to b by step` into a call to the
// well-known range operation. This is a parse-time rewrite, not a node
// kind of its own.
func (p *Parser) parseRange() (ast.Expression, error) {
	start, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TO) {
		return start, nil
	}
	tok := p.advance()

	end, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	args := []ast.Expression{start, end}

	if p.match(lexer.BY) {
		step, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		args = append(args, step)
	}
	return &ast.CallExpr{
		Callee: &ast.Identifier{Name: "range", Pos: tok.Position},
		Args:   args,
		Pos:    tok.Position,
	}, nil
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.OR_OR, lexer.OR_KW) {
		tok := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpOr, Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.AND_AND, lexer.AND_KW) {
		tok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpAnd, Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

// parseComparison folds the comparison band. Chainable operators are
// collected into a single chain before folding; != and <=> never chain
// and fold left-associatively like any other band.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseBitwiseOr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case isChainableComparison(p.current().Type):
			left, err = p.collectComparisonChain(left)
			if err != nil {
				return nil, err
			}
		case p.checkAny(lexer.NOT_EQ, lexer.SPACESHIP):
			tok := p.advance()
			right, err := p.parseBitwiseOr()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{Op: binaryOpFor(tok.Type), Left: left, Right: right, Pos: tok.Position}
		default:
			return left, nil
		}
	}
}

// collectComparisonChain gathers every consecutive chainable comparison
// into operand/operator lists. One operator collapses to a plain binary
// node; two or more must agree on direction (== is neutral) or the chain
// is rejected outright.
func (p *Parser) collectComparisonChain(first ast.Expression) (ast.Expression, error) {
	operands := []ast.Expression{first}
	var ops []ast.BinaryOp
	var tokens []lexer.Token

	for isChainableComparison(p.current().Type) {
		tok := p.advance()
		operand, err := p.parseBitwiseOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, binaryOpFor(tok.Type))
		tokens = append(tokens, tok)
		operands = append(operands, operand)
	}

	if len(ops) == 1 {
		return &ast.BinaryExpr{
			Op: ops[0], Left: operands[0], Right: operands[1], Pos: tokens[0].Position,
		}, nil
	}

	direction := 0
	for i, tok := range tokens {
		d := chainDirection(tok.Type)
		if d == 0 {
			continue
		}
		if direction == 0 {
			direction = d
			continue
		}
		if d != direction {
			return nil, ParseError{
				Type:    ErrorInvalid,
				Message: "comparison chain mixes directions: '" + tokens[i].Text + "' after '" + tokens[i-1].Text + "'",
				Token:   tokens[i],
				Input:   p.input,
			}
		}
	}

	return &ast.ChainedComparison{Operands: operands, Ops: ops, Pos: tokens[0].Position}, nil
}

func (p *Parser) parseBitwiseOr() (ast.Expression, error) {
	return p.parseBinaryLevel(ast.OpBitOr, p.parseBitwiseXor, lexer.PIPE)
}

func (p *Parser) parseBitwiseXor() (ast.Expression, error) {
	return p.parseBinaryLevel(ast.OpBitXor, p.parseBitwiseAnd, lexer.CARET)
}

func (p *Parser) parseBitwiseAnd() (ast.Expression, error) {
	return p.parseBinaryLevel(ast.OpBitAnd, p.parseShift, lexer.AMP)
}

// parseBinaryLevel is the left-associative fold shared by the
// single-operator bitwise bands.
func (p *Parser) parseBinaryLevel(op ast.BinaryOp, next func() (ast.Expression, error), typ lexer.TokenType) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.check(typ) {
		tok := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

func (p *Parser) parseShift() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.checkAny(lexer.SHL, lexer.SHR) {
		tok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: binaryOpFor(tok.Type), Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.checkAny(
		lexer.PLUS, lexer.MINUS,
		lexer.PLUS_WRAP, lexer.MINUS_WRAP,
		lexer.PLUS_SAT, lexer.MINUS_SAT,
		lexer.PLUS_CHECKED, lexer.MINUS_CHECKED,
	) {
		tok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: binaryOpFor(tok.Type), Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.checkAny(
		lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.STAR_WRAP, lexer.SLASH_WRAP,
		lexer.STAR_SAT, lexer.SLASH_SAT,
		lexer.STAR_CHECKED, lexer.SLASH_CHECKED,
	) {
		tok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: binaryOpFor(tok.Type), Left: left, Right: right, Pos: tok.Position}
	}
	return left, nil
}

// parseUnary binds prefix operators right-to-left by direct recursion.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := unaryOpFor(p.current().Type); ok {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand, Pos: tok.Position}, nil
	}
	return p.parsePower()
}

// parsePower folds exponentiation right-associatively: the right operand
// re-enters the unary level, which descends back here.
func (p *Parser) parsePower() (ast.Expression, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.checkAny(lexer.POWER, lexer.POWER_WRAP, lexer.POWER_SAT) {
		return base, nil
	}
	tok := p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: binaryOpFor(tok.Type), Left: base, Right: exp, Pos: tok.Position}, nil
}

// parsePostfix applies suffix forms in priority order: generic
// call/struct-literal, struct literal, failable call, call, index, member
// access. Member access re-applies the generic heuristic for generic
// method calls.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Type {
		case lexer.LT:
			if !nameShaped(expr) {
				return expr, nil
			}
			generic, ok, err := p.tryGenericSuffix(expr)
			if err != nil {
				return nil, err
			}
			if !ok {
				// Weak signal: leave the '<' for the comparison band.
				return expr, nil
			}
			expr = generic

		case lexer.LBRACE:
			lit, ok, err := p.tryStructLiteral(expr, nil)
			if err != nil {
				return nil, err
			}
			if !ok {
				return expr, nil
			}
			expr = lit

		case lexer.BANG:
			if p.peek().Type != lexer.LPAREN {
				return expr, nil
			}
			p.advance() // !
			expr, err = p.parseCall(expr, nil, true)
			if err != nil {
				return nil, err
			}

		case lexer.LPAREN:
			expr, err = p.parseCall(expr, nil, false)
			if err != nil {
				return nil, err
			}

		case lexer.LBRACKET:
			p.advance()
			index, err := p.parseExpressionInGroup()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RBRACKET, "index expression"); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Receiver: expr, Index: index, Pos: expr.Loc()}

		case lexer.DOT, lexer.QUESTION_DOT:
			safe := p.check(lexer.QUESTION_DOT)
			tok := p.advance()
			name, err := p.memberName()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Receiver: expr, Member: name, Safe: safe, Pos: tok.Position}

		default:
			return expr, nil
		}
	}
}

// nameShaped reports whether an expression can head a generic-argument
// list: a bare name or a member path ending in one.
func nameShaped(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpr:
		return true
	default:
		return false
	}
}

// memberName accepts identifiers and contextual keywords as member names.
func (p *Parser) memberName() (string, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.IDENTIFIER, lexer.TYPE_IDENTIFIER:
		p.advance()
		return tok.Text, nil
	}
	// Keywords like set, module, to are legal member names.
	if _, isKeyword := lexer.Keywords[tok.Text]; isKeyword {
		p.advance()
		return tok.Text, nil
	}
	return "", p.NewUnexpectedTokenError("member name", tok)
}

// tryGenericSuffix is the generic-vs-comparison heuristic. The cursor is
// saved, '<' is tentatively consumed, and the parse commits only when the
// following token is type-shaped AND the closed argument list is actually
// used by a call, a struct literal, or a member access. Anything weaker
// rolls the cursor back so the comparison band sees the '<' untouched.
// Speculation moves the cursor only; no parser set or stack is touched
// until commit.
func (p *Parser) tryGenericSuffix(callee ast.Expression) (ast.Expression, bool, error) {
	mark := p.mark()
	debt := p.gtDebt
	p.advance() // <

	if !p.looksLikeType(p.current()) {
		p.resetTo(mark)
		p.gtDebt = debt
		return nil, false, nil
	}

	typeArgs, err := p.parseTypeArgList()
	if err != nil {
		p.resetTo(mark)
		p.gtDebt = debt
		return nil, false, nil
	}

	switch p.current().Type {
	case lexer.LPAREN:
		call, err := p.parseCall(callee, typeArgs, false)
		return call, err == nil, err
	case lexer.BANG:
		if p.peek().Type == lexer.LPAREN {
			p.advance() // !
			call, err := p.parseCall(callee, typeArgs, true)
			return call, err == nil, err
		}
	case lexer.LBRACE:
		lit, ok, err := p.tryStructLiteral(callee, typeArgs)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return lit, true, nil
		}
	case lexer.DOT:
		// Member access on the instantiated type, e.g. List<Int>.empty().
		// The postfix loop picks up the '.' on the returned node.
		return &ast.GenericTypeExpr{Base: callee, TypeArgs: typeArgs, Pos: callee.Loc()}, true, nil
	}

	p.resetTo(mark)
	p.gtDebt = debt
	return nil, false, nil
}

// looksLikeType reports a type-shaped signal after '<': a primitive type
// token, a capitalized identifier, a generic parameter of an enclosing
// declaration, or a previously declared type name.
func (p *Parser) looksLikeType(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TYPE_IDENTIFIER:
		return true
	case lexer.IDENTIFIER:
		if startsUpper(tok.Text) {
			return true
		}
		return p.inGenericScope(tok.Text) || p.isKnownType(tok.Text) || p.isNamespace(tok.Text)
	default:
		return false
	}
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// parseTypeArgList parses the comma-separated type terms after an opening
// '<', consuming the closing '>'.
func (p *Parser) parseTypeArgList() ([]ast.TypeRef, error) {
	p.typeListDepth++
	defer func() { p.typeListDepth-- }()

	var args []ast.TypeRef
	for {
		ref, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		args = append(args, ref)
		if p.match(lexer.COMMA) {
			continue
		}
		break
	}
	if err := p.consumeTypeListEnd(); err != nil {
		return nil, err
	}
	return args, nil
}

// consumeTypeListEnd accepts '>' where it may arrive fused as '>>' from
// nested generic arguments. A fused token is consumed once and the second
// half recorded as debt for the enclosing list; at the outermost list there
// is no enclosing list to claim the debt, so a fused token there is a
// stray '>' and fails.
func (p *Parser) consumeTypeListEnd() error {
	if p.gtDebt > 0 {
		p.gtDebt--
		invariant.Invariant(p.gtDebt >= 0, "fused '>>' debt must not go negative")
		return nil
	}
	if p.match(lexer.GT) {
		return nil
	}
	if p.check(lexer.SHR) && p.typeListDepth >= 2 {
		p.advance()
		p.gtDebt++
		return nil
	}
	return p.NewUnexpectedTokenError(">", p.current())
}

// parseTypeRef parses one type term: a name with optional nested generic
// arguments.
func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	tok := p.current()
	if tok.Type != lexer.IDENTIFIER && tok.Type != lexer.TYPE_IDENTIFIER {
		return ast.TypeRef{}, p.NewUnexpectedTokenError("type name", tok)
	}
	p.advance()
	ref := ast.TypeRef{Name: tok.Text, Pos: tok.Position}

	// Dotted type paths: module.Type
	for p.check(lexer.DOT) && (p.peek().Type == lexer.IDENTIFIER || p.peek().Type == lexer.TYPE_IDENTIFIER) {
		p.advance()
		part := p.advance()
		ref.Name = ref.Name + "." + part.Text
	}

	if p.match(lexer.LT) {
		args, err := p.parseTypeArgList()
		if err != nil {
			return ast.TypeRef{}, err
		}
		ref.Args = args
	}
	return ref, nil
}

// parseCall parses an argument list; the opening parenthesis is current.
func (p *Parser) parseCall(callee ast.Expression, typeArgs []ast.TypeRef, failable bool) (ast.Expression, error) {
	open, err := p.consume(lexer.LPAREN, "call arguments")
	if err != nil {
		return nil, err
	}

	var args []ast.Expression
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.parseExpressionInGroup()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.match(lexer.COMMA) {
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RPAREN, "call arguments"); err != nil {
		return nil, err
	}

	return &ast.CallExpr{
		Callee:   callee,
		TypeArgs: typeArgs,
		Args:     args,
		Failable: failable,
		Pos:      open.Position,
	}, nil
}

// tryStructLiteral parses `Name { field: value, ... }` when the callee is
// a capitalized bare name. Struct literals are suppressed in contexts
// where a '{' opens a block instead.
func (p *Parser) tryStructLiteral(callee ast.Expression, typeArgs []ast.TypeRef) (ast.Expression, bool, error) {
	if p.noStruct {
		return nil, false, nil
	}
	ident, ok := callee.(*ast.Identifier)
	if !ok || !startsUpper(ident.Name) {
		return nil, false, nil
	}

	open := p.advance() // {
	var fields []ast.FieldInit
	p.skipLayout()
	for !p.check(lexer.RBRACE) {
		nameTok, err := p.consume(lexer.IDENTIFIER, "struct literal field")
		if err != nil {
			return nil, false, err
		}
		if _, err := p.consume(lexer.COLON, "struct literal field"); err != nil {
			return nil, false, err
		}
		value, err := p.parseExpressionInGroup()
		if err != nil {
			return nil, false, err
		}
		fields = append(fields, ast.FieldInit{Name: nameTok.Text, Value: value, Pos: nameTok.Position})
		p.skipLayout()
		if p.match(lexer.COMMA) {
			p.skipLayout()
			continue
		}
		break
	}
	if _, err := p.consume(lexer.RBRACE, "struct literal"); err != nil {
		return nil, false, err
	}

	return &ast.StructLiteral{
		TypeName: ident.Name,
		TypeArgs: typeArgs,
		Fields:   fields,
		Pos:      open.Position,
	}, true, nil
}

// parseExpressionInGroup parses a sub-expression inside explicit
// delimiters, where the lambda and struct-literal suppressions of the
// enclosing context do not apply.
func (p *Parser) parseExpressionInGroup() (ast.Expression, error) {
	savedLambda, savedStruct := p.noLambda, p.noStruct
	p.noLambda, p.noStruct = false, false
	expr, err := p.parseExpression()
	p.noLambda, p.noStruct = savedLambda, savedStruct
	return expr, err
}

// parsePrimary parses the tightest band: literals, names, grouping, and
// the keyword-introduced expression forms.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.INTEGER:
		return p.parseIntegerLiteral(p.advance())
	case lexer.FLOAT:
		return p.parseFloatLiteral(p.advance())
	case lexer.MEMORY:
		return p.parseUnitLiteral(p.advance(), ast.UnitMemory)
	case lexer.DURATION:
		return p.parseUnitLiteral(p.advance(), ast.UnitDuration)
	case lexer.STRING, lexer.FSTRING, lexer.RAW_STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Text, Kind: stringKindFor(tok.Type), Pos: tok.Position}, nil
	case lexer.CHAR:
		return p.parseCharLiteral(p.advance())
	case lexer.BOOLEAN:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Text == "true", Pos: tok.Position}, nil
	case lexer.NONE:
		p.advance()
		return &ast.NoneLiteral{Pos: tok.Position}, nil
	case lexer.IDENTIFIER, lexer.TYPE_IDENTIFIER:
		p.advance()
		return &ast.Identifier{Name: tok.Text, Pos: tok.Position}, nil
	case lexer.SELF:
		p.advance()
		return &ast.Identifier{Name: "self", Pos: tok.Position}, nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpressionInGroup()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RPAREN, "parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LBRACKET:
		return p.parseListLiteral()
	case lexer.LBRACE:
		return p.parseSetOrMapLiteral()
	case lexer.AT:
		return p.parseAtCall()
	case lexer.IF, lexer.UNLESS:
		return p.parseIfExpression()
	}

	return nil, p.NewUnexpectedTokenError("expression", tok)
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	open := p.advance() // [
	var elements []ast.Expression
	p.skipNewlines()
	if !p.check(lexer.RBRACKET) {
		for {
			el, err := p.parseExpressionInGroup()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			p.skipNewlines()
			if p.match(lexer.COMMA) {
				p.skipNewlines()
				if p.check(lexer.RBRACKET) {
					break
				}
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RBRACKET, "list literal"); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Elements: elements, Pos: open.Position}, nil
}

// parseSetOrMapLiteral disambiguates `{a, b}` from `{k: v}` by the token
// after the first element. An empty `{}` is an empty map.
func (p *Parser) parseSetOrMapLiteral() (ast.Expression, error) {
	open := p.advance() // {
	p.skipLayout()
	if p.match(lexer.RBRACE) {
		return &ast.MapLiteral{Pos: open.Position}, nil
	}

	first, err := p.parseExpressionInGroup()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.COLON) {
		value, err := p.parseExpressionInGroup()
		if err != nil {
			return nil, err
		}
		entries := []ast.MapEntry{{Key: first, Value: value}}
		p.skipLayout()
		for p.match(lexer.COMMA) {
			p.skipLayout()
			if p.check(lexer.RBRACE) {
				break
			}
			key, err := p.parseExpressionInGroup()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.COLON, "map literal"); err != nil {
				return nil, err
			}
			val, err := p.parseExpressionInGroup()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.MapEntry{Key: key, Value: val})
			p.skipLayout()
		}
		if _, err := p.consume(lexer.RBRACE, "map literal"); err != nil {
			return nil, err
		}
		return &ast.MapLiteral{Entries: entries, Pos: open.Position}, nil
	}

	elements := []ast.Expression{first}
	p.skipLayout()
	for p.match(lexer.COMMA) {
		p.skipLayout()
		if p.check(lexer.RBRACE) {
			break
		}
		el, err := p.parseExpressionInGroup()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		p.skipLayout()
	}
	if _, err := p.consume(lexer.RBRACE, "set literal"); err != nil {
		return nil, err
	}
	return &ast.SetLiteral{Elements: elements, Pos: open.Position}, nil
}

// parseAtCall parses the @intrinsic.op<T>(args) and @native.fn(args)
// forms. After @intrinsic.op a '<' is always a generic open; the
// comparison heuristic does not apply here.
func (p *Parser) parseAtCall() (ast.Expression, error) {
	at := p.advance() // @
	head, err := p.consume(lexer.IDENTIFIER, "@ call")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.DOT, "@ call"); err != nil {
		return nil, err
	}
	name, err := p.memberName()
	if err != nil {
		return nil, err
	}

	switch head.Text {
	case "intrinsic":
		var typeArgs []ast.TypeRef
		if p.match(lexer.LT) {
			typeArgs, err = p.parseTypeArgList()
			if err != nil {
				return nil, err
			}
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.IntrinsicCall{Op: name, TypeArgs: typeArgs, Args: args, Pos: at.Position}, nil
	case "native":
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.NativeCall{Name: name, Args: args, Pos: at.Position}, nil
	}
	return nil, p.errorWithSuggestion("'intrinsic' or 'native'", head,
		"", "@intrinsic.size_of<Int>() or @native.malloc(n)")
}

// parseArgList parses a parenthesized expression list.
func (p *Parser) parseArgList() ([]ast.Expression, error) {
	if _, err := p.consume(lexer.LPAREN, "argument list"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.parseExpressionInGroup()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.match(lexer.COMMA) {
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RPAREN, "argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseIfExpression parses the prefix if-expression in both spellings:
// `if cond then a else b` and `if cond { a } else { b }`.
func (p *Parser) parseIfExpression() (ast.Expression, error) {
	negate := p.check(lexer.UNLESS)
	tok := p.advance()

	savedStruct := p.noStruct
	p.noStruct = true
	cond, err := p.parseNoneCoalesce()
	p.noStruct = savedStruct
	if err != nil {
		return nil, err
	}
	if negate {
		cond = &ast.UnaryExpr{Op: ast.OpNot, Operand: cond, Pos: tok.Position}
	}

	if p.match(lexer.THEN) {
		thenExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.ELSE, "if expression"); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpr{Cond: cond, Then: thenExpr, Else: elseExpr, Pos: tok.Position}, nil
	}

	if _, err := p.consume(lexer.LBRACE, "if expression"); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpressionInGroup()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RBRACE, "if expression"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ELSE, "if expression"); err != nil {
		return nil, err
	}

	var elseExpr ast.Expression
	if p.checkAny(lexer.IF, lexer.UNLESS) {
		elseExpr, err = p.parseIfExpression()
	} else {
		if _, err := p.consume(lexer.LBRACE, "if expression"); err != nil {
			return nil, err
		}
		elseExpr, err = p.parseExpressionInGroup()
		if err != nil {
			return nil, err
		}
		_, err2 := p.consume(lexer.RBRACE, "if expression")
		if err2 != nil {
			return nil, err2
		}
	}
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpr{Cond: cond, Then: thenExpr, Else: elseExpr, Pos: tok.Position}, nil
}
