package parser

import (
	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/core/diag"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// declarationStarters is the keyword set that may begin a top-level
// declaration, used for error suggestions.
var declarationStarters = []string{
	"routine", "entity", "record", "choice", "variant", "protocol",
	"import", "var", "let", "preset", "public", "private",
}

func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	if p.check(lexer.DEDENT) {
		return nil, p.NewIndentationError("unexpected dedent - no matching indent")
	}

	vis, err := p.parseVisibility()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lexer.ROUTINE:
		return p.parseRoutine(vis, true)
	case lexer.ENTITY:
		return p.parseTypeDecl(ast.DeclEntity, vis)
	case lexer.RECORD:
		return p.parseTypeDecl(ast.DeclRecord, vis)
	case lexer.PROTOCOL:
		return p.parseTypeDecl(ast.DeclProtocol, vis)
	case lexer.CHOICE, lexer.VARIANT:
		return p.parseChoice(vis)
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.VAR, lexer.LET, lexer.PRESET:
		return p.parseVarDecl(vis)
	}

	tok := p.current()
	suggestion := ""
	if tok.Type == lexer.IDENTIFIER {
		suggestion = diag.Suggest(tok.Text, declarationStarters)
	}
	return nil, p.errorWithSuggestion("declaration", tok, suggestion,
		"routine name(param: Type) -> Type:")
}

// parseVisibility parses an optional visibility modifier. The scoped
// spellings are dialect-specific: public(set) belongs to RazorForge,
// public(family) and public(module) to Cake. The zero value
// VisUnspecified resolves to the dialect default downstream.
func (p *Parser) parseVisibility() (ast.Visibility, error) {
	switch p.current().Type {
	case lexer.PRIVATE:
		p.advance()
		return ast.VisPrivate, nil
	case lexer.PUBLIC:
		p.advance()
		if !p.check(lexer.LPAREN) {
			return ast.VisPublic, nil
		}
		p.advance()
		scope := p.current()
		switch scope.Type {
		case lexer.FAMILY:
			if !p.dialect().allowsScopedVisibility() {
				return 0, p.NewInvalidError("public(family) is a Cake visibility")
			}
			p.advance()
			if _, err := p.consume(lexer.RPAREN, "visibility modifier"); err != nil {
				return 0, err
			}
			return ast.VisFamily, nil
		case lexer.MODULE_KW:
			if !p.dialect().allowsScopedVisibility() {
				return 0, p.NewInvalidError("public(module) is a Cake visibility")
			}
			p.advance()
			if _, err := p.consume(lexer.RPAREN, "visibility modifier"); err != nil {
				return 0, err
			}
			return ast.VisModule, nil
		}
		return 0, p.NewUnexpectedTokenError("visibility scope", scope)
	}
	return ast.VisUnspecified, nil
}

// parseRoutine parses a routine declaration. With requireBody false
// (protocol members) a bare signature ending at NEWLINE is accepted.
func (p *Parser) parseRoutine(vis ast.Visibility, requireBody bool) (ast.Declaration, error) {
	tok, err := p.consume(lexer.ROUTINE, "routine declaration")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.consume(lexer.IDENTIFIER, "routine declaration")
	if err != nil {
		return nil, err
	}

	typeParams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	p.pushGenericScope(typeParams)
	defer p.popGenericScope()

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	decl := &ast.RoutineDecl{
		Name:       nameTok.Text,
		TypeParams: typeParams,
		Params:     params,
		Visibility: p.resolveVisibility(vis),
		Pos:        tok.Position,
	}

	if p.match(lexer.ARROW) {
		ret, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		decl.ReturnType = &ret
	}

	if p.check(lexer.COLON) {
		body, err := p.parseBlock("routine body")
		if err != nil {
			return nil, err
		}
		decl.Body = body
		return decl, nil
	}

	if requireBody {
		return nil, p.NewMissingTokenError("':' to open the routine body")
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseTypeParams parses an optional `<T, U>` list of generic parameter
// names. Inside a declaration head the '<' is always a generic open; the
// comparison heuristic does not apply.
func (p *Parser) parseTypeParams() ([]string, error) {
	if !p.match(lexer.LT) {
		return nil, nil
	}
	var names []string
	for {
		tok := p.current()
		if tok.Type != lexer.IDENTIFIER && tok.Type != lexer.TYPE_IDENTIFIER {
			return nil, p.NewUnexpectedTokenError("generic parameter name", tok)
		}
		p.advance()
		names = append(names, tok.Text)
		if p.match(lexer.COMMA) {
			continue
		}
		break
	}
	if _, err := p.consume(lexer.GT, "generic parameter list"); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.consume(lexer.LPAREN, "parameter list"); err != nil {
		return nil, err
	}
	var params []ast.Param
	if !p.check(lexer.RPAREN) {
		for {
			nameTok := p.current()
			if nameTok.Type != lexer.IDENTIFIER && nameTok.Type != lexer.SELF {
				return nil, p.NewUnexpectedTokenError("parameter name", nameTok)
			}
			p.advance()
			param := ast.Param{Name: nameTok.Text, Pos: nameTok.Position}
			if p.match(lexer.COLON) {
				typ, err := p.parseTypeRef()
				if err != nil {
					return nil, err
				}
				param.Type = &typ
			}
			params = append(params, param)
			if p.match(lexer.COMMA) {
				continue
			}
			break
		}
	}
	if _, err := p.consume(lexer.RPAREN, "parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseTypeDecl parses entity, record and protocol declarations. These
// may have empty bodies: a NEWLINE with no INDENT after the colon is a
// legal memberless type.
func (p *Parser) parseTypeDecl(kind ast.TypeDeclKind, vis ast.Visibility) (ast.Declaration, error) {
	tok := p.advance() // entity/record/protocol
	nameTok := p.current()
	if nameTok.Type != lexer.IDENTIFIER && nameTok.Type != lexer.TYPE_IDENTIFIER {
		return nil, p.NewUnexpectedTokenError("type name", nameTok)
	}
	p.advance()
	p.registerTypeName(nameTok.Text)

	typeParams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	p.pushGenericScope(typeParams)
	defer p.popGenericScope()

	decl := &ast.TypeDecl{
		Kind:       kind,
		Name:       nameTok.Text,
		TypeParams: typeParams,
		Visibility: p.resolveVisibility(vis),
		Pos:        tok.Position,
	}

	if _, err := p.consume(lexer.COLON, kind.String()+" declaration"); err != nil {
		return nil, err
	}
	p.consumeOptionalOpenBrace()
	if _, err := p.consume(lexer.NEWLINE, kind.String()+" declaration"); err != nil {
		return nil, err
	}

	// Empty body: no INDENT follows the NEWLINE.
	if !p.check(lexer.INDENT) {
		return decl, nil
	}
	if err := p.expectIndent(kind.String() + " body"); err != nil {
		return nil, err
	}

	p.skipNewlines()
	for !p.checkAny(lexer.DEDENT, lexer.EOF) {
		if p.consumeStrayCloseBrace() {
			p.skipNewlines()
			continue
		}
		member, err := p.parseMember(kind)
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
		p.skipNewlines()
	}

	if err := p.expectDedent(kind.String() + " body"); err != nil {
		return nil, err
	}
	if p.consumeStrayCloseBrace() {
		p.skipNewlines()
	}
	return decl, nil
}

// parseMember parses one declaration inside a type body. Protocols hold
// only routine signatures; entities and records hold fields, bindings and
// routines.
func (p *Parser) parseMember(kind ast.TypeDeclKind) (ast.Declaration, error) {
	if kind == ast.DeclProtocol {
		return p.parseRoutine(ast.VisPublic, false)
	}

	getVis, setVis, err := p.parseMemberVisibility()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case lexer.ROUTINE:
		return p.parseRoutine(getVis, true)
	case lexer.VAR, lexer.LET, lexer.PRESET:
		return p.parseVarDecl(getVis)
	case lexer.IDENTIFIER:
		return p.parseField(getVis, setVis)
	}
	return nil, p.NewUnexpectedTokenError("member declaration", p.current())
}

// parseMemberVisibility handles field-level modifiers including the
// RazorForge accessor split: `public(set) name: Type` gives the setter
// public visibility while the getter keeps the written one.
func (p *Parser) parseMemberVisibility() (get, set ast.Visibility, err error) {
	switch p.current().Type {
	case lexer.PRIVATE:
		p.advance()
		return ast.VisPrivate, ast.VisUnspecified, nil
	case lexer.PUBLIC:
		p.advance()
		if !p.check(lexer.LPAREN) {
			return ast.VisPublic, ast.VisUnspecified, nil
		}
		p.advance()
		scope := p.current()
		switch scope.Type {
		case lexer.SET_KW:
			if !p.dialect().allowsSetVisibility() {
				return 0, 0, p.NewInvalidError("public(set) is a RazorForge visibility")
			}
			p.advance()
			if _, err := p.consume(lexer.RPAREN, "visibility modifier"); err != nil {
				return 0, 0, err
			}
			return p.dialect().defaultVisibility(), ast.VisPublic, nil
		case lexer.FAMILY:
			if !p.dialect().allowsScopedVisibility() {
				return 0, 0, p.NewInvalidError("public(family) is a Cake visibility")
			}
			p.advance()
			if _, err := p.consume(lexer.RPAREN, "visibility modifier"); err != nil {
				return 0, 0, err
			}
			return ast.VisFamily, ast.VisUnspecified, nil
		case lexer.MODULE_KW:
			if !p.dialect().allowsScopedVisibility() {
				return 0, 0, p.NewInvalidError("public(module) is a Cake visibility")
			}
			p.advance()
			if _, err := p.consume(lexer.RPAREN, "visibility modifier"); err != nil {
				return 0, 0, err
			}
			return ast.VisModule, ast.VisUnspecified, nil
		}
		return 0, 0, p.NewUnexpectedTokenError("visibility scope", scope)
	}
	return ast.VisUnspecified, ast.VisUnspecified, nil
}

// parseField parses a data member: `name: Type [= init]`.
func (p *Parser) parseField(getVis, setVis ast.Visibility) (ast.Declaration, error) {
	nameTok := p.advance()
	if _, err := p.consume(lexer.COLON, "field declaration"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	decl := &ast.FieldDecl{
		Name:   nameTok.Text,
		Type:   &typ,
		GetVis: p.resolveVisibility(getVis),
		SetVis: setVis,
		Pos:    nameTok.Position,
	}
	if p.match(lexer.ASSIGN) {
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseChoice parses the sum-type declaration under either spelling:
// choice (RazorForge) or variant (Cake).
func (p *Parser) parseChoice(vis ast.Visibility) (ast.Declaration, error) {
	tok := p.advance() // choice/variant
	nameTok := p.current()
	if nameTok.Type != lexer.IDENTIFIER && nameTok.Type != lexer.TYPE_IDENTIFIER {
		return nil, p.NewUnexpectedTokenError("type name", nameTok)
	}
	p.advance()
	p.registerTypeName(nameTok.Text)

	typeParams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	p.pushGenericScope(typeParams)
	defer p.popGenericScope()

	decl := &ast.ChoiceDecl{
		Name:       nameTok.Text,
		TypeParams: typeParams,
		Visibility: p.resolveVisibility(vis),
		Pos:        tok.Position,
	}

	if _, err := p.consume(lexer.COLON, "choice declaration"); err != nil {
		return nil, err
	}
	p.consumeOptionalOpenBrace()
	if _, err := p.consume(lexer.NEWLINE, "choice declaration"); err != nil {
		return nil, err
	}
	if !p.check(lexer.INDENT) {
		return decl, nil
	}
	if err := p.expectIndent("choice body"); err != nil {
		return nil, err
	}

	p.skipNewlines()
	for !p.checkAny(lexer.DEDENT, lexer.EOF) {
		if p.consumeStrayCloseBrace() {
			p.skipNewlines()
			continue
		}
		caseTok := p.current()
		if caseTok.Type != lexer.IDENTIFIER && caseTok.Type != lexer.TYPE_IDENTIFIER {
			return nil, p.NewUnexpectedTokenError("choice case name", caseTok)
		}
		p.advance()

		cc := ast.ChoiceCase{Name: caseTok.Text, Pos: caseTok.Position}
		if p.match(lexer.LPAREN) {
			for {
				payload, err := p.parseTypeRef()
				if err != nil {
					return nil, err
				}
				cc.Payload = append(cc.Payload, payload)
				if p.match(lexer.COMMA) {
					continue
				}
				break
			}
			if _, err := p.consume(lexer.RPAREN, "choice case payload"); err != nil {
				return nil, err
			}
		}
		decl.Cases = append(decl.Cases, cc)
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}

	if err := p.expectDedent("choice body"); err != nil {
		return nil, err
	}
	if p.consumeStrayCloseBrace() {
		p.skipNewlines()
	}
	return decl, nil
}

// parseImport parses a dotted module path and records its head in the
// imported-namespace set.
func (p *Parser) parseImport() (ast.Declaration, error) {
	tok := p.advance() // import
	first, err := p.consume(lexer.IDENTIFIER, "import declaration")
	if err != nil {
		return nil, err
	}

	path := []string{first.Text}
	for p.match(lexer.DOT) {
		part := p.current()
		if part.Type != lexer.IDENTIFIER && part.Type != lexer.TYPE_IDENTIFIER {
			return nil, p.NewUnexpectedTokenError("module path segment", part)
		}
		p.advance()
		path = append(path, part.Text)
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	p.registerNamespace(path[0])
	return &ast.ImportDecl{Path: path, Pos: tok.Position}, nil
}

// parseVarDecl parses var/let/preset bindings, usable both as statements
// and as declarations.
func (p *Parser) parseVarDecl(vis ast.Visibility) (*ast.VarDecl, error) {
	tok := p.advance()
	var kind ast.BindingKind
	switch tok.Type {
	case lexer.VAR:
		kind = ast.BindVar
	case lexer.LET:
		kind = ast.BindLet
	case lexer.PRESET:
		kind = ast.BindPreset
	}

	nameTok, err := p.consume(lexer.IDENTIFIER, "variable declaration")
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{
		Kind:       kind,
		Name:       nameTok.Text,
		Visibility: p.resolveVisibility(vis),
		Pos:        tok.Position,
	}

	if p.match(lexer.COLON) {
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		decl.Type = &typ
	}
	if p.match(lexer.ASSIGN) {
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if decl.Type == nil && decl.Init == nil {
		return nil, p.NewMissingTokenError("type annotation or initializer")
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

// resolveVisibility replaces an unspecified visibility with the dialect
// default.
func (p *Parser) resolveVisibility(vis ast.Visibility) ast.Visibility {
	if vis == ast.VisUnspecified {
		return p.dialect().defaultVisibility()
	}
	return vis
}
