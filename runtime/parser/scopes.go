package parser

// Name-shape tracking for the generic-vs-comparison heuristic. The parser
// keeps a stack of generic-parameter scopes plus flat sets of declared
// type names and imported namespaces; all three feed looksLikeType.

// pushGenericScope opens a generic-parameter scope for a declaration.
// Every exit path of the declaration must pop it, including error paths.
func (p *Parser) pushGenericScope(params []string) {
	scope := make(map[string]bool, len(params))
	for _, name := range params {
		scope[name] = true
	}
	p.genericScopes = append(p.genericScopes, scope)
}

// popGenericScope closes the innermost generic-parameter scope.
func (p *Parser) popGenericScope() {
	if len(p.genericScopes) > 0 {
		p.genericScopes = p.genericScopes[:len(p.genericScopes)-1]
	}
}

// inGenericScope reports whether the name is a generic parameter of any
// enclosing declaration.
func (p *Parser) inGenericScope(name string) bool {
	for i := len(p.genericScopes) - 1; i >= 0; i-- {
		if p.genericScopes[i][name] {
			return true
		}
	}
	return false
}

// registerTypeName records a declared entity, record, choice or protocol
// name so later expressions treat it as type-shaped.
func (p *Parser) registerTypeName(name string) {
	p.knownTypes[name] = true
}

// isKnownType reports whether the name was declared as a type earlier in
// this file.
func (p *Parser) isKnownType(name string) bool {
	return p.knownTypes[name]
}

// registerNamespace records an imported module path head.
func (p *Parser) registerNamespace(name string) {
	p.namespaces[name] = true
}

// isNamespace reports whether the name heads an imported module path.
func (p *Parser) isNamespace(name string) bool {
	return p.namespaces[name]
}
