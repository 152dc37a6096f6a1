package parser

import "github.com/razorforge-lang/razorforge/runtime/lexer"

// synchronizePoints are tokens that may begin a new declaration or
// statement; recovery stops when it reaches one.
var synchronizePoints = map[lexer.TokenType]bool{
	lexer.ENTITY: true, lexer.RECORD: true, lexer.CHOICE: true,
	lexer.VARIANT: true, lexer.PROTOCOL: true, lexer.ROUTINE: true,
	lexer.IMPORT: true, lexer.VAR: true, lexer.LET: true, lexer.PRESET: true,
	lexer.IF: true, lexer.UNLESS: true, lexer.WHILE: true, lexer.FOR: true,
	lexer.RETURN: true, lexer.THROW: true, lexer.ABSENT: true,
	lexer.PUBLIC: true, lexer.PRIVATE: true,
}

// synchronize skips to the start of the next plausible declaration or
// statement after a parse failure, bounding the cascade to one diagnostic
// per malformed construct. It advances past the failing token
// unconditionally, then stops when the previous token was a NEWLINE or
// the current one starts a construct.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEOF() {
		if p.at(-1).Type == lexer.NEWLINE {
			return
		}
		if synchronizePoints[p.current().Type] {
			return
		}
		p.advance()
	}
}

// resyncToTopLevel discards layout tokens between top-level declarations
// and rebases the indent depth after recovery. Pending fused-'>' debt is
// dropped with the declaration that failed to claim it.
func (p *Parser) resyncToTopLevel() {
	for p.checkAny(lexer.NEWLINE, lexer.INDENT, lexer.DEDENT) {
		p.advance()
	}
	p.indentDepth = 0
	p.gtDebt = 0
}
