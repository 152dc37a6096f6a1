package parser

import "github.com/razorforge-lang/razorforge/runtime/lexer"

// Block machinery. The lexer has already resolved whitespace into INDENT
// and DEDENT tokens; the parser only maintains a depth stack to validate
// pairing. The base level is pushed at construction and never popped - a
// DEDENT arriving at base depth means the token stream is structurally
// broken, which is fatal rather than recoverable.

// pushIndent records entry into a nested block.
func (p *Parser) pushIndent() {
	p.indentDepth++
}

// popIndent records a block close. It fails if no block is open.
func (p *Parser) popIndent() error {
	if p.indentDepth == 0 {
		return p.NewIndentationError("unexpected dedent: no enclosing block to close")
	}
	p.indentDepth--
	return nil
}

// expectIndent consumes the INDENT that opens a block body.
func (p *Parser) expectIndent(context string) error {
	if _, err := p.consume(lexer.INDENT, context); err != nil {
		return err
	}
	p.pushIndent()
	return nil
}

// expectDedent consumes the DEDENT that closes a block body. EOF is
// accepted in its place: the lexer flushes remaining dedents before EOF,
// so a missing one here means the stream ended exactly at base level.
func (p *Parser) expectDedent(context string) error {
	if p.check(lexer.DEDENT) {
		p.advance()
		return p.popIndent()
	}
	if p.atEOF() {
		return p.popIndent()
	}
	_, err := p.consume(lexer.DEDENT, context)
	return err
}
