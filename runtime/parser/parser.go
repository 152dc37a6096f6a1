// Package parser is the syntactic front end shared by the RazorForge and
// Cake dialects: precedence-climbing expression parsing over a pre-lexed
// token stream, indentation-delimited block structure, and recoverable
// diagnostics. One Parser instance handles one parse and must be used from
// a single goroutine; independent parses need no locking.
package parser

import (
	"time"

	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/core/diag"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// Parser owns all per-parse state: the token cursor, the indentation
// depth, the generic-parameter scope stack, the declared-type and
// imported-namespace sets, and the diagnostics sink. Speculative parsing
// saves and restores only the cursor (plus the fused-'>' debt); the sets
// and the sink are never touched speculatively.
type Parser struct {
	tokens []lexer.Token
	pos    int
	input  string
	config ParserConfig

	sink        *diag.Sink
	indentDepth int

	genericScopes []map[string]bool
	knownTypes    map[string]bool
	namespaces    map[string]bool

	noLambda      bool // set inside when-clause heads
	noStruct      bool // set inside control-flow condition heads
	gtDebt        int  // pending '>' halves from fused '>>' tokens
	typeListDepth int  // open type-argument lists; fused '>>' is legal only when nested

	telemetry ParseTelemetry
}

// New lexes the input and builds a parser over the resulting stream.
func New(input string, opts ...ParserOpt) *Parser {
	config := ParserConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	if config.filename == "" {
		config.filename = "<input>"
	}

	lexStart := time.Now()
	tokens := lexer.Scan(input, config.filename)
	lexTime := time.Since(lexStart)

	p := newFromTokens(tokens, input, config)
	if config.telemetry >= TelemetryTiming {
		p.telemetry.LexTime = lexTime
	}
	return p
}

// NewFromTokens builds a parser over an externally produced token stream.
// The stream must be terminated by an EOF token.
func NewFromTokens(tokens []lexer.Token, input string, opts ...ParserOpt) *Parser {
	config := ParserConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return newFromTokens(tokens, input, config)
}

func newFromTokens(tokens []lexer.Token, input string, config ParserConfig) *Parser {
	if len(tokens) == 0 {
		tokens = []lexer.Token{{Type: lexer.EOF}}
	}
	p := &Parser{
		tokens:     tokens,
		input:      input,
		config:     config,
		sink:       &diag.Sink{},
		knownTypes: make(map[string]bool),
		namespaces: make(map[string]bool),
	}
	if config.telemetry >= TelemetryBasic {
		p.telemetry.TokenCount = len(tokens)
	}
	return p
}

func (p *Parser) dialect() Dialect {
	return p.config.dialect
}

// ParseFile parses a whole file of top-level declarations. Each failed
// declaration yields one error followed by recovery, so a file with
// several malformed declarations reports all of them. The returned File
// holds everything that did parse.
func (p *Parser) ParseFile() (*ast.File, []error) {
	start := time.Now()
	file := &ast.File{Name: p.config.filename}
	var errs []error

	p.skipNewlines()
	for !p.atEOF() {
		decl, err := p.parseDeclaration()
		if err != nil {
			errs = append(errs, err)
			p.synchronize()
			p.resyncToTopLevel()
		} else {
			file.Declarations = append(file.Declarations, decl)
		}
		p.skipNewlines()
	}

	if p.config.telemetry >= TelemetryBasic {
		p.telemetry.ErrorCount = len(errs)
	}
	if p.config.telemetry >= TelemetryTiming {
		p.telemetry.ParseTime = time.Since(start)
		p.telemetry.TotalTime = p.telemetry.LexTime + p.telemetry.ParseTime
	}
	return file, errs
}

// ParseExpression parses the input as a single expression and requires
// the stream to be fully consumed apart from trailing layout tokens.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	for p.check(lexer.DEDENT) {
		p.advance()
	}
	if !p.atEOF() {
		return nil, p.NewUnexpectedTokenError("end of input", p.current())
	}
	return expr, nil
}

// ParseDeclaration parses the input as a single top-level declaration.
func (p *Parser) ParseDeclaration() (ast.Declaration, error) {
	p.skipNewlines()
	decl, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if !p.atEOF() {
		return nil, p.NewUnexpectedTokenError("end of input", p.current())
	}
	return decl, nil
}

// ParseStatement parses the input as a single statement.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	p.skipNewlines()
	return p.parseStatement()
}

// Warnings exposes the style warnings collected so far, in emission
// order. The list survives parse failures: whatever was collected before
// the failure stays available.
func (p *Parser) Warnings() []diag.Warning {
	return p.sink.Warnings()
}

// Telemetry returns the metrics collected under the configured telemetry
// mode.
func (p *Parser) Telemetry() ParseTelemetry {
	return p.telemetry
}

// IndentDepth reports the current block nesting depth. It returns to zero
// at top level when the stream's layout tokens are balanced.
func (p *Parser) IndentDepth() int {
	return p.indentDepth
}
