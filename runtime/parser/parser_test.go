package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/core/diag"
	"github.com/razorforge-lang/razorforge/core/source"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// parseFile is the test harness for whole-file parsing.
func parseFile(t *testing.T, input string, opts ...ParserOpt) (*ast.File, *Parser) {
	t.Helper()
	p := New(input, append([]ParserOpt{WithFilename("test.rf")}, opts...)...)
	file, errs := p.ParseFile()
	require.Empty(t, errs, "input: %s", input)
	return file, p
}

func TestRoutineDeclaration(t *testing.T) {
	src := "routine add(a: Int, b: Int) -> Int:\n    return a + b\n"
	file, p := parseFile(t, src)
	require.Len(t, file.Declarations, 1)

	routine, ok := file.Declarations[0].(*ast.RoutineDecl)
	require.True(t, ok)
	require.Equal(t, "add", routine.Name)
	require.Len(t, routine.Params, 2)
	require.Equal(t, "Int", routine.Params[0].Type.Name)
	require.Equal(t, "Int", routine.Params[1].Type.Name)
	require.Equal(t, "Int", routine.ReturnType.Name)

	require.Len(t, routine.Body.Statements, 1)
	ret, ok := routine.Body.Statements[0].(*ast.ReturnStmt)
	require.True(t, ok)

	add, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, add.Op)
	require.Equal(t, "a", add.Left.(*ast.Identifier).Name)
	require.Equal(t, "b", add.Right.(*ast.Identifier).Name)

	require.Equal(t, 0, p.IndentDepth(), "indent depth returns to base at EOF")
}

func TestGenericRoutineScopesTypeParams(t *testing.T) {
	// Inside the routine body T is a known type shape, so wrap<T>(x)
	// commits as a generic call even though T is lower-case-ambiguous.
	src := "routine first<T>(items: List<T>) -> T:\n    return pick<T>(items)\n"
	file, _ := parseFile(t, src)

	routine := file.Declarations[0].(*ast.RoutineDecl)
	require.Equal(t, []string{"T"}, routine.TypeParams)

	ret := routine.Body.Statements[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	require.True(t, ok, "got %T", ret.Value)
	require.Len(t, call.TypeArgs, 1)
	require.Equal(t, "T", call.TypeArgs[0].Name)
}

func TestKnownTypeNameBiasesDisambiguation(t *testing.T) {
	// After `entity vec2:` is parsed, vec2 is a known type name and
	// biases `wrap<vec2>(v)` to a generic call despite the lower-case
	// name.
	src := "entity vec2:\n\nroutine dup(v: vec2) -> vec2:\n    return wrap<vec2>(v)\n"
	file, _ := parseFile(t, src)
	require.Len(t, file.Declarations, 2)

	routine := file.Declarations[1].(*ast.RoutineDecl)
	ret := routine.Body.Statements[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	require.True(t, ok, "got %T", ret.Value)
	require.Len(t, call.TypeArgs, 1)
}

func TestEntityWithMembers(t *testing.T) {
	src := `entity Counter:
    count: Int = 0
    routine bump(self) -> Int:
        count += 1
        return count
`
	file, _ := parseFile(t, src)
	decl := file.Declarations[0].(*ast.TypeDecl)
	require.Equal(t, ast.DeclEntity, decl.Kind)
	require.Equal(t, "Counter", decl.Name)
	require.Len(t, decl.Members, 2)

	field, ok := decl.Members[0].(*ast.FieldDecl)
	require.True(t, ok)
	require.Equal(t, "count", field.Name)
	require.Equal(t, "Int", field.Type.Name)
	require.NotNil(t, field.Init)

	routine, ok := decl.Members[1].(*ast.RoutineDecl)
	require.True(t, ok)
	require.Equal(t, "bump", routine.Name)
	require.Len(t, routine.Body.Statements, 2)
}

func TestEmptyEntityBody(t *testing.T) {
	src := "entity Marker:\n\nroutine use(m: Marker):\n    return\n"
	file, _ := parseFile(t, src)
	require.Len(t, file.Declarations, 2)
	require.Empty(t, file.Declarations[0].(*ast.TypeDecl).Members)
}

func TestChoiceDeclaration(t *testing.T) {
	src := `choice Shape:
    Circle(Float)
    Rect(Float, Float)
    Empty
`
	file, _ := parseFile(t, src)
	decl := file.Declarations[0].(*ast.ChoiceDecl)
	require.Equal(t, "Shape", decl.Name)
	require.Len(t, decl.Cases, 3)
	require.Len(t, decl.Cases[0].Payload, 1)
	require.Len(t, decl.Cases[1].Payload, 2)
	require.Empty(t, decl.Cases[2].Payload)
}

func TestProtocolSignatures(t *testing.T) {
	src := `protocol Comparable:
    routine compare(other: Comparable) -> Int
    routine equals(other: Comparable) -> Bool
`
	file, _ := parseFile(t, src)
	decl := file.Declarations[0].(*ast.TypeDecl)
	require.Equal(t, ast.DeclProtocol, decl.Kind)
	require.Len(t, decl.Members, 2)
	for _, m := range decl.Members {
		require.Nil(t, m.(*ast.RoutineDecl).Body, "protocol signatures have no body")
	}
}

func TestImportPopulatesNamespaces(t *testing.T) {
	src := "import core.text\n\nroutine f() -> Int:\n    return 1\n"
	file, p := parseFile(t, src)
	imp := file.Declarations[0].(*ast.ImportDecl)
	require.Equal(t, []string{"core", "text"}, imp.Path)
	require.True(t, p.isNamespace("core"))
}

func TestControlFlowStatements(t *testing.T) {
	src := `routine classify(n: Int) -> Int:
    if n < 0:
        return -1
    else if n == 0:
        return 0
    else:
        return 1
`
	file, _ := parseFile(t, src)
	routine := file.Declarations[0].(*ast.RoutineDecl)
	top, ok := routine.Body.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	elif, ok := top.Else.(*ast.IfStmt)
	require.True(t, ok, "else-if chains nest as IfStmt")
	_, ok = elif.Else.(*ast.Block)
	require.True(t, ok)
}

func TestUnlessStatement(t *testing.T) {
	src := "routine guard(ok: Bool):\n    unless ok:\n        throw failure()\n"
	file, _ := parseFile(t, src)
	routine := file.Declarations[0].(*ast.RoutineDecl)
	stmt := routine.Body.Statements[0].(*ast.IfStmt)
	require.True(t, stmt.Negate)
}

func TestWhileAndForLoops(t *testing.T) {
	src := `routine sum(xs: List<Int>) -> Int:
    var total: Int = 0
    for x in xs:
        total += x
    while total > 100:
        total -= 10
        break
    return total
`
	file, _ := parseFile(t, src)
	routine := file.Declarations[0].(*ast.RoutineDecl)
	require.Len(t, routine.Body.Statements, 4)

	loop := routine.Body.Statements[1].(*ast.ForStmt)
	require.Equal(t, "x", loop.Var)

	while := routine.Body.Statements[2].(*ast.WhileStmt)
	require.Len(t, while.Body.Statements, 2)
	_, ok := while.Body.Statements[1].(*ast.BreakStmt)
	require.True(t, ok)
}

func TestForOverRangeSugar(t *testing.T) {
	src := "routine count():\n    for i in 1 to 10 by 2:\n        use(i)\n"
	file, _ := parseFile(t, src)
	loop := file.Declarations[0].(*ast.RoutineDecl).Body.Statements[0].(*ast.ForStmt)
	call, ok := loop.Iterable.(*ast.CallExpr)
	require.True(t, ok)
	require.Equal(t, "range", call.Callee.(*ast.Identifier).Name)
	require.Len(t, call.Args, 3)
}

func TestWhenStatement(t *testing.T) {
	src := `routine describe(x: Int) -> Text:
    when x:
        is 0:
            return "zero"
        is 1 to 9:
            return "digit"
        else:
            return "big"
`
	file, _ := parseFile(t, src)
	routine := file.Declarations[0].(*ast.RoutineDecl)
	when := routine.Body.Statements[0].(*ast.WhenStmt)
	require.Len(t, when.Clauses, 2)
	require.NotNil(t, when.Else)

	// The range pattern desugars like any range expression.
	rangeCall, ok := when.Clauses[1].Pattern.(*ast.CallExpr)
	require.True(t, ok)
	require.Equal(t, "range", rangeCall.Callee.(*ast.Identifier).Name)
}

func TestVarLetPreset(t *testing.T) {
	src := "var a: Int = 1\nlet b = 2\npreset c: Float\n"
	file, _ := parseFile(t, src)
	require.Len(t, file.Declarations, 3)
	require.Equal(t, ast.BindVar, file.Declarations[0].(*ast.VarDecl).Kind)
	require.Equal(t, ast.BindLet, file.Declarations[1].(*ast.VarDecl).Kind)
	require.Equal(t, ast.BindPreset, file.Declarations[2].(*ast.VarDecl).Kind)
}

func TestAbsentBody(t *testing.T) {
	src := "routine todo() -> Int:\n    absent\n"
	file, _ := parseFile(t, src)
	routine := file.Declarations[0].(*ast.RoutineDecl)
	_, ok := routine.Body.Statements[0].(*ast.AbsentStmt)
	require.True(t, ok)
}

func TestRecoveryCollectsMultipleErrors(t *testing.T) {
	src := `routine broken(:
entity ) Bad:
routine fine() -> Int:
    return 2
`
	p := New(src, WithFilename("test.rf"))
	file, errs := p.ParseFile()
	require.Len(t, errs, 2, "one diagnostic per malformed declaration")

	// The well-formed declaration after the failures still parses.
	require.NotEmpty(t, file.Declarations)
	last := file.Declarations[len(file.Declarations)-1]
	require.Equal(t, "fine", last.(*ast.RoutineDecl).Name)
}

func TestInjectedDedentIsFatalButRecoverable(t *testing.T) {
	loc := source.Location{File: "test.rf", Line: 1, Column: 1}
	tokens := []lexer.Token{
		{Type: lexer.DEDENT, Position: loc},
		{Type: lexer.ROUTINE, Text: "routine", Position: loc},
		{Type: lexer.IDENTIFIER, Text: "ok", Position: loc},
		{Type: lexer.LPAREN, Text: "(", Position: loc},
		{Type: lexer.RPAREN, Text: ")", Position: loc},
		{Type: lexer.COLON, Text: ":", Position: loc},
		{Type: lexer.NEWLINE, Position: loc},
		{Type: lexer.INDENT, Position: loc},
		{Type: lexer.RETURN, Text: "return", Position: loc},
		{Type: lexer.NEWLINE, Position: loc},
		{Type: lexer.DEDENT, Position: loc},
		{Type: lexer.EOF, Position: loc},
	}
	p := NewFromTokens(tokens, "", WithFilename("test.rf"))
	file, errs := p.ParseFile()

	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "unexpected dedent")

	// The stack is not corrupted for the recovered parse.
	require.Len(t, file.Declarations, 1)
	require.Equal(t, "ok", file.Declarations[0].(*ast.RoutineDecl).Name)
	require.Equal(t, 0, p.IndentDepth())
}

func TestStraySemicolonWarns(t *testing.T) {
	src := "routine f() -> Int:\n    return 1;\n"
	_, p := parseFile(t, src)

	warnings := p.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, diag.WarnStraySemicolon, warnings[0].Code)
	require.Equal(t, diag.SeverityWarning, warnings[0].Severity)
}

func TestCakeStrayBraceWarns(t *testing.T) {
	src := "routine f():\n    g()\n    }\n"
	p := New(src, WithFilename("test.cake"), WithDialect(DialectCake))
	_, errs := p.ParseFile()
	require.Empty(t, errs, "stray braces never interrupt a Cake parse")

	warnings := p.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, diag.WarnUnnecessaryBrace, warnings[0].Code)
}

func TestRazorForgeToleratesBraces(t *testing.T) {
	src := "routine f(): {\n    g()\n    }\n"
	p := New(src, WithFilename("test.rf"), WithDialect(DialectRazorForge))
	_, errs := p.ParseFile()
	require.Empty(t, errs)
	require.Empty(t, p.Warnings(), "braces are silent in RazorForge")
}

func TestDialectDefaults(t *testing.T) {
	src := "routine f() -> Int:\n    return 1\n"

	p := New(src, WithDialect(DialectRazorForge))
	file, _ := p.ParseFile()
	require.Equal(t, ast.VisPrivate, file.Declarations[0].(*ast.RoutineDecl).Visibility)

	p = New(src, WithDialect(DialectCake))
	file, _ = p.ParseFile()
	require.Equal(t, ast.VisPublic, file.Declarations[0].(*ast.RoutineDecl).Visibility)
}

func TestVisibilityModifiers(t *testing.T) {
	src := "public routine api() -> Int:\n    return 1\n\nprivate routine impl() -> Int:\n    return 2\n"
	file, _ := parseFile(t, src)
	require.Equal(t, ast.VisPublic, file.Declarations[0].(*ast.RoutineDecl).Visibility)
	require.Equal(t, ast.VisPrivate, file.Declarations[1].(*ast.RoutineDecl).Visibility)
}

func TestRazorForgeSetVisibility(t *testing.T) {
	src := "entity Config:\n    public(set) limit: Int = 10\n"
	file, _ := parseFile(t, src, WithDialect(DialectRazorForge))
	field := file.Declarations[0].(*ast.TypeDecl).Members[0].(*ast.FieldDecl)
	require.Equal(t, ast.VisPublic, field.SetVis)
	require.Equal(t, ast.VisPrivate, field.GetVis, "getter keeps the dialect default")
}

func TestCakeScopedVisibility(t *testing.T) {
	src := "public(family) routine shared() -> Int:\n    return 1\n"
	p := New(src, WithDialect(DialectCake))
	file, errs := p.ParseFile()
	require.Empty(t, errs)
	require.Equal(t, ast.VisFamily, file.Declarations[0].(*ast.RoutineDecl).Visibility)

	// The same spelling is rejected in RazorForge.
	p = New(src, WithDialect(DialectRazorForge))
	_, errs = p.ParseFile()
	require.NotEmpty(t, errs)
}

func TestDialectForFile(t *testing.T) {
	require.Equal(t, DialectRazorForge, DialectForFile("main.rf"))
	require.Equal(t, DialectCake, DialectForFile("script.cake"))
	require.Equal(t, DialectRazorForge, DialectForFile("other.txt"))
}

func TestMisspelledKeywordSuggestion(t *testing.T) {
	src := "routin add() -> Int:\n    return 1\n"
	p := New(src, WithFilename("test.rf"))
	_, errs := p.ParseFile()
	require.NotEmpty(t, errs)

	var pe ParseError
	require.ErrorAs(t, errs[0], &pe)
	require.Equal(t, "routine", pe.Suggestion)
}

func TestErrorSnippetPointsAtToken(t *testing.T) {
	src := "routine f() -> Int:\n    return $\n"
	p := New(src, WithFilename("test.rf"))
	_, errs := p.ParseFile()
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "-->")
	require.Contains(t, errs[0].Error(), "^")
}

func TestWarningsSurviveFailures(t *testing.T) {
	src := "routine f():\n    g();\n    return $\n"
	p := New(src, WithFilename("test.rf"))
	_, errs := p.ParseFile()
	require.NotEmpty(t, errs)
	require.Equal(t, 1, p.sink.Len(), "semicolon warning collected before the failure survives")
}

func TestTelemetryCounts(t *testing.T) {
	src := "routine f() -> Int:\n    return 1\n"
	p := New(src, WithTelemetryTiming())
	_, errs := p.ParseFile()
	require.Empty(t, errs)

	tel := p.Telemetry()
	require.Greater(t, tel.TokenCount, 0)
	require.Equal(t, 0, tel.ErrorCount)
	require.GreaterOrEqual(t, tel.TotalTime, tel.ParseTime)
}

func TestSuggestHelper(t *testing.T) {
	require.Equal(t, "routine", diag.Suggest("routin", []string{"routine", "entity", "record"}))
}

func TestStrayCloseAngleInReturnType(t *testing.T) {
	src := "routine f() -> List<Int>>:\nroutine g() -> Int:\n    return make<Int>(1)\n"
	p := New(src, WithFilename("test.rf"))
	file, errs := p.ParseFile()
	require.Len(t, errs, 1, "the extra '>' is a parse error, not a fused terminator")
	require.Contains(t, errs[0].Error(), "expected >")

	// The failure leaves no pending '>' halves behind, so the following
	// declaration's generic call parses normally.
	require.Zero(t, p.gtDebt)
	require.Len(t, file.Declarations, 1)
	routine := file.Declarations[0].(*ast.RoutineDecl)
	require.Equal(t, "g", routine.Name)
	ret := routine.Body.Statements[0].(*ast.ReturnStmt)
	require.Equal(t, "make<Int>(1)", ret.Value.String())
}

func TestMultiLineBraceLiterals(t *testing.T) {
	src := "var m = {\n    \"a\": 1,\n    \"b\": 2,\n}\nlet s = {\n    x,\n    y,\n}\n"
	file, _ := parseFile(t, src)
	require.Len(t, file.Declarations, 2)

	m := file.Declarations[0].(*ast.VarDecl)
	mapLit, ok := m.Init.(*ast.MapLiteral)
	require.True(t, ok)
	require.Len(t, mapLit.Entries, 2)

	s := file.Declarations[1].(*ast.VarDecl)
	setLit, ok := s.Init.(*ast.SetLiteral)
	require.True(t, ok)
	require.Len(t, setLit.Elements, 2)
}
