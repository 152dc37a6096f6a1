package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// parseExpr is the test harness: lex, parse one expression, fail the test
// on error.
func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	p := New(input, WithFilename("test.rf"))
	expr, err := p.ParseExpression()
	require.NoError(t, err, "input: %s", input)
	return expr
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // canonical parenthesized form
	}{
		{"additive left assoc", "a + b + c", "((a + b) + c)"},
		{"mul binds tighter", "a + b * c", "(a + (b * c))"},
		{"power right assoc", "2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"power tighter than unary", "-2 ** 2", "(-(2 ** 2))"},
		{"unary tighter than mul", "-a * b", "((-a) * b)"},
		{"shift below additive", "a << b + c", "(a << (b + c))"},
		{"bitand below shift", "a & b << c", "(a & (b << c))"},
		{"xor below bitand", "a ^ b & c", "(a ^ (b & c))"},
		{"bitor below xor", "a | b ^ c", "(a | (b ^ c))"},
		{"comparison below bitor", "a | b == c", "((a | b) == c)"},
		{"and below comparison", "a == b && c == d", "((a == b) && (c == d))"},
		{"or below and", "a || b && c", "(a || (b && c))"},
		{"keyword spellings", "a or b and c", "(a || (b && c))"},
		{"coalesce below or", "a || b ?? c", "((a || b) ?? c)"},
		{"wrap variant", "a +% b *% c", "(a +% (b *% c))"},
		{"sat variant", "a -| b", "(a -| b)"},
		{"checked variant", "a /? b", "(a /? b)"},
		{"power wrap right assoc", "a **% b **% c", "(a **% (b **% c))"},
		{"spaceship", "a <=> b", "(a <=> b)"},
		{"not equal", "a != b", "(a != b)"},
		{"assignment right assoc", "a = b = c", "(a = (b = c))"},
		{"compound assignment", "a += b * c", "(a += (b * c))"},
		{"paren grouping", "(a + b) * c", "((a + b) * c)"},
		{"unary stacking", "not !a", "(!(!a))"},
		{"bitnot", "~a & b", "((~a) & b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseExpr(t, tt.input).String()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parse %q mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestPrecedenceIsTotal(t *testing.T) {
	// Every token the operator resolver knows must map to a real band.
	for typ := range binaryOps {
		require.NotEqual(t, PrecNone, precedenceOf(typ),
			"binary operator %s has no precedence band", typ)
	}
}

func TestChainedComparisons(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascending", "a < b < c", "(a < b < c)"},
		{"ascending mixed", "a < b <= c", "(a < b <= c)"},
		{"descending", "a > b >= c", "(a > b >= c)"},
		{"all equality", "a == b == c", "(a == b == c)"},
		{"equality joins ascending", "a == b < c", "(a == b < c)"},
		{"single stays binary", "a < b", "(a < b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseExpr(t, tt.input).String()
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInconsistentChainRejected(t *testing.T) {
	inputs := []string{"a < b > c", "a <= b >= c", "a > b == c < d"}
	for _, input := range inputs {
		p := New(input, WithFilename("test.rf"))
		_, err := p.ParseExpression()
		require.Error(t, err, "input: %s", input)
		require.Contains(t, err.Error(), "comparison chain mixes directions")
	}
}

func TestChainProducesChainedNode(t *testing.T) {
	expr := parseExpr(t, "a < b < c")
	chain, ok := expr.(*ast.ChainedComparison)
	require.True(t, ok, "expected chained comparison, got %T", expr)
	require.Len(t, chain.Operands, 3)
	require.Equal(t, []ast.BinaryOp{ast.OpLt, ast.OpLt}, chain.Ops)
}

func TestGenericVsComparison(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"generic call", "Box<Int>(x)", "Box<Int>(x)"},
		{"generic call primitive", "make<Text>(n)", "make<Text>(n)"},
		{"nested generic args", "make<Map<Text, List<Int>>>(n)", "make<Map<Text, List<Int>>>(n)"},
		{"comparison lower-case", "a < b", "(a < b)"},
		{"comparison weak signal", "a < b(c)", "(a < b(c))"},
		{"generic method call", "obj.fetch<Int>(k)", "obj.fetch<Int>(k)"},
		{"generic struct literal", "Pair<Int> { first: a, second: b }", "Pair<Int> { first: a, second: b }"},
		{"failable generic call", "parse<Int>!(s)", "parse<Int>!(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseExpr(t, tt.input).String()
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSpeculationRestoresCursor(t *testing.T) {
	// A failed generic attempt must leave the cursor exactly where it
	// started, with no token leakage.
	p := New("x<y\n", WithFilename("test.rf"))
	left, err := p.parsePrimary()
	require.NoError(t, err)

	before := p.mark()
	_, ok, err := p.tryGenericSuffix(left)
	require.NoError(t, err)
	require.False(t, ok, "lower-case right side must not commit as generic")
	require.Equal(t, before, p.mark(), "cursor moved during failed speculation")
	require.Equal(t, lexer.LT, p.current().Type)
}

func TestCommittedGenericNeedsUse(t *testing.T) {
	// A well-formed argument list not followed by a call or literal stays
	// a comparison: the heuristic biases toward comparison.
	p := New("a < B\n", WithFilename("test.rf"))
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	require.Equal(t, "(a < B)", expr.String())
}

func TestPostfixChains(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"f(x)", "f(x)"},
		{"f(x, y)", "f(x, y)"},
		{"f()", "f()"},
		{"xs[0]", "xs[0]"},
		{"a.b.c", "a.b.c"},
		{"a?.b", "a?.b"},
		{"a.b(x)[i].c", "a.b(x)[i].c"},
		{"open!(path)", "open!(path)"},
		{"cfg.set", "cfg.set"},
		{"m.module", "m.module"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestLiteralExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"true", "true"},
		{"none", "none"},
		{"'a'", "'a'"},
		{`"hi"`, `"hi"`},
		{`f"hi {x}"`, `f"hi {x}"`},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"[]", "[]"},
		{"{1, 2}", "{1, 2}"},
		{"self.count", "self.count"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestNumericLiteralRoundTrip(t *testing.T) {
	tests := []struct {
		input     string
		wantValue uint64
		wantWidth string
	}{
		{"42s32", 42, "s32"},
		{"0xFFu8", 255, "u8"},
		{"0b1010", 10, ""},
		{"1_000_000u64", 1000000, "u64"},
		{"255u8", 255, "u8"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input)
			lit, ok := expr.(*ast.IntegerLiteral)
			require.True(t, ok, "expected integer literal, got %T", expr)
			require.Equal(t, tt.wantValue, lit.Value)
			require.Equal(t, tt.wantWidth, lit.Width)
		})
	}
}

func TestUnitLiteralExtractsMagnitude(t *testing.T) {
	expr := parseExpr(t, "100mb")
	lit, ok := expr.(*ast.UnitLiteral)
	require.True(t, ok)
	require.Equal(t, uint64(100), lit.Magnitude)
	require.Equal(t, "mb", lit.Unit)
	require.Equal(t, ast.UnitMemory, lit.Kind)

	expr = parseExpr(t, "250ms")
	lit = expr.(*ast.UnitLiteral)
	require.Equal(t, uint64(250), lit.Magnitude)
	require.Equal(t, ast.UnitDuration, lit.Kind)
}

func TestDeferredNumberLiteral(t *testing.T) {
	expr := parseExpr(t, "1_234dec")
	lit, ok := expr.(*ast.DeferredNumberLiteral)
	require.True(t, ok, "dec literals defer, got %T", expr)
	require.Equal(t, "1234", lit.Text, "underscores stripped")
	require.Equal(t, "dec", lit.Suffix)
}

func TestCharEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\t'`, '\t'},
		{`'\\'`, '\\'},
		{`'\''`, '\''},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit := parseExpr(t, tt.input).(*ast.CharLiteral)
			require.Equal(t, tt.want, lit.Value)
		})
	}
}

func TestBadCharLiteral(t *testing.T) {
	p := New(`'\q'`, WithFilename("test.rf"))
	_, err := p.ParseExpression()
	require.Error(t, err)
	require.Contains(t, err.Error(), "escape")
}

func TestLambdas(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x => x + 1", "(x => (x + 1))"},
		{"(a, b) => a * b", "((a, b) => (a * b))"},
		{"() => 0", "(() => 0)"},
		{"(a: Int) => a", "((a: Int) => a)"},
		{"x => y => x + y", "(x => (y => (x + y)))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestParenthesizedGrouping(t *testing.T) {
	// A parenthesized expression that is not a parameter list must fall
	// back to grouping after the lambda speculation fails.
	require.Equal(t, "((a + b) * c)", parseExpr(t, "(a + b) * c").String())
}

func TestRangeSugar(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 to 10", "range(1, 10)"},
		{"1 to 10 by 2", "range(1, 10, 2)"},
		{"a + 1 to b * 2", "range((a + 1), (b * 2))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestConditionalExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a if c else b", "(if c then a else b)"},
		{"if c then a else b", "(if c then a else b)"},
		{"if c { a } else { b }", "(if c then a else b)"},
		{"a unless c else b", "(if (!c) then a else b)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestNoneHandling(t *testing.T) {
	require.Equal(t, "((a ?? b) ?? c)", parseExpr(t, "a ?? b ?? c").String())
	require.Equal(t, "a?.b?.c", parseExpr(t, "a?.b?.c").String())
}

func TestIntrinsicAndNativeCalls(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"@intrinsic.size_of<Int>()", "@intrinsic.size_of<Int>()"},
		{"@intrinsic.add(a, b)", "@intrinsic.add(a, b)"},
		{"@native.malloc(n)", "@native.malloc(n)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestMapAndSetLiterals(t *testing.T) {
	expr := parseExpr(t, `{"a": 1, "b": 2}`)
	m, ok := expr.(*ast.MapLiteral)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)

	expr = parseExpr(t, "{}")
	_, ok = expr.(*ast.MapLiteral)
	require.True(t, ok, "empty braces are an empty map")

	expr = parseExpr(t, "{a, b, c}")
	s, ok := expr.(*ast.SetLiteral)
	require.True(t, ok)
	require.Len(t, s.Elements, 3)
}

func TestStructLiteral(t *testing.T) {
	expr := parseExpr(t, "Point { x: 1, y: 2 }")
	lit, ok := expr.(*ast.StructLiteral)
	require.True(t, ok)
	require.Equal(t, "Point", lit.TypeName)
	require.Len(t, lit.Fields, 2)
}

func TestInvalidAssignmentTarget(t *testing.T) {
	p := New("a + b = c", WithFilename("test.rf"))
	_, err := p.ParseExpression()
	require.Error(t, err)
	require.Contains(t, err.Error(), "assignment target")
}

func TestCheckIsIdempotent(t *testing.T) {
	p := New("a + b", WithFilename("test.rf"))
	before := p.current()
	for i := 0; i < 10; i++ {
		p.check(lexer.PLUS)
		p.checkAny(lexer.MINUS, lexer.STAR)
	}
	require.Equal(t, before, p.current())
}

func TestAdvanceIdempotentAtEOF(t *testing.T) {
	p := New("", WithFilename("test.rf"))
	for i := 0; i < 5; i++ {
		tok := p.advance()
		require.Equal(t, lexer.EOF, tok.Type)
	}
	require.True(t, p.atEOF())
}

func TestUnexpectedTokenError(t *testing.T) {
	p := New("a + ", WithFilename("test.rf"))
	_, err := p.ParseExpression()
	require.Error(t, err)

	var pe ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrorUnexpected, pe.Type)
	require.Contains(t, pe.Message, "expected expression")
}

func TestLambdaSpeculationRestoresFusedDebt(t *testing.T) {
	// The nested type argument list consumes a fused '>>' before the
	// parameter speculation fails on the stray '2'; the rollback must
	// restore the owed-'>' count along with the cursor.
	p := New("(x: Pair<A<B>>, 2) => x", WithFilename("test.rf"))
	_, err := p.ParseExpression()
	require.Error(t, err)
	require.Zero(t, p.gtDebt)
}

func TestGenericMemberAccess(t *testing.T) {
	require.Equal(t, "List<Int>.empty()", parseExpr(t, "List<Int>.empty()").String())
	require.Equal(t, "Map<Text, Int>.of(k, v)", parseExpr(t, "Map<Text, Int>.of(k, v)").String())

	// A dotted name after '<' with no use of the closed list is still a
	// comparison.
	require.Equal(t, "(a < b.c)", parseExpr(t, "a < b.c").String())
}

func TestMultiLineStructLiteral(t *testing.T) {
	src := "Pair<Int> {\n    first: a,\n    second: b,\n}"
	require.Equal(t, "Pair<Int> { first: a, second: b }", parseExpr(t, src).String())
}
