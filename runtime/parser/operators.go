package parser

import (
	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// The operator resolver maps token types to AST operator kinds. Overflow
// variants (wrapping, saturating, checked) resolve to distinct kinds so
// later stages never re-inspect spellings.

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:    ast.OpAdd,
	lexer.MINUS:   ast.OpSub,
	lexer.STAR:    ast.OpMul,
	lexer.SLASH:   ast.OpDiv,
	lexer.PERCENT: ast.OpMod,
	lexer.POWER:   ast.OpPow,

	lexer.PLUS_WRAP:  ast.OpAddWrap,
	lexer.MINUS_WRAP: ast.OpSubWrap,
	lexer.STAR_WRAP:  ast.OpMulWrap,
	lexer.SLASH_WRAP: ast.OpDivWrap,
	lexer.POWER_WRAP: ast.OpPowWrap,

	lexer.PLUS_SAT:  ast.OpAddSat,
	lexer.MINUS_SAT: ast.OpSubSat,
	lexer.STAR_SAT:  ast.OpMulSat,
	lexer.SLASH_SAT: ast.OpDivSat,
	lexer.POWER_SAT: ast.OpPowSat,

	lexer.PLUS_CHECKED:  ast.OpAddChecked,
	lexer.MINUS_CHECKED: ast.OpSubChecked,
	lexer.STAR_CHECKED:  ast.OpMulChecked,
	lexer.SLASH_CHECKED: ast.OpDivChecked,

	lexer.EQ_EQ:     ast.OpEq,
	lexer.NOT_EQ:    ast.OpNe,
	lexer.LT:        ast.OpLt,
	lexer.LT_EQ:     ast.OpLe,
	lexer.GT:        ast.OpGt,
	lexer.GT_EQ:     ast.OpGe,
	lexer.SPACESHIP: ast.OpSpaceship,

	lexer.AND_AND: ast.OpAnd,
	lexer.AND_KW:  ast.OpAnd,
	lexer.OR_OR:   ast.OpOr,
	lexer.OR_KW:   ast.OpOr,

	lexer.AMP:   ast.OpBitAnd,
	lexer.PIPE:  ast.OpBitOr,
	lexer.CARET: ast.OpBitXor,
	lexer.SHL:   ast.OpShl,
	lexer.SHR:   ast.OpShr,

	lexer.COALESCE: ast.OpNoneCoalesce,
}

// binaryOpFor resolves a token to its binary operator kind, or OpInvalid.
func binaryOpFor(typ lexer.TokenType) ast.BinaryOp {
	if op, ok := binaryOps[typ]; ok {
		return op
	}
	return ast.OpInvalid
}

var assignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.ASSIGN:         ast.OpAssign,
	lexer.PLUS_ASSIGN:    ast.OpAddAssign,
	lexer.MINUS_ASSIGN:   ast.OpSubAssign,
	lexer.STAR_ASSIGN:    ast.OpMulAssign,
	lexer.SLASH_ASSIGN:   ast.OpDivAssign,
	lexer.PERCENT_ASSIGN: ast.OpModAssign,
}

// assignOpFor resolves an assignment token, reporting whether it is one.
func assignOpFor(typ lexer.TokenType) (ast.AssignOp, bool) {
	op, ok := assignOps[typ]
	return op, ok
}

// unaryOpFor resolves a prefix operator token, reporting whether it is
// one. Both '!' and the keyword 'not' spell logical negation.
func unaryOpFor(typ lexer.TokenType) (ast.UnaryOp, bool) {
	switch typ {
	case lexer.MINUS:
		return ast.OpNeg, true
	case lexer.PLUS:
		return ast.OpPos, true
	case lexer.BANG, lexer.NOT_KW:
		return ast.OpNot, true
	case lexer.TILDE:
		return ast.OpBitNot, true
	default:
		return ast.OpNot, false
	}
}
