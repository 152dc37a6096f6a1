package parser

import "github.com/razorforge-lang/razorforge/runtime/lexer"

// Precedence bands, lowest first. The expression engine descends through
// these in order; each band's parse routine calls the next-tighter band
// for its operands.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecLambda
	PrecConditional
	PrecNoneCoalesce
	PrecRange
	PrecLogicalOr
	PrecLogicalAnd
	PrecComparison
	PrecBitwiseOr
	PrecBitwiseXor
	PrecBitwiseAnd
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPower
	PrecPostfix
	PrecPrimary
)

// precedenceOf maps every binary-capable token to its band. Tokens that
// never act as binary operators map to PrecNone; the function is total
// over the token vocabulary.
func precedenceOf(typ lexer.TokenType) Precedence {
	switch typ {
	case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN,
		lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN, lexer.PERCENT_ASSIGN:
		return PrecAssignment
	case lexer.IF, lexer.UNLESS:
		return PrecConditional
	case lexer.COALESCE:
		return PrecNoneCoalesce
	case lexer.TO:
		return PrecRange
	case lexer.OR_OR, lexer.OR_KW:
		return PrecLogicalOr
	case lexer.AND_AND, lexer.AND_KW:
		return PrecLogicalAnd
	case lexer.EQ_EQ, lexer.NOT_EQ, lexer.LT, lexer.LT_EQ,
		lexer.GT, lexer.GT_EQ, lexer.SPACESHIP:
		return PrecComparison
	case lexer.PIPE:
		return PrecBitwiseOr
	case lexer.CARET:
		return PrecBitwiseXor
	case lexer.AMP:
		return PrecBitwiseAnd
	case lexer.SHL, lexer.SHR:
		return PrecShift
	case lexer.PLUS, lexer.MINUS,
		lexer.PLUS_WRAP, lexer.MINUS_WRAP,
		lexer.PLUS_SAT, lexer.MINUS_SAT,
		lexer.PLUS_CHECKED, lexer.MINUS_CHECKED:
		return PrecAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.STAR_WRAP, lexer.SLASH_WRAP,
		lexer.STAR_SAT, lexer.SLASH_SAT,
		lexer.STAR_CHECKED, lexer.SLASH_CHECKED:
		return PrecMultiplicative
	case lexer.POWER, lexer.POWER_WRAP, lexer.POWER_SAT:
		return PrecPower
	case lexer.LPAREN, lexer.LBRACKET, lexer.DOT, lexer.QUESTION_DOT, lexer.BANG:
		return PrecPostfix
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether a band groups right-to-left.
// Assignment and power are the only such bands.
func isRightAssociative(prec Precedence) bool {
	return prec == PrecAssignment || prec == PrecPower
}

// isChainableComparison reports whether a comparison operator may
// participate in a chained comparison. The spaceship operator never
// chains.
func isChainableComparison(typ lexer.TokenType) bool {
	switch typ {
	case lexer.EQ_EQ, lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ:
		return true
	default:
		return false
	}
}

// chainDirection classifies a chainable comparison operator: -1 for
// ascending (<, <=), +1 for descending (>, >=), 0 for neutral (==).
func chainDirection(typ lexer.TokenType) int {
	switch typ {
	case lexer.LT, lexer.LT_EQ:
		return -1
	case lexer.GT, lexer.GT_EQ:
		return 1
	default:
		return 0
	}
}
