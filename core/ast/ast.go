// Package ast defines the abstract syntax tree shared by the RazorForge and
// Cake dialects. The parser constructs these nodes; later stages treat them
// as data. Every node carries the location of the token that began it, and a
// canonical String form used by tooling and tests.
package ast

import "github.com/razorforge-lang/razorforge/core/source"

// Node represents any node in the AST.
type Node interface {
	String() string
	Loc() source.Location
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node executed for effect inside a body.
type Statement interface {
	Node
	stmtNode()
}

// Declaration is a top-level or member-level named construct.
type Declaration interface {
	Node
	declNode()
}

// BinaryOp enumerates the binary operator vocabulary, including the
// wrap/saturating/checked spellings that pick an overflow policy at the
// operation site.
type BinaryOp int

const (
	OpInvalid BinaryOp = iota

	// Plain arithmetic
	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /
	OpMod // %
	OpPow // **

	// Wrapping arithmetic (modular on overflow)
	OpAddWrap // +%
	OpSubWrap // -%
	OpMulWrap // *%
	OpDivWrap // /%
	OpPowWrap // **%

	// Saturating arithmetic (clamps at the type bounds)
	OpAddSat // +|
	OpSubSat // -|
	OpMulSat // *|
	OpDivSat // /|
	OpPowSat // **|

	// Checked arithmetic (yields a recoverable failure on overflow)
	OpAddChecked // +?
	OpSubChecked // -?
	OpMulChecked // *?
	OpDivChecked // /?

	// Comparison
	OpEq        // ==
	OpNe        // !=
	OpLt        // <
	OpLe        // <=
	OpGt        // >
	OpGe        // >=
	OpSpaceship // <=>

	// Logical
	OpAnd // && / and
	OpOr  // || / or

	// Bitwise
	OpBitAnd // &
	OpBitOr  // |
	OpBitXor // ^
	OpShl    // <<
	OpShr    // >>

	// None handling
	OpNoneCoalesce // ??
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpPow: "**",
	OpAddWrap: "+%", OpSubWrap: "-%", OpMulWrap: "*%", OpDivWrap: "/%", OpPowWrap: "**%",
	OpAddSat: "+|", OpSubSat: "-|", OpMulSat: "*|", OpDivSat: "/|", OpPowSat: "**|",
	OpAddChecked: "+?", OpSubChecked: "-?", OpMulChecked: "*?", OpDivChecked: "/?",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=", OpSpaceship: "<=>",
	OpAnd: "&&", OpOr: "||",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpShl: "<<", OpShr: ">>",
	OpNoneCoalesce: "??",
}

// Symbol returns the operator's surface spelling.
func (op BinaryOp) Symbol() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return "<invalid>"
}

// UnaryOp enumerates prefix operators.
type UnaryOp int

const (
	OpUnaryInvalid UnaryOp = iota
	OpNeg                  // -x
	OpPos                  // +x
	OpNot                  // !x / not x
	OpBitNot               // ~x
)

// Symbol returns the operator's surface spelling.
func (op UnaryOp) Symbol() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPos:
		return "+"
	case OpNot:
		return "!"
	case OpBitNot:
		return "~"
	default:
		return "<invalid>"
	}
}

// AssignOp enumerates assignment operators.
type AssignOp int

const (
	OpAssign    AssignOp = iota // =
	OpAddAssign                 // +=
	OpSubAssign                 // -=
	OpMulAssign                 // *=
	OpDivAssign                 // /=
	OpModAssign                 // %=
)

// Symbol returns the operator's surface spelling.
func (op AssignOp) Symbol() string {
	switch op {
	case OpAddAssign:
		return "+="
	case OpSubAssign:
		return "-="
	case OpMulAssign:
		return "*="
	case OpDivAssign:
		return "/="
	case OpModAssign:
		return "%="
	default:
		return "="
	}
}

// Visibility is a member/declaration access level. The zero value means
// "unspecified"; the parser substitutes the dialect default.
type Visibility int

const (
	VisUnspecified Visibility = iota
	VisPublic
	VisPrivate
	VisFamily // public(family) - visible to the type and its subtypes
	VisModule // public(module) - visible within the declaring module
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisPrivate:
		return "private"
	case VisFamily:
		return "public(family)"
	case VisModule:
		return "public(module)"
	default:
		return "unspecified"
	}
}
