package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/razorforge-lang/razorforge/core/source"
)

// TypeRef is a syntactic reference to a type, possibly with generic
// arguments. The parser performs no semantic resolution on it.
type TypeRef struct {
	Name string
	Args []TypeRef
	Pos  source.Location
}

func (t TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// Param is a routine or lambda parameter. The type annotation is optional
// for lambda parameters.
type Param struct {
	Name string
	Type *TypeRef
	Pos  source.Location
}

func (p Param) String() string {
	if p.Type == nil {
		return p.Name
	}
	return p.Name + ": " + p.Type.String()
}

// Identifier is a bare name reference. The self-reference keyword is
// normalized to an Identifier named "self".
type Identifier struct {
	Name string
	Pos  source.Location
}

func (e *Identifier) String() string       { return e.Name }
func (e *Identifier) Loc() source.Location { return e.Pos }
func (e *Identifier) exprNode()            {}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
	Pos   source.Location
}

func (e *BooleanLiteral) String() string       { return strconv.FormatBool(e.Value) }
func (e *BooleanLiteral) Loc() source.Location { return e.Pos }
func (e *BooleanLiteral) exprNode()            {}

// NoneLiteral is the absent-value literal.
type NoneLiteral struct {
	Pos source.Location
}

func (e *NoneLiteral) String() string       { return "none" }
func (e *NoneLiteral) Loc() source.Location { return e.Pos }
func (e *NoneLiteral) exprNode()            {}

// IntegerLiteral is a fixed-width integer literal whose value was parsed
// eagerly. Width is the suffix ("s32", "u8", "saddr", ...) or empty for an
// unsuffixed literal.
type IntegerLiteral struct {
	Value uint64
	Width string
	Pos   source.Location
}

func (e *IntegerLiteral) String() string       { return strconv.FormatUint(e.Value, 10) + e.Width }
func (e *IntegerLiteral) Loc() source.Location { return e.Pos }
func (e *IntegerLiteral) exprNode()            {}

// FloatLiteral is a fixed-width floating-point literal. Width is the suffix
// ("f32", "f64", ...) or empty.
type FloatLiteral struct {
	Value float64
	Width string
	Pos   source.Location
}

func (e *FloatLiteral) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64) + e.Width
}
func (e *FloatLiteral) Loc() source.Location { return e.Pos }
func (e *FloatLiteral) exprNode()            {}

// DeferredNumberLiteral is an arbitrary-precision or decimal-family literal.
// The parser strips underscores and the suffix but leaves value
// interpretation to a later stage backed by the native numeric library.
type DeferredNumberLiteral struct {
	Text   string // Cleaned digits (base prefix preserved)
	Suffix string // "d64", "dec", "big", ...
	Pos    source.Location
}

func (e *DeferredNumberLiteral) String() string       { return e.Text + e.Suffix }
func (e *DeferredNumberLiteral) Loc() source.Location { return e.Pos }
func (e *DeferredNumberLiteral) exprNode()            {}

// StringKind distinguishes the string literal family.
type StringKind int

const (
	StringPlain StringKind = iota
	StringFormatted
	StringRaw
)

// StringLiteral is a string literal of any of the three kinds.
type StringLiteral struct {
	Value string
	Kind  StringKind
	Pos   source.Location
}

func (e *StringLiteral) String() string {
	switch e.Kind {
	case StringFormatted:
		return "f" + strconv.Quote(e.Value)
	case StringRaw:
		return "r" + strconv.Quote(e.Value)
	default:
		return strconv.Quote(e.Value)
	}
}
func (e *StringLiteral) Loc() source.Location { return e.Pos }
func (e *StringLiteral) exprNode()            {}

// CharLiteral is a character literal with escapes already decoded.
type CharLiteral struct {
	Value rune
	Pos   source.Location
}

func (e *CharLiteral) String() string       { return strconv.QuoteRune(e.Value) }
func (e *CharLiteral) Loc() source.Location { return e.Pos }
func (e *CharLiteral) exprNode()            {}

// UnitKind distinguishes unit-suffixed literals.
type UnitKind int

const (
	UnitMemory   UnitKind = iota // 100mb, 4kb
	UnitDuration                 // 30s, 5m
)

// UnitLiteral is a memory-size or duration literal. Magnitude is the leading
// digit run; Unit is the trailing suffix, interpreted later.
type UnitLiteral struct {
	Magnitude uint64
	Unit      string
	Kind      UnitKind
	Pos       source.Location
}

func (e *UnitLiteral) String() string       { return strconv.FormatUint(e.Magnitude, 10) + e.Unit }
func (e *UnitLiteral) Loc() source.Location { return e.Pos }
func (e *UnitLiteral) exprNode()            {}

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expression
	Pos     source.Location
}

func (e *UnaryExpr) String() string       { return "(" + e.Op.Symbol() + e.Operand.String() + ")" }
func (e *UnaryExpr) Loc() source.Location { return e.Pos }
func (e *UnaryExpr) exprNode()            {}

// BinaryExpr is a single binary operator application.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
	Pos   source.Location
}

func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.Symbol() + " " + e.Right.String() + ")"
}
func (e *BinaryExpr) Loc() source.Location { return e.Pos }
func (e *BinaryExpr) exprNode()            {}

// ChainedComparison holds two or more consecutive same-direction comparison
// operators over n+1 operands, e.g. a <= b < c.
type ChainedComparison struct {
	Operands []Expression
	Ops      []BinaryOp
	Pos      source.Location
}

func (e *ChainedComparison) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(e.Operands[0].String())
	for i, op := range e.Ops {
		sb.WriteString(" " + op.Symbol() + " ")
		sb.WriteString(e.Operands[i+1].String())
	}
	sb.WriteString(")")
	return sb.String()
}
func (e *ChainedComparison) Loc() source.Location { return e.Pos }
func (e *ChainedComparison) exprNode()            {}

// AssignExpr is a plain or compound assignment. Assignment folds
// right-associatively.
type AssignExpr struct {
	Op     AssignOp
	Target Expression
	Value  Expression
	Pos    source.Location
}

func (e *AssignExpr) String() string {
	return "(" + e.Target.String() + " " + e.Op.Symbol() + " " + e.Value.String() + ")"
}
func (e *AssignExpr) Loc() source.Location { return e.Pos }
func (e *AssignExpr) exprNode()            {}

// ConditionalExpr is the if-as-expression form, covering both the
// then/else spelling and the brace-block spelling.
type ConditionalExpr struct {
	Cond Expression
	Then Expression
	Else Expression
	Pos  source.Location
}

func (e *ConditionalExpr) String() string {
	return fmt.Sprintf("(if %s then %s else %s)", e.Cond, e.Then, e.Else)
}
func (e *ConditionalExpr) Loc() source.Location { return e.Pos }
func (e *ConditionalExpr) exprNode()            {}

// LambdaExpr is a lambda in either the bare-identifier or parenthesized
// parameter-list form.
type LambdaExpr struct {
	Params []Param
	Body   Expression
	Pos    source.Location
}

func (e *LambdaExpr) String() string {
	if len(e.Params) == 1 && e.Params[0].Type == nil {
		return "(" + e.Params[0].Name + " => " + e.Body.String() + ")"
	}
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.String()
	}
	return "((" + strings.Join(parts, ", ") + ") => " + e.Body.String() + ")"
}
func (e *LambdaExpr) Loc() source.Location { return e.Pos }
func (e *LambdaExpr) exprNode()            {}

// CallExpr is a call, generic call, or failable call. Failable calls are
// spelled name!(args) and may produce a recoverable failure.
type CallExpr struct {
	Callee   Expression
	TypeArgs []TypeRef
	Args     []Expression
	Failable bool
	Pos      source.Location
}

func (e *CallExpr) String() string {
	var sb strings.Builder
	sb.WriteString(e.Callee.String())
	if len(e.TypeArgs) > 0 {
		parts := make([]string, len(e.TypeArgs))
		for i, t := range e.TypeArgs {
			parts[i] = t.String()
		}
		sb.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	if e.Failable {
		sb.WriteString("!")
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	return sb.String()
}
func (e *CallExpr) Loc() source.Location { return e.Pos }
func (e *CallExpr) exprNode()            {}

// IndexExpr is receiver[index].
type IndexExpr struct {
	Receiver Expression
	Index    Expression
	Pos      source.Location
}

func (e *IndexExpr) String() string       { return e.Receiver.String() + "[" + e.Index.String() + "]" }
func (e *IndexExpr) Loc() source.Location { return e.Pos }
func (e *IndexExpr) exprNode()            {}

// MemberExpr is receiver.name. Member names may be contextual keywords.
type MemberExpr struct {
	Receiver Expression
	Member   string
	Safe     bool // true for the none-propagating ?. form
	Pos      source.Location
}

func (e *MemberExpr) String() string {
	sep := "."
	if e.Safe {
		sep = "?."
	}
	return e.Receiver.String() + sep + e.Member
}
func (e *MemberExpr) Loc() source.Location { return e.Pos }
func (e *MemberExpr) exprNode()            {}

// GenericTypeExpr is a type name applied to type arguments in expression
// position, e.g. the receiver in List<Int>.empty().
type GenericTypeExpr struct {
	Base     Expression
	TypeArgs []TypeRef
	Pos      source.Location
}

func (e *GenericTypeExpr) String() string {
	parts := make([]string, len(e.TypeArgs))
	for i, t := range e.TypeArgs {
		parts[i] = t.String()
	}
	return e.Base.String() + "<" + strings.Join(parts, ", ") + ">"
}
func (e *GenericTypeExpr) Loc() source.Location { return e.Pos }
func (e *GenericTypeExpr) exprNode()            {}

// FieldInit is one field: value pair in a struct literal.
type FieldInit struct {
	Name  string
	Value Expression
	Pos   source.Location
}

func (f FieldInit) String() string { return f.Name + ": " + f.Value.String() }

// StructLiteral is TypeName { field: value, ... }, available when the type
// name starts upper-case.
type StructLiteral struct {
	TypeName string
	TypeArgs []TypeRef
	Fields   []FieldInit
	Pos      source.Location
}

func (e *StructLiteral) String() string {
	var sb strings.Builder
	sb.WriteString(e.TypeName)
	if len(e.TypeArgs) > 0 {
		parts := make([]string, len(e.TypeArgs))
		for i, t := range e.TypeArgs {
			parts[i] = t.String()
		}
		sb.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	sb.WriteString(" { ")
	for i, f := range e.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (e *StructLiteral) Loc() source.Location { return e.Pos }
func (e *StructLiteral) exprNode()            {}

// ListLiteral is [a, b, c].
type ListLiteral struct {
	Elements []Expression
	Pos      source.Location
}

func (e *ListLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (e *ListLiteral) Loc() source.Location { return e.Pos }
func (e *ListLiteral) exprNode()            {}

// SetLiteral is {a, b, c}.
type SetLiteral struct {
	Elements []Expression
	Pos      source.Location
}

func (e *SetLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (e *SetLiteral) Loc() source.Location { return e.Pos }
func (e *SetLiteral) exprNode()            {}

// MapEntry is one key: value pair in a map literal.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLiteral is {k: v, ...}. An empty {} parses as an empty map.
type MapLiteral struct {
	Entries []MapEntry
	Pos     source.Location
}

func (e *MapLiteral) String() string {
	parts := make([]string, len(e.Entries))
	for i, en := range e.Entries {
		parts[i] = en.Key.String() + ": " + en.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (e *MapLiteral) Loc() source.Location { return e.Pos }
func (e *MapLiteral) exprNode()            {}

// IntrinsicCall is @intrinsic.op<T>(args), routed to a compiler intrinsic.
type IntrinsicCall struct {
	Op       string
	TypeArgs []TypeRef
	Args     []Expression
	Pos      source.Location
}

func (e *IntrinsicCall) String() string {
	var sb strings.Builder
	sb.WriteString("@intrinsic." + e.Op)
	if len(e.TypeArgs) > 0 {
		parts := make([]string, len(e.TypeArgs))
		for i, t := range e.TypeArgs {
			parts[i] = t.String()
		}
		sb.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	return sb.String()
}
func (e *IntrinsicCall) Loc() source.Location { return e.Pos }
func (e *IntrinsicCall) exprNode()            {}

// NativeCall is @native.function(args), routed to a foreign function.
type NativeCall struct {
	Name string
	Args []Expression
	Pos  source.Location
}

func (e *NativeCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return "@native." + e.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (e *NativeCall) Loc() source.Location { return e.Pos }
func (e *NativeCall) exprNode()            {}
