package ast

import (
	"strings"

	"github.com/razorforge-lang/razorforge/core/source"
)

// Block is a sequence of statements delimited by INDENT/DEDENT.
type Block struct {
	Statements []Statement
	Pos        source.Location
}

func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
func (b *Block) Loc() source.Location { return b.Pos }
func (b *Block) stmtNode()            {}

// ExpressionStmt wraps an expression used as a statement.
type ExpressionStmt struct {
	Expr Expression
	Pos  source.Location
}

func (s *ExpressionStmt) String() string       { return s.Expr.String() }
func (s *ExpressionStmt) Loc() source.Location { return s.Pos }
func (s *ExpressionStmt) stmtNode()            {}

// BindingKind distinguishes var/let/preset bindings.
type BindingKind int

const (
	BindVar    BindingKind = iota // mutable
	BindLet                       // immutable
	BindPreset                    // compile-time constant
)

func (k BindingKind) String() string {
	switch k {
	case BindLet:
		return "let"
	case BindPreset:
		return "preset"
	default:
		return "var"
	}
}

// VarDecl is a var/let/preset binding. It is valid both as a statement and
// as a top-level declaration.
type VarDecl struct {
	Kind       BindingKind
	Name       string
	Type       *TypeRef
	Init       Expression
	Visibility Visibility
	Pos        source.Location
}

func (d *VarDecl) String() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String() + " " + d.Name)
	if d.Type != nil {
		sb.WriteString(": " + d.Type.String())
	}
	if d.Init != nil {
		sb.WriteString(" = " + d.Init.String())
	}
	return sb.String()
}
func (d *VarDecl) Loc() source.Location { return d.Pos }
func (d *VarDecl) stmtNode()            {}
func (d *VarDecl) declNode()            {}

// ReturnStmt is return [expr].
type ReturnStmt struct {
	Value Expression // nil for a bare return
	Pos   source.Location
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}
func (s *ReturnStmt) Loc() source.Location { return s.Pos }
func (s *ReturnStmt) stmtNode()            {}

// ThrowStmt raises a failure value.
type ThrowStmt struct {
	Value Expression
	Pos   source.Location
}

func (s *ThrowStmt) String() string       { return "throw " + s.Value.String() }
func (s *ThrowStmt) Loc() source.Location { return s.Pos }
func (s *ThrowStmt) stmtNode()            {}

// AbsentStmt is the placeholder body marker.
type AbsentStmt struct {
	Pos source.Location
}

func (s *AbsentStmt) String() string       { return "absent" }
func (s *AbsentStmt) Loc() source.Location { return s.Pos }
func (s *AbsentStmt) stmtNode()            {}

// BreakStmt exits the innermost loop.
type BreakStmt struct {
	Pos source.Location
}

func (s *BreakStmt) String() string       { return "break" }
func (s *BreakStmt) Loc() source.Location { return s.Pos }
func (s *BreakStmt) stmtNode()            {}

// ContinueStmt advances the innermost loop.
type ContinueStmt struct {
	Pos source.Location
}

func (s *ContinueStmt) String() string       { return "continue" }
func (s *ContinueStmt) Loc() source.Location { return s.Pos }
func (s *ContinueStmt) stmtNode()            {}

// IfStmt covers both if and unless (a negated if).
type IfStmt struct {
	Cond   Expression
	Negate bool // true for unless
	Then   *Block
	Else   Statement // *Block, *IfStmt, or nil
	Pos    source.Location
}

func (s *IfStmt) String() string {
	kw := "if"
	if s.Negate {
		kw = "unless"
	}
	out := kw + " " + s.Cond.String() + " " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}
func (s *IfStmt) Loc() source.Location { return s.Pos }
func (s *IfStmt) stmtNode()            {}

// WhileStmt is a while loop.
type WhileStmt struct {
	Cond Expression
	Body *Block
	Pos  source.Location
}

func (s *WhileStmt) String() string       { return "while " + s.Cond.String() + " " + s.Body.String() }
func (s *WhileStmt) Loc() source.Location { return s.Pos }
func (s *WhileStmt) stmtNode()            {}

// ForStmt is for name in iterable.
type ForStmt struct {
	Var      string
	Iterable Expression
	Body     *Block
	Pos      source.Location
}

func (s *ForStmt) String() string {
	return "for " + s.Var + " in " + s.Iterable.String() + " " + s.Body.String()
}
func (s *ForStmt) Loc() source.Location { return s.Pos }
func (s *ForStmt) stmtNode()            {}

// WhenClause is one `is pattern:` arm of a when statement.
type WhenClause struct {
	Pattern Expression
	Body    *Block
	Pos     source.Location
}

func (c WhenClause) String() string { return "is " + c.Pattern.String() + " " + c.Body.String() }

// WhenStmt is the pattern-match statement.
type WhenStmt struct {
	Subject Expression
	Clauses []WhenClause
	Else    *Block // else arm, nil if absent
	Pos     source.Location
}

func (s *WhenStmt) String() string {
	var sb strings.Builder
	sb.WriteString("when " + s.Subject.String() + " { ")
	for i, c := range s.Clauses {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(c.String())
	}
	if s.Else != nil {
		sb.WriteString("; else " + s.Else.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (s *WhenStmt) Loc() source.Location { return s.Pos }
func (s *WhenStmt) stmtNode()            {}

// RoutineDecl is a routine declaration, or a bodiless signature inside a
// protocol.
type RoutineDecl struct {
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType *TypeRef
	Body       *Block // nil for protocol signatures
	Visibility Visibility
	Pos        source.Location
}

func (d *RoutineDecl) String() string {
	var sb strings.Builder
	sb.WriteString("routine " + d.Name)
	if len(d.TypeParams) > 0 {
		sb.WriteString("<" + strings.Join(d.TypeParams, ", ") + ">")
	}
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	sb.WriteString("(" + strings.Join(parts, ", ") + ")")
	if d.ReturnType != nil {
		sb.WriteString(" -> " + d.ReturnType.String())
	}
	if d.Body != nil {
		sb.WriteString(" " + d.Body.String())
	}
	return sb.String()
}
func (d *RoutineDecl) Loc() source.Location { return d.Pos }
func (d *RoutineDecl) declNode()            {}

// FieldDecl is a data member inside an entity or record body. GetVis/SetVis
// carry the accessor-split visibility (RazorForge public(set) spelling);
// SetVis is VisUnspecified when no split was written.
type FieldDecl struct {
	Name   string
	Type   *TypeRef
	Init   Expression
	GetVis Visibility
	SetVis Visibility
	Pos    source.Location
}

func (d *FieldDecl) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	if d.Type != nil {
		sb.WriteString(": " + d.Type.String())
	}
	if d.Init != nil {
		sb.WriteString(" = " + d.Init.String())
	}
	return sb.String()
}
func (d *FieldDecl) Loc() source.Location { return d.Pos }
func (d *FieldDecl) declNode()            {}

// TypeDeclKind distinguishes the nominal type declaration forms.
type TypeDeclKind int

const (
	DeclEntity   TypeDeclKind = iota // reference semantics
	DeclRecord                       // value semantics
	DeclProtocol                     // behavioral contract
)

func (k TypeDeclKind) String() string {
	switch k {
	case DeclRecord:
		return "record"
	case DeclProtocol:
		return "protocol"
	default:
		return "entity"
	}
}

// TypeDecl is an entity, record, or protocol declaration. Members hold
// fields and routines in source order; protocols hold bodiless routines.
type TypeDecl struct {
	Kind       TypeDeclKind
	Name       string
	TypeParams []string
	Members    []Declaration
	Visibility Visibility
	Pos        source.Location
}

func (d *TypeDecl) String() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String() + " " + d.Name)
	if len(d.TypeParams) > 0 {
		sb.WriteString("<" + strings.Join(d.TypeParams, ", ") + ">")
	}
	sb.WriteString(" { ")
	for i, m := range d.Members {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(m.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (d *TypeDecl) Loc() source.Location { return d.Pos }
func (d *TypeDecl) declNode()            {}

// ChoiceCase is one case of a choice/variant declaration, with an optional
// payload type list.
type ChoiceCase struct {
	Name    string
	Payload []TypeRef
	Pos     source.Location
}

func (c ChoiceCase) String() string {
	if len(c.Payload) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Payload))
	for i, t := range c.Payload {
		parts[i] = t.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ChoiceDecl is a choice (RazorForge) or variant (Cake) sum-type
// declaration.
type ChoiceDecl struct {
	Name       string
	TypeParams []string
	Cases      []ChoiceCase
	Visibility Visibility
	Pos        source.Location
}

func (d *ChoiceDecl) String() string {
	var sb strings.Builder
	sb.WriteString("choice " + d.Name)
	if len(d.TypeParams) > 0 {
		sb.WriteString("<" + strings.Join(d.TypeParams, ", ") + ">")
	}
	sb.WriteString(" { ")
	for i, c := range d.Cases {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (d *ChoiceDecl) Loc() source.Location { return d.Pos }
func (d *ChoiceDecl) declNode()            {}

// ImportDecl is a dotted-path import.
type ImportDecl struct {
	Path []string
	Pos  source.Location
}

func (d *ImportDecl) String() string       { return "import " + strings.Join(d.Path, ".") }
func (d *ImportDecl) Loc() source.Location { return d.Pos }
func (d *ImportDecl) declNode()            {}

// File is the result of parsing one source file: the declarations that
// parsed successfully, in order.
type File struct {
	Name         string
	Declarations []Declaration
}

func (f *File) String() string {
	parts := make([]string, len(f.Declarations))
	for i, d := range f.Declarations {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n")
}
