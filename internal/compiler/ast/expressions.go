package ast

import "github.com/vesper-lang/vesper/internal/compiler/types"

// LiteralExpr represents a literal value (string, int, float, bool)
type LiteralExpr struct {
	Value interface{} // The actual value
	Loc   SourceLocation
}

func (l *LiteralExpr) node()     {}
func (l *LiteralExpr) exprNode() {}

func (l *LiteralExpr) Location() SourceLocation {
	return l.Loc
}

// IdentifierExpr represents a simple name reference
type IdentifierExpr struct {
	Name string
	Loc  SourceLocation
}

func (i *IdentifierExpr) node()     {}
func (i *IdentifierExpr) exprNode() {}

func (i *IdentifierExpr) Location() SourceLocation {
	return i.Loc
}

// SelectExpr represents qualified static access (Color.RED)
type SelectExpr struct {
	X    ExprNode // The qualifier
	Name string   // Selected member name
	Loc  SourceLocation
}

func (s *SelectExpr) node()     {}
func (s *SelectExpr) exprNode() {}

func (s *SelectExpr) Location() SourceLocation {
	return s.Loc
}

// AssignExpr represents a name=value annotation argument
type AssignExpr struct {
	Lhs  ExprNode
	Rhs  ExprNode
	Type types.Type // element type the right-hand side was attributed against
	Loc  SourceLocation
}

func (a *AssignExpr) node()     {}
func (a *AssignExpr) exprNode() {}

func (a *AssignExpr) Location() SourceLocation {
	return a.Loc
}

// ArrayExpr represents an array literal ({1, 2, 3}). ElemType is non-nil for
// an explicit new T[]{...} form, which annotations reject.
type ArrayExpr struct {
	ElemType *TypeRef
	Elems    []ExprNode
	Type     types.Type // array type assigned during attribution
	Loc      SourceLocation
}

func (a *ArrayExpr) node()     {}
func (a *ArrayExpr) exprNode() {}

func (a *ArrayExpr) Location() SourceLocation {
	return a.Loc
}

// ClassLitExpr represents a class literal (T.class)
type ClassLitExpr struct {
	TypeName string
	RefType  types.Type // type the literal refers to, set during attribution
	Loc      SourceLocation
}

func (c *ClassLitExpr) node()     {}
func (c *ClassLitExpr) exprNode() {}

func (c *ClassLitExpr) Location() SourceLocation {
	return c.Loc
}

// AnnotationExpr represents an annotation literal (@Foo(value=1)). AnnoType,
// Type, and Attribute cache the results of attribution so re-entrant
// attribution from nested completers is idempotent.
type AnnotationExpr struct {
	Name string
	Args []ExprNode

	AnnoType  types.Type      // resolved type of the annotation-type reference
	Type      types.Type      // checked annotation type
	Attribute types.Attribute // attributed compound, once computed

	Loc SourceLocation
}

func (a *AnnotationExpr) node()     {}
func (a *AnnotationExpr) exprNode() {}

func (a *AnnotationExpr) Location() SourceLocation {
	return a.Loc
}
