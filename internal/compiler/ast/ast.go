// Package ast defines the annotation-expression tree nodes consumed by the
// Vesper annotation engine, along with source locations for diagnostics.
package ast

// SourceLocation tracks the position of an AST node in source code
type SourceLocation struct {
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Node is the base interface for all AST nodes
type Node interface {
	Location() SourceLocation
	node()
}

// ExprNode is the interface for all expression nodes
type ExprNode interface {
	Node
	exprNode()
}

// TypeRef is a source reference to a type by name
type TypeRef struct {
	Name string
	Loc  SourceLocation
}

func (t *TypeRef) node() {}

// Location returns the source location of the type reference.
func (t *TypeRef) Location() SourceLocation {
	return t.Loc
}
