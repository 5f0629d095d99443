package check

import (
	"github.com/vesper-lang/vesper/internal/compiler/annotate"
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Attr attributes the expression forms that can appear inside annotation
// arguments: literals, type names, static member selections, and class
// literals.
type Attr struct {
	syms *types.Symtab
	log  diag.Sink
}

// NewAttr creates an expression attributor reporting through the given sink.
func NewAttr(syms *types.Symtab, log diag.Sink) *Attr {
	return &Attr{syms: syms, log: log}
}

// AttribType resolves a type name in the global scope. Unknown names are
// reported and downgraded to an error type preserving the attempted name.
func (at *Attr) AttribType(pos ast.SourceLocation, name string, env *annotate.Env) types.Type {
	if ts := at.syms.Lookup(name); ts != nil {
		return ts.Type
	}
	at.log.Error(errUnknownType(pos, name))
	return at.syms.CreateErrorType(name)
}

// AttribExpr attributes an expression against an expected type and returns
// its type. Constant literals yield constant-carrying primitive types.
func (at *Attr) AttribExpr(expr ast.ExprNode, env *annotate.Env, expected types.Type) types.Type {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return at.literalType(e)

	case *ast.IdentifierExpr:
		if ts := at.syms.Lookup(e.Name); ts != nil {
			return ts.Type
		}
		at.log.Error(errUnknownType(e.Location(), e.Name))
		return at.syms.CreateErrorType(e.Name)

	case *ast.SelectExpr:
		if m := at.lookupMember(e); m != nil {
			return m.BaseSymbol().Type
		}
		at.log.Error(errCannotResolveMember(e.Location(), e.Name, qualifierName(e)))
		return at.syms.CreateErrorType(e.Name)

	case *ast.ClassLitExpr:
		t := at.AttribType(e.Location(), e.TypeName, env)
		if t.IsErroneous() {
			return t
		}
		e.RefType = t
		return at.syms.ClassType

	default:
		at.log.Error(errUnknownType(expr.Location(), "<expression>"))
		return at.syms.ErrType
	}
}

// SymbolOf returns the static member a selection denotes, or nil.
func (at *Attr) SymbolOf(expr ast.ExprNode) types.Member {
	sel, ok := expr.(*ast.SelectExpr)
	if !ok {
		return nil
	}
	return at.lookupMember(sel)
}

// lookupMember resolves Type.Member without reporting.
func (at *Attr) lookupMember(sel *ast.SelectExpr) types.Member {
	qual, ok := sel.X.(*ast.IdentifierExpr)
	if !ok {
		return nil
	}
	ts := at.syms.Lookup(qual.Name)
	if ts == nil {
		return nil
	}
	_ = ts.Complete()
	for _, m := range ts.MembersByName(sel.Name) {
		return m
	}
	return nil
}

func (at *Attr) literalType(lit *ast.LiteralExpr) types.Type {
	switch v := lit.Value.(type) {
	case int:
		return types.NewConstType(types.TypeInt, v)
	case int64:
		return types.NewConstType(types.TypeInt, int(v))
	case float64:
		return types.NewConstType(types.TypeFloat, v)
	case bool:
		return types.NewConstType(types.TypeBool, v)
	case string:
		return types.NewConstType(types.TypeString, v)
	default:
		return at.syms.ErrType
	}
}

func qualifierName(sel *ast.SelectExpr) string {
	if id, ok := sel.X.(*ast.IdentifierExpr); ok {
		return id.Name
	}
	return "<expression>"
}
