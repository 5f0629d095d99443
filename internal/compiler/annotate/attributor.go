package annotate

import (
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// AttributeAnnotation attributes an annotation tree as a declaration
// annotation against the expected annotation supertype, returning the
// resulting compound. Attribution is idempotent: a tree that already
// carries a declaration compound is returned as cached.
func (a *Annotator) AttributeAnnotation(tree *ast.AnnotationExpr, expected types.Type, env *Env) *types.Compound {
	if tree.Attribute != nil && tree.Type != nil {
		if c, ok := tree.Attribute.(*types.Compound); ok {
			return c
		}
	}

	pairs := a.attributeAnnotationValues(tree, expected, env)
	c := &types.Compound{
		Typ:      tree.Type,
		Values:   pairs,
		ForType:  false,
		Position: types.PositionUnknown,
	}
	tree.Attribute = c
	return c
}

// AttributeTypeAnnotation attributes an annotation tree as a type
// annotation. A cached declaration compound is not reused; the tree is
// re-attributed and the cache upgraded to the type compound.
func (a *Annotator) AttributeTypeAnnotation(tree *ast.AnnotationExpr, expected types.Type, env *Env) *types.Compound {
	if tree.Attribute != nil && tree.Type != nil {
		if c, ok := tree.Attribute.(*types.Compound); ok && c.ForType {
			return c
		}
	}

	pairs := a.attributeAnnotationValues(tree, expected, env)
	c := &types.Compound{
		Typ:      tree.Type,
		Values:   pairs,
		ForType:  true,
		Position: types.PositionUnknown,
	}
	tree.Attribute = c
	return c
}

// attributeAnnotationValues resolves the annotation's type reference, checks
// it against the expected supertype, and attributes each argument into an
// element/value pair.
func (a *Annotator) attributeAnnotationValues(tree *ast.AnnotationExpr, expected types.Type, env *Env) []types.ElementValue {
	isError := false

	if tree.AnnoType == nil {
		tree.AnnoType = a.exprs.AttribType(tree.Location(), tree.Name, env)
	}
	tree.Type = a.chk.Check(tree.Location(), tree.AnnoType, expected)

	if !types.IsAnnotationType(tree.Type) {
		if !tree.Type.IsErroneous() {
			a.log.Error(errNotAnnotationType(tree.Location(), tree.Type.String()))
		}
		isError = true
	}

	// Single-argument shorthand: @Foo(expr) means @Foo(value=expr).
	args := tree.Args
	if len(args) == 1 {
		if _, isAssign := args[0].(*ast.AssignExpr); !isAssign {
			args = []ast.ExprNode{&ast.AssignExpr{
				Lhs: &ast.IdentifierExpr{Name: "value", Loc: args[0].Location()},
				Rhs: args[0],
				Loc: args[0].Location(),
			}}
			tree.Args = args
		}
	}

	var pairs []types.ElementValue
	for _, arg := range args {
		if pair, ok := a.attributeNameValuePair(arg, tree.Type, isError, env); ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// attributeNameValuePair attributes one name=value annotation argument. It
// returns ok=false when the pair cannot contribute to the compound, after
// attributing what it can for recovery.
func (a *Annotator) attributeNameValuePair(arg ast.ExprNode, annoType types.Type, badAnnotation bool, env *Env) (types.ElementValue, bool) {
	assign, ok := arg.(*ast.AssignExpr)
	if !ok {
		a.log.Error(errMalformedArgument(arg.Location()))
		a.AttributeValue(a.syms.ErrType, arg, env)
		return types.ElementValue{}, false
	}
	left, ok := assign.Lhs.(*ast.IdentifierExpr)
	if !ok {
		a.log.Error(errMalformedArgument(assign.Lhs.Location()))
		a.AttributeValue(a.syms.ErrType, assign.Rhs, env)
		return types.ElementValue{}, false
	}

	method := a.resolver.ResolveElement(left.Location(), env, annoType, left.Name)
	if method.Owner != annoType.Symbol() && !badAnnotation {
		a.log.Error(errUnknownElement(left.Location(), left.Name, annoType.String()))
	}

	resultType := method.Return
	value := a.AttributeValue(resultType, assign.Rhs, env)
	assign.Type = resultType

	if resultType.IsErroneous() {
		return types.ElementValue{}, false
	}
	return types.ElementValue{Element: method, Value: value}, true
}
