package annotate

import (
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// AttributeValue attributes an annotation element value expression against
// the element's expected type and returns the resulting attribute. Trees
// that cannot yield a usable value are still attributed for recovery and
// produce an error attribute.
func (a *Annotator) AttributeValue(expected types.Type, tree ast.ExprNode, env *Env) types.Attribute {
	if tsym := expected.Symbol(); tsym != nil {
		if err := tsym.Complete(); err != nil {
			a.log.Error(errCannotResolve(tree.Location(), tsym.Name, err))
			expected = a.syms.ErrType
		}
	}

	if types.IsArray(expected) {
		return a.annotationArrayValue(expected, tree, env)
	}

	// error recovery
	if na, ok := tree.(*ast.ArrayExpr); ok {
		if !expected.IsErroneous() {
			a.log.Error(errValueNotAllowable(tree.Location()))
		}
		if na.ElemType != nil {
			a.log.Error(errExplicitElementType(na.ElemType.Loc))
		}
		for _, elem := range na.Elems {
			a.AttributeValue(a.syms.ErrType, elem, env)
		}
		return &types.Error{Typ: a.syms.ErrType}
	}

	if types.IsAnnotationType(expected) {
		if anno, ok := tree.(*ast.AnnotationExpr); ok {
			return a.AttributeAnnotation(anno, expected, env)
		}
		a.log.Error(errValueMustBeAnnotation(tree.Location()))
		expected = a.syms.ErrType
	}

	// error recovery
	if anno, ok := tree.(*ast.AnnotationExpr); ok {
		if !expected.IsErroneous() {
			a.log.Error(errAnnotationNotValidForType(tree.Location(), expected.String()))
		}
		a.AttributeAnnotation(anno, a.syms.ErrType, env)
		return &types.Error{Typ: anno.AnnoType}
	}

	if types.IsPrimitive(expected) {
		return a.annotationPrimitiveValue(expected, tree, env)
	}

	if expected.Symbol() == a.syms.ClassSym {
		return a.annotationClassValue(expected, tree, env)
	}

	if types.IsEnumType(expected) {
		return a.annotationEnumValue(expected, tree, env)
	}

	// error recovery
	if !expected.IsErroneous() {
		a.log.Error(errValueNotAllowable(tree.Location()))
	}
	return &types.Error{Typ: a.exprs.AttribExpr(tree, env, expected)}
}

// annotationArrayValue attributes an array-typed element value. A bare
// non-array expression is wrapped as an implicit one-element array.
func (a *Annotator) annotationArrayValue(expected types.Type, tree ast.ExprNode, env *Env) types.Attribute {
	na, ok := tree.(*ast.ArrayExpr)
	if !ok {
		na = &ast.ArrayExpr{
			Elems: []ast.ExprNode{tree},
			Loc:   tree.Location(),
		}
	}
	if na.ElemType != nil {
		a.log.Error(errExplicitElementType(na.ElemType.Loc))
	}

	elemType := types.ElemType(expected)
	buf := make([]types.Attribute, 0, len(na.Elems))
	for _, elem := range na.Elems {
		buf = append(buf, a.AttributeValue(elemType, elem, env))
	}
	na.Type = expected
	return &types.Array{Typ: expected, Values: buf}
}

// annotationPrimitiveValue attributes a primitive or string element value,
// which must be a compile-time constant.
func (a *Annotator) annotationPrimitiveValue(expected types.Type, tree ast.ExprNode, env *Env) types.Attribute {
	result := a.exprs.AttribExpr(tree, env, expected)
	if result.IsErroneous() {
		return &types.Error{Typ: types.OriginalType(result)}
	}
	cv := types.ConstValue(result)
	if cv == nil {
		a.log.Error(errNonConstantValue(tree.Location()))
		return &types.Error{Typ: expected}
	}
	coerced, ok := a.folder.Coerce(cv, expected)
	if !ok {
		a.log.Error(errValueNotAllowable(tree.Location()))
		return &types.Error{Typ: expected}
	}
	return &types.Constant{Typ: expected, Value: coerced}
}

// annotationClassValue attributes a class-typed element value, which must be
// a class literal. An unresolved class literal keeps its name so that later
// phases can still report or repair it.
func (a *Annotator) annotationClassValue(expected types.Type, tree ast.ExprNode, env *Env) types.Attribute {
	result := a.exprs.AttribExpr(tree, env, expected)
	cl, isLit := tree.(*ast.ClassLitExpr)
	if result.IsErroneous() {
		if isLit {
			return &types.UnresolvedClass{Typ: expected, ClassName: cl.TypeName}
		}
		return &types.Error{Typ: types.OriginalType(result)}
	}
	if !isLit {
		a.log.Error(errNotClassLiteral(tree.Location()))
		return &types.Error{Typ: a.syms.ErrType}
	}
	return &types.Class{Typ: a.syms.ClassType, Value: cl.RefType}
}

// annotationEnumValue attributes an enum-typed element value, which must
// denote an enum constant.
func (a *Annotator) annotationEnumValue(expected types.Type, tree ast.ExprNode, env *Env) types.Attribute {
	result := a.exprs.AttribExpr(tree, env, expected)
	sym := a.exprs.SymbolOf(tree)
	vs, isVar := sym.(*types.VarSymbol)
	if sym == nil || result.IsErroneous() || !isVar || vs.Flags&types.FlagEnum == 0 {
		a.log.Error(errNotEnumConstant(tree.Location()))
		return &types.Error{Typ: types.OriginalType(result)}
	}
	return &types.Enum{Typ: expected, Const: vs}
}
