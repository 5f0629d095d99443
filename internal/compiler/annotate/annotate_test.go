package annotate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesper-lang/vesper/internal/compiler/annotate"
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/check"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// fixture wires an annotator to the real attribution collaborators.
type fixture struct {
	syms *types.Symtab
	log  *diag.Log
	an   *annotate.Annotator
	env  *annotate.Env
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	syms := types.NewSymtab()
	log := diag.NewLog()
	an := annotate.New(annotate.Config{
		Symtab:    syms,
		Reporter:  log,
		Checker:   check.NewChecker(syms, log),
		Folder:    check.NewFolder(),
		Resolver:  check.NewResolver(syms),
		Exprs:     check.NewAttr(syms, log),
		Validator: check.NewValidator(syms, log),
	})
	return &fixture{
		syms: syms,
		log:  log,
		an:   an,
		env:  &annotate.Env{SourceFile: "test.vsp"},
	}
}

func (f *fixture) declareAnnotation(name string, elems ...*types.MethodSymbol) *types.TypeSymbol {
	ts := types.NewTypeSymbol(name, types.FlagAnnotation)
	for _, el := range elems {
		ts.Enter(el)
	}
	f.syms.Enter(ts)
	return ts
}

// declareRepeatable declares a repeatable annotation type and its container,
// whose value element returns an array of the repeated type.
func (f *fixture) declareRepeatable(name, containerName string) (tag, container *types.TypeSymbol) {
	tag = f.declareAnnotation(name)
	container = f.declareAnnotation(containerName,
		types.NewMethodSymbol("value", types.MakeArrayType(tag.Type)))
	f.markRepeatable(tag, container)
	return tag, container
}

func (f *fixture) markRepeatable(tag, container *types.TypeSymbol) {
	valueElem := f.syms.RepeatableSym.MembersByName("value")[0].(*types.MethodSymbol)
	tag.Metadata().SetRepeatable(&types.Compound{
		Typ: f.syms.RepeatableType,
		Values: []types.ElementValue{{
			Element: valueElem,
			Value:   &types.Class{Typ: f.syms.ClassType, Value: container.Type},
		}},
		Position: types.PositionUnknown,
	})
}

func (f *fixture) annotate(t *testing.T, s *types.Symbol, annos ...*ast.AnnotationExpr) {
	t.Helper()
	f.an.AnnotateLater(annos, f.env, s, nil)
	f.an.Flush()
}

func (f *fixture) requireNoErrors(t *testing.T) {
	t.Helper()
	require.False(t, f.log.Diagnostics().HasErrors(),
		"unexpected diagnostics:\n%s", f.log.Diagnostics().Error())
}

func loc(line int) ast.SourceLocation { return ast.SourceLocation{Line: line, Column: 1} }

func lit(v interface{}) *ast.LiteralExpr { return &ast.LiteralExpr{Value: v, Loc: loc(1)} }

func assign(name string, rhs ast.ExprNode) *ast.AssignExpr {
	return &ast.AssignExpr{
		Lhs: &ast.IdentifierExpr{Name: name, Loc: rhs.Location()},
		Rhs: rhs,
		Loc: rhs.Location(),
	}
}

func anno(name string, args ...ast.ExprNode) *ast.AnnotationExpr {
	return &ast.AnnotationExpr{Name: name, Args: args, Loc: loc(1)}
}

func sel(qual, name string) *ast.SelectExpr {
	return &ast.SelectExpr{X: &ast.IdentifierExpr{Name: qual, Loc: loc(1)}, Name: name, Loc: loc(1)}
}

func classLit(name string) *ast.ClassLitExpr {
	return &ast.ClassLitExpr{TypeName: name, Loc: loc(1)}
}

func arrayOf(elems ...ast.ExprNode) *ast.ArrayExpr {
	return &ast.ArrayExpr{Elems: elems, Loc: loc(1)}
}

func TestMarkerAnnotation(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Tag")
	s := &types.Symbol{Name: "handler"}

	f.annotate(t, s, anno("Tag"))

	f.requireNoErrors(t)
	attrs := s.DeclarationAttributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "@Tag", attrs[0].String())
	assert.False(t, attrs[0].Synthesized)
	assert.False(t, s.AnnotationsPendingCompletion())
}

func TestValueShorthand(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Named", types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "route"}

	tree := anno("Named", lit("users"))
	f.annotate(t, s, tree)

	f.requireNoErrors(t)
	attrs := s.DeclarationAttributes()
	require.Len(t, attrs, 1)

	v, ok := attrs[0].Member("value").(*types.Constant)
	require.True(t, ok, "value should attribute to a constant")
	assert.Equal(t, "users", v.Value)

	// The tree itself is rewritten to the explicit value= form.
	require.Len(t, tree.Args, 1)
	rewritten, ok := tree.Args[0].(*ast.AssignExpr)
	require.True(t, ok, "shorthand argument should be rewritten to an assignment")
	lhs := rewritten.Lhs.(*ast.IdentifierExpr)
	assert.Equal(t, "value", lhs.Name)
}

func TestAttributionIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Named", types.NewMethodSymbol("value", f.syms.StringType))

	tree := anno("Named", lit("users"))
	first := f.an.AttributeAnnotation(tree, f.syms.AnnotationType, f.env)
	second := f.an.AttributeAnnotation(tree, f.syms.AnnotationType, f.env)

	assert.Same(t, first, second, "re-attribution must return the cached compound")
	f.requireNoErrors(t)
}

func TestImplicitSingletonArray(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Routes",
		types.NewMethodSymbol("paths", types.MakeArrayType(f.syms.StringType)))
	s := &types.Symbol{Name: "svc"}

	f.annotate(t, s, anno("Routes", assign("paths", lit("/users"))))

	f.requireNoErrors(t)
	arr, ok := s.DeclarationAttributes()[0].Member("paths").(*types.Array)
	require.True(t, ok, "array element should attribute to an array")
	require.Len(t, arr.Values, 1)
	assert.Equal(t, `{"/users"}`, arr.String())
}

func TestExplicitArrayKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Routes",
		types.NewMethodSymbol("paths", types.MakeArrayType(f.syms.StringType)))
	s := &types.Symbol{Name: "svc"}

	f.annotate(t, s, anno("Routes",
		assign("paths", arrayOf(lit("/a"), lit("/b"), lit("/c")))))

	f.requireNoErrors(t)
	arr := s.DeclarationAttributes()[0].Member("paths").(*types.Array)
	got := make([]string, len(arr.Values))
	for i, v := range arr.Values {
		got[i] = v.String()
	}
	if diff := cmp.Diff([]string{`"/a"`, `"/b"`, `"/c"`}, got); diff != "" {
		t.Errorf("array values out of order (-want +got):\n%s", diff)
	}
}

func TestExplicitElementTypeRejected(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Routes",
		types.NewMethodSymbol("paths", types.MakeArrayType(f.syms.StringType)))
	s := &types.Symbol{Name: "svc"}

	arr := arrayOf(lit("/a"))
	arr.ElemType = &ast.TypeRef{Name: "string", Loc: loc(2)}
	f.annotate(t, s, anno("Routes", assign("paths", arr)))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeExplicitElementType), 1)
}

func TestIntConstantWidensToFloat(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Scale", types.NewMethodSymbol("factor", f.syms.FloatType))
	s := &types.Symbol{Name: "img"}

	f.annotate(t, s, anno("Scale", assign("factor", lit(2))))

	f.requireNoErrors(t)
	c := s.DeclarationAttributes()[0].Member("factor").(*types.Constant)
	assert.Equal(t, float64(2), c.Value)
	assert.True(t, types.IsSameType(c.Typ, f.syms.FloatType))
}

func TestNonConstantValue(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Named", types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "x"}

	// A type name attributes to a non-constant type.
	f.annotate(t, s, anno("Named", assign("value", &ast.IdentifierExpr{Name: "Class", Loc: loc(1)})))

	require.Len(t, f.log.Diagnostics().ByCode(annotate.CodeNonConstantValue), 1)
	// The element itself resolved, so the pair survives with an error value.
	_, ok := s.DeclarationAttributes()[0].Member("value").(*types.Error)
	assert.True(t, ok, "non-constant value should recover to an error attribute")
}

func TestUnknownElementDropsPair(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Named", types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Named", assign("nam", lit("users"))))

	require.Len(t, f.log.Diagnostics().ByCode(annotate.CodeUnknownElement), 1)
	attrs := s.DeclarationAttributes()
	require.Len(t, attrs, 1)
	assert.Nil(t, attrs[0].Member("nam"), "unresolved element must not enter the compound")
}

func TestMalformedArgument(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Pair",
		types.NewMethodSymbol("a", f.syms.IntType),
		types.NewMethodSymbol("b", f.syms.IntType))
	s := &types.Symbol{Name: "x"}

	// Two positional arguments: no shorthand applies, both are malformed.
	f.annotate(t, s, anno("Pair", lit(1), lit(2)))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeMalformedArgument), 2)
}

func TestBadArgumentDoesNotSuppressSiblings(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Pair",
		types.NewMethodSymbol("a", f.syms.IntType),
		types.NewMethodSymbol("b", f.syms.IntType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Pair",
		assign("a", lit("not an int")),
		assign("b", lit(2))))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeValueNotAllowable), 1)
	b, ok := s.DeclarationAttributes()[0].Member("b").(*types.Constant)
	require.True(t, ok, "a bad sibling must not drop a good pair")
	assert.Equal(t, 2, b.Value)
}

func TestNonAnnotationTypeRejected(t *testing.T) {
	f := newFixture(t)
	color := types.NewTypeSymbol("Color", types.FlagEnum)
	f.syms.Enter(color)
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Color"))

	assert.Len(t, f.log.Diagnostics().ByCode(check.CodeTypeMismatch), 1)
	require.Len(t, s.DeclarationAttributes(), 1)
	assert.True(t, s.DeclarationAttributes()[0].Typ.IsErroneous())
}

func TestNonAnnotationTypeWithErroneousExpected(t *testing.T) {
	f := newFixture(t)
	color := types.NewTypeSymbol("Color", types.FlagEnum)
	f.syms.Enter(color)

	attr := f.an.AttributeValue(f.syms.ErrType, anno("Color"), f.env)

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeNotAnnotationType), 1)
	_, ok := attr.(*types.Error)
	assert.True(t, ok)
}

func TestEnumValue(t *testing.T) {
	f := newFixture(t)
	color := types.NewTypeSymbol("Color", types.FlagEnum)
	red := types.NewVarSymbol("RED", color.Type, types.FlagEnum|types.FlagStatic)
	color.Enter(red)
	f.syms.Enter(color)
	f.declareAnnotation("Paint", types.NewMethodSymbol("color", color.Type))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Paint", assign("color", sel("Color", "RED"))))

	f.requireNoErrors(t)
	e, ok := s.DeclarationAttributes()[0].Member("color").(*types.Enum)
	require.True(t, ok, "enum element should attribute to an enum constant")
	assert.Same(t, red, e.Const)
	assert.Equal(t, "Color.RED", e.String())
}

func TestNotEnumConstant(t *testing.T) {
	f := newFixture(t)
	color := types.NewTypeSymbol("Color", types.FlagEnum)
	f.syms.Enter(color)
	f.declareAnnotation("Paint", types.NewMethodSymbol("color", color.Type))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Paint", assign("color", lit(3))))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeNotEnumConstant), 1)
}

func TestClassValue(t *testing.T) {
	f := newFixture(t)
	color := types.NewTypeSymbol("Color", types.FlagEnum)
	f.syms.Enter(color)
	f.declareAnnotation("Binds", types.NewMethodSymbol("to", f.syms.ClassType))
	s := &types.Symbol{Name: "x"}

	tree := classLit("Color")
	f.annotate(t, s, anno("Binds", assign("to", tree)))

	f.requireNoErrors(t)
	c, ok := s.DeclarationAttributes()[0].Member("to").(*types.Class)
	require.True(t, ok, "class element should attribute to a class literal")
	assert.True(t, types.IsSameType(c.Value, color.Type))
	assert.True(t, types.IsSameType(tree.RefType, color.Type))
}

func TestUnresolvedClassLiteralKeepsName(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Binds", types.NewMethodSymbol("to", f.syms.ClassType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Binds", assign("to", classLit("Missing"))))

	require.Len(t, f.log.Diagnostics().ByCode(check.CodeUnknownType), 1)
	u, ok := s.DeclarationAttributes()[0].Member("to").(*types.UnresolvedClass)
	require.True(t, ok, "unresolved class literal should keep its attempted name")
	assert.Equal(t, "Missing", u.ClassName)
}

func TestNotClassLiteral(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Binds", types.NewMethodSymbol("to", f.syms.ClassType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Binds", assign("to", lit("Color"))))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeNotClassLiteral), 1)
}

func TestNestedAnnotationValue(t *testing.T) {
	f := newFixture(t)
	inner := f.declareAnnotation("Inner", types.NewMethodSymbol("id", f.syms.IntType))
	f.declareAnnotation("Outer", types.NewMethodSymbol("inner", inner.Type))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Outer",
		assign("inner", anno("Inner", assign("id", lit(7))))))

	f.requireNoErrors(t)
	nested, ok := s.DeclarationAttributes()[0].Member("inner").(*types.Compound)
	require.True(t, ok, "annotation element should attribute to a compound")
	id := nested.Member("id").(*types.Constant)
	assert.Equal(t, 7, id.Value)
}

func TestValueMustBeAnnotation(t *testing.T) {
	f := newFixture(t)
	inner := f.declareAnnotation("Inner")
	f.declareAnnotation("Outer", types.NewMethodSymbol("inner", inner.Type))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Outer", assign("inner", lit(1))))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeValueMustBeAnnotation), 1)
}

func TestDefaultValueDeferred(t *testing.T) {
	f := newFixture(t)
	limits := f.declareAnnotation("Limits")
	m := types.NewMethodSymbol("max", f.syms.IntType)
	limits.Enter(m)

	f.an.Block()
	f.an.AnnotateDefaultValueLater(lit(100), f.env, m, nil)

	assert.Same(t, f.an.UnfinishedDefaultValue(), m.DefaultValue,
		"queued default must carry the sentinel until flushed")

	f.an.Unblock()

	f.requireNoErrors(t)
	c, ok := m.DefaultValue.(*types.Constant)
	require.True(t, ok)
	assert.Equal(t, 100, c.Value)
}

func TestAnnotationDeferredWhileBlocked(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Tag")
	s := &types.Symbol{Name: "x"}

	f.an.Block()
	f.an.AnnotateLater([]*ast.AnnotationExpr{anno("Tag")}, f.env, s, nil)

	assert.True(t, s.AnnotationsPendingCompletion())
	assert.Empty(t, s.DeclarationAttributes())

	f.an.Unblock()

	f.requireNoErrors(t)
	assert.False(t, s.AnnotationsPendingCompletion())
	assert.Len(t, s.DeclarationAttributes(), 1)
	assert.Empty(t, f.log.CurrentSource(),
		"the ambient source must be restored after each unit")
	assert.Nil(t, f.log.DeferPos())
}

func TestValidationRunsAfterAttribution(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Named", types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "x"}

	// No value for a defaultless element: attribution succeeds, the validate
	// phase reports the missing element.
	f.annotate(t, s, anno("Named"))

	assert.Len(t, f.log.Diagnostics().ByCode(check.CodeMissingElement), 1)
	assert.Len(t, s.DeclarationAttributes(), 1)
}

func TestDuplicateElementReported(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Named", types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Named",
		assign("value", lit("a")),
		assign("value", lit("b"))))

	assert.Len(t, f.log.Diagnostics().ByCode(check.CodeDuplicateElement), 1)
}

func TestDeprecatedSetsFlag(t *testing.T) {
	f := newFixture(t)
	s := &types.Symbol{Name: "oldAPI"}

	f.annotate(t, s, anno("Deprecated"))

	f.requireNoErrors(t)
	assert.NotZero(t, s.Flags&types.FlagDeprecated)
}

func TestDeprecatedIgnoredOnLocals(t *testing.T) {
	f := newFixture(t)
	s := &types.Symbol{Name: "tmp", Flags: types.FlagLocal}

	f.annotate(t, s, anno("Deprecated"))

	f.requireNoErrors(t)
	assert.Zero(t, s.Flags&types.FlagDeprecated)
}

func TestTypeAnnotationEntry(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("ReadOnly")
	s := &types.Symbol{Name: "field"}

	tree := anno("ReadOnly")
	f.an.EnterTypeAnnotations([]*ast.AnnotationExpr{tree}, f.env, s, nil)

	f.requireNoErrors(t)
	attrs := s.TypeAttributes()
	require.Len(t, attrs, 1)
	assert.True(t, attrs[0].ForType)
	assert.Equal(t, types.PositionUnknown, attrs[0].Position)

	// Entering the same attributed tree again must not duplicate it.
	f.an.EnterTypeAnnotations([]*ast.AnnotationExpr{tree}, f.env, s, nil)
	assert.Len(t, s.TypeAttributes(), 1)
}

func TestTypeAnnotateLaterDefers(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("ReadOnly")
	s := &types.Symbol{Name: "field"}

	f.an.Block()
	f.an.TypeAnnotateLater([]*ast.AnnotationExpr{anno("ReadOnly")}, f.env, s, nil)
	assert.Empty(t, s.TypeAttributes())

	f.an.Unblock()
	assert.Len(t, s.TypeAttributes(), 1)
}

func TestFromAnnotationsReturnsCachedCompounds(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Tag")
	s := &types.Symbol{Name: "x"}

	tree := anno("Tag")
	f.annotate(t, s, tree)

	got := f.an.FromAnnotations([]*ast.AnnotationExpr{tree})
	require.Len(t, got, 1)
	assert.Same(t, s.DeclarationAttributes()[0], got[0])
}

func TestFromAnnotationsPanicsOnUnattributed(t *testing.T) {
	f := newFixture(t)
	assert.Panics(t, func() {
		f.an.FromAnnotations([]*ast.AnnotationExpr{anno("Tag")})
	})
}

func TestRepeatedAnnotationsCollated(t *testing.T) {
	f := newFixture(t)
	tag, container := f.declareRepeatable("Tag", "Tags")
	tag.Enter(types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s,
		anno("Tag", lit("a")),
		anno("Tag", lit("b")),
		anno("Tag", lit("c")))

	f.requireNoErrors(t)

	attrs := s.DeclarationAttributes()
	require.Len(t, attrs, 1, "three repeats must collate into one container")
	c := attrs[0]
	assert.True(t, c.Synthesized)
	assert.True(t, types.IsSameType(c.Typ, container.Type))

	arr, ok := c.Member("value").(*types.Array)
	require.True(t, ok)
	require.Len(t, arr.Values, 3)
	for _, v := range arr.Values {
		member := v.(*types.Compound)
		assert.True(t, types.IsSameType(member.Typ, tag.Type))
	}
}

func TestRepeatedCollationKeepsSourceOrder(t *testing.T) {
	f := newFixture(t)
	tag, _ := f.declareRepeatable("Tag", "Tags")
	tag.Enter(types.NewMethodSymbol("value", f.syms.StringType))
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s,
		anno("Tag", lit("first")),
		anno("Tag", lit("second")))

	f.requireNoErrors(t)
	arr := s.DeclarationAttributes()[0].Member("value").(*types.Array)
	got := make([]string, len(arr.Values))
	for i, v := range arr.Values {
		got[i] = v.String()
	}
	want := []string{`@Tag(value="first")`, `@Tag(value="second")`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("collated members out of order (-want +got):\n%s", diff)
	}
}

func TestGroupsKeepFirstSeenOrder(t *testing.T) {
	f := newFixture(t)
	_, container := f.declareRepeatable("Tag", "Tags")
	other := f.declareAnnotation("Other")
	s := &types.Symbol{Name: "x"}

	// Tag Other Tag: the collated Tags container keeps Tag's first-seen slot.
	f.annotate(t, s, anno("Tag"), anno("Other"), anno("Tag"))

	f.requireNoErrors(t)
	attrs := s.DeclarationAttributes()
	require.Len(t, attrs, 2)
	assert.True(t, types.IsSameType(attrs[0].Typ, container.Type))
	assert.True(t, types.IsSameType(attrs[1].Typ, other.Type))
}

func TestRepeatedWithoutContainer(t *testing.T) {
	f := newFixture(t)
	f.declareAnnotation("Plain")
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Plain"), anno("Plain"))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeMissingContainer), 1)
	assert.Empty(t, s.DeclarationAttributes(), "an invalid group contributes nothing")
}

func TestRepeatedAndContainerPresent(t *testing.T) {
	f := newFixture(t)
	_, container := f.declareRepeatable("Tag", "Tags")
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Tag"), anno("Tag"), anno("Tags"))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeRepeatedAndContainerPresent), 1)
	// Both the synthesized and the manual container are entered; the error
	// flags the conflict without dropping either.
	attrs := s.DeclarationAttributes()
	require.Len(t, attrs, 2)
	for _, c := range attrs {
		assert.True(t, types.IsSameType(c.Typ, container.Type))
	}
}

func TestContainerValueReturnMismatch(t *testing.T) {
	f := newFixture(t)
	tag := f.declareAnnotation("Tag")
	container := f.declareAnnotation("Tags",
		types.NewMethodSymbol("value", types.MakeArrayType(f.syms.StringType)))
	f.markRepeatable(tag, container)
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Tag"), anno("Tag"), anno("Tag"))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeContainerValueReturn), 1,
		"one shape diagnostic per group, however many members")
	assert.Empty(t, s.DeclarationAttributes())
}

func TestContainerWithoutValueElement(t *testing.T) {
	f := newFixture(t)
	tag := f.declareAnnotation("Tag")
	container := f.declareAnnotation("Tags")
	f.markRepeatable(tag, container)
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Tag"), anno("Tag"), anno("Tag"))

	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeContainerNoValue), 1)
	assert.Empty(t, s.DeclarationAttributes())
}

func TestMalformedRepeatableDeclaration(t *testing.T) {
	f := newFixture(t)
	tag := f.declareAnnotation("Tag")
	// Repeatable metadata with no value binding at all.
	tag.Metadata().SetRepeatable(&types.Compound{
		Typ:      f.syms.RepeatableType,
		Position: types.PositionUnknown,
	})
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Tag"), anno("Tag"))

	// Unlike container shape errors, the malformed declaration is reported
	// at each repetition site.
	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeInvalidRepeatableDecl), 2)
	assert.Empty(t, s.DeclarationAttributes())
}

func TestRepeatedRejectedAtLegacySourceLevel(t *testing.T) {
	syms := types.NewSymtab()
	log := diag.NewLog()
	an := annotate.New(annotate.Config{
		Symtab:                      syms,
		Reporter:                    log,
		Checker:                     check.NewChecker(syms, log),
		Folder:                      check.NewFolder(),
		Resolver:                    check.NewResolver(syms),
		Exprs:                       check.NewAttr(syms, log),
		Validator:                   check.NewValidator(syms, log),
		DisallowRepeatedAnnotations: true,
	})
	f := &fixture{syms: syms, log: log, an: an, env: &annotate.Env{SourceFile: "test.vsp"}}
	f.declareRepeatable("Tag", "Tags")
	s := &types.Symbol{Name: "x"}

	f.annotate(t, s, anno("Tag"), anno("Tag"), anno("Tag"))

	// Reported once per symbol, not once per extra occurrence.
	assert.Len(t, f.log.Diagnostics().ByCode(annotate.CodeRepeatedNotSupported), 1)
}

func TestRepeatableMetadataViaCompleter(t *testing.T) {
	f := newFixture(t)
	tag := f.declareAnnotation("Tag")
	container := f.declareAnnotation("Tags",
		types.NewMethodSymbol("value", types.MakeArrayType(tag.Type)))

	// Metadata arrives only when the declaration completes, mirroring
	// separate-compilation loading.
	completed := false
	tag.SetCompleter(func(sym *types.TypeSymbol) error {
		completed = true
		valueElem := f.syms.RepeatableSym.MembersByName("value")[0].(*types.MethodSymbol)
		sym.Metadata().SetRepeatable(&types.Compound{
			Typ: f.syms.RepeatableType,
			Values: []types.ElementValue{{
				Element: valueElem,
				Value:   &types.Class{Typ: f.syms.ClassType, Value: container.Type},
			}},
			Position: types.PositionUnknown,
		})
		return nil
	})

	s := &types.Symbol{Name: "x"}
	f.annotate(t, s, anno("Tag"), anno("Tag"))

	f.requireNoErrors(t)
	assert.True(t, completed, "collation must force completion of the annotation type")
	require.Len(t, s.DeclarationAttributes(), 1)
	assert.True(t, types.IsSameType(s.DeclarationAttributes()[0].Typ, container.Type))
}
