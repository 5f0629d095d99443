// Package annotate implements deferred annotation attribution for the Vesper
// compiler front end. It enters annotations onto symbols once member entry is
// complete: attribution work is queued while entry is blocked, then four
// ordered queues (normal, type annotations, after-types, validate) are
// drained to completion when the block count returns to zero.
//
// The engine resolves annotation argument expressions into typed attribute
// values, supports the single-element value= shorthand, and collates repeated
// annotations of one type into a synthesized container annotation.
package annotate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Env carries the ambient attribution context for one compilation unit.
type Env struct {
	// SourceFile is the file diagnostics raised during attribution belong to
	SourceFile string
}

// TypeChecker checks an actual type against an expected supertype, reporting
// a diagnostic and downgrading to an error type on mismatch.
type TypeChecker interface {
	Check(pos ast.SourceLocation, actual, expected types.Type) types.Type
}

// ConstantFolder coerces a compile-time constant to a target primitive type.
type ConstantFolder interface {
	Coerce(value interface{}, target types.Type) (interface{}, bool)
}

// MemberResolver resolves a named element on an annotation type. On failure
// it reports nothing and returns a synthetic element whose return type is
// erroneous and whose owner is nil; the caller decides how to diagnose.
type MemberResolver interface {
	ResolveElement(pos ast.SourceLocation, env *Env, owner types.Type, name string) *types.MethodSymbol
}

// ExpressionAttributor is the general-purpose expression attribution
// collaborator, used for recovery paths and class/enum literal resolution.
type ExpressionAttributor interface {
	// AttribType resolves a type name to a type, or an error type
	AttribType(pos ast.SourceLocation, name string, env *Env) types.Type

	// AttribExpr attributes an expression against an expected type
	AttribExpr(expr ast.ExprNode, env *Env, expected types.Type) types.Type

	// SymbolOf returns the symbol a static member reference denotes, or nil
	SymbolOf(expr ast.ExprNode) types.Member
}

// AnnotationValidator performs post-attribution validation, run from the
// validate queue after all normal attribution work has completed.
type AnnotationValidator interface {
	ValidateAnnotations(annotations []*ast.AnnotationExpr, s *types.Symbol)
	ValidateAnnotationTree(expr ast.ExprNode)
}

// Reporter is the diagnostic channel the engine reports through, including
// the ambient current-source and deferred-position slots the scheduler
// saves and restores around each unit of work.
type Reporter interface {
	diag.Sink
	UseSource(file string) (prev string)
	SetDeferPos(pos *ast.SourceLocation) (prev *ast.SourceLocation)
}

// Config wires an Annotator's collaborators.
type Config struct {
	Symtab   *types.Symtab
	Reporter Reporter
	Checker  TypeChecker
	Folder   ConstantFolder
	Resolver MemberResolver
	Exprs    ExpressionAttributor

	// Validator is optional; when nil, validation units are no-ops.
	Validator AnnotationValidator

	// Logger traces scheduler activity; nil disables tracing.
	Logger *zap.Logger

	// DisallowRepeatedAnnotations rejects repeated annotations, for legacy
	// source levels.
	DisallowRepeatedAnnotations bool
}

// Annotator enters annotations onto symbols and schedules when that happens.
type Annotator struct {
	syms     *types.Symtab
	log      Reporter
	chk      TypeChecker
	folder   ConstantFolder
	resolver MemberResolver
	exprs    ExpressionAttributor
	validate AnnotationValidator
	logger   *zap.Logger

	allowRepeated     bool
	unfinishedDefault types.Attribute

	// Semaphore to delay annotation processing
	blockCount int

	// Non-reentrancy guard for Flush
	flushCount int

	q          workQueue
	typesQ     workQueue
	afterTypes workQueue
	validateQ  workQueue
}

// New creates an Annotator from the given configuration.
func New(cfg Config) *Annotator {
	a := &Annotator{
		syms:          cfg.Symtab,
		log:           cfg.Reporter,
		chk:           cfg.Checker,
		folder:        cfg.Folder,
		resolver:      cfg.Resolver,
		exprs:         cfg.Exprs,
		validate:      cfg.Validator,
		logger:        cfg.Logger,
		allowRepeated: !cfg.DisallowRepeatedAnnotations,
	}
	if a.validate == nil {
		a.validate = nopValidator{}
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	a.unfinishedDefault = &types.Error{Typ: a.syms.ErrType}
	return a
}

// UnfinishedDefaultValue is the sentinel attribute installed on annotation
// elements whose default value has been queued but not yet attributed.
func (a *Annotator) UnfinishedDefaultValue() types.Attribute {
	return a.unfinishedDefault
}

// AnnotateLater queues annotations for attribution and entering onto s once
// the scheduler unblocks. This is the entry point used by declaration entry.
func (a *Annotator) AnnotateLater(annotations []*ast.AnnotationExpr, env *Env, s *types.Symbol, deferPos *ast.SourceLocation) {
	if len(annotations) == 0 {
		return
	}

	s.ResetAnnotations() // mark annotations as incomplete for now

	a.Normal(fmt.Sprintf("annotate %d annotation(s) onto %s", len(annotations), s.Name), func() {
		if !s.AnnotationsPendingCompletion() {
			panic(fmt.Sprintf("annotate: %s is not pending annotation completion", s.Name))
		}
		prev := a.log.UseSource(env.SourceFile)
		prevPos := a.log.SetDeferPos(deferPos)
		defer func() {
			a.log.SetDeferPos(prevPos)
			a.log.UseSource(prev)
		}()

		if s.HasAnnotations() {
			a.log.Error(errAlreadyAnnotated(annotations[0].Location(), s.Name))
		}
		a.annotateNow(s, annotations, env, false)
	})

	a.Validate(fmt.Sprintf("validate annotations on %s", s.Name), func() {
		prev := a.log.UseSource(env.SourceFile)
		defer func() { a.log.UseSource(prev) }()
		a.validate.ValidateAnnotations(annotations, s)
	})
}

// AnnotateDefaultValueLater queues attribution of an annotation element's
// default value against the element's return type.
func (a *Annotator) AnnotateDefaultValueLater(defaultValue ast.ExprNode, env *Env, m *types.MethodSymbol, deferPos *ast.SourceLocation) {
	m.DefaultValue = a.unfinishedDefault

	a.Normal(fmt.Sprintf("annotate default value of %s", m.Name), func() {
		prev := a.log.UseSource(env.SourceFile)
		prevPos := a.log.SetDeferPos(deferPos)
		defer func() {
			a.log.SetDeferPos(prevPos)
			a.log.UseSource(prev)
		}()
		m.DefaultValue = a.AttributeValue(m.Return, defaultValue, env)
	})

	a.Validate(fmt.Sprintf("validate default value of %s", m.Name), func() {
		prev := a.log.UseSource(env.SourceFile)
		defer func() { a.log.UseSource(prev) }()
		a.validate.ValidateAnnotationTree(defaultValue)
	})
}

// TypeAnnotateLater queues attribution of type annotations onto sym.
func (a *Annotator) TypeAnnotateLater(annotations []*ast.AnnotationExpr, env *Env, sym *types.Symbol, deferPos *ast.SourceLocation) {
	if len(annotations) == 0 {
		return
	}
	a.Normal(fmt.Sprintf("type annotate %d annotation(s) onto %s", len(annotations), sym.Name), func() {
		a.EnterTypeAnnotations(annotations, env, sym, deferPos)
	})
}

// EnterTypeAnnotations attributes the annotations as type annotations and
// appends them uniquely onto s.
func (a *Annotator) EnterTypeAnnotations(annotations []*ast.AnnotationExpr, env *Env, s *types.Symbol, deferPos *ast.SourceLocation) {
	if s == nil {
		panic("annotate: nil symbol for type annotation entry")
	}
	prev := a.log.UseSource(env.SourceFile)
	var prevPos *ast.SourceLocation
	if deferPos != nil {
		prevPos = a.log.SetDeferPos(deferPos)
	}
	defer func() {
		if deferPos != nil {
			a.log.SetDeferPos(prevPos)
		}
		a.log.UseSource(prev)
	}()
	a.annotateNow(s, annotations, env, true)
}

// FromAnnotations collects the cached attributes of already-attributed
// annotation trees. It panics if any tree has not been attributed.
func (a *Annotator) FromAnnotations(annotations []*ast.AnnotationExpr) []*types.Compound {
	if len(annotations) == 0 {
		return nil
	}
	buf := make([]*types.Compound, 0, len(annotations))
	for _, anno := range annotations {
		c, ok := anno.Attribute.(*types.Compound)
		if !ok || c == nil {
			panic(fmt.Sprintf("annotate: annotation @%s has no attributed compound", anno.Name))
		}
		buf = append(buf, c)
	}
	return buf
}

// annotateNow gathers annotations into per-type groups, then hands groups of
// more than one member to repeatable-annotation processing. The final
// attribute list preserves first-seen group order; within a group, source
// order.
func (a *Annotator) annotateNow(toAnnotate *types.Symbol, withAnnotations []*ast.AnnotationExpr, env *Env, typeAnnotations bool) {
	annotated := make(map[*types.TypeSymbol][]*types.Compound)
	var order []*types.TypeSymbol
	pos := make(map[*types.Compound]ast.SourceLocation)
	allowRepeated := a.allowRepeated

	for _, anno := range withAnnotations {
		var c *types.Compound
		if typeAnnotations {
			c = a.AttributeTypeAnnotation(anno, a.syms.AnnotationType, env)
		} else {
			c = a.AttributeAnnotation(anno, a.syms.AnnotationType, env)
		}
		if c == nil {
			panic("annotate: failed to create annotation")
		}

		tsym := anno.Type.Symbol()
		if _, seen := annotated[tsym]; seen {
			if !allowRepeated {
				a.log.Error(errRepeatedNotSupported(anno.Location()))
				allowRepeated = true
			}
			annotated[tsym] = append(annotated[tsym], c)
		} else {
			annotated[tsym] = []*types.Compound{c}
			order = append(order, tsym)
		}
		pos[c] = anno.Location()

		// @Deprecated has no effect on local variables and parameters
		if !c.Typ.IsErroneous() &&
			toAnnotate.Flags&types.FlagLocal == 0 &&
			types.IsSameType(c.Typ, a.syms.DeprecatedType) {
			toAnnotate.Flags |= types.FlagDeprecated
		}
	}

	var buf []*types.Compound
	for _, tsym := range order {
		group := annotated[tsym]
		if len(group) == 1 {
			buf = append(buf, group[0])
			continue
		}
		ctx := &annotationContext{
			env:            env,
			annotated:      annotated,
			pos:            pos,
			isTypeCompound: typeAnnotations,
		}
		if res := a.makeContainerAnnotation(group, ctx, toAnnotate); res != nil {
			buf = append(buf, res)
		}
	}

	if typeAnnotations {
		toAnnotate.AppendUniqueTypeAttributes(buf)
	} else {
		toAnnotate.ResetAnnotations()
		toAnnotate.SetDeclarationAttributes(buf)
	}
}

type nopValidator struct{}

func (nopValidator) ValidateAnnotations([]*ast.AnnotationExpr, *types.Symbol) {}
func (nopValidator) ValidateAnnotationTree(ast.ExprNode)                      {}
