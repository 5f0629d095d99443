package check

import (
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Validator runs post-attribution checks on annotations: every element is
// assigned at most once, and every element without a default is assigned.
// It runs from the validate queue, after all attribution work has settled.
type Validator struct {
	syms *types.Symtab
	log  diag.Sink
}

// NewValidator creates an annotation validator reporting through the given
// sink.
func NewValidator(syms *types.Symtab, log diag.Sink) *Validator {
	return &Validator{syms: syms, log: log}
}

// ValidateAnnotations validates each attributed annotation on a symbol.
func (v *Validator) ValidateAnnotations(annotations []*ast.AnnotationExpr, s *types.Symbol) {
	for _, anno := range annotations {
		v.validateAnnotation(anno)
	}
}

// ValidateAnnotationTree validates every annotation nested inside an
// element value expression, such as a default value.
func (v *Validator) ValidateAnnotationTree(expr ast.ExprNode) {
	switch e := expr.(type) {
	case *ast.AnnotationExpr:
		v.validateAnnotation(e)
		for _, arg := range e.Args {
			v.ValidateAnnotationTree(arg)
		}
	case *ast.AssignExpr:
		v.ValidateAnnotationTree(e.Rhs)
	case *ast.ArrayExpr:
		for _, elem := range e.Elems {
			v.ValidateAnnotationTree(elem)
		}
	}
}

func (v *Validator) validateAnnotation(anno *ast.AnnotationExpr) {
	c, ok := anno.Attribute.(*types.Compound)
	if !ok || c == nil || c.Typ == nil || c.Typ.IsErroneous() {
		return
	}
	tsym := c.Typ.Symbol()
	if tsym == nil || !tsym.IsAnnotationType() {
		return
	}

	seen := make(map[*types.MethodSymbol]bool)
	for _, ev := range c.Values {
		if seen[ev.Element] {
			v.log.Error(errDuplicateElement(anno.Location(), ev.Element.Name, tsym.Name))
		}
		seen[ev.Element] = true
	}

	for _, el := range tsym.Metadata().Elements() {
		if el.DefaultValue == nil && !seen[el] {
			v.log.Error(errMissingElement(anno.Location(), el.Name, tsym.Name))
		}
	}
}
