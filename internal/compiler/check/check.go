// Package check supplies the attribution collaborators the annotation engine
// delegates to: type checking, constant folding, element resolution,
// expression attribution, and post-attribution validation.
package check

import (
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Checker performs type compatibility checks during attribution.
type Checker struct {
	syms *types.Symtab
	log  diag.Sink
}

// NewChecker creates a type checker reporting through the given sink.
func NewChecker(syms *types.Symtab, log diag.Sink) *Checker {
	return &Checker{syms: syms, log: log}
}

// Check verifies that actual is usable where expected is required and
// returns the checked type. On mismatch it reports a diagnostic and returns
// an error type wrapping actual, so downstream attribution can keep going.
func (c *Checker) Check(pos ast.SourceLocation, actual, expected types.Type) types.Type {
	if actual == nil {
		return c.syms.ErrType
	}
	if actual.IsErroneous() {
		return actual
	}
	if expected == nil || expected.IsErroneous() {
		return actual
	}
	if types.IsSameType(actual, expected) {
		return actual
	}
	// Every annotation type is usable where the annotation root is expected.
	if types.IsSameType(expected, c.syms.AnnotationType) && types.IsAnnotationType(actual) {
		return actual
	}
	// Integer constants widen to float.
	if types.IsSameType(expected, c.syms.FloatType) && types.IsSameType(actual, c.syms.IntType) {
		return actual
	}

	c.log.Error(errTypeMismatch(pos, actual.String(), expected.String()))
	return types.NewErrorType(actual)
}
