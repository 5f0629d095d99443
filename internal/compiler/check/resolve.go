package check

import (
	"github.com/vesper-lang/vesper/internal/compiler/annotate"
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// Resolver resolves annotation elements against their declaring type.
type Resolver struct {
	syms *types.Symtab
}

// NewResolver creates an element resolver.
func NewResolver(syms *types.Symtab) *Resolver {
	return &Resolver{syms: syms}
}

// ResolveElement looks up the element named name on the given annotation
// type. Resolution failure is silent: the returned synthetic element has an
// erroneous return type and no owner, which the caller diagnoses.
func (r *Resolver) ResolveElement(pos ast.SourceLocation, env *annotate.Env, owner types.Type, name string) *types.MethodSymbol {
	if tsym := owner.Symbol(); tsym != nil {
		_ = tsym.Complete()
		for _, m := range tsym.MembersByName(name) {
			if ms, ok := m.(*types.MethodSymbol); ok {
				return ms
			}
		}
	}
	return types.NewMethodSymbol(name, r.syms.ErrType)
}
