package annotate

import (
	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

// annotationContext carries the bookkeeping for one annotateNow pass while
// repeated annotations are collated.
type annotationContext struct {
	env            *Env
	annotated      map[*types.TypeSymbol][]*types.Compound
	pos            map[*types.Compound]ast.SourceLocation
	isTypeCompound bool
}

// makeContainerAnnotation collates a group of repeated annotations into one
// synthesized container compound. It returns nil when the group is invalid;
// errors have already been reported.
func (a *Annotator) makeContainerAnnotation(group []*types.Compound, ctx *annotationContext, on *types.Symbol) *types.Compound {
	validRepeated := a.processRepeatedAnnotations(group, ctx, on)

	if validRepeated != nil {
		// The container must not also be written out manually alongside
		// repeated instances of its contained annotation.
		if manual, ok := ctx.annotated[validRepeated.Typ.Symbol()]; ok {
			a.log.Error(errRepeatedAndContainerPresent(ctx.pos[manual[0]], manual[0].Typ.String()))
		}
	}
	return validRepeated
}

// processRepeatedAnnotations builds the container compound for a group of
// two or more annotations of the same type. Each member must declare the
// same containing type via its repeatable metadata, and that container must
// have a single value element returning an array of the repeated type.
func (a *Annotator) processRepeatedAnnotations(annotations []*types.Compound, ctx *annotationContext, on *types.Symbol) *types.Compound {
	if len(annotations) < 2 {
		panic("annotate: repeated annotation group must have at least two members")
	}

	var repeated []types.Attribute
	var origAnnoType types.Type
	var arrayOfOrigAnnoType types.Type
	var targetContainerType types.Type
	var containerValueSymbol *types.MethodSymbol
	containerChecked := false

	for count, anno := range annotations {
		origAnnoType = anno.Typ
		if arrayOfOrigAnnoType == nil {
			arrayOfOrigAnnoType = types.MakeArrayType(origAnnoType)
		}

		// Only report a missing container once per group.
		reportError := count > 0
		containerType := a.containingType(anno, ctx.pos[anno], reportError)
		if containerType == nil {
			continue
		}

		// The containing type is computed from shared metadata on the
		// annotation's declaration, so it cannot differ across the group.
		if targetContainerType != nil && !types.IsSameType(containerType, targetContainerType) {
			panic("annotate: containing type differs across a repeated annotation group")
		}
		targetContainerType = containerType

		// The container's shape is shared declaration state; validate it
		// once so a bad shape yields a single diagnostic for the group.
		if !containerChecked {
			containerChecked = true
			containerValueSymbol = a.validateContainer(targetContainerType, origAnnoType, ctx.pos[anno])
		}
		if containerValueSymbol == nil {
			continue
		}
		repeated = append(repeated, anno)
	}

	if len(repeated) > 0 && targetContainerType == nil {
		a.log.Error(errInvalidRepeated(ctx.pos[annotations[0]], origAnnoType.String()))
		return nil
	}
	if len(repeated) == 0 {
		return nil
	}

	return &types.Compound{
		Typ: targetContainerType,
		Values: []types.ElementValue{{
			Element: containerValueSymbol,
			Value:   &types.Array{Typ: arrayOfOrigAnnoType, Values: repeated},
		}},
		Synthesized: true,
		ForType:     ctx.isTypeCompound,
		Position:    annotations[0].Position,
	}
}

// containingType fetches the container type declared by the annotation's
// repeatable metadata, or nil if the annotation is not repeatable. A
// container equal to the annotation type itself is rejected as well.
func (a *Annotator) containingType(anno *types.Compound, pos ast.SourceLocation, reportError bool) types.Type {
	origAnnoType := anno.Typ
	origAnnoDecl := origAnnoType.Symbol()
	if origAnnoDecl == nil {
		return nil
	}

	ca := origAnnoDecl.Metadata().Repeatable()
	if ca == nil {
		if reportError {
			a.log.Error(errMissingContainer(pos, origAnnoType.String()))
		}
		return nil
	}
	return filterSame(a.extractContainingType(ca, pos, origAnnoDecl), origAnnoType)
}

// filterSame returns t, or nil when t and t2 are the same type.
func filterSame(t, t2 types.Type) types.Type {
	if t == nil || t2 == nil {
		return t
	}
	if types.IsSameType(t, t2) {
		return nil
	}
	return t
}

// extractContainingType pulls the container type out of a repeatable
// meta-annotation, which must carry exactly one value element holding a
// class attribute.
func (a *Annotator) extractContainingType(ca *types.Compound, pos ast.SourceLocation, origAnnoDecl *types.TypeSymbol) types.Type {
	if len(ca.Values) == 0 {
		a.log.Error(errInvalidRepeatableDecl(pos, origAnnoDecl.Name))
		return nil
	}
	p := ca.Values[0]
	if p.Element.Name != "value" {
		a.log.Error(errInvalidRepeatableDecl(pos, origAnnoDecl.Name))
		return nil
	}
	cls, ok := p.Value.(*types.Class)
	if !ok {
		a.log.Error(errInvalidRepeatableDecl(pos, origAnnoDecl.Name))
		return nil
	}
	return cls.Value
}

// validateContainer checks the shape of a containing annotation type: it
// must declare exactly one element named value whose return type is an array
// of the contained annotation type. It returns that element, or nil after
// reporting errors.
func (a *Annotator) validateContainer(containerType, originalAnnoType types.Type, pos ast.SourceLocation) *types.MethodSymbol {
	tsym := containerType.Symbol()
	if tsym == nil {
		return nil
	}

	var containerValueSymbol *types.MethodSymbol
	nrValueElems := 0
	bad := false
	for _, m := range tsym.MembersByName("value") {
		nrValueElems++
		ms, isMethod := m.(*types.MethodSymbol)
		if nrValueElems == 1 && isMethod {
			containerValueSymbol = ms
		} else {
			bad = true
		}
	}
	if bad {
		a.log.Error(errContainerMultipleValues(pos, containerType.String()))
		return nil
	}
	if nrValueElems == 0 {
		a.log.Error(errContainerNoValue(pos, containerType.String()))
		return nil
	}
	if containerValueSymbol == nil {
		a.log.Error(errContainerNoValue(pos, containerType.String()))
		return nil
	}

	valueRetType := containerValueSymbol.Return
	expectedType := types.MakeArrayType(originalAnnoType)
	if !types.IsArray(valueRetType) ||
		!types.IsSameType(types.ElemType(valueRetType), originalAnnoType) {
		a.log.Error(errContainerValueReturn(pos,
			containerType.String(), valueRetType.String(), expectedType.String()))
		return nil
	}
	return containerValueSymbol
}
