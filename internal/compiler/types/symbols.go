package types

import "fmt"

// Flags is a bitmask of symbol modifiers.
type Flags uint16

const (
	// FlagAnnotation marks a type symbol as an annotation type
	FlagAnnotation Flags = 1 << iota
	// FlagEnum marks a type symbol as an enum type, or a var symbol as an enum constant
	FlagEnum
	// FlagDeprecated marks a symbol annotated with @Deprecated
	FlagDeprecated
	// FlagSynthetic marks a compiler-generated symbol
	FlagSynthetic
	// FlagStatic marks a static member
	FlagStatic
	// FlagLocal marks a local variable or parameter symbol
	FlagLocal
)

// Symbol is the base representation of a declared entity. Annotations
// attributed for a declaration are entered here; the symbol's annotation
// state is "pending" from ResetAnnotations until SetDeclarationAttributes.
type Symbol struct {
	Name  string
	Owner *TypeSymbol
	Flags Flags
	Type  Type // declared type of the symbol

	attrs     []*Compound
	typeAttrs []*Compound
	pending   bool
}

// MemberName returns the symbol's name. It exists so concrete symbol kinds
// satisfy the Member interface through embedding.
func (s *Symbol) MemberName() string { return s.Name }

// BaseSymbol returns the underlying Symbol.
func (s *Symbol) BaseSymbol() *Symbol { return s }

// ResetAnnotations marks the symbol's annotations as incomplete. No dependent
// computation may observe declaration attributes until the next
// SetDeclarationAttributes.
func (s *Symbol) ResetAnnotations() {
	s.attrs = nil
	s.pending = true
}

// AnnotationsPendingCompletion reports whether attribution has been queued
// but not yet flushed for this symbol.
func (s *Symbol) AnnotationsPendingCompletion() bool { return s.pending }

// HasAnnotations reports whether the symbol carries declaration attributes.
func (s *Symbol) HasAnnotations() bool { return len(s.attrs) > 0 }

// SetDeclarationAttributes installs the final attributed annotations and
// marks the symbol's annotation state complete.
func (s *Symbol) SetDeclarationAttributes(attrs []*Compound) {
	s.attrs = attrs
	s.pending = false
}

// DeclarationAttributes returns the attributed declaration annotations.
func (s *Symbol) DeclarationAttributes() []*Compound { return s.attrs }

// AppendUniqueTypeAttributes appends type annotations not already present on
// the symbol, by identity.
func (s *Symbol) AppendUniqueTypeAttributes(attrs []*Compound) {
	for _, a := range attrs {
		present := false
		for _, existing := range s.typeAttrs {
			if existing == a {
				present = true
				break
			}
		}
		if !present {
			s.typeAttrs = append(s.typeAttrs, a)
		}
	}
}

// TypeAttributes returns the attributed type annotations.
func (s *Symbol) TypeAttributes() []*Compound { return s.typeAttrs }

// Member is any symbol that can appear in a type's member scope.
type Member interface {
	MemberName() string
	BaseSymbol() *Symbol
}

// Completer defers resolution of a type symbol until its members are needed.
// A non-nil error indicates a completion failure the caller must downgrade.
type Completer func(*TypeSymbol) error

// TypeSymbol represents a declared class, enum, or annotation type.
type TypeSymbol struct {
	Symbol

	members   []Member
	metadata  *AnnotationTypeMetadata
	completer Completer
}

// NewTypeSymbol creates a type symbol with the given name and flags. The
// symbol's type is the named type referring back to it.
func NewTypeSymbol(name string, flags Flags) *TypeSymbol {
	ts := &TypeSymbol{Symbol: Symbol{Name: name, Flags: flags}}
	ts.Type = NewNamedType(ts)
	return ts
}

// SetCompleter installs a deferred completion step. It panics if the symbol
// already has one.
func (ts *TypeSymbol) SetCompleter(c Completer) {
	if ts.completer != nil {
		panic(fmt.Sprintf("types: completer already set for %s", ts.Name))
	}
	ts.completer = c
}

// Complete runs the symbol's completer, if any. Runs at most once.
func (ts *TypeSymbol) Complete() error {
	if ts.completer == nil {
		return nil
	}
	c := ts.completer
	ts.completer = nil
	return c(ts)
}

// Enter adds a member to the type's scope, preserving declaration order.
func (ts *TypeSymbol) Enter(m Member) {
	m.BaseSymbol().Owner = ts
	ts.members = append(ts.members, m)
}

// Members returns the type's members in declaration order.
func (ts *TypeSymbol) Members() []Member { return ts.members }

// MembersByName returns all members with the given name, in declaration order.
func (ts *TypeSymbol) MembersByName(name string) []Member {
	var out []Member
	for _, m := range ts.members {
		if m.MemberName() == name {
			out = append(out, m)
		}
	}
	return out
}

// IsAnnotationType reports whether the symbol declares an annotation type.
func (ts *TypeSymbol) IsAnnotationType() bool { return ts.Flags&FlagAnnotation != 0 }

// Metadata returns the symbol's annotation-type metadata, allocating it on
// first use.
func (ts *TypeSymbol) Metadata() *AnnotationTypeMetadata {
	if ts.metadata == nil {
		ts.metadata = &AnnotationTypeMetadata{sym: ts}
	}
	return ts.metadata
}

// MethodSymbol represents a method-like member. Annotation elements are
// method symbols whose Return is the element type.
type MethodSymbol struct {
	Symbol

	Return       Type
	DefaultValue Attribute
}

// NewMethodSymbol creates a method symbol with the given name and return type.
func NewMethodSymbol(name string, ret Type) *MethodSymbol {
	return &MethodSymbol{Symbol: Symbol{Name: name}, Return: ret}
}

// VarSymbol represents a variable or field member. Enum constants are var
// symbols carrying FlagEnum and FlagStatic.
type VarSymbol struct {
	Symbol
}

// NewVarSymbol creates a var symbol with the given name, type, and flags.
func NewVarSymbol(name string, typ Type, flags Flags) *VarSymbol {
	return &VarSymbol{Symbol: Symbol{Name: name, Type: typ, Flags: flags}}
}

// AnnotationTypeMetadata carries the semantics of an annotation type
// declaration: its @Repeatable and @Target meta-annotations and its declared
// elements. Accessors force completion of the declaring symbol first.
type AnnotationTypeMetadata struct {
	sym        *TypeSymbol
	target     *Compound
	repeatable *Compound
}

// Repeatable returns the @Repeatable meta-annotation, or nil.
func (m *AnnotationTypeMetadata) Repeatable() *Compound {
	_ = m.sym.Complete()
	return m.repeatable
}

// SetRepeatable records the @Repeatable meta-annotation. It panics if one is
// already set.
func (m *AnnotationTypeMetadata) SetRepeatable(c *Compound) {
	if m.repeatable != nil {
		panic(fmt.Sprintf("types: repeatable metadata already set for %s", m.sym.Name))
	}
	m.repeatable = c
}

// Target returns the @Target meta-annotation, or nil.
func (m *AnnotationTypeMetadata) Target() *Compound {
	_ = m.sym.Complete()
	return m.target
}

// SetTarget records the @Target meta-annotation. It panics if one is already
// set.
func (m *AnnotationTypeMetadata) SetTarget(c *Compound) {
	if m.target != nil {
		panic(fmt.Sprintf("types: target metadata already set for %s", m.sym.Name))
	}
	m.target = c
}

// Elements returns the annotation type's declared elements, excluding
// synthetic members, in declaration order.
func (m *AnnotationTypeMetadata) Elements() []*MethodSymbol {
	_ = m.sym.Complete()
	var out []*MethodSymbol
	for _, mem := range m.sym.Members() {
		ms, ok := mem.(*MethodSymbol)
		if ok && ms.Flags&FlagSynthetic == 0 {
			out = append(out, ms)
		}
	}
	return out
}

// ElementsWithDefault returns the declared elements that carry a default value.
func (m *AnnotationTypeMetadata) ElementsWithDefault() []*MethodSymbol {
	var out []*MethodSymbol
	for _, ms := range m.Elements() {
		if ms.DefaultValue != nil {
			out = append(out, ms)
		}
	}
	return out
}
