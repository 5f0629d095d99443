package types

// Predefined type names.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeString = "string"
)

// Symtab holds the predefined symbols and the global type scope for one
// compilation context. It is explicit per-context state, not a singleton, so
// multiple compilation contexts can coexist.
type Symtab struct {
	// Predefined primitive types
	IntType    Type
	FloatType  Type
	BoolType   Type
	StringType Type

	// ErrType is the shared recovery type
	ErrType Type

	// UnknownSym anchors error types with no better symbol
	UnknownSym *TypeSymbol

	// ClassSym declares the reflective Class type
	ClassSym  *TypeSymbol
	ClassType Type

	// AnnotationSym is the root supertype of all annotation types
	AnnotationSym  *TypeSymbol
	AnnotationType Type

	// RepeatableSym declares the @Repeatable meta-annotation
	RepeatableSym  *TypeSymbol
	RepeatableType Type

	// DeprecatedSym declares the @Deprecated marker annotation
	DeprecatedSym  *TypeSymbol
	DeprecatedType Type

	scope map[string]*TypeSymbol
}

// NewSymtab creates a symbol table populated with the predefined types.
func NewSymtab() *Symtab {
	s := &Symtab{
		IntType:    NewPrimitiveType(TypeInt),
		FloatType:  NewPrimitiveType(TypeFloat),
		BoolType:   NewPrimitiveType(TypeBool),
		StringType: NewPrimitiveType(TypeString),
		scope:      make(map[string]*TypeSymbol),
	}

	s.UnknownSym = NewTypeSymbol("<any>", 0)
	s.ErrType = &ErrorType{Sym: s.UnknownSym}

	s.ClassSym = NewTypeSymbol("Class", 0)
	s.ClassType = s.ClassSym.Type

	s.AnnotationSym = NewTypeSymbol("Annotation", FlagAnnotation)
	s.AnnotationType = s.AnnotationSym.Type

	s.RepeatableSym = NewTypeSymbol("Repeatable", FlagAnnotation)
	s.RepeatableSym.Enter(NewMethodSymbol("value", s.ClassType))
	s.RepeatableType = s.RepeatableSym.Type

	s.DeprecatedSym = NewTypeSymbol("Deprecated", FlagAnnotation)
	s.DeprecatedType = s.DeprecatedSym.Type

	s.Enter(s.ClassSym)
	s.Enter(s.RepeatableSym)
	s.Enter(s.DeprecatedSym)

	return s
}

// Enter registers a type symbol in the global scope, replacing any previous
// entry with the same name.
func (s *Symtab) Enter(ts *TypeSymbol) {
	s.scope[ts.Name] = ts
}

// Lookup resolves a type name in the global scope, or returns nil.
func (s *Symtab) Lookup(name string) *TypeSymbol {
	return s.scope[name]
}

// CreateErrorType creates an error type preserving the attempted name.
func (s *Symtab) CreateErrorType(name string) Type {
	return &ErrorType{Name: name, Sym: s.UnknownSym}
}
