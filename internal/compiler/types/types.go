// Package types defines the symbol and type representation used by the Vesper
// annotation engine: named class/enum/annotation types, primitives, arrays,
// error types, and the attribute values annotation arguments resolve to.
package types

// Type represents a type in the Vesper type system.
type Type interface {
	// String returns the human-readable representation of the type
	String() string

	// IsErroneous returns true if this type resulted from a failed resolution
	IsErroneous() bool

	// Symbol returns the declaring type symbol, or nil for primitives and arrays
	Symbol() *TypeSymbol

	// Equals checks if two types are the same type. Named types compare by
	// declaring symbol identity, not structurally.
	Equals(other Type) bool
}

// PrimitiveType represents a built-in primitive type (int, float, bool, string).
type PrimitiveType struct {
	Name  string
	Const interface{} // compile-time constant value, nil when not constant
}

// NewPrimitiveType creates a new primitive type.
func NewPrimitiveType(name string) *PrimitiveType {
	return &PrimitiveType{Name: name}
}

// NewConstType creates a primitive type carrying a compile-time constant.
func NewConstType(name string, value interface{}) *PrimitiveType {
	return &PrimitiveType{Name: name, Const: value}
}

func (p *PrimitiveType) String() string { return p.Name }

// IsErroneous always returns false for primitive types.
func (p *PrimitiveType) IsErroneous() bool { return false }

// Symbol returns nil; primitive types have no declaring symbol.
func (p *PrimitiveType) Symbol() *TypeSymbol { return nil }

// Equals checks if other is the same primitive type. Constant values do not
// participate in type identity.
func (p *PrimitiveType) Equals(other Type) bool {
	op, ok := other.(*PrimitiveType)
	return ok && p.Name == op.Name
}

// NamedType represents a declared class, enum, or annotation type.
type NamedType struct {
	Sym *TypeSymbol
}

// NewNamedType creates a type referring to the given declared symbol.
func NewNamedType(sym *TypeSymbol) *NamedType {
	return &NamedType{Sym: sym}
}

func (n *NamedType) String() string { return n.Sym.Name }

// IsErroneous always returns false for named types.
func (n *NamedType) IsErroneous() bool { return false }

// Symbol returns the declaring type symbol.
func (n *NamedType) Symbol() *TypeSymbol { return n.Sym }

// Equals checks declaring-symbol identity.
func (n *NamedType) Equals(other Type) bool {
	on, ok := other.(*NamedType)
	return ok && n.Sym == on.Sym
}

// ArrayType represents an array type (T[]).
type ArrayType struct {
	Elem Type
}

// MakeArrayType creates an array type with the given element type.
func MakeArrayType(elem Type) *ArrayType {
	return &ArrayType{Elem: elem}
}

func (a *ArrayType) String() string { return a.Elem.String() + "[]" }

// IsErroneous returns true if the element type is erroneous.
func (a *ArrayType) IsErroneous() bool { return a.Elem.IsErroneous() }

// Symbol returns nil; array types have no declaring symbol.
func (a *ArrayType) Symbol() *TypeSymbol { return nil }

// Equals checks element-type equality.
func (a *ArrayType) Equals(other Type) bool {
	oa, ok := other.(*ArrayType)
	return ok && a.Elem.Equals(oa.Elem)
}

// ErrorType is the recovery type produced when resolution or checking fails.
// It carries the best-effort original type (or attempted name) so downstream
// consumers can keep producing diagnostics.
type ErrorType struct {
	Name string // attempted name, when known
	Orig Type   // type before the downgrade, when known
	Sym  *TypeSymbol
}

func (e *ErrorType) String() string {
	if e.Name != "" {
		return e.Name
	}
	if e.Orig != nil {
		return e.Orig.String()
	}
	return "<error>"
}

// IsErroneous always returns true for error types.
func (e *ErrorType) IsErroneous() bool { return true }

// Symbol returns the placeholder symbol associated with the error type.
func (e *ErrorType) Symbol() *TypeSymbol { return e.Sym }

// Equals always returns false; error types never equal anything.
func (e *ErrorType) Equals(other Type) bool { return false }

// NewErrorType creates an error type wrapping the given original type.
func NewErrorType(orig Type) *ErrorType {
	et := &ErrorType{Orig: orig}
	if orig != nil {
		et.Sym = orig.Symbol()
	}
	return et
}

// IsPrimitive reports whether t is a primitive type.
func IsPrimitive(t Type) bool {
	_, ok := t.(*PrimitiveType)
	return ok
}

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	_, ok := t.(*ArrayType)
	return ok
}

// ElemType returns the element type of an array type, or nil.
func ElemType(t Type) Type {
	if a, ok := t.(*ArrayType); ok {
		return a.Elem
	}
	return nil
}

// IsSameType reports whether a and b are the same type.
func IsSameType(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equals(b)
}

// IsAnnotationType reports whether t is a declared annotation type.
func IsAnnotationType(t Type) bool {
	sym := t.Symbol()
	return sym != nil && sym.IsAnnotationType()
}

// IsEnumType reports whether t is a declared enum type.
func IsEnumType(t Type) bool {
	sym := t.Symbol()
	return sym != nil && sym.Flags&FlagEnum != 0
}

// ConstValue returns the compile-time constant carried by t, or nil.
func ConstValue(t Type) interface{} {
	if p, ok := t.(*PrimitiveType); ok {
		return p.Const
	}
	return nil
}

// OriginalType unwraps an error type to the type it downgraded from. Other
// types are returned unchanged.
func OriginalType(t Type) Type {
	if et, ok := t.(*ErrorType); ok && et.Orig != nil {
		return et.Orig
	}
	return t
}
