package types

import (
	"fmt"
	"strings"
)

// Attribute is the typed value an annotation argument resolves to. Every
// variant carries the concrete type it was attributed against; Error variants
// carry the best-effort recovered type for downstream tolerance.
type Attribute interface {
	// AttrType returns the type the value was attributed against
	AttrType() Type

	// String returns the source-like rendering of the value
	String() string

	attr()
}

// Constant represents a compile-time constant value (int, float, bool, string).
type Constant struct {
	Typ   Type
	Value interface{}
}

func (c *Constant) attr() {}

// AttrType returns the element type the constant was coerced to.
func (c *Constant) AttrType() Type { return c.Typ }

func (c *Constant) String() string {
	if s, ok := c.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", c.Value)
}

// Enum represents a reference to an enum constant.
type Enum struct {
	Typ   Type
	Const *VarSymbol
}

func (e *Enum) attr() {}

// AttrType returns the enum type.
func (e *Enum) AttrType() Type { return e.Typ }

func (e *Enum) String() string { return e.Typ.String() + "." + e.Const.Name }

// Class represents a class literal value. Value is the referenced type.
type Class struct {
	Typ   Type // the reflective Class type
	Value Type // the type the literal refers to
}

func (c *Class) attr() {}

// AttrType returns the reflective Class type.
func (c *Class) AttrType() Type { return c.Typ }

func (c *Class) String() string { return c.Value.String() + ".class" }

// Array represents an ordered array of attribute values.
type Array struct {
	Typ    Type
	Values []Attribute
}

func (a *Array) attr() {}

// AttrType returns the array type.
func (a *Array) AttrType() Type { return a.Typ }

func (a *Array) String() string {
	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ElementValue binds a declared annotation element to its attributed value.
type ElementValue struct {
	Element *MethodSymbol
	Value   Attribute
}

// PositionUnknown is the placeholder type-annotation position used until the
// type-annotation phase computes a real one.
const PositionUnknown = -1

// Compound is a fully resolved annotation instance: its type plus the ordered
// element/value bindings. Synthesized marks containers the engine generated
// for repeated annotations, as opposed to user-written ones; ForType marks
// compounds entered as type annotations rather than declaration annotations.
type Compound struct {
	Typ         Type
	Values      []ElementValue
	Synthesized bool
	ForType     bool
	Position    int
}

func (c *Compound) attr() {}

// AttrType returns the annotation type.
func (c *Compound) AttrType() Type { return c.Typ }

func (c *Compound) String() string {
	if len(c.Values) == 0 {
		return "@" + c.Typ.String()
	}
	parts := make([]string, len(c.Values))
	for i, ev := range c.Values {
		parts[i] = ev.Element.Name + "=" + ev.Value.String()
	}
	return "@" + c.Typ.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Member returns the value bound to the named element, or nil.
func (c *Compound) Member(name string) Attribute {
	for _, ev := range c.Values {
		if ev.Element.Name == name {
			return ev.Value
		}
	}
	return nil
}

// UnresolvedClass represents a class literal whose referenced type could not
// be resolved. The attempted name is preserved for later diagnostics.
type UnresolvedClass struct {
	Typ       Type
	ClassName string
}

func (u *UnresolvedClass) attr() {}

// AttrType returns the expected Class type.
func (u *UnresolvedClass) AttrType() Type { return u.Typ }

func (u *UnresolvedClass) String() string { return u.ClassName + ".class" }

// Error is the recovery attribute produced when a value cannot be attributed.
type Error struct {
	Typ Type
}

func (e *Error) attr() {}

// AttrType returns the best-effort recovered type.
func (e *Error) AttrType() Type { return e.Typ }

func (e *Error) String() string { return "<error>" }
