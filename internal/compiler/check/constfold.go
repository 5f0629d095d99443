package check

import "github.com/vesper-lang/vesper/internal/compiler/types"

// Folder coerces compile-time constants between primitive types.
type Folder struct{}

// NewFolder creates a constant folder.
func NewFolder() *Folder {
	return &Folder{}
}

// Coerce converts a constant value to the target primitive type. It returns
// false when the value cannot represent the target type.
func (f *Folder) Coerce(value interface{}, target types.Type) (interface{}, bool) {
	p, ok := target.(*types.PrimitiveType)
	if !ok {
		return nil, false
	}

	switch p.Name {
	case types.TypeInt:
		switch v := value.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		}
	case types.TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		}
	case types.TypeBool:
		if v, ok := value.(bool); ok {
			return v, true
		}
	case types.TypeString:
		if v, ok := value.(string); ok {
			return v, true
		}
	}
	return nil, false
}
