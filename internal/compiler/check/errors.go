package check

import (
	"fmt"

	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
)

// Diagnostic codes reported by the attribution collaborators.
const (
	CodeTypeMismatch        diag.Code = "CHK001"
	CodeUnknownType         diag.Code = "CHK002"
	CodeCannotResolveMember diag.Code = "CHK003"
	CodeDuplicateElement    diag.Code = "CHK010"
	CodeMissingElement      diag.Code = "CHK011"
)

func errTypeMismatch(loc ast.SourceLocation, got, want string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeTypeMismatch,
		Message:  fmt.Sprintf("type mismatch: got '%s', expected '%s'", got, want),
		Location: loc,
	}
}

func errUnknownType(loc ast.SourceLocation, name string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeUnknownType,
		Message:  fmt.Sprintf("unknown type '%s'", name),
		Location: loc,
	}
}

func errCannotResolveMember(loc ast.SourceLocation, name, owner string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeCannotResolveMember,
		Message:  fmt.Sprintf("cannot resolve member '%s' in '%s'", name, owner),
		Location: loc,
	}
}

func errDuplicateElement(loc ast.SourceLocation, name, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeDuplicateElement,
		Message:  fmt.Sprintf("element '%s' assigned more than once in annotation '%s'", name, typ),
		Location: loc,
	}
}

func errMissingElement(loc ast.SourceLocation, name, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeMissingElement,
		Message:  fmt.Sprintf("annotation '%s' is missing a value for element '%s'", typ, name),
		Location: loc,
	}
}

// Explanations maps checker diagnostic codes to longer help text, surfaced
// by the explain command.
var Explanations = map[diag.Code]string{
	CodeTypeMismatch:        "The value's type is not usable where the declared element type is expected. Annotation element types admit no conversions beyond constant widening from int to float.",
	CodeUnknownType:         "The name does not resolve to any declared type in scope.",
	CodeCannotResolveMember: "The qualified name does not resolve to a member of the named type.",
	CodeDuplicateElement:    "Each element of an annotation may be assigned at most once.",
	CodeMissingElement:      "Every annotation element that declares no default value must be assigned explicitly.",
}
