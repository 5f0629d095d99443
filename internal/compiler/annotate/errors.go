package annotate

import (
	"fmt"

	"github.com/vesper-lang/vesper/internal/compiler/ast"
	"github.com/vesper-lang/vesper/internal/compiler/diag"
)

// Diagnostic codes reported during annotation attribution.
const (
	CodeNotAnnotationType           diag.Code = "ANN101"
	CodeMalformedArgument           diag.Code = "ANN102"
	CodeUnknownElement              diag.Code = "ANN103"
	CodeValueNotAllowable           diag.Code = "ANN104"
	CodeNonConstantValue            diag.Code = "ANN105"
	CodeNotClassLiteral             diag.Code = "ANN106"
	CodeNotEnumConstant             diag.Code = "ANN107"
	CodeValueMustBeAnnotation       diag.Code = "ANN108"
	CodeExplicitElementType         diag.Code = "ANN109"
	CodeCannotResolve               diag.Code = "ANN110"
	CodeAlreadyAnnotated            diag.Code = "ANN111"
	CodeAnnotationNotValidForType   diag.Code = "ANN112"
	CodeRepeatedNotSupported        diag.Code = "ANN113"
	CodeMissingContainer            diag.Code = "ANN120"
	CodeInvalidRepeatableDecl       diag.Code = "ANN121"
	CodeContainerNoValue            diag.Code = "ANN122"
	CodeContainerMultipleValues     diag.Code = "ANN123"
	CodeContainerValueReturn        diag.Code = "ANN124"
	CodeRepeatedAndContainerPresent diag.Code = "ANN125"
	CodeInvalidRepeated             diag.Code = "ANN126"
)

func errNotAnnotationType(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeNotAnnotationType,
		Message:  fmt.Sprintf("type '%s' is not an annotation type", typ),
		Location: loc,
	}
}

func errMalformedArgument(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeMalformedArgument,
		Message:  "annotation argument must have the form name=value",
		Location: loc,
	}
}

func errUnknownElement(loc ast.SourceLocation, name, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeUnknownElement,
		Message:  fmt.Sprintf("no element named '%s' in annotation type '%s'", name, typ),
		Location: loc,
	}
}

func errValueNotAllowable(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeValueNotAllowable,
		Message:  "annotation value is not of an allowable type",
		Location: loc,
	}
}

func errNonConstantValue(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeNonConstantValue,
		Message:  "annotation value must be a compile-time constant",
		Location: loc,
	}
}

func errNotClassLiteral(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeNotClassLiteral,
		Message:  "annotation value must be a class literal",
		Location: loc,
	}
}

func errNotEnumConstant(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeNotEnumConstant,
		Message:  "annotation value must be an enum constant",
		Location: loc,
	}
}

func errValueMustBeAnnotation(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeValueMustBeAnnotation,
		Message:  "annotation value must be an annotation",
		Location: loc,
	}
}

func errExplicitElementType(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeExplicitElementType,
		Message:  "explicit array element type is not allowed in an annotation value",
		Location: loc,
	}
}

func errCannotResolve(loc ast.SourceLocation, name string, cause error) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeCannotResolve,
		Message:  fmt.Sprintf("cannot resolve type '%s': %v", name, cause),
		Location: loc,
	}
}

func errAlreadyAnnotated(loc ast.SourceLocation, name string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeAlreadyAnnotated,
		Message:  fmt.Sprintf("'%s' already carries attributed annotations", name),
		Location: loc,
	}
}

func errAnnotationNotValidForType(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeAnnotationNotValidForType,
		Message:  fmt.Sprintf("annotation is not valid for an element of type '%s'", typ),
		Location: loc,
	}
}

func errRepeatedNotSupported(loc ast.SourceLocation) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeRepeatedNotSupported,
		Message:  "repeated annotations are not supported at this source level",
		Location: loc,
	}
}

func errMissingContainer(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeMissingContainer,
		Message:  fmt.Sprintf("annotation type '%s' is duplicated and does not declare a containing annotation type", typ),
		Location: loc,
	}
}

func errInvalidRepeatableDecl(loc ast.SourceLocation, name string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeInvalidRepeatableDecl,
		Message:  fmt.Sprintf("repeatable declaration on annotation type '%s' is malformed", name),
		Location: loc,
	}
}

func errContainerNoValue(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeContainerNoValue,
		Message:  fmt.Sprintf("containing annotation type '%s' declares no value element", typ),
		Location: loc,
	}
}

func errContainerMultipleValues(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeContainerMultipleValues,
		Message:  fmt.Sprintf("containing annotation type '%s' declares more than one value member", typ),
		Location: loc,
	}
}

func errContainerValueReturn(loc ast.SourceLocation, container, got, want string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeContainerValueReturn,
		Message:  fmt.Sprintf("value element of containing annotation type '%s' has type '%s', expected '%s'", container, got, want),
		Location: loc,
	}
}

func errRepeatedAndContainerPresent(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeRepeatedAndContainerPresent,
		Message:  fmt.Sprintf("container '%s' must not be present at the same time as the element it contains", typ),
		Location: loc,
	}
}

func errInvalidRepeated(loc ast.SourceLocation, typ string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Code:     CodeInvalidRepeated,
		Message:  fmt.Sprintf("annotation type '%s' is duplicated and cannot be repeated", typ),
		Location: loc,
	}
}

// Explanations maps annotation diagnostic codes to longer help text, surfaced
// by the explain command.
var Explanations = map[diag.Code]string{
	CodeNotAnnotationType:           "The name used in an @ position resolved to a type that is not declared as an annotation type. Only annotation types can be applied as annotations.",
	CodeMalformedArgument:           "Annotation arguments must be written as name=value pairs. A single positional argument is allowed only as shorthand for value=.",
	CodeUnknownElement:              "The named element does not exist on the annotation type. Check the annotation type's declared elements.",
	CodeValueNotAllowable:           "Annotation element values are limited to primitives, strings, class literals, enum constants, annotations, and arrays of those.",
	CodeNonConstantValue:            "A primitive or string annotation element value must be a compile-time constant expression.",
	CodeNotClassLiteral:             "A class-typed annotation element value must be written as a class literal.",
	CodeNotEnumConstant:             "An enum-typed annotation element value must name one of the enum's constants.",
	CodeValueMustBeAnnotation:       "An annotation-typed element value must itself be an annotation literal.",
	CodeExplicitElementType:         "Array values in annotations use the brace form without an explicit element type.",
	CodeCannotResolve:               "The expected element type could not be completed; its declaration failed to resolve.",
	CodeAlreadyAnnotated:            "Annotations were attributed onto a symbol that already carries attributed annotations. This usually indicates a duplicate declaration.",
	CodeAnnotationNotValidForType:   "An annotation literal appeared as an element value, but the element's declared type is not an annotation type.",
	CodeRepeatedNotSupported:        "The configured source level does not allow the same annotation type to appear more than once on a declaration.",
	CodeMissingContainer:            "The same annotation type appears more than once, but it is not declared repeatable, so there is no containing annotation type to collate the repetitions into.",
	CodeInvalidRepeatableDecl:       "The repeatable meta-annotation on the annotation type's declaration is malformed; it must carry a single value element holding a class literal.",
	CodeContainerNoValue:            "The containing annotation type named by a repeatable declaration must declare a value element.",
	CodeContainerMultipleValues:     "The containing annotation type named by a repeatable declaration must declare exactly one value member.",
	CodeContainerValueReturn:        "The value element of a containing annotation type must return an array of the repeated annotation type.",
	CodeRepeatedAndContainerPresent: "A containing annotation type cannot be written explicitly on the same declaration that repeats its contained annotation.",
	CodeInvalidRepeated:             "The same annotation type appears more than once and its repeatable declaration is invalid, so the repetitions cannot be collated.",
}
