// Package diag provides structured diagnostics for the Vesper compiler front
// end: error codes, severities, a fire-and-forget sink with ambient source
// tracking, and formatting for both terminal output and JSON.
package diag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vesper-lang/vesper/internal/compiler/ast"
)

// Code represents a unique diagnostic code (e.g. "ANN103")
type Code string

// Severity indicates the severity level of a diagnostic
type Severity string

const (
	// SeverityError indicates an error that prevents compilation.
	SeverityError Severity = "error"
	// SeverityWarning indicates a warning that suggests potential issues.
	SeverityWarning Severity = "warning"
)

// Diagnostic represents a single reported problem with enough information
// for both human-readable output and machine consumption
type Diagnostic struct {
	Code     Code               `json:"code"`
	Severity Severity           `json:"severity"`
	Message  string             `json:"message"`
	Location ast.SourceLocation `json:"location"`
	File     string             `json:"file,omitempty"`
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return d.Format()
}

// Format returns a single-line human-readable rendering
func (d *Diagnostic) Format() string {
	file := d.File
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d: %s [%s] %s",
		file, d.Location.Line, d.Location.Column,
		strings.ToUpper(string(d.Severity)), d.Code, d.Message)
}

// ToJSON returns the diagnostic as a JSON string
func (d *Diagnostic) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// List is a collection of diagnostics
type List []*Diagnostic

// Error implements the error interface
func (l List) Error() string {
	if len(l) == 0 {
		return "no diagnostics"
	}
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.Format())
	}
	return b.String()
}

// HasErrors returns true if the list contains any error-severity diagnostics
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics by severity
func (l List) Count() (errors, warnings int) {
	for _, d := range l {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return
}

// ByCode returns the diagnostics carrying the given code
func (l List) ByCode(code Code) List {
	var out List
	for _, d := range l {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// ToJSON returns all diagnostics as a JSON array
func (l List) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Sink is the channel diagnostics are reported through. Implementations must
// not panic or return errors; reporting is fire-and-forget.
type Sink interface {
	Error(d *Diagnostic)
	Warning(d *Diagnostic)
}
