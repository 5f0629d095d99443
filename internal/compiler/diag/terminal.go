package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	locColor     = color.New(color.FgCyan)
	codeColor    = color.New(color.FgHiBlack)
)

// FormatForTerminal formats a diagnostic for terminal output with colors
func (d *Diagnostic) FormatForTerminal() string {
	var sb strings.Builder

	severity := errorColor
	if d.Severity == SeverityWarning {
		severity = warningColor
	}
	sb.WriteString(fmt.Sprintf("%s: %s %s\n",
		severity.Sprint(string(d.Severity)),
		d.Message,
		codeColor.Sprintf("[%s]", d.Code)))

	file := d.File
	if file == "" {
		file = "<source>"
	}
	sb.WriteString(fmt.Sprintf("  %s %s:%d:%d\n",
		locColor.Sprint("-->"),
		file, d.Location.Line, d.Location.Column))

	return sb.String()
}

// FormatListForTerminal formats a list of diagnostics with a trailing summary
func FormatListForTerminal(l List) string {
	var sb strings.Builder
	for _, d := range l {
		sb.WriteString(d.FormatForTerminal())
		sb.WriteString("\n")
	}

	errors, warnings := l.Count()
	if errors > 0 {
		sb.WriteString(errorColor.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		if errors > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(warningColor.Sprintf("%d warning(s)", warnings))
	}
	if errors > 0 || warnings > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}
