package diag

import (
	"strings"
	"testing"

	"github.com/vesper-lang/vesper/internal/compiler/ast"
)

func report(l *Log, code Code, msg string) {
	l.Error(&Diagnostic{Code: code, Message: msg, Location: ast.SourceLocation{Line: 1, Column: 2}})
}

func TestLogStampsCurrentSource(t *testing.T) {
	l := NewLog()
	prev := l.UseSource("a.vsp")
	if prev != "" {
		t.Errorf("initial source should be empty, got %q", prev)
	}

	report(l, "ANN101", "first")

	restored := l.UseSource("b.vsp")
	if restored != "a.vsp" {
		t.Errorf("UseSource should return the previous source, got %q", restored)
	}
	report(l, "ANN101", "second")

	diags := l.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].File != "a.vsp" || diags[1].File != "b.vsp" {
		t.Errorf("files = %q, %q; want a.vsp, b.vsp", diags[0].File, diags[1].File)
	}
}

func TestLogPreStampedFileKept(t *testing.T) {
	l := NewLog()
	l.UseSource("current.vsp")
	l.Error(&Diagnostic{Code: "ANN101", File: "other.vsp"})

	if got := l.Diagnostics()[0].File; got != "other.vsp" {
		t.Errorf("File = %q, want other.vsp", got)
	}
}

func TestSetDeferPosSaveRestore(t *testing.T) {
	l := NewLog()
	pos := &ast.SourceLocation{Line: 7, Column: 3}

	if prev := l.SetDeferPos(pos); prev != nil {
		t.Error("initial defer position should be nil")
	}
	if l.DeferPos() != pos {
		t.Error("DeferPos should return the installed position")
	}
	if prev := l.SetDeferPos(nil); prev != pos {
		t.Error("SetDeferPos should return the previous position")
	}
}

func TestSeverityCounting(t *testing.T) {
	l := NewLog()
	l.Error(&Diagnostic{Code: "ANN101"})
	l.Error(&Diagnostic{Code: "ANN104"})
	l.Warning(&Diagnostic{Code: "CHK001"})

	errors, warnings := l.Diagnostics().Count()
	if errors != 2 || warnings != 1 {
		t.Errorf("Count() = (%d, %d), want (2, 1)", errors, warnings)
	}
	if l.NErrors() != 2 {
		t.Errorf("NErrors() = %d, want 2", l.NErrors())
	}
	if !l.Diagnostics().HasErrors() {
		t.Error("HasErrors should report true")
	}
	if got := len(l.Diagnostics().ByCode("ANN104")); got != 1 {
		t.Errorf("ByCode(ANN104) has %d entries, want 1", got)
	}
}

func TestDiagnosticFormat(t *testing.T) {
	d := &Diagnostic{
		Code:     "ANN103",
		Severity: SeverityError,
		Message:  "no element named 'x'",
		Location: ast.SourceLocation{Line: 4, Column: 9},
		File:     "main.vsp",
	}

	got := d.Format()
	for _, want := range []string{"main.vsp:4:9", "ERROR", "[ANN103]", "no element named 'x'"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() = %q, missing %q", got, want)
		}
	}
}

func TestFormatForTerminal(t *testing.T) {
	d := &Diagnostic{
		Code:     "ANN120",
		Severity: SeverityError,
		Message:  "missing container",
		Location: ast.SourceLocation{Line: 2, Column: 5},
		File:     "a.vsp",
	}

	out := d.FormatForTerminal()
	for _, want := range []string{"missing container", "ANN120", "a.vsp:2:5"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatForTerminal() = %q, missing %q", out, want)
		}
	}
}

func TestFormatListForTerminalSummary(t *testing.T) {
	l := List{
		{Code: "ANN101", Severity: SeverityError, Message: "bad"},
		{Code: "CHK001", Severity: SeverityWarning, Message: "iffy"},
	}

	out := FormatListForTerminal(l)
	if !strings.Contains(out, "1 error(s)") || !strings.Contains(out, "1 warning(s)") {
		t.Errorf("summary missing from output: %q", out)
	}
}

func TestListToJSON(t *testing.T) {
	l := List{
		{Code: "ANN101", Severity: SeverityError, Message: "m"},
	}
	out, err := l.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}
	if !strings.Contains(out, `"ANN101"`) {
		t.Errorf("JSON output missing code: %s", out)
	}
}
