package diag

import (
	"go.uber.org/zap"

	"github.com/vesper-lang/vesper/internal/compiler/ast"
)

// Log is the standard Sink implementation. It accumulates diagnostics,
// stamps each one with the ambient current-source file, and traces reports
// through a zap logger. The model is single-threaded: one compilation context
// drains its work on one logical goroutine, so Log does no locking.
type Log struct {
	diags  List
	source string

	// deferPos is the position deferred reports should attribute to when the
	// reporting site has no position of its own; nil means immediate.
	deferPos *ast.SourceLocation

	logger *zap.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithLogger installs a zap logger for diagnostic tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// NewLog creates a diagnostic log. Tracing is disabled unless a logger is
// provided.
func NewLog(opts ...Option) *Log {
	l := &Log{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// UseSource swaps the ambient current-source file and returns the previous
// one, so callers can restore it with a deferred call on every exit path.
func (l *Log) UseSource(file string) (prev string) {
	prev = l.source
	l.source = file
	return prev
}

// CurrentSource returns the ambient current-source file.
func (l *Log) CurrentSource() string { return l.source }

// SetDeferPos swaps the deferred reporting position and returns the previous
// one. A nil position means reports are attributed immediately.
func (l *Log) SetDeferPos(pos *ast.SourceLocation) (prev *ast.SourceLocation) {
	prev = l.deferPos
	l.deferPos = pos
	return prev
}

// DeferPos returns the current deferred reporting position, or nil.
func (l *Log) DeferPos() *ast.SourceLocation { return l.deferPos }

// Error reports an error-severity diagnostic.
func (l *Log) Error(d *Diagnostic) {
	d.Severity = SeverityError
	l.report(d)
}

// Warning reports a warning-severity diagnostic.
func (l *Log) Warning(d *Diagnostic) {
	d.Severity = SeverityWarning
	l.report(d)
}

func (l *Log) report(d *Diagnostic) {
	if d.File == "" {
		d.File = l.source
	}
	l.diags = append(l.diags, d)
	l.logger.Debug("diagnostic reported",
		zap.String("code", string(d.Code)),
		zap.String("severity", string(d.Severity)),
		zap.String("file", d.File),
		zap.Int("line", d.Location.Line),
		zap.String("message", d.Message),
	)
}

// Diagnostics returns everything reported so far, in report order.
func (l *Log) Diagnostics() List { return l.diags }

// NErrors returns the number of error-severity diagnostics reported.
func (l *Log) NErrors() int {
	n, _ := l.diags.Count()
	return n
}
