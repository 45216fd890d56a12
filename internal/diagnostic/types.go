package diagnostic

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"reqschema/internal/common"
)

// Diagnostics holds the diagnostic information collected while loading a
// source model.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// File is the source file this relates to (if any).
	File string
	// Symbol names the class or member this relates to (if any).
	Symbol string
}

// Diagnostic codes emitted by the source adapters.
const (
	CodeReadFailed     = "read_failed"
	CodeParseFailed    = "parse_failed"
	CodeSyntaxError    = "syntax_error"
	CodePackageError   = "package_error"
	CodeDuplicateClass = "duplicate_class"
	CodeUnsupported    = "unsupported"
)

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, file, symbol string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		File:     file,
		Symbol:   symbol,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, file, symbol string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		File:     file,
		Symbol:   symbol,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, file, symbol string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		File:     file,
		Symbol:   symbol,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic to logger, errors at Error level, warnings at
// Warn and infos at Debug.
func (d *Diagnostics) Log(logger *slog.Logger) {
	if logger == nil {
		return
	}

	for _, e := range d.Errors {
		logger.Error(e.Message, e.attrs()...)
	}

	for _, w := range d.Warnings {
		logger.Warn(w.Message, w.attrs()...)
	}

	for _, i := range d.Infos {
		logger.Debug(i.Message, i.attrs()...)
	}
}

func (d Diagnostic) attrs() []any {
	attrs := []any{slog.String("code", d.Code)}
	if d.File != "" {
		attrs = append(attrs, slog.String("file", d.File))
	}

	if d.Symbol != "" {
		attrs = append(attrs, slog.String("symbol", d.Symbol))
	}

	return attrs
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.File != "" {
		prefix = append(prefix, d.File)
	}

	if d.Symbol != "" {
		prefix = append(prefix, "["+d.Symbol+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
