package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single compiler error, warning, or info message
type Diagnostic struct {
	Severity Severity
	Message  string
	Offset   int
	Line     int
	Column   int
	Hint     string // optional suggestion
}

// Diagnostics manages a collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Add appends an already built diagnostic
func (d *Diagnostics) Add(item Diagnostic) {
	d.items = append(d.items, item)
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// WarningWithHint adds a warning diagnostic with an optional hint
func (d *Diagnostics) WarningWithHint(line, col int, msg, hint string) {
	d.items = append(d.items, Diagnostic{
		Severity: Warning,
		Message:  msg,
		Line:     line,
		Column:   col,
		Hint:     hint,
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errors = append(errors, item)
		}
	}
	return errors
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// WarningCount returns the number of warning-level diagnostics
func (d *Diagnostics) WarningCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Warning {
			count++
		}
	}
	return count
}

// Format returns human-readable error messages
// Output format:
//
//	error[filename:3:10]: undefined variable 'x'
//	  hint: assign 'x' before reading it
//	warning[filename:5:1]: 'z' is assigned but never used
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		builder.WriteString(item.Format(filename))

		// Add newline unless it's the last item
		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Format renders a single diagnostic, including its hint line.
func (item Diagnostic) Format(filename string) string {
	s := fmt.Sprintf("%s[%s:%d:%d]: %s",
		item.Severity.String(),
		filename,
		item.Line,
		item.Column,
		item.Message,
	)
	if item.Hint != "" {
		s += fmt.Sprintf("\n  hint: %s", item.Hint)
	}
	return s
}

// Positioned is implemented by every error the pipeline returns.
type Positioned interface {
	error
	Position() (offset, line, col int)
}

// hinter lets an error suggest a fix.
type hinter interface {
	Hint() string
}

// FromError converts a pipeline error into an error-level diagnostic.
// Errors without position information are reported at 0:0.
func FromError(err error) Diagnostic {
	d := Diagnostic{Severity: Error, Message: err.Error()}

	var pos Positioned
	if errors.As(err, &pos) {
		d.Offset, d.Line, d.Column = pos.Position()
	}
	var h hinter
	if errors.As(err, &h) {
		d.Hint = h.Hint()
	}
	return d
}
