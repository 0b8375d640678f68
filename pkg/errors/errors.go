package errors

import (
	"fmt"
	"os"
	"strings"
)

// PhloxError is the interface implemented by all Phlox errors.
type PhloxError interface {
	error // Embed the standard error interface
	Pos() Position
	Kind() string // e.g., "Syntax", "Bind", "Internal"
	// Message returns the specific error message without position info.
	// This might be useful if the caller wants to format the error differently.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// --- Concrete Error Types ---

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// BindError represents a non-fatal problem found while binding declarations
// to symbols, such as a base class or interface name that does not resolve.
// The lowering core absorbs these locally (the reference becomes a Missing
// placeholder) and records the BindError for a later pass to surface.
type BindError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *BindError) Error() string {
	return fmt.Sprintf("Bind Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *BindError) Pos() Position   { return e.Position }
func (e *BindError) Kind() string    { return "Bind" }
func (e *BindError) Message() string { return e.Msg }
func (e *BindError) Unwrap() error   { return e.Cause }
func (e *BindError) CausedBy(cause error) *BindError {
	e.Cause = cause
	return e
}

// InternalError represents a violated compiler invariant. These are not
// user errors: they indicate either an unsupported construct that reached
// past the front-end guards (a generic type reference, for instance) or a
// bug in the compiler itself, and they abort the current pass via panic.
type InternalError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("Internal Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *InternalError) Pos() Position   { return e.Position }
func (e *InternalError) Kind() string    { return "Internal" }
func (e *InternalError) Message() string { return e.Msg }
func (e *InternalError) Unwrap() error   { return e.Cause }
func (e *InternalError) CausedBy(cause error) *InternalError {
	e.Cause = cause
	return e
}

// --- Error Reporting ---

// DisplayErrors prints a list of Phlox errors to stderr in a user-friendly
// format, including the source line and position marker.
func DisplayErrors(errs []PhloxError) {
	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		// Without a unit or valid line info, print a generic error line.
		if pos.Unit == nil || pos.Line < 1 || pos.Line > len(pos.Unit.Lines()) {
			fmt.Fprintf(os.Stderr, "%s Error: %s\n", kind, msg)
			continue
		}

		sourceLine := pos.Unit.Lines()[pos.Line-1]
		trimmedLine := strings.TrimRight(sourceLine, "\r\n\t ")

		// Format: <Kind> Error at <Line>:<Column>: <Message>
		fmt.Fprintf(os.Stderr, "%s Error at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)
		fmt.Fprintf(os.Stderr, "  %s\n", trimmedLine)

		marker := strings.Repeat(" ", pos.Column) + "^"
		fmt.Fprintf(os.Stderr, "  %s\n", marker)
		fmt.Fprintln(os.Stderr)
	}
}
