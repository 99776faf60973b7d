/*
Package scopeparse parses bracketed, dotted-key scope headers like

	[a.b."c d"]

Consists of subpackages:
  - source: source text and line/column positions;
  - lexer: lexical analyzer and token stream cursor;
  - grammar: lexemes, token kinds, and rule names of the scope header grammar;
  - parser: recursive-descent parser driven by a pluggable Reducer;
  - event: alternate parser emitting structural events, and reducers consuming them;
  - scope: convenience functions wiring the pieces together;
  - cmd/scopeparse: console utility.

Both pipelines (parser + Reducer, event.Parse + event.Reduce) produce the same keys
for every valid input.
*/
package scopeparse

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors = 101 // used by lexer
	SyntaxErrors  = 201 // used by lexer.Stream and parser
	ReducerErrors = 301 // used by parser and event reducers
	FormatErrors  = 401 // used by scope
	ConfigErrors  = 501 // used by configuration loaders
)

// Error is the error type used by scopeparse subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains 1-based line number in source text or 0.
	Line int

	// Col contains 0-based byte column in source text, meaningful only if Line is not 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number.
	Col() int
}

// NewError creates new Error structure.
// line and col will be added to error message if line is non-zero, name is added if non-empty.
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 {
		if name != "" {
			msg += fmt.Sprintf(" in %s", name)
		}
		msg += fmt.Sprintf(" at line %d col %d", line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// Code returns the code of the first *Error in e's chain or 0.
func Code(e error) int {
	var ee *Error
	if errors.As(e, &ee) {
		return ee.Code
	}
	return 0
}
