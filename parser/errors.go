package parser

import (
	"fmt"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates that the next token cannot continue current rule.
	UnexpectedTokenError = lexer.EndOfStreamError + 1

	// InterfaceViolationError indicates that a reducer operation was invoked but not supplied.
	InterfaceViolationError = scopeparse.ReducerErrors
)

// SyntaxError describes an unexpected token.
type SyntaxError struct {
	// Found is the offending token.
	Found lexer.Token
	// Text is the source text of Found.
	Text string
	// Expected lists token kinds that could continue current rule.
	Expected lexer.KindSet

	err *scopeparse.Error
}

func (e *SyntaxError) Error() string {
	return e.err.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// UnexpectedToken creates SyntaxError for token t read from s.
func UnexpectedToken(s *lexer.Stream, t lexer.Token, expected lexer.KindSet) *SyntaxError {
	var found string
	if t.Kind == lexer.EOF {
		found = "end of input"
	} else {
		found = fmt.Sprintf("token %s %q", t.Kind, s.TextOf(t))
	}
	return &SyntaxError{
		Found:    t,
		Text:     s.TextOf(t),
		Expected: expected,
		err:      scopeparse.FormatErrorPos(s.PosOf(t), UnexpectedTokenError, "unexpected %s, expecting %s", found, expected),
	}
}

func interfaceViolationError(method string) *scopeparse.Error {
	return scopeparse.FormatError(InterfaceViolationError, "reducer method %s is not supplied", method)
}
