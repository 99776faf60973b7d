// Package parser defines recursive-descent scope header parser.
//
// Every transition is chosen by peeking at the next token, so a sub-rule is entered
// only when its first token is known to be valid.
package parser

import (
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/source"
)

type scopeState int

const (
	brackOpenState scopeState = iota
	keyState
	dotState
	endState
)

var (
	openSet       = lexer.KindSet{grammar.Open}
	keyOrCloseSet = lexer.KindSet{grammar.Close}.Union(grammar.FirstKey)
	dotOrCloseSet = lexer.KindSet{grammar.Close, grammar.Dot}
	eofSet        = lexer.KindSet{lexer.EOF}
)

// ParseKey consumes a key token and returns its value built by r.
// The cursor is not moved if the next token cannot start a key.
func ParseKey[R any](s *lexer.Stream, r Reducer[R]) (string, error) {
	if r == nil {
		return "", interfaceViolationError("Key(token, src)")
	}

	t, e := s.Peek()
	if e != nil {
		return "", e
	}
	if !grammar.FirstKey.Has(t.Kind) {
		return "", UnexpectedToken(s, t, grammar.FirstKey)
	}
	if t, e = s.Advance(); e != nil {
		return "", e
	}

	return r.Key(t, s.Source())
}

// ParseScope consumes a scope header and returns the result of r.Scope.
// Tokens following the closing bracket are left in s.
func ParseScope[R any](s *lexer.Stream, r Reducer[R]) (result R, e error) {
	if r == nil {
		e = interfaceViolationError("Scope(keys, src)")
		return
	}

	var t lexer.Token
	keys := []string{}
	state := brackOpenState
	for state != endState {
		switch state {
		case brackOpenState:
			t, e = s.Advance()
			if e == nil && t.Kind != grammar.Open {
				e = UnexpectedToken(s, t, openSet)
			}
			if e == nil {
				t, e = s.Peek()
			}
			if e != nil {
				return
			}

			switch {
			case t.Kind == grammar.Close:
				_, e = s.Advance()
				state = endState
			case grammar.FirstKey.Has(t.Kind):
				state = keyState
			default:
				e = UnexpectedToken(s, t, keyOrCloseSet)
			}
			if e != nil {
				return
			}

		case keyState:
			var key string
			key, e = ParseKey(s, r)
			if e == nil {
				keys = append(keys, key)
				t, e = s.Peek()
			}
			if e != nil {
				return
			}

			switch t.Kind {
			case grammar.Close:
				_, e = s.Advance()
				state = endState
			case grammar.Dot:
				_, e = s.Advance()
				state = dotState
			default:
				e = UnexpectedToken(s, t, dotOrCloseSet)
			}
			if e != nil {
				return
			}

		case dotState:
			t, e = s.Peek()
			if e != nil {
				return
			}
			if !grammar.FirstKey.Has(t.Kind) {
				e = UnexpectedToken(s, t, grammar.FirstKey)
				return
			}
			state = keyState
		}
	}

	return r.Scope(keys, s.Source())
}

// Parse consumes a scope header followed by the end of input.
func Parse[R any](s *lexer.Stream, r Reducer[R]) (R, error) {
	result, e := ParseScope(s, r)
	if e == nil {
		e = expectEOF(s)
	}
	if e != nil {
		var zero R
		return zero, e
	}
	return result, nil
}

func expectEOF(s *lexer.Stream) error {
	t, e := s.Advance()
	if e == nil && t.Kind != lexer.EOF {
		e = UnexpectedToken(s, t, eofSet)
	}
	return e
}

// ParseString lexes text with l and parses it with r.
func ParseString[R any](l *lexer.Lexer, name, text string, r Reducer[R]) (R, error) {
	s, e := l.Stream(source.New(name, text))
	if e != nil {
		var zero R
		return zero, e
	}
	return Parse(s, r)
}

// ParseKeys parses a scope header from s with KeysReducer.
func ParseKeys(s *lexer.Stream) ([]string, error) {
	return Parse[[]string](s, KeysReducer{})
}
