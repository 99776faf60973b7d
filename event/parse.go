package event

import (
	"iter"

	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/parser"
)

// KeySlot is the slot of scope rule output that receives keys.
// Both key occurrences of the rule share it, so the slot holds a list of keys.
const KeySlot = 0

type parseState int

const (
	brackOpenState parseState = iota
	keyOrCloseState
	dotOrCloseState
	keyState
	endState
)

var (
	openSet       = lexer.KindSet{grammar.Open}
	keyOrCloseSet = lexer.KindSet{grammar.Close}.Union(grammar.FirstKey)
	dotOrCloseSet = lexer.KindSet{grammar.Close, grammar.Dot}
	eofSet        = lexer.KindSet{lexer.EOF}
)

// Parse returns lazy event sequence for the scope header in s.
// Each state consumes exactly one token, the scope header must be followed by EOF token.
// On error the sequence yields zero Event and the error, then stops;
// events yielded before the error are not retracted.
// The sequence advances s, so it cannot be restarted.
func Parse(s *lexer.Stream) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		keyEvents := func(t lexer.Token) bool {
			return yield(Reserve(KeySlot), nil) &&
				yield(Enter(grammar.KeyRule), nil) &&
				yield(Bind(KeySlot, t), nil) &&
				yield(End(grammar.KeyRule), nil)
		}

		if !yield(Enter(grammar.ScopeRule), nil) {
			return
		}

		state := brackOpenState
		for {
			t, e := s.Advance()
			if e != nil {
				yield(Event{}, e)
				return
			}

			more := true
			switch state {
			case brackOpenState:
				if t.Kind == grammar.Open {
					state = keyOrCloseState
				} else {
					e = parser.UnexpectedToken(s, t, openSet)
				}

			case keyOrCloseState:
				switch {
				case t.Kind == grammar.Close:
					more = yield(End(grammar.ScopeRule), nil)
					state = endState
				case grammar.FirstKey.Has(t.Kind):
					more = keyEvents(t)
					state = dotOrCloseState
				default:
					e = parser.UnexpectedToken(s, t, keyOrCloseSet)
				}

			case dotOrCloseState:
				switch t.Kind {
				case grammar.Dot:
					state = keyState
				case grammar.Close:
					more = yield(End(grammar.ScopeRule), nil)
					state = endState
				default:
					e = parser.UnexpectedToken(s, t, dotOrCloseSet)
				}

			case keyState:
				if grammar.FirstKey.Has(t.Kind) {
					more = keyEvents(t)
					state = dotOrCloseState
				} else {
					e = parser.UnexpectedToken(s, t, grammar.FirstKey)
				}

			case endState:
				if t.Kind != lexer.EOF {
					e = parser.UnexpectedToken(s, t, eofSet)
				} else {
					return
				}
			}

			if e != nil {
				yield(Event{}, e)
				return
			}
			if !more {
				return
			}
		}
	}
}
