package event

import (
	"iter"

	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/source"
)

type pullFunc = func() (Event, error, bool)

func pull(next pullFunc, r grammar.Rule) (Event, error) {
	ev, e, ok := next()
	if !ok {
		return Event{}, unterminatedRuleError(r)
	}
	return ev, e
}

// Reduce consumes events of a single scope header and returns its keys.
// Scope and key consumers share one pull function, each key consumer drains events
// up to its own EndRule, so EnterRule/EndRule pairs must nest strictly.
// Events following EndRule(scope) are drained to catch trailing errors.
func Reduce(src *source.Source, seq iter.Seq2[Event, error]) ([]string, error) {
	next, stop := iter.Pull2(seq)
	defer stop()

	ev, e := pull(next, grammar.ScopeRule)
	if e != nil {
		return nil, e
	}
	if ev.Kind != EnterRule || ev.Rule != grammar.ScopeRule {
		return nil, unhandledEventError(ev)
	}

	keys, e := reduceScope(src, next)
	if e != nil {
		return nil, e
	}

	ev, e, ok := next()
	if e != nil {
		return nil, e
	}
	if ok {
		return nil, unhandledEventError(ev)
	}

	return keys, nil
}

func reduceScope(src *source.Source, next pullFunc) ([]string, error) {
	keys := []string{}
	for {
		ev, e := pull(next, grammar.ScopeRule)
		if e != nil {
			return nil, e
		}

		switch {
		case ev.Kind == AssignMatch:
			// only index-based consumers need reserved slots

		case ev.Kind == EnterRule && ev.Rule == grammar.KeyRule:
			key, e := reduceKey(src, next)
			if e != nil {
				return nil, e
			}
			keys = append(keys, key)

		case ev.Kind == EndRule:
			if ev.Rule != grammar.ScopeRule {
				return nil, unexpectedEndError(grammar.ScopeRule, ev)
			}
			return keys, nil

		default:
			return nil, unhandledEventError(ev)
		}
	}
}

func reduceKey(src *source.Source, next pullFunc) (string, error) {
	var (
		t     lexer.Token
		bound bool
	)
	for {
		ev, e := pull(next, grammar.KeyRule)
		if e != nil {
			return "", e
		}

		switch ev.Kind {
		case AssignToken:
			t = ev.Token
			bound = true

		case EndRule:
			if ev.Rule != grammar.KeyRule {
				return "", unexpectedEndError(grammar.KeyRule, ev)
			}
			if !bound {
				return "", unboundKeyError()
			}
			return grammar.KeyText(t, src), nil

		default:
			return "", unhandledEventError(ev)
		}
	}
}
