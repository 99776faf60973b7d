// Package event defines scope header parser emitting structural events instead of
// calling a reducer, and reducers consuming those events.
//
// A key occurrence is reported as
//
//	AssignMatch(slot), EnterRule(key), AssignToken(slot, token), EndRule(key)
//
// AssignMatch reserves a slot of the parent rule before the sub-rule starts, so consumers
// may correlate the sub-rule result with its position in the parent output.
package event

import (
	"fmt"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
)

// Kind is the event type.
type Kind int

const (
	EnterRule Kind = iota
	EndRule
	AssignMatch
	AssignToken
)

var kindNames = [...]string{"EnterRule", "EndRule", "AssignMatch", "AssignToken"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is a structural notification.
// Rule is set for EnterRule and EndRule, Slot for AssignMatch and AssignToken, Token for AssignToken.
type Event struct {
	Kind  Kind
	Rule  grammar.Rule
	Slot  int
	Token lexer.Token
}

func Enter(r grammar.Rule) Event {
	return Event{Kind: EnterRule, Rule: r}
}

func End(r grammar.Rule) Event {
	return Event{Kind: EndRule, Rule: r}
}

func Reserve(slot int) Event {
	return Event{Kind: AssignMatch, Slot: slot}
}

func Bind(slot int, t lexer.Token) Event {
	return Event{Kind: AssignToken, Slot: slot, Token: t}
}

func (e Event) String() string {
	switch e.Kind {
	case EnterRule, EndRule:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Rule)
	case AssignMatch:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Slot)
	case AssignToken:
		return fmt.Sprintf("%s(%d, %s)", e.Kind, e.Slot, e.Token)
	default:
		return e.Kind.String()
	}
}

// Error codes used by event reducers:
const (
	// UnhandledEventError indicates an event the reducer has no handler for.
	UnhandledEventError = scopeparse.ReducerErrors + 1 + iota

	// UnbalancedEventsError indicates EndRule not matching current rule or missing EndRule.
	UnbalancedEventsError

	// MatchShapeError indicates a capture tree that does not describe a scope header.
	MatchShapeError
)

func unhandledEventError(ev Event) *scopeparse.Error {
	return scopeparse.FormatError(UnhandledEventError, "unhandled event %s", ev)
}

func unexpectedEndError(r grammar.Rule, ev Event) *scopeparse.Error {
	return scopeparse.FormatError(UnbalancedEventsError, "unexpected %s inside %q rule", ev, r)
}

func unterminatedRuleError(r grammar.Rule) *scopeparse.Error {
	return scopeparse.FormatError(UnbalancedEventsError, "event stream ended inside %q rule", r)
}

func unboundKeyError() *scopeparse.Error {
	return scopeparse.FormatError(UnbalancedEventsError, "%q rule ended without token", grammar.KeyRule)
}
