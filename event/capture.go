package event

import (
	"iter"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/source"
)

// Capture is either a token or a nested match.
type Capture struct {
	Token lexer.Token `yaml:"token,omitempty"`
	Match *Match      `yaml:"match,omitempty"`
}

// Match is a rule result, Slots[i] lists captures assigned to slot i in order of appearance.
type Match struct {
	Rule  grammar.Rule `yaml:"rule"`
	Slots [][]Capture  `yaml:"slots,omitempty"`
}

func (m *Match) add(slot int, c Capture) {
	for len(m.Slots) <= slot {
		m.Slots = append(m.Slots, nil)
	}
	m.Slots[slot] = append(m.Slots[slot], c)
}

// Slot returns captures of slot i or nil.
func (m *Match) Slot(i int) []Capture {
	if i < 0 || i >= len(m.Slots) {
		return nil
	}
	return m.Slots[i]
}

// Keys returns keys of a scope match.
func (m *Match) Keys(src *source.Source) ([]string, error) {
	if m == nil || m.Rule != grammar.ScopeRule {
		return nil, scopeparse.FormatError(MatchShapeError, "expecting %q match", grammar.ScopeRule)
	}

	keys := []string{}
	for i, c := range m.Slot(KeySlot) {
		km := c.Match
		if km == nil || km.Rule != grammar.KeyRule || len(km.Slot(KeySlot)) != 1 {
			return nil, scopeparse.FormatError(MatchShapeError, "capture #%d is not a %q match", i, grammar.KeyRule)
		}
		keys = append(keys, grammar.KeyText(km.Slot(KeySlot)[0].Token, src))
	}
	return keys, nil
}

type frame struct {
	match   *Match
	slot    int
	pending int
}

// Collect builds a match tree using a capture stack.
// EnterRule pushes new match which remembers the slot its parent reserved with the preceding AssignMatch,
// AssignToken adds a token to the top match, EndRule pops the top match and adds it
// to the reserved slot of its parent. Sub-rules entered without reserved slot are dropped.
func Collect(seq iter.Seq2[Event, error]) (*Match, error) {
	var (
		stack []*frame
		root  *Match
	)

	for ev, e := range seq {
		if e != nil {
			return nil, e
		}
		if root != nil {
			return nil, unhandledEventError(ev)
		}

		n := len(stack)
		var top *frame
		if n > 0 {
			top = stack[n-1]
		}

		switch ev.Kind {
		case EnterRule:
			f := &frame{match: &Match{Rule: ev.Rule}, slot: -1, pending: -1}
			if top != nil {
				f.slot = top.pending
				top.pending = -1
			}
			stack = append(stack, f)

		case AssignMatch:
			if top == nil || ev.Slot < 0 {
				return nil, unhandledEventError(ev)
			}
			top.pending = ev.Slot

		case AssignToken:
			if top == nil || ev.Slot < 0 {
				return nil, unhandledEventError(ev)
			}
			top.match.add(ev.Slot, Capture{Token: ev.Token})

		case EndRule:
			if top == nil {
				return nil, unexpectedEndError("", ev)
			}
			if top.match.Rule != ev.Rule {
				return nil, unexpectedEndError(top.match.Rule, ev)
			}

			stack = stack[:n-1]
			if n == 1 {
				root = top.match
			} else if top.slot >= 0 {
				stack[n-2].match.add(top.slot, Capture{Match: top.match})
			}

		default:
			return nil, unhandledEventError(ev)
		}
	}

	if len(stack) > 0 {
		return nil, unterminatedRuleError(stack[len(stack)-1].match.Rule)
	}
	if root == nil {
		return nil, unterminatedRuleError(grammar.ScopeRule)
	}
	return root, nil
}
