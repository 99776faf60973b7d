package event_test

import (
	"bytes"
	"iter"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/event"
	"github.com/ava12/scopeparse/grammar"
	. "github.com/ava12/scopeparse/internal/test"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/parser"
	"github.com/ava12/scopeparse/source"
)

var validSamples = []string{
	`[]`,
	`[ ]`,
	`[a]`,
	`[a.b."c d"]`,
	`[ boo .   	 "hullo" ]`,
	`["a.b".c]`,
	`[""]`,
	`["b\"c".d]`,
	`[_x-1.Y_2.z3."..."]`,
}

var invalidSamples = []string{
	``,
	`a`,
	`[`,
	`[a.b`,
	`[.a]`,
	`[a..b]`,
	`[a.]`,
	`[a b]`,
	`[a]b`,
	`[a][b]`,
	`[a#b]`,
}

func stream(t *testing.T, text string) (*lexer.Stream, error) {
	l, e := grammar.Scope.Lexer()
	require.NoError(t, e)
	return l.Stream(source.New("sample", text))
}

func collect(seq iter.Seq2[event.Event, error]) ([]event.Event, error) {
	var result []event.Event
	for ev, e := range seq {
		if e != nil {
			return result, e
		}
		result = append(result, ev)
	}
	return result, nil
}

func events(evs ...event.Event) iter.Seq2[event.Event, error] {
	return func(yield func(event.Event, error) bool) {
		for _, ev := range evs {
			if !yield(ev, nil) {
				return
			}
		}
	}
}

func TestEventProtocol(t *testing.T) {
	s, e := stream(t, `[a."c d"]`)
	require.NoError(t, e)

	evs, e := collect(event.Parse(s))
	require.NoError(t, e)

	a := lexer.Token{Kind: grammar.Plain, Start: 1, End: 2}
	cd := lexer.Token{Kind: grammar.String, Start: 3, End: 8}
	expected := []event.Event{
		event.Enter(grammar.ScopeRule),
		event.Reserve(0),
		event.Enter(grammar.KeyRule),
		event.Bind(0, a),
		event.End(grammar.KeyRule),
		event.Reserve(0),
		event.Enter(grammar.KeyRule),
		event.Bind(0, cd),
		event.End(grammar.KeyRule),
		event.End(grammar.ScopeRule),
	}
	assert.Equal(t, expected, evs)
	assert.Equal(t, s.Len(), s.Index())
}

func TestEmptyScopeEvents(t *testing.T) {
	s, e := stream(t, `[]`)
	require.NoError(t, e)

	evs, e := collect(event.Parse(s))
	require.NoError(t, e)
	assert.Equal(t, []event.Event{event.Enter(grammar.ScopeRule), event.End(grammar.ScopeRule)}, evs)
}

func TestPartialEvents(t *testing.T) {
	s, e := stream(t, `[a.]`)
	require.NoError(t, e)

	evs, e := collect(event.Parse(s))
	ExpectErrorCode(t, parser.UnexpectedTokenError, e)
	assert.Len(t, evs, 5)
	assert.Equal(t, event.End(grammar.KeyRule), evs[4])
}

func TestTrailingInput(t *testing.T) {
	s, e := stream(t, `[a] b`)
	require.NoError(t, e)

	evs, e := collect(event.Parse(s))
	ExpectErrorCode(t, parser.UnexpectedTokenError, e)
	assert.Equal(t, event.End(grammar.ScopeRule), evs[len(evs)-1])
}

func TestPipelinesAgree(t *testing.T) {
	for i, sample := range validSamples {
		s, e := stream(t, sample)
		require.NoError(t, e)
		direct, e := parser.ParseKeys(s)
		require.NoError(t, e, "sample #%d", i)

		s, _ = stream(t, sample)
		reduced, e := event.Reduce(s.Source(), event.Parse(s))
		require.NoError(t, e, "sample #%d", i)

		s, _ = stream(t, sample)
		m, e := event.Collect(event.Parse(s))
		require.NoError(t, e, "sample #%d", i)
		captured, e := m.Keys(s.Source())
		require.NoError(t, e, "sample #%d", i)

		assert.Equal(t, direct, reduced, "sample #%d: %s", i, sample)
		assert.Equal(t, direct, captured, "sample #%d: %s", i, sample)
	}
}

func TestPipelinesFailAlike(t *testing.T) {
	for i, sample := range invalidSamples {
		s, e := stream(t, sample)
		if e != nil {
			ExpectErrorCode(t, lexer.NoMatchError, e)
			continue
		}

		_, de := parser.ParseKeys(s)
		s, _ = stream(t, sample)
		_, re := event.Reduce(s.Source(), event.Parse(s))
		s, _ = stream(t, sample)
		_, ce := event.Collect(event.Parse(s))

		require.Error(t, de, "sample #%d: %q", i, sample)
		ExpectErrorCode(t, scopeparse.Code(de), re)
		ExpectErrorCode(t, scopeparse.Code(de), ce)
	}
}

func TestWhitespaceInsensitive(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	for i, sample := range validSamples {
		l, e := grammar.Scope.Lexer()
		require.NoError(t, e)
		tokens, e := l.Tokens(source.New("", sample))
		require.NoError(t, e)

		s, _ := stream(t, sample)
		expected, e := parser.ParseKeys(s)
		require.NoError(t, e)

		for round := 0; round < 10; round++ {
			var sb strings.Builder
			for _, tok := range tokens {
				sb.WriteString(strings.Repeat(" \t"[rnd.Intn(2):][:1], rnd.Intn(3)))
				sb.WriteString(sample[tok.Start:tok.End])
			}
			text := sb.String()

			s, e := stream(t, text)
			require.NoError(t, e)
			keys, e := event.Reduce(s.Source(), event.Parse(s))
			require.NoError(t, e, "sample #%d: %q", i, text)
			assert.Equal(t, expected, keys, "sample #%d: %q", i, text)
		}
	}
}

func TestReduceErrors(t *testing.T) {
	tok := lexer.Token{Kind: grammar.Plain, Start: 1, End: 2}
	samples := []struct {
		events []event.Event
		err    int
	}{
		{nil, event.UnbalancedEventsError},
		{[]event.Event{event.Enter(grammar.KeyRule)}, event.UnhandledEventError},
		{[]event.Event{event.Enter(grammar.ScopeRule), event.Bind(0, tok)}, event.UnhandledEventError},
		{[]event.Event{event.Enter(grammar.ScopeRule), {Kind: 42}}, event.UnhandledEventError},
		{[]event.Event{event.Enter(grammar.ScopeRule), event.Reserve(0)}, event.UnbalancedEventsError},
		{[]event.Event{
			event.Enter(grammar.ScopeRule), event.Enter(grammar.KeyRule), event.Bind(0, tok), event.End(grammar.ScopeRule),
		}, event.UnbalancedEventsError},
		{[]event.Event{
			event.Enter(grammar.ScopeRule), event.Enter(grammar.KeyRule), event.End(grammar.KeyRule),
		}, event.UnbalancedEventsError},
		{[]event.Event{
			event.Enter(grammar.ScopeRule), event.End(grammar.KeyRule),
		}, event.UnbalancedEventsError},
		{[]event.Event{
			event.Enter(grammar.ScopeRule), event.End(grammar.ScopeRule), event.Enter(grammar.ScopeRule),
		}, event.UnhandledEventError},
	}

	src := source.New("", "[a]")
	for i, sample := range samples {
		_, e := event.Reduce(src, events(sample.events...))
		require.Error(t, e, "sample #%d", i)
		ExpectErrorCode(t, sample.err, e)
	}
}

func TestCollectErrors(t *testing.T) {
	tok := lexer.Token{Kind: grammar.Plain, Start: 1, End: 2}
	samples := []struct {
		events []event.Event
		err    int
	}{
		{nil, event.UnbalancedEventsError},
		{[]event.Event{event.Reserve(0)}, event.UnhandledEventError},
		{[]event.Event{event.Bind(0, tok)}, event.UnhandledEventError},
		{[]event.Event{event.End(grammar.ScopeRule)}, event.UnbalancedEventsError},
		{[]event.Event{event.Enter(grammar.ScopeRule), event.Enter(grammar.KeyRule)}, event.UnbalancedEventsError},
		{[]event.Event{event.Enter(grammar.ScopeRule), event.End(grammar.KeyRule)}, event.UnbalancedEventsError},
		{[]event.Event{event.Enter(grammar.ScopeRule), {Kind: 42}}, event.UnhandledEventError},
		{[]event.Event{
			event.Enter(grammar.ScopeRule), event.End(grammar.ScopeRule), event.Reserve(0),
		}, event.UnhandledEventError},
	}

	for i, sample := range samples {
		_, e := event.Collect(events(sample.events...))
		require.Error(t, e, "sample #%d", i)
		ExpectErrorCode(t, sample.err, e)
	}
}

func TestCaptureTree(t *testing.T) {
	s, e := stream(t, `[a."b"]`)
	require.NoError(t, e)

	m, e := event.Collect(event.Parse(s))
	require.NoError(t, e)
	assert.Equal(t, grammar.ScopeRule, m.Rule)
	require.Len(t, m.Slots, 1)
	require.Len(t, m.Slot(event.KeySlot), 2)

	second := m.Slot(event.KeySlot)[1].Match
	require.NotNil(t, second)
	assert.Equal(t, grammar.KeyRule, second.Rule)
	assert.Equal(t, lexer.Token{Kind: grammar.String, Start: 3, End: 6}, second.Slot(0)[0].Token)
	assert.Nil(t, m.Slot(5))
}

func TestUncapturedSubRule(t *testing.T) {
	tok := lexer.Token{Kind: grammar.Plain, Start: 1, End: 2}
	m, e := event.Collect(events(
		event.Enter(grammar.ScopeRule),
		event.Enter(grammar.KeyRule), event.Bind(0, tok), event.End(grammar.KeyRule),
		event.Reserve(2),
		event.Enter(grammar.KeyRule), event.Bind(0, tok), event.End(grammar.KeyRule),
		event.End(grammar.ScopeRule),
	))
	require.NoError(t, e)
	require.Len(t, m.Slots, 3)
	assert.Empty(t, m.Slot(0))
	assert.Len(t, m.Slot(2), 1)

	_, e = m.Keys(source.New("", "[a]"))
	assert.NoError(t, e)

	_, e = (&event.Match{Rule: grammar.KeyRule}).Keys(source.New("", ""))
	ExpectErrorCode(t, event.MatchShapeError, e)

	bad := &event.Match{Rule: grammar.ScopeRule, Slots: [][]event.Capture{{{Token: tok}}}}
	_, e = bad.Keys(source.New("", "[a]"))
	ExpectErrorCode(t, event.MatchShapeError, e)
}

func TestDump(t *testing.T) {
	s, e := stream(t, `[a]`)
	require.NoError(t, e)

	var buf bytes.Buffer
	require.NoError(t, event.Dump(&buf, event.Parse(s)))
	expected := `EnterRule(scope)
  AssignMatch(0)
  EnterRule(key)
    AssignToken(0, PLAIN 1:2)
  EndRule(key)
EndRule(scope)
`
	assert.Equal(t, expected, buf.String())

	s, e = stream(t, `[a b]`)
	require.NoError(t, e)
	buf.Reset()
	ExpectErrorCode(t, parser.UnexpectedTokenError, event.Dump(&buf, event.Parse(s)))
	assert.True(t, strings.HasSuffix(buf.String(), "EndRule(key)\n"))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "EnterRule(scope)", event.Enter(grammar.ScopeRule).String())
	assert.Equal(t, "AssignMatch(3)", event.Reserve(3).String())
	assert.Equal(t, "Kind(42)", event.Event{Kind: 42}.String())
}
