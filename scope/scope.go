// Package scope wires lexer and both parsers together.
package scope

import (
	"iter"
	"strings"
	"sync"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/event"
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/parser"
	"github.com/ava12/scopeparse/source"
)

// UnrepresentableKeyError indicates a key that cannot be written as PLAIN or STRING lexeme.
const UnrepresentableKeyError = scopeparse.FormatErrors

// SourceName is the source name used by package-level functions.
const SourceName = "input"

// Parser runs both pipelines with the same lexer.
type Parser struct {
	lexer *lexer.Lexer
}

// New creates Parser using l, l must produce the token kinds of grammar.Scope.
func New(l *lexer.Lexer) *Parser {
	return &Parser{l}
}

var defaultParser = sync.OnceValues(func() (*Parser, error) {
	l, e := grammar.Scope.Lexer()
	if e != nil {
		return nil, e
	}
	return New(l), nil
})

// Default returns Parser using grammar.Scope lexemes.
func Default() *Parser {
	p, e := defaultParser()
	if e != nil {
		panic(e)
	}
	return p
}

func (p *Parser) Lexer() *lexer.Lexer {
	return p.lexer
}

func (p *Parser) stream(text string) (*lexer.Stream, error) {
	return p.lexer.Stream(source.New(SourceName, text))
}

// Tokens returns all tokens of text including final EOF token.
func (p *Parser) Tokens(text string) ([]lexer.Token, error) {
	return p.lexer.Tokens(source.New(SourceName, text))
}

// Parse returns keys using recursive-descent parser.
func (p *Parser) Parse(text string) ([]string, error) {
	s, e := p.stream(text)
	if e != nil {
		return nil, e
	}
	return parser.ParseKeys(s)
}

// Events returns structural events of text and the source they refer to.
func (p *Parser) Events(text string) (iter.Seq2[event.Event, error], *source.Source, error) {
	s, e := p.stream(text)
	if e != nil {
		return nil, nil, e
	}
	return event.Parse(s), s.Source(), nil
}

// ParseEvents returns keys using event parser and event reducer.
func (p *Parser) ParseEvents(text string) ([]string, error) {
	events, src, e := p.Events(text)
	if e != nil {
		return nil, e
	}
	return event.Reduce(src, events)
}

// Capture returns capture tree built from structural events.
func (p *Parser) Capture(text string) (*event.Match, *source.Source, error) {
	events, src, e := p.Events(text)
	if e != nil {
		return nil, nil, e
	}
	m, e := event.Collect(events)
	return m, src, e
}

// Format renders keys as a scope header, keys that are not PLAIN lexemes are quoted.
// The header is parsed back, and UnrepresentableKeyError is returned unless it yields the same keys.
func (p *Parser) Format(keys []string) (string, error) {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, key := range keys {
		if i > 0 {
			sb.WriteByte('.')
		}
		if p.isPlain(key) {
			sb.WriteString(key)
		} else {
			sb.WriteString(`"` + key + `"`)
		}
	}
	sb.WriteByte(']')
	text := sb.String()

	parsed, e := p.Parse(text)
	if e != nil {
		return "", scopeparse.FormatError(UnrepresentableKeyError, "keys %q cannot be represented: %s", keys, e.Error())
	}
	for i, key := range keys {
		if i >= len(parsed) || parsed[i] != key {
			return "", scopeparse.FormatError(UnrepresentableKeyError, "key #%d %q cannot be represented", i, key)
		}
	}
	if len(parsed) != len(keys) {
		return "", scopeparse.FormatError(UnrepresentableKeyError, "keys %q cannot be represented", keys)
	}
	return text, nil
}

func (p *Parser) isPlain(key string) bool {
	tokens, e := p.Tokens(key)
	return e == nil && len(tokens) == 2 && tokens[0].Kind == grammar.Plain && tokens[0].Len() == len(key)
}

// Parse returns keys of text using default Parser and recursive-descent parser.
func Parse(text string) ([]string, error) {
	return Default().Parse(text)
}

// ParseEvents returns keys of text using default Parser, event parser, and event reducer.
func ParseEvents(text string) ([]string, error) {
	return Default().ParseEvents(text)
}

// Format renders keys using default Parser.
func Format(keys []string) (string, error) {
	return Default().Format(keys)
}
