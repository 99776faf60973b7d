// Package grammar describes lexemes and rules of the scope header grammar:
//
//	scope = '[', [key, {'.', key}], ']';
//	key   = $STRING | $PLAIN;
package grammar

import (
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/source"
)

type TermFlags int

const (
	// LiteralTerm marks fixed lexemes, Term.Re contains the lexeme itself.
	LiteralTerm TermFlags = 1 << iota
	// AsideTerm marks insignificant lexemes that lexer skips.
	AsideTerm
)

// Term describes a lexeme.
type Term struct {
	Name, Re string
	Flags    TermFlags
}

// Grammar is an ordered list of lexemes, order defines matching priority.
type Grammar struct {
	Terms []Term
}

// Literals returns fixed lexemes in declaration order.
func (g *Grammar) Literals() []string {
	var result []string
	for _, t := range g.Terms {
		if t.Flags&LiteralTerm != 0 {
			result = append(result, t.Re)
		}
	}
	return result
}

// Patterns returns regexp lexemes in declaration order.
func (g *Grammar) Patterns() []lexer.Pattern {
	var result []lexer.Pattern
	for _, t := range g.Terms {
		if t.Flags&LiteralTerm == 0 {
			result = append(result, lexer.Pattern{Kind: lexer.Kind(t.Name), Re: t.Re})
		}
	}
	return result
}

// Aside returns kinds of insignificant lexemes.
func (g *Grammar) Aside() []lexer.Kind {
	var result []lexer.Kind
	for _, t := range g.Terms {
		if t.Flags&AsideTerm != 0 {
			result = append(result, lexer.Kind(t.Name))
		}
	}
	return result
}

// Lexer creates lexer for g.
func (g *Grammar) Lexer() (*lexer.Lexer, error) {
	return lexer.New(g.Literals(), g.Patterns(), g.Aside()...)
}

// Token kinds of the scope header grammar:
const (
	Open   lexer.Kind = "["
	Close  lexer.Kind = "]"
	Dot    lexer.Kind = "."
	String lexer.Kind = "STRING"
	Plain  lexer.Kind = "PLAIN"
)

// Scope is the scope header grammar.
var Scope = &Grammar{Terms: []Term{
	{string(Open), string(Open), LiteralTerm},
	{string(Close), string(Close), LiteralTerm},
	{string(Dot), string(Dot), LiteralTerm},
	{" ", " ", LiteralTerm | AsideTerm},
	{"\t", "\t", LiteralTerm | AsideTerm},
	{string(String), `"(\\.|[^"])*"`, 0},
	{string(Plain), `[a-zA-Z_][a-zA-Z_\-0-9]*`, 0},
}}

// Rule names a grammar rule in structural events.
type Rule string

const (
	ScopeRule Rule = "scope"
	KeyRule   Rule = "key"
)

// FirstKey contains kinds that may start a key.
var FirstKey = lexer.KindSet{String, Plain}

// KeyText extracts key value from STRING or PLAIN token.
// STRING tokens lose their bounding quotes, escape sequences are kept as is.
func KeyText(t lexer.Token, src *source.Source) string {
	text := src.Slice(t.Start, t.End)
	if t.Kind == String && len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
