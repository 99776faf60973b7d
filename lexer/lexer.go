// Package lexer defines lexical analyzer and token stream.
package lexer

import (
	"iter"
	"regexp"
	"strings"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/source"
)

// Error codes used by lexer:
const (
	// NoMatchError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rest of current line.
	NoMatchError = scopeparse.LexicalErrors + iota

	// BadRuleError indicates that lexer rules are malformed (empty literal or kind, broken regexp).
	BadRuleError
)

// Pattern describes a lexeme matched by regular expression.
type Pattern struct {
	// Kind is assigned to tokens matched by this pattern.
	Kind Kind

	// Re is regular expression in regexp/syntax format, it is anchored at current position by lexer.
	Re string
}

type patternRec struct {
	kind Kind
	re   *regexp.Regexp
}

// Lexer splits source text into tokens.
// At each position it tries literal lexemes first (the leftmost literal that matches wins),
// then each pattern in declaration order, the first match wins regardless of its length.
// Tokens of ignored kinds are skipped.
// Lexer itself is immutable, stateless, and safe for concurrent use.
type Lexer struct {
	literals *regexp.Regexp
	patterns []patternRec
	ignored  map[Kind]bool
}

// LexError is returned when no literal or pattern matches at some position.
type LexError struct {
	// Line is 1-based line number.
	Line int
	// Col is 0-based byte column.
	Col int
	// Text contains the rest of the line starting at error position.
	Text string

	err *scopeparse.Error
}

func (e *LexError) Error() string {
	return e.err.Message
}

func (e *LexError) Unwrap() error {
	return e.err
}

func noMatchError(src *source.Source, pos int) *LexError {
	p := src.Pos(pos)
	text := src.LineText(pos)
	return &LexError{
		Line: p.Line(),
		Col:  p.Col(),
		Text: text,
		err:  scopeparse.FormatErrorPos(p, NoMatchError, "no rules matched %q", text),
	}
}

// New creates new Lexer.
// literals are fixed lexemes, their kinds are the literals themselves.
// patterns are tried in the given order when no literal matches.
// ignored lists kinds of insignificant lexemes (e.g. whitespace), both literal and pattern kinds may be listed.
func New(literals []string, patterns []Pattern, ignored ...Kind) (*Lexer, error) {
	l := &Lexer{
		patterns: make([]patternRec, 0, len(patterns)),
		ignored:  make(map[Kind]bool, len(ignored)),
	}

	if len(literals) > 0 {
		quoted := make([]string, len(literals))
		for i, lit := range literals {
			if lit == "" {
				return nil, scopeparse.FormatError(BadRuleError, "empty literal #%d", i)
			}
			quoted[i] = regexp.QuoteMeta(lit)
		}
		l.literals = regexp.MustCompile("^(?:" + strings.Join(quoted, "|") + ")")
	}

	for _, p := range patterns {
		if p.Kind == "" {
			return nil, scopeparse.FormatError(BadRuleError, "empty kind for pattern %q", p.Re)
		}

		re, e := regexp.Compile("^(?:" + p.Re + ")")
		if e != nil {
			return nil, scopeparse.FormatError(BadRuleError, "bad pattern %s: %s", p.Kind, e.Error())
		}

		l.patterns = append(l.patterns, patternRec{p.Kind, re})
	}

	for _, k := range ignored {
		l.ignored[k] = true
	}

	return l, nil
}

// Ignores tells whether tokens of kind k are skipped.
func (l *Lexer) Ignores(k Kind) bool {
	return l.ignored[k]
}

func (l *Lexer) match(content string) (Kind, int) {
	if l.literals != nil {
		loc := l.literals.FindStringIndex(content)
		if loc != nil && loc[1] > 0 {
			return Kind(content[:loc[1]]), loc[1]
		}
	}

	for _, p := range l.patterns {
		loc := p.re.FindStringIndex(content)
		if loc != nil && loc[1] > 0 {
			return p.kind, loc[1]
		}
	}

	return "", 0
}

// Tokenize returns lazy token sequence for src.
// The sequence always ends with zero-width EOF token positioned at the end of text.
// On lexical error the sequence yields zero Token and *LexError, then stops.
// Each range over the sequence starts lexing from the beginning of src.
func (l *Lexer) Tokenize(src *source.Source) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		text := src.Text()
		pos := 0
		for pos < len(text) {
			kind, size := l.match(text[pos:])
			if size == 0 {
				yield(Token{}, noMatchError(src, pos))
				return
			}

			if !l.ignored[kind] {
				if !yield(Token{kind, pos, pos + size}, nil) {
					return
				}
			}
			pos += size
		}

		yield(Token{Kind: EOF, Start: len(text), End: len(text)}, nil)
	}
}

// Tokens fetches all tokens of src, including final EOF token.
func (l *Lexer) Tokens(src *source.Source) ([]Token, error) {
	var result []Token
	for t, e := range l.Tokenize(src) {
		if e != nil {
			return nil, e
		}
		result = append(result, t)
	}
	return result, nil
}

// Stream lexes src and returns token stream positioned at the first token.
func (l *Lexer) Stream(src *source.Source) (*Stream, error) {
	tokens, e := l.Tokens(src)
	if e != nil {
		return nil, e
	}
	return NewStream(src, tokens), nil
}
