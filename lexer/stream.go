package lexer

import (
	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/source"
)

// EndOfStreamError indicates an attempt to read past the last token.
const EndOfStreamError = scopeparse.SyntaxErrors

// Stream is a cursor over lexed tokens.
// Exactly one reader may drive a Stream, pass it by pointer and do not share it between goroutines.
type Stream struct {
	src    *source.Source
	tokens []Token
	index  int
}

// NewStream creates Stream positioned at the first token.
func NewStream(src *source.Source, tokens []Token) *Stream {
	return &Stream{src: src, tokens: tokens}
}

func (s *Stream) endOfStreamError() *scopeparse.Error {
	return scopeparse.FormatErrorPos(s.src.Pos(s.src.Len()), EndOfStreamError, "no more tokens")
}

// Advance returns current token and moves the cursor forward.
func (s *Stream) Advance() (Token, error) {
	if s.index >= len(s.tokens) {
		return Token{}, s.endOfStreamError()
	}

	t := s.tokens[s.index]
	s.index++
	return t, nil
}

// Peek returns current token without moving the cursor.
func (s *Stream) Peek() (Token, error) {
	if s.index >= len(s.tokens) {
		return Token{}, s.endOfStreamError()
	}

	return s.tokens[s.index], nil
}

// TextOf returns the source text of t.
func (s *Stream) TextOf(t Token) string {
	return s.src.Slice(t.Start, t.End)
}

// PosOf returns source position of t.
func (s *Stream) PosOf(t Token) source.Pos {
	return s.src.Pos(t.Start)
}

func (s *Stream) Source() *source.Source {
	return s.src
}

// Index returns the number of consumed tokens.
func (s *Stream) Index() int {
	return s.index
}

func (s *Stream) Len() int {
	return len(s.tokens)
}
