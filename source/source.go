// Package source defines source text with line and column lookup.
package source

import (
	"sort"
	"strings"
)

// Source holds a named read-only source text.
type Source struct {
	name       string
	text       string
	lineStarts []int
}

// New creates Source and indexes line starts.
func New(name, text string) *Source {
	s := &Source{name: name, text: text}
	lineCnt := strings.Count(text, "\n") + 1
	s.lineStarts = make([]int, 1, lineCnt)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Text() string {
	return s.text
}

func (s *Source) Len() int {
	return len(s.text)
}

// Slice returns text[start:end], bounds are clamped to [0, Len()].
func (s *Source) Slice(start, end int) string {
	start = s.clamp(start)
	end = s.clamp(end)
	if end < start {
		return ""
	}
	return s.text[start:end]
}

func (s *Source) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(s.text) {
		return len(s.text)
	}
	return pos
}

// LineCol returns 1-based line number and 0-based byte column of pos.
func (s *Source) LineCol(pos int) (line, col int) {
	pos = s.clamp(pos)
	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1

	return lineIndex + 1, pos - s.lineStarts[lineIndex]
}

// LineText returns the text from pos up to the end of its line, line break excluded.
func (s *Source) LineText(pos int) string {
	rest := s.text[s.clamp(pos):]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSuffix(rest, "\r")
}

// Pos returns position information for byte offset pos.
func (s *Source) Pos(pos int) Pos {
	pos = s.clamp(pos)
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Pos describes a position in Source, implements scopeparse.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
