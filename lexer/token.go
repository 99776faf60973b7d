package lexer

import (
	"fmt"
	"strings"
)

// Kind is the token type. Literal lexemes use their own text as kind, patterns use their names.
type Kind string

// EOF is the kind of the zero-width token terminating every token sequence.
const EOF Kind = "EOF"

// Token refers to a lexeme in source text by byte offsets, End >= Start.
type Token struct {
	Kind       Kind
	Start, End int
}

// Len returns lexeme length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	return fmt.Sprintf("%s %d:%d", t.Kind, t.Start, t.End)
}

// KindSet is a small ordered set of token kinds used to describe expected tokens.
type KindSet []Kind

// Has tells whether k belongs to the set.
func (ks KindSet) Has(k Kind) bool {
	for _, kind := range ks {
		if kind == k {
			return true
		}
	}
	return false
}

// Union returns new set containing kinds of ks followed by missing kinds of other.
func (ks KindSet) Union(other KindSet) KindSet {
	result := make(KindSet, len(ks), len(ks)+len(other))
	copy(result, ks)
	for _, k := range other {
		if !result.Has(k) {
			result = append(result, k)
		}
	}
	return result
}

func (ks KindSet) String() string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = fmt.Sprintf("%q", string(k))
	}
	return "{" + strings.Join(names, ", ") + "}"
}
