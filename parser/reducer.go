//go:generate mockgen -source=reducer.go -destination=mock_reducer_test.go -package=parser_test

package parser

import (
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/source"
)

// Reducer supplies semantic actions invoked by parser to build a result of type R.
type Reducer[R any] interface {
	// Scope is called once all keys of a scope are collected, keys are in source order.
	Scope(keys []string, src *source.Source) (R, error)
	// Key converts STRING or PLAIN token to key value.
	Key(t lexer.Token, src *source.Source) (string, error)
}

// ReducerFuncs adapts plain functions to Reducer.
// Calling a method whose function is nil returns InterfaceViolationError.
type ReducerFuncs[R any] struct {
	ScopeFunc func(keys []string, src *source.Source) (R, error)
	KeyFunc   func(t lexer.Token, src *source.Source) (string, error)
}

func (rf ReducerFuncs[R]) Scope(keys []string, src *source.Source) (R, error) {
	if rf.ScopeFunc == nil {
		var zero R
		return zero, interfaceViolationError("Scope(keys, src)")
	}
	return rf.ScopeFunc(keys, src)
}

func (rf ReducerFuncs[R]) Key(t lexer.Token, src *source.Source) (string, error) {
	if rf.KeyFunc == nil {
		return "", interfaceViolationError("Key(token, src)")
	}
	return rf.KeyFunc(t, src)
}

// KeysReducer returns scope keys as is.
type KeysReducer struct{}

func (KeysReducer) Scope(keys []string, _ *source.Source) ([]string, error) {
	return keys, nil
}

func (KeysReducer) Key(t lexer.Token, src *source.Source) (string, error) {
	return grammar.KeyText(t, src), nil
}
