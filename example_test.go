package scopeparse_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/ava12/scopeparse/event"
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
	"github.com/ava12/scopeparse/parser"
	"github.com/ava12/scopeparse/source"
)

func Example() {
	input := `[ boo .   "hullo" ]`

	l, e := grammar.Scope.Lexer()
	if e != nil {
		fmt.Println(e)
		return
	}

	s, e := l.Stream(source.New("input", input))
	if e != nil {
		fmt.Println(e)
		return
	}

	path := parser.ReducerFuncs[string]{
		ScopeFunc: func(keys []string, _ *source.Source) (string, error) {
			return "/" + strings.Join(keys, "/"), nil
		},
		KeyFunc: func(t lexer.Token, src *source.Source) (string, error) {
			return grammar.KeyText(t, src), nil
		},
	}
	result, e := parser.Parse[string](s, path)
	fmt.Println(result, e)

	s, _ = l.Stream(source.New("input", input))
	e = event.Dump(os.Stdout, event.Parse(s))
	fmt.Println(e)

	// Output:
	// /boo/hullo <nil>
	// EnterRule(scope)
	//   AssignMatch(0)
	//   EnterRule(key)
	//     AssignToken(0, PLAIN 2:5)
	//   EndRule(key)
	//   AssignMatch(0)
	//   EnterRule(key)
	//     AssignToken(0, STRING 10:17)
	//   EndRule(key)
	// EndRule(scope)
	// <nil>
}
