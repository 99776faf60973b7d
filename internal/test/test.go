// Package test contains assertion helpers shared by package tests.
package test

import (
	"fmt"
	"runtime"
	"slices"
	"testing"

	"github.com/ava12/scopeparse"
)

func fatalf(t testing.TB, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

// ExpectKeys compares key lists, nil and empty lists are equal.
func ExpectKeys(t testing.TB, expected, got []string) {
	t.Helper()
	if !slices.Equal(expected, got) {
		fatalf(t, "expecting %q, got %q", expected, got)
	}
}

// ExpectErrorCode fails unless e wraps *scopeparse.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	if e != nil && scopeparse.Code(e) == expected {
		return
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
}
