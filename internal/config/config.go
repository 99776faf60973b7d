// Package config loads lexeme rules for the scope header lexer.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ava12/scopeparse"
	"github.com/ava12/scopeparse/grammar"
	"github.com/ava12/scopeparse/lexer"
)

// InvalidRulesError indicates malformed or incomplete rules file.
const InvalidRulesError = scopeparse.ConfigErrors

// RulesEnv names environment variable containing rules file path.
const RulesEnv = "SCOPEPARSE_RULES"

type Pattern struct {
	Kind string `yaml:"kind" validate:"required"`
	Re   string `yaml:"re" validate:"required,regexp"`
}

// Rules is lexer configuration.
// Literals and patterns are matched in the listed order, kinds listed in Ignored are skipped.
type Rules struct {
	Literals []string  `yaml:"literals" validate:"required,dive,required"`
	Patterns []Pattern `yaml:"patterns" validate:"required,dive"`
	Ignored  []string  `yaml:"ignored,omitempty" validate:"dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	e := v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, e := regexp.Compile(fl.Field().String())
		return e == nil
	})
	if e != nil {
		panic(e)
	}
	return v
}

// Default returns rules of grammar.Scope.
func Default() *Rules {
	r := &Rules{Literals: grammar.Scope.Literals()}
	for _, p := range grammar.Scope.Patterns() {
		r.Patterns = append(r.Patterns, Pattern{string(p.Kind), p.Re})
	}
	for _, k := range grammar.Scope.Aside() {
		r.Ignored = append(r.Ignored, string(k))
	}
	return r
}

// Validate checks field constraints and presence of every token kind used by scope header grammar.
func (r *Rules) Validate() error {
	if e := validate.Struct(r); e != nil {
		var ves validator.ValidationErrors
		if errors.As(e, &ves) {
			msgs := make([]string, len(ves))
			for i, ve := range ves {
				msgs[i] = fmt.Sprintf("%s fails %q", ve.Namespace(), ve.Tag())
			}
			return scopeparse.FormatError(InvalidRulesError, "invalid rules: %s", strings.Join(msgs, ", "))
		}
		return scopeparse.FormatError(InvalidRulesError, "invalid rules: %s", e.Error())
	}

	kinds := make(map[string]bool)
	for _, lit := range r.Literals {
		kinds[lit] = true
	}
	for _, p := range r.Patterns {
		kinds[p.Kind] = true
	}
	for _, k := range []lexer.Kind{grammar.Open, grammar.Close, grammar.Dot, grammar.String, grammar.Plain} {
		if !kinds[string(k)] {
			return scopeparse.FormatError(InvalidRulesError, "invalid rules: no lexeme for %q", k)
		}
	}
	return nil
}

// Parse decodes and validates YAML rules.
func Parse(data []byte) (*Rules, error) {
	r := &Rules{}
	if e := yaml.Unmarshal(data, r); e != nil {
		return nil, scopeparse.FormatError(InvalidRulesError, "invalid rules: %s", e.Error())
	}
	if e := r.Validate(); e != nil {
		return nil, e
	}
	return r, nil
}

// LoadFile reads rules from YAML file.
func LoadFile(path string) (*Rules, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, fmt.Errorf("reading rules: %w", e)
	}
	return Parse(data)
}

// Load reads rules from path, from file named by RulesEnv if path is empty,
// or returns Default rules if both are empty.
func Load(path string) (*Rules, error) {
	if path == "" {
		path = getEnv(RulesEnv, "")
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Marshal encodes rules as YAML.
func (r *Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Lexer creates lexer using r.
func (r *Rules) Lexer() (*lexer.Lexer, error) {
	patterns := make([]lexer.Pattern, len(r.Patterns))
	for i, p := range r.Patterns {
		patterns[i] = lexer.Pattern{Kind: lexer.Kind(p.Kind), Re: p.Re}
	}
	ignored := make([]lexer.Kind, len(r.Ignored))
	for i, k := range r.Ignored {
		ignored[i] = lexer.Kind(k)
	}
	return lexer.New(r.Literals, patterns, ignored...)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
