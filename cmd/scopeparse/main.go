/*
scopeparse is a console utility for inspecting scope headers.
Usage is

	scopeparse [--rules <file>] [-v] <command> <args>

Commands are tokens, parse, events, captures, format, and rules.
Lexeme rules are read from --rules file, from file named by SCOPEPARSE_RULES variable,
or the built-in rules are used.
*/
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ava12/scopeparse/event"
	"github.com/ava12/scopeparse/internal/config"
	"github.com/ava12/scopeparse/scope"
)

const (
	textOutput = "text"
	yamlOutput = "yaml"
)

type app struct {
	rulesPath string
	verbose   bool
	useEvents bool
	output    string
	logger    *slog.Logger
}

func main() {
	if e := newRootCmd(os.Stdout, os.Stderr).Execute(); e != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "scopeparse",
		Short:         "scopeparse inspects scope headers",
		Long:          `scopeparse tokenizes, parses, and formats scope headers like [a.b."c d"].`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVarP(&a.rulesPath, "rules", "r", "", "lexeme rules file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	tokensCmd := &cobra.Command{
		Use:   "tokens <header>",
		Short: "Print tokens of a scope header",
		Args:  cobra.ExactArgs(1),
		RunE:  a.wrap(a.runTokens),
	}

	parseCmd := &cobra.Command{
		Use:   "parse <header>",
		Short: "Print keys of a scope header",
		Args:  cobra.ExactArgs(1),
		RunE:  a.wrap(a.runParse),
	}
	parseCmd.Flags().BoolVarP(&a.useEvents, "events", "e", false, "use event parser instead of recursive-descent parser")
	parseCmd.Flags().StringVarP(&a.output, "output", "o", textOutput, "output format: text or yaml")

	eventsCmd := &cobra.Command{
		Use:   "events <header>",
		Short: "Print structural events of a scope header",
		Args:  cobra.ExactArgs(1),
		RunE:  a.wrap(a.runEvents),
	}

	capturesCmd := &cobra.Command{
		Use:   "captures <header>",
		Short: "Print capture tree of a scope header as YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  a.wrap(a.runCaptures),
	}

	formatCmd := &cobra.Command{
		Use:   "format [key...]",
		Short: "Build a scope header from keys",
		RunE:  a.wrap(a.runFormat),
	}

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Print effective lexeme rules as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, e := config.Load(a.rulesPath)
			if e != nil {
				return a.fail(cmd, e)
			}
			data, e := rules.Marshal()
			if e != nil {
				return a.fail(cmd, e)
			}
			_, e = cmd.OutOrStdout().Write(data)
			return e
		},
	}

	rootCmd.AddCommand(tokensCmd, parseCmd, eventsCmd, capturesCmd, formatCmd, rulesCmd)
	return rootCmd
}

func (a *app) fail(cmd *cobra.Command, e error) error {
	a.logger.Debug("command failed", slog.String("command", cmd.Name()), slog.Any("error", e))
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
	return e
}

func (a *app) wrap(run func(cmd *cobra.Command, p *scope.Parser, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, e := a.parser()
		if e == nil {
			e = run(cmd, p, args)
		}
		if e != nil {
			return a.fail(cmd, e)
		}
		return nil
	}
}

func (a *app) parser() (*scope.Parser, error) {
	rules, e := config.Load(a.rulesPath)
	if e != nil {
		return nil, e
	}
	l, e := rules.Lexer()
	if e != nil {
		return nil, e
	}
	a.logger.Debug("rules loaded",
		slog.String("path", a.rulesPath),
		slog.Int("literals", len(rules.Literals)),
		slog.Int("patterns", len(rules.Patterns)))
	return scope.New(l), nil
}

func (a *app) runTokens(cmd *cobra.Command, p *scope.Parser, args []string) error {
	text := args[0]
	tokens, e := p.Tokens(text)
	if e != nil {
		return e
	}
	out := cmd.OutOrStdout()
	for _, t := range tokens {
		fmt.Fprintf(out, "%s\t%q\n", t, text[t.Start:t.End])
	}
	return nil
}

func (a *app) runParse(cmd *cobra.Command, p *scope.Parser, args []string) error {
	var (
		keys []string
		e    error
	)
	if a.useEvents {
		keys, e = p.ParseEvents(args[0])
	} else {
		keys, e = p.Parse(args[0])
	}
	if e != nil {
		return e
	}
	a.logger.Debug("parsed", slog.Int("keys", len(keys)), slog.Bool("events", a.useEvents))

	out := cmd.OutOrStdout()
	switch strings.ToLower(a.output) {
	case textOutput:
		for _, key := range keys {
			fmt.Fprintln(out, key)
		}
		return nil
	case yamlOutput:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(keys)
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
}

func (a *app) runEvents(cmd *cobra.Command, p *scope.Parser, args []string) error {
	events, _, e := p.Events(args[0])
	if e != nil {
		return e
	}
	return event.Dump(cmd.OutOrStdout(), events)
}

func (a *app) runCaptures(cmd *cobra.Command, p *scope.Parser, args []string) error {
	m, _, e := p.Capture(args[0])
	if e != nil {
		return e
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(m)
}

func (a *app) runFormat(cmd *cobra.Command, p *scope.Parser, args []string) error {
	text, e := p.Format(args)
	if e != nil {
		return e
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
