package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/podhmo/literaleval"
	"github.com/podhmo/literaleval/ast"
	"github.com/podhmo/literaleval/internal/config"
	"github.com/podhmo/literaleval/internal/help"
	"github.com/podhmo/literaleval/internal/metadata"
	"github.com/podhmo/literaleval/parser"
	"github.com/podhmo/literaleval/value"
)

const (
	progName    = "literaleval"
	configEnv   = "LITERALEVAL_CONFIG"
	description = "safely evaluate literal expressions"
)

func main() {
	// debug mode: if DEBUG environment variable is set, enable debug logging
	if _, ok := os.LookupEnv("DEBUG"); ok {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("Error resolving working directory", "error", err)
		os.Exit(1)
	}
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, cwd: cwd, getenv: os.Getenv}
	os.Exit(a.run(context.Background(), os.Args[1:]))
}

// app carries the process environment so that tests can substitute it.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cwd    string
	getenv func(string) string
}

var (
	optConfig = &metadata.OptionMetadata{
		CliName:  "config",
		TypeName: "string",
		HelpText: "Path of a YAML config file (default: " + config.FileName + " in the working directory)",
		EnvVar:   configEnv,
	}
	optStrategy = &metadata.OptionMetadata{
		CliName:      "strategy",
		TypeName:     "string",
		HelpText:     "Tree walk used for conversion",
		DefaultValue: config.Default().Strategy,
		EnumValues:   []any{literaleval.StrategyStack.String(), literaleval.StrategyRecursive.String()},
	}
	optFormat = &metadata.OptionMetadata{
		CliName:      "format",
		TypeName:     "string",
		HelpText:     "Output format",
		DefaultValue: config.Default().Format,
		EnumValues:   []any{config.FormatRepr, config.FormatYAML},
	}
	optMaxIntDigits = &metadata.OptionMetadata{
		CliName:      "max-int-digits",
		TypeName:     "int",
		HelpText:     "Maximum digits of a decimal integer literal, 0 for no limit",
		DefaultValue: config.Default().MaxIntDigits,
	}
	optMaxFrames = &metadata.OptionMetadata{
		CliName:  "max-frames",
		TypeName: "int",
		HelpText: "Maximum worklist length of the stack strategy, 0 for no limit",
	}
)

var (
	evalCommand = &metadata.CommandMetadata{
		Name:        "eval",
		Description: "Evaluate each expression and print its value.\nExpressions are read from stdin, one per line, when none are given.",
		Args:        "[expr...]",
		Options:     []*metadata.OptionMetadata{optStrategy, optFormat, optMaxIntDigits, optMaxFrames, optConfig},
	}
	dumpCommand = &metadata.CommandMetadata{
		Name:        "dump",
		Description: "Parse each expression and print its syntax tree.",
		Args:        "[expr...]",
		Options:     []*metadata.OptionMetadata{optMaxIntDigits, optConfig},
	}
	verifyCommand = &metadata.CommandMetadata{
		Name:        "verify",
		Description: "Evaluate each expression with both strategies and check that they agree\nand that the printed value evaluates back to an equal value.",
		Args:        "[expr...]",
		Options:     []*metadata.OptionMetadata{optMaxIntDigits, optMaxFrames, optConfig},
	}
	commands = []*metadata.CommandMetadata{evalCommand, dumpCommand, verifyCommand}
)

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		fmt.Fprint(a.stderr, help.GenerateOverview(progName, description, commands))
		return 1
	}

	var err error
	switch args[0] {
	case "eval":
		err = a.eval(ctx, args[1:])
	case "dump":
		err = a.dump(ctx, args[1:])
	case "verify":
		err = a.verify(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, help.GenerateOverview(progName, description, commands))
		return 0
	default:
		fmt.Fprintf(a.stderr, "Error: Unknown subcommand '%s'\n\n", args[0])
		fmt.Fprint(a.stderr, help.GenerateOverview(progName, description, commands))
		return 1
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	default:
		slog.Error("Error running "+progName+" "+args[0], "error", err)
		return 1
	}
}

// options receives the flag values of a subcommand.
type options struct {
	configPath   string
	strategy     string
	format       string
	maxIntDigits int
	maxFrames    int
}

// parseFlags defines the flags listed in cmdMeta, parses args and returns
// the effective configuration and the positional arguments.
func (a *app) parseFlags(cmdMeta *metadata.CommandMetadata, args []string) (config.Config, []string, error) {
	fs := flag.NewFlagSet(cmdMeta.Name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprint(a.stderr, help.GenerateHelp(progName, cmdMeta))
	}

	var o options
	defaults := config.Default()
	for _, opt := range cmdMeta.Options {
		switch opt {
		case optConfig:
			fs.StringVar(&o.configPath, opt.CliName, "", opt.HelpText)
		case optStrategy:
			fs.StringVar(&o.strategy, opt.CliName, defaults.Strategy, opt.HelpText)
		case optFormat:
			fs.StringVar(&o.format, opt.CliName, defaults.Format, opt.HelpText)
		case optMaxIntDigits:
			fs.IntVar(&o.maxIntDigits, opt.CliName, defaults.MaxIntDigits, opt.HelpText)
		case optMaxFrames:
			fs.IntVar(&o.maxFrames, opt.CliName, defaults.MaxFrames, opt.HelpText)
		}
	}
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, err
	}

	cfg, err := a.loadConfig(o.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	// flags given on the command line override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case optStrategy.CliName:
			cfg.Strategy = o.strategy
		case optFormat.CliName:
			cfg.Format = o.format
		case optMaxIntDigits.CliName:
			cfg.MaxIntDigits = o.maxIntDigits
		case optMaxFrames.CliName:
			cfg.MaxFrames = o.maxFrames
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, fs.Args(), nil
}

func (a *app) loadConfig(explicitPath string) (config.Config, error) {
	if explicitPath == "" {
		explicitPath = a.getenv(configEnv)
	}
	path, found, err := config.Discover(explicitPath, a.cwd)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to locate config: %w", err)
	}
	if !found {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("Loaded config", "path", path)
	return cfg, nil
}

func newEvaluator(cfg config.Config) (*literaleval.Evaluator, error) {
	opts, err := cfg.EvaluatorOptions()
	if err != nil {
		return nil, err
	}
	return literaleval.New(append(opts, literaleval.WithLogger(slog.Default()))...), nil
}

// inputs returns the positional arguments, or the non-blank lines of stdin
// when there are none.
func (a *app) inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	sc := bufio.NewScanner(a.stdin)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}

// reportError prints err for src, with a source excerpt for syntax errors.
func (a *app) reportError(src string, err error) {
	var syntaxErr *parser.SyntaxError
	if errors.As(err, &syntaxErr) {
		fmt.Fprint(a.stderr, syntaxErr.Snippet(strings.TrimLeft(src, " \t")))
		return
	}
	fmt.Fprintf(a.stderr, "%s\n", err)
}

func (a *app) eval(ctx context.Context, args []string) error {
	cfg, rest, err := a.parseFlags(evalCommand, args)
	if err != nil {
		return err
	}
	ev, err := newEvaluator(cfg)
	if err != nil {
		return err
	}
	srcs, err := a.inputs(rest)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "Evaluating", "count", len(srcs), "strategy", cfg.Strategy, "format", cfg.Format)
	failed, written := 0, 0
	for _, src := range srcs {
		v, err := ev.Eval(ctx, src)
		if err != nil {
			failed++
			a.reportError(src, err)
			continue
		}
		switch cfg.Format {
		case config.FormatYAML:
			out, err := value.MarshalYAML(v)
			if err != nil {
				return fmt.Errorf("failed to encode %q as yaml: %w", src, err)
			}
			if written > 0 {
				out = append([]byte("---\n"), out...)
			}
			if _, err := a.stdout.Write(out); err != nil {
				return fmt.Errorf("failed to write yaml: %w", err)
			}
		default:
			if _, err := fmt.Fprintln(a.stdout, value.Repr(v)); err != nil {
				return fmt.Errorf("failed to write value: %w", err)
			}
		}
		written++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(srcs))
	}
	return nil
}

func (a *app) dump(ctx context.Context, args []string) error {
	cfg, rest, err := a.parseFlags(dumpCommand, args)
	if err != nil {
		return err
	}
	ev, err := newEvaluator(cfg)
	if err != nil {
		return err
	}
	srcs, err := a.inputs(rest)
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range srcs {
		tree, err := ev.Parse(src)
		if err != nil {
			failed++
			a.reportError(src, err)
			continue
		}
		if err := ast.Fdump(a.stdout, tree); err != nil {
			return fmt.Errorf("failed to write tree: %w", err)
		}
	}
	slog.DebugContext(ctx, "Dumped", "count", len(srcs)-failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed to parse", failed, len(srcs))
	}
	return nil
}

func (a *app) verify(ctx context.Context, args []string) error {
	cfg, rest, err := a.parseFlags(verifyCommand, args)
	if err != nil {
		return err
	}
	ev, err := newEvaluator(cfg)
	if err != nil {
		return err
	}
	srcs, err := a.inputs(rest)
	if err != nil {
		return err
	}

	mismatches := 0
	for _, src := range srcs {
		v, err := ev.Verify(ctx, src)
		var mismatch *literaleval.MismatchError
		switch {
		case errors.As(err, &mismatch):
			mismatches++
			fmt.Fprintf(a.stdout, "FAIL %s\n", mismatch)
		case err != nil:
			fmt.Fprintf(a.stdout, "ok   %s (rejected: %s)\n", src, err)
		default:
			fmt.Fprintf(a.stdout, "ok   %s => %s\n", src, value.Repr(v))
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d expressions disagree between strategies", mismatches, len(srcs))
	}
	return nil
}
