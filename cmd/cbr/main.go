// Package main implements the cbr interpreter command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/you-not-fish/cbr/internal/config"
	"github.com/you-not-fish/cbr/internal/interp"
	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/stdlib"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// Interpreter flags
var (
	verbose    = flag.Bool("verbose", false, "Log interpreter activity to stderr and show error hints")
	configPath = flag.String("config", "", "Run configuration file (default: cbr.yml next to the source)")
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text, json or yaml)")
	check      = flag.Bool("check", false, "Check the program without running it")
	seed       = flag.Int64("seed", 0, "Seed for std.random (overrides the configuration)")
	sleepUnit  = flag.Duration("sleep-unit", 0, "Time unit of std.sleep (overrides the configuration)")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cbr interpreter %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: cbr [options] <file.cbr>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("cbr version %s\n", Version)
		fmt.Printf("go version %s\n", goruntime.Version())
		os.Exit(interp.ExitOK)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "error: expected exactly one input file")
		fmt.Fprintln(os.Stderr, "usage: cbr [options] <file.cbr>")
		os.Exit(interp.ExitUsage)
	}
	filename := args[0]

	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}
	if *emitAST {
		os.Exit(runEmitAST(filename, *astFormat))
	}

	conf, err := loadConfig(*configPath, filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(interp.ExitError)
	}
	if err := applyFlags(conf, *verbose, *seed, *sleepUnit); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(interp.ExitUsage)
	}
	logger := newLogger(os.Stderr, conf.Verbose)

	if *check {
		os.Exit(runCheck(filename, conf, logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runFile(ctx, filename, conf, logger, os.Stdin)
	stop()
	os.Exit(code)
}

// loadConfig returns the configuration named by -config, or the one found
// next to the source file.
func loadConfig(path, filename string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Find(filename)
}

// applyFlags overrides conf with the flags that were set and validates the
// result. Zero seed and unit leave the configured values alone.
func applyFlags(conf *config.Config, verbose bool, seed int64, unit time.Duration) error {
	if verbose {
		conf.Verbose = true
	}
	if seed != 0 {
		conf.Seed = seed
	}
	if unit != 0 {
		conf.SleepUnit = unit
	}
	return conf.Validate()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseFile(filename string) (*syntax.File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return syntax.ParseFile(filename, f)
}

func newStd(conf *config.Config, logger *slog.Logger) *stdlib.Library {
	return stdlib.New(stdlib.Config{
		SleepUnit: conf.SleepUnit,
		Seed:      conf.Seed,
		Logger:    logger,
	})
}

// runFile loads and runs a program and returns the process exit code.
func runFile(ctx context.Context, filename string, conf *config.Config, logger *slog.Logger, stdin io.Reader) int {
	start := time.Now()
	file, err := parseFile(filename)
	if err != nil {
		return report(err, conf.Verbose)
	}

	std := newStd(conf, logger)
	in, err := interp.New(file, &interp.Config{
		Stdout:       os.Stdout,
		Stdin:        stdin,
		Logger:       logger,
		MaxDepth:     conf.MaxDepth,
		MaxCallDepth: conf.MaxCallDepth,
		Std:          std,
	})
	if err != nil {
		return report(err, conf.Verbose)
	}
	logger.Info("loaded", "file", filename, "funcs", in.Funcs().Len(), "std", std.Names(), "config", conf.Path)

	result, err := in.Run(ctx)
	logger.Info("finished", "file", filename, "result", result, "elapsed", time.Since(start))
	return report(err, conf.Verbose)
}

// runCheck verifies a program without running it.
func runCheck(filename string, conf *config.Config, logger *slog.Logger) int {
	file, err := parseFile(filename)
	if err != nil {
		return report(err, conf.Verbose)
	}
	err = interp.Check(file, newStd(conf, logger))
	if err == nil {
		logger.Info("check passed", "file", filename, "funcs", len(file.Funcs))
	}
	return report(err, conf.Verbose)
}

// report prints err and returns the matching exit code. Program
// diagnostics go to stdout as "pos message 'near'"; other failures go to
// stderr.
func report(err error, verbose bool) int {
	if err == nil {
		return interp.ExitOK
	}
	var se *syntax.Error
	var re *runtime.Error
	switch {
	case errors.As(err, &re):
		fmt.Fprintln(os.Stdout, re)
		if verbose && re.Hint != "" {
			fmt.Fprintln(os.Stdout, re.Hint)
		}
	case errors.As(err, &se):
		fmt.Fprintln(os.Stdout, se)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return interp.ExitCode(err)
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename, format string) int {
	file, err := parseFile(filename)
	if err != nil {
		return report(err, false)
	}

	switch format {
	case "text":
		syntax.Fprint(os.Stdout, file)
	case "json":
		err = syntax.FprintJSON(os.Stdout, file)
	case "yaml":
		err = syntax.FprintYAML(os.Stdout, file)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q\n", format)
		return interp.ExitUsage
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return interp.ExitError
	}
	return interp.ExitOK
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		return report(err, false)
	}
	defer f.Close()

	s, err := syntax.NewScanner(filename, f)
	if err != nil {
		return report(err, false)
	}

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok == syntax.EOF {
			break
		}
	}

	if err := s.Err(); err != nil {
		fmt.Println()
		return report(err, false)
	}
	return interp.ExitOK
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
