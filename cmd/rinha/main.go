package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/rodrigocam/rinha/pkg/driver"
	"github.com/rodrigocam/rinha/pkg/interpreter"
	"github.com/rodrigocam/rinha/pkg/runtime"
)

const cliToolVersion = "rinha 0.1.0"

const (
	exitOK    = 0
	exitFault = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return exitOK
	}

	opts, err := parseOptions(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return exitOK
		}
		fmt.Fprintf(stderr, "%v\n", err)
		printUsage(stderr)
		return exitUsage
	}

	r := newReporter(stderr, true)
	cfg, err := resolveConfig(opts, r)
	if err != nil {
		r.report(driver.Diagnostic{Stage: driver.StageConfig, Severity: driver.SeverityError, Message: err.Error()})
		return exitFault
	}
	r = newReporter(stderr, cfg.Color)

	return executeDocument(opts.document, cfg, stdout, stderr, r)
}

type cliOptions struct {
	document    string
	configPath  string
	maxDepth    int
	printResult bool
	verbose     bool
	noColor     bool
	set         map[string]bool
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("rinha", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to rinha.yml (default: search upwards from the document)")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "evaluation depth limit")
	fs.BoolVar(&opts.printResult, "print-result", false, "print the value of the root expression")
	fs.BoolVar(&opts.verbose, "v", false, "log evaluation events to stderr")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	switch fs.NArg() {
	case 0:
		return opts, fmt.Errorf("missing document path")
	case 1:
		opts.document = fs.Arg(0)
	default:
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	if opts.set["max-depth"] && opts.maxDepth <= 0 {
		return opts, fmt.Errorf("-max-depth must be positive, got %d", opts.maxDepth)
	}
	return opts, nil
}

// resolveConfig layers defaults, the discovered or explicit rinha.yml, and flags.
func resolveConfig(opts cliOptions, r *reporter) (driver.Config, error) {
	cfg := driver.DefaultConfig()
	path := opts.configPath
	if path == "" {
		found, err := driver.FindConfig(filepath.Dir(opts.document))
		switch {
		case err == nil:
			path = found
		case errors.Is(err, driver.ErrConfigNotFound):
		default:
			r.report(driver.Diagnostic{
				Stage:    driver.StageConfig,
				Severity: driver.SeverityWarning,
				Message:  fmt.Sprintf("unable to locate %s (%v); using defaults", driver.ConfigFileName, err),
			})
		}
	}
	if path != "" {
		loaded, err := driver.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if opts.set["max-depth"] {
		cfg.MaxDepth = opts.maxDepth
	}
	if opts.set["print-result"] {
		cfg.PrintResult = opts.printResult
	}
	if opts.set["no-color"] && opts.noColor {
		cfg.Color = false
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func executeDocument(path string, cfg driver.Config, stdout, stderr io.Writer, r *reporter) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if cfg.Path != "" {
		logger.Debug("loaded config", slog.String("path", cfg.Path))
	}

	file, err := driver.LoadDocument(path)
	if err != nil {
		var docErr *driver.DocumentError
		if errors.As(err, &docErr) {
			r.report(docErr.Diagnostic())
		} else {
			r.report(driver.Diagnostic{Stage: driver.StageDocument, Severity: driver.SeverityError, Message: err.Error()})
		}
		return exitFault
	}

	out := bufio.NewWriter(stdout)
	interp := interpreter.New(
		interpreter.WithOutput(out),
		interpreter.WithLogger(logger),
		interpreter.WithMaxDepth(cfg.MaxDepth),
	)
	result, runErr := interp.Run(file)
	if runErr == nil && cfg.PrintResult {
		fmt.Fprintln(out, runtime.Format(result))
	}
	// Lines printed before a fault still reach stdout ahead of the diagnostic.
	if err := out.Flush(); err != nil {
		r.report(driver.Diagnostic{Stage: driver.StageRuntime, Severity: driver.SeverityError, Message: fmt.Sprintf("write output: %v", err)})
		return exitFault
	}
	if runErr != nil {
		r.report(interpreter.RuntimeDiagnostic(runErr))
		return exitFault
	}
	return exitOK
}

type reporter struct {
	w        io.Writer
	errStyle lipgloss.Style
	wrnStyle lipgloss.Style
}

func newReporter(w io.Writer, color bool) *reporter {
	renderer := lipgloss.NewRenderer(w)
	r := &reporter{w: w, errStyle: renderer.NewStyle(), wrnStyle: renderer.NewStyle()}
	if color {
		r.errStyle = r.errStyle.Foreground(lipgloss.Color("196"))
		r.wrnStyle = r.wrnStyle.Foreground(lipgloss.Color("214"))
	}
	return r
}

func (r *reporter) report(diag driver.Diagnostic) {
	style := r.errStyle
	if diag.Severity == driver.SeverityWarning {
		style = r.wrnStyle
	}
	fmt.Fprintln(r.w, style.Render(driver.DescribeDiagnostic(diag)))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rinha [-config path] [-max-depth n] [-print-result] [-no-color] [-v] <file.json>")
	fmt.Fprintln(w, "  rinha version")
}
