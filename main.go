package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonscalar/internal/analyzer"
	"github.com/mcncl/jsonscalar/internal/config"
	"github.com/mcncl/jsonscalar/internal/errors"
	"github.com/mcncl/jsonscalar/internal/formatter"
	"github.com/mcncl/jsonscalar/internal/logging"
	"github.com/mcncl/jsonscalar/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Documents   []string `arg:"" optional:"" help:"JSON documents to parse. Each argument is parsed as one document. Negative numbers must come after any flags, or after --."`
	Input       string   `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string   `help:"Path to output report file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string   `help:"Path to YAML config file. If not specified, searches the current directory and its parents." short:"c" type:"path"`
	Format      string   `help:"Report format: text, json or yaml. Overrides the config file." short:"F"`
	Lines       bool     `help:"Treat every non-blank input line as a separate document." short:"l"`
	Summary     bool     `help:"Append a summary of results to the report." short:"s"`
	Debug       bool     `help:"Enable debug logging." short:"d"`
	Version     bool     `help:"Show version information." short:"v"`
	Interactive bool     `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Log    *logging.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// valueFlags take the following argument as their value
var valueFlags = map[string]bool{
	"-i": true, "--input": true,
	"-o": true, "--output": true,
	"-c": true, "--config": true,
	"-F": true, "--format": true,
}

func newCLIParser() *kong.Kong {
	return kong.Must(&CLI,
		kong.Name("jsonscalar"),
		kong.Description("A strict parser for scalar JSON values: true, false, null and numbers"),
		kong.UsageOnError(),
	)
}

// documentArgs inserts "--" before the first argument that is a negative
// number so it is read as a document instead of a short flag.
func documentArgs(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if i > 0 && valueFlags[args[i-1]] {
			continue
		}
		if len(arg) > 1 && arg[0] == '-' && (isDigit(arg[1]) || arg[1] == '.') {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func main() {
	cli := newCLIParser()

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := cli.Parse(documentArgs(os.Args[1:]))
	cli.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("jsonscalar version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// newContext loads configuration and builds the logger
func newContext() (*Context, error) {
	overrides := config.CLIOverrides{
		Format: CLI.Format,
		Debug:  CLI.Debug,
	}
	// Boolean flags only override the config file when set
	if CLI.Lines {
		overrides.Lines = &CLI.Lines
	}
	if CLI.Summary {
		overrides.Summary = &CLI.Summary
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, overrides)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	log := newLogger(os.Stderr, cfg)
	log.Debug("configuration loaded",
		"format", cfg.Output.Format,
		"lines", cfg.Input.Lines,
		"summary", cfg.Output.Summary,
	)

	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Log: log}, nil
}

// newLogger builds the diagnostic logger described by the dev settings
func newLogger(w io.Writer, cfg *config.Config) *logging.Logger {
	level := logging.DefaultLevel
	if cfg.Dev.Verbose {
		level = logging.LevelInfo
	}
	opts := []logging.Option{logging.WithLevel(level), logging.WithDebug(cfg.Dev.Debug)}
	if cfg.Dev.LogFormat == config.LogFormatJSON {
		opts = append(opts, logging.WithJSON())
	}
	return logging.New(w, opts...)
}

// run executes the main program logic
func run(ctx *Context) error {
	a := analyzer.NewAnalyzerWithConfig(ctx.Config, ctx.Log)

	// 1. Parse documents from arguments, or from the input source
	if len(CLI.Documents) > 0 {
		for i, doc := range CLI.Documents {
			a.AddDocument(fmt.Sprintf("arg %d", i+1), doc)
		}
	} else {
		name, data, err := readInput()
		if err != nil {
			return err
		}
		a.AddInput(name, data)
	}

	// 2. Render the report
	result := a.Analyze()
	ctx.Log.Info("parsed documents", "total", result.Summary.Total, "failed", result.Summary.Failed)

	report, err := formatter.NewFormatterWithConfig(ctx.Config).Format(result)
	if err != nil {
		return errors.NewFormatError("failed to render report", err)
	}

	// 3. Output the result
	if err := writeOutput(report); err != nil {
		return err
	}

	return a.Err()
}

// readInput reads raw input from file or stdin and returns it with a label
func readInput() (string, string, error) {
	if CLI.Input != "" {
		data, err := parser.ReadFile(CLI.Input)
		if err != nil {
			return "", "", err
		}
		return CLI.Input, string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			data, err := readInteractiveInput()
			return "stdin", data, err
		}
		return "", "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return "", "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return "stdin", string(data), nil
}

// writeOutput writes the report to file or stdout
func writeOutput(report string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(report), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Print(report)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonscalar Interactive Mode")
	fmt.Fprintln(os.Stderr, "Type or paste JSON values and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}
