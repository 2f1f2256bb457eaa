// Package main provides the CLI entrypoint for vizspec-compiler.
//
// vizspec-compiler reads a request (insight, column metadata and view
// options) from a YAML, JSON or HCL file and writes the compiled
// visualization program:
//
//	vizspec-compiler -request req.yaml [-format json|yaml|spew] [-check] [-o out.json] [-v 1]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"

	"vizspec-compiler/internal/compile"
	"vizspec-compiler/internal/diagnostic"
	"vizspec-compiler/internal/insight"
	"vizspec-compiler/internal/program"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatSpew = "spew"
)

var errUsage = errors.New("usage error")

type options struct {
	request   string
	format    string
	check     bool
	output    string
	verbosity int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		fmt.Fprintln(stderr, err)

		return 2
	}

	logger := newLogger(stderr, opts.verbosity)

	if err := execute(opts, logger, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("vizspec-compiler", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.request, "request", "", "request file (.yaml, .json or .hcl)")
	fs.StringVar(&opts.format, "format", formatJSON, "output format: json, yaml or spew")
	fs.BoolVar(&opts.check, "check", false, "validate the request and check the compiled program")
	fs.StringVar(&opts.output, "o", "", "output file (default stdout)")
	fs.IntVar(&opts.verbosity, "v", 0, "log verbosity")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.request == "" {
		return opts, fmt.Errorf("%w: -request is required", errUsage)
	}

	switch opts.format {
	case formatJSON, formatYAML, formatSpew:
	default:
		return opts, fmt.Errorf("%w: unknown format %q", errUsage, opts.format)
	}

	return opts, nil
}

// newLogger logs through slog's text handler; verbosity v enables logr
// levels up to V(v).
func newLogger(w io.Writer, v int) logr.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(-v)})
	return logr.FromSlogHandler(h)
}

func execute(opts options, logger logr.Logger, stdout, stderr io.Writer) error {
	req, err := insight.LoadFile(opts.request)
	if err != nil {
		return err
	}

	if opts.check {
		diags := insight.Validate(req)
		report(stderr, diags)

		if err := diags.Error(); err != nil {
			return fmt.Errorf("invalid request: %w", err)
		}
	}

	cols, err := insight.BuildSpecColumns(req.Insight, req.Columns)
	if err != nil {
		return err
	}

	p, err := compile.New(logger).Compile(req.Insight, cols, req.View)
	if err != nil {
		return err
	}

	if opts.check {
		diags := program.Check(p, cols.Names())
		report(stderr, diags)

		if err := diags.Error(); err != nil {
			return fmt.Errorf("compiled program is inconsistent: %w", err)
		}
	}

	data, err := render(p, opts.format)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = stdout.Write(data)
		return err
	}

	return writeFile(opts.output, data)
}

func render(p *program.Program, format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return p.YAML()
	case formatSpew:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		return []byte(cfg.Sdump(p)), nil
	default:
		data, err := p.JSON()
		if err != nil {
			return nil, err
		}

		return append(data, '\n'), nil
	}
}

func report(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintln(w, "warning:", d)
	}

	for _, d := range diags.Errors {
		fmt.Fprintln(w, "error:", d)
	}
}

// writeFile writes data to path, creating its directory if needed.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
