// Package main is the entry point for the valfmt conformance runner.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/bjaus/valfmt"
	"github.com/bjaus/valfmt/internal/cases"
	"github.com/bjaus/valfmt/internal/report"
	"github.com/rs/zerolog"
)

// Version information (set via ldflags during build).
var version = "dev"

// Exit codes.
const (
	exitOK       = 0
	exitMismatch = 1
	exitUsage    = 2
)

const logLevelEnv = "VALFMT_LOG_LEVEL"

type options struct {
	format      report.Format
	size        int
	failFast    bool
	verbose     bool
	listTypes   bool
	showVersion bool
	files       []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "valfmt %s\n", version)
		return exitOK
	}
	if opts.listTypes {
		for _, k := range valfmt.Keys() {
			fmt.Fprintln(stdout, k)
		}
		return exitOK
	}

	log, err := newLogger(stderr, opts.verbose, getenv(logLevelEnv))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	suites := make([]*cases.Suite, 0, len(opts.files))
	for _, path := range opts.files {
		s, err := cases.LoadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("load cases")
			return exitUsage
		}
		log.Debug().Str("file", path).Int("cases", len(s.Cases)).Msg("loaded")
		suites = append(suites, s)
	}

	start := time.Now()
	sum, err := report.WriteIter(stdout, opts.format, results(log, suites, opts))
	if err != nil {
		log.Error().Err(err).Msg("write report")
		return exitUsage
	}
	log.Info().
		Int("passed", sum.Passed).
		Int("failed", sum.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("done")

	if sum.Failed > 0 {
		return exitMismatch
	}
	return exitOK
}

// results runs every case of every suite in order. With fail-fast it stops
// after the first failing row has been yielded.
func results(log zerolog.Logger, suites []*cases.Suite, opts options) iter.Seq[report.Row] {
	return func(yield func(report.Row) bool) {
		for _, s := range suites {
			for res := range s.Run(opts.size) {
				row := toRow(res)
				if row.Status == report.Fail {
					log.Warn().
						Str("case", row.Name).
						Str("type", row.Type).
						Str("spec", row.Spec).
						Str("got", row.Got).
						Str("reason", row.Reason).
						Msg("mismatch")
				} else {
					log.Debug().Str("case", row.Name).Msg("pass")
				}
				if !yield(row) {
					return
				}
				if opts.failFast && row.Status == report.Fail {
					return
				}
			}
		}
	}
}

func toRow(res cases.Result) report.Row {
	row := report.Row{
		Name:   res.Case.Name,
		Type:   res.Case.Key().String(),
		Spec:   res.Case.Spec,
		Size:   res.Size,
		Got:    res.Got,
		Status: report.Pass,
		Reason: res.Reason,
	}
	if !res.Pass {
		row.Status = report.Fail
	}
	return row
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		opts   options
		format string
	)
	fs := flag.NewFlagSet("valfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	formatNames := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		formatNames = append(formatNames, f.String())
	}

	fs.StringVar(&format, "format", report.Table.String(), "Report format ("+strings.Join(formatNames, ", ")+")")
	fs.IntVar(&opts.size, "size", 64, "Destination size for cases without one")
	fs.BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first failing case")
	fs.BoolVar(&opts.verbose, "v", false, "Log every case")
	fs.BoolVar(&opts.listTypes, "types", false, "List supported type keys and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "valfmt - formatter conformance runner\n\n")
		fmt.Fprintf(stderr, "Usage: valfmt [options] cases.yaml...\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  %s  Log level (trace, debug, info, warn, error)\n", logLevelEnv)
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	f, err := report.ParseFormat(format)
	if err != nil {
		return opts, err
	}
	opts.format = f

	if opts.size < 0 {
		return opts, fmt.Errorf("%w: %d", cases.ErrInvalidSize, opts.size)
	}

	opts.files = fs.Args()
	if len(opts.files) == 0 && !opts.listTypes && !opts.showVersion {
		return opts, errors.New("no case files given")
	}
	return opts, nil
}

// newLogger writes human-readable logs to w. The environment level wins over
// -v when both are set.
func newLogger(w io.Writer, verbose bool, envLevel string) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if envLevel != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(envLevel))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("%s: %w", logLevelEnv, err)
		}
		level = l
	}
	writer := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).With().Timestamp().Logger().Level(level), nil
}
