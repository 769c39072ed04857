// Package main provides the mdlinkcheck CLI entrypoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lukemcguire/mdlinkcheck/checker"
	"github.com/lukemcguire/mdlinkcheck/docs"
	"github.com/lukemcguire/mdlinkcheck/result"
	"github.com/lukemcguire/mdlinkcheck/tui"
)

const (
	exitOK     = 0
	exitBroken = 1
	exitFault  = 2
)

// options holds the parsed command line.
type options struct {
	timeout   int
	workers   int
	root      string
	format    string
	html      bool
	rateLimit int
	tui       bool
	verbose   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one link check and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFault
	}

	setupLogging(stderr, opts.verbose)

	paths, err := docs.Find(opts.root)
	if err != nil {
		log.Error().Err(err).Str("root", opts.root).Msg("Failed to discover Markdown files")
		return exitFault
	}
	if len(paths) == 0 {
		_, _ = fmt.Fprintf(stderr, "No Markdown files found under %s\n", opts.root)
		return report(stdout, opts, &result.Result{})
	}

	refs, err := docs.Extractor{Base: ".", HTML: opts.html}.Extract(paths)
	if err != nil {
		log.Error().Err(err).Msg("Failed to extract links")
		return exitFault
	}
	log.Debug().Int("documents", len(paths)).Int("links", len(refs)).Msg("Extracted links")

	if len(refs) == 0 {
		if opts.format == "text" {
			_, _ = fmt.Fprintln(stdout, "No external links discovered in Markdown content.")
			return exitOK
		}
		return report(stdout, opts, &result.Result{})
	}

	cfg := checker.Config{
		Timeout:   time.Duration(opts.timeout) * time.Second,
		Workers:   opts.workers,
		UserAgent: checker.DefaultUserAgent,
		RateLimit: opts.rateLimit,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var res *result.Result
	if opts.tui {
		res, err = runTUI(ctx, cfg, refs, stderr)
	} else {
		if opts.format == "text" {
			result.PrintStart(stdout, len(refs), cfg.Timeout)
		}
		res, err = checker.New(cfg, nil).Run(ctx, refs)
	}
	if err != nil {
		log.Error().Err(err).Msg("Link check aborted")
		return exitFault
	}

	return report(stdout, opts, res)
}

// report writes res in the selected format and derives the exit status.
// The TUI has already rendered its own summary for the text format.
func report(w io.Writer, opts options, res *result.Result) int {
	var err error
	switch opts.format {
	case "json":
		err = result.WriteJSON(w, res.Failures())
	case "csv":
		err = result.WriteCSV(w, res.Failures())
	default:
		if !opts.tui && len(res.Links) > 0 {
			result.PrintResults(w, res)
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write report")
		return exitFault
	}

	if result.ExitCode(res) != 0 {
		return exitBroken
	}
	return exitOK
}

// runTUI runs the check behind the Bubble Tea progress view rendered on w.
func runTUI(ctx context.Context, cfg checker.Config, refs docs.ReferenceMap, w io.Writer) (*result.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan checker.Event, 100)
	engine := checker.New(cfg, progressCh)

	model := tui.NewModel(ctx, cancel, engine, refs, progressCh)
	finalModel, err := tea.NewProgram(model, tea.WithOutput(w)).Run()
	if err != nil {
		return nil, fmt.Errorf("run tui: %w", err)
	}

	final, ok := finalModel.(tui.Model)
	if !ok {
		return nil, fmt.Errorf("unexpected tui model %T", finalModel)
	}
	if final.Err() != nil {
		return nil, final.Err()
	}
	if final.GetResult() == nil {
		return nil, context.Canceled
	}
	return final.GetResult(), nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("mdlinkcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.timeout, "timeout", 10, "HTTP timeout per request in seconds")
	fs.IntVar(&opts.workers, "workers", 16, "number of concurrent workers")
	fs.StringVar(&opts.root, "root", "./docs", "directory scanned for Markdown files")
	fs.StringVar(&opts.format, "format", "text", "output format: text, json or csv")
	fs.BoolVar(&opts.html, "html", false, "also check inline <a href> anchors")
	fs.IntVar(&opts.rateLimit, "rate-limit", 0, "maximum requests per second across all workers (0 = unlimited)")
	fs.BoolVar(&opts.tui, "tui", false, "show interactive progress")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.timeout < 1:
		return opts, fmt.Errorf("--timeout must be at least 1 second, got %d", opts.timeout)
	case opts.workers < 1:
		return opts, fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	case opts.rateLimit < 0:
		return opts, fmt.Errorf("--rate-limit must not be negative, got %d", opts.rateLimit)
	}

	switch opts.format {
	case "text", "json", "csv":
	default:
		return opts, fmt.Errorf("unknown --format %q (want text, json or csv)", opts.format)
	}

	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// setupLogging routes the global zerolog logger to w.
func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
