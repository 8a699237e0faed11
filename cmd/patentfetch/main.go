package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/patentdoc"
	"github.com/fwojciec/patentdoc/goquery"
	patenthttp "github.com/fwojciec/patentdoc/http"
	"github.com/fwojciec/patentdoc/rod"
	"github.com/fwojciec/patentdoc/scrape"
	patentslog "github.com/fwojciec/patentdoc/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetcher     string        `short:"f" enum:"rod,http" default:"rod" env:"PATENTFETCH_FETCHER" help:"Page fetcher: rod (headless Chrome) or http"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Format      string        `short:"o" enum:"json,yaml" default:"json" help:"Output format: json or yaml"`
	Languages   bool          `short:"l" help:"Also fetch every translation the page advertises"`
	HTML        bool          `help:"Include the raw page HTML in variant output"`
	Concurrency int           `short:"c" default:"2" help:"Concurrent translation fetch limit"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per host (0 disables limiting)"`
	Debug       bool          `short:"d" help:"Log fetch and parse timings to stderr"`
	Target      string        `arg:"" name:"id-or-url" help:"Patent ID (e.g. US9876543B2) or page URL (e.g. file:///tmp/page.html)"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("patentfetch"),
		kong.Description("Fetch a patent page and print its microdata as structured JSON or YAML"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	target, err := patentdoc.ResolveTarget(cli.Target)
	if err != nil {
		return err
	}

	// Diagnostics are always reported; timings only with --debug.
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	fetcher, err := newFetcher(cli)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var pageParser patentdoc.Parser = goquery.NewParser(
		goquery.WithDiagnostics(patentslog.DiagnosticLogger(logger)),
	)
	if cli.Debug {
		fetcher = patentslog.NewLoggingFetcher(fetcher, logger)
		pageParser = patentslog.NewLoggingParser(pageParser, logger)
	}

	variants := &scrape.Scraper{
		Fetcher:      fetcher,
		Parser:       pageParser,
		Translations: cli.Languages,
		Concurrency:  cli.Concurrency,
		Log: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
	}
	// A zero rate disables limiting.
	if cli.RPS > 0 {
		variants.RateLimiter = scrape.NewRateLimiter(cli.RPS)
	}

	var scraper patentdoc.Scraper = variants
	if cli.Debug {
		scraper = patentslog.NewLoggingScraper(scraper, logger)
	}

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Scraper: scraper,
	}

	cmd := &FetchCmd{
		Target:    target,
		Format:    cli.Format,
		Languages: cli.Languages,
		HTML:      cli.HTML,
	}

	return cmd.Run(deps)
}

// newFetcher constructs the fetcher selected on the command line.
func newFetcher(cli *CLI) (patentdoc.Fetcher, error) {
	switch cli.Fetcher {
	case "http":
		return patenthttp.NewFetcher(patenthttp.WithTimeout(cli.Timeout)), nil
	default:
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed, or use --fetcher http): %w", err)
		}
		return f, nil
	}
}
