package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/cognicore/wordfreq/internal/logging"
	"github.com/cognicore/wordfreq/internal/source"
	"github.com/cognicore/wordfreq/pkg/wordfreq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/bootstrap"
	"github.com/cognicore/wordfreq/pkg/wordfreq/config"
	"github.com/cognicore/wordfreq/pkg/wordfreq/export"
	"github.com/cognicore/wordfreq/pkg/wordfreq/rank"
	"github.com/cognicore/wordfreq/pkg/wordfreq/session"
	"github.com/cognicore/wordfreq/pkg/wordfreq/table"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "wordfreq:", err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, "wordfreq:", err)
		return 1
	}
	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "wordfreq:", err)
		return 1
	}
	defer logger.Sync()

	counter, err := buildCounter(ctx, cfg, opts.offline, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return 1
	}
	defer counter.Close()

	if !opts.hasText {
		if err := runInteractive(stdin, stdout, session.New(counter)); err != nil {
			logger.Error("interactive shell", zap.Error(err))
			return 1
		}
		return 0
	}

	if err := countOnce(counter, opts, stdout, logger); err != nil {
		logger.Error("count failed", zap.Error(err))
		return 1
	}
	return 0
}

// buildCounter makes sure the lexical resources exist, unless offline, and
// loads them.
func buildCounter(ctx context.Context, cfg *config.Config, offline bool, logger *zap.Logger) (*wordfreq.Counter, error) {
	if !offline {
		report, err := bootstrap.Ensure(ctx, bootstrap.Options{
			DataDir: cfg.DataDir,
			Remote:  cfg.Remote,
			Timeout: cfg.FetchTimeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		if len(report.Fetched) > 0 {
			logger.Info("resources installed", zap.Strings("fetched", report.Fetched), zap.String("data_dir", cfg.DataDir))
		}
	}

	counter, err := wordfreq.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	return counter, nil
}

// countOnce handles the non-interactive mode: count the argument, then print
// a table or write CSV.
func countOnce(counter *wordfreq.Counter, opts cliOptions, stdout io.Writer, logger *zap.Logger) error {
	in, err := source.Resolve(opts.text, opts.format)
	if err != nil {
		return err
	}
	if in.Path != "" {
		logger.Debug("reading file", zap.String("path", in.Path), zap.String("format", string(in.Format)))
	}
	if in.Skipped > 0 {
		logger.Warn("skipped malformed records", zap.String("path", in.Path), zap.Int("lines", in.Skipped))
	}

	processed, err := counter.Process(in.Text)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	logger.Debug("processed text",
		zap.Int("tokens", len(processed.Tokens)),
		zap.Int("stopwords", len(processed.Tokens)-len(processed.Content)),
		zap.Int("lemmas", len(processed.Lemmas)))

	entries := rank.Count(processed.Lemmas)
	if opts.hideSingletons {
		entries = rank.FilterSingletons(entries)
	}

	if opts.output != "" {
		if err := export.SaveCSV(opts.output, entries); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Saved CSV → %s\n", opts.output)
		return nil
	}

	fmt.Fprintln(stdout, table.Format(entries))
	return nil
}
