// Command wordfreq-bootstrap fetches the lexical resources into the data
// directory and compiles lexicon.db.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/cognicore/wordfreq/internal/logging"
	"github.com/cognicore/wordfreq/pkg/wordfreq/bootstrap"
	"github.com/cognicore/wordfreq/pkg/wordfreq/config"
	"github.com/cognicore/wordfreq/pkg/wordfreq/pos/perceptron"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (default $WORDFREQ_CONFIG)")
		dataDir    = flag.String("data", "", "Data directory (overrides data_dir)")
		remote     = flag.String("remote", "", "Package base URL (overrides remote)")
		force      = flag.Bool("force", false, "Rebuild lexicon.db even if it exists")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *remote != "" {
		cfg.Remote = *remote
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runBootstrap(ctx, cfg, *force, logger, os.Stdout); err != nil {
		logger.Error("bootstrap failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

// runBootstrap ensures resources and prints a summary of the data directory.
func runBootstrap(ctx context.Context, cfg *config.Config, force bool, logger *zap.Logger, out io.Writer) error {
	report, err := bootstrap.Ensure(ctx, bootstrap.Options{
		DataDir: cfg.DataDir,
		Remote:  cfg.Remote,
		Timeout: cfg.FetchTimeout,
		Force:   force,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	st, err := sqlite.OpenSQLite(ctx, sqlite.Path(cfg.DataDir))
	if err != nil {
		return fmt.Errorf("open %s: %w", sqlite.FileName, err)
	}
	defer st.Close()
	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", sqlite.FileName, err)
	}
	tagger, err := perceptron.Load(perceptron.Dir(cfg.DataDir))
	if err != nil {
		return fmt.Errorf("load tagger: %w", err)
	}

	fmt.Fprintf(out, "Data directory: %s\n", cfg.DataDir)
	for _, r := range bootstrap.Resources() {
		state := "present"
		for _, name := range report.Fetched {
			if name == r.Name {
				state = "fetched"
			}
		}
		if r.Name == perceptron.ModelName {
			state += fmt.Sprintf(" (%d tags)", len(tagger.Classes()))
		}
		fmt.Fprintf(out, "  %-32s %s\n", r.Name, state)
	}
	compiled := "up to date"
	if report.Compiled {
		compiled = "compiled"
	}
	fmt.Fprintf(out, "  %-32s %s (%d lemmas, %d exception forms)\n", sqlite.FileName, compiled, stats.Lemmas, stats.Exceptions)
	return nil
}
