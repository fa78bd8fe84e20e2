package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"lheq-stats/internal/config"
	"lheq-stats/internal/store"
)

var openStore = config.OpenStore

// lheq-import copies teams.json and teams_season.json into the configured
// database.
func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, os.Args[1:], logger)
	stop()
	if err != nil {
		logger.WithError(err).Fatal("Import failed")
	}
}

func run(ctx context.Context, cfg config.Config, args []string, logger *logrus.Logger) error {
	flags := flag.NewFlagSet("lheq-import", flag.ContinueOnError)
	dir := flags.String("dir", cfg.DataDir, "directory holding teams.json and teams_season.json")
	url := flags.String("url", "", "base URL serving the data files; overrides -dir")
	if err := flags.Parse(args); err != nil {
		return err
	}

	backend := cfg.Backend()
	if backend != config.BackendPostgres && backend != config.BackendSQLite {
		return fmt.Errorf("backend %s: set POSTGRES_DSN or DB_PATH to import into a database", backend)
	}

	var (
		src store.Store
		err error
	)
	switch {
	case *url != "":
		src, err = store.NewHTTPStore(*url, store.HTTPOptions{}, logger)
	case *dir != "":
		src, err = store.NewFileStore(*dir)
	default:
		return errors.New("pass -dir, -url or set DATA_DIR")
	}
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	dst, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open team store: %w", err)
	}
	if closer, ok := dst.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close team store")
			}
		}()
	}

	counts, err := store.Copy(ctx, src, dst)
	if err != nil {
		return err
	}
	for dataset, n := range counts {
		logger.WithFields(logrus.Fields{"dataset": dataset, "teams": n}).Info("Imported data set")
	}
	return nil
}
