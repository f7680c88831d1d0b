package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"slimtrack/internal/adapter/cli"
	adapthttp "slimtrack/internal/adapter/http"
	"slimtrack/internal/adapter/memory"
	"slimtrack/internal/adapter/postgres"
	"slimtrack/internal/adapter/sqlite"
	"slimtrack/internal/app"
	"slimtrack/internal/config"
	"slimtrack/internal/domain"
	"slimtrack/internal/logging"
	"slimtrack/internal/store"
)

var (
	storeFlag = flag.String("store", "", "Storage backend: memory, sqlite or postgres (overrides SLIMTRACK_STORE).")
	dbFlag    = flag.String("db", "", "SQLite database file (overrides SLIMTRACK_DB_PATH).")
)

func main() {
	os.Exit(run())
}

func run() int {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	if *storeFlag != "" {
		cfg.Store.Driver = *storeFlag
	}
	if *dbFlag != "" {
		cfg.Store.Path = *dbFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Error("open store", "driver", cfg.Store.Driver, "error", err)
		return 1
	}
	defer func() { _ = kv.Close() }()

	repo := store.New(kv, log)
	authSvc := app.NewAuthService(repo, repo, log, app.WithPasswordVerification(cfg.VerifyPasswords))
	weightSvc := app.NewWeightService(repo)
	doseSvc := app.NewDoseService(repo)
	dashSvc := app.NewDashboardService(weightSvc, doseSvc)

	cli.Register(commander, &cli.App{
		Auth:      authSvc,
		Weights:   weightSvc,
		Doses:     doseSvc,
		Dashboard: dashSvc,
	})
	commander.Register(&serveCmd{
		addr:    cfg.Addr,
		handler: adapthttp.New(authSvc, weightSvc, doseSvc, dashSvc, cfg.WebDir, log).Handler(),
		log:     log,
	}, "server")

	return int(commander.Execute(ctx))
}

type kvStore interface {
	domain.KeyValueStore
	Close() error
}

func openStore(ctx context.Context, sc config.StoreConfig) (kvStore, error) {
	switch sc.Driver {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StorePostgres:
		return postgres.Open(sc.DatabaseURL)
	default:
		return sqlite.Open(ctx, sc.Path)
	}
}
