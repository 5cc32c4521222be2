package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/cli"
	"github.com/EfeTurkel/simpofocus/internal/db"
	"github.com/EfeTurkel/simpofocus/internal/repository"
	"github.com/EfeTurkel/simpofocus/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.simpofocus/simpofocus.db
	dbPath := os.Getenv("SIMPOFOCUS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".simpofocus", "simpofocus.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	snapshots := repository.NewSQLiteSnapshotRepo(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("SIMPOFOCUS_DEBUG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	walletSvc := service.NewWalletService(
		service.LoadWalletState(ctx, snapshots), snapshots,
		service.WithWalletObserver(observer))
	bankSvc := service.NewBankService(
		service.LoadBankState(ctx, snapshots, time.Now()), walletSvc, snapshots,
		service.WithBankRand(rng),
		service.WithBankObserver(observer))
	marketSvc := service.NewMarketService(
		service.LoadMarketState(ctx, snapshots), walletSvc, snapshots,
		service.WithMarketRand(rng),
		service.WithMarketObserver(observer))
	timerSvc := service.NewTimerService(
		service.LoadTimerState(ctx, snapshots), walletSvc, snapshots,
		service.WithTimerObserver(observer))

	app := &cli.App{
		Timers: timerSvc,
		Wallet: walletSvc,
		Bank:   bankSvc,
		Market: marketSvc,
		Status: service.NewStatusService(timerSvc, walletSvc, bankSvc, marketSvc),
	}

	rootCmd := cli.NewRootCmd(app)

	// Bare invocation on a terminal opens the live view.
	if len(os.Args) == 1 && isatty.IsTerminal(os.Stdin.Fd()) {
		rootCmd.SetArgs([]string{"watch"})
	}

	return rootCmd.Execute()
}
