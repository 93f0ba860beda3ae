// summer - command-line demo for the account summation engine
//
// The tool seeds an in-memory account store, optionally injects transient or
// permanent fetch faults, and runs one summation over the requested IDs:
//
//	summer --account a=1 --account b=1 --account c=1 a b c
//	summer --account master=5 --account a=1 --flaky a=2 a
//	summer --account a=1 --fail b a b
//
// The master account is always part of the run; seed it explicitly to give it
// a balance, otherwise it is created with balance 0.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/johanblumenberg/accountsum/internal/accounts"
	"github.com/johanblumenberg/accountsum/internal/memstore"
)

// Version is set during build.
var Version = "dev"

// config holds process-level settings loaded from environment variables.
// Per-run inputs come from flags instead.
type config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	seedAccounts []string
	flakyFaults  []string
	failIDs      []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "summer [account-id...]",
		Short:         "Sum positive account balances with retry and access logging",
		Version:       Version,
		RunE:          run,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringArrayVar(&seedAccounts, "account", nil, "seed account as id=balance (repeatable)")
	rootCmd.Flags().StringArrayVar(&flakyFaults, "flaky", nil, "inject transient failures as id=count (repeatable)")
	rootCmd.Flags().StringArrayVar(&failIDs, "fail", nil, "permanently fail fetches of this account ID (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	logger := setupLogger(cfg)

	store := memstore.New()
	store.Put(accounts.Account{ID: accounts.MasterAccountID})
	for _, spec := range seedAccounts {
		acct, err := parseAccount(spec)
		if err != nil {
			return err
		}
		store.Put(acct)
	}

	faults, err := parseFaults(flakyFaults)
	if err != nil {
		return err
	}

	var src accounts.AccountStore = store
	if len(faults) > 0 {
		src = memstore.NewFlaky(src, faults)
	}
	if len(failIDs) > 0 {
		src = memstore.NewFailing(src, failIDs...)
	}

	metrics := accounts.NewMetrics(prometheus.DefaultRegisterer)
	summer := accounts.NewSummer(src, accessLog{logger}, metrics, logger)

	total, err := summer.SumAccounts(context.Background(), args)
	if err != nil {
		return err
	}

	fmt.Printf("total: %d\n", total)
	return nil
}

// accessLog satisfies accounts.AccessLogger by writing access records to the
// structured log, standing in for the external audit collaborator.
type accessLog struct {
	log zerolog.Logger
}

func (a accessLog) RecordAccountAccess(masterID, accountID string) {
	a.log.Info().
		Str("master_id", masterID).
		Str("account_id", accountID).
		Msg("account accessed")
}

// setupLogger mirrors the usual split: pretty console output in development,
// JSON everywhere else.
func setupLogger(cfg config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Str("service", "summer").
		Logger()
}

// parseAccount parses an id=balance seed flag.
func parseAccount(spec string) (accounts.Account, error) {
	id, raw, ok := strings.Cut(spec, "=")
	if !ok || id == "" {
		return accounts.Account{}, fmt.Errorf("invalid --account %q, want id=balance", spec)
	}
	balance, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("invalid balance in --account %q: %w", spec, err)
	}
	return accounts.Account{ID: id, Balance: balance}, nil
}

// parseFaults parses repeated id=count flags into a fault map.
func parseFaults(specs []string) (map[string]int, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	faults := make(map[string]int, len(specs))
	for _, spec := range specs {
		id, raw, ok := strings.Cut(spec, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --flaky %q, want id=count", spec)
		}
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("invalid count in --flaky %q", spec)
		}
		faults[id] += count
	}
	return faults, nil
}
