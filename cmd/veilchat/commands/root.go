package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"veilchat/internal/app"
	"veilchat/internal/console"
	"veilchat/internal/store"
)

var (
	cfg        = app.Defaults()
	configPath string
	passphrase string
	logger     *slog.Logger
	appCtx     *app.App

	stdin = os.Stdin
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "veilchat",
		Short:         "Encrypted two-party terminal chat over TCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = os.Getenv(app.ConfigEnv)
			}
			if err := cfg.Load(configPath, cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.ResolvePaths(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			l, err := app.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			logger = l.With("command", cmd.Name())
			slog.SetDefault(logger)

			appCtx = app.New(cfg, logger)
			return nil
		},
	}

	cfg.BindFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"config file, .toml or .yaml (default $"+app.ConfigEnv+")")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the key record")

	root.AddCommand(keygenCmd(), fingerprintCmd(), keyCmd(), authCmd(), serveCmd(), connectCmd())

	err := root.ExecuteContext(ctx)
	if err != nil {
		if logger != nil {
			logger.Error("command failed", "err", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

// unlockKey makes sure the key record can be opened, prompting for the
// passphrase when the record is sealed and none was given.
func unlockKey() error {
	_, err := appCtx.KeyStore.LoadKey(passphrase)
	if !errors.Is(err, store.ErrPassphraseRequired) {
		return err
	}
	p, perr := console.ReadPassphrase("Key passphrase: ", stdin, os.Stderr)
	if perr != nil {
		return fmt.Errorf("%w: %w", err, perr)
	}
	passphrase = p
	_, err = appCtx.KeyStore.LoadKey(passphrase)
	return err
}
