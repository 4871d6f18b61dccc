package main

import (
	"context"
	"database/sql"
	"io"

	"github.com/spf13/cobra"
	"hookprobe/internal/engine/payload"
	"hookprobe/internal/pkg/errors"
	"hookprobe/internal/pkg/logger"
	"hookprobe/internal/platform/config"
	"hookprobe/internal/platform/database"
	"hookprobe/internal/platform/secrets"
)

type app struct {
	out        io.Writer
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "hookprobe",
		Short:         "Send signed test webhooks and check HMAC-SHA256 signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "failed to load config", err)
			}
			if a.logLevel != "" {
				cfg.Logging.Level = a.logLevel
			}
			logger.Init(cfg.Logging)
			a.cfg = cfg
			return nil
		},
	}
	root.SetOut(out)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.New(errors.ErrCodeInvalidInput, "invalid flags for "+cmd.CommandPath(), err)
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "configs/hookprobe.yaml", "path to config file (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newSendCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newHistoryCmd(a),
		newMigrateCmd(a),
	)

	return root
}

func (a *app) secret(ctx context.Context, source string) (string, error) {
	cfg := a.cfg.Secret
	if source != "" {
		cfg.Source = source
	}

	provider, err := secrets.FromConfig(ctx, cfg)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid secret configuration", err)
	}
	secret, err := provider.Secret(ctx)
	if err != nil {
		return "", errors.New(errors.ErrCodeMissingSecret, "failed to resolve webhook secret", err)
	}
	return secret, nil
}

// noArgs is cobra.NoArgs reported as invalid input.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid arguments", err)
	}
	return nil
}

// payload loads path, falling back to target.payload_path. "-" reads the
// command's input.
func (a *app) payload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		path = a.cfg.Target.PayloadPath
	}

	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = payload.Read(cmd.InOrStdin(), "json")
	} else {
		b, err = payload.Load(path)
	}
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "failed to load payload", err)
	}
	return b, nil
}

// openHistory opens the history store and applies pending migrations.
func (a *app) openHistory() (*sql.DB, error) {
	db, err := database.Open(a.cfg.History)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInternal, "failed to open history", err)
	}
	if _, err := database.Migrate(db); err != nil {
		db.Close()
		return nil, errors.New(errors.ErrCodeInternal, "failed to migrate history", err)
	}
	return db, nil
}
