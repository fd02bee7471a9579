// Package cmd содержит команды collabctl.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/collabhub-backend/internal/config"
	"github.com/ignatzorin/collabhub-backend/internal/db"
	"github.com/ignatzorin/collabhub-backend/internal/logger"
)

// Version задаётся из main через ldflags.
var Version = "dev"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "collabctl",
		Short:         "Администрирование CollabHub",
		Long:          "collabctl применяет миграции, загружает демо-данные и показывает просроченные платежи.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("database-url", "", "DSN PostgreSQL (по умолчанию из DATABASE_URL)")

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newOverdueCmd())
	return root
}

// Execute запускает корневую команду.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = Version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "collabctl:", err)
		os.Exit(1)
	}
}

// bootstrap читает конфигурацию и открывает соединение с базой.
func bootstrap(cmd *cobra.Command) (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	if dsn, _ := cmd.Flags().GetString("database-url"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	conn, err := db.NewPostgres(commandContext(cmd), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, conn, nil
}

func closeDB(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logrus.WithError(err).Warn("collabctl: ошибка закрытия базы")
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
