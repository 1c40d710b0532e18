// Command reaper deletes stale anonymous carts. It is meant to run from cron
// or a scheduler, either as a single pass or looping on an interval.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petshop/internal/db"
	"petshop/internal/domain/carts"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	retentionDays int
	interval      time.Duration
	dbAddr        string
)

var rootCmd = &cobra.Command{
	Use:   "reaper",
	Short: "Reclaim abandoned anonymous carts past the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if dbAddr == "" {
			dbAddr = os.Getenv("DB_ADDR")
		}
		pool, err := db.New(dbAddr, 4, "15m")
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		reaper := carts.NewReaper(carts.NewRepository(pool), logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if interval <= 0 {
			_, err := reaper.Reap(ctx, time.Now(), retentionDays)
			return err
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if _, err := reaper.Reap(ctx, time.Now(), retentionDays); err != nil {
				logger.Errorw("reap pass failed", "error", err)
			}
			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func newLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		zapcore.InfoLevel,
	)
	return zap.New(core).Sugar(), nil
}

func init() {
	rootCmd.Flags().IntVar(&retentionDays, "retention-days", carts.DefaultRetentionDays,
		"carts older than this many whole days are reclaimed")
	rootCmd.Flags().DurationVar(&interval, "interval", 0,
		"run continuously with this period; 0 runs a single pass")
	rootCmd.Flags().StringVar(&dbAddr, "db-addr", "",
		"database connection string (default $DB_ADDR)")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
