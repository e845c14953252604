package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/unklstewy/flapsim/internal/db"
	"github.com/unklstewy/flapsim/pkg/config"
)

var (
	connectRetries int
	maxRunAge      time.Duration
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the sweep database",
	Long: `Manage the PostgreSQL database that stores sweep runs.

Subcommands:
  init     create the tables
  stats    show row counts and the latest optimal configurations
  cleanup  delete runs older than --older-than`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sweep tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), cfg.Database, func(ctx context.Context, database *db.DB) error {
			if err := database.InitSchema(ctx); err != nil {
				return err
			}
			log.Println("Schema initialized")
			return nil
		})
	},
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts and the latest optimal configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), cfg.Database, func(ctx context.Context, database *db.DB) error {
			stats, err := database.GetStats(ctx)
			if err != nil {
				return err
			}
			for _, key := range db.StatKeys {
				fmt.Printf("%-22s %d\n", key, stats[key])
			}

			best, err := db.NewSweepRepository(database).LatestBest(ctx)
			if err != nil {
				return err
			}
			if len(best) == 0 {
				return nil
			}
			fmt.Println()
			for _, b := range best {
				fmt.Printf("%-22s %6.1f°  L/D %.2f\n", b.Variant, b.OptimalAngle, b.MaxLiftToDrag)
			}
			return nil
		})
	},
}

var dbCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old sweep runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if maxRunAge <= 0 {
			return fmt.Errorf("--older-than must be positive, got %v", maxRunAge)
		}
		return withDatabase(cmd.Context(), cfg.Database, func(ctx context.Context, database *db.DB) error {
			n, err := database.CleanupOldRuns(ctx, maxRunAge)
			if err != nil {
				return err
			}
			log.Printf("Deleted %d runs older than %v", n, maxRunAge)
			return nil
		})
	},
}

func init() {
	dbCmd.PersistentFlags().IntVar(&connectRetries, "retries", 3, "Connection attempts before giving up")
	dbCleanupCmd.Flags().DurationVar(&maxRunAge, "older-than", 30*24*time.Hour, "Maximum age of kept runs")

	dbCmd.AddCommand(dbInitCmd, dbStatsCmd, dbCleanupCmd)
	rootCmd.AddCommand(dbCmd)
}

// withDatabase connects, checks health, runs fn and closes the connection.
func withDatabase(ctx context.Context, dbCfg config.DatabaseConfig, fn func(context.Context, *db.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.ConnectWithRetry(ctx, dbCfg, connectRetries, time.Second)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.HealthCheck(ctx, database); err != nil {
		return err
	}
	return fn(ctx, database)
}
