// Package cmd implements the duosync command line interface.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schoolkeuze/duosync/internal/config"
	"github.com/schoolkeuze/duosync/pkg/logging"
)

var (
	// Version is the build version set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "duosync",
	Short: "Reconcile DUO school seed data against the canonical school store",
	Long: `Duosync ingests a DUO seed spreadsheet, links each DUO school row to at
most one canonical school record, patches canonical records with
DUO-sourced fields, and replaces the derived school-metrics dataset.

Connection parameters come from the environment (or a .env file):
SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY.`,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit string) {
	Version = version
	Commit = commit
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads .env files and binds environment variables.
func initConfig() {
	loadEnvFiles()
	viper.AutomaticEnv()
	config.BindEnv()
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil {
			logging.Debug().Str("file", envFile).Msg("Loaded environment file")
		}
	}
}
