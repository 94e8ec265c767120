// Package config captures all runtime configuration into one immutable
// value at startup. Nothing else in the pipeline reads the environment;
// the Config is threaded explicitly through ingestion, matching, and
// reconciliation.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/schoolkeuze/duosync/pkg/errors"
)

// DefaultUnmatchedOutput is where the unmatched report lands when no
// destination is configured.
const DefaultUnmatchedOutput = "duo_unmatched.csv"

// Config is the full runtime configuration of one import run.
type Config struct {
	// SupabaseURL is the base URL of the canonical store.
	SupabaseURL string

	// ServiceKey is the service-role key used for both apikey and bearer
	// authentication against the store.
	ServiceKey string

	// DryRun reports computed actions without issuing any writes.
	DryRun bool

	// NameOnly enables the name-only match tier.
	NameOnly bool

	// MatchFile is an optional manual-match override table (CSV or YAML).
	MatchFile string

	// UnmatchedOutput is the destination of the unmatched report.
	UnmatchedOutput string
}

// BindEnv registers the environment variables the importer understands.
// Call once before Load, after .env files have been loaded.
func BindEnv() {
	// Errors from BindEnv only occur with zero arguments.
	_ = viper.BindEnv("supabase_url", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")
	_ = viper.BindEnv("supabase_service_key", "SUPABASE_SERVICE_ROLE_KEY")
	_ = viper.BindEnv("dry_run", "DUO_IMPORT_DRY_RUN")
	_ = viper.BindEnv("match_name_only", "DUO_MATCH_NAME_ONLY")
	_ = viper.BindEnv("match_file", "DUO_MATCH_FILE")
	_ = viper.BindEnv("unmatched_output", "DUO_UNMATCHED_OUTPUT")
}

// Load captures the current viper state into a Config.
func Load() *Config {
	cfg := &Config{
		SupabaseURL:     getString("supabase_url"),
		ServiceKey:      getString("supabase_service_key"),
		DryRun:          viper.GetBool("dry_run"),
		NameOnly:        viper.GetBool("match_name_only"),
		MatchFile:       getString("match_file"),
		UnmatchedOutput: getString("unmatched_output"),
	}
	if cfg.UnmatchedOutput == "" {
		cfg.UnmatchedOutput = DefaultUnmatchedOutput
	}
	return cfg
}

// Validate checks the connection parameters required before any work.
func (c *Config) Validate() error {
	if c.SupabaseURL == "" || c.ServiceKey == "" {
		return errors.NewConfigError("supabase",
			"missing SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY", nil)
	}
	return nil
}

// getString reads a key from viper, falling back to the process
// environment for keys viper has not seen.
func getString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(key)
}
