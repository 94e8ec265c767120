package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkeuze/duosync/pkg/errors"
)

func TestLoadFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("DUO_IMPORT_DRY_RUN", "true")
	t.Setenv("DUO_MATCH_NAME_ONLY", "true")
	t.Setenv("DUO_MATCH_FILE", "matches.csv")

	BindEnv()
	cfg := Load()

	assert.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "service-key", cfg.ServiceKey)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.NameOnly)
	assert.Equal(t, "matches.csv", cfg.MatchFile)
	assert.Equal(t, DefaultUnmatchedOutput, cfg.UnmatchedOutput)
	require.NoError(t, cfg.Validate())
}

func TestLoadPublicURLFallback(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://public.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")

	BindEnv()
	cfg := Load()

	assert.Equal(t, "https://public.supabase.co", cfg.SupabaseURL)
	assert.False(t, cfg.DryRun)
}

func TestValidateMissingCredentials(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	BindEnv()
	cfg := Load()

	err := cfg.Validate()
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "supabase", cfgErr.Component)
}

func TestUnmatchedOutputOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DUO_UNMATCHED_OUTPUT", "out/unmatched.csv")

	BindEnv()
	cfg := Load()

	assert.Equal(t, "out/unmatched.csv", cfg.UnmatchedOutput)
}
