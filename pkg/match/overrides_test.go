package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkeuze/duosync/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesCSV(t *testing.T) {
	path := writeFile(t, "matches.csv", `duo_school_id,school_id,school_name
d1,550e8400-e29b-41d4-a716-446655440000,
d2,,De School
`)
	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", overrides["d1"].SchoolID)
	assert.Equal(t, "De School", overrides["d2"].SchoolName)
}

func TestLoadOverridesCSVShortRows(t *testing.T) {
	// Rows may declare fewer fields than the header; missing fields are
	// empty, and blank keys are skipped.
	path := writeFile(t, "matches.csv", `duo_school_id,school_id,school_name
d1
,ignored
`)
	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, Override{}, overrides["d1"])
}

func TestLoadOverridesCSVMissingKeyColumn(t *testing.T) {
	path := writeFile(t, "matches.csv", "school_id,school_name\nabc,def\n")
	_, err := LoadOverrides(path)
	require.Error(t, err)
	assert.True(t, errors.IsMissingSchema(err))
	assert.Contains(t, err.Error(), "duo_school_id")
}

func TestLoadOverridesCSVDuplicateLastWriteWins(t *testing.T) {
	path := writeFile(t, "matches.csv", `duo_school_id,school_name
d1,Eerste
d1,Tweede
`)
	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, "Tweede", overrides["d1"].SchoolName)
}

func TestLoadOverridesYAML(t *testing.T) {
	path := writeFile(t, "matches.yaml", `
- duo_school_id: d1
  school_id: 550e8400-e29b-41d4-a716-446655440000
- duo_school_id: d2
  school_name: De School
`)
	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", overrides["d1"].SchoolID)
	assert.Equal(t, "De School", overrides["d2"].SchoolName)
}

func TestLoadOverridesYAMLMissingKey(t *testing.T) {
	path := writeFile(t, "matches.yaml", "- school_name: De School\n")
	_, err := LoadOverrides(path)
	require.Error(t, err)
	assert.True(t, errors.IsMissingSchema(err))
}
