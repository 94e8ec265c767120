package match

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/schoolkeuze/duosync/pkg/errors"
	"github.com/schoolkeuze/duosync/pkg/logging"
)

// Override pins one DUO id to a canonical school, either directly by its
// identifier or by its declared canonical display name.
type Override struct {
	SchoolID   string `yaml:"school_id"`
	SchoolName string `yaml:"school_name"`
}

// Overrides maps DUO school id to its manual override.
type Overrides map[string]Override

// overrideKeyColumn is the required key column of the override table.
const overrideKeyColumn = "duo_school_id"

// LoadOverrides reads a manual-match table. YAML files (.yaml/.yml) carry a
// list of override entries; anything else is parsed as a delimited table
// with a required duo_school_id column. Duplicate keys are last-write-wins,
// logged per duplicate so the source can be cleaned up.
func LoadOverrides(path string) (Overrides, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadOverridesYAML(path)
	default:
		return loadOverridesCSV(path)
	}
}

type yamlOverride struct {
	DUOSchoolID string `yaml:"duo_school_id"`
	Override    `yaml:",inline"`
}

func loadOverridesYAML(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var entries []yamlOverride
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	overrides := make(Overrides, len(entries))
	for _, e := range entries {
		if e.DUOSchoolID == "" {
			return nil, errors.NewSchemaError(filepath.Base(path), overrideKeyColumn)
		}
		addOverride(overrides, e.DUOSchoolID, e.Override, path)
	}
	return overrides, nil
}

func loadOverridesCSV(path string) (Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	if len(records) == 0 {
		return Overrides{}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		header[strings.TrimSpace(h)] = i
	}
	keyIdx, ok := header[overrideKeyColumn]
	if !ok {
		return nil, errors.NewSchemaError(filepath.Base(path), overrideKeyColumn)
	}
	idIdx, hasID := header["school_id"]
	nameIdx, hasName := header["school_name"]

	field := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	overrides := make(Overrides, len(records)-1)
	for _, row := range records[1:] {
		duoID := field(row, keyIdx)
		if duoID == "" {
			continue
		}
		ov := Override{}
		if hasID {
			ov.SchoolID = field(row, idIdx)
		}
		if hasName {
			ov.SchoolName = field(row, nameIdx)
		}
		addOverride(overrides, duoID, ov, path)
	}
	return overrides, nil
}

// addOverride inserts with last-write-wins semantics, warning on duplicate
// keys and on school_id values that are not UUIDs (canonical ids are).
func addOverride(overrides Overrides, duoID string, ov Override, path string) {
	if _, dup := overrides[duoID]; dup {
		logging.Warn().
			Str("file", path).
			Str("duo_school_id", duoID).
			Msg("Duplicate manual-match key, keeping the later entry")
	}
	if ov.SchoolID != "" {
		if _, err := uuid.Parse(ov.SchoolID); err != nil {
			logging.Warn().
				Str("file", path).
				Str("duo_school_id", duoID).
				Str("school_id", ov.SchoolID).
				Msg("Manual-match school_id is not a UUID")
		}
	}
	overrides[duoID] = ov
}
