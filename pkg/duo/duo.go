// Package duo maps the DUO seed worksheets onto typed records. Everything
// here is deterministic field mapping: required-column checks, inclusion
// filtering, and normalization of the few fields the matcher keys on.
package duo

import (
	"strings"

	"github.com/schoolkeuze/duosync/pkg/errors"
	"github.com/schoolkeuze/duosync/pkg/normalize"
	"github.com/schoolkeuze/duosync/pkg/xlsx"
)

// Worksheet names required in the seed workbook.
const (
	SheetSchools = "Schools_AMS_main"
	SheetMetrics = "Metrics_long"
)

// ErrorValue is the literal the seed spreadsheet carries where a formula
// failed to evaluate. It is treated as "no value" downstream, never as data.
const ErrorValue = "Error: #VALUE!"

// publicUseTag marks rows cleared for import.
const publicUseTag = "YES"

// School is one seed row representing one DUO school vestiging.
// Postcode is already normalized; HouseNr/HouseSuffix are the decomposed
// parts of the combined huisnr_toev column.
type School struct {
	DUOID       string
	BRIN        string
	VestigingNr string
	Name        string
	Postcode    string
	Street      string
	HouseNr     string
	HouseSuffix string
	Denominatie string
	Phone       string
	Website     string
	PublicUseOK string
}

var schoolColumns = []string{
	"school_id",
	"brin",
	"vestiging_nr",
	"vestigingsnaam",
	"postcode",
	"straat",
	"huisnr_toev",
	"denominatie",
	"telefoon",
	"website",
	"include_in_main_db",
	"public_use_ok",
}

// Metric is one seed row of the long-format metrics worksheet. RawValue
// keeps the cell as read; numeric/text disambiguation happens at
// projection time via ParseMetricValue.
type Metric struct {
	DUOID       string
	Period      string
	Group       string
	Name        string
	RawValue    xlsx.Value
	Unit        string
	Notes       string
	Source      string
	PublicUseOK string
}

var metricColumns = []string{
	"school_id",
	"metric_period",
	"metric_group",
	"metric_name",
	"value",
	"unit",
	"notes",
	"public_use_ok",
	"source",
}

// columnIndex maps required header names to positions, aborting with a
// schema error naming the first missing column.
func columnIndex(t *xlsx.Table, sheet string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		idx[h] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, errors.NewSchemaError(sheet, col)
		}
	}
	return idx, nil
}

// Schools extracts the importable school rows from the main worksheet.
// Rows are dropped when the include flag is not "1", the public-use tag is
// missing, or the DUO id is empty.
func Schools(t *xlsx.Table) ([]School, error) {
	idx, err := columnIndex(t, SheetSchools, schoolColumns)
	if err != nil {
		return nil, err
	}

	var schools []School
	for _, r := range t.Rows {
		if strings.TrimSpace(r[idx["include_in_main_db"]].String) != "1" {
			continue
		}
		publicOK := r[idx["public_use_ok"]].String
		if !strings.Contains(publicOK, publicUseTag) {
			continue
		}
		duoID := r[idx["school_id"]].String
		if duoID == "" {
			continue
		}

		houseNr, houseSuffix := normalize.HouseNumber(r[idx["huisnr_toev"]].String)
		schools = append(schools, School{
			DUOID:       duoID,
			BRIN:        r[idx["brin"]].String,
			VestigingNr: r[idx["vestiging_nr"]].String,
			Name:        r[idx["vestigingsnaam"]].String,
			Postcode:    normalize.Postcode(r[idx["postcode"]].String),
			Street:      r[idx["straat"]].String,
			HouseNr:     houseNr,
			HouseSuffix: houseSuffix,
			Denominatie: r[idx["denominatie"]].String,
			Phone:       r[idx["telefoon"]].String,
			Website:     r[idx["website"]].String,
			PublicUseOK: publicOK,
		})
	}
	return schools, nil
}

// Metrics extracts the importable metric rows, keeping only rows carrying
// the public-use tag.
func Metrics(t *xlsx.Table) ([]Metric, error) {
	idx, err := columnIndex(t, SheetMetrics, metricColumns)
	if err != nil {
		return nil, err
	}

	var metrics []Metric
	for _, r := range t.Rows {
		publicOK := r[idx["public_use_ok"]].String
		if !strings.Contains(publicOK, publicUseTag) {
			continue
		}
		metrics = append(metrics, Metric{
			DUOID:       r[idx["school_id"]].String,
			Period:      r[idx["metric_period"]].String,
			Group:       r[idx["metric_group"]].String,
			Name:        r[idx["metric_name"]].String,
			RawValue:    r[idx["value"]],
			Unit:        r[idx["unit"]].String,
			Notes:       r[idx["notes"]].String,
			Source:      r[idx["source"]].String,
			PublicUseOK: publicOK,
		})
	}
	return metrics, nil
}
