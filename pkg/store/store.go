// Package store abstracts the canonical school store. The importer only
// ever needs three operations: read the full school snapshot, apply a
// partial field update to one school, and replace the derived metric rows
// for a set of schools.
package store

import "context"

// School is a read-only snapshot of one canonical school record.
type School struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	WebsiteURL  string `json:"website_url"`
	DUOSchoolID string `json:"duo_school_id"`
	Postcode    string `json:"postcode"`
	Street      string `json:"street"`
	HouseNr     string `json:"house_nr"`
	HouseSuffix string `json:"house_nr_suffix"`
}

// Metric is one derived metrics row keyed to a canonical school.
type Metric struct {
	SchoolID     string   `json:"school_id"`
	DUOSchoolID  string   `json:"duo_school_id"`
	MetricGroup  string   `json:"metric_group"`
	MetricName   string   `json:"metric_name"`
	Period       string   `json:"period"`
	ValueNumeric *float64 `json:"value_numeric"`
	ValueText    *string  `json:"value_text"`
	Unit         string   `json:"unit"`
	Notes        string   `json:"notes"`
	Source       string   `json:"source"`
	PublicUseOK  string   `json:"public_use_ok"`
}

// Store is the canonical store as seen by the importer.
type Store interface {
	// ListSchools fetches the full canonical snapshot.
	ListSchools(ctx context.Context) ([]School, error)

	// UpdateSchool applies a partial field update to one school.
	// Unspecified fields are left untouched.
	UpdateSchool(ctx context.Context, id string, fields map[string]any) error

	// ReplaceMetrics discards every stored metric row for the given school
	// ids, then inserts the new rows. Replace-not-append keeps repeated
	// imports from accumulating duplicates.
	ReplaceMetrics(ctx context.Context, schoolIDs []string, rows []Metric) error
}
