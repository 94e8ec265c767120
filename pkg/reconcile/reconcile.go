// Package reconcile computes the write-side of an import pass: sparse
// field-update payloads per matched pair, and the metric rows keyed by the
// resolved identity mapping.
package reconcile

import (
	"strings"

	"github.com/schoolkeuze/duosync/pkg/duo"
	"github.com/schoolkeuze/duosync/pkg/store"
)

// Payload computes the field updates for one matched pair. Manually curated
// canonical fields are filled only when currently empty, so re-imports never
// clobber curated data. Registry fields that DUO is authoritative for are
// set whenever the seed supplies a value. An empty map means no update
// should be issued at all.
func Payload(d duo.School, target store.School) map[string]any {
	p := map[string]any{}

	// Fill-if-empty.
	if target.DUOSchoolID == "" {
		p["duo_school_id"] = d.DUOID
	}
	if target.Postcode == "" && d.Postcode != "" {
		p["postcode"] = d.Postcode
	}
	if target.Street == "" && d.Street != "" {
		p["street"] = d.Street
	}
	if target.HouseNr == "" && d.HouseNr != "" {
		p["house_nr"] = d.HouseNr
	}
	if target.HouseSuffix == "" && d.HouseSuffix != "" {
		p["house_nr_suffix"] = d.HouseSuffix
	}
	if target.WebsiteURL == "" && d.Website != "" {
		p["website_url"] = WebsiteURL(d.Website)
	}

	// DUO-authoritative: latest import wins.
	if d.BRIN != "" {
		p["brin"] = d.BRIN
	}
	if d.VestigingNr != "" {
		p["vestiging_nr"] = d.VestigingNr
	}
	if d.Denominatie != "" {
		p["denominatie"] = d.Denominatie
	}
	if d.Phone != "" {
		p["phone"] = d.Phone
	}

	return p
}

// WebsiteURL gives scheme-less website values a default secure scheme.
func WebsiteURL(raw string) string {
	w := strings.TrimSpace(raw)
	if w != "" && !strings.HasPrefix(w, "http") {
		w = "https://" + w
	}
	return w
}

// Metrics projects seed metric rows onto the canonical ids matched this
// pass. Rows whose DUO id was not matched are dropped; each kept row's
// value carries the numeric/text disambiguation.
func Metrics(rows []duo.Metric, matched map[string]string) []store.Metric {
	var out []store.Metric
	for _, r := range rows {
		schoolID, ok := matched[r.DUOID]
		if !ok || schoolID == "" {
			continue
		}
		value := duo.ParseMetricValue(r.RawValue)
		out = append(out, store.Metric{
			SchoolID:     schoolID,
			DUOSchoolID:  r.DUOID,
			MetricGroup:  r.Group,
			MetricName:   r.Name,
			Period:       r.Period,
			ValueNumeric: value.Number,
			ValueText:    value.Text,
			Unit:         r.Unit,
			Notes:        r.Notes,
			Source:       r.Source,
			PublicUseOK:  r.PublicUseOK,
		})
	}
	return out
}

// SchoolIDs returns the distinct canonical ids touched by the metric rows,
// in first-seen order. These are the ids whose stored metrics must be
// discarded before insertion.
func SchoolIDs(rows []store.Metric) []string {
	seen := make(map[string]struct{}, len(rows))
	var ids []string
	for _, r := range rows {
		if _, ok := seen[r.SchoolID]; ok {
			continue
		}
		seen[r.SchoolID] = struct{}{}
		ids = append(ids, r.SchoolID)
	}
	return ids
}
