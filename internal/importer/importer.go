// Package importer orchestrates one DUO seed import run: ingest the seed
// workbook, match seed records against the canonical snapshot, compute and
// apply field updates, and replace the derived metrics dataset.
package importer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/schoolkeuze/duosync/internal/config"
	"github.com/schoolkeuze/duosync/internal/report"
	"github.com/schoolkeuze/duosync/pkg/duo"
	"github.com/schoolkeuze/duosync/pkg/match"
	"github.com/schoolkeuze/duosync/pkg/reconcile"
	"github.com/schoolkeuze/duosync/pkg/store"
	"github.com/schoolkeuze/duosync/pkg/xlsx"
)

// Summary reports what one import pass did (or, on a dry run, would do).
type Summary struct {
	SeedSchools     int
	Stats           match.Stats
	Updates         int
	MetricRows      int
	UnmatchedReport string // path of the written report, empty if none
	DryRun          bool
}

// Importer runs import passes against one canonical store.
type Importer struct {
	cfg   *config.Config
	store store.Store
	log   *zerolog.Logger
}

// New creates an Importer.
func New(cfg *config.Config, st store.Store, log *zerolog.Logger) *Importer {
	return &Importer{cfg: cfg, store: st, log: log}
}

type update struct {
	schoolID string
	fields   map[string]any
}

// Run executes one full pass over the seed workbook at seedPath.
// The pass is idempotent: rerunning produces the same matches and payloads,
// and the metric replace step is a full replace rather than an append.
func (imp *Importer) Run(ctx context.Context, seedPath string) (*Summary, error) {
	schools, metrics, err := readSeed(seedPath)
	if err != nil {
		return nil, err
	}

	var overrides match.Overrides
	if imp.cfg.MatchFile != "" {
		overrides, err = match.LoadOverrides(imp.cfg.MatchFile)
		if err != nil {
			return nil, err
		}
	}

	existing, err := imp.store.ListSchools(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]store.School, len(existing))
	for _, s := range existing {
		byID[s.ID] = s
	}

	matcher := match.New(existing, overrides, imp.cfg.NameOnly)

	var (
		updates   []update
		unmatched []duo.School
		duoToID   = make(map[string]string)
	)
	for _, d := range schools {
		res := matcher.Match(d)
		switch res.Outcome {
		case match.Matched:
			duoToID[d.DUOID] = res.SchoolID
			if payload := reconcile.Payload(d, byID[res.SchoolID]); len(payload) > 0 {
				updates = append(updates, update{schoolID: res.SchoolID, fields: payload})
			}
		case match.Unmatched:
			unmatched = append(unmatched, d)
		}
	}

	metricRows := reconcile.Metrics(metrics, duoToID)

	stats := matcher.Stats()
	summary := &Summary{
		SeedSchools: len(schools),
		Stats:       stats,
		Updates:     len(updates),
		MetricRows:  len(metricRows),
		DryRun:      imp.cfg.DryRun,
	}

	imp.log.Info().
		Int("seed_schools", summary.SeedSchools).
		Int("matched", stats.Matched).
		Int("manual", stats.Manual).
		Int("name_only", stats.NameOnly).
		Int("ambiguous", stats.Ambiguous).
		Int("unmatched", stats.Unmatched).
		Int("updates", summary.Updates).
		Int("metric_rows", summary.MetricRows).
		Msg("Match pass complete")

	if len(unmatched) > 0 {
		if err := report.WriteUnmatched(imp.cfg.UnmatchedOutput, unmatched); err != nil {
			return nil, err
		}
		summary.UnmatchedReport = imp.cfg.UnmatchedOutput
		imp.log.Info().Str("path", imp.cfg.UnmatchedOutput).Msg("Unmatched report written")
	}

	if imp.cfg.DryRun {
		imp.log.Info().Msg("Dry run enabled, skipping writes")
		return summary, nil
	}

	for _, u := range updates {
		if err := imp.store.UpdateSchool(ctx, u.schoolID, u.fields); err != nil {
			return nil, err
		}
	}

	if err := imp.store.ReplaceMetrics(ctx, reconcile.SchoolIDs(metricRows), metricRows); err != nil {
		return nil, err
	}

	return summary, nil
}

// readSeed materializes both required worksheets from one open of the
// archive, then releases it.
func readSeed(seedPath string) ([]duo.School, []duo.Metric, error) {
	wb, err := xlsx.Open(seedPath)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	schoolTable, err := wb.Table(duo.SheetSchools)
	if err != nil {
		return nil, nil, err
	}
	schools, err := duo.Schools(schoolTable)
	if err != nil {
		return nil, nil, err
	}

	metricTable, err := wb.Table(duo.SheetMetrics)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := duo.Metrics(metricTable)
	if err != nil {
		return nil, nil, err
	}

	return schools, metrics, nil
}
