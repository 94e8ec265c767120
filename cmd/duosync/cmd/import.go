package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schoolkeuze/duosync/internal/config"
	"github.com/schoolkeuze/duosync/internal/importer"
	"github.com/schoolkeuze/duosync/pkg/errors"
	"github.com/schoolkeuze/duosync/pkg/logging"
	"github.com/schoolkeuze/duosync/pkg/store"
)

var importCmd = &cobra.Command{
	Use:   "import <seed.xlsx>",
	Short: "Import a DUO seed workbook into the canonical store",
	Long: `Import reads the DUO seed workbook, matches each school row against the
canonical store, applies field updates for matched schools, and replaces
their metric rows. Unmatched rows are reported to a CSV file.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "report computed actions without writing")
	importCmd.Flags().Bool("name-only", false, "allow name-only matches when unique")
	importCmd.Flags().String("match-file", "", "manual-match override table (CSV or YAML)")
	importCmd.Flags().String("unmatched-out", "", "unmatched report destination (default "+config.DefaultUnmatchedOutput+")")

	cobra.CheckErr(viper.BindPFlag("dry_run", importCmd.Flags().Lookup("dry-run")))
	cobra.CheckErr(viper.BindPFlag("match_name_only", importCmd.Flags().Lookup("name-only")))
	cobra.CheckErr(viper.BindPFlag("match_file", importCmd.Flags().Lookup("match-file")))
	cobra.CheckErr(viper.BindPFlag("unmatched_output", importCmd.Flags().Lookup("unmatched-out")))

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	seedPath := args[0]
	if _, err := os.Stat(seedPath); err != nil {
		return errors.NewConfigError("import", fmt.Sprintf("file not found: %s", seedPath), err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	st := store.NewSupabase(cfg.SupabaseURL, cfg.ServiceKey)
	imp := importer.New(cfg, st, logging.Default())

	summary, err := imp.Run(cmd.Context(), seedPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Schools in seed: %d\n", summary.SeedSchools)
	fmt.Fprintf(out, "Matched: %d (manual: %d, name-only: %d)\n",
		summary.Stats.Matched, summary.Stats.Manual, summary.Stats.NameOnly)
	fmt.Fprintf(out, "Ambiguous: %d\n", summary.Stats.Ambiguous)
	fmt.Fprintf(out, "Unmatched: %d\n", summary.Stats.Unmatched)
	fmt.Fprintf(out, "Schools to update: %d\n", summary.Updates)
	fmt.Fprintf(out, "Metrics rows to insert: %d\n", summary.MetricRows)
	if summary.UnmatchedReport != "" {
		fmt.Fprintf(out, "Unmatched list written: %s\n", summary.UnmatchedReport)
	}
	if summary.DryRun {
		fmt.Fprintln(out, "Dry run enabled. Skipping writes.")
	}
	return nil
}
