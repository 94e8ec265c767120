package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/schoolkeuze/duosync/internal/config"
	"github.com/schoolkeuze/duosync/internal/report"
	"github.com/schoolkeuze/duosync/pkg/store"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export-ids",
	Short: "Export the canonical school id mapping to CSV",
	Long: `Export-ids dumps id, name, address and website for every canonical
school, ordered by name. The output is the starting point for building a
manual-match file.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "schools_id_map.csv", "destination CSV file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	st := store.NewSupabase(cfg.SupabaseURL, cfg.ServiceKey)
	schools, err := st.ListSchools(cmd.Context())
	if err != nil {
		return err
	}
	sort.Slice(schools, func(i, j int) bool { return schools[i].Name < schools[j].Name })

	if err := report.WriteSchoolIDs(exportOutput, schools); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d schools to %s\n", len(schools), exportOutput)
	return nil
}
