package nutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored profiles and projections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range report.IntegrityErrors {
				fmt.Fprintf(out, "sqlite: %s\n", line)
			}
			fmt.Fprintf(out, "Invalid profiles: %d\n", report.InvalidProfiles)
			fmt.Fprintf(out, "Invalid projections: %d\n", report.InvalidProjections)
			fmt.Fprintf(out, "Stale projections: %d\n", report.StaleProjections)
			if doctorFix {
				fmt.Fprintf(out, "Removed rows: %d\nRecomputed rows: %d\n", report.RemovedRows, report.RecomputedRows)
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove broken rows and recompute stale projections")
}
