package nutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var (
	progressFrom      string
	progressTo        string
	progressTolerance float64
	progressJSON      bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Compare the measured weight trend with the projected rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ProgressRange(sqldb, progressFrom, progressTo, progressTolerance)
			if err != nil {
				return err
			}
			if progressJSON {
				return writeIndentedJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Range: %s to %s (%d measurements)\n", report.FromDate, report.ToDate, report.Measurements)
			fmt.Fprintf(out, "Weight: %.1f kg -> %.1f kg (%+.1f kg)\n", report.StartWeightKg, report.EndWeightKg, report.ChangeKg)
			fmt.Fprintf(out, "Trend: %+.2f lb/week\n", report.ActualWeeklyRateLbs)
			if report.Goal == "" {
				fmt.Fprintln(out, "No profile configured; set one to compare against a projection")
				return nil
			}
			status := "off track"
			if report.OnTrack {
				status = "on track"
			}
			fmt.Fprintf(out, "Projected (%s): %+.2f lb/week, %s\n", report.Goal, report.ProjectedWeeklyRateLbs, status)
			if report.EstimatedWeeksLeft != nil {
				fmt.Fprintf(out, "At this trend: %d weeks to %.1f kg\n", *report.EstimatedWeeksLeft, report.DesiredWeightKg)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringVar(&progressFrom, "from", "", "From date YYYY-MM-DD (default 28 days before --to)")
	progressCmd.Flags().StringVar(&progressTo, "to", "", "To date YYYY-MM-DD (default today)")
	progressCmd.Flags().Float64Var(&progressTolerance, "tolerance", service.DefaultProgressTolerance, "Allowed lb/week deviation from the projected rate")
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "Print as JSON")
}
