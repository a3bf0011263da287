package nutri

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Manage saved projections",
}

var projectionLimit int

var projectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projections, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListProjections(sqldb, projectionLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tCREATED\tGOAL\tKCAL\tLABEL")
			for _, p := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f\t%s\n",
					p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Input.Goal.Goal, math.Round(p.Result.TargetCalories), p.Label)
			}
			return nil
		})
	},
}

var projectionShowJSON bool

var projectionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProjection(sqldb, args[0])
			if err != nil {
				return err
			}
			if projectionShowJSON {
				return writeIndentedJSON(cmd.OutOrStdout(), p)
			}
			if p.Label != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n", p.Label)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
			printProjection(cmd.OutOrStdout(), p.Input, p.Result)
			return nil
		})
	},
}

var projectionDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteProjection(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted projection %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(projectionCmd)
	projectionCmd.AddCommand(projectionListCmd, projectionShowCmd, projectionDeleteCmd)
	projectionListCmd.Flags().IntVar(&projectionLimit, "limit", 20, "Maximum rows")
	projectionShowCmd.Flags().BoolVar(&projectionShowJSON, "json", false, "Print as JSON")
}
