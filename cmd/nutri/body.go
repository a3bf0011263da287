package nutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage body measurements (weight and body-fat)",
}

var (
	bodyWeight float64
	bodyUnit   string
	bodyFat    float64
	bodyDate   string
	bodyTime   string
	bodyNotes  string
)

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add body measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		measuredAt, err := parseDateTimeOrNow(bodyDate, bodyTime)
		if err != nil {
			return err
		}
		in := service.BodyMeasurementInput{
			Weight:     bodyWeight,
			Unit:       bodyUnit,
			BodyFatPct: optionalBodyFat(bodyFat),
			MeasuredAt: measuredAt,
			Notes:      bodyNotes,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddBodyMeasurement(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added body measurement %d\n", id)
			return nil
		})
	},
}

var (
	bodyListDate string
	bodyFrom     string
	bodyTo       string
	bodyLimit    int
	bodyOutUnit  string
)

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List body measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.BodyMeasurementFilter{Date: bodyListDate, FromDate: bodyFrom, ToDate: bodyTo, Limit: bodyLimit}
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListBodyMeasurements(sqldb, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tWEIGHT\tUNIT\tBODY_FAT%\tNOTES")
			for _, m := range items {
				w, err := service.WeightFromKg(m.WeightKg, bodyOutUnit)
				if err != nil {
					return err
				}
				bf := ""
				if m.BodyFatPct != nil {
					bf = fmt.Sprintf("%.1f", *m.BodyFatPct)
				}
				fmt.Fprintf(out, "%d\t%s\t%.1f\t%s\t%s\t%s\n", m.ID, m.MeasuredAt.Local().Format("2006-01-02 15:04"), w, bodyOutUnit, bf, m.Notes)
			}
			return nil
		})
	},
}

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete body measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("measurement id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteBodyMeasurement(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted body measurement %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd, bodyDeleteCmd)

	bodyAddCmd.Flags().Float64Var(&bodyWeight, "weight", 0, "Body weight")
	bodyAddCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Weight unit: kg or lb")
	bodyAddCmd.Flags().Float64Var(&bodyFat, "body-fat", -1, "Body fat percentage")
	bodyAddCmd.Flags().StringVar(&bodyDate, "date", "", "Measurement date YYYY-MM-DD (default now)")
	bodyAddCmd.Flags().StringVar(&bodyTime, "time", "", "Measurement time HH:MM")
	bodyAddCmd.Flags().StringVar(&bodyNotes, "notes", "", "Optional notes")
	_ = bodyAddCmd.MarkFlagRequired("weight")

	bodyListCmd.Flags().StringVar(&bodyListDate, "date", "", "Single day YYYY-MM-DD")
	bodyListCmd.Flags().StringVar(&bodyFrom, "from", "", "From date YYYY-MM-DD")
	bodyListCmd.Flags().StringVar(&bodyTo, "to", "", "To date YYYY-MM-DD")
	bodyListCmd.Flags().IntVar(&bodyLimit, "limit", 50, "Maximum rows")
	bodyListCmd.Flags().StringVar(&bodyOutUnit, "unit", "kg", "Display unit: kg or lb")
}
