package nutri

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored calculator preferences",
}

var (
	cfgDefaultUnits string
	cfgDefaultMeals string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set preference values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("units") {
				if err := service.SetConfig(sqldb, service.ConfigDefaultUnits, cfgDefaultUnits); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("meals-per-day") {
				if err := service.SetConfig(sqldb, service.ConfigDefaultMealsPerDay, cfgDefaultMeals); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show stored preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			values, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, values[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)
	configSetCmd.Flags().StringVar(&cfgDefaultUnits, "units", "", "Default unit system: metric or imperial")
	configSetCmd.Flags().StringVar(&cfgDefaultMeals, "meals-per-day", "", "Default meals per day: 3, 4 or 6")
}
