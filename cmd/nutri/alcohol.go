package nutri

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/alcohol"
)

var (
	alcoholSex    string
	alcoholWeight float64
	alcoholUnit   string
	alcoholDrinks []string
	alcoholJSON   bool
)

var alcoholCmd = &cobra.Command{
	Use:   "alcohol",
	Short: "Estimate calories and blood alcohol for a set of drinks",
	Example: `  nutri alcohol --sex male --weight 80 --drink beer:2
  nutri alcohol --sex female --weight 140 --unit lb --drink wine:1:175ml:13.5 --drink spirit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		drinks := make([]alcohol.Drink, 0, len(alcoholDrinks))
		for _, raw := range alcoholDrinks {
			d, err := parseDrinkFlag(raw)
			if err != nil {
				return err
			}
			drinks = append(drinks, d)
		}
		in, err := alcohol.Request{Sex: alcoholSex, Weight: alcoholWeight, WeightUnit: alcoholUnit, Drinks: drinks}.Parse()
		if err != nil {
			return err
		}
		res, err := alcohol.Calculate(in)
		if err != nil {
			return err
		}
		if alcoholJSON {
			return writeIndentedJSON(cmd.OutOrStdout(), res)
		}
		out := cmd.OutOrStdout()
		for _, d := range res.Drinks {
			fmt.Fprintf(out, "%s\t%.0f ml\t%.1f g ethanol\t%.0f kcal\n", d.Kind, d.VolumeMl, d.EthanolGrams, d.Calories)
		}
		fmt.Fprintf(out, "Standard drinks: %.1f\n", res.StandardDrinks)
		fmt.Fprintf(out, "Calories: %d (alcohol %.0f, carbs %.0f)\n", res.TotalCalories, res.AlcoholCalories, res.CarbCalories)
		fmt.Fprintf(out, "Peak BAC: %.3f%% (about %.1f hours to sober)\n", res.PeakBACPercent, res.HoursToSober)
		fmt.Fprintf(out, "Running to burn it off: %d minutes\n", res.WorkoutMinutes)
		return nil
	},
}

// parseDrinkFlag reads kind[:count[:volume[:abv]]], where volume carries a
// ml or fl-oz suffix. Empty segments keep the kind's standard serving.
func parseDrinkFlag(raw string) (alcohol.Drink, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) > 4 {
		return alcohol.Drink{}, fmt.Errorf("invalid --drink %q (expected kind[:count[:volume[:abv]]])", raw)
	}
	kind, err := alcohol.ParseKind(parts[0])
	if err != nil {
		return alcohol.Drink{}, err
	}
	d := alcohol.Drink{Kind: kind, Count: 1}
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return alcohol.Drink{}, fmt.Errorf("invalid drink count %q", parts[1])
		}
		d.Count = n
	}
	if len(parts) > 2 && parts[2] != "" {
		v := strings.ToLower(parts[2])
		switch {
		case strings.HasSuffix(v, "fl-oz"):
			d.VolumeUnit, v = "fl-oz", strings.TrimSuffix(v, "fl-oz")
		case strings.HasSuffix(v, "oz"):
			d.VolumeUnit, v = "fl-oz", strings.TrimSuffix(v, "oz")
		default:
			d.VolumeUnit, v = "ml", strings.TrimSuffix(v, "ml")
		}
		vol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return alcohol.Drink{}, fmt.Errorf("invalid drink volume %q", parts[2])
		}
		d.Volume = &vol
	}
	if len(parts) > 3 && parts[3] != "" {
		abv, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64)
		if err != nil {
			return alcohol.Drink{}, fmt.Errorf("invalid drink abv %q", parts[3])
		}
		d.ABVPercent = &abv
	}
	return d, nil
}

func init() {
	rootCmd.AddCommand(alcoholCmd)
	alcoholCmd.Flags().StringVar(&alcoholSex, "sex", "", "Sex: male or female")
	alcoholCmd.Flags().Float64Var(&alcoholWeight, "weight", 0, "Body weight")
	alcoholCmd.Flags().StringVar(&alcoholUnit, "unit", "kg", "Weight unit: kg or lb")
	alcoholCmd.Flags().StringArrayVar(&alcoholDrinks, "drink", nil, "Drink as kind[:count[:volume[:abv]]], repeatable")
	alcoholCmd.Flags().BoolVar(&alcoholJSON, "json", false, "Print the result as JSON")
	_ = alcoholCmd.MarkFlagRequired("sex")
	_ = alcoholCmd.MarkFlagRequired("weight")
	_ = alcoholCmd.MarkFlagRequired("drink")
}
