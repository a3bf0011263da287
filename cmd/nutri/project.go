package nutri

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var (
	projectForm          projection.FormInput
	projectFromProfile   bool
	projectProfileDate   string
	projectUseLatestBody bool
	projectJSON          bool
	projectSave          bool
	projectLabel         string
	projectApply         bool
	projectApplyDate     string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project BMR, TDEE, calorie target and macros",
	Example: `  nutri project --sex male --age 30 --height 175 --weight 80 --desired-weight 75 --activity 1.55 --goal loss
  nutri project --from-profile --use-latest-body --apply`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectUseLatestBody && !projectFromProfile {
			return fmt.Errorf("--use-latest-body requires --from-profile")
		}
		return withDB(func(sqldb *sql.DB) error {
			in, err := resolveProjectInput(sqldb)
			if err != nil {
				return err
			}
			res, err := in.Project()
			if err != nil {
				return err
			}
			logger.Debug("projection computed",
				zap.String("goal", string(in.Goal.Goal)),
				zap.Float64("target_calories", res.TargetCalories))

			if projectJSON {
				if err := writeIndentedJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				printProjection(cmd.OutOrStdout(), in, res)
			}

			if projectSave {
				saved, err := service.SaveProjection(sqldb, projectLabel, in, res)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved projection %s\n", saved.ID)
			}
			if projectApply {
				if err := service.ApplyProjectionGoal(sqldb, res, projectApplyDate); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Applied projection as daily goal")
			}
			return nil
		})
	},
}

func resolveProjectInput(sqldb *sql.DB) (projection.Input, error) {
	if !projectFromProfile {
		form, err := service.ApplyFormDefaults(sqldb, projectForm)
		if err != nil {
			return projection.Input{}, err
		}
		return applyConfigUnits(form).Parse()
	}
	p, err := service.CurrentProfile(sqldb, projectProfileDate)
	if err != nil {
		return projection.Input{}, err
	}
	if p == nil {
		return projection.Input{}, fmt.Errorf("no profile configured (use `nutri profile set`)")
	}
	in := p.Input
	if projectUseLatestBody {
		m, err := service.LatestBodyMeasurement(sqldb)
		if err != nil {
			return projection.Input{}, err
		}
		in = service.WithBodyMeasurement(in, m)
	}
	return in, nil
}

func printProjection(w io.Writer, in projection.Input, res projection.ProjectionResult) {
	fmt.Fprintf(w, "BMR: %.0f kcal\n", res.BMR)
	fmt.Fprintf(w, "TDEE: %.0f kcal (multiplier %.3f, %s)\n", res.TDEE, res.ActivityMultiplier, res.ActivityLabel)
	fmt.Fprintf(w, "Target: %.0f kcal/day (%s)\n", math.Round(res.TargetCalories), in.Goal.Goal)
	fmt.Fprintf(w, "Macros (%s): carbs %dg, protein %dg, fat %dg\n", in.Goal.MacroProfile, res.MacrosGrams.Carbs, res.MacrosGrams.Protein, res.MacrosGrams.Fat)
	if in.Goal.Goal != projection.GoalMaintenance {
		fmt.Fprintf(w, "Weekly change: %+.2f lb (%d weeks to goal)\n", res.WeeklyChangeRateLbs, res.WeeksToGoal)
	}
	source := "measured"
	if res.BodyFatEstimated {
		source = "estimated"
	}
	fmt.Fprintf(w, "Body fat: %.1f%% (%s), lean mass %.1f kg\n", res.BodyFatPercent, source, res.LeanBodyMassKg)
	fmt.Fprintf(w, "Water: %d ml/day\n", res.DailyWaterMl)

	meals := make([]string, 0, len(res.MealTimingCalories))
	for _, name := range projection.MealNames() {
		meals = append(meals, fmt.Sprintf("%s %d", name, res.MealTimingCalories[name]))
	}
	fmt.Fprintf(w, "Meals: %s\n", strings.Join(meals, ", "))
	if len(res.SupplementSuggestions) > 0 {
		fmt.Fprintf(w, "Supplements: %s\n", strings.Join(res.SupplementSuggestions, ", "))
	}
}

func init() {
	rootCmd.AddCommand(projectCmd)
	bindFormFlags(projectCmd, &projectForm)
	projectCmd.Flags().BoolVar(&projectFromProfile, "from-profile", false, "Use the stored profile instead of form flags")
	projectCmd.Flags().StringVar(&projectProfileDate, "date", "", "Resolve profile at date YYYY-MM-DD (default today)")
	projectCmd.Flags().BoolVar(&projectUseLatestBody, "use-latest-body", false, "Override profile weight/body fat with the latest body measurement")
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "Print the result as JSON")
	projectCmd.Flags().BoolVar(&projectSave, "save", false, "Save the projection")
	projectCmd.Flags().StringVar(&projectLabel, "label", "", "Label for a saved projection")
	projectCmd.Flags().BoolVar(&projectApply, "apply", false, "Apply the calorie target and macros as the daily goal")
	projectCmd.Flags().StringVar(&projectApplyDate, "effective-date", "", "Effective date for --apply YYYY-MM-DD (default today)")
}
