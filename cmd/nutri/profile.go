package nutri

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/model"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the stored calculator profile",
}

var (
	profileForm projection.FormInput
	profileDate string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store calculator inputs with an effective date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			form, err := service.ApplyFormDefaults(sqldb, profileForm)
			if err != nil {
				return err
			}
			in, err := applyConfigUnits(form).Parse()
			if err != nil {
				return err
			}
			if err := service.SetProfile(sqldb, service.SetProfileInput{Input: in, EffectiveDate: profileDate}); err != nil {
				return err
			}
			effective := profileDate
			if effective == "" {
				effective = "today"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set profile effective %s\n", effective)
			return nil
		})
	},
}

var currentProfileDate string

var profileCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the profile in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.CurrentProfile(sqldb, currentProfileDate)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile configured")
				return nil
			}
			printProfile(cmd.OutOrStdout(), *p)
			return nil
		})
	},
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show profile history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ProfileHistory(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tSEX\tAGE\tHEIGHT_CM\tWEIGHT_KG\tGOAL_KG\tACTIVITY\tGOAL")
			for _, p := range items {
				pp, g := p.Input.Profile, p.Input.Goal
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.3f\t%s\n",
					p.EffectiveDate, pp.Sex, pp.AgeYears, pp.HeightCm, pp.WeightKg, pp.DesiredWeightKg, pp.ActivityMultiplier, g.Goal)
			}
			return nil
		})
	},
}

func printProfile(w io.Writer, p model.Profile) {
	pp, l, g := p.Input.Profile, p.Input.Lifestyle, p.Input.Goal
	fmt.Fprintf(w, "Effective: %s\n", p.EffectiveDate)
	fmt.Fprintf(w, "Sex: %s\nAge: %d\nHeight: %.1f cm\nWeight: %.1f kg\nDesired weight: %.1f kg\n", pp.Sex, pp.AgeYears, pp.HeightCm, pp.WeightKg, pp.DesiredWeightKg)
	if pp.BodyFatPercent != nil {
		fmt.Fprintf(w, "Body fat: %.1f%%\n", *pp.BodyFatPercent)
	}
	fmt.Fprintf(w, "Activity: %.3f\nWorkout days: %d\nSleep: %d h\nStress: %s\n", pp.ActivityMultiplier, l.WorkoutDaysPerWeek, l.SleepHoursPerNight, l.StressLevel)
	fmt.Fprintf(w, "Goal: %s\nMacro profile: %s\nMeals per day: %d\n", g.Goal, g.MacroProfile, g.MealsPerDay)
	if len(g.SupplementGoals) > 0 {
		names := make([]string, 0, len(g.SupplementGoals))
		for _, s := range g.SupplementGoals {
			names = append(names, string(s))
		}
		fmt.Fprintf(w, "Supplement goals: %s\n", strings.Join(names, ", "))
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileCurrentCmd, profileHistoryCmd)

	bindFormFlags(profileSetCmd, &profileForm)
	profileSetCmd.Flags().StringVar(&profileDate, "effective-date", "", "Effective date YYYY-MM-DD (default today)")

	profileCurrentCmd.Flags().StringVar(&currentProfileDate, "date", "", "Resolve profile at date YYYY-MM-DD (default today)")
}
