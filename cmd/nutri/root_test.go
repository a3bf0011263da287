package nutri

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

// run executes the command tree in-process with fresh flag state.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

var referenceFlags = []string{
	"--sex", "male", "--age", "30", "--height", "175", "--weight", "80",
	"--desired-weight", "75", "--activity", "1.55", "--sleep-hours", "8", "--goal", "loss",
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "project") {
		t.Fatalf("expected help to list project command, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutri.db")
	for i := 0; i < 2; i++ {
		if _, err := run(t, "--db", path, "init"); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestProjectJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutri.db")
	out, err := run(t, append([]string{"--db", path, "project", "--json"}, referenceFlags...)...)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	var res projection.ProjectionResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if res.TargetCalories != 2460.5625 {
		t.Fatalf("expected target 2460.5625, got %v", res.TargetCalories)
	}
	if res.WeeksToGoal != 23 {
		t.Fatalf("expected 23 weeks, got %d", res.WeeksToGoal)
	}
}

func TestProjectTextOrdersMeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutri.db")
	out, err := run(t, append([]string{"--db", path, "project"}, referenceFlags...)...)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if !strings.Contains(out, "Target: 2461 kcal/day (loss)") {
		t.Fatalf("expected rounded target in output, got %q", out)
	}
	if !strings.Contains(out, "Meals: breakfast 615, lunch 861, dinner 738, snacks 246") {
		t.Fatalf("expected meal breakdown in output, got %q", out)
	}
}

func TestProjectRejectsInvalidField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutri.db")
	args := append([]string{"--db", path, "project"}, referenceFlags...)
	_, err := run(t, append(args, "--activity", "2.5")...)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	verr, ok := projection.AsValidationError(err)
	if !ok || verr.Field != "activity" {
		t.Fatalf("expected activity validation error, got %v", err)
	}
}

func TestProjectApplySetsGoal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutri.db")
	if _, err := run(t, append([]string{"--db", path, "project", "--apply", "--effective-date", "2026-01-05"}, referenceFlags...)...); err != nil {
		t.Fatalf("project --apply: %v", err)
	}
	out, err := run(t, "--db", path, "goal", "current", "--date", "2026-01-10")
	if err != nil {
		t.Fatalf("goal current: %v", err)
	}
	if !strings.Contains(out, "Calories: 2461") || !strings.Contains(out, "Source: projection") {
		t.Fatalf("unexpected goal output %q", out)
	}
}

func TestProjectFromProfileUsesLatestBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutri.db")
	if _, err := run(t, append([]string{"--db", path, "profile", "set", "--effective-date", "2026-01-01"}, referenceFlags...)...); err != nil {
		t.Fatalf("profile set: %v", err)
	}
	if _, err := run(t, "--db", path, "body", "add", "--weight", "75", "--date", "2026-01-02"); err != nil {
		t.Fatalf("body add: %v", err)
	}
	out, err := run(t, "--db", path, "project", "--from-profile", "--use-latest-body", "--date", "2026-01-03", "--json")
	if err != nil {
		t.Fatalf("project --from-profile: %v", err)
	}
	var res projection.ProjectionResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if res.WeeksToGoal != 0 {
		t.Fatalf("expected goal reached at latest body weight, got %d weeks", res.WeeksToGoal)
	}
}

func TestParseDrinkFlag(t *testing.T) {
	t.Parallel()
	d, err := parseDrinkFlag("wine:2:6fl-oz:13.5")
	if err != nil {
		t.Fatalf("parse drink: %v", err)
	}
	if d.Kind != "wine" || d.Count != 2 || d.Volume == nil || *d.Volume != 6 || d.VolumeUnit != "fl-oz" || d.ABVPercent == nil || *d.ABVPercent != 13.5 {
		t.Fatalf("unexpected drink %+v", d)
	}
	d, err = parseDrinkFlag("beer")
	if err != nil || d.Count != 1 || d.Volume != nil || d.ABVPercent != nil {
		t.Fatalf("expected default single beer, got %+v (%v)", d, err)
	}
	d, err = parseDrinkFlag("beer:1:355ml:0")
	if err != nil || d.ABVPercent == nil || *d.ABVPercent != 0 {
		t.Fatalf("expected explicit 0%% abv to be kept, got %+v (%v)", d, err)
	}
	if _, err := parseDrinkFlag("mead:1"); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}
}
