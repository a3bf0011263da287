package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildNutriBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "nutri")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build nutri binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runNutri(t *testing.T, binPath, dbPath string, args ...string) (string, string, int) {
	t.Helper()
	cfgPath := filepath.Join(filepath.Dir(dbPath), "nutri.yaml")
	allArgs := append([]string{"--db", dbPath, "--config", cfgPath}, args...)
	cmd := exec.Command(binPath, allArgs...)
	cmd.Dir = filepath.Dir(dbPath)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run nutri command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func initDB(t *testing.T, binPath, dbPath string) {
	t.Helper()
	_, stderr, exit := runNutri(t, binPath, dbPath, "init")
	if exit != 0 {
		t.Fatalf("init db failed: exit=%d stderr=%s", exit, stderr)
	}
}

func TestCLIRejectsOutOfRangeActivity(t *testing.T) {
	binPath := buildNutriBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutri.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runNutri(t, binPath, dbPath,
		"project",
		"--sex", "female",
		"--age", "40",
		"--height", "165",
		"--weight", "70",
		"--activity", "2.2",
		"--goal", "maintenance",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for activity outside 1.2-1.9")
	}
	if !strings.Contains(stderr, "invalid activity") {
		t.Fatalf("expected activity validation message, got: %s", stderr)
	}
}

func TestCLIRejectsNonNumericAge(t *testing.T) {
	binPath := buildNutriBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutri.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runNutri(t, binPath, dbPath,
		"project",
		"--sex", "male",
		"--age", "thirty",
		"--height", "180",
		"--weight", "90",
		"--activity", "1.375",
		"--goal", "loss",
	)
	if exit == 0 {
		t.Fatalf("expected non-zero exit for non-numeric age")
	}
	if !strings.Contains(stderr, "invalid age") {
		t.Fatalf("expected age validation message, got: %s", stderr)
	}
}

func TestCLIRejectsUseLatestBodyWithoutProfile(t *testing.T) {
	binPath := buildNutriBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutri.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runNutri(t, binPath, dbPath, "project", "--use-latest-body")
	if exit == 0 {
		t.Fatalf("expected non-zero exit")
	}
	if !strings.Contains(stderr, "--use-latest-body requires --from-profile") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestCLIProjectionShowRejectsMalformedID(t *testing.T) {
	binPath := buildNutriBinary(t)
	dbPath := filepath.Join(t.TempDir(), "nutri.db")
	initDB(t, binPath, dbPath)

	_, stderr, exit := runNutri(t, binPath, dbPath, "projection", "show", "not-a-uuid")
	if exit == 0 {
		t.Fatalf("expected non-zero exit for malformed id")
	}
	if !strings.Contains(stderr, "invalid projection id") {
		t.Fatalf("expected invalid id message, got: %s", stderr)
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
