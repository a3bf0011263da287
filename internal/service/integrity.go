package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/daddyfatty/GetUpEarliercom-sub000/internal/projection"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

type DoctorReport struct {
	IntegrityErrors    []string `json:"integrityErrors,omitempty"`
	InvalidProfiles    int      `json:"invalidProfiles"`
	InvalidProjections int      `json:"invalidProjections"`
	StaleProjections   int      `json:"staleProjections"`
	RemovedRows        int      `json:"removedRows,omitempty"`
	RecomputedRows     int      `json:"recomputedRows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.IntegrityErrors) == 0 && r.InvalidProfiles == 0 && r.InvalidProjections == 0 && r.StaleProjections == 0
}

// CreateBackup writes a consistent snapshot of the open database to outPath
// with a .sha256 sidecar.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup copies a backup over dbPath after verifying its checksum
// sidecar, when one exists.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	// Stale WAL files would be replayed over the restored image.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", dbPath+suffix, err)
		}
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor checks sqlite page integrity, that every stored profile still
// validates, and that every saved projection decodes and still matches a
// fresh projection of its input. With fix, broken rows are removed and stale
// results recomputed.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.Query(`PRAGMA integrity_check`)
	if err != nil {
		return report, fmt.Errorf("doctor integrity check: %w", err)
	}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor integrity scan: %w", err)
		}
		if line != "ok" {
			report.IntegrityErrors = append(report.IntegrityErrors, line)
		}
	}
	_ = rows.Close()

	badProfiles, err := invalidProfileIDs(db)
	if err != nil {
		return report, err
	}
	report.InvalidProfiles = len(badProfiles)

	badProjections, stale, err := checkProjections(db)
	if err != nil {
		return report, err
	}
	report.InvalidProjections = len(badProjections)
	report.StaleProjections = len(stale)

	if !fix || (len(badProfiles) == 0 && len(badProjections) == 0 && len(stale) == 0) {
		return report, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	for _, id := range badProfiles {
		if _, err := tx.Exec(`DELETE FROM profiles WHERE id = ?`, id); err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix profile %d: %w", id, err)
		}
		report.RemovedRows++
	}
	for _, id := range badProjections {
		if _, err := tx.Exec(`DELETE FROM projections WHERE id = ?`, id); err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix projection %s: %w", id, err)
		}
		report.RemovedRows++
	}
	for id, res := range stale {
		raw, err := json.Marshal(res)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("encode projection %s: %w", id, err)
		}
		if _, err := tx.Exec(`UPDATE projections SET result_json = ?, target_calories = ? WHERE id = ?`,
			string(raw), int(math.Round(res.TargetCalories)), id); err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix projection %s: %w", id, err)
		}
		report.RecomputedRows++
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}

func invalidProfileIDs(db *sql.DB) ([]int64, error) {
	rows, err := db.Query(`SELECT id, input_json FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("doctor profile query: %w", err)
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("doctor profile scan: %w", err)
		}
		var in projection.Input
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			ids = append(ids, id)
			continue
		}
		if err := projection.Validate(in.Profile, in.Lifestyle, in.Goal); err != nil {
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}

func checkProjections(db *sql.DB) ([]string, map[string]projection.ProjectionResult, error) {
	rows, err := db.Query(`SELECT id, input_json, result_json FROM projections`)
	if err != nil {
		return nil, nil, fmt.Errorf("doctor projection query: %w", err)
	}
	defer rows.Close()
	invalid := make([]string, 0)
	stale := map[string]projection.ProjectionResult{}
	for rows.Next() {
		var id, inputRaw, resultRaw string
		if err := rows.Scan(&id, &inputRaw, &resultRaw); err != nil {
			return nil, nil, fmt.Errorf("doctor projection scan: %w", err)
		}
		var in projection.Input
		var stored projection.ProjectionResult
		if json.Unmarshal([]byte(inputRaw), &in) != nil || json.Unmarshal([]byte(resultRaw), &stored) != nil {
			invalid = append(invalid, id)
			continue
		}
		fresh, err := in.Project()
		if err != nil {
			invalid = append(invalid, id)
			continue
		}
		if math.Abs(fresh.TargetCalories-stored.TargetCalories) > 1e-6 || fresh.MacrosGrams != stored.MacrosGrams {
			stale[id] = fresh
		}
	}
	return invalid, stale, rows.Err()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
