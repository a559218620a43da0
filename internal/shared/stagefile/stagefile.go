// Package stagefile reads and writes the dated JSON files the pipeline
// stages hand to each other. A stage file is named <prefix>_DDMMYYYY.json;
// backup copies carry a "_backup_" marker and are never selected.
package stagefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when no stage file with the given prefix exists.
var ErrNotFound = errors.New("stage file not found")

const dateLayout = "02012006"

// WriteDated marshals v into <dir>/<prefix>_DDMMYYYY.json using today's
// date, creating dir if needed, and returns the written path.
func WriteDated(dir, prefix string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create stage dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.json", prefix, time.Now().Format(dateLayout))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal stage file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write stage file: %w", err)
	}
	return path, nil
}

// Latest returns the path of the most recent <prefix>_DDMMYYYY.json in dir,
// judged by the date embedded in the filename. Backup files and files whose
// date does not parse are skipped. A directory that does not exist yet is
// treated the same as an empty one.
func Latest(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}

	var (
		best     string
		bestDate time.Time
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix+"_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.Contains(name, "_backup_") {
			continue
		}
		stem := strings.TrimSuffix(name, ".json")
		dateStr := stem[strings.LastIndex(stem, "_")+1:]
		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue
		}
		if best == "" || d.After(bestDate) {
			best = name
			bestDate = d
		}
	}
	if best == "" {
		return "", ErrNotFound
	}
	return filepath.Join(dir, best), nil
}

// Load unmarshals the JSON stage file at path into v.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode stage file %s: %w", filepath.Base(path), err)
	}
	return nil
}
