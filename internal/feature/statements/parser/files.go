// Package parser reads brokerage CSV exports and converts them into
// domain entities. An export file carries two sections: a per-currency
// financial summary and the holdings table.
package parser

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// filenamePattern matches export filenames of the form
// "Holdings 49815000 August 22, 2026.csv".
var filenamePattern = regexp.MustCompile(`^Holdings\s+(\d+)\s+([A-Za-z]+\s+\d+,\s+\d{4})$`)

// StatementFile identifies one export file on disk together with the
// account number and statement date parsed from its name.
type StatementFile struct {
	Path    string
	Account string
	Date    time.Time
}

// ParseFilename extracts the account number and statement date from an
// export filename. It returns false for files that do not follow the
// brokerage naming convention.
func ParseFilename(filename string) (account string, date time.Time, ok bool) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".csv") {
		return "", time.Time{}, false
	}
	m := filenamePattern.FindStringSubmatch(strings.TrimSuffix(base, ext))
	if m == nil {
		return "", time.Time{}, false
	}
	dt, err := time.Parse("January 2, 2006", m[2])
	if err != nil {
		return "", time.Time{}, false
	}
	return m[1], dt, true
}

// SelectLatest scans dir for valid export files and returns the most
// recent file per account, newest first. Files that do not match the
// naming convention are ignored.
func SelectLatest(dir string) ([]StatementFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	latest := map[string]StatementFile{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		account, date, ok := ParseFilename(e.Name())
		if !ok {
			continue
		}
		f := StatementFile{Path: filepath.Join(dir, e.Name()), Account: account, Date: date}
		if prev, found := latest[account]; !found || date.After(prev.Date) {
			latest[account] = f
		}
	}

	out := make([]StatementFile, 0, len(latest))
	for _, f := range latest {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
