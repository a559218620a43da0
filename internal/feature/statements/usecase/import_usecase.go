// Package usecase implements the business logic for statement ingestion.
package usecase

import (
	"log/slog"

	"portfolio_backend/internal/feature/holdings/domain/entity"
	"portfolio_backend/internal/feature/statements/parser"
)

// ImportResult aggregates the parsed content of every selected export file.
type ImportResult struct {
	Holdings []entity.Holding
	Cash     []entity.CashBalance

	// FilesSelected is the number of export files actually parsed (the
	// most recent one per account), FilesSkipped the number that failed.
	FilesSelected int
	FilesSkipped  int
}

// ImportUsecase turns a directory of brokerage CSV exports into domain
// entities. Only the newest export per account is used.
type ImportUsecase struct {
	dir string
}

// NewImportUsecase creates an ImportUsecase reading from the given directory.
func NewImportUsecase(dir string) *ImportUsecase {
	return &ImportUsecase{dir: dir}
}

// ImportAll selects and parses the latest export file per account.
// A file that fails to parse is logged and skipped; the remaining files
// are still processed.
func (u *ImportUsecase) ImportAll() (*ImportResult, error) {
	files, err := parser.SelectLatest(u.dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		slog.Info("no statement files found", "dir", u.dir)
		return &ImportResult{}, nil
	}

	res := &ImportResult{}
	for _, f := range files {
		st, err := parser.ParseFile(f)
		if err != nil {
			slog.Error("failed to parse statement", "path", f.Path, "account", f.Account, "error", err)
			res.FilesSkipped++
			continue
		}
		res.Holdings = append(res.Holdings, st.Holdings...)
		res.Cash = append(res.Cash, st.Cash...)
		res.FilesSelected++
		slog.Info("parsed statement",
			"account", f.Account,
			"date", f.Date.Format("2006-01-02"),
			"holdings", len(st.Holdings),
			"cash_balances", len(st.Cash))
	}
	return res, nil
}
