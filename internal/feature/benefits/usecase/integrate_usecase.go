// Package usecase merges externally-scraped retirement account balances
// into the holdings store as synthetic positions, so the dashboard shows
// the whole portfolio in one place.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/holdings/domain/entity"
	"portfolio_backend/internal/shared/stagefile"
)

// Synthetic account numbers for benefits rows. They never collide with real
// brokerage account numbers, which are purely numeric.
const (
	AccountDCPension = "BENEFITS01"
	AccountRRSP      = "BENEFITS02"
)

// sourceBenefits marks holdings that came from the benefits portal rather
// than an enrichment tier.
const sourceBenefits = "benefits"

// benefitsPrefix is the stage file prefix written by the benefits scraper.
const benefitsPrefix = "benefits_data"

// BenefitsData is the JSON shape of the scraped benefits stage file.
// Amounts are formatted dollar strings ("$123,456.78").
type BenefitsData struct {
	DCPensionPlan string `json:"dc_pension_plan"`
	RRSP          string `json:"rrsp"`
	TotalSavings  string `json:"total_savings"`
	ExtractedAt   string `json:"extracted_at,omitempty"`
}

// HoldingStore is the subset of the holdings repository the merge needs.
// Following Go convention: interfaces are defined by the consumer.
type HoldingStore interface {
	UpsertBatch(ctx context.Context, holdings []entity.Holding) error
	DeleteByAccount(ctx context.Context, account string) error
}

// IntegrateUsecase merges benefits balances into the holdings store.
type IntegrateUsecase struct {
	store HoldingStore
	dir   string
}

// NewIntegrateUsecase creates an IntegrateUsecase reading stage files from dir.
func NewIntegrateUsecase(store HoldingStore, dir string) *IntegrateUsecase {
	return &IntegrateUsecase{store: store, dir: dir}
}

// IntegrateLatest loads the newest benefits stage file and merges its
// balances. A missing stage file is not an error: the pipeline simply runs
// without benefits data. Reruns replace the previous synthetic rows.
func (u *IntegrateUsecase) IntegrateLatest(ctx context.Context) (int, error) {
	path, err := stagefile.Latest(u.dir, benefitsPrefix)
	if err != nil {
		if errors.Is(err, stagefile.ErrNotFound) {
			slog.Info("no benefits stage file found, skipping merge", "dir", u.dir)
			return 0, nil
		}
		return 0, err
	}

	var data BenefitsData
	if err := stagefile.Load(path, &data); err != nil {
		return 0, fmt.Errorf("load benefits data: %w", err)
	}

	entries := Entries(data)
	if len(entries) == 0 {
		slog.Warn("benefits stage file contained no balances", "path", path)
		return 0, nil
	}

	// Replace, don't accumulate: drop the previous synthetic rows first.
	for _, account := range []string{AccountDCPension, AccountRRSP} {
		if err := u.store.DeleteByAccount(ctx, account); err != nil {
			return 0, fmt.Errorf("clear benefits account %s: %w", account, err)
		}
	}
	if err := u.store.UpsertBatch(ctx, entries); err != nil {
		return 0, fmt.Errorf("store benefits holdings: %w", err)
	}

	slog.Info("merged benefits balances", "path", path, "entries", len(entries))
	return len(entries), nil
}

// Entries converts scraped balances to synthetic holdings. Balances that are
// absent or unparsable become no entry at all.
func Entries(data BenefitsData) []entity.Holding {
	var out []entity.Holding
	if amount, ok := parseDollar(data.DCPensionPlan); ok {
		out = append(out, syntheticHolding(
			AccountDCPension, "DC Pension Plan", "DC-PENSION",
			"DEFINED CONTRIBUTION PENSION PLAN", amount))
	}
	if amount, ok := parseDollar(data.RRSP); ok {
		out = append(out, syntheticHolding(
			AccountRRSP, "Group RRSP", "RRSP-GROUP",
			"GROUP REGISTERED RETIREMENT SAVINGS PLAN", amount))
	}
	return out
}

// syntheticHolding builds a one-unit CAD position whose price, book cost and
// market value all equal the scraped balance. Benefits balances have no
// daily change or gain/loss concept.
func syntheticHolding(account, product, symbol, name string, amount float64) entity.Holding {
	return entity.Holding{
		Account:       account,
		Product:       product,
		Symbol:        symbol,
		Name:          name,
		Quantity:      1,
		LastPrice:     amount,
		Currency:      "CAD",
		ChangePercent: "N/A",
		BookCost:      amount,
		MarketValue:   amount,
		GainLossPct:   "N/A",
		AverageCost:   amount,
		Sector:        "Retirement Savings",
		Region:        "Canada",
		Country:       "Canada",
		Industry:      "Pension & Retirement Plans",
		Confidence:    1.0,
		Source:        sourceBenefits,
	}
}

// parseDollar converts "$123,456.78" to a float64, reporting false for
// empty or unparsable strings.
func parseDollar(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	f, _ := d.Round(2).Float64()
	return f, true
}
