// Package usecase implements the read-side business logic the dashboard
// API serves: holdings lists, portfolio summary and allocation breakdowns.
package usecase

import (
	"context"
	"errors"
	"math"
	"sort"

	"portfolio_backend/internal/feature/holdings/domain/entity"
)

// ErrInvalidGrouping is returned when an allocation dimension is not one of
// sector, region or account.
var ErrInvalidGrouping = errors.New("invalid allocation grouping")

// Allocation grouping dimensions accepted by GetAllocation.
const (
	GroupBySector  = "sector"
	GroupByRegion  = "region"
	GroupByAccount = "account"
)

// HoldingRepository abstracts the persistence layer for holdings and cash
// balances. Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type HoldingRepository interface {
	// UpsertBatch inserts or updates holdings keyed by (account, symbol).
	UpsertBatch(ctx context.Context, holdings []entity.Holding) error

	// Find returns holdings, filtered to one account when account is non-empty.
	Find(ctx context.Context, account string) ([]entity.Holding, error)

	// DeleteByAccount removes every holding of one account.
	DeleteByAccount(ctx context.Context, account string) error

	// Accounts returns the distinct account numbers present in the store.
	Accounts(ctx context.Context) ([]string, error)

	// UpsertCashBalances inserts or updates financial summary rows.
	UpsertCashBalances(ctx context.Context, balances []entity.CashBalance) error

	// FindCashBalances returns every stored cash balance.
	FindCashBalances(ctx context.Context) ([]entity.CashBalance, error)
}

// Summary is the portfolio-level aggregate served by GET /summary.
// All monetary values are CAD.
type Summary struct {
	MarketValue    float64
	BookCost       float64
	GainLoss       float64
	AnnualDividend float64
	HoldingCount   int
	AccountCount   int

	// CashByCurrency holds the raw (unconverted) cash amount per currency;
	// CashCAD is the converted grand total.
	CashByCurrency map[string]float64
	CashCAD        float64
}

// AllocationBucket is one group of an allocation breakdown.
type AllocationBucket struct {
	Label       string
	MarketValue float64
	Percent     float64
	Count       int
}

// holdingsUsecase implements the dashboard read operations.
type holdingsUsecase struct {
	repo HoldingRepository
}

// NewHoldingsUsecase creates a new holdingsUsecase.
func NewHoldingsUsecase(repo HoldingRepository) *holdingsUsecase {
	return &holdingsUsecase{repo: repo}
}

// ListHoldings returns holdings, optionally filtered by account.
func (u *holdingsUsecase) ListHoldings(ctx context.Context, account string) ([]entity.Holding, error) {
	return u.repo.Find(ctx, account)
}

// ListAccounts returns the distinct account numbers.
func (u *holdingsUsecase) ListAccounts(ctx context.Context) ([]string, error) {
	return u.repo.Accounts(ctx)
}

// GetSummary aggregates the stored portfolio into a single summary.
func (u *holdingsUsecase) GetSummary(ctx context.Context) (*Summary, error) {
	holdings, err := u.repo.Find(ctx, "")
	if err != nil {
		return nil, err
	}
	balances, err := u.repo.FindCashBalances(ctx)
	if err != nil {
		return nil, err
	}

	s := &Summary{CashByCurrency: map[string]float64{}}
	accounts := map[string]struct{}{}
	for _, h := range holdings {
		s.MarketValue += h.MarketValue
		s.BookCost += h.BookCost
		s.GainLoss += h.GainLoss
		s.AnnualDividend += h.AnnualDividend
		accounts[h.Account] = struct{}{}
	}
	s.HoldingCount = len(holdings)
	s.AccountCount = len(accounts)

	for _, b := range balances {
		s.CashByCurrency[b.Currency] += b.Cash
		s.CashCAD += b.CashCAD
	}

	s.MarketValue = round2(s.MarketValue)
	s.BookCost = round2(s.BookCost)
	s.GainLoss = round2(s.GainLoss)
	s.AnnualDividend = round2(s.AnnualDividend)
	s.CashCAD = round2(s.CashCAD)
	return s, nil
}

// GetAllocation groups market value by the requested dimension and computes
// each bucket's share of the grand total. Buckets come back sorted by value,
// largest first.
func (u *holdingsUsecase) GetAllocation(ctx context.Context, by string) ([]AllocationBucket, error) {
	var label func(h *entity.Holding) string
	switch by {
	case GroupBySector:
		label = func(h *entity.Holding) string { return orUnknown(h.Sector) }
	case GroupByRegion:
		label = func(h *entity.Holding) string { return orUnknown(h.Region) }
	case GroupByAccount:
		label = func(h *entity.Holding) string { return h.Account }
	default:
		return nil, ErrInvalidGrouping
	}

	holdings, err := u.repo.Find(ctx, "")
	if err != nil {
		return nil, err
	}

	buckets := map[string]*AllocationBucket{}
	var total float64
	for i := range holdings {
		h := &holdings[i]
		l := label(h)
		b, ok := buckets[l]
		if !ok {
			b = &AllocationBucket{Label: l}
			buckets[l] = b
		}
		b.MarketValue += h.MarketValue
		b.Count++
		total += h.MarketValue
	}

	out := make([]AllocationBucket, 0, len(buckets))
	for _, b := range buckets {
		b.MarketValue = round2(b.MarketValue)
		if total > 0 {
			b.Percent = round2(b.MarketValue / total * 100)
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MarketValue != out[j].MarketValue {
			return out[i].MarketValue > out[j].MarketValue
		}
		return out[i].Label < out[j].Label
	})
	return out, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
