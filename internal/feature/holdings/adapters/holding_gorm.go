package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio_backend/internal/feature/holdings/domain/entity"
	"portfolio_backend/internal/feature/holdings/usecase"
)

type holdingGorm struct {
	db *gorm.DB
}

var _ usecase.HoldingRepository = (*holdingGorm)(nil)

// NewHoldingRepository creates the gorm-backed holding store.
func NewHoldingRepository(db *gorm.DB) *holdingGorm {
	return &holdingGorm{db: db}
}

// HoldingModel is the relational shape of a holding. One row per
// (account, symbol); pipeline reruns upsert in place.
type HoldingModel struct {
	ID      uint   `gorm:"primaryKey"`
	Account string `gorm:"size:32;not null;uniqueIndex:holding_acct_sym,priority:1"`
	Symbol  string `gorm:"size:32;not null;uniqueIndex:holding_acct_sym,priority:2"`

	Product string `gorm:"size:64"`
	Name    string `gorm:"size:255"`

	Quantity  int64   `gorm:"not null;default:0"`
	LastPrice float64 `gorm:"not null;default:0"`
	Currency  string  `gorm:"size:8"`

	ChangeDollar   float64
	ChangePercent  string `gorm:"size:16"`
	BookCost       float64
	MarketValue    float64 `gorm:"not null;default:0"`
	GainLoss       float64
	GainLossPct    string `gorm:"size:16"`
	AverageCost    float64
	AnnualDividend float64

	Sector     string `gorm:"size:64"`
	Region     string `gorm:"size:64"`
	Country    string `gorm:"size:64"`
	Industry   string `gorm:"size:96"`
	Confidence float64
	Source     string `gorm:"size:16"`
}

func (HoldingModel) TableName() string {
	return "holdings"
}

// CashBalanceModel is the relational shape of a financial summary row.
// One row per (account, currency).
type CashBalanceModel struct {
	ID       uint   `gorm:"primaryKey"`
	Account  string `gorm:"size:32;not null;uniqueIndex:cash_acct_cur,priority:1"`
	Currency string `gorm:"size:8;not null;uniqueIndex:cash_acct_cur,priority:2"`

	Cash         float64
	Investments  float64
	Total        float64
	ExchangeRate float64

	CashCAD        float64
	InvestmentsCAD float64
	TotalCAD       float64
}

func (CashBalanceModel) TableName() string {
	return "cash_balances"
}

func toModel(e entity.Holding) HoldingModel {
	return HoldingModel{
		Account:        e.Account,
		Symbol:         e.Symbol,
		Product:        e.Product,
		Name:           e.Name,
		Quantity:       e.Quantity,
		LastPrice:      e.LastPrice,
		Currency:       e.Currency,
		ChangeDollar:   e.ChangeDollar,
		ChangePercent:  e.ChangePercent,
		BookCost:       e.BookCost,
		MarketValue:    e.MarketValue,
		GainLoss:       e.GainLoss,
		GainLossPct:    e.GainLossPct,
		AverageCost:    e.AverageCost,
		AnnualDividend: e.AnnualDividend,
		Sector:         e.Sector,
		Region:         e.Region,
		Country:        e.Country,
		Industry:       e.Industry,
		Confidence:     e.Confidence,
		Source:         e.Source,
	}
}

func toEntity(m HoldingModel) entity.Holding {
	return entity.Holding{
		Account:        m.Account,
		Symbol:         m.Symbol,
		Product:        m.Product,
		Name:           m.Name,
		Quantity:       m.Quantity,
		LastPrice:      m.LastPrice,
		Currency:       m.Currency,
		ChangeDollar:   m.ChangeDollar,
		ChangePercent:  m.ChangePercent,
		BookCost:       m.BookCost,
		MarketValue:    m.MarketValue,
		GainLoss:       m.GainLoss,
		GainLossPct:    m.GainLossPct,
		AverageCost:    m.AverageCost,
		AnnualDividend: m.AnnualDividend,
		Sector:         m.Sector,
		Region:         m.Region,
		Country:        m.Country,
		Industry:       m.Industry,
		Confidence:     m.Confidence,
		Source:         m.Source,
	}
}

// UpsertBatch inserts or updates holdings keyed by (account, symbol).
func (r *holdingGorm) UpsertBatch(ctx context.Context, holdings []entity.Holding) error {
	if len(holdings) == 0 {
		return nil
	}
	ms := make([]HoldingModel, 0, len(holdings))
	for _, e := range holdings {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product", "name", "quantity", "last_price", "currency",
			"change_dollar", "change_percent", "book_cost", "market_value",
			"gain_loss", "gain_loss_pct", "average_cost", "annual_dividend",
			"sector", "region", "country", "industry", "confidence", "source",
		}),
	}).Create(&ms).Error
}

// Find returns holdings ordered by market value, filtered to one account
// when account is non-empty.
func (r *holdingGorm) Find(ctx context.Context, account string) ([]entity.Holding, error) {
	var rows []HoldingModel
	q := r.db.WithContext(ctx).Order("market_value DESC")
	if account != "" {
		q = q.Where("account = ?", account)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Holding, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// DeleteByAccount removes every holding of one account. Used by the benefits
// merge so reruns replace rather than accumulate synthetic rows.
func (r *holdingGorm) DeleteByAccount(ctx context.Context, account string) error {
	return r.db.WithContext(ctx).Where("account = ?", account).Delete(&HoldingModel{}).Error
}

// Accounts returns the distinct account numbers present in the store.
func (r *holdingGorm) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := r.db.WithContext(ctx).Model(&HoldingModel{}).
		Distinct("account").Order("account").Pluck("account", &accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpsertCashBalances inserts or updates cash balances keyed by
// (account, currency).
func (r *holdingGorm) UpsertCashBalances(ctx context.Context, balances []entity.CashBalance) error {
	if len(balances) == 0 {
		return nil
	}
	ms := make([]CashBalanceModel, 0, len(balances))
	for _, b := range balances {
		ms = append(ms, CashBalanceModel{
			Account:        b.Account,
			Currency:       b.Currency,
			Cash:           b.Cash,
			Investments:    b.Investments,
			Total:          b.Total,
			ExchangeRate:   b.ExchangeRate,
			CashCAD:        b.CashCAD,
			InvestmentsCAD: b.InvestmentsCAD,
			TotalCAD:       b.TotalCAD,
		})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account"}, {Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cash", "investments", "total", "exchange_rate",
			"cash_cad", "investments_cad", "total_cad",
		}),
	}).Create(&ms).Error
}

// FindCashBalances returns every stored cash balance.
func (r *holdingGorm) FindCashBalances(ctx context.Context) ([]entity.CashBalance, error) {
	var rows []CashBalanceModel
	if err := r.db.WithContext(ctx).Order("account, currency").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.CashBalance, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.CashBalance{
			Account:        m.Account,
			Currency:       m.Currency,
			Cash:           m.Cash,
			Investments:    m.Investments,
			Total:          m.Total,
			ExchangeRate:   m.ExchangeRate,
			CashCAD:        m.CashCAD,
			InvestmentsCAD: m.InvestmentsCAD,
			TotalCAD:       m.TotalCAD,
		})
	}
	return out, nil
}
