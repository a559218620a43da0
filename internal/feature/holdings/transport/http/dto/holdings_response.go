// Package dto defines data transfer objects for the holdings feature's HTTP
// transport layer.
package dto

// HoldingItem is one holding row in the /holdings response.
type HoldingItem struct {
	Account        string  `json:"account"`
	Product        string  `json:"product"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Quantity       int64   `json:"quantity"`
	LastPrice      float64 `json:"last_price"`
	Currency       string  `json:"currency"`
	BookCost       float64 `json:"book_cost"`
	MarketValue    float64 `json:"market_value_cad"`
	GainLoss       float64 `json:"gain_loss"`
	GainLossPct    string  `json:"gain_loss_pct"`
	AnnualDividend float64 `json:"annual_dividend"`
	Sector         string  `json:"sector"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Industry       string  `json:"industry"`
	Confidence     float64 `json:"confidence"`
	Source         string  `json:"source"`
}

// SummaryResponse is the body of GET /summary.
type SummaryResponse struct {
	MarketValueCAD float64            `json:"market_value_cad"`
	BookCostCAD    float64            `json:"book_cost_cad"`
	GainLossCAD    float64            `json:"gain_loss_cad"`
	AnnualDividend float64            `json:"annual_dividend_cad"`
	HoldingCount   int                `json:"holding_count"`
	AccountCount   int                `json:"account_count"`
	CashByCurrency map[string]float64 `json:"cash_by_currency"`
	CashCAD        float64            `json:"cash_cad"`
}

// AllocationItem is one bucket of GET /allocation.
type AllocationItem struct {
	Label          string  `json:"label"`
	MarketValueCAD float64 `json:"market_value_cad"`
	Percent        float64 `json:"percent"`
	Count          int     `json:"count"`
}

// AllocationResponse is the body of GET /allocation.
type AllocationResponse struct {
	By      string           `json:"by"`
	Buckets []AllocationItem `json:"buckets"`
}
