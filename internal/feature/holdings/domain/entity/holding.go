// Package entity defines the domain entities for portfolio holdings.
package entity

// Holding represents one brokerage position after statement parsing.
// All monetary amounts are expressed in CAD; USD rows are converted at
// statement parse time using the exchange rate embedded in the export.
type Holding struct {
	// Account is the brokerage account number the position belongs to.
	// Benefits balances use synthetic account numbers (see feature/benefits).
	Account string

	// Product is the brokerage product category (e.g. "Common Shares",
	// "ETFs and ETNs", "DC Pension Plan").
	Product string

	// Symbol is the ticker symbol. It is never empty for a stored holding.
	Symbol string

	// Name is the instrument's full name as printed on the statement.
	Name string

	Quantity  int64
	LastPrice float64

	// Currency after parsing is always "CAD"; the field is kept so the
	// original statement currency can be surfaced when conversion was skipped.
	Currency string

	ChangeDollar   float64
	ChangePercent  string
	BookCost       float64
	MarketValue    float64
	GainLoss       float64
	GainLossPct    string
	AverageCost    float64
	AnnualDividend float64

	// Classification fields, populated by the enrichment chain.
	// Unclassified holdings carry "Unknown" / empty values.
	Sector     string
	Region     string
	Country    string
	Industry   string
	Confidence float64

	// Source records which enrichment tier classified the holding:
	// curated, profile_api, name_rules, llm, or none.
	Source string
}

// IsClassified returns true if both sector and region have been resolved.
func (h *Holding) IsClassified() bool {
	return h.Sector != "" && h.Sector != "Unknown" &&
		h.Region != "" && h.Region != "Unknown"
}

// IsETF returns true for exchange-traded fund or note products.
func (h *Holding) IsETF() bool {
	return h.Product == "ETFs and ETNs" || h.Product == "ETF" || h.Product == "ETN"
}
