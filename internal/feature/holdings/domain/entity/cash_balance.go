package entity

// CashBalance represents one currency row of a statement's financial
// summary section: cash and investment totals for an account, together
// with the exchange rate used to express them in CAD.
type CashBalance struct {
	Account      string
	Currency     string
	Cash         float64
	Investments  float64
	Total        float64
	ExchangeRate float64

	// CAD equivalents, computed at parse time. For CAD rows these equal
	// the raw amounts.
	CashCAD        float64
	InvestmentsCAD float64
	TotalCAD       float64
}
