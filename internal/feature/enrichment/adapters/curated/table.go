// Package curated provides the hand-maintained ticker classification table,
// the first and most trusted tier of the enrichment chain. Entries follow
// GICS sector naming.
package curated

import (
	"strings"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
)

// Table is a symbol-keyed classification lookup.
type Table struct {
	entries map[string]entity.Classification
}

// NewTable returns the built-in classification table.
func NewTable() *Table {
	return &Table{entries: builtin}
}

// Lookup returns the curated classification for a symbol, if present.
// Symbols are matched case-insensitively.
func (t *Table) Lookup(symbol string) (entity.Classification, bool) {
	c, ok := t.entries[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return entity.Classification{}, false
	}
	c.Symbol = symbol
	c.Confidence = 1.0
	c.Source = entity.SourceCurated
	return c, true
}

// Len returns the number of curated entries.
func (t *Table) Len() int { return len(t.entries) }

func e(sector, region, country, industry string) entity.Classification {
	return entity.Classification{Sector: sector, Region: region, Country: country, Industry: industry}
}

// builtin covers the positions that external lookups historically got wrong:
// Canadian dual-class shares, sector ETFs, and REITs.
var builtin = map[string]entity.Classification{
	// REITs and REIT ETFs
	"STAG": e("Real Estate", "United States", "United States", "Industrial REITs"),
	"REXR": e("Real Estate", "United States", "United States", "Industrial REITs"),
	"O":    e("Real Estate", "United States", "United States", "Retail REITs"),
	"ZRE":  e("Real Estate", "Canada", "Canada", "REIT ETF"),
	"VRE":  e("Real Estate", "Canada", "Canada", "REIT ETF"),
	"XRE":  e("Real Estate", "Canada", "Canada", "REIT ETF"),
	"VNQ":  e("Real Estate", "United States", "United States", "REIT ETF"),
	"IYR":  e("Real Estate", "United States", "United States", "REIT ETF"),

	// Technology
	"AAPL":  e("Information Technology", "United States", "United States", "Technology Hardware"),
	"MSFT":  e("Information Technology", "United States", "United States", "Systems Software"),
	"GOOGL": e("Communications", "United States", "United States", "Interactive Media & Services"),
	"AMZN":  e("Consumer Discretionary", "United States", "United States", "Internet Retail"),
	"NVDA":  e("Information Technology", "United States", "United States", "Semiconductors"),
	"ADBE":  e("Information Technology", "United States", "United States", "Application Software"),
	"CRM":   e("Information Technology", "United States", "United States", "Application Software"),
	"SHOP":  e("Information Technology", "Canada", "Canada", "Application Software"),
	"NFLX":  e("Communications", "United States", "United States", "Entertainment"),
	"TSLA":  e("Consumer Discretionary", "United States", "United States", "Automobile Manufacturers"),
	"QQQ":   e("Multi-Sector Equity", "United States", "United States", "Broad Market Index ETF"),
	"XLK":   e("Information Technology", "United States", "United States", "Sector ETF"),
	"SMH":   e("Information Technology", "United States", "United States", "Semiconductor ETF"),
	"TAN":   e("Utilities", "United States", "United States", "Clean Energy ETF"),

	// Healthcare
	"PFE":  e("Healthcare", "United States", "United States", "Pharmaceuticals"),
	"MRK":  e("Healthcare", "United States", "United States", "Pharmaceuticals"),
	"JNJ":  e("Healthcare", "United States", "United States", "Health Care Equipment"),
	"UNH":  e("Healthcare", "United States", "United States", "Managed Health Care"),
	"ABBV": e("Healthcare", "United States", "United States", "Pharmaceuticals"),
	"XLV":  e("Healthcare", "United States", "United States", "Sector ETF"),

	// Communications
	"T":     e("Communications", "United States", "United States", "Integrated Telecommunication Services"),
	"VZ":    e("Communications", "United States", "United States", "Integrated Telecommunication Services"),
	"CMCSA": e("Communications", "United States", "United States", "Cable & Satellite"),
	"DIS":   e("Communications", "United States", "United States", "Entertainment"),
	"XLC":   e("Communications", "United States", "United States", "Sector ETF"),
	"RCI.B": e("Communications", "Canada", "Canada", "Wireless Telecommunication Services"),
	"BCE":   e("Communications", "Canada", "Canada", "Integrated Telecommunication Services"),

	// Consumer
	"NKE": e("Consumer Discretionary", "United States", "United States", "Apparel & Luxury Goods"),
	"HD":  e("Consumer Discretionary", "United States", "United States", "Home Improvement Retail"),
	"MCD": e("Consumer Discretionary", "United States", "United States", "Restaurants"),
	"XLY": e("Consumer Discretionary", "United States", "United States", "Sector ETF"),
	"PG":  e("Consumer Staples", "United States", "United States", "Household Products"),
	"KO":  e("Consumer Staples", "United States", "United States", "Beverages"),
	"WMT": e("Consumer Staples", "United States", "United States", "Hypermarkets"),
	"XLP": e("Consumer Staples", "United States", "United States", "Sector ETF"),

	// Industrials
	"UPS": e("Industrials", "United States", "United States", "Air Freight & Logistics"),
	"BA":  e("Industrials", "United States", "United States", "Aerospace & Defense"),
	"CAT": e("Industrials", "United States", "United States", "Construction Machinery"),
	"GE":  e("Industrials", "United States", "United States", "Industrial Conglomerates"),
	"XLI": e("Industrials", "United States", "United States", "Sector ETF"),

	// Utilities
	"NEE": e("Utilities", "United States", "United States", "Electric Utilities"),
	"DUK": e("Utilities", "United States", "United States", "Electric Utilities"),
	"SO":  e("Utilities", "United States", "United States", "Electric Utilities"),
	"XLU": e("Utilities", "United States", "United States", "Sector ETF"),

	// Energy
	"ARX": e("Energy", "Canada", "Canada", "Oil & Gas Exploration"),
	"CNQ": e("Energy", "Canada", "Canada", "Oil & Gas Exploration"),
	"CVE": e("Energy", "Canada", "Canada", "Oil & Gas Exploration"),
	"ENB": e("Energy", "Canada", "Canada", "Oil & Gas Storage & Transportation"),
	"PPL": e("Energy", "Canada", "Canada", "Oil & Gas Storage & Transportation"),
	"ET":  e("Energy", "United States", "United States", "Oil & Gas Midstream"),
	"XLE": e("Energy", "United States", "United States", "Sector ETF"),
	"XEG": e("Energy", "Canada", "Canada", "Sector ETF"),

	// Financials
	"JPM": e("Financials", "United States", "United States", "Diversified Banks"),
	"BAC": e("Financials", "United States", "United States", "Diversified Banks"),
	"WFC": e("Financials", "United States", "United States", "Diversified Banks"),
	"GS":  e("Financials", "United States", "United States", "Investment Banking"),
	"XLF": e("Financials", "United States", "United States", "Sector ETF"),
	"RY":  e("Financials", "Canada", "Canada", "Diversified Banks"),
	"TD":  e("Financials", "Canada", "Canada", "Diversified Banks"),

	// Materials
	"FCX": e("Materials", "United States", "United States", "Copper"),
	"NEM": e("Materials", "United States", "United States", "Gold"),
	"XLB": e("Materials", "United States", "United States", "Sector ETF"),

	// Fixed income ETFs
	"TLT":  e("Fixed Income", "United States", "United States", "Government Bond ETF"),
	"IEF":  e("Fixed Income", "United States", "United States", "Government Bond ETF"),
	"SHY":  e("Fixed Income", "United States", "United States", "Government Bond ETF"),
	"LQD":  e("Fixed Income", "United States", "United States", "Corporate Bond ETF"),
	"HYG":  e("Fixed Income", "United States", "United States", "Corporate Bond ETF"),
	"VCSH": e("Fixed Income", "United States", "United States", "Corporate Bond ETF"),
	"BNDX": e("Fixed Income", "Global", "United States", "International Bond ETF"),

	// Canadian broad market and dividend ETFs
	"CDZ": e("Multi-Sector Equity", "Canada", "Canada", "Dividend Equity ETF"),
	"XDV": e("Multi-Sector Equity", "Canada", "Canada", "Dividend Equity ETF"),
	"XIU": e("Multi-Sector Equity", "Canada", "Canada", "Broad Market Index ETF"),
	"XIC": e("Multi-Sector Equity", "Canada", "Canada", "Broad Market Index ETF"),
	"VCN": e("Multi-Sector Equity", "Canada", "Canada", "Broad Market Index ETF"),
	"VFV": e("Multi-Sector Equity", "Canada", "United States", "Broad Market Index ETF"),
	"XUU": e("Multi-Sector Equity", "Canada", "United States", "Broad Market Index ETF"),
}
