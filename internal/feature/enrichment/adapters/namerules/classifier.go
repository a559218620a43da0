// Package namerules classifies ETFs and ETNs from keywords in their names.
// It is the fallback tier used when neither the curated table nor the
// profile API resolved a fund, so its confidence is deliberately modest.
package namerules

import (
	"strings"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
)

// nameRuleConfidence is attached to every keyword-derived classification.
const nameRuleConfidence = 0.6

// regionRules maps region labels to name keywords, checked in order.
var regionRules = []struct {
	region   string
	keywords []string
}{
	{"Canada", []string{"CANADIAN", "CANADA", "TSX", "CDN", "BMO "}},
	{"United States", []string{"U.S.", "US ", "UNITED STATES", "S&P", "NASDAQ", "DOW ", "RUSSELL", "SPDR"}},
	{"Europe", []string{"EUROPE", "EUROPEAN", "EURO ", "STOXX", "FTSE"}},
	{"Emerging Markets", []string{"EMERGING", "DEVELOPING", "FRONTIER"}},
	{"Global", []string{"GLOBAL", "WORLD", "INTERNATIONAL", "ALL COUNTRY", "ACWI"}},
	{"Asia", []string{"ASIA", "ASIAN", "JAPAN", "CHINA"}},
}

// sectorRules maps sector labels to name keywords, checked in order.
// Position matters: the more specific rules come first.
var sectorRules = []struct {
	sector   string
	industry string
	keywords []string
}{
	{"Fixed Income", "Bond ETF", []string{"BOND", "TREASURY", "MONEY MARKET", "FIXED INCOME", "INVESTMENT GRADE", "HIGH YIELD", "SHORT TERM", "CORPORATE"}},
	{"Real Estate", "REIT ETF", []string{"REIT", "REAL ESTATE", "REALTY", "PROPERTY"}},
	{"Information Technology", "Semiconductor ETF", []string{"SEMICONDUCTOR", "CHIP"}},
	{"Information Technology", "Technology ETF", []string{"TECHNOLOGY", "TECH ", "SOFTWARE", "INTERNET", "CYBERSECURITY", "ARTIFICIAL INTELLIGENCE", "BLOCKCHAIN"}},
	{"Healthcare", "Healthcare ETF", []string{"HEALTH", "BIOTECH", "PHARMACEUTICAL", "MEDICAL"}},
	{"Utilities", "Clean Energy ETF", []string{"CLEAN ENERGY", "RENEWABLE", "SOLAR", "WIND"}},
	{"Energy", "Energy ETF", []string{"ENERGY", "OIL", "CRUDE", "NATURAL GAS", "PETROLEUM"}},
	{"Utilities", "Utilities ETF", []string{"UTILITIES", "UTILITY", "ELECTRIC", "POWER"}},
	{"Financials", "Financial ETF", []string{"FINANCIAL", "BANK", "INSURANCE"}},
	{"Consumer Discretionary", "Consumer ETF", []string{"DISCRETIONARY", "RETAIL"}},
	{"Consumer Staples", "Consumer ETF", []string{"STAPLES", "CONSUMER"}},
	{"Industrials", "Industrial ETF", []string{"INDUSTRIAL", "AEROSPACE", "DEFENSE", "MANUFACTURING"}},
	{"Materials", "Materials ETF", []string{"MATERIALS", "MINING", "METALS", "GOLD", "SILVER", "CHEMICALS"}},
	{"Communications", "Communications ETF", []string{"COMMUNICATION", "TELECOM", "MEDIA"}},
	{"Multi-Sector Equity", "Dividend Equity ETF", []string{"DIVIDEND", "INCOME", "ARISTOCRAT"}},
	{"Multi-Sector Equity", "Broad Market Index ETF", []string{"INDEX", "TOTAL MARKET", "MARKET CAP", "MSCI"}},
}

// Classifier classifies funds by name keywords.
type Classifier struct{}

// NewClassifier returns a keyword-based fund classifier.
func NewClassifier() *Classifier { return &Classifier{} }

// ClassifyName derives region and sector from an ETF/ETN name. The second
// return value is false when no keyword matched at all.
func (c *Classifier) ClassifyName(symbol, name string) (entity.Classification, bool) {
	upper := strings.ToUpper(name)

	out := entity.Classification{
		Symbol:     symbol,
		Name:       name,
		Sector:     "Unknown",
		Region:     "Unknown",
		Country:    "Unknown",
		Industry:   "Unknown",
		Confidence: nameRuleConfidence,
		Source:     entity.SourceNameRules,
	}

	for _, r := range regionRules {
		if containsAny(upper, r.keywords) {
			out.Region = r.region
			break
		}
	}
	for _, s := range sectorRules {
		if containsAny(upper, s.keywords) {
			out.Sector = s.sector
			out.Industry = s.industry
			break
		}
	}

	if out.Sector == "Unknown" && out.Region == "Unknown" {
		return entity.Classification{}, false
	}
	return out, true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
