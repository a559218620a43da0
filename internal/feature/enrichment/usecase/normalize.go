package usecase

import "portfolio_backend/internal/feature/enrichment/domain/entity"

// profileConfidence is attached to classifications derived from the
// external profile API.
const profileConfidence = 0.8

// countryToRegion maps the profile API's listing country to the dashboard's
// region buckets.
var countryToRegion = map[string]string{
	"United States":  "United States",
	"Canada":         "Canada",
	"United Kingdom": "Europe",
	"Germany":        "Europe",
	"France":         "Europe",
	"Netherlands":    "Europe",
	"Switzerland":    "Europe",
	"Italy":          "Europe",
	"Spain":          "Europe",
	"Japan":          "Asia",
	"China":          "Asia",
	"Hong Kong":      "Asia",
	"South Korea":    "Asia",
	"Taiwan":         "Asia",
	"India":          "Asia",
	"Australia":      "Asia",
	"Brazil":         "South America",
	"Mexico":         "North America",
	"Argentina":      "South America",
	"Chile":          "South America",
}

// sectorNormalization maps the profile API's sector names onto the GICS
// buckets used by the curated table and the dashboard.
var sectorNormalization = map[string]string{
	"Technology":             "Information Technology",
	"Financial Services":     "Financials",
	"Communication Services": "Communications",
	"Consumer Cyclical":      "Consumer Discretionary",
	"Consumer Defensive":     "Consumer Staples",
	"Basic Materials":        "Materials",
	"Consumer Goods":         "Consumer Staples",
}

// FromProfile converts a raw API profile into a normalized classification.
func FromProfile(symbol, name string, p *entity.SecurityProfile) entity.Classification {
	sector := p.Sector
	if normalized, ok := sectorNormalization[sector]; ok {
		sector = normalized
	}
	if sector == "" {
		sector = "Unknown"
	}

	region := "Unknown"
	if r, ok := countryToRegion[p.Country]; ok {
		region = r
	}

	country := p.Country
	if country == "" {
		country = "Unknown"
	}
	industry := p.Industry
	if industry == "" {
		industry = "Unknown"
	}

	return entity.Classification{
		Symbol:     symbol,
		Name:       name,
		Sector:     sector,
		Region:     region,
		Country:    country,
		Industry:   industry,
		Confidence: profileConfidence,
		Source:     entity.SourceProfileAPI,
	}
}
