// Package entity defines the domain entities for the enrichment feature.
package entity

// Classification source names, recorded on every enriched holding.
const (
	SourceCurated    = "curated"
	SourceProfileAPI = "profile_api"
	SourceNameRules  = "name_rules"
	SourceLLM        = "llm"
	SourceNone       = "none"
)

// MinConfidence is the threshold below which a tier's answer is discarded
// and the chain falls through to the next tier.
const MinConfidence = 0.5

// Classification is the sector/region metadata attached to a holding by
// one of the enrichment tiers.
type Classification struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Sector     string  `json:"sector"`
	Region     string  `json:"region"`
	Country    string  `json:"country"`
	Industry   string  `json:"industry"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Confident reports whether the classification clears the acceptance
// threshold and resolved at least a sector or a region.
func (c *Classification) Confident() bool {
	if c.Confidence < MinConfidence {
		return false
	}
	return (c.Sector != "" && c.Sector != "Unknown") ||
		(c.Region != "" && c.Region != "Unknown")
}

// Unknown returns the classification recorded when every tier failed.
func Unknown(symbol, name string) Classification {
	return Classification{
		Symbol:   symbol,
		Name:     name,
		Sector:   "Unknown",
		Region:   "Unknown",
		Country:  "Unknown",
		Industry: "Unknown",
		Source:   SourceNone,
	}
}
