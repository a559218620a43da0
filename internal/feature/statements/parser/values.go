package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// cleanString strips surrounding quotes and whitespace from a CSV field.
func cleanString(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"`)
}

// parseAmount converts a statement money or quantity field to a decimal.
// Quotes, thousands separators and dollar signs are removed first;
// empty, "N/A" and "null" fields become zero, as do unparsable values.
func parseAmount(v string) decimal.Decimal {
	cleaned := cleanString(v)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	if cleaned == "" || cleaned == "N/A" || cleaned == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
