package namerules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
)

func TestClassifier_ClassifyName(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	tests := []struct {
		name       string
		symbol     string
		fundName   string
		wantSector string
		wantRegion string
		wantOK     bool
	}{
		{
			name:       "canadian bond fund",
			symbol:     "ZAG",
			fundName:   "BMO AGGREGATE BOND INDEX ETF",
			wantSector: "Fixed Income",
			wantRegion: "Canada",
			wantOK:     true,
		},
		{
			name:       "US index fund",
			symbol:     "VFV",
			fundName:   "VANGUARD S&P 500 INDEX ETF",
			wantSector: "Multi-Sector Equity",
			wantRegion: "United States",
			wantOK:     true,
		},
		{
			name:       "REIT fund",
			symbol:     "XRE",
			fundName:   "ISHARES S&P/TSX CAPPED REIT INDEX",
			wantSector: "Real Estate",
			wantRegion: "Canada",
			wantOK:     true,
		},
		{
			name:       "emerging markets equity",
			symbol:     "VEE",
			fundName:   "VANGUARD FTSE EMERGING MARKETS ALL CAP INDEX",
			wantSector: "Multi-Sector Equity",
			wantRegion: "Europe", // FTSE matches the Europe keywords first
			wantOK:     true,
		},
		{
			name:       "technology fund without region",
			symbol:     "TEC",
			fundName:   "TD GLOBAL TECHNOLOGY LEADERS",
			wantSector: "Information Technology",
			wantRegion: "Global",
			wantOK:     true,
		},
		{
			name:     "no keywords at all",
			symbol:   "XYZ",
			fundName: "SOMETHING ENTIRELY ELSE",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := c.ClassifyName(tt.symbol, tt.fundName)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantSector, got.Sector)
			assert.Equal(t, tt.wantRegion, got.Region)
			assert.Equal(t, entity.SourceNameRules, got.Source)
			assert.Equal(t, nameRuleConfidence, got.Confidence)
		})
	}
}

func TestClassifier_ClassifyName_RegionOnly(t *testing.T) {
	t.Parallel()

	// A region keyword alone is still a usable partial classification.
	got, ok := NewClassifier().ClassifyName("XCN", "CANADIAN LARGE CAP FUND")
	require.True(t, ok)

	assert.Equal(t, "Canada", got.Region)
	assert.Equal(t, "Unknown", got.Sector)
	assert.True(t, got.Confident(), "a resolved region alone clears the threshold")
}
