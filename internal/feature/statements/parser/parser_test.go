package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleExport mirrors the layout of a real brokerage CSV export: a
// per-currency financial summary followed by the holdings table grouped
// by currency.
const sampleExport = `Holdings Export
As of August 22, 2026

Currency,Cash,Investments,Total (CAD),Exchange Rate to CAD
CAD,"1,250.50","98,749.50","100,000.00",1
USD,500.00,"9,500.00","10,000.00",1.35

,Product,Symbol,Name,Quantity,Last Price,Currency,Change $,Change %,Total Book Cost,Total Market Value,Unrealized Gain/Loss $,Unrealized Gain/Loss %,Average Cost,Annual Dividend Amount
CAD Holdings,Common Shares,RY,"ROYAL BANK OF CANADA",10,120.50,CAD,0.75,0.62%,"1,100.00","1,205.00",105.00,9.55%,110.00,5.52
,ETFs and ETNs,XIC,"ISHARES CORE S&P/TSX CAPPED COMPOSITE",100,35.25,CAD,-0.10,-0.28%,"3,200.00","3,525.00",325.00,10.16%,32.00,0.98
USD Holdings,Common Shares,AAPL,"APPLE INC",4,200.00,USD,1.25,0.63%,700.00,800.00,100.00,14.29%,175.00,0.96
,,,"Pending activity",,,,,,,,,,,
Important Information
This report is provided for information purposes only.
`

func TestParse(t *testing.T) {
	t.Parallel()

	st, err := Parse(strings.NewReader(sampleExport), "49815000")
	require.NoError(t, err)

	t.Run("financial summary", func(t *testing.T) {
		require.Len(t, st.Cash, 2)

		cad := st.Cash[0]
		assert.Equal(t, "49815000", cad.Account)
		assert.Equal(t, "CAD", cad.Currency)
		assert.InDelta(t, 1250.50, cad.Cash, 0.001)
		assert.InDelta(t, 98749.50, cad.Investments, 0.001)
		assert.InDelta(t, 100000.00, cad.Total, 0.001)
		assert.InDelta(t, 1.0, cad.ExchangeRate, 0.0001)
		// CAD rows need no conversion.
		assert.InDelta(t, cad.Cash, cad.CashCAD, 0.001)
		assert.InDelta(t, cad.Total, cad.TotalCAD, 0.001)

		usd := st.Cash[1]
		assert.Equal(t, "USD", usd.Currency)
		assert.InDelta(t, 1.35, usd.ExchangeRate, 0.0001)
		assert.InDelta(t, 675.00, usd.CashCAD, 0.001)
		assert.InDelta(t, 12825.00, usd.InvestmentsCAD, 0.001)
		assert.InDelta(t, 13500.00, usd.TotalCAD, 0.001)
	})

	t.Run("holdings", func(t *testing.T) {
		require.Len(t, st.Holdings, 3)

		ry := st.Holdings[0]
		assert.Equal(t, "49815000", ry.Account)
		assert.Equal(t, "Common Shares", ry.Product)
		assert.Equal(t, "RY", ry.Symbol)
		assert.Equal(t, "ROYAL BANK OF CANADA", ry.Name)
		assert.EqualValues(t, 10, ry.Quantity)
		assert.InDelta(t, 120.50, ry.LastPrice, 0.001)
		assert.Equal(t, "CAD", ry.Currency)
		assert.InDelta(t, 1100.00, ry.BookCost, 0.001)
		assert.InDelta(t, 1205.00, ry.MarketValue, 0.001)
		assert.InDelta(t, 105.00, ry.GainLoss, 0.001)
		assert.Equal(t, "9.55%", ry.GainLossPct)
		assert.InDelta(t, 5.52, ry.AnnualDividend, 0.001)

		xic := st.Holdings[1]
		assert.Equal(t, "ETFs and ETNs", xic.Product)
		assert.Equal(t, "XIC", xic.Symbol)
		assert.True(t, xic.IsETF())
	})

	t.Run("USD holdings converted to CAD", func(t *testing.T) {
		aapl := st.Holdings[2]
		assert.Equal(t, "AAPL", aapl.Symbol)
		assert.Equal(t, "CAD", aapl.Currency)
		assert.InDelta(t, 270.00, aapl.LastPrice, 0.001)   // 200.00 * 1.35
		assert.InDelta(t, 945.00, aapl.BookCost, 0.001)    // 700.00 * 1.35
		assert.InDelta(t, 1080.00, aapl.MarketValue, 0.001)
		assert.InDelta(t, 135.00, aapl.GainLoss, 0.001)
		assert.InDelta(t, 236.25, aapl.AverageCost, 0.001)
	})
}

func TestParse_SkipsRowsWithoutSymbol(t *testing.T) {
	t.Parallel()

	st, err := Parse(strings.NewReader(sampleExport), "49815000")
	require.NoError(t, err)

	for _, h := range st.Holdings {
		assert.NotEmpty(t, h.Symbol)
	}
}

// Not parallel: it swaps the default logger to capture the skip line.
func TestParse_LogsSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	_, err := Parse(strings.NewReader(sampleExport), "49815000")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "skipping holdings row without symbol")
	assert.Contains(t, buf.String(), "Pending activity")
}

func TestParse_USDWithoutRateKeepsCurrency(t *testing.T) {
	t.Parallel()

	// No summary section, so no USD rate is available.
	input := `,Product,Symbol,Name,Quantity,Last Price,Currency,Change $,Change %,Total Book Cost,Total Market Value,Unrealized Gain/Loss $,Unrealized Gain/Loss %,Average Cost,Annual Dividend Amount
USD Holdings,Common Shares,MSFT,"MICROSOFT CORP",2,400.00,USD,0.00,0.00%,700.00,800.00,100.00,14.29%,350.00,3.00
`

	st, err := Parse(strings.NewReader(input), "123")
	require.NoError(t, err)
	require.Len(t, st.Holdings, 1)

	// Amounts stay in USD when no rate was seen.
	assert.Equal(t, "USD", st.Holdings[0].Currency)
	assert.InDelta(t, 400.00, st.Holdings[0].LastPrice, 0.001)
}

func TestParse_StripsBOM(t *testing.T) {
	t.Parallel()

	input := "\uFEFFCurrency,Cash,Investments,Total (CAD),Exchange Rate to CAD\nCAD,100.00,900.00,\"1,000.00\",1\n"

	st, err := Parse(strings.NewReader(input), "123")
	require.NoError(t, err)
	require.Len(t, st.Cash, 1)
	assert.InDelta(t, 100.00, st.Cash[0].Cash, 0.001)
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	st, err := Parse(strings.NewReader(""), "123")
	require.NoError(t, err)
	assert.Empty(t, st.Holdings)
	assert.Empty(t, st.Cash)
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain number", "120.50", "120.5"},
		{"thousands separator", `"1,205.00"`, "1205"},
		{"dollar sign", "$99.99", "99.99"},
		{"negative", "-0.10", "-0.1"},
		{"empty", "", "0"},
		{"n/a", "N/A", "0"},
		{"null", "null", "0"},
		{"garbage", "abc", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, parseAmount(tt.input).Equal(want),
				"parseAmount(%q) = %s, want %s", tt.input, parseAmount(tt.input), want)
		})
	}
}

func TestCleanString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ROYAL BANK", cleanString(`  "ROYAL BANK" `))
	assert.Equal(t, "RY", cleanString("RY"))
	assert.Equal(t, "", cleanString(`""`))
}
