package parser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/holdings/domain/entity"
)

// Statement is the parsed content of one export file.
type Statement struct {
	Account  string
	Holdings []entity.Holding
	Cash     []entity.CashBalance
}

// holdings section column layout (0-based). Column 0 is the currency
// grouping marker ("CAD Holdings" / "USD Holdings") on the first row of
// each group and empty on subsequent rows.
const (
	colProduct        = 1
	colSymbol         = 2
	colName           = 3
	colQuantity       = 4
	colLastPrice      = 5
	colCurrency       = 6
	colChangeDollar   = 7
	colChangePercent  = 8
	colBookCost       = 9
	colMarketValue    = 10
	colGainLoss       = 11
	colGainLossPct    = 12
	colAverageCost    = 13
	colAnnualDividend = 14
)

// minHoldingColumns is the shortest row still treated as a holding.
const minHoldingColumns = 15

// ParseFile opens and parses one export file. The account number comes
// from the filename, not the file content.
func ParseFile(f StatementFile) (*Statement, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("failed to close statement file", "path", f.Path, "error", err)
		}
	}()
	return Parse(file, f.Account)
}

// Parse reads an export stream and splits it into its financial summary
// and holdings sections. Rows that cannot be interpreted are logged and
// skipped; a file without recognizable sections yields an empty Statement.
func Parse(r io.Reader, account string) (*Statement, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	st := &Statement{Account: account}
	rates := map[string]decimal.Decimal{}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		switch {
		case strings.HasPrefix(line, "Currency,Cash,Investments"):
			i = st.parseSummarySection(lines, i, rates)
		case strings.Contains(line, "Product,Symbol,Name"):
			i = st.parseHoldingsSection(lines, i, rates)
		default:
			i++
		}
	}

	return st, nil
}

// readLines loads the whole export, stripping a UTF-8 BOM if present.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], "\uFEFF")
	}
	return lines, nil
}

// splitRow parses a single CSV line, handling quoted fields.
func splitRow(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	row, err := r.Read()
	if err != nil {
		return strings.Split(line, ",")
	}
	return row
}

// parseSummarySection consumes the financial summary rows starting at the
// header at index i and returns the index of the first unconsumed line.
// Exchange rates found here feed the holdings section's USD conversion.
func (st *Statement) parseSummarySection(lines []string, i int, rates map[string]decimal.Decimal) int {
	headers := splitRow(strings.TrimSpace(lines[i]))

	// The exchange rate is always the last column; the total column is
	// located by header name because its position varies between exports.
	totalCol := -1
	for idx, h := range headers {
		if strings.Contains(h, "Total") {
			totalCol = idx
		}
	}

	i++
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, ",Product") || strings.HasPrefix(line, "Important Information") {
			break
		}

		row := splitRow(line)
		if len(row) >= 4 && row[0] != "" {
			currency := cleanString(row[0])

			rate := parseAmount(row[len(row)-1])
			if rate.IsZero() {
				rate = decimal.NewFromInt(1)
			}

			total := decimal.Zero
			if totalCol >= 0 && len(row) > totalCol {
				total = parseAmount(row[totalCol])
			}
			cash := parseAmount(row[1])
			investments := parseAmount(row[2])

			cb := entity.CashBalance{
				Account:      st.Account,
				Currency:     currency,
				Cash:         roundFloat(cash),
				Investments:  roundFloat(investments),
				Total:        roundFloat(total),
				ExchangeRate: roundRate(rate),
			}
			if strings.EqualFold(currency, "CAD") {
				cb.CashCAD = cb.Cash
				cb.InvestmentsCAD = cb.Investments
				cb.TotalCAD = cb.Total
			} else {
				cb.CashCAD = roundFloat(cash.Mul(rate))
				cb.InvestmentsCAD = roundFloat(investments.Mul(rate))
				cb.TotalCAD = roundFloat(total.Mul(rate))
			}
			st.Cash = append(st.Cash, cb)

			if currency == "USD" {
				rates["USD"] = rate
			}
		}
		i++
	}
	return i
}

// parseHoldingsSection consumes the holdings table starting at the header
// at index i and returns the index of the first unconsumed line. USD rows
// are converted to CAD using the rate captured from the summary section.
func (st *Statement) parseHoldingsSection(lines []string, i int, rates map[string]decimal.Decimal) int {
	i++
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "Important Information") || strings.HasPrefix(line, "Disclaimer") {
			break
		}

		row := splitRow(line)
		if len(row) < minHoldingColumns || cleanString(row[colSymbol]) == "" {
			slog.Debug("skipping holdings row without symbol", "account", st.Account, "row", line)
			i++
			continue
		}

		isGroupRow := row[0] == "CAD Holdings" || row[0] == "USD Holdings"
		if !isGroupRow && (cleanString(row[colProduct]) == "" || cleanString(row[colSymbol]) == "") {
			i++
			continue
		}

		h := entity.Holding{
			Account:       st.Account,
			Product:       cleanString(row[colProduct]),
			Symbol:        cleanString(row[colSymbol]),
			Name:          cleanString(row[colName]),
			Quantity:      parseAmount(row[colQuantity]).IntPart(),
			Currency:      cleanString(row[colCurrency]),
			ChangePercent: cleanString(row[colChangePercent]),
			GainLossPct:   cleanString(row[colGainLossPct]),
		}

		price := parseAmount(row[colLastPrice])
		change := parseAmount(row[colChangeDollar])
		bookCost := parseAmount(row[colBookCost])
		marketValue := parseAmount(row[colMarketValue])
		gainLoss := parseAmount(row[colGainLoss])
		avgCost := parseAmount(row[colAverageCost])
		dividend := parseAmount(row[colAnnualDividend])

		// Convert USD amounts to CAD when the summary provided a rate.
		if h.Currency == "USD" {
			if rate, ok := rates["USD"]; ok {
				price = price.Mul(rate)
				change = change.Mul(rate)
				bookCost = bookCost.Mul(rate)
				marketValue = marketValue.Mul(rate)
				gainLoss = gainLoss.Mul(rate)
				avgCost = avgCost.Mul(rate)
				dividend = dividend.Mul(rate)
				h.Currency = "CAD"
			}
		}

		h.LastPrice = roundFloat(price)
		h.ChangeDollar = roundFloat(change)
		h.BookCost = roundFloat(bookCost)
		h.MarketValue = roundFloat(marketValue)
		h.GainLoss = roundFloat(gainLoss)
		h.AverageCost = roundFloat(avgCost)
		h.AnnualDividend = roundFloat(dividend)

		st.Holdings = append(st.Holdings, h)
		i++
	}
	return i
}

// roundFloat rounds a decimal amount to cents and returns it as float64.
func roundFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// roundRate keeps four decimal places for exchange rates.
func roundRate(d decimal.Decimal) float64 {
	f, _ := d.Round(4).Float64()
	return f
}
