// Package positions loads held positions from CSV input.
package positions

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"sell-monitor/internal/errors"
	"sell-monitor/internal/models"
)

// record mirrors one CSV row. Dates are parsed separately so a bad value can
// be reported with its row number.
type record struct {
	Ticker   string  `csv:"Ticker"`
	BuyDate  string  `csv:"Buy Date"`
	BuyPrice float64 `csv:"Buy Price"`
}

// Accepted buy-date layouts, tried in order. The dd-Mon-yy form is the
// primary layout used by broker contract notes.
var dateLayouts = []string{
	"02-Jan-06",
	"02-Jan-2006",
	"2006-01-02",
	time.RFC3339,
}

// LoadFile reads positions from a CSV file. Any malformed row fails the
// whole load; the caller must not run a cycle with a partial position set.
func LoadFile(path string) ([]models.Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading positions file %s", path)
	}
	return Parse(data)
}

// Parse parses CSV bytes into positions. Header names are matched after
// trimming surrounding whitespace.
func Parse(data []byte) ([]models.Position, error) {
	data = trimHeader(data)

	var records []record
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, errors.Wrap(err, "parsing positions CSV")
	}
	if len(records) == 0 {
		return nil, errors.ErrNoPositions
	}

	out := make([]models.Position, 0, len(records))
	for i, r := range records {
		row := i + 2 // 1-based, after the header line
		ticker := strings.ToUpper(strings.TrimSpace(r.Ticker))
		if ticker == "" {
			return nil, errors.NewPositionError(row, "", "missing ticker", nil)
		}
		if r.BuyPrice <= 0 {
			return nil, errors.NewPositionError(row, ticker,
				fmt.Sprintf("buy price must be positive, got %.4f", r.BuyPrice), nil)
		}
		buyDate, err := parseDate(r.BuyDate)
		if err != nil {
			return nil, errors.NewPositionError(row, ticker, "unparseable buy date", err)
		}
		out = append(out, models.Position{
			Ticker:   ticker,
			BuyDate:  buyDate,
			BuyPrice: r.BuyPrice,
		})
	}
	return out, nil
}

// Sample returns the built-in demo positions used when no CSV is supplied.
func Sample() []models.Position {
	mustDate := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []models.Position{
		{Ticker: "AAPL", BuyDate: mustDate("2024-12-01"), BuyPrice: 150.00},
		{Ticker: "MSFT", BuyDate: mustDate("2025-01-15"), BuyPrice: 280.00},
		{Ticker: "GOOGL", BuyDate: mustDate("2025-02-20"), BuyPrice: 2700.00},
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// trimHeader trims whitespace around the column names in the first line so
// "Buy Price " and " Ticker" still match.
func trimHeader(data []byte) []byte {
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		idx = len(data)
	}
	header := strings.TrimRight(string(data[:idx]), "\r")
	cols := strings.Split(header, ",")
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
	}
	var rest []byte
	if idx < len(data) {
		rest = data[idx:]
	}
	return append([]byte(strings.Join(cols, ",")), rest...)
}
