package models

import "time"

// Advice is the advisory state produced for a position each cycle.
type Advice string

const (
	AdviceHold          Advice = "Hold"
	AdviceTargetMet     Advice = "Sell (Target Met)"
	AdviceStopLoss      Advice = "Sell (Stop Loss)"
	AdviceTrailingStop  Advice = "Sell (Trailing Stop)"
	AdviceBelowMA       Advice = "Sell (Below 20-Day MA)"
	AdviceMaxHoldPeriod Advice = "Sell (Max Hold Period)"
)

// IsSell reports whether the advice is any of the sell variants.
func (a Advice) IsSell() bool {
	return a != AdviceHold && a != ""
}

// ReportRow is one line of a cycle's report. Rows are transient and
// recomputed every cycle; display rounding happens in the CLI, not here.
type ReportRow struct {
	Ticker       string
	DaysHeld     int
	BuyPrice     float64
	CurrentPrice float64
	ReturnPct    float64
	MaxReturnPct float64
	MaxPrice     float64
	MA20         float64
	Advice       Advice
}

// CSVTime wraps time.Time so gocsv can serialize alert timestamps in a
// stable, second-resolution format.
type CSVTime struct {
	time.Time
}

const csvTimeLayout = "2006-01-02 15:04:05"

// MarshalCSV implements gocsv.TypeMarshaller.
func (t CSVTime) MarshalCSV() (string, error) {
	return t.Format(csvTimeLayout), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *CSVTime) UnmarshalCSV(s string) error {
	parsed, err := time.Parse(csvTimeLayout, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// AlertEntry is one historical sell event. Entries are append-only and are
// never mutated once recorded. Monetary fields are stored rounded to two
// decimals, matching the exported log.
type AlertEntry struct {
	Timestamp    CSVTime `csv:"Timestamp"`
	Ticker       string  `csv:"Ticker"`
	Advice       Advice  `csv:"Advice"`
	BuyPrice     float64 `csv:"Buy Price"`
	CurrentPrice float64 `csv:"Current Price"`
	ReturnPct    float64 `csv:"Return (%)"`
}
