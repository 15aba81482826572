package engine

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"sell-monitor/internal/config"
	"sell-monitor/internal/models"
)

// Property: high-water marks are monotonically non-decreasing. Feeding any
// sequence of observations leaves the mark at the running maximum, and no
// later observation can move it down.
func TestProperty_HighWaterMarksNeverDecrease(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	observationsGen := gen.SliceOfN(20, gen.Float64Range(-50, 200))

	properties.Property("mark equals the running maximum", prop.ForAll(
		func(returns []float64) bool {
			tracker := NewHighWaterTracker()

			runningMax := math.Inf(-1)
			for _, r := range returns {
				price := 100 + r
				mark := tracker.Update("TEST", r, price)
				if r > runningMax {
					runningMax = r
				}
				if mark.MaxReturnPct != runningMax {
					return false
				}
				if mark.MaxPrice != 100+runningMax {
					return false
				}
			}
			return true
		},
		observationsGen,
	))

	properties.TestingRun(t)
}

// Property: the max-reduce is order independent. Any permutation of the same
// observations ends at the same mark.
func TestProperty_HighWaterMarksOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	observationsGen := gen.SliceOfN(10, gen.Float64Range(-50, 200))

	properties.Property("forward and reverse feeds converge", prop.ForAll(
		func(returns []float64) bool {
			if len(returns) == 0 {
				return true
			}

			forward := NewHighWaterTracker()
			for _, r := range returns {
				forward.Update("TEST", r, 100+r)
			}

			reverse := NewHighWaterTracker()
			for i := len(returns) - 1; i >= 0; i-- {
				reverse.Update("TEST", returns[i], 100+returns[i])
			}

			f, _ := forward.Get("TEST")
			b, _ := reverse.Get("TEST")
			return f.MaxReturnPct == b.MaxReturnPct && f.MaxPrice == b.MaxPrice
		},
		observationsGen,
	))

	properties.TestingRun(t)
}

// Property: evaluation always lands in exactly one of the six advisory
// states, and a return inside the dead zone is always Hold no matter how the
// exit criteria are tuned or how long the position has been held.
func TestProperty_EvaluateAdviceStates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	known := map[models.Advice]bool{
		models.AdviceHold:          true,
		models.AdviceTargetMet:     true,
		models.AdviceStopLoss:      true,
		models.AdviceTrailingStop:  true,
		models.AdviceBelowMA:       true,
		models.AdviceMaxHoldPeriod: true,
	}

	properties.Property("advice is one of the six states", prop.ForAll(
		func(buyPrice, price, ma20 float64, daysHeld int) bool {
			pos := models.Position{
				Ticker:   "TEST",
				BuyDate:  now.AddDate(0, 0, -daysHeld),
				BuyPrice: buyPrice,
			}
			quote := &models.Quote{Ticker: "TEST", Price: price, MA20: ma20}

			_, advice := Evaluate(pos, quote, defaultCriteria(), now)
			return known[advice]
		},
		gen.Float64Range(1, 1000),
		gen.Float64Range(1, 1000),
		gen.Float64Range(1, 1000),
		gen.IntRange(0, 500),
	))

	properties.Property("dead zone always holds", prop.ForAll(
		func(buyPrice, returnPct, target, stop, trailing float64, maxHold, daysHeld int) bool {
			price := buyPrice * (1 + returnPct/100)
			pos := models.Position{
				Ticker:   "TEST",
				BuyDate:  now.AddDate(0, 0, -daysHeld),
				BuyPrice: buyPrice,
			}
			quote := &models.Quote{Ticker: "TEST", Price: price, MA20: price * 2}
			criteria := config.ExitConfig{
				TargetReturnPct: target,
				StopLossPct:     stop,
				TrailingStopPct: trailing,
				MaxHoldDays:     maxHold,
			}

			got, advice := Evaluate(pos, quote, criteria, now)
			if math.Abs(got) >= deadZonePct {
				// Float reconstruction pushed the return out of the band;
				// nothing to assert.
				return true
			}
			return advice == models.AdviceHold
		},
		gen.Float64Range(10, 1000),
		gen.Float64Range(-0.099, 0.099),
		gen.Float64Range(0.5, 100),
		gen.Float64Range(0.5, 100),
		gen.Float64Range(0.5, 100),
		gen.IntRange(1, 365),
		gen.IntRange(0, 5000),
	))

	properties.TestingRun(t)
}

// Property: the alert log is append only. Running cycles only ever grows it,
// and previously recorded entries are never rewritten.
func TestProperty_AlertLogAppendOnly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	ts := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	properties.Property("length never shrinks and prefixes are stable", prop.ForAll(
		func(returns []float64) bool {
			log := NewAlertLog()

			var firstTicker string
			prevLen := 0
			for i, r := range returns {
				log.Record(ts.Add(time.Duration(i)*time.Minute), "TEST", models.AdviceStopLoss, 100, 100+r, r)
				if log.Len() != prevLen+1 {
					return false
				}
				prevLen = log.Len()

				snap := log.Snapshot()
				if i == 0 {
					firstTicker = snap[0].Ticker
				}
				if snap[0].Ticker != firstTicker {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(15, gen.Float64Range(-50, 50)),
	))

	properties.TestingRun(t)
}
