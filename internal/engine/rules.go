package engine

import (
	"math"
	"time"

	"sell-monitor/internal/config"
	"sell-monitor/internal/models"
)

// deadZonePct is the return band treated as noise: moves inside it always
// yield Hold, ahead of every other rule, so advice cannot flap around a
// zero return.
const deadZonePct = 0.1

// ReturnPct computes the unrounded percentage return of a position at the
// given price. BuyPrice must be positive.
func ReturnPct(buyPrice, currentPrice float64) float64 {
	return (currentPrice - buyPrice) / buyPrice * 100
}

// Evaluate maps a position snapshot and quote to an advisory state. The
// rules are checked in fixed priority order and the first match wins:
// dead zone, target met, stop loss, trailing stop, below 20-day MA, max
// hold period, then Hold. Absolute P&L bounds outrank the relative signals,
// which outrank the time-based fallback.
//
// The caller filters unavailable quotes; Evaluate assumes quote is valid.
func Evaluate(pos models.Position, quote *models.Quote, criteria config.ExitConfig, now time.Time) (float64, models.Advice) {
	returnPct := ReturnPct(pos.BuyPrice, quote.Price)
	daysHeld := pos.DaysHeld(now)

	trailingHigh := math.Max(quote.Price, pos.BuyPrice)
	trailingTrigger := trailingHigh * (1 - criteria.TrailingStopPct/100)

	var advice models.Advice
	switch {
	case math.Abs(returnPct) < deadZonePct:
		advice = models.AdviceHold
	case returnPct >= criteria.TargetReturnPct:
		advice = models.AdviceTargetMet
	case returnPct <= -criteria.StopLossPct:
		advice = models.AdviceStopLoss
	case quote.Price < trailingTrigger && returnPct > deadZonePct:
		advice = models.AdviceTrailingStop
	case quote.Price < quote.MA20 && returnPct > deadZonePct:
		advice = models.AdviceBelowMA
	case daysHeld >= criteria.MaxHoldDays:
		advice = models.AdviceMaxHoldPeriod
	default:
		advice = models.AdviceHold
	}

	return returnPct, advice
}
