package insight

import (
	"math"

	"fit-insights/internal/domain/insight"
)

// Direction classifies the current value against its baseline. Nil when
// either side is missing or the baseline is zero (division guard). Changes
// inside the threshold band are stable; outside it the sign decides up/down,
// and inverse flips the label for metrics where lower is better (resting
// heart rate).
func Direction(current, baseline *float64, thresholdPct float64, inverse bool) *insight.DirectionIndicator {
	if current == nil || baseline == nil || *baseline == 0 {
		return nil
	}

	changePct := (*current - *baseline) / *baseline * 100

	dir := insight.DirectionStable
	if math.Abs(changePct) >= thresholdPct {
		if changePct > 0 {
			dir = insight.DirectionUp
		} else {
			dir = insight.DirectionDown
		}
		if inverse {
			if dir == insight.DirectionUp {
				dir = insight.DirectionDown
			} else {
				dir = insight.DirectionUp
			}
		}
	}

	return &insight.DirectionIndicator{
		Direction: dir,
		ChangePct: round1(changePct),
		Baseline:  *baseline,
		Current:   *current,
	}
}
