// ABOUTME: Per-session aggregates and trend classification.
// ABOUTME: Builds the estimated 1RM series and compares recent against earlier sessions.
package progress

// Trend classifies how an exercise has moved over recent sessions.
type Trend string

const (
	Progressing      Trend = "progressing"
	Stalling         Trend = "stalling"
	Declining        Trend = "declining"
	InsufficientData Trend = "insufficient_data"
)

const (
	// minTrendValues is the shortest series a trend is computed for.
	minTrendValues = 4
	// trendWindow is the size of the recent and the prior window.
	trendWindow = 3
	// trendThreshold is the relative change that separates a trend from a stall.
	trendThreshold = 0.03
)

// ClassifyTrend compares the average of the three most recent values with
// the average of the up to three values before them. values are ordered most
// recent first.
func ClassifyTrend(values []float64) Trend {
	change, ok := TrendChange(values)
	if !ok {
		return InsufficientData
	}
	switch {
	case change > trendThreshold:
		return Progressing
	case change < -trendThreshold:
		return Declining
	default:
		return Stalling
	}
}

// TrendChange returns the relative change between the recent and the prior
// window, e.g. 0.22 for +22%. ok is false when there is not enough data or
// the prior average is zero.
func TrendChange(values []float64) (change float64, ok bool) {
	if len(values) < minTrendValues {
		return 0, false
	}

	recent := values[:trendWindow]
	prior := values[trendWindow:min(len(values), 2*trendWindow)]
	if len(prior) == 0 {
		return 0, false
	}

	priorAvg := average(prior)
	if priorAvg == 0 {
		return 0, false
	}
	return (average(recent) - priorAvg) / priorAvg, true
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
