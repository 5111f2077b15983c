package analysis

import (
	"fmt"
	"math"
	"sort"

	"FinBoard/internal/domain/models"
)

const (
	// pivotWindow is the half-width of the neighborhood a pivot must be the
	// extremum of.
	pivotWindow = 10

	// bandWindow is the lookback for the support/resistance shading band.
	bandWindow = 30

	// patternWindow is the lookback for pattern classification, split into
	// two equal halves.
	patternWindow = 10

	// trendWindow is the trailing-mean lookback for the trend label.
	trendWindow = 20

	// patternThreshold is the relative half-average divergence beyond which
	// a series counts as trending rather than range-bound.
	patternThreshold = 0.02

	// maxLevels caps the reported support and resistance levels.
	maxLevels = 2
)

// MovingAverage computes a simple trailing mean per position. Positions with
// fewer than period preceding points are nil, never a partial-window average.
func MovingAverage(closes []float64, period int) []*float64 {
	out := make([]*float64, len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	var sum float64
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			avg := sum / float64(period)
			out[i] = &avg
		}
	}
	return out
}

// PivotLevels finds support and resistance pivots by neighborhood extremum:
// an interior point is a support pivot when it equals the minimum of its
// surrounding 2W-point neighborhood, a resistance pivot when it equals the
// maximum. A flat neighborhood can satisfy both. Values are deduplicated and
// the most recent maxLevels of each kept, nearest first.
func PivotLevels(closes []float64) (supports, resistances []float64) {
	w := pivotWindow
	if len(closes) < 2*w+1 {
		return nil, nil
	}

	var supPivots, resPivots []float64
	for i := w; i < len(closes)-w; i++ {
		lo, hi := closes[i], closes[i]
		for j := i - w; j <= i+w; j++ {
			lo = math.Min(lo, closes[j])
			hi = math.Max(hi, closes[j])
		}
		if closes[i] == lo {
			supPivots = append(supPivots, closes[i])
		}
		if closes[i] == hi {
			resPivots = append(resPivots, closes[i])
		}
	}

	return lastUnique(supPivots, maxLevels), lastUnique(resPivots, maxLevels)
}

// lastUnique keeps the n most recent distinct values, most recent first.
func lastUnique(values []float64, n int) []float64 {
	var out []float64
	seen := make(map[float64]bool)
	for i := len(values) - 1; i >= 0 && len(out) < n; i-- {
		if !seen[values[i]] {
			seen[values[i]] = true
			out = append(out, values[i])
		}
	}
	return out
}

// PercentileLevels is the alternate level estimator used when the series is
// too short for pivot detection: supports at the 10th and 20th percentiles of
// the sorted closes, resistances at the 90th and 80th. Each list leads with
// the outermost level, so supports ascend while resistances descend. That
// keeps both lists symmetric around the price action rather than uniformly
// sorted.
func PercentileLevels(closes []float64) (supports, resistances []float64) {
	if len(closes) == 0 {
		return nil, nil
	}

	sorted := append([]float64(nil), closes...)
	sort.Float64s(sorted)

	at := func(pct float64) float64 {
		idx := int(pct * float64(len(sorted)-1))
		return sorted[idx]
	}
	return []float64{at(0.10), at(0.20)}, []float64{at(0.90), at(0.80)}
}

// Band returns the min/max range of the trailing bandWindow closes. It is a
// shading aid, not a precise level estimate.
func Band(closes []float64) models.SRBand {
	if len(closes) == 0 {
		return models.SRBand{}
	}

	window := closes
	if len(window) > bandWindow {
		window = window[len(window)-bandWindow:]
	}

	lo, hi := window[0], window[0]
	for _, c := range window[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return models.SRBand{Support: lo, Resistance: hi}
}

// ClassifyPattern splits the last patternWindow closes into two halves and
// compares their means. A second half more than patternThreshold above the
// first is an ascending channel, more than patternThreshold below a
// descending one, anything else range-bound.
func ClassifyPattern(closes []float64) string {
	if len(closes) < patternWindow {
		return models.PatternConsolidation
	}

	recent := closes[len(closes)-patternWindow:]
	half := patternWindow / 2
	older := mean(recent[:half])
	newer := mean(recent[half:])

	if older == 0 {
		return models.PatternConsolidation
	}
	switch diff := (newer - older) / older; {
	case diff > patternThreshold:
		return models.PatternAscending
	case diff < -patternThreshold:
		return models.PatternDescending
	default:
		return models.PatternConsolidation
	}
}

// Trend labels the series bullish when the current price sits above the mean
// of the trailing trendWindow closes, bearish otherwise.
func Trend(closes []float64) string {
	if len(closes) == 0 {
		return models.TrendBearish
	}

	window := closes
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}
	if closes[len(closes)-1] > mean(window) {
		return models.TrendBullish
	}
	return models.TrendBearish
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Analyze computes the full technical picture for a close series. Pivot
// detection needs 2W+1 points; shorter series fall back to percentile levels.
func Analyze(series models.Series) models.TechnicalAnalysis {
	closes := series.Closes()

	ta := models.TechnicalAnalysis{
		Symbol:  series.Symbol,
		Pattern: ClassifyPattern(closes),
		Trend:   Trend(closes),
		SRBand:  Band(closes),
	}
	if len(closes) == 0 {
		return ta
	}
	ta.CurrentPrice = closes[len(closes)-1]

	ta.Supports, ta.Resistances = PivotLevels(closes)
	if len(ta.Supports) == 0 && len(ta.Resistances) == 0 {
		ta.Supports, ta.Resistances = PercentileLevels(closes)
	}

	ma50 := MovingAverage(closes, 50)
	ma200 := MovingAverage(closes, 200)
	ta.MA50 = ma50[len(ma50)-1]
	ta.MA200 = ma200[len(ma200)-1]

	ta.Signals = signals(ta)
	return ta
}

func signals(ta models.TechnicalAnalysis) []string {
	out := []string{
		fmt.Sprintf("Price action forming %s pattern", ta.Pattern),
	}
	if len(ta.Supports) > 0 {
		out = append(out, fmt.Sprintf("Support levels identified at $%s", joinLevels(ta.Supports)))
	}
	if len(ta.Resistances) > 0 {
		out = append(out, fmt.Sprintf("Resistance levels at $%s", joinLevels(ta.Resistances)))
	}
	if ta.MA50 != nil && ta.MA200 != nil {
		if *ta.MA50 > *ta.MA200 {
			out = append(out, "50-day average above 200-day average")
		} else {
			out = append(out, "50-day average below 200-day average")
		}
	}
	return out
}

func joinLevels(levels []float64) string {
	s := ""
	for i, l := range levels {
		if i > 0 {
			s += ", $"
		}
		s += fmt.Sprintf("%.2f", l)
	}
	return s
}
