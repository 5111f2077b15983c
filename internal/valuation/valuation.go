package valuation

import (
	"math"

	"FinBoard/internal/domain/models"
)

// Bucket thresholds over the mean of present sub-scores.
const (
	undervaluedFloor = 70
	overvaluedCeil   = 40
)

// Score classifies an overview as undervalued, fairly valued or overvalued.
// Each present metric contributes an independent saturating score term;
// absent metrics contribute nothing and do not dilute the average. Scoring
// the same overview twice yields the same result.
func Score(o models.FundamentalsOverview) models.ValuationResult {
	var score float64
	var subScores []float64

	if o.PERatio != nil && *o.PERatio > 0 {
		pe := *o.PERatio
		score += math.Max(0, 20-pe)
		switch {
		case pe < 15:
			subScores = append(subScores, 100)
		case pe <= 25:
			subScores = append(subScores, 60)
		default:
			subScores = append(subScores, 20)
		}
	}

	if o.PEGRatio != nil && *o.PEGRatio > 0 {
		peg := *o.PEGRatio
		score += math.Max(0, 3-peg) * 10
		switch {
		case peg < 1:
			subScores = append(subScores, 100)
		case peg <= 2:
			subScores = append(subScores, 60)
		default:
			subScores = append(subScores, 20)
		}
	}

	if o.PriceToBook != nil && *o.PriceToBook > 0 {
		pb := *o.PriceToBook
		score += math.Max(0, 5-pb) * 4
		switch {
		case pb < 1:
			subScores = append(subScores, 100)
		case pb <= 3:
			subScores = append(subScores, 60)
		default:
			subScores = append(subScores, 20)
		}
	}

	if o.ProfitMargin != nil {
		m := *o.ProfitMargin
		score += math.Max(0, m*100)
		switch {
		case m > 0.20:
			subScores = append(subScores, 100)
		case m >= 0.10:
			subScores = append(subScores, 75)
		case m >= 0:
			subScores = append(subScores, 50)
		default:
			subScores = append(subScores, 10)
		}
	}

	bucket := models.BucketFair
	if len(subScores) > 0 {
		var sum float64
		for _, s := range subScores {
			sum += s
		}
		switch avg := sum / float64(len(subScores)); {
		case avg >= undervaluedFloor:
			bucket = models.BucketUndervalued
		case avg < overvaluedCeil:
			bucket = models.BucketOvervalued
		}
	}

	return models.ValuationResult{
		Symbol:       o.Symbol,
		Score:        score,
		Bucket:       bucket,
		Undervalued:  bucket == models.BucketUndervalued,
		EarningsGood: o.QuarterlyEarningsGrowthYoY != nil && *o.QuarterlyEarningsGrowthYoY > 0.1,
		LowDebt:      o.DebtToEquity != nil && *o.DebtToEquity < 1,
		Overview:     o,
	}
}
