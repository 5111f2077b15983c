package valuation_test

import (
	"testing"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/valuation"
	"FinBoard/pkg/util"

	"github.com/stretchr/testify/require"
)

func TestScoreUndervalued(t *testing.T) {
	o := models.FundamentalsOverview{
		Symbol:       "VAL",
		PERatio:      util.Ptr(10),
		PEGRatio:     util.Ptr(0.8),
		PriceToBook:  util.Ptr(1.5),
		ProfitMargin: util.Ptr(0.25),
	}

	res := valuation.Score(o)
	require.Equal(t, models.BucketUndervalued, res.Bucket)
	require.True(t, res.Undervalued)
	require.Greater(t, res.Score, 0.0)
	require.Equal(t, o, res.Overview, "raw metrics carried through")
}

func TestScoreOvervalued(t *testing.T) {
	o := models.FundamentalsOverview{
		Symbol:       "EXP",
		PERatio:      util.Ptr(40),
		PEGRatio:     util.Ptr(3.5),
		PriceToBook:  util.Ptr(8),
		ProfitMargin: util.Ptr(-0.05),
	}

	res := valuation.Score(o)
	require.Equal(t, models.BucketOvervalued, res.Bucket)
	require.False(t, res.Undervalued)
}

func TestScoreAbsentMetricsDoNotDilute(t *testing.T) {
	// Only PEG present and cheap: the average must not be dragged toward
	// fair by the missing metrics.
	o := models.FundamentalsOverview{Symbol: "ONE", PEGRatio: util.Ptr(0.5)}
	res := valuation.Score(o)
	require.Equal(t, models.BucketUndervalued, res.Bucket)
}

func TestScoreNoMetricsIsFair(t *testing.T) {
	res := valuation.Score(models.FundamentalsOverview{Symbol: "NONE"})
	require.Equal(t, models.BucketFair, res.Bucket)
	require.Zero(t, res.Score)
}

func TestScoreIdempotent(t *testing.T) {
	o := models.FundamentalsOverview{
		Symbol:       "IDEM",
		PERatio:      util.Ptr(18),
		PEGRatio:     util.Ptr(1.4),
		ProfitMargin: util.Ptr(0.12),
	}
	require.Equal(t, valuation.Score(o), valuation.Score(o))
}

func TestScoreFlags(t *testing.T) {
	o := models.FundamentalsOverview{
		Symbol:                     "FLG",
		QuarterlyEarningsGrowthYoY: util.Ptr(0.15),
		DebtToEquity:               util.Ptr(0.4),
	}
	res := valuation.Score(o)
	require.True(t, res.EarningsGood)
	require.True(t, res.LowDebt)

	o.QuarterlyEarningsGrowthYoY = util.Ptr(0.05)
	o.DebtToEquity = util.Ptr(2.0)
	res = valuation.Score(o)
	require.False(t, res.EarningsGood)
	require.False(t, res.LowDebt)
}

func TestScoreNegativePEIgnored(t *testing.T) {
	res := valuation.Score(models.FundamentalsOverview{
		Symbol:  "NEG",
		PERatio: util.Ptr(-12),
	})
	require.Equal(t, models.BucketFair, res.Bucket)
	require.Zero(t, res.Score)
}
