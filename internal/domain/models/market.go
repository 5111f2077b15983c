package models

// Quote is the provider-agnostic quote shape every adapter converges to.
type Quote struct {
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// SeriesPoint is one daily close. Date is a YYYY-MM-DD calendar date (UTC).
type SeriesPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// Series is an ascending daily close series. Weekends and holidays are simply
// absent; points with null closes are filtered out at normalization time.
type Series struct {
	Symbol string        `json:"symbol"`
	Points []SeriesPoint `json:"points"`
}

// Closes returns just the close values, oldest first.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// FundamentalsOverview holds normalized fundamentals. Every metric is a
// pointer: nil means "provider did not supply this metric", never zero.
type FundamentalsOverview struct {
	Symbol                     string   `json:"symbol"`
	Name                       string   `json:"name"`
	MarketCap                  *float64 `json:"marketCap"`
	PERatio                    *float64 `json:"peRatio"`
	PEGRatio                   *float64 `json:"pegRatio"`
	PriceToBook                *float64 `json:"priceToBook"`
	PriceToSales               *float64 `json:"priceToSales"`
	EPS                        *float64 `json:"eps"`
	QuarterlyEarningsGrowthYoY *float64 `json:"quarterlyEarningsGrowthYoY"`
	ProfitMargin               *float64 `json:"profitMargin"`
	EBITDA                     *float64 `json:"ebitda"`
	RevenueTTM                 *float64 `json:"revenueTTM"`
	DebtToEquity               *float64 `json:"debtToEquity"`
}

// SRBand is a recent-range band used for visual shading, not precise levels.
type SRBand struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}

// Chart pattern labels.
const (
	PatternAscending     = "Ascending Channel"
	PatternDescending    = "Descending Channel"
	PatternConsolidation = "Consolidation / Range-Bound"
)

// Trend labels.
const (
	TrendBullish = "Bullish"
	TrendBearish = "Bearish"
)

// TechnicalAnalysis is recomputed per request from a Series; never persisted.
type TechnicalAnalysis struct {
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"currentPrice"`
	Supports     []float64 `json:"supports"`
	Resistances  []float64 `json:"resistances"`
	Pattern      string    `json:"pattern"`
	Trend        string    `json:"trend"`
	SRBand       SRBand    `json:"srBand"`
	MA50         *float64  `json:"ma50"`
	MA200        *float64  `json:"ma200"`
	Signals      []string  `json:"signals"`
}

// Valuation buckets.
const (
	BucketUndervalued = "Undervalued"
	BucketFair        = "Fairly Valued"
	BucketOvervalued  = "Overvalued"
)

// ValuationResult carries the computed score plus all raw metrics so callers
// can render both the summary label and the supporting numbers.
type ValuationResult struct {
	Symbol       string               `json:"symbol"`
	Score        float64              `json:"score"`
	Bucket       string               `json:"bucket"`
	Undervalued  bool                 `json:"undervalued"`
	EarningsGood bool                 `json:"earningsGood"`
	LowDebt      bool                 `json:"lowDebt"`
	Overview     FundamentalsOverview `json:"overview"`
}

// SectorPerf is trailing performance in percentage points.
type SectorPerf struct {
	Week1  float64 `json:"1w"`
	Month1 float64 `json:"1m"`
	Month3 float64 `json:"3m"`
}

// Sector is one reference record, optionally overlaid with live performance.
type Sector struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Drivers string     `json:"drivers"`
	Perf    SectorPerf `json:"perf"`
	Live    bool       `json:"live"`
}
