package finnhub

import (
	"context"
	"fmt"
	"time"

	"FinBoard/internal/domain/models"
	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/provider"
	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
	"FinBoard/pkg/util"
)

// Client adapts the Finnhub REST API. The configured key is the default;
// per-request user keys override it via WithKey.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates a Finnhub adapter with the default credential from config.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Finnhub.BaseURL,
		apiKey:  cfg.Finnhub.APIKey,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Finnhub.Timeout),
			xhttp.WithHeader("Accept", "application/json"),
		),
	}
}

// WithKey returns a copy of the client bound to a user-supplied API key.
func (c *Client) WithKey(key string) *Client {
	if key == "" {
		return c
	}
	clone := *c
	clone.apiKey = key
	return &clone
}

var _ domsvc.MarketData = (*Client)(nil)

func (c *Client) Name() string { return "finnhub" }

func (c *Client) get(ctx context.Context, path string, params map[string]string, dest interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: finnhub", provider.ErrMissingCredential)
	}
	if params == nil {
		params = map[string]string{}
	}
	params["token"] = c.apiKey
	if err := c.http.GetJSON(ctx, c.baseURL+path, params, dest); err != nil {
		return fmt.Errorf("%w: finnhub %s: %v", provider.ErrUpstreamUnavailable, path, err)
	}
	return nil
}

type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	PreviousClose float64 `json:"pc"`
}

// FetchQuote returns the latest quote. Finnhub signals unknown symbols with
// an all-zero body rather than an error status.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	var resp quoteResponse
	if err := c.get(ctx, "/quote", map[string]string{"symbol": symbol}, &resp); err != nil {
		return models.Quote{}, err
	}
	if resp.Current == 0 && resp.PreviousClose == 0 {
		return models.Quote{}, fmt.Errorf("%w: finnhub quote %s: empty body", provider.ErrMalformedPayload, symbol)
	}

	q := models.Quote{
		Price:         resp.Current,
		Change:        resp.Change,
		ChangePercent: resp.ChangePercent,
	}
	if q.Change == 0 && resp.PreviousClose > 0 {
		q.Change = resp.Current - resp.PreviousClose
		q.ChangePercent = q.Change / resp.PreviousClose * 100
	}
	return q, nil
}

type candleResponse struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Closes     []float64 `json:"c"`
}

// FetchSeries returns daily closes from the candle endpoint. The range is a
// Yahoo-style token (1mo, 3mo, 6mo, 1y, 2y) translated into a from/to window.
func (c *Client) FetchSeries(ctx context.Context, symbol, rng string) (models.Series, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, -rangeMonths(rng), 0)

	var resp candleResponse
	err := c.get(ctx, "/stock/candle", map[string]string{
		"symbol":     symbol,
		"resolution": "D",
		"from":       fmt.Sprintf("%d", from.Unix()),
		"to":         fmt.Sprintf("%d", to.Unix()),
	}, &resp)
	if err != nil {
		return models.Series{}, err
	}
	if resp.Status != "ok" || len(resp.Timestamps) != len(resp.Closes) {
		return models.Series{}, fmt.Errorf("%w: finnhub candle %s: status %q", provider.ErrMalformedPayload, symbol, resp.Status)
	}

	points := make([]models.SeriesPoint, 0, len(resp.Timestamps))
	for i, ts := range resp.Timestamps {
		points = append(points, models.SeriesPoint{
			Date:  util.UnixToDate(ts),
			Close: resp.Closes[i],
		})
	}
	return models.Series{Symbol: symbol, Points: points}, nil
}

func rangeMonths(rng string) int {
	switch rng {
	case "1mo":
		return 1
	case "6mo":
		return 6
	case "1y":
		return 12
	case "2y":
		return 24
	default:
		return 3
	}
}

type metricResponse struct {
	Metric map[string]*float64 `json:"metric"`
}

type profileResponse struct {
	Name                 string  `json:"name"`
	MarketCapitalization float64 `json:"marketCapitalization"`
}

// Ordered key candidates per logical field. Finnhub populates different
// key variants (TTM vs annual vs quarterly) depending on the symbol, so
// each field walks its chain and takes the first present value.
var (
	keysPE           = []string{"peTTM", "peBasicExclExtraTTM", "peNormalizedAnnual", "peAnnual"}
	keysPEG          = []string{"pegTTM", "peg", "pegAnnual"}
	keysPB           = []string{"pbQuarterly", "pbAnnual", "ptbvQuarterly"}
	keysPS           = []string{"psTTM", "psAnnual"}
	keysEPS          = []string{"epsTTM", "epsBasicExclExtraItemsTTM", "epsAnnual"}
	keysEPSGrowth    = []string{"epsGrowthQuarterlyYoy", "epsGrowthTTMYoy"}
	keysMargin       = []string{"netProfitMarginTTM", "netProfitMarginAnnual"}
	keysDebtToEquity = []string{"totalDebt/totalEquityQuarterly", "totalDebt/totalEquityAnnual"}
	keysEV           = []string{"enterpriseValue"}
	keysEVRevenue    = []string{"evRevenueTTM", "currentEv/revenueTTM"}
	keysEVEBITDA     = []string{"evEbitdaTTM", "currentEv/ebitdaTTM"}
)

// firstMetric walks the candidate chain and returns the first present value.
func firstMetric(metric map[string]*float64, keys []string) *float64 {
	for _, k := range keys {
		if v, ok := metric[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// asFraction converts a whole-percent figure (12.3 meaning 12.3%) to the
// fractional convention (0.123). This is the single conversion point for
// Finnhub percent fields.
func asFraction(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v / 100
	return &f
}

// scaleMillions converts Finnhub's millions-of-dollars figures to dollars.
func scaleMillions(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v * 1e6
	return &f
}

// FetchFundamentals combines the metric map with the company profile.
// Revenue and EBITDA are back-computed from enterprise-value ratios when not
// directly supplied; treat them as best-effort estimates.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (models.FundamentalsOverview, error) {
	var metrics metricResponse
	if err := c.get(ctx, "/stock/metric", map[string]string{"symbol": symbol, "metric": "all"}, &metrics); err != nil {
		return models.FundamentalsOverview{}, err
	}
	if len(metrics.Metric) == 0 {
		return models.FundamentalsOverview{}, fmt.Errorf("%w: finnhub metric %s: empty map", provider.ErrMalformedPayload, symbol)
	}

	var profile profileResponse
	name := symbol
	marketCap := (*float64)(nil)
	if err := c.get(ctx, "/stock/profile2", map[string]string{"symbol": symbol}, &profile); err == nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.MarketCapitalization > 0 {
			marketCap = scaleMillions(&profile.MarketCapitalization)
		}
	}

	m := metrics.Metric
	ev := scaleMillions(firstMetric(m, keysEV))

	var revenue, ebitda *float64
	if ev != nil {
		if ratio := firstMetric(m, keysEVRevenue); ratio != nil && *ratio != 0 {
			v := *ev / *ratio
			revenue = &v
		}
		if ratio := firstMetric(m, keysEVEBITDA); ratio != nil && *ratio != 0 {
			v := *ev / *ratio
			ebitda = &v
		}
	}

	return models.FundamentalsOverview{
		Symbol:                     symbol,
		Name:                       name,
		MarketCap:                  marketCap,
		PERatio:                    firstMetric(m, keysPE),
		PEGRatio:                   firstMetric(m, keysPEG),
		PriceToBook:                firstMetric(m, keysPB),
		PriceToSales:               firstMetric(m, keysPS),
		EPS:                        firstMetric(m, keysEPS),
		QuarterlyEarningsGrowthYoY: asFraction(firstMetric(m, keysEPSGrowth)),
		ProfitMargin:               asFraction(firstMetric(m, keysMargin)),
		EBITDA:                     ebitda,
		RevenueTTM:                 revenue,
		DebtToEquity:               firstMetric(m, keysDebtToEquity),
	}, nil
}

// Recommendation is one month of analyst recommendation counts.
type Recommendation struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// FetchRecommendations returns analyst recommendation trends, newest first.
func (c *Client) FetchRecommendations(ctx context.Context, symbol string) ([]Recommendation, error) {
	var resp []Recommendation
	if err := c.get(ctx, "/stock/recommendation", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// NewsSentiment is Finnhub's aggregate news sentiment for a symbol.
type NewsSentiment struct {
	CompanyNewsScore   float64 `json:"companyNewsScore"`
	SectorAvgNewsScore float64 `json:"sectorAverageNewsScore"`
	Sentiment          struct {
		BearishPercent float64 `json:"bearishPercent"`
		BullishPercent float64 `json:"bullishPercent"`
	} `json:"sentiment"`
}

// FetchNewsSentiment returns the aggregate news sentiment score.
func (c *Client) FetchNewsSentiment(ctx context.Context, symbol string) (NewsSentiment, error) {
	var resp NewsSentiment
	if err := c.get(ctx, "/news-sentiment", map[string]string{"symbol": symbol}, &resp); err != nil {
		return NewsSentiment{}, err
	}
	return resp, nil
}
