package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"FinBoard/internal/domain/models"
	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/provider"
	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
	"FinBoard/pkg/util"
)

// Client adapts the Alpha Vantage query API. Every numeric field comes back
// as a string; "None" and "-" placeholders become nil metrics.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates an Alpha Vantage adapter with the default credential.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.AlphaVantage.BaseURL,
		apiKey:  cfg.AlphaVantage.APIKey,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.AlphaVantage.Timeout),
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

var (
	_ domsvc.MarketData        = (*Client)(nil)
	_ domsvc.SectorPerformance = (*Client)(nil)
)

func (c *Client) Name() string { return "alphavantage" }

func (c *Client) query(ctx context.Context, fn string, params map[string]string, dest interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: alphavantage", provider.ErrMissingCredential)
	}
	if params == nil {
		params = map[string]string{}
	}
	params["function"] = fn
	params["apikey"] = c.apiKey
	if err := c.http.GetJSON(ctx, c.baseURL+"/query", params, dest); err != nil {
		return fmt.Errorf("%w: alphavantage %s: %v", provider.ErrUpstreamUnavailable, fn, err)
	}
	return nil
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Price         string `json:"05. price"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note string `json:"Note"`
}

// FetchQuote returns the latest quote from GLOBAL_QUOTE. A throttled key
// yields a "Note" body with no quote block.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	var resp globalQuoteResponse
	if err := c.query(ctx, "GLOBAL_QUOTE", map[string]string{"symbol": symbol}, &resp); err != nil {
		return models.Quote{}, err
	}

	price := util.ParseFloat(resp.GlobalQuote.Price)
	if price == nil {
		return models.Quote{}, fmt.Errorf("%w: alphavantage quote %s: no price (note=%q)", provider.ErrMalformedPayload, symbol, resp.Note)
	}

	q := models.Quote{Price: *price}
	if v := util.ParseFloat(resp.GlobalQuote.Change); v != nil {
		q.Change = *v
	}
	if v := util.ParsePercent(resp.GlobalQuote.ChangePercent); v != nil {
		q.ChangePercent = *v
	}
	return q, nil
}

type dailySeriesResponse struct {
	TimeSeries map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series (Daily)"`
	Note string `json:"Note"`
}

// FetchSeries returns daily closes ascending by date. TIME_SERIES_DAILY
// returns roughly 100 sessions; the range token trims from the back.
func (c *Client) FetchSeries(ctx context.Context, symbol, rng string) (models.Series, error) {
	var resp dailySeriesResponse
	if err := c.query(ctx, "TIME_SERIES_DAILY", map[string]string{"symbol": symbol}, &resp); err != nil {
		return models.Series{}, err
	}
	if len(resp.TimeSeries) == 0 {
		return models.Series{}, fmt.Errorf("%w: alphavantage series %s: no time series (note=%q)", provider.ErrMalformedPayload, symbol, resp.Note)
	}

	dates := make([]string, 0, len(resp.TimeSeries))
	for d := range resp.TimeSeries {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	cutoff := time.Now().UTC().AddDate(0, -rangeMonths(rng), 0).Format("2006-01-02")
	points := make([]models.SeriesPoint, 0, len(dates))
	for _, d := range dates {
		if d < cutoff {
			continue
		}
		if close := util.ParseFloat(resp.TimeSeries[d].Close); close != nil {
			points = append(points, models.SeriesPoint{Date: d, Close: *close})
		}
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

type overviewResponse struct {
	Name                       string `json:"Name"`
	MarketCapitalization       string `json:"MarketCapitalization"`
	PERatio                    string `json:"PERatio"`
	PEGRatio                   string `json:"PEGRatio"`
	PriceToBookRatio           string `json:"PriceToBookRatio"`
	PriceToSalesRatioTTM       string `json:"PriceToSalesRatioTTM"`
	EPS                        string `json:"EPS"`
	QuarterlyEarningsGrowthYOY string `json:"QuarterlyEarningsGrowthYOY"`
	ProfitMargin               string `json:"ProfitMargin"`
	EBITDA                     string `json:"EBITDA"`
	RevenueTTM                 string `json:"RevenueTTM"`
	DebtToEquityRatio          string `json:"DebtToEquityRatio"`
}

// FetchFundamentals normalizes the OVERVIEW payload. Alpha Vantage already
// expresses margins and growth as fractional ratios; no percent conversion.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (models.FundamentalsOverview, error) {
	var resp overviewResponse
	if err := c.query(ctx, "OVERVIEW", map[string]string{"symbol": symbol}, &resp); err != nil {
		return models.FundamentalsOverview{}, err
	}
	if resp.Name == "" {
		return models.FundamentalsOverview{}, fmt.Errorf("%w: alphavantage overview %s: empty body", provider.ErrMalformedPayload, symbol)
	}

	return models.FundamentalsOverview{
		Symbol:                     symbol,
		Name:                       resp.Name,
		MarketCap:                  util.ParseFloat(resp.MarketCapitalization),
		PERatio:                    util.ParseFloat(resp.PERatio),
		PEGRatio:                   util.ParseFloat(resp.PEGRatio),
		PriceToBook:                util.ParseFloat(resp.PriceToBookRatio),
		PriceToSales:               util.ParseFloat(resp.PriceToSalesRatioTTM),
		EPS:                        util.ParseFloat(resp.EPS),
		QuarterlyEarningsGrowthYoY: util.ParseFloat(resp.QuarterlyEarningsGrowthYOY),
		ProfitMargin:               util.ParseFloat(resp.ProfitMargin),
		EBITDA:                     util.ParseFloat(resp.EBITDA),
		RevenueTTM:                 util.ParseFloat(resp.RevenueTTM),
		DebtToEquity:               util.ParseFloat(resp.DebtToEquityRatio),
	}, nil
}

type sectorResponse struct {
	Rank5Day map[string]string `json:"Rank C: 5 Day Performance"`
	Rank1Mon map[string]string `json:"Rank D: 1 Month Performance"`
	Rank3Mon map[string]string `json:"Rank E: 3 Month Performance"`
}

// FetchSectorPerf returns trailing performance per provider sector label,
// in percentage points, keyed by the provider's display names.
func (c *Client) FetchSectorPerf(ctx context.Context) (map[string]models.SectorPerf, error) {
	var resp sectorResponse
	if err := c.query(ctx, "SECTOR", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Rank5Day) == 0 && len(resp.Rank1Mon) == 0 && len(resp.Rank3Mon) == 0 {
		return nil, fmt.Errorf("%w: alphavantage sector: empty body", provider.ErrMalformedPayload)
	}

	out := make(map[string]models.SectorPerf)
	for name, v := range resp.Rank5Day {
		p := out[name]
		if f := util.ParsePercent(v); f != nil {
			p.Week1 = *f
		}
		out[name] = p
	}
	for name, v := range resp.Rank1Mon {
		p := out[name]
		if f := util.ParsePercent(v); f != nil {
			p.Month1 = *f
		}
		out[name] = p
	}
	for name, v := range resp.Rank3Mon {
		p := out[name]
		if f := util.ParsePercent(v); f != nil {
			p.Month3 = *f
		}
		out[name] = p
	}
	return out, nil
}
