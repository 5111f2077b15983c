package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"FinBoard/internal/domain/models"
	domsvc "FinBoard/internal/domain/service"
	"FinBoard/internal/provider"
	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
	"FinBoard/pkg/util"
)

// Client adapts the Yahoo Finance v8 chart and v10 quoteSummary endpoints.
// No API key is needed, but a browser User-Agent is: Yahoo bot-blocks the
// default Go agent.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a Yahoo Finance adapter.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Yahoo.BaseURL,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Yahoo.Timeout),
			xhttp.WithUserAgent(cfg.Yahoo.UserAgent),
			xhttp.WithHeader("Accept", "application/json"),
		),
	}
}

var _ domsvc.MarketData = (*Client)(nil)

func (c *Client) Name() string { return "yahoo" }

// chartResponse mirrors the v8 chart payload. Closes are pointers because
// market holidays and gaps come back as JSON nulls.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  interface{}   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		RegularMarketPrice         float64 `json:"regularMarketPrice"`
		RegularMarketChange        float64 `json:"regularMarketChange"`
		RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
		ChartPreviousClose         float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (c *Client) fetchChart(ctx context.Context, symbol, rng string) (*chartResult, error) {
	var resp chartResponse
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))
	err := c.http.GetJSON(ctx, u, map[string]string{"interval": "1d", "range": rng}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo chart %s: %v", provider.ErrUpstreamUnavailable, symbol, err)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: yahoo chart %s: empty result", provider.ErrMalformedPayload, symbol)
	}
	return &resp.Chart.Result[0], nil
}

// FetchQuote returns the latest quote from the chart meta block.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	res, err := c.fetchChart(ctx, symbol, "5d")
	if err != nil {
		return models.Quote{}, err
	}

	m := res.Meta
	q := models.Quote{
		Price:         m.RegularMarketPrice,
		Change:        m.RegularMarketChange,
		ChangePercent: m.RegularMarketChangePercent,
	}
	// Some index symbols omit the change fields; derive from previous close.
	if q.Change == 0 && q.ChangePercent == 0 && m.ChartPreviousClose > 0 {
		q.Change = m.RegularMarketPrice - m.ChartPreviousClose
		q.ChangePercent = q.Change / m.ChartPreviousClose * 100
	}
	return q, nil
}

// FetchSeries returns daily closes, ascending, null closes filtered out.
func (c *Client) FetchSeries(ctx context.Context, symbol, rng string) (models.Series, error) {
	res, err := c.fetchChart(ctx, symbol, rng)
	if err != nil {
		return models.Series{}, err
	}
	if len(res.Indicators.Quote) == 0 {
		return models.Series{}, fmt.Errorf("%w: yahoo chart %s: no quote indicator", provider.ErrMalformedPayload, symbol)
	}

	closes := res.Indicators.Quote[0].Close
	points := make([]models.SeriesPoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, models.SeriesPoint{
			Date:  util.UnixToDate(ts),
			Close: *closes[i],
		})
	}
	return models.Series{Symbol: symbol, Points: points}, nil
}

// quoteSummaryResponse mirrors the v10 quoteSummary payload. Every numeric
// field is a {raw, fmt} pair; rawValue extracts .raw and defaults to nil.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE                   rawValue `json:"trailingPE"`
				PriceToSalesTrailing12Months rawValue `json:"priceToSalesTrailing12Months"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PegRatio                rawValue `json:"pegRatio"`
				PriceToBook             rawValue `json:"priceToBook"`
				TrailingEps             rawValue `json:"trailingEps"`
				EarningsQuarterlyGrowth rawValue `json:"earningsQuarterlyGrowth"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ProfitMargins rawValue `json:"profitMargins"`
				EBITDA        rawValue `json:"ebitda"`
				TotalRevenue  rawValue `json:"totalRevenue"`
				DebtToEquity  rawValue `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

// FetchFundamentals normalizes the quoteSummary modules into an overview.
// Absent fields stay nil; Yahoo's debtToEquity is a whole percent and is
// divided by 100 to match the fractional-ratio convention.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (models.FundamentalsOverview, error) {
	var resp quoteSummaryResponse
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", c.baseURL, url.PathEscape(symbol))
	err := c.http.GetJSON(ctx, u, map[string]string{
		"modules": "summaryDetail,defaultKeyStatistics,financialData,price",
	}, &resp)
	if err != nil {
		return models.FundamentalsOverview{}, fmt.Errorf("%w: yahoo quoteSummary %s: %v", provider.ErrUpstreamUnavailable, symbol, err)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return models.FundamentalsOverview{}, fmt.Errorf("%w: yahoo quoteSummary %s: empty result", provider.ErrMalformedPayload, symbol)
	}

	r := resp.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}
	if name == "" {
		name = symbol
	}

	var debtToEquity *float64
	if r.FinancialData.DebtToEquity.Raw != nil {
		v := *r.FinancialData.DebtToEquity.Raw / 100
		debtToEquity = &v
	}

	return models.FundamentalsOverview{
		Symbol:                     symbol,
		Name:                       name,
		MarketCap:                  r.Price.MarketCap.Raw,
		PERatio:                    r.SummaryDetail.TrailingPE.Raw,
		PEGRatio:                   r.DefaultKeyStatistics.PegRatio.Raw,
		PriceToBook:                r.DefaultKeyStatistics.PriceToBook.Raw,
		PriceToSales:               r.SummaryDetail.PriceToSalesTrailing12Months.Raw,
		EPS:                        r.DefaultKeyStatistics.TrailingEps.Raw,
		QuarterlyEarningsGrowthYoY: r.DefaultKeyStatistics.EarningsQuarterlyGrowth.Raw,
		ProfitMargin:               r.FinancialData.ProfitMargins.Raw,
		EBITDA:                     r.FinancialData.EBITDA.Raw,
		RevenueTTM:                 r.FinancialData.TotalRevenue.Raw,
		DebtToEquity:               debtToEquity,
	}, nil
}
