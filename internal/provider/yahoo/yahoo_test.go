package yahoo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"FinBoard/internal/provider"
	"FinBoard/internal/provider/yahoo"
	"FinBoard/pkg/config"

	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *yahoo.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Yahoo.BaseURL = srv.URL
	cfg.Yahoo.UserAgent = "test-agent"
	return yahoo.New(cfg)
}

const chartBody = `{"chart":{"result":[{
  "meta":{"regularMarketPrice":185.5,"regularMarketChange":2.5,"regularMarketChangePercent":1.37},
  "timestamp":[1704153600,1704240000,1704326400],
  "indicators":{"quote":[{"close":[184.0,null,185.5]}]}
}]}}`

func TestFetchQuote(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		require.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(chartBody))
	})

	q, err := client.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, 185.5, q.Price)
	require.Equal(t, 2.5, q.Change)
	require.InDelta(t, 1.37, q.ChangePercent, 1e-9)
}

func TestFetchSeriesFiltersNullCloses(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody))
	})

	series, err := client.FetchSeries(context.Background(), "AAPL", "1mo")
	require.NoError(t, err)
	require.Len(t, series.Points, 2, "null close must be filtered, not zero-filled")
	require.Equal(t, "2024-01-02", series.Points[0].Date)
	require.Equal(t, 184.0, series.Points[0].Close)
	require.Equal(t, "2024-01-04", series.Points[1].Date)
	require.Equal(t, 185.5, series.Points[1].Close)
}

func TestFetchSeriesEmptyResult(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[]}}`))
	})

	_, err := client.FetchSeries(context.Background(), "NOPE", "1mo")
	require.ErrorIs(t, err, provider.ErrMalformedPayload)
}

func TestFetchQuoteUpstreamError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	})

	_, err := client.FetchQuote(context.Background(), "AAPL")
	require.True(t, errors.Is(err, provider.ErrUpstreamUnavailable))
}

func TestFetchFundamentals(t *testing.T) {
	body := `{"quoteSummary":{"result":[{
	  "price":{"longName":"Apple Inc.","marketCap":{"raw":2.9e12,"fmt":"2.9T"}},
	  "summaryDetail":{"trailingPE":{"raw":30.1}},
	  "defaultKeyStatistics":{"pegRatio":{"raw":2.4},"priceToBook":{"raw":45.2}},
	  "financialData":{"profitMargins":{"raw":0.25},"debtToEquity":{"raw":150.0}}
	}]}}`
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Query().Get("modules"), "summaryDetail")
		w.Write([]byte(body))
	})

	o, err := client.FetchFundamentals(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc.", o.Name)
	require.Equal(t, 2.9e12, *o.MarketCap)
	require.Equal(t, 30.1, *o.PERatio)
	require.Equal(t, 2.4, *o.PEGRatio)
	require.Equal(t, 0.25, *o.ProfitMargin)

	// Yahoo reports debtToEquity in whole percent.
	require.InDelta(t, 1.5, *o.DebtToEquity, 1e-9)

	// Absent fields stay nil, never zero.
	require.Nil(t, o.EPS)
	require.Nil(t, o.RevenueTTM)
	require.Nil(t, o.EBITDA)
}
