package finnhub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"FinBoard/internal/provider"
	"FinBoard/internal/provider/finnhub"
	"FinBoard/pkg/config"

	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, key string, handler http.HandlerFunc) *finnhub.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Finnhub.BaseURL = srv.URL
	cfg.Finnhub.APIKey = key
	return finnhub.New(cfg)
}

func TestFetchQuote(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote", r.URL.Path)
		require.Equal(t, "k", r.URL.Query().Get("token"))
		w.Write([]byte(`{"c":185.5,"d":2.5,"dp":1.37,"pc":183.0}`))
	})

	q, err := client.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, 185.5, q.Price)
	require.Equal(t, 2.5, q.Change)
}

func TestFetchQuoteDerivesChange(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":110.0,"pc":100.0}`))
	})

	q, err := client.FetchQuote(context.Background(), "X")
	require.NoError(t, err)
	require.InDelta(t, 10.0, q.Change, 1e-9)
	require.InDelta(t, 10.0, q.ChangePercent, 1e-9)
}

func TestFetchQuoteUnknownSymbol(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":0,"d":null,"dp":null,"pc":0}`))
	})

	_, err := client.FetchQuote(context.Background(), "NOPE")
	require.ErrorIs(t, err, provider.ErrMalformedPayload)
}

func TestMissingCredential(t *testing.T) {
	client := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request must be issued without a key")
	})

	_, err := client.FetchQuote(context.Background(), "AAPL")
	require.ErrorIs(t, err, provider.ErrMissingCredential)
}

func TestWithKeyOverrides(t *testing.T) {
	client := newClient(t, "default", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "user-key", r.URL.Query().Get("token"))
		w.Write([]byte(`{"c":10,"d":1,"dp":1,"pc":9}`))
	})

	_, err := client.WithKey("user-key").FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)
}

func TestFetchFundamentals(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/metric":
			require.Equal(t, "all", r.URL.Query().Get("metric"))
			w.Write([]byte(`{"metric":{
			  "peBasicExclExtraTTM": 28.0,
			  "pegAnnual": 2.1,
			  "pbQuarterly": 40.0,
			  "epsGrowthQuarterlyYoy": 12.3,
			  "netProfitMarginTTM": 25.0,
			  "enterpriseValue": 3000000.0,
			  "evRevenueTTM": 7.5,
			  "totalDebt/totalEquityQuarterly": 1.5
			}}`))
		case "/stock/profile2":
			w.Write([]byte(`{"name":"Apple Inc","marketCapitalization":2900000.0}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	o, err := client.FetchFundamentals(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc", o.Name)

	// peTTM absent: the chain falls through to peBasicExclExtraTTM.
	require.Equal(t, 28.0, *o.PERatio)
	require.Equal(t, 2.1, *o.PEGRatio)

	// Whole-percent figures convert to fractions exactly once.
	require.InDelta(t, 0.123, *o.QuarterlyEarningsGrowthYoY, 1e-9)
	require.InDelta(t, 0.25, *o.ProfitMargin, 1e-9)

	// Millions scale to dollars; revenue back-computes from EV / (EV/Revenue).
	require.Equal(t, 2.9e12, *o.MarketCap)
	require.InDelta(t, 4e11, *o.RevenueTTM, 1e3)

	// No EV/EBITDA ratio supplied: EBITDA stays nil.
	require.Nil(t, o.EBITDA)
	require.Equal(t, 1.5, *o.DebtToEquity)
}

func TestFetchFundamentalsEmptyMetricMap(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metric":{}}`))
	})

	_, err := client.FetchFundamentals(context.Background(), "NOPE")
	require.ErrorIs(t, err, provider.ErrMalformedPayload)
}

func TestFetchSeries(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stock/candle", r.URL.Path)
		require.Equal(t, "D", r.URL.Query().Get("resolution"))
		w.Write([]byte(`{"s":"ok","t":[1704153600,1704240000],"c":[184.0,185.5]}`))
	})

	series, err := client.FetchSeries(context.Background(), "AAPL", "3mo")
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	require.Equal(t, "2024-01-02", series.Points[0].Date)
}

func TestFetchSeriesNoData(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	})

	_, err := client.FetchSeries(context.Background(), "NOPE", "3mo")
	require.ErrorIs(t, err, provider.ErrMalformedPayload)
}

func TestFetchRecommendations(t *testing.T) {
	client := newClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stock/recommendation", r.URL.Path)
		w.Write([]byte(`[{"period":"2024-01-01","strongBuy":10,"buy":20,"hold":8,"sell":2,"strongSell":1}]`))
	})

	recs, err := client.FetchRecommendations(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, 20, recs[0].Buy)
}
