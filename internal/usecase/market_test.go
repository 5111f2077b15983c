package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/keystore"
	"FinBoard/internal/provider"
	"FinBoard/internal/provider/alphavantage"
	"FinBoard/internal/provider/finnhub"
	"FinBoard/internal/provider/yahoo"
	"FinBoard/internal/service/ratelimit"
	"FinBoard/internal/usecase"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"

	"github.com/stretchr/testify/require"
)

const yahooChart = `{"chart":{"result":[{
  "meta":{"regularMarketPrice":185.5,"regularMarketChange":2.5,"regularMarketChangePercent":1.37},
  "timestamp":[1704153600,1704240000,1704326400],
  "indicators":{"quote":[{"close":[184.0,185.0,185.5]}]}
}]}}`

func newMarket(t *testing.T, cfg *config.Config, c cache.Service) *usecase.MarketService {
	t.Helper()
	if c == nil {
		mem := cache.NewMemoryCache()
		t.Cleanup(func() { mem.Close() })
		c = mem
	}
	keys := keystore.New(c, cfg)
	pacer := ratelimit.NewPacer(time.Millisecond)
	return usecase.NewMarketService(yahoo.New(cfg), finnhub.New(cfg), alphavantage.New(cfg), keys, c, pacer, cfg, testLogger(t))
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// brokenCache errors on every operation, like a Redis that went away.
type brokenCache struct{}

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("cache down")
}
func (brokenCache) Get(context.Context, string, interface{}) error { return errors.New("cache down") }
func (brokenCache) Delete(context.Context, ...string) error        { return errors.New("cache down") }
func (brokenCache) Exists(context.Context, ...string) (bool, error) {
	return false, errors.New("cache down")
}

func TestQuoteFallsBackToYahoo(t *testing.T) {
	fh := failingServer(t)
	y := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(yahooChart))
	}))
	t.Cleanup(y.Close)

	cfg := &config.Config{}
	cfg.Finnhub.BaseURL = fh.URL
	cfg.Finnhub.APIKey = "k"
	cfg.Yahoo.BaseURL = y.URL
	m := newMarket(t, cfg, nil)

	q, err := m.Quote(context.Background(), "AAPL", "")
	require.NoError(t, err)
	require.Equal(t, 185.5, q.Price)
}

func TestQuoteBothProvidersDown(t *testing.T) {
	fh := failingServer(t)
	y := failingServer(t)

	cfg := &config.Config{}
	cfg.Finnhub.BaseURL = fh.URL
	cfg.Finnhub.APIKey = "k"
	cfg.Yahoo.BaseURL = y.URL
	m := newMarket(t, cfg, nil)

	_, err := m.Quote(context.Background(), "AAPL", "")
	require.ErrorIs(t, err, provider.ErrUpstreamUnavailable)
}

func TestQuoteServedDespiteKeyStoreFailure(t *testing.T) {
	fh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"c":185.5,"d":2.5,"dp":1.37,"pc":183.0}`))
	}))
	t.Cleanup(fh.Close)

	cfg := &config.Config{}
	cfg.Finnhub.BaseURL = fh.URL
	cfg.Finnhub.APIKey = "k"
	m := newMarket(t, cfg, brokenCache{})

	// Resolving the user's saved keys fails; the call proceeds on defaults.
	q, err := m.Quote(context.Background(), "AAPL", "u1")
	require.NoError(t, err)
	require.Equal(t, 185.5, q.Price)
}

func TestHistoryRangeTracksDays(t *testing.T) {
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.URL.Query().Get("range")
		w.Write([]byte(yahooChart))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Yahoo.BaseURL = srv.URL
	m := newMarket(t, cfg, nil)

	series, err := m.History(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	require.Equal(t, "1mo", gotRange)
	require.Len(t, series.Points, 2, "series must trim to the requested days")
	require.Equal(t, "2024-01-04", series.Points[1].Date)

	_, err = m.History(context.Background(), "AAPL", 90)
	require.NoError(t, err)
	require.Equal(t, "6mo", gotRange)

	_, err = m.History(context.Background(), "AAPL", 300)
	require.NoError(t, err)
	require.Equal(t, "2y", gotRange)
}

func TestOverviewFallsBackToFinnhub(t *testing.T) {
	y := failingServer(t)
	fh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/metric":
			w.Write([]byte(`{"metric":{
			  "peBasicExclExtraTTM": 10.0,
			  "pegAnnual": 0.8,
			  "pbQuarterly": 1.5,
			  "netProfitMarginTTM": 25.0
			}}`))
		case "/stock/profile2":
			w.Write([]byte(`{"name":"Apple Inc","marketCapitalization":2900000.0}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(fh.Close)

	cfg := &config.Config{}
	cfg.Yahoo.BaseURL = y.URL
	cfg.Finnhub.BaseURL = fh.URL
	cfg.Finnhub.APIKey = "k"
	m := newMarket(t, cfg, nil)

	res, err := m.Overview(context.Background(), "AAPL", "")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc", res.Overview.Name)
	require.Equal(t, models.BucketUndervalued, res.Bucket)
	require.InDelta(t, 71.0, res.Score, 1e-9)
}

func TestOverviewBothProvidersDown(t *testing.T) {
	y := failingServer(t)
	fh := failingServer(t)

	cfg := &config.Config{}
	cfg.Yahoo.BaseURL = y.URL
	cfg.Finnhub.BaseURL = fh.URL
	cfg.Finnhub.APIKey = "k"
	m := newMarket(t, cfg, nil)

	_, err := m.Overview(context.Background(), "AAPL", "")
	require.ErrorIs(t, err, provider.ErrUpstreamUnavailable)
}

func TestAnalysisPrefersAlphaVantage(t *testing.T) {
	avHits, yahooHits := 0, 0
	av := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		avHits++
		w.Write([]byte(`{"Time Series (Daily)":{
		  "2030-01-01":{"4. close":"100.0"},
		  "2030-01-02":{"4. close":"101.0"},
		  "2030-01-03":{"4. close":"102.0"}
		}}`))
	}))
	t.Cleanup(av.Close)
	y := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		yahooHits++
		w.Write([]byte(yahooChart))
	}))
	t.Cleanup(y.Close)

	cfg := &config.Config{}
	cfg.AlphaVantage.BaseURL = av.URL
	cfg.AlphaVantage.APIKey = "k"
	cfg.Yahoo.BaseURL = y.URL
	m := newMarket(t, cfg, nil)

	ta, err := m.Analysis(context.Background(), "AAPL", "3mo", "")
	require.NoError(t, err)
	require.Equal(t, 1, avHits)
	require.Zero(t, yahooHits)
	require.Equal(t, 102.0, ta.CurrentPrice)
}

func TestAnalysisFallsBackToYahoo(t *testing.T) {
	av := failingServer(t)
	y := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(yahooChart))
	}))
	t.Cleanup(y.Close)

	cfg := &config.Config{}
	cfg.AlphaVantage.BaseURL = av.URL
	cfg.AlphaVantage.APIKey = "k"
	cfg.Yahoo.BaseURL = y.URL
	m := newMarket(t, cfg, nil)

	ta, err := m.Analysis(context.Background(), "AAPL", "3mo", "")
	require.NoError(t, err)
	require.Equal(t, 185.5, ta.CurrentPrice)
}

func TestSentimentConsensusBuy(t *testing.T) {
	fh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/recommendation":
			w.Write([]byte(`[{"period":"2024-01-01","strongBuy":10,"buy":30,"hold":5,"sell":5,"strongSell":1}]`))
		case "/news-sentiment":
			w.Write([]byte(`{"companyNewsScore":0.8,"sentiment":{"bullishPercent":70.0,"bearishPercent":20.0}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(fh.Close)

	cfg := &config.Config{}
	cfg.Finnhub.BaseURL = fh.URL
	cfg.Finnhub.APIKey = "k"
	m := newMarket(t, cfg, nil)

	res, err := m.SentimentConsensus(context.Background(), "AAPL", "")
	require.NoError(t, err)
	require.Equal(t, "BUY", res.Overall, "30 of 40 recommendations are buys")
	require.Equal(t, 75, res.Confidence)
	require.Len(t, res.Breakdown, 3)
	require.Equal(t, 70, res.Breakdown[0].Score)
	require.Equal(t, "Positive coverage", res.Breakdown[0].Trend)
}

func TestScreenerRanksByScore(t *testing.T) {
	y := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "CHEAP"):
			w.Write([]byte(`{"quoteSummary":{"result":[{
			  "price":{"longName":"Cheap Co"},
			  "summaryDetail":{"trailingPE":{"raw":10.0}},
			  "defaultKeyStatistics":{"pegRatio":{"raw":0.8},"priceToBook":{"raw":1.5}},
			  "financialData":{"profitMargins":{"raw":0.25}}
			}]}}`))
		case strings.Contains(r.URL.Path, "EXP"):
			w.Write([]byte(`{"quoteSummary":{"result":[{
			  "price":{"longName":"Expensive Co"},
			  "summaryDetail":{"trailingPE":{"raw":40.0}},
			  "defaultKeyStatistics":{"pegRatio":{"raw":3.5},"priceToBook":{"raw":8.0}},
			  "financialData":{"profitMargins":{"raw":-0.05}}
			}]}}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(y.Close)

	cfg := &config.Config{}
	cfg.Yahoo.BaseURL = y.URL
	cfg.Screener.Tickers = []string{"BAD", "EXP", "CHEAP"}

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	m := newMarket(t, cfg, mem)
	scr := usecase.NewScreener(m, ratelimit.NewPacer(time.Millisecond), mem, cfg, testLogger(t))

	results, err := scr.Run(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 2, "failed ticker must be skipped, not fatal")
	require.Equal(t, "CHEAP", results[0].Symbol)
	require.Equal(t, models.BucketUndervalued, results[0].Bucket)
	require.Equal(t, models.BucketOvervalued, results[1].Bucket)
	require.Greater(t, results[0].Score, results[1].Score)
}
