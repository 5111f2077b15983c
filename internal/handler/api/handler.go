package api

import (
	"errors"
	"net/http"

	"FinBoard/internal/keystore"
	"FinBoard/internal/provider"
	"FinBoard/internal/usecase"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler exposes the proxy API over Echo.
type Handler struct {
	logger  *xlogger.Logger
	news    *usecase.NewsAggregator
	market  *usecase.MarketService
	sectors *usecase.SectorService
	screen  *usecase.Screener
	keys    *keystore.Store
}

func NewHandler(logger *xlogger.Logger, news *usecase.NewsAggregator, market *usecase.MarketService, sectors *usecase.SectorService, screen *usecase.Screener, keys *keystore.Store) *Handler {
	return &Handler{
		logger:  logger,
		news:    news,
		market:  market,
		sectors: sectors,
		screen:  screen,
		keys:    keys,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/news", h.FinancialNews)
	g.GET("/ai-news", h.AINews)
	g.GET("/quote", h.Quote)
	g.GET("/index-quote", h.IndexQuote)
	g.GET("/history", h.History)
	g.GET("/analysis", h.Analysis)
	g.GET("/overview", h.Overview)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/sectors", h.Sectors)
	g.GET("/screener", h.Screener)
	g.GET("/keys", h.LoadKeys)
	g.POST("/keys", h.SaveKeys)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// upstreamResponse maps provider-layer errors onto API errors. Missing
// credentials are the caller's problem; everything upstream is a 502 with
// the (truncated) upstream message carried through.
func (h *Handler) upstreamResponse(c echo.Context, err error) error {
	if errors.Is(err, provider.ErrMissingCredential) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("API key required for this provider"))
	}
	if errors.Is(err, provider.ErrUpstreamUnavailable) || errors.Is(err, provider.ErrMalformedPayload) {
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError(err.Error()))
	}
	return xhttp.AppErrorResponse(c, err)
}
