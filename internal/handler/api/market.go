package api

import (
	models "FinBoard/internal/domain/models"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Quote(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.Quote(c.Request().Context(), req.Ticker, c.QueryParam("userId"))
	if err != nil {
		h.logger.Error("quote failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) IndexQuote(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.IndexQuote(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("index quote failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.History(c.Request().Context(), req.Ticker, req.Days)
	if err != nil {
		h.logger.Error("history failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Analysis(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.Analysis(c.Request().Context(), req.Ticker, req.Range, c.QueryParam("userId"))
	if err != nil {
		h.logger.Error("analysis failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Overview(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.Overview(c.Request().Context(), req.Ticker, c.QueryParam("userId"))
	if err != nil {
		h.logger.Error("overview failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.market.SentimentConsensus(c.Request().Context(), req.Ticker, c.QueryParam("userId"))
	if err != nil {
		h.logger.Error("sentiment failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Sectors(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.sectors.Sectors(c.Request().Context()))
}

func (h *Handler) Screener(c echo.Context) error {
	res, err := h.screen.Run(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		h.logger.Error("screener failed", xlogger.Error(err))
		return h.upstreamResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
