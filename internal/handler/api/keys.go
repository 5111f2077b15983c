package api

import (
	models "FinBoard/internal/domain/models"
	"FinBoard/internal/keystore"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LoadKeys returns the keys saved for a user. A user with nothing saved gets
// all-empty keys, not an error; configured defaults are never exposed.
func (h *Handler) LoadKeys(c echo.Context) error {
	req := &models.LoadKeysRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	keys, err := h.keys.Load(c.Request().Context(), req.UserID)
	if err != nil {
		h.logger.Error("load keys failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to load keys"))
	}
	return xhttp.SuccessResponse(c, keys)
}

// SaveKeys stores a user's provider keys.
func (h *Handler) SaveKeys(c echo.Context) error {
	req := &models.SaveKeysRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	err := h.keys.Save(c.Request().Context(), req.UserID, keystore.Keys{
		AlphaVantage: req.AlphaVantage,
		Finnhub:      req.Finnhub,
		NewsAPI:      req.NewsAPI,
	})
	if err != nil {
		h.logger.Error("save keys failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to save keys"))
	}
	return xhttp.SuccessResponse(c, map[string]bool{"success": true})
}
