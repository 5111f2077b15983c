package api

import (
	models "FinBoard/internal/domain/models"
	xhttp "FinBoard/pkg/http"

	"github.com/labstack/echo/v4"
)

// FinancialNews aggregates the financial feed set. Feed failures never
// surface as HTTP errors; a digest with an error string is still a 200.
func (h *Handler) FinancialNews(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	digest := h.news.FinancialNews(c.Request().Context(), req.UserID)
	return xhttp.SuccessResponse(c, digest)
}

// AINews aggregates the tech feed set filtered to AI-related articles.
func (h *Handler) AINews(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	digest := h.news.AINews(c.Request().Context(), req.UserID)
	return xhttp.SuccessResponse(c, digest)
}
