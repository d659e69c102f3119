package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/optimizer"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message},
	})
}

// respondEngineError maps engine failures to HTTP statuses.
func (h *Handler) respondEngineError(c *gin.Context, err error) {
	var invalid *optimizer.ValidationError
	var upstream *optimizer.UpstreamError
	switch {
	case errors.As(err, &invalid):
		respondError(c, http.StatusBadRequest, "invalid_request", invalid.Error())
	case errors.Is(err, repositories.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &upstream):
		respondError(c, http.StatusBadGateway, "upstream_unavailable", upstream.Error())
	default:
		h.logger.Error("unhandled engine error", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal", "unexpected server error")
	}
}
