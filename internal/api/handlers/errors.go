package handlers

import (
	"errors"
	"net/http"

	"macro-parity/internal/allocation"
	"macro-parity/internal/api/models"
	"macro-parity/internal/data"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeAllocationError maps allocator failures: bad catalogs are the
// caller's fault (400); degenerate tilts are well-formed but unsatisfiable (422).
func writeAllocationError(c *gin.Context, err error) {
	switch allocation.ErrorKind(err) {
	case "degenerate":
		writeError(c, http.StatusUnprocessableEntity, "DEGENERATE_ALLOCATION", err.Error())
	case "validation":
		writeError(c, http.StatusBadRequest, "INVALID_CATALOG", err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "ALLOCATION_ERROR", err.Error())
	}
}

// writeProviderError maps Alpha Vantage failures onto HTTP statuses.
func writeProviderError(c *gin.Context, err error) {
	var avErr *data.AlphaVantageError
	if !errors.As(err, &avErr) {
		writeError(c, http.StatusBadGateway, "DATA_FETCH_ERROR", err.Error())
		return
	}

	status := http.StatusBadGateway
	switch avErr.Code {
	case data.CodeInvalidAPIKey, data.CodeMissingAPIKey:
		status = http.StatusUnauthorized
	case data.CodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    avErr.Code,
			Message: avErr.Message,
			Details: map[string]interface{}{
				"status_code": avErr.StatusCode,
			},
		},
	})
}
