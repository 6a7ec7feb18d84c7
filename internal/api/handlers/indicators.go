package handlers

import (
	"net/http"

	"macro-parity/internal/api/models"
	"macro-parity/internal/data"

	"github.com/gin-gonic/gin"
)

// ListIndicators handles GET /api/v1/indicators
func ListIndicators(c *gin.Context) {
	defs := data.DefaultIndicators()
	out := make([]models.IndicatorInfo, len(defs))
	for i, d := range defs {
		out[i] = models.IndicatorInfo{
			Function: d.Function,
			Name:     d.Name,
			Weight:   d.Weight,
			Interval: d.Request().IntervalOrDefault(),
		}
	}
	c.JSON(http.StatusOK, gin.H{"indicators": out, "count": len(out)})
}
