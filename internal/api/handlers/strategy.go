package handlers

import (
	"net/http"

	"macro-parity/internal/allocation"
	"macro-parity/internal/api/models"
	"macro-parity/internal/model"
	"macro-parity/internal/strategy"

	"github.com/gin-gonic/gin"
)

// ListStrategies handles GET /api/v1/strategies
func ListStrategies(c *gin.Context) {
	signals := []models.ParameterInfo{
		{
			Name:        model.IndicatorGDPGrowth,
			Type:        "float",
			Description: "GDP growth (%). Above neutral tilts US and international equities up.",
			Default:     allocation.NeutralLevel,
		},
		{
			Name:        model.IndicatorInflationRate,
			Type:        "float",
			Description: "Inflation rate (%). Above neutral tilts bonds down and commodities up.",
			Default:     allocation.NeutralLevel,
		},
	}

	strategies := []models.StrategyInfo{
		{
			Name:        strategy.NameRiskParity,
			Description: "Inverse-volatility weights. Ignores the economic environment.",
			Parameters:  []models.ParameterInfo{},
		},
		{
			Name: strategy.NameMacroTilt,
			Description: "Risk-parity baseline tilted by GDP growth and inflation, " +
				"then renormalized to sum to 1. Default strategy.",
			Parameters: signals,
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
