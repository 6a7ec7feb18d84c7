package handlers

import (
	"net/http"
	"time"

	"macro-parity/internal/allocation"
	"macro-parity/internal/api/models"
	"macro-parity/internal/catalog"
	"macro-parity/internal/metrics"
	"macro-parity/internal/model"
	"macro-parity/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AllocationHandler computes one-off allocations for a given environment
type AllocationHandler struct {
	classes []model.AssetClass
	log     zerolog.Logger
	metrics *metrics.Recorder
}

func NewAllocationHandler(classes []model.AssetClass, log zerolog.Logger, rec *metrics.Recorder) *AllocationHandler {
	return &AllocationHandler{
		classes: classes,
		log:     log.With().Str("component", "allocation_handler").Logger(),
		metrics: rec,
	}
}

// Allocate handles POST /api/v1/allocations
func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req models.AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	classes := h.classes
	if len(req.Catalog) > 0 {
		classes = models.CatalogToModel(req.Catalog)
	}
	if err := catalog.Validate(classes); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CATALOG", err.Error())
		return
	}

	strat, err := strategy.Build(req.Strategy, classes)
	if err != nil {
		if allocation.ErrorKind(err) == "other" {
			writeError(c, http.StatusBadRequest, "INVALID_STRATEGY", err.Error())
			return
		}
		writeAllocationError(c, err)
		return
	}

	env := model.Environment(req.Environment)
	if env == nil {
		env = model.Environment{}
	}
	decisions, err := strat.Allocate(strategy.Context{Date: time.Now().UTC(), Environment: env})
	if err != nil {
		h.metrics.RecordAllocationError(allocation.ErrorKind(err))
		h.log.Warn().Err(err).Str("strategy", strat.Name()).Msg("allocation failed")
		writeAllocationError(c, err)
		return
	}
	h.metrics.RecordAllocation(strat.Name())

	baseline, err := allocation.ComputeBaseline(classes)
	if err != nil {
		writeAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AllocationResponse{
		Strategy:    strat.Name(),
		Environment: env,
		Signals:     allocation.SignalsFrom(env),
		Baseline:    baseline,
		Allocations: decisions,
	})
}
