package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

func registerPeriodRoutes(rg *gin.RouterGroup, ps portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(ps)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/lock", h.lockPeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
	}
}

// createPeriod godoc
// @Summary Open a financial period
// @Tags periods
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period body dto.CreatePeriodRequest true "Period bounds"
// @Success 201 {object} dto.PeriodResponse
// @Failure 422 {object} map[string]string
// @Router /companies/{company_id}/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "create period request")
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), c.Param("company_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "create period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List financial periods
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {array} dto.PeriodResponse
// @Router /companies/{company_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	periods, err := h.periodService.ListPeriods(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err, "list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get a financial period
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/periods/{period_id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	period, err := h.periodService.GetPeriod(c.Request.Context(), c.Param("company_id"), c.Param("period_id"))
	if err != nil {
		respondError(c, err, "get period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close an open period
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/periods/{period_id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := h.periodService.ClosePeriod(c.Request.Context(), c.Param("company_id"), c.Param("period_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "close period")
		return
	}

	logger.Info("Period closed", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// lockPeriod godoc
// @Summary Lock a period permanently
// @Tags periods
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Param lock body dto.LockPeriodRequest true "Lock reason"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/periods/{period_id}/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	var req dto.LockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "lock period request")
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), c.Param("company_id"), c.Param("period_id"), req.Reason, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "lock period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a closed period
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/periods/{period_id}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	period, err := h.periodService.ReopenPeriod(c.Request.Context(), c.Param("company_id"), c.Param("period_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "reopen period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
