package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvc
}

func registerBalanceRoutes(rg *gin.RouterGroup, bs portssvc.BalanceSvc) {
	h := &balanceHandler{balanceService: bs}
	rg.GET("/trial-balance", h.getTrialBalance)
}

// getTrialBalance godoc
// @Summary Build the trial balance of a date range
// @Tags balances
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalance
// @Failure 500 {object} map[string]string "Ledger does not balance"
// @Router /companies/{company_id}/trial-balance [get]
func (h *balanceHandler) getTrialBalance(c *gin.Context) {
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "trial balance query")
		return
	}

	tb, err := h.balanceService.BuildTrialBalance(c.Request.Context(), c.Param("company_id"), params.From, params.To)
	if err != nil {
		respondError(c, err, "build trial balance")
		return
	}
	c.JSON(http.StatusOK, tb)
}
