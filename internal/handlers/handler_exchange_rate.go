package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, ers portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(ers)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/convert", h.convert)
	}
}

// createExchangeRate godoc
// @Summary Create an exchange rate
// @Description Stores the rate of a currency pair for a day, replacing any rate already stored for that day
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "create exchange rate request")
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "create exchange rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Tags exchange-rates
// @Produce json
// @Param amount query string true "Amount"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param date query string false "Rate date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ConvertResponse
// @Failure 503 {object} map[string]string "Rate unavailable"
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "convert query")
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondBindError(c, err, "convert amount")
		return
	}
	if params.Date.IsZero() {
		params.Date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	converted, err := h.exchangeRateService.Convert(c.Request.Context(), amount, params.From, params.To, params.Date)
	if err != nil {
		respondError(c, err, "convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{Amount: amount, From: params.From, To: params.To, Converted: converted})
}
