package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type accountHandler struct {
	chartService   portssvc.ChartOfAccountsSvcFacade
	balanceService portssvc.BalanceSvc
}

func newAccountHandler(cs portssvc.ChartOfAccountsSvcFacade, bs portssvc.BalanceSvc) *accountHandler {
	return &accountHandler{chartService: cs, balanceService: bs}
}

// registerAccountRoutes registers the chart of accounts routes of a company.
func registerAccountRoutes(rg *gin.RouterGroup, cs portssvc.ChartOfAccountsSvcFacade, bs portssvc.BalanceSvc) {
	h := newAccountHandler(cs, bs)

	rg.GET("/account-numbers/next", h.nextAccountNumber)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_number", h.getAccount)
		accounts.PUT("/:account_number", h.updateAccount)
		accounts.POST("/:account_number/deactivate", h.deactivateAccount)
		accounts.POST("/:account_number/reactivate", h.reactivateAccount)
		accounts.GET("/:account_number/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account whose number and class conform to the company's accounting standard
// @Tags accounts
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /companies/{company_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "create account request")
		return
	}

	account, err := h.chartService.CreateAccount(c.Request.Context(), c.Param("company_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "create account")
		return
	}

	logger.Info("Account created", slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param company_id path string true "Company ID"
// @Param class query int false "Account class"
// @Param activeOnly query bool false "Only active accounts"
// @Param prefix query string false "Account number prefix"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Router /companies/{company_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "list accounts query")
		return
	}

	accounts, err := h.chartService.ListAccounts(c.Request.Context(), c.Param("company_id"), params.ToFilter())
	if err != nil {
		respondError(c, err, "list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account_number path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/accounts/{account_number} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.chartService.GetAccount(c.Request.Context(), c.Param("company_id"), c.Param("account_number"))
	if err != nil {
		respondError(c, err, "get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes the name or description. Number, type and class cannot change.
// @Tags accounts
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account_number path string true "Account number"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/accounts/{account_number} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "update account request")
		return
	}

	account, err := h.chartService.UpdateAccount(c.Request.Context(), c.Param("company_id"), c.Param("account_number"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Tags accounts
// @Param company_id path string true "Company ID"
// @Param account_number path string true "Account number"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/accounts/{account_number}/deactivate [post]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	if err := h.chartService.DeactivateAccount(c.Request.Context(), c.Param("company_id"), c.Param("account_number"), middleware.GetActorFromContext(c)); err != nil {
		respondError(c, err, "deactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// reactivateAccount godoc
// @Summary Reactivate an account
// @Tags accounts
// @Param company_id path string true "Company ID"
// @Param account_number path string true "Account number"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/accounts/{account_number}/reactivate [post]
func (h *accountHandler) reactivateAccount(c *gin.Context) {
	if err := h.chartService.ReactivateAccount(c.Request.Context(), c.Param("company_id"), c.Param("account_number"), middleware.GetActorFromContext(c)); err != nil {
		respondError(c, err, "reactivate account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountBalance godoc
// @Summary Get the balance of an account
// @Description Sums posted lines dated on or before asOf
// @Tags accounts
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account_number path string true "Account number"
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.AccountBalance
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/accounts/{account_number}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	var params dto.AccountBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "account balance query")
		return
	}

	balance, err := h.balanceService.ComputeAccountBalance(c.Request.Context(), c.Param("company_id"), c.Param("account_number"), params.AsOf, nil)
	if err != nil {
		respondError(c, err, "compute account balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// nextAccountNumber godoc
// @Summary Suggest the next free account number under a prefix
// @Tags accounts
// @Produce json
// @Param company_id path string true "Company ID"
// @Param prefix query string true "Account number prefix, optionally ending in *"
// @Success 200 {object} dto.NextAccountNumberResponse
// @Failure 422 {object} map[string]string
// @Router /companies/{company_id}/account-numbers/next [get]
func (h *accountHandler) nextAccountNumber(c *gin.Context) {
	prefix := c.Query("prefix")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: prefix is required", "code": "BAD_REQUEST"})
		return
	}

	number, err := h.chartService.FindOrNextAvailableNumber(c.Request.Context(), c.Param("company_id"), prefix)
	if err != nil {
		respondError(c, err, "find next account number")
		return
	}
	c.JSON(http.StatusOK, dto.NextAccountNumberResponse{Prefix: prefix, AccountNumber: number})
}
