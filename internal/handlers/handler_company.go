package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type companyHandler struct {
	companyService portssvc.CompanySvcFacade
	registry       *standards.Registry
}

func newCompanyHandler(cs portssvc.CompanySvcFacade, registry *standards.Registry) *companyHandler {
	return &companyHandler{companyService: cs, registry: registry}
}

// registerCompanyRoutes registers routes related to companies and the standards catalogue.
func registerCompanyRoutes(rg *gin.RouterGroup, cs portssvc.CompanySvcFacade, registry *standards.Registry) {
	h := newCompanyHandler(cs, registry)

	rg.GET("/standards", h.listStandards)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:company_id", h.getCompany)
		companies.GET("/:company_id/profile", h.getProfile)
	}
}

// createCompany godoc
// @Summary Create a company
// @Description Registers a company; its accounting standard and base currency default from the country
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "create company request")
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "create company")
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("standard", company.AccountingStandard))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "list companies")
		return
	}

	resp := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		resp[i] = dto.ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err, "get company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// getProfile godoc
// @Summary Get the accounting profile applied to a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/profile [get]
func (h *companyHandler) getProfile(c *gin.Context) {
	profile, err := h.companyService.GetAccountingProfile(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err, "get accounting profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// listStandards godoc
// @Summary List supported accounting standards and countries
// @Tags companies
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /standards [get]
func (h *companyHandler) listStandards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"standards": h.registry.Standards(),
		"countries": h.registry.Countries(),
	})
}
