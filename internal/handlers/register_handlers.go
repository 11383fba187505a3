package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/standards"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	registry *standards.Registry,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, registry, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	registry *standards.Registry,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerCompanyRoutes(v1, service.Company, registry)
	registerExchangeRateRoutes(v1, service.ExchangeRate)

	// Everything below is scoped to one company.
	company := v1.Group("/companies/:company_id")
	registerAccountRoutes(company, service.Chart, service.Balance)
	registerEntryRoutes(company, service.Journal)
	registerPeriodRoutes(company, service.Period)
	registerBalanceRoutes(company, service.Balance)
}
