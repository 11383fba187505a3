package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type entryHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newEntryHandler(js portssvc.JournalSvcFacade) *entryHandler {
	return &entryHandler{journalService: js}
}

// registerEntryRoutes registers journal entry routes of a company.
func registerEntryRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newEntryHandler(js)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PATCH("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)

		entries.POST("/:entry_id/lines", h.addLine)
		entries.DELETE("/:entry_id/lines/:line_id", h.removeLine)

		entries.POST("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/cancel", h.cancelEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
		entries.PUT("/:entry_id/reconciliation", h.reconcileEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a DRAFT entry in the period containing its date, with optional initial lines
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /companies/{company_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "create entry request")
		return
	}

	entry, err := h.journalService.CreateDraftEntry(c.Request.Context(), c.Param("company_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "create journal entry")
		return
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param status query string false "Entry status"
// @Param from query string false "First entry date (YYYY-MM-DD)"
// @Param to query string false "Last entry date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListEntriesResponse
// @Router /companies/{company_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "list entries query")
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), c.Param("company_id"), params.ToFilter())
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToEntryResponses(entries)})
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "get journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update the header of a draft entry
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update and the version last read"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id} [patch]
func (h *entryHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "update entry request")
		return
	}

	entry, err := h.journalService.UpdateDraft(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Tags entries
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	if err := h.journalService.DeleteDraft(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c)); err != nil {
		respondError(c, err, "delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// addLine godoc
// @Summary Add a line to a draft entry
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param line body dto.AddLineRequest true "Line details"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/lines [post]
func (h *entryHandler) addLine(c *gin.Context) {
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "add line request")
		return
	}

	entry, err := h.journalService.AddLine(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "add ledger line")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// removeLine godoc
// @Summary Remove a line from a draft entry
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param line_id path string true "Line ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/lines/{line_id} [delete]
func (h *entryHandler) removeLine(c *gin.Context) {
	entry, err := h.journalService.RemoveLine(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), c.Param("line_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "remove ledger line")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// validateEntry godoc
// @Summary Validate a draft entry
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/validate [post]
func (h *entryHandler) validateEntry(c *gin.Context) {
	entry, err := h.journalService.Validate(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "validate journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a validated entry
// @Description Posting requires the entry's period to be open and is rejected if the entry changed concurrently
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.journalService.Post(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "post journal entry")
		return
	}

	logger.Info("Entry posted", slog.String("entry_id", entry.EntryID), slog.String("total", entry.TotalDebit.String()))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a draft entry
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/cancel [post]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	entry, err := h.journalService.Cancel(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "cancel journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Create a reversal of a posted entry
// @Description Creates a DRAFT reversal with debits and credits swapped
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param reversal body dto.ReverseEntryRequest false "Reversal date and description"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseEntryRequest
	// The body is optional.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err, "reverse entry request")
			return
		}
	}

	entry, err := h.journalService.Reverse(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "reverse journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// reconcileEntry godoc
// @Summary Set the reconciled flag of a posted entry
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param reconciliation body dto.ReconcileRequest true "Reconciled flag"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Router /companies/{company_id}/entries/{entry_id}/reconciliation [put]
func (h *entryHandler) reconcileEntry(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "reconcile request")
		return
	}

	entry, err := h.journalService.MarkReconciled(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), *req.Reconciled, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "reconcile journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
