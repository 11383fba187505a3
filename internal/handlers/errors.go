package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// errorKinds maps specific ledger errors to stable codes for clients.
// Order matters: the first match wins.
var errorKinds = []struct {
	err  error
	code string
}{
	{apperrors.ErrUnknownStandard, "UNKNOWN_STANDARD"},
	{apperrors.ErrInvalidAccountNumber, "INVALID_ACCOUNT_NUMBER"},
	{apperrors.ErrInvalidAccountClass, "INVALID_ACCOUNT_CLASS"},
	{apperrors.ErrDuplicateAccount, "DUPLICATE_ACCOUNT"},
	{apperrors.ErrInvalidLine, "INVALID_LINE"},
	{apperrors.ErrEmptyEntry, "EMPTY_ENTRY"},
	{apperrors.ErrImbalancedEntry, "IMBALANCED_ENTRY"},
	{apperrors.ErrInactiveAccount, "INACTIVE_ACCOUNT"},
	{apperrors.ErrUnknownAccount, "UNKNOWN_ACCOUNT"},
	{apperrors.ErrCurrencyMismatch, "CURRENCY_MISMATCH"},
	{apperrors.ErrEntryNotEditable, "ENTRY_NOT_EDITABLE"},
	{apperrors.ErrAlreadyPosted, "ALREADY_POSTED"},
	{apperrors.ErrVersionConflict, "VERSION_CONFLICT"},
	{apperrors.ErrPeriodClosed, "PERIOD_CLOSED"},
	{apperrors.ErrPeriodOverlap, "PERIOD_OVERLAP"},
	{apperrors.ErrUnbalancedTrialBalance, "UNBALANCED_TRIAL_BALANCE"},
	{apperrors.ErrRateUnavailable, "RATE_UNAVAILABLE"},
	{apperrors.ErrNotFound, "NOT_FOUND"},
	{apperrors.ErrValidation, "VALIDATION_ERROR"},
	{apperrors.ErrDuplicate, "DUPLICATE"},
	{apperrors.ErrConflict, "CONFLICT"},
	{apperrors.ErrUnavailable, "UNAVAILABLE"},
}

// statusFor returns the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnknownStandard):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return "INTERNAL_ERROR"
}

// respondError logs err and writes the mapped status. Internal failures are
// not echoed back to the caller.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action, "code": errorCode(err)})
		return
	}
	logger.Warn("Rejected request to "+action, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error(), "code": errorCode(err)})
}

// respondBindError writes a 400 for a request that failed binding or tag validation.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "code": "BAD_REQUEST"})
}
