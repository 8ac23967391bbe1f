package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(statusForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error:   ledgerErr.Message,
			Code:    string(ledgerErr.Code),
			Details: ledgerErr.Field,
		})
		return
	}

	var statsErr *domainerror.StatsError
	if errors.As(err, &statsErr) {
		ctx.JSON(statusForStatsError(statsErr), dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeCarNotFound,
		domainerror.ErrCodeTripNotFound,
		domainerror.ErrCodeRefuelNotFound,
		domainerror.ErrCodeExpenseNotFound,
		domainerror.ErrCodeTagNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeActionForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeDuplicateCar, domainerror.ErrCodeDuplicateTag:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func statusForStatsError(err *domainerror.StatsError) int {
	if err.Transient() {
		return http.StatusServiceUnavailable
	}
	switch err.Code {
	case domainerror.ErrCodeInvalidPeriod, domainerror.ErrCodeInvalidCarID:
		return http.StatusBadRequest
	case domainerror.ErrCodeStatsCarNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeUsernameExists, domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidProfile,
		domainerror.ErrCodeInvalidRole:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInsufficientRole:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func invalidBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeMissingLedgerFields),
		Details: err.Error(),
	})
}

func invalidField(ctx *gin.Context, field, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   message,
		Code:    string(domainerror.ErrCodeInvalidFilter),
		Details: field,
	})
}
