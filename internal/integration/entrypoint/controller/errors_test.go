package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedField  string
	}{
		{
			name:           "validation error carries its field",
			err:            domainerror.NewLedgerValidationError(domainerror.ErrCodeInvalidOdometer, "end_odometer", "end odometer must not be lower than start odometer"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domainerror.ErrCodeInvalidOdometer),
			expectedField:  "end_odometer",
		},
		{
			name:           "wrapped not found",
			err:            fmt.Errorf("loading car: %w", domainerror.NewLedgerError(domainerror.ErrCodeCarNotFound, "car not found", domainerror.ErrCarNotFound)),
			expectedStatus: http.StatusNotFound,
			expectedCode:   string(domainerror.ErrCodeCarNotFound),
		},
		{
			name:           "forbidden action",
			err:            domainerror.NewLedgerError(domainerror.ErrCodeActionForbidden, "you are not allowed to delete this trip", domainerror.ErrActionForbidden),
			expectedStatus: http.StatusForbidden,
			expectedCode:   string(domainerror.ErrCodeActionForbidden),
		},
		{
			name:           "duplicate car",
			err:            domainerror.NewLedgerValidationError(domainerror.ErrCodeDuplicateCar, "model", "car already exists"),
			expectedStatus: http.StatusConflict,
			expectedCode:   string(domainerror.ErrCodeDuplicateCar),
			expectedField:  "model",
		},
		{
			name:           "transient stats error",
			err:            domainerror.NewStatsError(domainerror.ErrCodeStoreUnavailable, "failed to list trips", domainerror.ErrStoreUnavailable),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   string(domainerror.ErrCodeStoreUnavailable),
		},
		{
			name:           "invalid period",
			err:            domainerror.NewStatsError(domainerror.ErrCodeInvalidPeriod, "month must be between 1 and 12", domainerror.ErrInvalidPeriod),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(domainerror.ErrCodeInvalidPeriod),
		},
		{
			name:           "insufficient role",
			err:            domainerror.NewAuthError(domainerror.ErrCodeInsufficientRole, "only managers can assign roles", domainerror.ErrInsufficientRole),
			expectedStatus: http.StatusForbidden,
			expectedCode:   string(domainerror.ErrCodeInsufficientRole),
		},
		{
			name:           "username taken",
			err:            domainerror.NewAuthError(domainerror.ErrCodeUsernameExists, "username already exists", domainerror.ErrUsernameAlreadyExists),
			expectedStatus: http.StatusConflict,
			expectedCode:   string(domainerror.ErrCodeUsernameExists),
		},
		{
			name:           "unknown error",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(ctx, tt.err)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			var body dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, body.Code)
			}
			if body.Details != tt.expectedField {
				t.Errorf("expected details %q, got %q", tt.expectedField, body.Details)
			}
			if tt.expectedStatus == http.StatusInternalServerError && body.Error != "An internal error occurred" {
				t.Errorf("expected generic message, got %q", body.Error)
			}
		})
	}
}
