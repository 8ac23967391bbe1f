package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/middleware"
)

// requirePrincipal returns the principal set by the auth middleware or
// writes a 401.
func requirePrincipal(ctx *gin.Context) (policy.Principal, bool) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return policy.Principal{}, false
	}
	return principal, true
}

// pathID parses the :id path parameter. Malformed ids are reported as notFound.
func pathID(ctx *gin.Context, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		handleError(ctx, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(ctx *gin.Context, name string) (*int, bool) {
	raw, present := ctx.GetQuery(name)
	if !present || raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		invalidField(ctx, name, name+" must be an integer")
		return nil, false
	}
	return &value, true
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(ctx *gin.Context, name string) (*uuid.UUID, bool) {
	raw, present := ctx.GetQuery(name)
	if !present || raw == "" {
		return nil, true
	}
	value, err := uuid.Parse(raw)
	if err != nil {
		invalidField(ctx, name, name+" must be a valid id")
		return nil, false
	}
	return &value, true
}

// parseUUIDs parses a list of ids from a request body field.
func parseUUIDs(ctx *gin.Context, field string, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "unknown tag: " + s,
				Code:    string(domainerror.ErrCodeUnknownTag),
				Details: field,
			})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// parseDateField parses a YYYY-MM-DD body field.
func parseDateField(ctx *gin.Context, field, raw string) (time.Time, bool) {
	t, err := dto.ParseDate(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   field + " must be a date in YYYY-MM-DD format",
			Code:    string(domainerror.ErrCodeInvalidDateRange),
			Details: field,
		})
		return time.Time{}, false
	}
	return t, true
}

// parseOptionalDate parses a YYYY-MM-DD body field when present.
func parseOptionalDate(ctx *gin.Context, field string, raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	t, ok := parseDateField(ctx, field, *raw)
	if !ok {
		return nil, false
	}
	return &t, true
}
