package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/usecase/user"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// UserController handles profile and role endpoints.
type UserController struct {
	getProfileUseCase    *user.GetProfileUseCase
	updateProfileUseCase *user.UpdateProfileUseCase
	assignRolesUseCase   *user.AssignRolesUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *user.GetProfileUseCase,
	updateProfileUseCase *user.UpdateProfileUseCase,
	assignRolesUseCase *user.AssignRolesUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
		assignRolesUseCase:   assignRolesUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	output, err := c.getProfileUseCase.Execute(ctx.Request.Context(), user.GetProfileInput{
		UserID: principal.UserID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// UpdateProfile handles PATCH /users/me requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidProfile),
		})
		return
	}

	input := user.UpdateProfileInput{
		UserID:   principal.UserID,
		Email:    req.Email,
		Name:     req.Name,
		Timezone: req.Timezone,
	}
	if req.PreferredCurrency != nil {
		currency := entity.Currency(*req.PreferredCurrency)
		input.PreferredCurrency = &currency
	}

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// AssignRoles handles PUT /users/:id/roles requests.
func (c *UserController) AssignRoles(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "user not found",
			Code:  string(domainerror.ErrCodeUserNotFound),
		})
		return
	}

	var req dto.AssignRolesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidRole),
		})
		return
	}

	roles := make([]entity.Role, len(req.Roles))
	for i, r := range req.Roles {
		roles[i] = entity.Role(r)
	}

	output, err := c.assignRolesUseCase.Execute(ctx.Request.Context(), user.AssignRolesInput{
		Principal: principal,
		UserID:    userID,
		Roles:     roles,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}
