package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/tag"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// TagController handles tag endpoints.
type TagController struct {
	createUseCase *tag.CreateTagUseCase
	listUseCase   *tag.ListTagsUseCase
	updateUseCase *tag.UpdateTagUseCase
	deleteUseCase *tag.DeleteTagUseCase
}

// NewTagController creates a new tag controller instance.
func NewTagController(
	createUseCase *tag.CreateTagUseCase,
	listUseCase *tag.ListTagsUseCase,
	updateUseCase *tag.UpdateTagUseCase,
	deleteUseCase *tag.DeleteTagUseCase,
) *TagController {
	return &TagController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /tags requests.
func (c *TagController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), tag.ListTagsInput{Principal: principal})
	if err != nil {
		handleError(ctx, err)
		return
	}

	tags := make([]dto.TagResponse, len(output.Tags))
	for i, t := range output.Tags {
		tags[i] = dto.ToTagResponse(t)
	}
	ctx.JSON(http.StatusOK, dto.TagListResponse{Tags: tags})
}

// Create handles POST /tags requests.
func (c *TagController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), tag.CreateTagInput{
		Principal: principal,
		Name:      req.Name,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTagResponse(output.Tag))
}

// Update handles PATCH /tags/:id requests.
func (c *TagController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := pathID(ctx, access.NotFound(policy.KindTag))
	if !ok {
		return
	}

	var req dto.TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), tag.UpdateTagInput{
		Principal: principal,
		TagID:     tagID,
		Name:      req.Name,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagResponse(output.Tag))
}

// Delete handles DELETE /tags/:id requests.
func (c *TagController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tagID, ok := pathID(ctx, access.NotFound(policy.KindTag))
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), tag.DeleteTagInput{
		Principal: principal,
		TagID:     tagID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
