package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/car"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// CarController handles car endpoints.
type CarController struct {
	createUseCase *car.CreateCarUseCase
	getUseCase    *car.GetCarUseCase
	listUseCase   *car.ListCarsUseCase
	updateUseCase *car.UpdateCarUseCase
	deleteUseCase *car.DeleteCarUseCase
}

// NewCarController creates a new car controller instance.
func NewCarController(
	createUseCase *car.CreateCarUseCase,
	getUseCase *car.GetCarUseCase,
	listUseCase *car.ListCarsUseCase,
	updateUseCase *car.UpdateCarUseCase,
	deleteUseCase *car.DeleteCarUseCase,
) *CarController {
	return &CarController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /cars requests.
func (c *CarController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), car.ListCarsInput{Principal: principal})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCarListResponse(output.Cars))
}

// Create handles POST /cars requests.
func (c *CarController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateCarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	tagIDs, ok := parseUUIDs(ctx, "tag_ids", req.TagIDs)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), car.CreateCarInput{
		Principal: principal,
		Brand:     req.Brand,
		Model:     req.Model,
		Year:      req.Year,
		Fuel:      entity.FuelType(req.Fuel),
		Gearbox:   entity.Gearbox(req.Gearbox),
		VIN:       req.VIN,
		PhotoURL:  req.PhotoURL,
		TagIDs:    tagIDs,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCarResponse(output.Car))
}

// Get handles GET /cars/:id requests.
func (c *CarController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), car.GetCarInput{
		Principal: principal,
		CarID:     carID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCarResponse(output.Car))
}

// Update handles PATCH /cars/:id requests.
func (c *CarController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}

	var req dto.UpdateCarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	input := car.UpdateCarInput{
		Principal: principal,
		CarID:     carID,
		Brand:     req.Brand,
		Model:     req.Model,
		Year:      req.Year,
		VIN:       req.VIN,
		PhotoURL:  req.PhotoURL,
	}
	if req.Fuel != nil {
		fuel := entity.FuelType(*req.Fuel)
		input.Fuel = &fuel
	}
	if req.Gearbox != nil {
		gearbox := entity.Gearbox(*req.Gearbox)
		input.Gearbox = &gearbox
	}
	if req.TagIDs != nil {
		tagIDs, ok := parseUUIDs(ctx, "tag_ids", *req.TagIDs)
		if !ok {
			return
		}
		input.TagIDs = &tagIDs
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCarResponse(output.Car))
}

// Delete handles DELETE /cars/:id requests.
func (c *CarController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), car.DeleteCarInput{
		Principal: principal,
		CarID:     carID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
