package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/refuel"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// RefuelController handles refuel endpoints.
type RefuelController struct {
	createUseCase *refuel.CreateRefuelUseCase
	getUseCase    *refuel.GetRefuelUseCase
	listUseCase   *refuel.ListRefuelsUseCase
	updateUseCase *refuel.UpdateRefuelUseCase
	deleteUseCase *refuel.DeleteRefuelUseCase
}

// NewRefuelController creates a new refuel controller instance.
func NewRefuelController(
	createUseCase *refuel.CreateRefuelUseCase,
	getUseCase *refuel.GetRefuelUseCase,
	listUseCase *refuel.ListRefuelsUseCase,
	updateUseCase *refuel.UpdateRefuelUseCase,
	deleteUseCase *refuel.DeleteRefuelUseCase,
) *RefuelController {
	return &RefuelController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /refuels requests with optional car_id, year and month filters.
func (c *RefuelController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := queryUUID(ctx, "car_id")
	if !ok {
		return
	}
	year, ok := queryInt(ctx, "year")
	if !ok {
		return
	}
	month, ok := queryInt(ctx, "month")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), refuel.ListRefuelsInput{
		Principal: principal,
		CarID:     carID,
		Year:      year,
		Month:     month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRefuelListResponse(output.Refuels))
}

// Create handles POST /refuels requests.
func (c *RefuelController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateRefuelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	date, ok := parseDateField(ctx, "date", req.Date)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), refuel.CreateRefuelInput{
		Principal: principal,
		CarID:     uuid.MustParse(req.CarID),
		Date:      date,
		Odometer:  req.Odometer,
		Liters:    req.Liters,
		TotalCost: req.TotalCost,
		Currency:  entity.Currency(req.Currency),
		FuelType:  req.FuelType,
		Station:   req.Station,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRefuelResponse(output.Refuel))
}

// Get handles GET /refuels/:id requests.
func (c *RefuelController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	refuelID, ok := pathID(ctx, access.NotFound(policy.KindRefuel))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), refuel.GetRefuelInput{
		Principal: principal,
		RefuelID:  refuelID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRefuelResponse(output.Refuel))
}

// Update handles PATCH /refuels/:id requests.
func (c *RefuelController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	refuelID, ok := pathID(ctx, access.NotFound(policy.KindRefuel))
	if !ok {
		return
	}

	var req dto.UpdateRefuelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	input := refuel.UpdateRefuelInput{
		Principal: principal,
		RefuelID:  refuelID,
		Odometer:  req.Odometer,
		Liters:    req.Liters,
		TotalCost: req.TotalCost,
		FuelType:  req.FuelType,
		Station:   req.Station,
	}
	if input.Date, ok = parseOptionalDate(ctx, "date", req.Date); !ok {
		return
	}
	if req.Currency != nil {
		currency := entity.Currency(*req.Currency)
		input.Currency = &currency
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRefuelResponse(output.Refuel))
}

// Delete handles DELETE /refuels/:id requests.
func (c *RefuelController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	refuelID, ok := pathID(ctx, access.NotFound(policy.KindRefuel))
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), refuel.DeleteRefuelInput{
		Principal: principal,
		RefuelID:  refuelID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
