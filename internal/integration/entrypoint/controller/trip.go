package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/trip"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
)

// TripController handles trip endpoints.
type TripController struct {
	createUseCase    *trip.CreateTripUseCase
	getUseCase       *trip.GetTripUseCase
	listUseCase      *trip.ListTripsUseCase
	listByCarUseCase *trip.ListCarTripsUseCase
	updateUseCase    *trip.UpdateTripUseCase
	deleteUseCase    *trip.DeleteTripUseCase
}

// NewTripController creates a new trip controller instance.
func NewTripController(
	createUseCase *trip.CreateTripUseCase,
	getUseCase *trip.GetTripUseCase,
	listUseCase *trip.ListTripsUseCase,
	listByCarUseCase *trip.ListCarTripsUseCase,
	updateUseCase *trip.UpdateTripUseCase,
	deleteUseCase *trip.DeleteTripUseCase,
) *TripController {
	return &TripController{
		createUseCase:    createUseCase,
		getUseCase:       getUseCase,
		listUseCase:      listUseCase,
		listByCarUseCase: listByCarUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
	}
}

// List handles GET /trips requests with optional car_id, year and month filters.
func (c *TripController) List(ctx *gin.Context) {
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

	output, err := c.listUseCase.Execute(ctx.Request.Context(), trip.ListTripsInput{
		Principal: principal,
		CarID:     carID,
		Year:      year,
		Month:     month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TripListResponse{Trips: dto.ToTripResponses(output.Trips)})
}

// ListByCar handles GET /cars/:id/trips requests.
func (c *TripController) ListByCar(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}

	output, err := c.listByCarUseCase.Execute(ctx.Request.Context(), trip.ListCarTripsInput{
		Principal: principal,
		CarID:     carID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CarTripsResponse{
		Car:   dto.ToCarResponse(output.Car),
		Trips: dto.ToTripResponses(output.Trips),
	})
}

// Create handles POST /trips requests.
func (c *TripController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	startDate, ok := parseDateField(ctx, "start_date", req.StartDate)
	if !ok {
		return
	}
	endDate, ok := parseDateField(ctx, "end_date", req.EndDate)
	if !ok {
		return
	}
	tagIDs, ok := parseUUIDs(ctx, "tag_ids", req.TagIDs)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), trip.CreateTripInput{
		Principal:     principal,
		CarID:         uuid.MustParse(req.CarID),
		StartOdometer: req.StartOdometer,
		EndOdometer:   req.EndOdometer,
		StartDate:     startDate,
		EndDate:       endDate,
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		Notes:         req.Notes,
		TagIDs:        tagIDs,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTripResponse(output.Trip))
}

// Get handles GET /trips/:id requests.
func (c *TripController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, access.NotFound(policy.KindTrip))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), trip.GetTripInput{
		Principal: principal,
		TripID:    tripID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTripResponse(output.Trip))
}

// Update handles PATCH /trips/:id requests.
func (c *TripController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, access.NotFound(policy.KindTrip))
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	input := trip.UpdateTripInput{
		Principal:     principal,
		TripID:        tripID,
		CarID:         parseOptionalUUID(req.CarID),
		StartOdometer: req.StartOdometer,
		EndOdometer:   req.EndOdometer,
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		Notes:         req.Notes,
	}
	if input.StartDate, ok = parseOptionalDate(ctx, "start_date", req.StartDate); !ok {
		return
	}
	if input.EndDate, ok = parseOptionalDate(ctx, "end_date", req.EndDate); !ok {
		return
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

	ctx.JSON(http.StatusOK, dto.ToTripResponse(output.Trip))
}

// Delete handles DELETE /trips/:id requests.
func (c *TripController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	tripID, ok := pathID(ctx, access.NotFound(policy.KindTrip))
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), trip.DeleteTripInput{
		Principal: principal,
		TripID:    tripID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
