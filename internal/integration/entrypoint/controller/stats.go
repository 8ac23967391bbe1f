package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/domain/policy"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/dto"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/middleware"
)

// StatsController handles live statistics and materialized snapshot endpoints.
type StatsController struct {
	carStatsUseCase      *stats.GetCarStatsUseCase
	monthlyReportUseCase *stats.GetMonthlyReportUseCase
	monthlyStatsUseCase  *stats.ListMonthlyStatsUseCase
	recomputeUseCase     *stats.RequestRecomputeUseCase
}

// NewStatsController creates a new stats controller instance.
func NewStatsController(
	carStatsUseCase *stats.GetCarStatsUseCase,
	monthlyReportUseCase *stats.GetMonthlyReportUseCase,
	monthlyStatsUseCase *stats.ListMonthlyStatsUseCase,
	recomputeUseCase *stats.RequestRecomputeUseCase,
) *StatsController {
	return &StatsController{
		carStatsUseCase:      carStatsUseCase,
		monthlyReportUseCase: monthlyReportUseCase,
		monthlyStatsUseCase:  monthlyStatsUseCase,
		recomputeUseCase:     recomputeUseCase,
	}
}

// CarStats handles GET /cars/:id/stats requests.
func (c *StatsController) CarStats(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}

	output, err := c.carStatsUseCase.Execute(ctx.Request.Context(), stats.GetCarStatsInput{
		Principal: principal,
		CarID:     carID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCarStatsResponse(output))
}

// MonthlyReport handles GET /stats/monthly-report requests.
// Missing year or month default to the current month in the user's timezone.
func (c *StatsController) MonthlyReport(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
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
	carID, ok := queryUUID(ctx, "car_id")
	if !ok {
		return
	}

	output, err := c.monthlyReportUseCase.Execute(ctx.Request.Context(), stats.GetMonthlyReportInput{
		Principal: principal,
		Year:      year,
		Month:     month,
		CarID:     carID,
		Location:  middleware.GetUserLocation(ctx),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReportResponse(output))
}

// MonthlyStats handles GET /cars/:id/monthly-stats requests.
func (c *StatsController) MonthlyStats(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}
	year, ok := queryInt(ctx, "year")
	if !ok {
		return
	}

	output, err := c.monthlyStatsUseCase.Execute(ctx.Request.Context(), stats.ListMonthlyStatsInput{
		Principal: principal,
		CarID:     carID,
		Year:      year,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyStatListResponse(output.Car, output.Stats))
}

// RequestRecompute handles POST /cars/:id/monthly-stats/recompute requests.
func (c *StatsController) RequestRecompute(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	carID, ok := pathID(ctx, access.NotFound(policy.KindCar))
	if !ok {
		return
	}

	var req dto.RecomputeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), stats.RequestRecomputeInput{
		Principal: principal,
		CarID:     carID,
		Year:      req.Year,
		Month:     req.Month,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.RecomputeResponse{
		CarID:  output.Task.CarID.String(),
		Year:   output.Task.Year,
		Month:  output.Task.Month,
		Status: "queued",
	})
}
