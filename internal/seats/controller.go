package seats

import (
	"errors"
	"net/http"

	"skybook/internal/aircraft"
	"skybook/internal/flights"
	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) AircraftSeatMap(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid aircraft ID", nil, err.Error())
		return
	}

	grid, err := c.service.AircraftGrid(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to load seat map")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", grid, nil)
}

func (c *Controller) FlightSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	grid, err := c.service.FlightGrid(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to load flight seats")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight seats retrieved successfully", grid, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, aircraft.ErrAircraftNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Aircraft not found", nil, nil)
	case errors.Is(err, flights.ErrFlightNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}
