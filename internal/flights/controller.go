package flights

import (
	"errors"
	"net/http"

	"skybook/internal/aircraft"
	"skybook/internal/shared/utils/response"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Search(ctx *gin.Context) {
	var req SearchFlightsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.Search(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err, "Failed to search flights")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flights retrieved successfully", result, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	flight, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get flight")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight retrieved successfully", ToResponse(flight), nil)
}

func (c *Controller) Create(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}

	var req CreateFlightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	flight, err := c.service.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create flight")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Flight created successfully", ToResponse(flight), nil)
}

func (c *Controller) Update(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	var req UpdateFlightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	flight, err := c.service.UpdateSchedule(ctx.Request.Context(), actor, id, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to update flight")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight updated successfully", ToResponse(flight), nil)
}

func (c *Controller) ChangeStatus(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, err.Error())
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid status", nil, err.Error())
		return
	}

	flight, err := c.service.ChangeStatus(ctx.Request.Context(), actor, id, status)
	if err != nil {
		c.respondError(ctx, err, "Failed to change flight status")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight status updated successfully", ToResponse(flight), nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, users.ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
	case errors.Is(err, ErrFlightNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
	case errors.Is(err, aircraft.ErrAircraftNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Aircraft not found", nil, nil)
	case errors.Is(err, ErrInvalidSchedule):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidStatusTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}
