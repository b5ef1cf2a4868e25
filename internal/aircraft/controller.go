package aircraft

import (
	"errors"
	"net/http"
	"strconv"

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

func (c *Controller) Create(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}

	var req CreateAircraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	aircraft, created, err := c.service.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create aircraft")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Aircraft created successfully", AircraftResponse{
		Aircraft:       aircraft,
		SeatsGenerated: created,
	}, nil)
}

func (c *Controller) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	list, total, err := c.service.List(ctx.Request.Context(), limit, offset)
	if err != nil {
		c.respondError(ctx, err, "Failed to list aircraft")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Aircraft retrieved successfully", gin.H{
		"aircraft": list,
		"total":    total,
	}, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Invalid aircraft ID")
	if !ok {
		return
	}

	aircraft, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get aircraft")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Aircraft retrieved successfully", aircraft, nil)
}

func (c *Controller) Reconfigure(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "Invalid aircraft ID")
	if !ok {
		return
	}

	var req UpdateAircraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	aircraft, created, err := c.service.Reconfigure(ctx.Request.Context(), actor, id, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to update aircraft")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Aircraft updated successfully", AircraftResponse{
		Aircraft:       aircraft,
		SeatsGenerated: created,
	}, nil)
}

func (c *Controller) Delete(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "Invalid aircraft ID")
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), actor, id); err != nil {
		c.respondError(ctx, err, "Failed to delete aircraft")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Aircraft deleted successfully", nil, nil)
}

func (c *Controller) EnsureSeatMap(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "Invalid aircraft ID")
	if !ok {
		return
	}

	created, err := c.service.EnsureSeatMap(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to generate seat map")
		return
	}

	message := "Seat map generated successfully"
	if created == 0 {
		message = "Seat map already exists"
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, SeatMapResponse{
		AircraftID:     id.String(),
		SeatsGenerated: created,
	}, nil)
}

func (c *Controller) UpdateSeatClass(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	aircraftID, ok := parseID(ctx, "id", "Invalid aircraft ID")
	if !ok {
		return
	}
	seatID, ok := parseID(ctx, "seatId", "Invalid seat ID")
	if !ok {
		return
	}

	var req UpdateSeatClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	seat, err := c.service.UpdateSeatClass(ctx.Request.Context(), actor, aircraftID, seatID, CabinClass(req.CabinClass))
	if err != nil {
		c.respondError(ctx, err, "Failed to update seat")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat updated successfully", seat, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, users.ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
	case errors.Is(err, ErrAircraftNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Aircraft not found", nil, nil)
	case errors.Is(err, ErrSeatNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, nil)
	case errors.Is(err, ErrInvalidDimensions), errors.Is(err, ErrInvalidCabin):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}

func parseID(ctx *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
