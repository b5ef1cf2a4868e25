package passengers

import (
	"errors"
	"net/http"
	"time"

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

	var req CreatePassengerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	passenger, err := c.service.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create passenger")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Passenger created successfully", ToResponse(passenger, time.Now()), nil)
}

func (c *Controller) List(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}

	list, err := c.service.List(ctx.Request.Context(), actor)
	if err != nil {
		c.respondError(ctx, err, "Failed to list passengers")
		return
	}

	now := time.Now()
	out := make([]PassengerResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i], now))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Passengers retrieved successfully", out, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid passenger ID", nil, err.Error())
		return
	}

	passenger, err := c.service.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get passenger")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Passenger retrieved successfully", ToResponse(passenger, time.Now()), nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrPassengerNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Passenger not found", nil, nil)
	case errors.Is(err, ErrDuplicateDocument):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidBirthDate):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}
