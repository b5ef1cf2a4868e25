package reservations

import (
	"errors"
	"net/http"

	"skybook/internal/flights"
	"skybook/internal/shared/utils/response"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	lifecycle *Lifecycle
	validator *validator.Validate
}

func NewController(service Service, lifecycle *Lifecycle) *Controller {
	return &Controller{
		service:   service,
		lifecycle: lifecycle,
		validator: validator.New(),
	}
}

func (c *Controller) DeclareIntent(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	flightID, ok := parseID(ctx, "id", "Invalid flight ID")
	if !ok {
		return
	}

	var req DeclareIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	intent, err := c.service.DeclareIntent(ctx.Request.Context(), actor, flightID, req.PassengerCount)
	if err != nil {
		c.respondError(ctx, err, "Failed to declare booking intent")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking intent declared", intent, nil)
}

func (c *Controller) Create(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	created, err := c.service.Book(ctx.Request.Context(), actor, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create reservations")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservations created successfully", ToBookingResponse(created), nil)
}

func (c *Controller) List(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}

	var query ListReservationsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if query.Status != "" {
		if _, err := ParseStatus(query.Status); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid status filter", nil, err.Error())
			return
		}
	}

	list, total, err := c.service.List(ctx.Request.Context(), actor, query)
	if err != nil {
		c.respondError(ctx, err, "Failed to list reservations")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", gin.H{
		"reservations": ToResponses(list),
		"total":        total,
	}, nil)
}

func (c *Controller) History(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}

	list, err := c.service.History(ctx.Request.Context(), actor)
	if err != nil {
		c.respondError(ctx, err, "Failed to load flight history")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight history retrieved successfully", ToResponses(list), nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "Invalid reservation ID")
	if !ok {
		return
	}

	reservation, err := c.service.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", ToResponse(reservation), nil)
}

func (c *Controller) Confirm(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "Invalid reservation ID")
	if !ok {
		return
	}

	result, err := c.lifecycle.Confirm(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to confirm reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation confirmed successfully", gin.H{
		"reservation": ToResponse(result.Reservation),
		"ticket_id":   result.TicketID,
		"delivery":    result.Delivery,
	}, nil)
}

func (c *Controller) Cancel(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id", "Invalid reservation ID")
	if !ok {
		return
	}

	result, err := c.lifecycle.Cancel(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to cancel reservation")
		return
	}

	message := "Reservation cancelled successfully"
	if result.Warning != "" {
		message = result.Warning
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, ToResponse(result.Reservation), nil)
}

func (c *Controller) Manifest(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	flightID, ok := parseID(ctx, "id", "Invalid flight ID")
	if !ok {
		return
	}

	list, err := c.service.Manifest(ctx.Request.Context(), actor, flightID)
	if err != nil {
		c.respondError(ctx, err, "Failed to load manifest")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Manifest retrieved successfully", ToManifest(list), nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	var (
		unavailable *SeatUnavailableError
		notOwned    *PassengerNotOwnedError
		mismatch    *PassengerSeatCountMismatchError
		delivery    *DeliveryFailedError
	)

	switch {
	case errors.As(err, &unavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, gin.H{
			"seat_id":     unavailable.SeatID,
			"seat_number": unavailable.SeatNumber,
		})
	case errors.As(err, &delivery):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, err.Error(), nil, gin.H{"ticket_id": delivery.TicketID})
	case errors.As(err, &notOwned):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.As(err, &mismatch):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, users.ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
	case errors.Is(err, ErrReservationNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Reservation not found", nil, nil)
	case errors.Is(err, flights.ErrFlightNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
	case errors.Is(err, ErrIntentNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrEmptyBatch), errors.Is(err, ErrDuplicatePassenger), errors.Is(err, ErrSeatNotFound):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrFlightNotBookable):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case IsConflict(err):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
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
