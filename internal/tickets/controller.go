package tickets

import (
	"errors"
	"fmt"
	"net/http"

	"skybook/internal/shared/utils/response"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Get(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "Invalid ticket ID")
	if !ok {
		return
	}

	ticket, err := c.service.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get ticket")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket retrieved successfully", ToResponse(ticket), nil)
}

func (c *Controller) GetByReservation(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "Invalid reservation ID")
	if !ok {
		return
	}

	ticket, err := c.service.GetByReservation(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to get ticket")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket retrieved successfully", ToResponse(ticket), nil)
}

func (c *Controller) Download(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "Invalid ticket ID")
	if !ok {
		return
	}

	ticket, pdf, err := c.service.PDF(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to render ticket")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, ticket.Code))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func (c *Controller) Board(ctx *gin.Context) {
	actor, ok := users.RequireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "Invalid ticket ID")
	if !ok {
		return
	}

	ticket, err := c.service.Board(ctx.Request.Context(), actor, id)
	if err != nil {
		c.respondError(ctx, err, "Failed to board ticket")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket boarded successfully", ToResponse(ticket), nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, users.ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
	case errors.Is(err, ErrTicketNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Ticket not found", nil, nil)
	case errors.Is(err, ErrTicketUsed), errors.Is(err, ErrTicketNotIssued):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}

func parseID(ctx *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
