package users

import (
	"errors"
	"net/http"
	"strconv"

	"skybook/internal/shared/utils/response"

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

func (c *Controller) Me(ctx *gin.Context) {
	actor, ok := RequireActor(ctx)
	if !ok {
		return
	}

	user, err := c.service.Get(ctx.Request.Context(), actor.UserID)
	if err != nil {
		c.respondError(ctx, err, "Failed to get user")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User retrieved successfully", user, nil)
}

func (c *Controller) List(ctx *gin.Context) {
	actor, ok := RequireActor(ctx)
	if !ok {
		return
	}

	var role Role
	if raw := ctx.Query("role"); raw != "" {
		parsed, err := ParseRole(raw)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid role filter", nil, err.Error())
			return
		}
		role = parsed
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	list, total, err := c.service.List(ctx.Request.Context(), actor, role, limit, offset)
	if err != nil {
		c.respondError(ctx, err, "Failed to list users")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Users retrieved successfully", gin.H{
		"users": list,
		"total": total,
	}, nil)
}

func (c *Controller) Create(ctx *gin.Context) {
	actor, ok := RequireActor(ctx)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	user, err := c.service.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create user")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User created successfully", user, nil)
}

func (c *Controller) ChangeRole(ctx *gin.Context) {
	actor, ok := RequireActor(ctx)
	if !ok {
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	var req ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid role", nil, err.Error())
		return
	}

	user, err := c.service.ChangeRole(ctx.Request.Context(), actor, userID, role)
	if err != nil {
		c.respondError(ctx, err, "Failed to change role")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Role updated successfully", user, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
	case errors.Is(err, ErrUserNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
	case errors.Is(err, ErrEmailTaken):
		response.RespondJSON(ctx, "error", http.StatusConflict, "User with this email already exists", nil, nil)
	case errors.Is(err, ErrLastAdmin):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, nil)
	}
}
