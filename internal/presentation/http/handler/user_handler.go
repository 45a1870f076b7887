package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/request"
	"github.com/lukusafi/laundry-api/internal/presentation/http/dto/response"
)

// UserHandler handles staff account management
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Add creates an account with an explicit role
func (h *UserHandler) Add(c *gin.Context) {
	var req request.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.AddUser(c.Request.Context(), &service.AddUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     enum.UserRole(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

// List handles listing users
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.ListUsers(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, "Users retrieved successfully", result)
}

// UpdateRole changes a user's role. Owners cannot demote themselves.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}

	var req request.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), actorID(c), id, enum.UserRole(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User role updated successfully", user)
}
