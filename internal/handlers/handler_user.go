package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)         // Scoped to caller's subtree
		users.GET("/:id", h.getUser)       // Own or within scope
		users.PUT("/:id", h.updateUser)    // Own name, admin everything
		users.DELETE("/:id", h.deleteUser) // Admin only, soft deactivate
		users.POST("", h.createUser)       // Admin only
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Provisions a user with a hierarchy role and manager reference (admin only)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 422 {object} ErrorResponse "Manager reference violates the hierarchy"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("User created", slog.String("new_user_id", createdUser.UserID), slog.String("creator_user_id", creatorUserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves details for a specific user
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Lists the users inside the caller's visibility scope
// @Tags users
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), callerUserID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates user details; role and placement changes are admin only
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 422 {object} ErrorResponse "Manager reference violates the hierarchy"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	userID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, requestingUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Deactivate a user
// @Description Soft-deactivates a user; their records stay visible to the chain (admin only)
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 204
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID := c.Param("id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID, requestingUserID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
