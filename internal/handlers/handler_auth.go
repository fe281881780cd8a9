package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/fieldforce/sfm_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token)

	// Rate limit: 5 login attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.Logout)
	}

	registerGoogleOAuthRoutes(auth, services)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown user and bad password are indistinguishable on the wire.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	pair, err := h.tokenService.GenerateTokenPair(c.Request.Context(), user)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to generate token pair", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         dto.ToUserResponse(user),
	})
}

// Register godoc
// @Summary Register new user
// @Description Creates a self-service account with the lowest hierarchy role.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (e.g., username exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username already exists"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Refresh godoc
// @Summary Rotate tokens
// @Description Exchanges a valid refresh token for a fresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.RefreshResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	_, pair, err := h.tokenService.RefreshTokenPair(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired refresh token"})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the caller's refresh token.
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
