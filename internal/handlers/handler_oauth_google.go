package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/fieldforce/sfm_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles the Google SSO sign-in flow.
type GoogleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService: services.GoogleOAuth,
		userService:  services.User,
		tokenService: services.Token,
	}
}

// registerGoogleOAuthRoutes sets up the Google SSO route under the auth group.
func registerGoogleOAuthRoutes(auth *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services)
	auth.POST("/google", h.GoogleLogin)
}

// GoogleLogin godoc
// @Summary Google SSO login
// @Description Signs a user in with a Google authorization code or ID token.
// @Description First-time users get a self-service account with the lowest role.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *GoogleOAuthHandler) GoogleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Code == "" && req.IDToken == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Either code or idToken is required"})
		return
	}

	idToken := req.IDToken
	if idToken == "" {
		token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), req.Code)
		if err != nil {
			logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
			return
		}
		raw, ok := token.Extra("id_token").(string)
		if !ok || raw == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
			return
		}
		idToken = raw
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(c.Request.Context(), idToken)
	if err != nil {
		logger.Warn("Google ID token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}
	if !payload.EmailVerified {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google account email is not verified"})
		return
	}

	user, err := h.findOrRegisterUser(c.Request.Context(), payload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pair, err := h.tokenService.GenerateTokenPair(c.Request.Context(), user)
	if err != nil {
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

// findOrRegisterUser resolves the Google identity to a local account,
// provisioning a rep-level account on first sign-in. The generated password
// is never disclosed; SSO users authenticate through Google only.
func (h *GoogleOAuthHandler) findOrRegisterUser(ctx context.Context, payload *portssvc.GoogleIDTokenPayload) (*domain.User, error) {
	user, err := h.userService.GetUserByUsername(ctx, payload.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	password, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, err
	}
	name := payload.Name
	if name == "" {
		name = payload.Email
	}
	return h.userService.RegisterUser(ctx, dto.CreateUserRequest{
		Username: payload.Email,
		Password: password,
		Name:     name,
	})
}
