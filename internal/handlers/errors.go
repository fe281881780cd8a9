package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps the service error taxonomy onto HTTP statuses:
// Unauthenticated 401, Forbidden 403, NotFound 404, InvalidTransition 400,
// Duplicate 409, Validation 422 and everything else 500.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthenticated"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
