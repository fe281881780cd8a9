package handlers

import (
	"net/http"

	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Counts pending work and open debt inside the caller's
// @Description visibility scope. Visit counts cover the current month.
// @Tags reporting
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.reportingService.GetDashboard(c.Request.Context(), callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}
