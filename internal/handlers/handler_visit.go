package handlers

import (
	"net/http"

	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// visitHandler handles HTTP requests for clinic visits.
type visitHandler struct {
	visitService portssvc.VisitSvcFacade
}

func newVisitHandler(vs portssvc.VisitSvcFacade) *visitHandler {
	return &visitHandler{visitService: vs}
}

// registerVisitRoutes registers all visit-related routes.
func registerVisitRoutes(rg *gin.RouterGroup, visitService portssvc.VisitSvcFacade) {
	h := newVisitHandler(visitService)

	visits := rg.Group("/visits")
	{
		visits.GET("", h.listVisits)
		visits.POST("", h.createVisit)
		visits.GET("/:id", h.getVisit)
	}
}

// createVisit godoc
// @Summary Log a clinic visit
// @Description Logs a visit owned by the caller. Only medical reps log visits.
// @Tags visits
// @Accept json
// @Produce json
// @Param visit body dto.CreateVisitRequest true "Visit details"
// @Success 201 {object} dto.VisitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not a rep"
// @Security BearerAuth
// @Router /visits [post]
func (h *visitHandler) createVisit(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.visitService.CreateVisit(c.Request.Context(), req, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVisitResponse(created))
}

// listVisits godoc
// @Summary List visits
// @Description Lists the visits inside the caller's visibility scope.
// @Tags visits
// @Produce json
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Pagination token"
// @Success 200 {object} dto.ListVisitsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /visits [get]
func (h *visitHandler) listVisits(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	visits, nextToken, err := h.visitService.ListVisits(c.Request.Context(), callerUserID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListVisitsResponse(visits, nextToken))
}

// getVisit godoc
// @Summary Get a visit by ID
// @Tags visits
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} dto.VisitResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Outside the caller's visibility"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /visits/{id} [get]
func (h *visitHandler) getVisit(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	visit, err := h.visitService.GetVisitByID(c.Request.Context(), c.Param("id"), callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitResponse(visit))
}
