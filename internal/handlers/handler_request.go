package handlers

import (
	"net/http"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestHandler handles HTTP requests for approval requests.
type requestHandler struct {
	requestService portssvc.RequestSvcFacade
}

func newRequestHandler(rs portssvc.RequestSvcFacade) *requestHandler {
	return &requestHandler{requestService: rs}
}

// RegisterRequestRoutes registers all request-related routes.
func RegisterRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade) {
	h := newRequestHandler(requestService)

	requests := rg.Group("/requests")
	{
		requests.GET("", h.listRequests)
		requests.GET("/pending", h.listPendingRequests)
		requests.POST("", h.createRequest)
		requests.GET("/:id", h.getRequest)
		requests.GET("/:id/history", h.getRequestHistory)
		requests.POST("/:id/action", h.applyAction)
	}
}

// createRequest godoc
// @Summary Create an approval request
// @Description Creates a PENDING request owned by the caller.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateRequestRequest true "Request details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Top-level roles do not raise requests"
// @Security BearerAuth
// @Router /requests [post]
func (h *requestHandler) createRequest(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), req, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRequestResponse(created))
}

// listRequests godoc
// @Summary List approval requests
// @Description Lists the requests inside the caller's visibility scope,
// @Description optionally filtered by status and an inclusive date range.
// @Tags requests
// @Produce json
// @Param status query string false "Filter by status"
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Pagination token"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
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

	requests, nextToken, err := h.requestService.ListRequests(c.Request.Context(), callerUserID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRequestsResponse(requests, nextToken))
}

// listPendingRequests godoc
// @Summary List pending requests
// @Description Shortcut for the approval inbox: visible requests still awaiting a decision.
// @Tags requests
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Pagination token"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/pending [get]
func (h *requestHandler) listPendingRequests(c *gin.Context) {
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
	pending := string(domain.StatusPending)
	params.Status = &pending

	requests, nextToken, err := h.requestService.ListRequests(c.Request.Context(), callerUserID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRequestsResponse(requests, nextToken))
}

// getRequest godoc
// @Summary Get a request by ID
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Outside the caller's visibility"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.requestService.GetRequestByID(c.Request.Context(), c.Param("id"), callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// getRequestHistory godoc
// @Summary Get a request's audit trail
// @Description Returns every status transition recorded for the request, oldest first.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} domain.StatusChange
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/history [get]
func (h *requestHandler) getRequestHistory(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	history, err := h.requestService.GetRequestHistory(c.Request.Context(), c.Param("id"), callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// applyAction godoc
// @Summary Decide a request
// @Description Applies approve or reject. The decision must come from someone
// @Description in the owner's manager chain or a top-level role, never the owner.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param action body dto.RecordActionRequest true "Action"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Self-decision or actor outside the chain"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/action [post]
func (h *requestHandler) applyAction(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.requestService.ApplyAction(c.Request.Context(), c.Param("id"), req.Action, req.Notes, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(updated))
}
