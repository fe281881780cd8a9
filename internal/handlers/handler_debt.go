package handlers

import (
	"net/http"

	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// debtHandler handles HTTP requests for debts.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

func newDebtHandler(ds portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: ds}
}

// registerDebtRoutes registers all debt-related routes.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebts)
		debts.POST("", h.createDebt)
		debts.GET("/:id", h.getDebt)
		debts.POST("/:id/action", h.applyAction)
	}
}

// createDebt godoc
// @Summary Record a debt
// @Description Records a PENDING debt owned by the caller.
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt details"
// @Success 201 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Top-level roles do not record debts"
// @Failure 422 {object} ErrorResponse "Non-positive amount"
// @Security BearerAuth
// @Router /debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.debtService.CreateDebt(c.Request.Context(), req, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDebtResponse(created))
}

// listDebts godoc
// @Summary List debts
// @Description Lists the debts inside the caller's visibility scope.
// @Tags debts
// @Produce json
// @Param status query string false "Filter by status"
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Pagination token"
// @Success 200 {object} dto.ListDebtsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebts(c *gin.Context) {
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

	debts, nextToken, err := h.debtService.ListDebts(c.Request.Context(), callerUserID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDebtsResponse(debts, nextToken))
}

// getDebt godoc
// @Summary Get a debt by ID
// @Tags debts
// @Produce json
// @Param id path string true "Debt ID"
// @Success 200 {object} dto.DebtResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Outside the caller's visibility"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id} [get]
func (h *debtHandler) getDebt(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	debt, err := h.debtService.GetDebtByID(c.Request.Context(), c.Param("id"), callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(debt))
}

// applyAction godoc
// @Summary Decide a debt
// @Description Applies approve, reject or settle. Settle closes an approved debt.
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "Debt ID"
// @Param action body dto.RecordActionRequest true "Action"
// @Success 200 {object} dto.DebtResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Self-decision or actor outside the chain"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{id}/action [post]
func (h *debtHandler) applyAction(c *gin.Context) {
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

	updated, err := h.debtService.ApplyAction(c.Request.Context(), c.Param("id"), req.Action, req.Notes, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtResponse(updated))
}
