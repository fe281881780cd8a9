package handlers

import (
	"net/http"

	portssvc "github.com/fieldforce/sfm_backend/internal/core/ports/services"
	"github.com/fieldforce/sfm_backend/internal/dto"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests for invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers all invoice-related routes.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/action", h.applyAction)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Raises a PENDING invoice owned by the caller.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Top-level roles do not raise invoices"
// @Failure 422 {object} ErrorResponse "Non-positive amount"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(created))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists the invoices inside the caller's visibility scope.
// @Tags invoices
// @Produce json
// @Param status query string false "Filter by status"
// @Param date_from query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param next_token query string false "Pagination token"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
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

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), callerUserID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, nextToken))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Outside the caller's visibility"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	callerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"), callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// applyAction godoc
// @Summary Decide an invoice
// @Description Applies approve, reject or convert. Convert turns an approved
// @Description invoice into a debt atomically with the status change.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param action body dto.RecordActionRequest true "Action"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Self-decision or actor outside the chain"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/action [post]
func (h *invoiceHandler) applyAction(c *gin.Context) {
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

	updated, err := h.invoiceService.ApplyAction(c.Request.Context(), c.Param("id"), req.Action, req.Notes, callerUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updated))
}
