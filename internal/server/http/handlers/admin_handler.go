package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourt/internal/server/http/dto"
)

// AdminHandler serves payout approval, vendor billing and reports.
type AdminHandler struct {
	ledger LedgerFacade
	admin  AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(ledger LedgerFacade, admin AdminFacade) *AdminHandler {
	return &AdminHandler{ledger: ledger, admin: admin}
}

// ResolveWithdrawal handles PUT /api/admin/withdrawals/:id.
func (h *AdminHandler) ResolveWithdrawal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ResolveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, msgMalformedBody)
		return
	}

	w, err := h.ledger.ResolveWithdrawal(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalResponse(*w))
}

// GenerateInvoice handles POST /api/admin/invoices.
func (h *AdminHandler) GenerateInvoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, msgMalformedBody)
		return
	}

	invoice, err := h.admin.GenerateInvoice(c.Request.Context(), req.Period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewInvoiceResponse(*invoice))
}

// Invoices handles GET /api/admin/invoices.
func (h *AdminHandler) Invoices(c *gin.Context) {
	invoices, err := h.admin.Invoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInvoiceResponses(invoices))
}

// MarkInvoicePaid handles PUT /api/admin/invoices/:period/paid.
func (h *AdminHandler) MarkInvoicePaid(c *gin.Context) {
	invoice, err := h.admin.MarkInvoicePaid(c.Request.Context(), c.Param("period"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInvoiceResponse(*invoice))
}

// FeeReport handles GET /api/admin/reports/fees?period=YYYY-MM.
func (h *AdminHandler) FeeReport(c *gin.Context) {
	period := c.Query("period")
	fees, err := h.admin.HandlingFees(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFeeReportResponse(period, fees))
}
