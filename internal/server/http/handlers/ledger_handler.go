package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourt/internal/server/http/dto"
)

// LedgerHandler manages merchant balance, payout and wallet endpoints.
type LedgerHandler struct {
	facade LedgerFacade
}

// NewLedgerHandler constructs LedgerHandler.
func NewLedgerHandler(facade LedgerFacade) *LedgerHandler {
	return &LedgerHandler{facade: facade}
}

// Balance handles GET /api/merchant/balance.
func (h *LedgerHandler) Balance(c *gin.Context) {
	merchantID := currentCaller(c).UserID
	balance, err := h.facade.Balance(c.Request.Context(), merchantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		MerchantID: merchantID,
		Available:  balance.Available,
		Withdrawn:  balance.Withdrawn,
	})
}

// Withdraw handles POST /api/merchant/withdrawals.
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, msgMalformedBody)
		return
	}

	w, err := h.facade.RequestWithdrawal(c.Request.Context(), currentCaller(c).UserID, req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewWithdrawalResponse(*w))
}

// Withdrawals handles GET /api/merchant/withdrawals.
func (h *LedgerHandler) Withdrawals(c *gin.Context) {
	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), currentCaller(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalResponses(withdrawals))
}

// TopUp handles POST /api/wallet/topup.
func (h *LedgerHandler) TopUp(c *gin.Context) {
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, msgMalformedBody)
		return
	}

	balance, err := h.facade.TopUpWallet(c.Request.Context(), currentCaller(c).UserID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WalletResponse{Balance: balance})
}
