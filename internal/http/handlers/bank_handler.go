package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
)

// BankHandler обслуживает учебный банковский счёт: пополнение и просмотр баланса.
type BankHandler struct {
	bank *ledger.MemoryBank
}

func NewBankHandler(bank *ledger.MemoryBank) *BankHandler {
	return &BankHandler{bank: bank}
}

// Balance GET /api/bank/balance
func (h *BankHandler) Balance(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID.String(),
		Balance: h.bank.Balance(userID),
	})
}

// Deposit POST /api/bank/deposit
func (h *BankHandler) Deposit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "сумма пополнения обязательна")
		return
	}
	if req.Amount == 0 {
		common.RespondBadRequest(c, "сумма пополнения должна быть больше нуля")
		return
	}

	balance := h.bank.Deposit(userID, req.Amount)
	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID.String(),
		Balance: balance,
	})
}
