package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
)

// EscrowHandler обслуживает принятие откликов и завершение заказов:
// операции, двигающие средства через эскроу.
type EscrowHandler struct {
	ledger *ledger.Ledger
}

func NewEscrowHandler(l *ledger.Ledger) *EscrowHandler {
	return &EscrowHandler{ledger: l}
}

// AcceptBid POST /api/jobs/:id/accept-bid
func (h *EscrowHandler) AcceptBid(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.AcceptBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		common.RespondBadRequest(c, "неверный freelancer_id")
		return
	}

	job, err := h.ledger.AcceptBid(c.Request.Context(), userID, jobID, freelancerID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CompleteJob POST /api/jobs/:id/complete
func (h *EscrowHandler) CompleteJob(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	job, err := h.ledger.CompleteJob(c.Request.Context(), userID, jobID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetEscrow GET /api/jobs/:id/escrow
func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	balance, ok := h.ledger.GetEscrowBalance(jobID)
	if !ok {
		common.RespondNotFound(c, "эскроу не найден")
		return
	}

	c.JSON(http.StatusOK, dto.EscrowResponse{JobID: jobID, Balance: balance})
}
