package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
	"github.com/jobledger/jobledger-backend/internal/validation"
)

// BidHandler обслуживает отклики фрилансеров.
type BidHandler struct {
	ledger *ledger.Ledger
}

func NewBidHandler(l *ledger.Ledger) *BidHandler {
	return &BidHandler{ledger: l}
}

// SubmitBid POST /api/jobs/:id/bids
func (h *BidHandler) SubmitBid(c *gin.Context) {
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

	var req dto.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateProposal(req.Proposal); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	bid, err := h.ledger.SubmitBid(c.Request.Context(), userID, jobID, req.Amount, req.Proposal)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// GetBid GET /api/jobs/:id/bids/:freelancerId
func (h *BidHandler) GetBid(c *gin.Context) {
	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	freelancerID, err := common.ParseUUIDParam(c, "freelancerId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	bid, ok := h.ledger.GetBid(jobID, freelancerID)
	if !ok {
		common.RespondNotFound(c, "отклик не найден")
		return
	}

	c.JSON(http.StatusOK, bid)
}
