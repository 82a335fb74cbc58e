package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
	"github.com/jobledger/jobledger-backend/internal/validation"
)

// DisputeHandler обслуживает споры и их арбитраж.
type DisputeHandler struct {
	ledger *ledger.Ledger
}

func NewDisputeHandler(l *ledger.Ledger) *DisputeHandler {
	return &DisputeHandler{ledger: l}
}

// OpenDispute POST /api/jobs/:id/dispute
func (h *DisputeHandler) OpenDispute(c *gin.Context) {
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

	var req dto.OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateDisputeReason(req.Reason); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.ledger.OpenDispute(c.Request.Context(), userID, jobID, req.Reason)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dispute)
}

// GetDispute GET /api/disputes/:id
func (h *DisputeHandler) GetDispute(c *gin.Context) {
	disputeID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, ok := h.ledger.GetDispute(disputeID)
	if !ok {
		common.RespondNotFound(c, "спор не найден")
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// AssignArbitrator POST /api/disputes/:id/assign
func (h *DisputeHandler) AssignArbitrator(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	disputeID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.AssignArbitratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	arbitratorID, err := uuid.Parse(req.ArbitratorID)
	if err != nil {
		common.RespondBadRequest(c, "неверный arbitrator_id")
		return
	}

	dispute, err := h.ledger.AssignArbitrator(c.Request.Context(), userID, disputeID, arbitratorID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// ResolveDispute POST /api/disputes/:id/resolve
func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	disputeID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.ledger.ResolveDispute(c.Request.Context(), userID, disputeID, req.Amount)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// CloseDispute POST /api/disputes/:id/close
func (h *DisputeHandler) CloseDispute(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	disputeID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.ledger.CloseDispute(c.Request.Context(), userID, disputeID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}
