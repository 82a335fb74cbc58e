package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
)

var errInvalidMilestoneID = errors.New("параметр milestoneId должен быть неотрицательным числом")

// MilestoneHandler обслуживает этапы заказов.
type MilestoneHandler struct {
	ledger *ledger.Ledger
}

func NewMilestoneHandler(l *ledger.Ledger) *MilestoneHandler {
	return &MilestoneHandler{ledger: l}
}

// ListMilestones GET /api/jobs/:id/milestones
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestones := h.ledger.GetJobMilestones(jobID)
	c.JSON(http.StatusOK, gin.H{"milestones": milestones})
}

// GetMilestone GET /api/jobs/:id/milestones/:milestoneId
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestoneID, err := parseMilestoneID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestone, ok := h.ledger.GetMilestone(jobID, milestoneID)
	if !ok {
		common.RespondNotFound(c, "этап не найден")
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// CompleteMilestone POST /api/jobs/:id/milestones/:milestoneId/complete
func (h *MilestoneHandler) CompleteMilestone(c *gin.Context) {
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

	milestoneID, err := parseMilestoneID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	milestone, job, err := h.ledger.CompleteMilestone(c.Request.Context(), userID, jobID, milestoneID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestone": milestone, "job": job})
}

func parseMilestoneID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("milestoneId"))
	if err != nil || id < 0 {
		return 0, errInvalidMilestoneID
	}
	return id, nil
}
