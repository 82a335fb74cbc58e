package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
	"github.com/jobledger/jobledger-backend/internal/models"
	"github.com/jobledger/jobledger-backend/internal/repository"
	"github.com/jobledger/jobledger-backend/internal/validation"
)

// JobHandler обслуживает жизненный цикл заказов.
type JobHandler struct {
	ledger  *ledger.Ledger
	journal *repository.EventJournal // nil, если журнал отключён
}

func NewJobHandler(l *ledger.Ledger, journal *repository.EventJournal) *JobHandler {
	return &JobHandler{ledger: l, journal: journal}
}

// CreateJob POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateJobTitle(req.Title); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateJobDescription(req.Description); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var job models.Job
	if len(req.Milestones) > 0 {
		inputs := make([]models.MilestoneInput, 0, len(req.Milestones))
		for _, m := range req.Milestones {
			if err := validation.ValidateMilestoneDescription(m.Description); err != nil {
				common.RespondBadRequest(c, err.Error())
				return
			}
			inputs = append(inputs, models.MilestoneInput{
				Description: m.Description,
				Amount:      m.Amount,
				Deadline:    m.Deadline,
			})
		}
		job, err = h.ledger.PostJobWithMilestones(c.Request.Context(), userID, req.Title, req.Description, req.Budget, req.Deadline, inputs)
	} else {
		job, err = h.ledger.PostJob(c.Request.Context(), userID, req.Title, req.Description, req.Budget, req.Deadline)
	}
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// CancelJob POST /api/jobs/:id/cancel
func (h *JobHandler) CancelJob(c *gin.Context) {
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

	job, err := h.ledger.CancelJob(c.Request.Context(), userID, jobID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetJob GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	job, ok := h.ledger.GetJob(jobID)
	if !ok {
		common.RespondNotFound(c, "заказ не найден")
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobs GET /api/jobs?status=&limit=&offset=
func (h *JobHandler) ListJobs(c *gin.Context) {
	status := c.Query("status")
	if status != "" {
		if _, ok := models.ValidJobStatuses[status]; !ok {
			common.RespondBadRequest(c, "неизвестный статус заказа")
			return
		}
	}

	limit, offset := common.GetPagination(c)
	jobs := h.ledger.ListJobs(status, limit, offset)

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// ListJobEvents GET /api/jobs/:id/events
func (h *JobHandler) ListJobEvents(c *gin.Context) {
	jobID, err := common.ParseUint64Param(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if h.journal == nil {
		common.RespondError(c, http.StatusServiceUnavailable, "журнал событий отключён")
		return
	}

	limit, offset := common.GetPagination(c)
	entries, err := h.journal.ListByJob(c.Request.Context(), jobID, limit, offset)
	if err != nil {
		common.RespondInternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": entries})
}
