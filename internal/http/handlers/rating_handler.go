package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
)

// RatingHandler обслуживает оценки завершённых заказов и репутацию.
type RatingHandler struct {
	ledger *ledger.Ledger
}

func NewRatingHandler(l *ledger.Ledger) *RatingHandler {
	return &RatingHandler{ledger: l}
}

// RateJob POST /api/jobs/:id/rate
func (h *RatingHandler) RateJob(c *gin.Context) {
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

	var req dto.RateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "рейтинг должен быть от 1 до 5")
		return
	}

	rating, err := h.ledger.RateJob(c.Request.Context(), userID, jobID, req.Rating)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// GetUserRating GET /api/users/:id/rating
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, h.ledger.GetUserRating(userID))
}
