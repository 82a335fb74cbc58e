package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobledger/jobledger-backend/internal/dto"
	"github.com/jobledger/jobledger-backend/internal/http/handlers/common"
	"github.com/jobledger/jobledger-backend/internal/ledger"
	"github.com/jobledger/jobledger-backend/internal/storage"
	"github.com/jobledger/jobledger-backend/internal/validation"
)

// ProfileHandler обслуживает публичные профили участников.
type ProfileHandler struct {
	ledger  *ledger.Ledger
	avatars *storage.AvatarStorage
}

func NewProfileHandler(l *ledger.Ledger, avatars *storage.AvatarStorage) *ProfileHandler {
	return &ProfileHandler{ledger: l, avatars: avatars}
}

// GetProfile GET /api/users/:id/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, ok := h.ledger.GetProfile(userID)
	if !ok {
		common.RespondNotFound(c, "профиль не найден")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if req.DisplayName != nil {
		if err := validation.ValidateDisplayName(*req.DisplayName); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}
	if err := validation.ValidateBio(req.Bio); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateLocation(req.Location); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.ledger.UpdateProfile(c.Request.Context(), userID, ledger.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateSkills PUT /api/profile/skills
func (h *ProfileHandler) UpdateSkills(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateSkills(req.Skills); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.ledger.UpdateSkills(c.Request.Context(), userID, req.Skills)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar POST /api/profile/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		common.RespondBadRequest(c, "поле avatar обязательно")
		return
	}
	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondInternalError(c, "")
		return
	}
	defer src.Close()

	// Старый аватар удаляем только после успешной замены.
	old, _ := h.ledger.GetProfile(userID)

	path, err := h.avatars.Save(c.Request.Context(), userID, src)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.ledger.SetAvatar(c.Request.Context(), userID, path)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if old.AvatarPath != nil && *old.AvatarPath != path {
		_ = h.avatars.Delete(c.Request.Context(), *old.AvatarPath)
	}

	c.JSON(http.StatusOK, profile)
}
