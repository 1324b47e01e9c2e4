package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/middleware"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/storage"
	"github.com/barbera-app/barbera-api/internal/timezone"
)

const maxAvatarBytes = 10 << 20 // 10MB, matching the upload form limit
const avatarMaxEdge = 512

type MeHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewMeHandler(db *gorm.DB, media *storage.MediaStore) *MeHandler {
	return &MeHandler{db: db, media: media}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.Profile
	if err := h.db.First(&profile, userID).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdateMeRequest struct {
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.Profile
	if err := h.db.First(&profile, userID).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone name.")
			return
		}
		profile.Timezone = *req.Timezone
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar re-encodes the picture as webp and stores it under a key
// derived from the user id. The store put is create-only and retried once
// with a random suffix if the key is somehow taken.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "No file in upload.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		httperr.BadRequest(c, "unreadable_file", "Could not read upload.")
		return
	}
	if len(data) > maxAvatarBytes {
		httperr.BadRequest(c, "file_too_large", "Avatar must be at most 10MB.")
		return
	}

	encoded, err := storage.NormalizeImage(data, avatarMaxEdge)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Upload must be a jpeg or png image.")
		return
	}

	key := fmt.Sprintf("avatars/%d.webp", userID)
	url, err := h.media.PutRetrying(c.Request.Context(), key, "image/webp", encoded)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store avatar.")
		return
	}

	if err := h.db.Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save avatar URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
