package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barbera-app/barbera-api/internal/audit"
	"github.com/barbera-app/barbera-api/internal/httperr"
	"github.com/barbera-app/barbera-api/internal/httpresp"
	"github.com/barbera-app/barbera-api/internal/middleware"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/storage"
)

const maxPostMediaBytes = 10 << 20
const maxPostMediaFiles = 6
const postMediaMaxEdge = 1600

type PostHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
	audit *audit.Dispatcher
}

func NewPostHandler(db *gorm.DB, media *storage.MediaStore, auditor *audit.Dispatcher) *PostHandler {
	return &PostHandler{db: db, media: media, audit: auditor}
}

func (h *PostHandler) ListMine(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var posts []models.Post
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_posts", "Could not load posts.")
		return
	}

	httpresp.List(c, posts)
}

// Create accepts a multipart form: a caption plus up to six images. Every
// image is re-encoded before storage so the bucket only ever holds webp.
func (h *PostHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	form, err := c.MultipartForm()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Expected a multipart form.")
		return
	}

	caption := ""
	if v := form.Value["caption"]; len(v) > 0 {
		caption = v[0]
	}
	if len(caption) > 500 {
		httperr.BadRequest(c, "caption_too_long", "Caption must be at most 500 characters.")
		return
	}

	files := form.File["media"]
	if len(files) == 0 {
		httperr.BadRequest(c, "missing_media", "A post needs at least one image.")
		return
	}
	if len(files) > maxPostMediaFiles {
		httperr.BadRequest(c, "too_many_files", "A post can hold at most six images.")
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "unreadable_file", "Could not read upload.")
			return
		}

		data, err := io.ReadAll(io.LimitReader(f, maxPostMediaBytes+1))
		f.Close()
		if err != nil {
			httperr.BadRequest(c, "unreadable_file", "Could not read upload.")
			return
		}
		if len(data) > maxPostMediaBytes {
			httperr.BadRequest(c, "file_too_large", "Each image must be at most 10MB.")
			return
		}

		encoded, err := storage.NormalizeImage(data, postMediaMaxEdge)
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Uploads must be jpeg or png images.")
			return
		}

		key := fmt.Sprintf("posts/%d/%s.webp", barberID, uuid.NewString())
		url, err := h.media.PutRetrying(c.Request.Context(), key, "image/webp", encoded)
		if err != nil {
			httperr.Internal(c, "upload_failed", "Could not store image.")
			return
		}
		urls = append(urls, url)
	}

	encodedURLs, err := json.Marshal(urls)
	if err != nil {
		httperr.Internal(c, "failed_to_create_post", "Could not save post.")
		return
	}

	post := models.Post{
		BarberID:  barberID,
		Caption:   caption,
		MediaURLs: string(encodedURLs),
	}
	if err := h.db.Create(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_create_post", "Could not save post.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "post_created",
		Entity:   "post",
		EntityID: &post.ID,
	})

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_post_id", "Invalid post id.")
		return
	}

	var post models.Post
	if err := h.db.
		Where("id = ? AND barber_id = ?", postID, barberID).
		First(&post).Error; err != nil {
		httperr.NotFound(c, "post_not_found", "Post not found.")
		return
	}

	// Best-effort cleanup of the stored objects: a failed delete must not
	// fail the request, any orphan is caught by the bucket lifecycle rules.
	var urls []string
	if json.Unmarshal([]byte(post.MediaURLs), &urls) == nil {
		for _, url := range urls {
			if key, ok := h.media.KeyFromURL(url); ok {
				_ = h.media.Delete(c.Request.Context(), key)
			}
		}
	}

	if err := h.db.Delete(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_post", "Could not delete post.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "post_deleted",
		Entity:   "post",
		EntityID: &post.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
