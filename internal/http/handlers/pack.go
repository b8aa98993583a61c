package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/promptvault-backend/internal/ctxutil"
	"github.com/yungbote/promptvault-backend/internal/http/response"
	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/services"
)

type PackHandler struct {
	packService services.PackService
}

func NewPackHandler(packService services.PackService) *PackHandler {
	return &PackHandler{packService: packService}
}

// POST /api/packs
func (ph *PackHandler) Publish(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	var req struct {
		Title         string   `json:"title"`
		Prompt        string   `json:"prompt"`
		FullPrompt    string   `json:"full_prompt"`
		Description   string   `json:"description"`
		AIModel       string   `json:"ai_model"`
		Category      string   `json:"category"`
		Price         float64  `json:"price"`
		PreviewImages []string `json:"preview_images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	pack, err := ph.packService.Publish(c.Request.Context(), *viewerID, services.PublishPackInput{
		Title:         req.Title,
		Prompt:        req.Prompt,
		FullPrompt:    req.FullPrompt,
		Description:   req.Description,
		AIModel:       req.AIModel,
		Category:      req.Category,
		Price:         req.Price,
		PreviewImages: req.PreviewImages,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "publish_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pack": pack})
}

// PATCH /api/packs/:id
func (ph *PackHandler) Update(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_pack_id", err)
		return
	}
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	var req struct {
		Title         *string   `json:"title"`
		Prompt        *string   `json:"prompt"`
		FullPrompt    *string   `json:"full_prompt"`
		Description   *string   `json:"description"`
		AIModel       *string   `json:"ai_model"`
		Category      *string   `json:"category"`
		Price         *float64  `json:"price"`
		PreviewImages *[]string `json:"preview_images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	pack, err := ph.packService.Update(c.Request.Context(), *viewerID, packID, services.UpdatePackInput{
		Title:         req.Title,
		Prompt:        req.Prompt,
		FullPrompt:    req.FullPrompt,
		Description:   req.Description,
		AIModel:       req.AIModel,
		Category:      req.Category,
		Price:         req.Price,
		PreviewImages: req.PreviewImages,
	})
	if err != nil {
		respondPackMutationError(c, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"pack": pack})
}

// DELETE /api/packs/:id
func (ph *PackHandler) Delete(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_pack_id", err)
		return
	}
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	if err := ph.packService.Delete(c.Request.Context(), *viewerID, packID); err != nil {
		respondPackMutationError(c, "delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/packs/images (multipart, field "images")
func (ph *PackHandler) UploadPreviewImages(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart", err)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.RespondError(c, http.StatusBadRequest, "no_images", errors.New("no images provided"))
		return
	}

	images := make([]services.UploadImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "read_image_failed", err)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, services.MaxImageBytes+1))
		f.Close()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "read_image_failed", err)
			return
		}
		images = append(images, services.UploadImage{Filename: fh.Filename, Data: data})
	}

	urls, err := ph.packService.UploadPreviewImages(c.Request.Context(), *viewerID, images)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "upload_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"urls": urls})
}

func respondPackMutationError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, repos.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "pack_not_found", err)
	case errors.Is(err, services.ErrNotPackOwner):
		response.RespondError(c, http.StatusForbidden, "not_pack_owner", err)
	default:
		response.RespondError(c, http.StatusBadRequest, code, err)
	}
}
