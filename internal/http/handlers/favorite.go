package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/promptvault-backend/internal/ctxutil"
	"github.com/yungbote/promptvault-backend/internal/http/response"
	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/services"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// POST /api/packs/:id/favorite
func (fh *FavoriteHandler) Toggle(c *gin.Context) {
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

	result, err := fh.favoriteService.Toggle(c.Request.Context(), *viewerID, packID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "pack_not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "favorite_toggle_failed", err)
		return
	}
	response.RespondOK(c, result)
}
