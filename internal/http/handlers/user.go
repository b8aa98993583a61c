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

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	user, err := uh.userService.GetByID(c.Request.Context(), *viewerID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "get_me_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"me": user})
}

// PATCH /api/me
func (uh *UserHandler) UpdateMe(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	var req struct {
		FullName *string `json:"full_name"`
		Username *string `json:"username"`
		Bio      *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.FullName == nil && req.Username == nil && req.Bio == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("no profile changes provided"))
		return
	}

	user, err := uh.userService.UpdateProfile(c.Request.Context(), *viewerID, services.UpdateProfileInput{
		FullName: req.FullName,
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_profile_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"me": user})
}

// POST /api/me/avatar (multipart, field "avatar")
func (uh *UserHandler) UploadAvatar(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "avatar_required", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_avatar_failed", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, services.MaxImageBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_avatar_failed", err)
		return
	}

	user, err := uh.userService.UpdateAvatar(c.Request.Context(), *viewerID, data)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_avatar_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"me": user})
}

// GET /api/users/:id
func (uh *UserHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	user, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "get_user_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}
