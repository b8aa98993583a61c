package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/promptvault-backend/internal/ctxutil"
	"github.com/yungbote/promptvault-backend/internal/http/response"
	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/services"
)

type ListingHandler struct {
	listingService services.ListingService
}

func NewListingHandler(listingService services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// GET /api/packs
// query: categories (CSV), ai_model, price_min, price_max, search, sort
func (lh *ListingHandler) Browse(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	views, err := lh.listingService.Browse(c.Request.Context(), ctxutil.ViewerID(c.Request.Context()), filter)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "browse_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"packs": views})
}

// GET /api/packs/:id
func (lh *ListingHandler) Detail(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_pack_id", err)
		return
	}

	detail, err := lh.listingService.PackDetail(c.Request.Context(), ctxutil.ViewerID(c.Request.Context()), packID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "pack_not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "detail_failed", err)
		return
	}
	response.RespondOK(c, detail)
}

// GET /api/users/:id/packs
func (lh *ListingHandler) PacksByCreator(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	views, err := lh.listingService.PacksByCreator(c.Request.Context(), ctxutil.ViewerID(c.Request.Context()), creatorID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "creator_packs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"packs": views})
}

// GET /api/me/packs
func (lh *ListingHandler) MyPacks(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	views, err := lh.listingService.PacksByCreator(c.Request.Context(), viewerID, *viewerID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "my_packs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"packs": views})
}

// GET /api/me/favorites
func (lh *ListingHandler) MyFavorites(c *gin.Context) {
	viewerID := ctxutil.ViewerID(c.Request.Context())
	if viewerID == nil {
		response.RespondError(c, http.StatusUnauthorized, "auth_required", errors.New("authentication required"))
		return
	}

	views, err := lh.listingService.FavoritePacks(c.Request.Context(), *viewerID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "favorites_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"packs": views})
}

func filterFromQuery(c *gin.Context) (repos.ListingFilter, error) {
	filter := repos.ListingFilter{
		AIModel:  strings.TrimSpace(c.Query("ai_model")),
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     strings.TrimSpace(c.Query("sort")),
		PriceMin: repos.DefaultPriceMin,
		PriceMax: repos.DefaultPriceMax,
	}
	if raw := c.Query("categories"); raw != "" {
		filter.Categories = strings.Split(raw, ",")
	}
	if raw := c.Query("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("price_min must be a number")
		}
		filter.PriceMin = v
	}
	if raw := c.Query("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("price_max must be a number")
		}
		filter.PriceMax = v
	}
	if filter.PriceMin > filter.PriceMax {
		return filter, errors.New("price_min cannot exceed price_max")
	}
	if filter.Sort != "" && filter.Sort != repos.SortNewest && filter.Sort != repos.SortPopular {
		return filter, errors.New("sort must be newest or popular")
	}
	return filter, nil
}
