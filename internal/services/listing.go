package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/types"
)

const (
	// AnonymousCreatorName is shown when the creator row is missing.
	AnonymousCreatorName = "Anonymous"

	// FallbackPreviewImage replaces an empty preview list.
	FallbackPreviewImage = "https://placehold.co/400x400/e0e0e0/9e9e9e?text=No+Preview"
)

// EnrichedPackView is the single row shape every listing surface returns:
// the pack record joined with creator identity, the favorite-count
// aggregate, and the viewer's favorite/purchase membership.
type EnrichedPackView struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Prompt        string    `json:"prompt"`
	FullPrompt    string    `json:"full_prompt,omitempty"`
	Description   string    `json:"description"`
	AIModel       string    `json:"ai_model"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	PreviewImages []string  `json:"preview_images"`
	CreatorID     uuid.UUID `json:"creator_id"`
	CreatorName   string    `json:"creator_name"`
	CreatorAvatar string    `json:"creator_avatar_url"`
	FavoriteCount int64     `json:"favorite_count"`
	IsFavorited   bool      `json:"is_favorited"`
	HasPurchased  bool      `json:"has_purchased"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PackDetailView is the detail-page payload: the enriched pack plus the
// creator bio and up to three other packs by the same creator.
type PackDetailView struct {
	Pack       EnrichedPackView   `json:"pack"`
	CreatorBio string             `json:"creator_bio"`
	Related    []EnrichedPackView `json:"related"`
}

type ListingService interface {
	Browse(ctx context.Context, viewerID *uuid.UUID, filter repos.ListingFilter) ([]EnrichedPackView, error)
	PacksByCreator(ctx context.Context, viewerID *uuid.UUID, creatorID uuid.UUID) ([]EnrichedPackView, error)
	FavoritePacks(ctx context.Context, viewerID uuid.UUID) ([]EnrichedPackView, error)
	PackDetail(ctx context.Context, viewerID *uuid.UUID, packID uuid.UUID) (*PackDetailView, error)
}

type listingService struct {
	db           *gorm.DB
	log          *logger.Logger
	packRepo     repos.PromptPackRepo
	favoriteRepo repos.FavoriteRepo
	purchaseRepo repos.PurchaseRepo
	userRepo     repos.UserRepo
}

func NewListingService(
	db *gorm.DB,
	log *logger.Logger,
	packRepo repos.PromptPackRepo,
	favoriteRepo repos.FavoriteRepo,
	purchaseRepo repos.PurchaseRepo,
	userRepo repos.UserRepo,
) ListingService {
	serviceLog := log.With("service", "ListingService")
	return &listingService{
		db:           db,
		log:          serviceLog,
		packRepo:     packRepo,
		favoriteRepo: favoriteRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
	}
}

func (ls *listingService) Browse(ctx context.Context, viewerID *uuid.UUID, filter repos.ListingFilter) ([]EnrichedPackView, error) {
	rows, err := ls.packRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	return ls.enrich(ctx, rows, viewerID), nil
}

func (ls *listingService) PacksByCreator(ctx context.Context, viewerID *uuid.UUID, creatorID uuid.UUID) ([]EnrichedPackView, error) {
	rows, err := ls.packRepo.ListByCreator(ctx, nil, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list packs by creator: %w", err)
	}
	return ls.enrich(ctx, rows, viewerID), nil
}

func (ls *listingService) FavoritePacks(ctx context.Context, viewerID uuid.UUID) ([]EnrichedPackView, error) {
	packIDs, err := ls.favoriteRepo.ListPackIDsByUser(ctx, nil, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list favorite edges: %w", err)
	}
	// No edges, no row query.
	if len(packIDs) == 0 {
		return []EnrichedPackView{}, nil
	}

	rows, err := ls.packRepo.GetByIDs(ctx, nil, packIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch favorite packs: %w", err)
	}
	return ls.enrich(ctx, rows, &viewerID), nil
}

func (ls *listingService) PackDetail(ctx context.Context, viewerID *uuid.UUID, packID uuid.UUID) (*PackDetailView, error) {
	pack, err := ls.packRepo.GetByID(ctx, nil, packID)
	if err != nil {
		return nil, err
	}

	views := ls.enrich(ctx, []*types.PromptPack{pack}, viewerID)

	related, err := ls.packRepo.ListRelated(ctx, nil, pack.CreatorID, pack.ID, 3)
	if err != nil {
		ls.log.Warn("related packs fetch failed; returning detail without them", "packID", packID, "error", err)
		related = nil
	}

	bio := ""
	if creator, err := ls.userRepo.GetByID(ctx, nil, pack.CreatorID); err == nil {
		bio = creator.Bio
	}

	return &PackDetailView{
		Pack:       views[0],
		CreatorBio: bio,
		Related:    ls.enrich(ctx, related, viewerID),
	}, nil
}

// enrich joins rows with favorite counts, viewer membership sets, and
// creator identity. The three sub-fetches run concurrently and the merge
// waits for all of them; each degrades independently (zero counts, empty
// sets, anonymous creator) so a secondary failure never drops the listing.
func (ls *listingService) enrich(ctx context.Context, rows []*types.PromptPack, viewerID *uuid.UUID) []EnrichedPackView {
	if len(rows) == 0 {
		return []EnrichedPackView{}
	}

	creatorIDs := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if !seen[row.CreatorID] {
			seen[row.CreatorID] = true
			creatorIDs = append(creatorIDs, row.CreatorID)
		}
	}

	counts := map[uuid.UUID]int64{}
	favSet := map[uuid.UUID]bool{}
	purchSet := map[uuid.UUID]bool{}
	creators := map[uuid.UUID]*types.User{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := ls.favoriteRepo.CountsByPack(gctx, nil)
		if err != nil {
			ls.log.Warn("favorite count aggregate failed; defaulting counts to zero", "error", err)
			return nil
		}
		counts = m
		return nil
	})

	g.Go(func() error {
		if viewerID == nil {
			return nil
		}
		favIDs, err := ls.favoriteRepo.ListPackIDsByUser(gctx, nil, *viewerID)
		if err != nil {
			ls.log.Warn("viewer favorite membership fetch failed; defaulting to none", "error", err)
		} else {
			for _, id := range favIDs {
				favSet[id] = true
			}
		}
		purchIDs, err := ls.purchaseRepo.ListPackIDsByUser(gctx, nil, *viewerID)
		if err != nil {
			ls.log.Warn("viewer purchase membership fetch failed; defaulting to none", "error", err)
			return nil
		}
		for _, id := range purchIDs {
			purchSet[id] = true
		}
		return nil
	})

	g.Go(func() error {
		users, err := ls.userRepo.GetByIDs(gctx, nil, creatorIDs)
		if err != nil {
			ls.log.Warn("creator batch fetch failed; rendering anonymous creators", "error", err)
			return nil
		}
		for _, u := range users {
			creators[u.ID] = u
		}
		return nil
	})

	// Sub-fetches never return errors; Wait is the join barrier.
	_ = g.Wait()

	views := make([]EnrichedPackView, 0, len(rows))
	for _, row := range rows {
		name, avatarURL := resolveCreator(creators[row.CreatorID])

		view := EnrichedPackView{
			ID:            row.ID,
			Title:         row.Title,
			Prompt:        row.Prompt,
			Description:   row.Description,
			AIModel:       row.AIModel,
			Category:      row.Category,
			Price:         row.Price,
			PreviewImages: normalizePreviewImages(row.PreviewImages),
			CreatorID:     row.CreatorID,
			CreatorName:   name,
			CreatorAvatar: avatarURL,
			FavoriteCount: counts[row.ID],
			IsFavorited:   favSet[row.ID],
			HasPurchased:  purchSet[row.ID],
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		}
		if packUnlocked(row, viewerID, purchSet) {
			view.FullPrompt = row.FullPrompt
		}
		views = append(views, view)
	}
	return views
}

// packUnlocked gates the full prompt: free packs and the creator's own
// packs are always unlocked, everything else requires a purchase edge.
func packUnlocked(row *types.PromptPack, viewerID *uuid.UUID, purchSet map[uuid.UUID]bool) bool {
	if row.Price == 0 {
		return true
	}
	if viewerID != nil && *viewerID == row.CreatorID {
		return true
	}
	return purchSet[row.ID]
}

// resolveCreator applies the display fallback chain: full name, then
// username, then "Anonymous"; stored avatar URL, then a placeholder seeded
// by the resolved name so the same creator always renders the same avatar.
func resolveCreator(u *types.User) (name, avatarURL string) {
	name = AnonymousCreatorName
	if u != nil {
		if n := strings.TrimSpace(u.FullName); n != "" {
			name = n
		} else if n := strings.TrimSpace(u.Username); n != "" {
			name = n
		}
		if a := strings.TrimSpace(u.AvatarURL); a != "" {
			return name, a
		}
	}
	return name, PlaceholderAvatarURL(name)
}

func normalizePreviewImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			continue
		}
		out = append(out, img)
	}
	if len(out) == 0 {
		return []string{FallbackPreviewImage}
	}
	return out
}
