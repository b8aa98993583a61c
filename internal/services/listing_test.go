package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/types"
)

func newListingFixture(t *testing.T, packs *stubPackRepo, favs *stubFavoriteRepo, purchases *stubPurchaseRepo, users *stubUserRepo) ListingService {
	t.Helper()
	if favs == nil {
		favs = &stubFavoriteRepo{}
	}
	if purchases == nil {
		purchases = &stubPurchaseRepo{}
	}
	if users == nil {
		users = &stubUserRepo{}
	}
	return NewListingService(nil, testLogger(t), packs, favs, purchases, users)
}

func TestBrowseDefaultsForAnonymousViewer(t *testing.T) {
	t.Parallel()

	creatorID := uuid.New()
	pack := &types.PromptPack{
		ID:            uuid.New(),
		Title:         "Night City Prompts",
		Prompt:        "teaser",
		FullPrompt:    "the whole thing",
		Price:         9.99,
		PreviewImages: []string{"https://cdn.example.com/a.png"},
		CreatorID:     creatorID,
	}
	svc := newListingFixture(t, &stubPackRepo{rows: []*types.PromptPack{pack}}, nil, nil, nil)

	views, err := svc.Browse(context.Background(), nil, repos.ListingFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}

	v := views[0]
	if v.FavoriteCount != 0 {
		t.Fatalf("expected zero favorite count, got %d", v.FavoriteCount)
	}
	if v.IsFavorited || v.HasPurchased {
		t.Fatalf("anonymous viewer must have no memberships: favorited=%v purchased=%v", v.IsFavorited, v.HasPurchased)
	}
	if v.FullPrompt != "" {
		t.Fatalf("paid pack must not expose full prompt to anonymous viewer, got %q", v.FullPrompt)
	}
	if v.CreatorName != AnonymousCreatorName {
		t.Fatalf("missing creator must render as %q, got %q", AnonymousCreatorName, v.CreatorName)
	}
}

func TestBrowseCreatorFallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		user       *types.User
		wantName   string
		wantStored bool
	}{
		{
			name:     "full name wins",
			user:     &types.User{FullName: "Ada Lovelace", Username: "ada"},
			wantName: "Ada Lovelace",
		},
		{
			name:     "username when full name blank",
			user:     &types.User{FullName: "   ", Username: "ada"},
			wantName: "ada",
		},
		{
			name:     "anonymous when both blank",
			user:     &types.User{},
			wantName: AnonymousCreatorName,
		},
		{
			name:       "stored avatar wins",
			user:       &types.User{FullName: "Ada Lovelace", AvatarURL: "https://cdn.example.com/ada.png"},
			wantName:   "Ada Lovelace",
			wantStored: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			name, avatarURL := resolveCreator(tc.user)
			if name != tc.wantName {
				t.Fatalf("expected name %q, got %q", tc.wantName, name)
			}
			if tc.wantStored {
				if avatarURL != tc.user.AvatarURL {
					t.Fatalf("expected stored avatar %q, got %q", tc.user.AvatarURL, avatarURL)
				}
				return
			}
			if avatarURL != PlaceholderAvatarURL(tc.wantName) {
				t.Fatalf("expected placeholder seeded by %q, got %q", tc.wantName, avatarURL)
			}
		})
	}
}

func TestPlaceholderAvatarURLDeterministic(t *testing.T) {
	t.Parallel()

	first := PlaceholderAvatarURL("Ada Lovelace")
	second := PlaceholderAvatarURL("Ada Lovelace")
	if first != second {
		t.Fatalf("same seed must produce same URL: %q vs %q", first, second)
	}
	if !strings.Contains(first, "seed=Ada+Lovelace") && !strings.Contains(first, "seed=Ada%20Lovelace") {
		t.Fatalf("seed must be escaped into the URL, got %q", first)
	}
}

func TestBrowseDegradesWhenCountAggregateFails(t *testing.T) {
	t.Parallel()

	viewerID := uuid.New()
	pack := &types.PromptPack{ID: uuid.New(), Title: "p", CreatorID: uuid.New(), PreviewImages: []string{"x.png"}}
	favs := &stubFavoriteRepo{
		countsErr: fmt.Errorf("aggregate exploded"),
		userEdges: map[uuid.UUID][]uuid.UUID{viewerID: {pack.ID}},
	}
	svc := newListingFixture(t, &stubPackRepo{rows: []*types.PromptPack{pack}}, favs, nil, nil)

	views, err := svc.Browse(context.Background(), &viewerID, repos.ListingFilter{})
	if err != nil {
		t.Fatalf("listing must survive an aggregate failure, got %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].FavoriteCount != 0 {
		t.Fatalf("failed aggregate must default counts to zero, got %d", views[0].FavoriteCount)
	}
	if !views[0].IsFavorited {
		t.Fatalf("viewer membership should still resolve when only the aggregate fails")
	}
}

func TestBrowseViewerMemberships(t *testing.T) {
	t.Parallel()

	viewerID := uuid.New()
	creatorID := uuid.New()
	favorited := &types.PromptPack{ID: uuid.New(), Title: "a", CreatorID: creatorID}
	purchased := &types.PromptPack{ID: uuid.New(), Title: "b", Price: 5, FullPrompt: "secret", CreatorID: creatorID}
	untouched := &types.PromptPack{ID: uuid.New(), Title: "c", Price: 5, FullPrompt: "secret", CreatorID: creatorID}

	favs := &stubFavoriteRepo{
		counts:    map[uuid.UUID]int64{favorited.ID: 7},
		userEdges: map[uuid.UUID][]uuid.UUID{viewerID: {favorited.ID}},
	}
	purchases := &stubPurchaseRepo{userEdges: map[uuid.UUID][]uuid.UUID{viewerID: {purchased.ID}}}
	svc := newListingFixture(t, &stubPackRepo{rows: []*types.PromptPack{favorited, purchased, untouched}}, favs, purchases, nil)

	views, err := svc.Browse(context.Background(), &viewerID, repos.ListingFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	byID := make(map[uuid.UUID]EnrichedPackView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	if v := byID[favorited.ID]; !v.IsFavorited || v.FavoriteCount != 7 {
		t.Fatalf("favorited pack: favorited=%v count=%d", v.IsFavorited, v.FavoriteCount)
	}
	if v := byID[purchased.ID]; !v.HasPurchased || v.FullPrompt != "secret" {
		t.Fatalf("purchased pack must unlock full prompt: purchased=%v full=%q", v.HasPurchased, v.FullPrompt)
	}
	if v := byID[untouched.ID]; v.HasPurchased || v.FullPrompt != "" {
		t.Fatalf("unpurchased paid pack must stay locked: purchased=%v full=%q", v.HasPurchased, v.FullPrompt)
	}
}

func TestFullPromptUnlockRules(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	otherID := uuid.New()
	paid := &types.PromptPack{ID: uuid.New(), Price: 10, CreatorID: ownerID}
	free := &types.PromptPack{ID: uuid.New(), Price: 0, CreatorID: ownerID}

	if !packUnlocked(free, nil, nil) {
		t.Fatalf("free pack must always be unlocked")
	}
	if packUnlocked(paid, nil, nil) {
		t.Fatalf("paid pack must be locked for anonymous viewers")
	}
	if !packUnlocked(paid, &ownerID, nil) {
		t.Fatalf("creator must see their own full prompt")
	}
	if packUnlocked(paid, &otherID, map[uuid.UUID]bool{}) {
		t.Fatalf("non-purchaser must stay locked")
	}
	if !packUnlocked(paid, &otherID, map[uuid.UUID]bool{paid.ID: true}) {
		t.Fatalf("purchaser must be unlocked")
	}
}

func TestNormalizePreviewImages(t *testing.T) {
	t.Parallel()

	got := normalizePreviewImages([]string{" ", "", "https://cdn.example.com/a.png"})
	if len(got) != 1 || got[0] != "https://cdn.example.com/a.png" {
		t.Fatalf("blank entries must be dropped, got %v", got)
	}

	got = normalizePreviewImages(nil)
	if len(got) != 1 || got[0] != FallbackPreviewImage {
		t.Fatalf("empty list must fall back to placeholder, got %v", got)
	}
}

// trackingPackRepo fails the test if any row fetch happens.
type trackingPackRepo struct {
	stubPackRepo
	t *testing.T
}

func (r *trackingPackRepo) GetByIDs(ctx context.Context, tx *gorm.DB, packIDs []uuid.UUID) ([]*types.PromptPack, error) {
	r.t.Fatalf("GetByIDs must not be called when the viewer has no favorites")
	return nil, nil
}

func TestFavoritePacksShortCircuitsOnEmptySet(t *testing.T) {
	t.Parallel()

	viewerID := uuid.New()
	packs := &trackingPackRepo{t: t}
	svc := NewListingService(nil, testLogger(t), packs, &stubFavoriteRepo{}, &stubPurchaseRepo{}, &stubUserRepo{})

	views, err := svc.FavoritePacks(context.Background(), viewerID)
	if err != nil {
		t.Fatalf("FavoritePacks: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", views)
	}
}

func TestPackDetailIncludesRelatedAndBio(t *testing.T) {
	t.Parallel()

	creator := &types.User{ID: uuid.New(), FullName: "Ada Lovelace", Bio: "writes prompts"}
	main := &types.PromptPack{ID: uuid.New(), Title: "main", CreatorID: creator.ID}
	rel1 := &types.PromptPack{ID: uuid.New(), Title: "rel1", CreatorID: creator.ID}
	rel2 := &types.PromptPack{ID: uuid.New(), Title: "rel2", CreatorID: creator.ID}

	users := &stubUserRepo{users: map[uuid.UUID]*types.User{creator.ID: creator}}
	svc := newListingFixture(t, &stubPackRepo{rows: []*types.PromptPack{main, rel1, rel2}}, nil, nil, users)

	detail, err := svc.PackDetail(context.Background(), nil, main.ID)
	if err != nil {
		t.Fatalf("PackDetail: %v", err)
	}
	if detail.Pack.ID != main.ID {
		t.Fatalf("expected pack %s, got %s", main.ID, detail.Pack.ID)
	}
	if detail.CreatorBio != "writes prompts" {
		t.Fatalf("expected creator bio, got %q", detail.CreatorBio)
	}
	if len(detail.Related) != 2 {
		t.Fatalf("expected 2 related packs, got %d", len(detail.Related))
	}
	for _, r := range detail.Related {
		if r.ID == main.ID {
			t.Fatalf("related packs must exclude the pack itself")
		}
		if r.CreatorName != "Ada Lovelace" {
			t.Fatalf("related packs must carry creator identity, got %q", r.CreatorName)
		}
	}
}
