package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/types"
)

func newFavoriteFixture(t *testing.T, packs *stubPackRepo, favs *stubFavoriteRepo) *favoriteService {
	t.Helper()
	svc := NewFavoriteService(nil, testLogger(t), packs, favs, nil)
	fs, ok := svc.(*favoriteService)
	if !ok {
		t.Fatalf("unexpected favorite service implementation %T", svc)
	}
	return fs
}

func TestFavoriteToggleRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	otherID := uuid.New()
	pack := &types.PromptPack{ID: uuid.New(), Title: "p", CreatorID: uuid.New()}
	favs := &stubFavoriteRepo{
		userEdges: map[uuid.UUID][]uuid.UUID{otherID: {pack.ID}},
	}
	fs := newFavoriteFixture(t, &stubPackRepo{rows: []*types.PromptPack{pack}}, favs)
	ctx := context.Background()

	first, err := fs.applyToggle(ctx, nil, userID, pack.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Favorited || first.FavoriteCount != 2 {
		t.Fatalf("first toggle must favorite and count both edges: favorited=%v count=%d", first.Favorited, first.FavoriteCount)
	}

	second, err := fs.applyToggle(ctx, nil, userID, pack.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Favorited || second.FavoriteCount != 1 {
		t.Fatalf("second toggle must restore the original state: favorited=%v count=%d", second.Favorited, second.FavoriteCount)
	}

	exists, err := favs.Exists(ctx, nil, userID, pack.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("edge must be gone after toggling twice")
	}
}

func TestFavoriteToggleCountsOnlyTargetPack(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	pack := &types.PromptPack{ID: uuid.New(), Title: "a", CreatorID: uuid.New()}
	unrelated := &types.PromptPack{ID: uuid.New(), Title: "b", CreatorID: uuid.New()}
	favs := &stubFavoriteRepo{
		userEdges: map[uuid.UUID][]uuid.UUID{userID: {unrelated.ID}},
	}
	fs := newFavoriteFixture(t, &stubPackRepo{rows: []*types.PromptPack{pack, unrelated}}, favs)

	result, err := fs.applyToggle(context.Background(), nil, userID, pack.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !result.Favorited || result.FavoriteCount != 1 {
		t.Fatalf("count must cover the toggled pack only: favorited=%v count=%d", result.Favorited, result.FavoriteCount)
	}
}

func TestFavoriteToggleUnknownPack(t *testing.T) {
	t.Parallel()

	fs := newFavoriteFixture(t, &stubPackRepo{}, &stubFavoriteRepo{})

	_, err := fs.Toggle(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown pack, got %v", err)
	}
}
