package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/types"
)

func testLogger(t interface{ Fatalf(string, ...any) }) *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// ---------- pack repo stub ----------

type stubPackRepo struct {
	rows    []*types.PromptPack
	listErr error
}

func (s *stubPackRepo) Create(ctx context.Context, tx *gorm.DB, packs []*types.PromptPack) ([]*types.PromptPack, error) {
	for _, p := range packs {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.rows = append(s.rows, p)
	}
	return packs, nil
}

func (s *stubPackRepo) Update(ctx context.Context, tx *gorm.DB, pack *types.PromptPack) error {
	return nil
}

func (s *stubPackRepo) Delete(ctx context.Context, tx *gorm.DB, packID uuid.UUID) error {
	kept := s.rows[:0]
	for _, p := range s.rows {
		if p.ID != packID {
			kept = append(kept, p)
		}
	}
	s.rows = kept
	return nil
}

func (s *stubPackRepo) GetByID(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (*types.PromptPack, error) {
	for _, p := range s.rows {
		if p.ID == packID {
			return p, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (s *stubPackRepo) GetByIDs(ctx context.Context, tx *gorm.DB, packIDs []uuid.UUID) ([]*types.PromptPack, error) {
	want := make(map[uuid.UUID]bool, len(packIDs))
	for _, id := range packIDs {
		want[id] = true
	}
	var out []*types.PromptPack
	for _, p := range s.rows {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPackRepo) List(ctx context.Context, tx *gorm.DB, filter repos.ListingFilter) ([]*types.PromptPack, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rows, nil
}

func (s *stubPackRepo) ListByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.PromptPack, error) {
	var out []*types.PromptPack
	for _, p := range s.rows {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPackRepo) ListRelated(ctx context.Context, tx *gorm.DB, creatorID, excludeID uuid.UUID, limit int) ([]*types.PromptPack, error) {
	var out []*types.PromptPack
	for _, p := range s.rows {
		if p.CreatorID == creatorID && p.ID != excludeID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---------- favorite repo stub ----------

type stubFavoriteRepo struct {
	counts    map[uuid.UUID]int64
	userEdges map[uuid.UUID][]uuid.UUID
	countsErr error
	edgesErr  error
}

func (s *stubFavoriteRepo) CountsByPack(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
	if s.countsErr != nil {
		return nil, s.countsErr
	}
	return s.counts, nil
}

// CountForPack recounts from the edge state so toggles see the effect of
// their own inserts and deletes, like the real aggregate would.
func (s *stubFavoriteRepo) CountForPack(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (int64, error) {
	var n int64
	for _, edges := range s.userEdges {
		for _, id := range edges {
			if id == packID {
				n++
			}
		}
	}
	return n, nil
}

func (s *stubFavoriteRepo) ListPackIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.edgesErr != nil {
		return nil, s.edgesErr
	}
	return s.userEdges[userID], nil
}

func (s *stubFavoriteRepo) Exists(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (bool, error) {
	for _, id := range s.userEdges[userID] {
		if id == packID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubFavoriteRepo) Insert(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error {
	if s.userEdges == nil {
		s.userEdges = map[uuid.UUID][]uuid.UUID{}
	}
	s.userEdges[userID] = append(s.userEdges[userID], packID)
	return nil
}

func (s *stubFavoriteRepo) Delete(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error {
	edges := s.userEdges[userID]
	kept := edges[:0]
	for _, id := range edges {
		if id != packID {
			kept = append(kept, id)
		}
	}
	s.userEdges[userID] = kept
	return nil
}

// ---------- purchase repo stub ----------

type stubPurchaseRepo struct {
	userEdges map[uuid.UUID][]uuid.UUID
	edgesErr  error
}

func (s *stubPurchaseRepo) ListPackIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.edgesErr != nil {
		return nil, s.edgesErr
	}
	return s.userEdges[userID], nil
}

func (s *stubPurchaseRepo) Exists(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) (bool, error) {
	for _, id := range s.userEdges[userID] {
		if id == packID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPurchaseRepo) Insert(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID, amount float64) error {
	if s.userEdges == nil {
		s.userEdges = map[uuid.UUID][]uuid.UUID{}
	}
	s.userEdges[userID] = append(s.userEdges[userID], packID)
	return nil
}

func (s *stubPurchaseRepo) Delete(ctx context.Context, tx *gorm.DB, userID, packID uuid.UUID) error {
	edges := s.userEdges[userID]
	kept := edges[:0]
	for _, id := range edges {
		if id != packID {
			kept = append(kept, id)
		}
	}
	s.userEdges[userID] = kept
	return nil
}

// ---------- user repo stub ----------

type stubUserRepo struct {
	users   map[uuid.UUID]*types.User
	getErr  error
	byEmail map[string]*types.User
}

func (s *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if s.users == nil {
		s.users = map[uuid.UUID]*types.User{}
	}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		s.users[u.ID] = u
	}
	return users, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, repos.ErrNotFound
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	var out []*types.User
	for _, id := range userIDs {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	var out []*types.User
	for _, e := range userEmails {
		if u, ok := s.byEmail[e]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	_, ok := s.byEmail[userEmail]
	return ok, nil
}

func (s *stubUserRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if s.users == nil {
		return fmt.Errorf("no users")
	}
	s.users[user.ID] = user
	return nil
}
