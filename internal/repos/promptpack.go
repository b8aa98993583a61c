package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/catalog"
	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/types"
)

const (
	SortNewest  = "newest"
	SortPopular = "popular"

	// Full price range; a filter spanning it applies no price predicate.
	DefaultPriceMin = 0.0
	DefaultPriceMax = 100.0
)

// ListingFilter describes the browse-grid filters. The zero value selects
// everything, newest first.
type ListingFilter struct {
	Categories []string
	AIModel    string
	PriceMin   float64
	PriceMax   float64
	Search     string
	Sort       string
}

// CategoryTerms returns the category predicate values, dropping blanks and
// the "All" sentinel. An empty result means no category filter.
func (f ListingFilter) CategoryTerms() []string {
	var terms []string
	for _, c := range f.Categories {
		c = strings.TrimSpace(c)
		if c == "" || c == catalog.AllSentinel {
			continue
		}
		terms = append(terms, c)
	}
	return terms
}

// ModelTerm returns the ai-model predicate value, or "" when inactive.
func (f ListingFilter) ModelTerm() string {
	m := strings.TrimSpace(f.AIModel)
	if m == catalog.AllSentinel {
		return ""
	}
	return m
}

// HasPriceFilter reports whether the bounds differ from the full range.
// Bounds are inclusive on both ends. Both bounds zero means unset (the
// zero value must select everything), not "free packs only".
func (f ListingFilter) HasPriceFilter() bool {
	if f.PriceMin == 0 && f.PriceMax == 0 {
		return false
	}
	return f.PriceMin != DefaultPriceMin || f.PriceMax != DefaultPriceMax
}

// SearchTerm returns the trimmed title substring, or "" when inactive.
func (f ListingFilter) SearchTerm() string {
	return strings.TrimSpace(f.Search)
}

type PromptPackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, packs []*types.PromptPack) ([]*types.PromptPack, error)
	Update(ctx context.Context, tx *gorm.DB, pack *types.PromptPack) error
	Delete(ctx context.Context, tx *gorm.DB, packID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (*types.PromptPack, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, packIDs []uuid.UUID) ([]*types.PromptPack, error)
	List(ctx context.Context, tx *gorm.DB, filter ListingFilter) ([]*types.PromptPack, error)
	ListByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.PromptPack, error)
	ListRelated(ctx context.Context, tx *gorm.DB, creatorID, excludeID uuid.UUID, limit int) ([]*types.PromptPack, error)
}

type promptPackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptPackRepo(db *gorm.DB, baseLog *logger.Logger) PromptPackRepo {
	repoLog := baseLog.With("repo", "PromptPackRepo")
	return &promptPackRepo{db: db, log: repoLog}
}

func (pr *promptPackRepo) Create(ctx context.Context, tx *gorm.DB, packs []*types.PromptPack) ([]*types.PromptPack, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(packs) == 0 {
		return []*types.PromptPack{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&packs).Error; err != nil {
		return nil, err
	}
	return packs, nil
}

func (pr *promptPackRepo) Update(ctx context.Context, tx *gorm.DB, pack *types.PromptPack) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(pack).Error
}

func (pr *promptPackRepo) Delete(ctx context.Context, tx *gorm.DB, packID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", packID).
		Delete(&types.PromptPack{}).Error
}

func (pr *promptPackRepo) GetByID(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (*types.PromptPack, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PromptPack
	if err := transaction.WithContext(ctx).
		Where("id = ?", packID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (pr *promptPackRepo) GetByIDs(ctx context.Context, tx *gorm.DB, packIDs []uuid.UUID) ([]*types.PromptPack, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.PromptPack
	if len(packIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", packIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *promptPackRepo) List(ctx context.Context, tx *gorm.DB, filter ListingFilter) ([]*types.PromptPack, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	q := transaction.WithContext(ctx).Model(&types.PromptPack{})

	if terms := filter.CategoryTerms(); len(terms) > 0 {
		q = q.Where("category IN ?", terms)
	}
	if m := filter.ModelTerm(); m != "" {
		q = q.Where("ai_model = ?", m)
	}
	if filter.HasPriceFilter() {
		q = q.Where("price >= ? AND price <= ?", filter.PriceMin, filter.PriceMax)
	}
	if s := filter.SearchTerm(); s != "" {
		q = q.Where("title ILIKE ?", "%"+s+"%")
	}

	switch filter.Sort {
	case SortPopular:
		q = q.Order("(SELECT COUNT(*) FROM favorites WHERE favorites.prompt_pack_id = prompt_packs.id) DESC").
			Order("created_at DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var results []*types.PromptPack
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *promptPackRepo) ListByCreator(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.PromptPack, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.PromptPack
	if err := transaction.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *promptPackRepo) ListRelated(ctx context.Context, tx *gorm.DB, creatorID, excludeID uuid.UUID, limit int) ([]*types.PromptPack, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if limit <= 0 {
		limit = 3
	}

	var results []*types.PromptPack
	if err := transaction.WithContext(ctx).
		Where("creator_id = ? AND id <> ?", creatorID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
