package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/promptvault-backend/internal/clients/gcp"
	"github.com/yungbote/promptvault-backend/internal/logger"
	"github.com/yungbote/promptvault-backend/internal/repos"
	"github.com/yungbote/promptvault-backend/internal/types"
)

const (
	MinPreviewImages = 3
	MaxPreviewImages = 9
	MaxImageBytes    = 5 * 1024 * 1024
	MaxTitleLength   = 100
)

var ErrNotPackOwner = fmt.Errorf("not the pack owner")

type PublishPackInput struct {
	Title         string
	Prompt        string
	FullPrompt    string
	Description   string
	AIModel       string
	Category      string
	Price         float64
	PreviewImages []string
}

type UpdatePackInput struct {
	Title         *string
	Prompt        *string
	FullPrompt    *string
	Description   *string
	AIModel       *string
	Category      *string
	Price         *float64
	PreviewImages *[]string
}

type UploadImage struct {
	Filename string
	Data     []byte
}

type PackService interface {
	Publish(ctx context.Context, creatorID uuid.UUID, input PublishPackInput) (*types.PromptPack, error)
	Update(ctx context.Context, userID, packID uuid.UUID, input UpdatePackInput) (*types.PromptPack, error)
	Delete(ctx context.Context, userID, packID uuid.UUID) error
	UploadPreviewImages(ctx context.Context, userID uuid.UUID, images []UploadImage) ([]string, error)
}

type packService struct {
	db            *gorm.DB
	log           *logger.Logger
	packRepo      repos.PromptPackRepo
	bucketService gcp.BucketService
	notifier      PackNotifier
}

func NewPackService(
	db *gorm.DB,
	log *logger.Logger,
	packRepo repos.PromptPackRepo,
	bucketService gcp.BucketService,
	notifier PackNotifier,
) PackService {
	serviceLog := log.With("service", "PackService")
	return &packService{
		db:            db,
		log:           serviceLog,
		packRepo:      packRepo,
		bucketService: bucketService,
		notifier:      notifier,
	}
}

func (ps *packService) Publish(ctx context.Context, creatorID uuid.UUID, input PublishPackInput) (*types.PromptPack, error) {
	if err := validatePublishInput(&input); err != nil {
		return nil, err
	}

	pack := &types.PromptPack{
		Title:         input.Title,
		Prompt:        input.Prompt,
		FullPrompt:    input.FullPrompt,
		Description:   input.Description,
		AIModel:       input.AIModel,
		Category:      input.Category,
		Price:         input.Price,
		PreviewImages: input.PreviewImages,
		CreatorID:     creatorID,
	}
	if _, err := ps.packRepo.Create(ctx, nil, []*types.PromptPack{pack}); err != nil {
		return nil, fmt.Errorf("create pack: %w", err)
	}

	if ps.notifier != nil {
		ps.notifier.PackPublished(ctx, pack.ID)
	}
	return pack, nil
}

func validatePublishInput(input *PublishPackInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("title required")
	}
	if len(input.Title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return fmt.Errorf("prompt required")
	}
	if input.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}

	images := make([]string, 0, len(input.PreviewImages))
	for _, img := range input.PreviewImages {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	if len(images) < MinPreviewImages {
		return fmt.Errorf("at least %d preview images required", MinPreviewImages)
	}
	if len(images) > MaxPreviewImages {
		return fmt.Errorf("at most %d preview images allowed", MaxPreviewImages)
	}
	input.PreviewImages = images
	return nil
}

func (ps *packService) Update(ctx context.Context, userID, packID uuid.UUID, input UpdatePackInput) (*types.PromptPack, error) {
	pack, err := ps.packRepo.GetByID(ctx, nil, packID)
	if err != nil {
		return nil, err
	}
	if pack.CreatorID != userID {
		return nil, ErrNotPackOwner
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > MaxTitleLength {
			return nil, fmt.Errorf("title must be 1-%d characters", MaxTitleLength)
		}
		pack.Title = title
	}
	if input.Prompt != nil {
		pack.Prompt = *input.Prompt
	}
	if input.FullPrompt != nil {
		pack.FullPrompt = *input.FullPrompt
	}
	if input.Description != nil {
		pack.Description = *input.Description
	}
	if input.AIModel != nil {
		pack.AIModel = *input.AIModel
	}
	if input.Category != nil {
		pack.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		pack.Price = *input.Price
	}
	if input.PreviewImages != nil {
		images := make([]string, 0, len(*input.PreviewImages))
		for _, img := range *input.PreviewImages {
			if strings.TrimSpace(img) != "" {
				images = append(images, img)
			}
		}
		if len(images) < MinPreviewImages || len(images) > MaxPreviewImages {
			return nil, fmt.Errorf("preview image count must be %d-%d", MinPreviewImages, MaxPreviewImages)
		}
		pack.PreviewImages = images
	}

	if err := ps.packRepo.Update(ctx, nil, pack); err != nil {
		return nil, fmt.Errorf("update pack: %w", err)
	}
	return pack, nil
}

func (ps *packService) Delete(ctx context.Context, userID, packID uuid.UUID) error {
	pack, err := ps.packRepo.GetByID(ctx, nil, packID)
	if err != nil {
		return err
	}
	if pack.CreatorID != userID {
		return ErrNotPackOwner
	}

	if err := ps.packRepo.Delete(ctx, nil, packID); err != nil {
		return fmt.Errorf("delete pack: %w", err)
	}

	// Best-effort storage cleanup for previews we host ourselves.
	urlPrefix := ps.bucketService.GetPublicURL(gcp.BucketCategoryPackPreview, "")
	for _, img := range pack.PreviewImages {
		if key, ok := strings.CutPrefix(img, urlPrefix); ok && key != "" {
			if err := ps.bucketService.DeleteFile(ctx, gcp.BucketCategoryPackPreview, key); err != nil {
				ps.log.Warn("failed to delete preview object (ignored)", "key", key, "error", err)
			}
		}
	}

	if ps.notifier != nil {
		ps.notifier.PackDeleted(ctx, packID)
	}
	return nil
}

func (ps *packService) UploadPreviewImages(ctx context.Context, userID uuid.UUID, images []UploadImage) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images provided")
	}
	if len(images) > MaxPreviewImages {
		return nil, fmt.Errorf("at most %d images per upload", MaxPreviewImages)
	}

	urls := make([]string, 0, len(images))
	batchID := uuid.New()
	for i, img := range images {
		if len(img.Data) == 0 {
			return nil, fmt.Errorf("image %d is empty", i)
		}
		if len(img.Data) > MaxImageBytes {
			return nil, fmt.Errorf("image %q exceeds 5MB", img.Filename)
		}
		ext, err := imageExtension(img.Data)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", img.Filename, err)
		}

		key := fmt.Sprintf("pack_preview/%s/%s/%d%s", userID.String(), batchID.String(), i, ext)
		if err := ps.bucketService.UploadFile(ctx, gcp.BucketCategoryPackPreview, key, bytes.NewReader(img.Data)); err != nil {
			return nil, fmt.Errorf("upload image %q: %w", img.Filename, err)
		}
		urls = append(urls, ps.bucketService.GetPublicURL(gcp.BucketCategoryPackPreview, key))
	}
	return urls, nil
}

// imageExtension sniffs the payload; only jpeg, png, and gif are accepted.
func imageExtension(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	default:
		return "", fmt.Errorf("unsupported image type (jpeg, png, gif only)")
	}
}
