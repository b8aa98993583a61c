package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/promptvault-backend/internal/sse"
)

// PackNotifier pushes marketplace pack events to listing clients. Counts are
// absolute, never deltas, so a late event cannot drift a client.
type PackNotifier interface {
	FavoriteChanged(ctx context.Context, packID uuid.UUID, favoriteCount int64)
	PackPublished(ctx context.Context, packID uuid.UUID)
	PackDeleted(ctx context.Context, packID uuid.UUID)
}

type packNotifier struct {
	emit SSEEmitter
}

func NewPackNotifier(emit SSEEmitter) PackNotifier {
	return &packNotifier{emit: emit}
}

func (n *packNotifier) FavoriteChanged(ctx context.Context, packID uuid.UUID, favoriteCount int64) {
	n.emit.Emit(ctx, sse.SSEMessage{
		Channel: sse.ChannelPacks,
		Event:   sse.SSEEventPackFavoriteChanged,
		Data: map[string]any{
			"pack_id":        packID.String(),
			"favorite_count": favoriteCount,
		},
	})
}

func (n *packNotifier) PackPublished(ctx context.Context, packID uuid.UUID) {
	n.emit.Emit(ctx, sse.SSEMessage{
		Channel: sse.ChannelPacks,
		Event:   sse.SSEEventPackPublished,
		Data:    map[string]any{"pack_id": packID.String()},
	})
}

func (n *packNotifier) PackDeleted(ctx context.Context, packID uuid.UUID) {
	n.emit.Emit(ctx, sse.SSEMessage{
		Channel: sse.ChannelPacks,
		Event:   sse.SSEEventPackDeleted,
		Data:    map[string]any{"pack_id": packID.String()},
	})
}
