package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/promptvault-backend/internal/clients/gcp"
	"github.com/yungbote/promptvault-backend/internal/clients/redis"
	"github.com/yungbote/promptvault-backend/internal/logger"
)

type Clients struct {
	SSEBus    redis.SSEBus
	GcpBucket gcp.BucketService
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional; without it events stay in-process.
	var bus redis.SSEBus
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		b, err := redis.NewSSEBus(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		bus = b
	}

	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init bucket client: %w", err)
	}

	return Clients{
		SSEBus:    bus,
		GcpBucket: bucket,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
}
