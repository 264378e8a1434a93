package queue

import (
	"context"
	"encoding/json"

	"github.com/Neiron07/pixel-project/internal/config"
	"github.com/Neiron07/pixel-project/internal/model"

	"github.com/go-redis/redis/v8"
)

// Publisher is what the ingestion path needs from the queue: a single
// at-least-once publish of a scan job.
type Publisher interface {
	EnqueueScanJob(ctx context.Context, job model.ScanJob) error
}

type Producer struct {
	client *redis.Client
	cfg    *config.Config
}

func NewProducer(redisClient *RedisClient, cfg *config.Config) *Producer {
	return &Producer{
		client: redisClient.Client(),
		cfg:    cfg,
	}
}

func (p *Producer) EnqueueScanJob(ctx context.Context, job model.ScanJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return p.client.LPush(ctx, p.cfg.Redis.ScanQueue, data).Err()
}
