package worker

import (
	"context"
	"encoding/json"

	"github.com/Neiron07/pixel-project/internal/config"
	"github.com/Neiron07/pixel-project/internal/db"
	"github.com/Neiron07/pixel-project/internal/logger"
	"github.com/Neiron07/pixel-project/internal/model"
	"github.com/Neiron07/pixel-project/internal/moderation"
	"github.com/Neiron07/pixel-project/internal/queue"

	"github.com/rs/zerolog"
)

const reasonProcessingError = "Error processing file"

// ModerationWorker consumes scan jobs and moves their records from pending
// to exactly one terminal status. A failing job never stops the pool; every
// failure path ends in a `failed` record, not a propagated error.
type ModerationWorker struct {
	cfg         *config.Config
	repo        db.Repository
	scanner     *moderation.Scanner
	redisClient *queue.RedisClient
	workerPool  *WorkerPool
	log         zerolog.Logger
}

func NewModerationWorker(
	cfg *config.Config,
	repo db.Repository,
	redisClient *queue.RedisClient,
) *ModerationWorker {
	return &ModerationWorker{
		cfg:         cfg,
		repo:        repo,
		scanner:     moderation.NewScanner(cfg.Moderation.BannedWords),
		redisClient: redisClient,
		workerPool:  NewWorkerPool(cfg.Moderation.WorkerCount),
		log:         logger.Get(),
	}
}

func (w *ModerationWorker) Start(ctx context.Context) error {
	w.log.Info().
		Int("worker_count", w.cfg.Moderation.WorkerCount).
		Int("banned_words", len(w.cfg.Moderation.BannedWords)).
		Msg("Starting moderation worker")

	w.workerPool.Start()

	consumer := queue.NewConsumer(w.redisClient, w.cfg)
	return consumer.ConsumeScanQueue(ctx, w.handleMessage)
}

// Stop drains the pool. It must only be called after Start has returned,
// so no consumer is still submitting into the closing channel.
func (w *ModerationWorker) Stop() {
	w.log.Info().Msg("Stopping moderation worker")
	w.workerPool.Stop()
}

func (w *ModerationWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.ScanJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal scan job")
		return err
	}

	w.log.Info().Int64("file_id", job.FileID).Msg("Processing scan job")

	w.workerPool.Submit(func(ctx context.Context) error {
		return w.processJob(ctx, job)
	})

	return nil
}

// processJob runs one scan. Delivery is at-least-once, so the same file may
// arrive twice; records already terminal are skipped, and re-applying an
// equivalent terminal status would be harmless either way because the scan
// is a pure function of the content.
func (w *ModerationWorker) processJob(ctx context.Context, job model.ScanJob) error {
	log := w.log.With().Int64("file_id", job.FileID).Logger()

	file, err := w.repo.GetFile(ctx, job.FileID, 0)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load file record")
		w.markFailed(ctx, job.FileID)
		return nil
	}

	if file.Status.IsTerminal() {
		log.Debug().Str("status", string(file.Status)).Msg("Duplicate delivery, record already terminal")
		return nil
	}

	verdict := w.scanner.Scan(job.Content)

	if verdict.Rejected() {
		reason := verdict.Reason()
		if err := w.repo.UpdateFileStatus(ctx, job.FileID, model.FileStatusRejected, &reason); err != nil {
			log.Error().Err(err).Msg("Failed to update file status")
			w.markFailed(ctx, job.FileID)
			return nil
		}
		log.Warn().Strs("banned_words", verdict.Matches).Msg("File rejected due to banned words")
		return nil
	}

	if err := w.repo.UpdateFileStatus(ctx, job.FileID, model.FileStatusApproved, nil); err != nil {
		log.Error().Err(err).Msg("Failed to update file status")
		w.markFailed(ctx, job.FileID)
		return nil
	}

	log.Info().Msg("File approved after processing")
	return nil
}

// markFailed is best-effort: if the store is the thing that is down, there
// is nothing left to record the failure in.
func (w *ModerationWorker) markFailed(ctx context.Context, fileID int64) {
	reason := reasonProcessingError
	if err := w.repo.UpdateFileStatus(ctx, fileID, model.FileStatusFailed, &reason); err != nil {
		w.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to mark file as failed")
	}
}
