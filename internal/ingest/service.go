// Package ingest accepts uploaded bytes and hands them to moderation.
package ingest

import (
	"context"
	"fmt"

	"github.com/Neiron07/pixel-project/internal/logger"
	"github.com/Neiron07/pixel-project/internal/model"
	"github.com/Neiron07/pixel-project/internal/queue"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"

	"github.com/rs/zerolog"
)

// Store is the slice of the record store ingestion needs.
type Store interface {
	CreateFile(ctx context.Context, ownerID int64, filename string, content []byte) (*model.File, error)
}

type Service struct {
	store    Store
	producer queue.Publisher
	log      zerolog.Logger
}

func NewService(store Store, producer queue.Publisher) *Service {
	return &Service{
		store:    store,
		producer: producer,
		log:      logger.Get(),
	}
}

// Ingest persists a pending record and enqueues a scan job for it, in that
// order. The worker must never see a file_id without a backing record; the
// reverse gap (a persisted record whose enqueue failed) is accepted and
// surfaced to the caller as an infrastructure error.
func (s *Service) Ingest(ctx context.Context, ownerID int64, filename string, content []byte) (*model.File, error) {
	if len(content) == 0 {
		return nil, apperrors.ErrEmptyUpload
	}

	file, err := s.store.CreateFile(ctx, ownerID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to persist file record: %w", err)
	}

	s.log.Info().
		Int64("file_id", file.ID).
		Int64("owner_id", ownerID).
		Str("filename", filename).
		Msg("File record created")

	job := model.ScanJob{FileID: file.ID, Content: content}
	if err := s.producer.EnqueueScanJob(ctx, job); err != nil {
		// The record stays pending with no scan ever coming. There is no
		// reaper; the caller learns the upload did not fully land.
		s.log.Error().Err(err).Int64("file_id", file.ID).Msg("Failed to enqueue scan job")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueueUnavailable, err)
	}

	return file, nil
}
