package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/Neiron07/pixel-project/internal/model"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	nextID  int64
	created []model.File
	err     error
}

func (s *fakeStore) CreateFile(ctx context.Context, ownerID int64, filename string, content []byte) (*model.File, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	file := model.File{
		ID:       s.nextID,
		OwnerID:  ownerID,
		Filename: filename,
		Content:  content,
		Status:   model.FileStatusPending,
	}
	s.created = append(s.created, file)
	return &file, nil
}

type fakePublisher struct {
	jobs []model.ScanJob
	err  error
}

func (p *fakePublisher) EnqueueScanJob(ctx context.Context, job model.ScanJob) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func TestIngestPersistsThenEnqueues(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{}
	svc := NewService(store, publisher)

	record, err := svc.Ingest(context.Background(), 42, "notes.txt", []byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, model.FileStatusPending, record.Status)
	assert.Equal(t, int64(42), record.OwnerID)
	assert.NotZero(t, record.ID)

	require.Len(t, publisher.jobs, 1)
	assert.Equal(t, record.ID, publisher.jobs[0].FileID)
	assert.Equal(t, []byte("hello"), publisher.jobs[0].Content)
}

func TestIngestRejectsEmptyContent(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{}
	svc := NewService(store, publisher)

	_, err := svc.Ingest(context.Background(), 1, "empty.txt", nil)
	require.ErrorIs(t, err, apperrors.ErrEmptyUpload)

	// Validation happens before any persistence or queueing.
	assert.Empty(t, store.created)
	assert.Empty(t, publisher.jobs)
}

func TestIngestStoreFailureSkipsEnqueue(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	publisher := &fakePublisher{}
	svc := NewService(store, publisher)

	_, err := svc.Ingest(context.Background(), 1, "a.txt", []byte("x"))
	require.Error(t, err)
	assert.Empty(t, publisher.jobs)
}

func TestIngestEnqueueFailureLeavesPendingRecord(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{err: errors.New("redis down")}
	svc := NewService(store, publisher)

	_, err := svc.Ingest(context.Background(), 1, "a.txt", []byte("x"))
	require.ErrorIs(t, err, apperrors.ErrQueueUnavailable)

	// The orphan pending record is the accepted trade-off of the
	// persist-then-enqueue order.
	require.Len(t, store.created, 1)
	assert.Equal(t, model.FileStatusPending, store.created[0].Status)
}

func TestIngestFilesAreIndependent(t *testing.T) {
	store := &fakeStore{}
	publisher := &fakePublisher{}
	svc := NewService(store, publisher)

	first, err := svc.Ingest(context.Background(), 7, "a.txt", []byte("one"))
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background(), 7, "b.txt", nil)
	require.ErrorIs(t, err, apperrors.ErrEmptyUpload)

	second, err := svc.Ingest(context.Background(), 7, "c.txt", []byte("three"))
	require.NoError(t, err)

	// A failure in the middle rolls nothing back and distinct uploads get
	// distinct ids.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.created, 2)
	assert.Len(t, publisher.jobs, 2)
}
