package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Neiron07/pixel-project/internal/config"
	"github.com/Neiron07/pixel-project/internal/model"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu        sync.Mutex
	files     map[int64]*model.File
	getErr    error
	updateErr error
	updates   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: make(map[int64]*model.File)}
}

func (r *fakeRepo) add(file model.File) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := file
	r.files[f.ID] = &f
}

func (r *fakeRepo) get(id int64) model.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.files[id]
}

func (r *fakeRepo) CreateFile(ctx context.Context, ownerID int64, filename string, content []byte) (*model.File, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) UpdateFileStatus(ctx context.Context, fileID int64, status model.FileStatus, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates++
	if f, ok := r.files[fileID]; ok {
		f.Status = status
		f.Reason = reason
	}
	return nil
}

func (r *fakeRepo) GetFile(ctx context.Context, fileID, ownerID int64) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	f, ok := r.files[fileID]
	if !ok {
		return nil, apperrors.ErrFileNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *fakeRepo) ListFilesByOwner(ctx context.Context, ownerID int64) ([]model.File, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func testConfig() *config.Config {
	return &config.Config{
		Moderation: config.ModerationConfig{
			BannedWords: []string{"badword1", "badword2"},
			WorkerCount: 2,
		},
	}
}

func TestProcessJobRejectsBannedContent(t *testing.T) {
	repo := newFakeRepo()
	repo.add(model.File{ID: 1, Status: model.FileStatusPending})

	w := NewModerationWorker(testConfig(), repo, nil)
	err := w.processJob(context.Background(), model.ScanJob{FileID: 1, Content: []byte("hello badword1 world")})
	require.NoError(t, err)

	got := repo.get(1)
	assert.Equal(t, model.FileStatusRejected, got.Status)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "Contains banned words: badword1", *got.Reason)
}

func TestProcessJobApprovesCleanContent(t *testing.T) {
	repo := newFakeRepo()
	repo.add(model.File{ID: 2, Status: model.FileStatusPending})

	w := NewModerationWorker(testConfig(), repo, nil)
	err := w.processJob(context.Background(), model.ScanJob{FileID: 2, Content: []byte("hello world")})
	require.NoError(t, err)

	got := repo.get(2)
	assert.Equal(t, model.FileStatusApproved, got.Status)
	assert.Nil(t, got.Reason)
}

func TestProcessJobMarksFailedWhenRecordLoadFails(t *testing.T) {
	repo := newFakeRepo()
	repo.add(model.File{ID: 3, Status: model.FileStatusPending})
	repo.getErr = errors.New("store unavailable")

	w := NewModerationWorker(testConfig(), repo, nil)
	err := w.processJob(context.Background(), model.ScanJob{FileID: 3, Content: []byte("anything")})
	require.NoError(t, err, "worker errors must not cross the job boundary")

	repo.mu.Lock()
	repo.getErr = nil
	repo.mu.Unlock()

	got := repo.get(3)
	assert.Equal(t, model.FileStatusFailed, got.Status)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "Error processing file", *got.Reason)
}

func TestProcessJobSwallowsUpdateFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.add(model.File{ID: 4, Status: model.FileStatusPending})
	repo.updateErr = errors.New("store unavailable")

	w := NewModerationWorker(testConfig(), repo, nil)
	err := w.processJob(context.Background(), model.ScanJob{FileID: 4, Content: []byte("hello")})
	require.NoError(t, err)

	// The record could not be touched at all; it stays pending.
	got := repo.get(4)
	assert.Equal(t, model.FileStatusPending, got.Status)
}

func TestProcessJobSkipsTerminalRecord(t *testing.T) {
	reason := "Contains banned words: badword1"
	repo := newFakeRepo()
	repo.add(model.File{ID: 5, Status: model.FileStatusRejected, Reason: &reason})

	w := NewModerationWorker(testConfig(), repo, nil)
	err := w.processJob(context.Background(), model.ScanJob{FileID: 5, Content: []byte("hello badword1")})
	require.NoError(t, err)

	repo.mu.Lock()
	updates := repo.updates
	repo.mu.Unlock()
	assert.Zero(t, updates, "duplicate delivery of a terminal record must not rewrite it")

	got := repo.get(5)
	assert.Equal(t, model.FileStatusRejected, got.Status)
	assert.Equal(t, reason, *got.Reason)
}

func TestProcessJobIdempotentOnRedelivery(t *testing.T) {
	repo := newFakeRepo()
	repo.add(model.File{ID: 6, Status: model.FileStatusPending})

	w := NewModerationWorker(testConfig(), repo, nil)
	job := model.ScanJob{FileID: 6, Content: []byte("badword2 here")}

	require.NoError(t, w.processJob(context.Background(), job))
	first := repo.get(6)

	require.NoError(t, w.processJob(context.Background(), job))
	second := repo.get(6)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, *first.Reason, *second.Reason)
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	w := NewModerationWorker(testConfig(), newFakeRepo(), nil)
	err := w.handleMessage(context.Background(), []byte("{not json"))
	assert.Error(t, err)
}
