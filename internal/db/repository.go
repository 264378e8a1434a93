package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Neiron07/pixel-project/internal/model"
	apperrors "github.com/Neiron07/pixel-project/pkg/errors"
)

type Repository interface {
	CreateFile(ctx context.Context, ownerID int64, filename string, content []byte) (*model.File, error)
	UpdateFileStatus(ctx context.Context, fileID int64, status model.FileStatus, reason *string) error
	GetFile(ctx context.Context, fileID, ownerID int64) (*model.File, error)
	ListFilesByOwner(ctx context.Context, ownerID int64) ([]model.File, error)

	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFile(ctx context.Context, ownerID int64, filename string, content []byte) (*model.File, error) {
	query := `INSERT INTO files (owner_id, filename, content, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	result, err := r.db.ExecContext(ctx, query, ownerID, filename, content, model.FileStatusPending)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetFile(ctx, id, ownerID)
}

func (r *repository) UpdateFileStatus(ctx context.Context, fileID int64, status model.FileStatus, reason *string) error {
	query := `UPDATE files SET status = ?, reason = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, status, reason, fileID)
	return err
}

func (r *repository) GetFile(ctx context.Context, fileID, ownerID int64) (*model.File, error) {
	query := `SELECT id, owner_id, filename, content, status, reason, created_at, updated_at
			  FROM files WHERE id = ?`
	args := []interface{}{fileID}

	// ownerID 0 is the worker's unscoped lookup; callers acting for a user
	// always pass the owner so records stay owner-private.
	if ownerID != 0 {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}

	var file model.File
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&file.ID, &file.OwnerID, &file.Filename, &file.Content,
		&file.Status, &file.Reason, &file.CreatedAt, &file.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (r *repository) ListFilesByOwner(ctx context.Context, ownerID int64) ([]model.File, error) {
	query := `SELECT id, owner_id, filename, status, reason, created_at, updated_at
			  FROM files WHERE owner_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.File
	for rows.Next() {
		var file model.File
		err := rows.Scan(&file.ID, &file.OwnerID, &file.Filename,
			&file.Status, &file.Reason, &file.CreatedAt, &file.UpdatedAt)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

func (r *repository) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	query := `INSERT INTO users (username, email, password_hash, created_at, updated_at)
			  VALUES (?, ?, ?, NOW(), NOW())`

	result, err := r.db.ExecContext(ctx, query, username, email, passwordHash)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetUserByID(ctx, id)
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at, updated_at
			  FROM users WHERE email = ?`

	var user model.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at, updated_at
			  FROM users WHERE id = ?`

	var user model.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
