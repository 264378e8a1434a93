package model

import "time"

type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusApproved FileStatus = "approved"
	FileStatusRejected FileStatus = "rejected"
	FileStatusFailed   FileStatus = "failed"
)

// IsTerminal reports whether the status is final. A record leaves pending
// exactly once and never transitions again.
func (s FileStatus) IsTerminal() bool {
	return s == FileStatusApproved || s == FileStatusRejected || s == FileStatusFailed
}

type File struct {
	ID        int64      `json:"id" db:"id"`
	OwnerID   int64      `json:"owner_id" db:"owner_id"`
	Filename  string     `json:"filename" db:"filename"`
	Content   []byte     `json:"-" db:"content"`
	Status    FileStatus `json:"status" db:"status"`
	Reason    *string    `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
