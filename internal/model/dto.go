package model

import "time"

// ScanJob is the queue payload connecting ingestion to moderation. Content
// travels with the job so the worker never reads the record store to scan.
type ScanJob struct {
	FileID  int64  `json:"file_id"`
	Content []byte `json:"content"`
}

// FileInfo is a single entry of a directory listing.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Listing is the filtered result of browsing a directory. Slices are always
// non-nil so an empty result serializes as [] rather than null.
type Listing struct {
	Files   []FileInfo `json:"files"`
	Folders []string   `json:"folders"`
}

func EmptyListing() Listing {
	return Listing{Files: []FileInfo{}, Folders: []string{}}
}

type FileStatusResponse struct {
	FileID    int64      `json:"file_id"`
	Filename  string     `json:"filename"`
	Status    FileStatus `json:"status"`
	Reason    *string    `json:"reason,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}
