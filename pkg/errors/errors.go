package errors

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound       = errors.New("file not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("login or password is incorrect")
	ErrEmptyUpload        = errors.New("no file content uploaded")
	ErrPathOutsideRoot    = errors.New("path resolves outside the storage root")
	ErrQueueUnavailable   = errors.New("job queue unavailable")
)

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}
