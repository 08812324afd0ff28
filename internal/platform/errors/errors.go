package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrStoreFailure   = errors.New("store failure")
	ErrImportRejected = errors.New("import rejected")
)
