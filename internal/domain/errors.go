package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidDocument     = errors.New("document is unreadable or corrupt")
	ErrInvalidLayout       = errors.New("invalid layout mode")
	ErrTooManyPages        = errors.New("document exceeds maximum page count")
	ErrComparisonNotReady  = errors.New("comparison has not completed")
)
