package filestorage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
	// ErrUnsupportedType is returned for anything other than PDF or image proofs
	ErrUnsupportedType = errors.New("only PDF and image files are allowed")
	// ErrEmptyFile is returned for zero-byte uploads
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidPath is returned when a stored path escapes the storage root
	ErrInvalidPath = errors.New("invalid file path")
)

// FileInfo describes a stored file
type FileInfo struct {
	Path         string // Path relative to the storage root
	OriginalName string // Filename supplied by the uploader
	MimeType     string // Detected MIME type
	Size         int64  // Size in bytes
}

// FileStorage stores uploaded files and hands back a retrievable handle
type FileStorage interface {
	// Store persists the content and returns once it is durable on the backing medium
	Store(ctx context.Context, content io.Reader, mimeType, originalName string) (*FileInfo, error)

	// Open returns a reader for a previously stored file
	Open(path string) (io.ReadCloser, error)

	// Delete removes a stored file; missing files are not an error
	Delete(path string) error
}
