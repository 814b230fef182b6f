package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

// DefaultMaxBytes is the upload limit used when none is configured (5 MiB)
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// allowedTypes maps accepted MIME types to the extension used on disk
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // Root directory for all stored files
	subDir   string // Directory under basePath used for new files
	maxBytes int64
}

// NewLocalStorage creates a LocalStorage rooted at basePath, writing new files into subDir.
func NewLocalStorage(basePath, subDir string, maxBytes int64) (*LocalStorage, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	dir := filepath.Join(basePath, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	logger.Info().Str("path", dir).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		subDir:   subDir,
		maxBytes: maxBytes,
	}, nil
}

// IsAllowedType reports whether a declared MIME type is accepted for proofs.
func IsAllowedType(mimeType string) bool {
	_, ok := allowedTypes[normalizeMime(mimeType)]
	return ok
}

// Store writes the content under a uuid-based name. Both the declared type and the sniffed
// content type must be accepted proof types; the sniffed type is recorded.
func (ls *LocalStorage) Store(ctx context.Context, content io.Reader, mimeType, originalName string) (*FileInfo, error) {
	if content == nil {
		return nil, ErrEmptyFile
	}
	if !IsAllowedType(mimeType) {
		return nil, ErrUnsupportedType
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(content, ls.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyFile
	}
	if n > ls.maxBytes {
		return nil, ErrFileTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	detected := normalizeMime(mimetype.Detect(buf.Bytes()).String())
	ext, ok := allowedTypes[detected]
	if !ok {
		logger.Warn().Str("declared", mimeType).Str("detected", detected).Msg("Rejected proof with unsupported content")
		return nil, ErrUnsupportedType
	}

	relPath := filepath.ToSlash(filepath.Join(ls.subDir, uuid.New().String()+ext))
	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))

	if err := writeDurable(dstPath, buf.Bytes()); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write proof file")
		return nil, err
	}

	logger.Info().Str("filename", originalName).Str("saved_as", relPath).Int64("size", n).Msg("File saved successfully")
	return &FileInfo{
		Path:         relPath,
		OriginalName: filepath.Base(originalName),
		MimeType:     detected,
		Size:         n,
	}, nil
}

// Open returns the stored file for reading.
func (ls *LocalStorage) Open(path string) (io.ReadCloser, error) {
	full, err := ls.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// Delete removes a stored file. Returns nil if the file does not exist.
func (ls *LocalStorage) Delete(path string) error {
	if path == "" {
		return nil
	}
	full, err := ls.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", full).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", full).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", full).Msg("File deleted successfully")
	return nil
}

// resolve maps a stored relative path to a filesystem path inside basePath.
func (ls *LocalStorage) resolve(path string) (string, error) {
	if path == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(ls.basePath, filepath.FromSlash(path))
	rel, err := filepath.Rel(ls.basePath, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return full, nil
}

// writeDurable writes data to a temp file, fsyncs it and renames it into place.
func writeDurable(dstPath string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to sync file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, dstPath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

func normalizeMime(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}
