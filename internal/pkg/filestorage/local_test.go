package filestorage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
)

func newStorage(t *testing.T, maxBytes int64) (*LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "claims", maxBytes)
	require.NoError(t, err)
	return ls, dir
}

func TestLocalStorage_StoreOpenDelete(t *testing.T) {
	ls, dir := newStorage(t, 0)

	info, err := ls.Store(context.Background(), bytes.NewReader(pdfBytes), "application/pdf", "../cert.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Path, "claims/"))
	assert.True(t, strings.HasSuffix(info.Path, ".pdf"))
	assert.Equal(t, "cert.pdf", info.OriginalName)
	assert.Equal(t, "application/pdf", info.MimeType)
	assert.Equal(t, int64(len(pdfBytes)), info.Size)

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(info.Path)))
	require.NoError(t, err)

	rc, err := ls.Open(info.Path)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)

	require.NoError(t, ls.Delete(info.Path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(info.Path)))
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, ls.Delete(info.Path))
}

func TestLocalStorage_StoreRejections(t *testing.T) {
	ls, _ := newStorage(t, 64)
	ctx := context.Background()

	t.Run("declared type not allowed", func(t *testing.T) {
		_, err := ls.Store(ctx, bytes.NewReader(pdfBytes), "text/plain", "a.txt")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("content does not match an allowed type", func(t *testing.T) {
		_, err := ls.Store(ctx, strings.NewReader("just some text"), "application/pdf", "fake.pdf")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("too large", func(t *testing.T) {
		big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 100)...)
		_, err := ls.Store(ctx, bytes.NewReader(big), "image/png", "big.png")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ls.Store(ctx, bytes.NewReader(nil), "image/png", "empty.png")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("declared type with parameters", func(t *testing.T) {
		info, err := ls.Store(ctx, bytes.NewReader(pngBytes), "image/png; charset=binary", "p.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", info.MimeType)
	})
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ls, _ := newStorage(t, 0)

	_, err := ls.Open("../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)

	err = ls.Delete("../outside.pdf")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = ls.Open("")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestIsAllowedType(t *testing.T) {
	assert.True(t, IsAllowedType("application/pdf"))
	assert.True(t, IsAllowedType("IMAGE/JPEG"))
	assert.True(t, IsAllowedType("image/jpg"))
	assert.False(t, IsAllowedType("image/gif"))
}
