package storage_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rextj1/laragigs/internal/storage"
)

func TestLocalStoreUsesContentHashName(t *testing.T) {
	root := t.TempDir()
	svc, err := storage.NewLocalService(root)
	require.NoError(t, err)

	data := []byte("fake image bytes")
	sum := sha256.Sum256(data)
	want := "logos/" + hex.EncodeToString(sum[:]) + ".jpg"

	relPath, err := svc.Store(context.Background(), "logos", "logo.JPG", bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, want, relPath)

	onDisk, err := os.ReadFile(filepath.Join(root, "logos", filepath.Base(relPath)))
	require.NoError(t, err)
	require.Equal(t, data, onDisk)
}

func TestLocalStoreIdenticalBytesSamePath(t *testing.T) {
	svc, err := storage.NewLocalService(t.TempDir())
	require.NoError(t, err)

	data := []byte("same bytes")
	first, err := svc.Store(context.Background(), "logos", "one.png", bytes.NewReader(data))
	require.NoError(t, err)
	second, err := svc.Store(context.Background(), "logos", "two.png", bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, first, second)

	distinct, err := svc.Store(context.Background(), "logos", "three.png", bytes.NewReader([]byte("other bytes")))
	require.NoError(t, err)
	require.NotEqual(t, first, distinct)
}

func TestLocalDeleteAndExists(t *testing.T) {
	svc, err := storage.NewLocalService(t.TempDir())
	require.NoError(t, err)

	relPath, err := svc.Store(context.Background(), "logos", "logo.png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)

	exists, err := svc.Exists(context.Background(), relPath)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, svc.Delete(context.Background(), relPath))

	exists, err = svc.Exists(context.Background(), relPath)
	require.NoError(t, err)
	require.False(t, exists)

	// deleting an absent file is not an error
	require.NoError(t, svc.Delete(context.Background(), relPath))
	require.NoError(t, svc.Delete(context.Background(), ""))
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	svc, err := storage.NewLocalService(t.TempDir())
	require.NoError(t, err)

	require.Error(t, svc.Delete(context.Background(), "../outside.txt"))

	_, err = svc.Exists(context.Background(), "../../etc/passwd")
	require.Error(t, err)
}
