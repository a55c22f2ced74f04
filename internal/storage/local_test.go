package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timing-report/pkg/config"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadAndDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Upload(ctx, "runs/run-1/report.csv", strings.NewReader("region,baseline_mean_s\n"))
	require.NoError(t, err)

	rc, err := s.Download(ctx, "runs/run-1/report.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "region,baseline_mean_s\n", string(data))
}

func TestLocalStorage_UploadFile(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "report.svg")
	require.NoError(t, os.WriteFile(src, []byte("<svg/>"), 0644))

	require.NoError(t, s.UploadFile(ctx, "runs/run-1/report.svg", src))

	ok, err := s.Exists(ctx, "runs/run-1/report.svg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Download(context.Background(), "missing.csv")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "artifact not found")
}

func TestLocalStorage_Delete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "report.json", strings.NewReader("{}")))
	require.NoError(t, s.Delete(ctx, "report.json"))

	ok, err := s.Exists(ctx, "report.json")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is not an error.
	assert.NoError(t, s.Delete(ctx, "report.json"))
}

func TestLocalStorage_ContextCanceled(t *testing.T) {
	s := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Upload(ctx, "report.csv", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)
	assert.Equal(t, filepath.Join(s.BasePath(), "a/b.csv"), s.GetURL("a/b.csv"))
}

func TestNewStorage_Factory(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		s, err := NewStorage(&config.StorageConfig{Type: "local", LocalPath: t.TempDir()})
		require.NoError(t, err)
		_, ok := s.(*LocalStorage)
		assert.True(t, ok)
	})

	t.Run("EmptyTypeDefaultsToLocal", func(t *testing.T) {
		s, err := NewStorage(&config.StorageConfig{LocalPath: t.TempDir()})
		require.NoError(t, err)
		_, ok := s.(*LocalStorage)
		assert.True(t, ok)
	})

	t.Run("COS_MissingCredentials", func(t *testing.T) {
		_, err := NewStorage(&config.StorageConfig{Type: "cos", Bucket: "b", Region: "ap-guangzhou"})
		assert.Error(t, err)
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		_, err := NewStorage(&config.StorageConfig{Type: "s3"})
		assert.Error(t, err)
	})
}

func TestNewCOSStorage_URL(t *testing.T) {
	s, err := NewCOSStorage(&COSConfig{
		Bucket:    "reports-123",
		Region:    "ap-guangzhou",
		SecretID:  "id",
		SecretKey: "key",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://reports-123.cos.ap-guangzhou.myqcloud.com/runs/r1/report.csv",
		s.GetURL("runs/r1/report.csv"))
}
