package storage_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/palmer/pkg/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLocal(t *testing.T) (storage.System, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svm.json"), []byte(`{"kind":"svc"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "knn.json"), []byte(`{"kind":"knn"}`), 0o644))

	sys, err := storage.New(&storage.Config{Provider: storage.ProviderLocal, Path: dir}, discardLogger())
	require.NoError(t, err)
	return sys, dir
}

func TestLocalReadAll(t *testing.T) {
	sys, _ := newLocal(t)
	ctx := context.Background()

	data, err := storage.ReadAll(ctx, sys, "svm.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"svc"}`, string(data))

	data, err = storage.ReadAll(ctx, sys, "nested/knn.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"knn"}`, string(data))
}

func TestLocalDownloadMissing(t *testing.T) {
	sys, _ := newLocal(t)

	_, err := sys.Download(context.Background(), "missing.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalExists(t *testing.T) {
	sys, _ := newLocal(t)
	ctx := context.Background()

	ok, err := sys.Exists(ctx, "svm.json")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sys.Exists(ctx, "missing.json")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = sys.Exists(ctx, "nested")
	require.NoError(t, err)
	assert.False(t, ok, "directories are not objects")
}

func TestKeyValidation(t *testing.T) {
	sys, _ := newLocal(t)

	tests := []struct {
		key  string
		want error
	}{
		{"", storage.ErrEmptyKey},
		{".", storage.ErrInvalidKey},
		{"../secret.json", storage.ErrInvalidKey},
		{"nested/../../secret.json", storage.ErrInvalidKey},
		{"/etc/passwd", storage.ErrInvalidKey},
		{"nested//knn.json", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := sys.Download(context.Background(), tt.key)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLocalLocation(t *testing.T) {
	sys, dir := newLocal(t)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, sys.Location())
}

func TestNewLocalMissingPath(t *testing.T) {
	_, err := storage.New(&storage.Config{
		Provider: storage.ProviderLocal,
		Path:     filepath.Join(t.TempDir(), "absent"),
	}, discardLogger())
	assert.Error(t, err)
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := storage.Config{}
		require.NoError(t, cfg.Finalize(nil))

		assert.Equal(t, storage.ProviderLocal, cfg.Provider)
		assert.Equal(t, "models", cfg.Path)
	})

	t.Run("azure requires connection string", func(t *testing.T) {
		cfg := storage.Config{Provider: storage.ProviderAzure}
		assert.Error(t, cfg.Finalize(nil))
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := storage.Config{Provider: "s3"}
		assert.Error(t, cfg.Finalize(nil))
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_PATH", "/srv/artifacts")

		cfg := storage.Config{}
		require.NoError(t, cfg.Finalize(&storage.Env{Path: "TEST_STORAGE_PATH"}))
		assert.Equal(t, "/srv/artifacts", cfg.Path)
	})
}

func TestConfigMerge(t *testing.T) {
	base := storage.Config{Provider: storage.ProviderLocal, Path: "models"}
	base.Merge(&storage.Config{Provider: storage.ProviderAzure, ContainerName: "penguins"})

	assert.Equal(t, storage.ProviderAzure, base.Provider)
	assert.Equal(t, "models", base.Path)
	assert.Equal(t, "penguins", base.ContainerName)
}
