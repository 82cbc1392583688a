// Package artifactstest provides the reference artifact set to tests.
package artifactstest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/models"
	"github.com/JaimeStill/palmer/pkg/storage"
)

type fsStorage struct {
	fsys fs.FS
}

// Storage returns a read-only storage.System over the embedded reference artifacts.
func Storage() storage.System {
	return &fsStorage{fsys: models.FS}
}

func (s *fsStorage) Location() string {
	return "embedded"
}

func (s *fsStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := s.fsys.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, err
	}
	return f, nil
}

func (s *fsStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := fs.Stat(s.fsys, key)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// New loads the reference artifacts with default keys and fails tb on error.
func New(tb testing.TB) *artifacts.Store {
	tb.Helper()

	cfg := &artifacts.Config{}
	if err := cfg.Finalize(nil); err != nil {
		tb.Fatalf("artifact config: %v", err)
	}

	store, err := artifacts.Load(context.Background(), Storage(), cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		tb.Fatalf("load reference artifacts: %v", err)
	}
	return store
}
