package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/palmer/pkg/classifier"
	"github.com/JaimeStill/palmer/pkg/formatting"
	"github.com/JaimeStill/palmer/pkg/storage"
	"github.com/JaimeStill/palmer/pkg/transform"
)

// Load reads and decodes all six artifacts concurrently. Any missing,
// unreadable or undecodable artifact fails the whole load. Missing
// artifacts are reported together before anything is downloaded.
func Load(ctx context.Context, store storage.System, cfg *Config, logger *slog.Logger) (*Store, error) {
	logger = logger.With("system", "artifacts")
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeoutDuration())
	defer cancel()

	if err := checkPresent(ctx, store, cfg.Keys()); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)

	var (
		mu      sync.Mutex
		models  = make(map[string]classifier.Classifier, len(modelNames))
		encoder *transform.DictVectorizer
		scaler  *transform.StandardScaler
	)

	fetch := func(key string) ([]byte, error) {
		data, err := storage.ReadAll(ctx, store, key)
		if err != nil {
			return nil, fmt.Errorf("load artifact %s: %w", key, err)
		}
		logger.Debug("artifact read", "key", key, "size", formatting.FormatBytes(int64(len(data)), 1))
		return data, nil
	}

	for name, key := range cfg.ModelKeys() {
		g.Go(func() error {
			data, err := fetch(key)
			if err != nil {
				return err
			}

			m, err := classifier.Decode(data)
			if err != nil {
				return fmt.Errorf("decode model %s from %s: %w", name, key, err)
			}

			mu.Lock()
			models[name] = m
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		data, err := fetch(cfg.Encoder)
		if err != nil {
			return err
		}
		encoder, err = transform.DecodeDictVectorizer(data)
		if err != nil {
			return fmt.Errorf("decode encoder from %s: %w", cfg.Encoder, err)
		}
		return nil
	})

	g.Go(func() error {
		data, err := fetch(cfg.Scaler)
		if err != nil {
			return err
		}
		scaler, err = transform.DecodeStandardScaler(data)
		if err != nil {
			return fmt.Errorf("decode scaler from %s: %w", cfg.Scaler, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s, err := NewStore(models, encoder, scaler)
	if err != nil {
		return nil, err
	}

	logger.Info(
		"artifacts loaded",
		"location", store.Location(),
		"models", s.ModelCount(),
		"preprocessors", s.PreprocessorCount(),
		"features", encoder.Width()+scaler.Width(),
		"duration", time.Since(start),
	)

	return s, nil
}

// checkPresent fails with storage.ErrNotFound naming every absent key.
func checkPresent(ctx context.Context, store storage.System, keys []string) error {
	var missing []string
	for _, key := range keys {
		ok, err := store.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("check artifact %s: %w", key, err)
		}
		if !ok {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing artifacts %s", storage.ErrNotFound, strings.Join(missing, ", "))
	}
	return nil
}
