package predictions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmer/internal/artifacts"
	"github.com/JaimeStill/palmer/internal/features"
	"github.com/JaimeStill/palmer/pkg/middleware"
	"github.com/JaimeStill/palmer/pkg/pagination"
)

const auditTimeout = 5 * time.Second

// System defines the public contract for prediction operations.
type System interface {
	// Models returns the served model names in fixed order.
	Models() []string

	// Predict classifies the JSON record read from body with the named model.
	Predict(ctx context.Context, model string, body io.Reader) (*Response, error)

	// History lists audited predictions. Returns ErrAuditDisabled when no
	// audit log is configured.
	History(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Record], error)
}

// AuditLog stores served predictions.
type AuditLog interface {
	Record(ctx context.Context, rec Record) error
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Record], error)
}

type system struct {
	store   *artifacts.Store
	audit   AuditLog
	metrics *Metrics
	logger  *slog.Logger
}

// New creates a prediction System over a loaded artifact store.
// audit and metrics may be nil.
func New(store *artifacts.Store, audit AuditLog, metrics *Metrics, logger *slog.Logger) System {
	return &system{
		store:   store,
		audit:   audit,
		metrics: metrics,
		logger:  logger.With("system", "predictions"),
	}
}

func (s *system) Models() []string {
	return s.store.Names()
}

func (s *system) Predict(ctx context.Context, model string, body io.Reader) (*Response, error) {
	start := time.Now()

	clf, ok := s.store.Model(model)
	if !ok {
		s.metrics.observe(model, OutcomeUnknownModel, 0)
		return nil, &UnknownModelError{Name: model, Available: s.store.Names()}
	}

	data, raw, err := decodeRecord(body)
	if err != nil {
		s.metrics.observe(model, OutcomeRejected, 0)
		return nil, err
	}

	vec, err := s.store.Pipeline().BuildRaw(raw)
	if err != nil {
		s.metrics.observe(model, OutcomeRejected, 0)
		return nil, err
	}

	labels, err := clf.Predict([][]float64{vec})
	if err != nil {
		s.metrics.observe(model, OutcomeError, 0)
		return nil, fmt.Errorf("%w: %s: %w", ErrPrediction, model, err)
	}

	elapsed := time.Since(start)
	s.metrics.observe(model, OutcomeSuccess, elapsed)

	resp := &Response{
		Model:      model,
		Prediction: labels[0],
		Input:      raw,
	}

	s.record(ctx, resp, data, elapsed)
	return resp, nil
}

func (s *system) History(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Record], error) {
	if s.audit == nil {
		return nil, ErrAuditDisabled
	}
	return s.audit.List(ctx, page, filters)
}

func (s *system) record(ctx context.Context, resp *Response, input []byte, elapsed time.Duration) {
	if s.audit == nil {
		return
	}

	rec := Record{
		ID:         uuid.New(),
		RequestID:  middleware.RequestIDFrom(ctx),
		Model:      resp.Model,
		Prediction: resp.Prediction,
		Input:      input,
		DurationMS: float64(elapsed.Microseconds()) / 1000,
		CreatedAt:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	if err := s.audit.Record(ctx, rec); err != nil {
		s.logger.Warn("audit write failed", "model", rec.Model, "request_id", rec.RequestID, "error", err)
	}
}

// decodeRecord reads a JSON object from body. The raw bytes are returned
// alongside the decoded record. Values are echoed verbatim, so the whole
// body must be valid UTF-8.
func decodeRecord(body io.Reader) ([]byte, features.RawRecord, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if !utf8.Valid(data) {
		return nil, nil, fmt.Errorf("%w: body is not valid UTF-8", ErrMalformedBody)
	}

	var raw features.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: body must be a JSON object", ErrMalformedBody)
	}
	if raw == nil {
		return nil, nil, fmt.Errorf("%w: body must be a JSON object", ErrMalformedBody)
	}

	return data, raw, nil
}
