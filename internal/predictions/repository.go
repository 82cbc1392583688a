package predictions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/palmer/pkg/pagination"
	"github.com/JaimeStill/palmer/pkg/query"
	"github.com/JaimeStill/palmer/pkg/repository"
)

type history struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHistory creates a PostgreSQL-backed AuditLog.
func NewHistory(db *sql.DB, logger *slog.Logger, pagination pagination.Config) AuditLog {
	return &history{
		db:         db,
		logger:     logger.With("system", "prediction-history"),
		pagination: pagination,
	}
}

func (h *history) Record(ctx context.Context, rec Record) error {
	var requestID *string
	if rec.RequestID != "" {
		requestID = &rec.RequestID
	}

	err := repository.ExecExpectOne(
		ctx, h.db,
		`INSERT INTO predictions(id, request_id, model, prediction, input, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID,
		requestID,
		rec.Model,
		rec.Prediction,
		string(rec.Input),
		rec.DurationMS,
		rec.CreatedAt,
	)
	if err != nil {
		return repository.MapError(err, nil)
	}

	h.logger.Debug("prediction recorded", "id", rec.ID, "model", rec.Model)
	return nil
}

func (h *history) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Record], error) {
	page.Normalize(h.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := h.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count predictions: %w", repository.MapError(err, nil))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, h.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", repository.MapError(err, nil))
	}

	result := pagination.NewPageResult(records, total, page)
	return &result, nil
}
