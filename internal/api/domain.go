package api

import (
	"fmt"

	"github.com/JaimeStill/palmer/internal/predictions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Predictions predictions.System

	// History reports whether predictions are audited, which enables
	// the history endpoint.
	History bool
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	metrics, err := predictions.NewMetrics(runtime.Metrics)
	if err != nil {
		return nil, fmt.Errorf("register prediction metrics: %w", err)
	}

	var audit predictions.AuditLog
	if runtime.Database != nil {
		audit = predictions.NewHistory(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		)
	}

	return &Domain{
		Predictions: predictions.New(runtime.Artifacts, audit, metrics, runtime.Logger),
		History:     audit != nil,
	}, nil
}
