// Package predictions implements species prediction over the loaded
// classifiers, plus the optional audit log of served predictions.
package predictions

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmer/internal/features"
)

// Response is the body of a successful prediction. Input echoes the
// request record, extra keys included.
type Response struct {
	Model      string             `json:"model"`
	Prediction string             `json:"prediction"`
	Input      features.RawRecord `json:"input"`
}

// Record is one audited prediction.
type Record struct {
	ID         uuid.UUID       `json:"id"`
	RequestID  string          `json:"request_id,omitempty"`
	Model      string          `json:"model"`
	Prediction string          `json:"prediction"`
	Input      json.RawMessage `json:"input"`
	DurationMS float64         `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}
