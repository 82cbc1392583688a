package predictions

import (
	"fmt"
	"net/url"
	"time"

	"github.com/JaimeStill/palmer/pkg/query"
	"github.com/JaimeStill/palmer/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "predictions", "p").
	Project("id", "id").
	Project("request_id", "request_id").
	Project("model", "model").
	Project("prediction", "prediction").
	Project("input", "input").
	Project("duration_ms", "duration_ms").
	Project("created_at", "created_at")

var defaultSort = query.SortField{
	Field:      "created_at",
	Descending: true,
}

// Filters narrows an audit log listing. Empty fields are ignored.
// Since is inclusive and Until exclusive.
type Filters struct {
	Model      string
	Prediction string
	Since      *time.Time
	Until      *time.Time
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("model", f.Model).WhereEquals("prediction", f.Prediction)
	if f.Since != nil {
		b.WhereAtLeast("created_at", *f.Since)
	}
	if f.Until != nil {
		b.WhereBefore("created_at", *f.Until)
	}
	return b
}

// FiltersFromQuery reads model, prediction, since and until query
// parameters. Times are RFC 3339.
func FiltersFromQuery(values url.Values) (Filters, error) {
	f := Filters{
		Model:      values.Get("model"),
		Prediction: values.Get("prediction"),
	}

	for name, dst := range map[string]**time.Time{"since": &f.Since, "until": &f.Until} {
		v := values.Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: %s must be RFC 3339: %q", ErrInvalidFilter, name, v)
		}
		*dst = &t
	}

	return f, nil
}

func scanRecord(s repository.Scanner) (Record, error) {
	var (
		r         Record
		requestID *string
		input     []byte
	)

	err := s.Scan(
		&r.ID,
		&requestID,
		&r.Model,
		&r.Prediction,
		&input,
		&r.DurationMS,
		&r.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	if requestID != nil {
		r.RequestID = *requestID
	}
	r.Input = input
	return r, nil
}
