// Package features validates raw penguin records and maps them to the
// feature vectors every classifier was fitted on.
package features

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Column names of a penguin record.
const (
	Island          = "island"
	Sex             = "sex"
	BillLengthMM    = "bill_length_mm"
	BillDepthMM     = "bill_depth_mm"
	FlipperLengthMM = "flipper_length_mm"
	BodyMassG       = "body_mass_g"
)

// CategoricalColumns are encoded by the vectorizer, in this order.
var CategoricalColumns = []string{Island, Sex}

// NumericColumns are standardized by the scaler, in this order.
var NumericColumns = []string{BillLengthMM, BillDepthMM, FlipperLengthMM, BodyMassG}

// RequiredColumns returns every column a record must carry, categorical first.
func RequiredColumns() []string {
	return append(append([]string{}, CategoricalColumns...), NumericColumns...)
}

// RawRecord is a decoded request body with values kept as raw JSON so the
// input can be echoed back unchanged.
type RawRecord map[string]json.RawMessage

// Missing returns the required columns absent from r, in RequiredColumns order.
func (r RawRecord) Missing() []string {
	var missing []string
	for _, col := range RequiredColumns() {
		if _, ok := r[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// Record is a validated penguin record.
type Record struct {
	Island          string  `json:"island"`
	Sex             string  `json:"sex"`
	BillLengthMM    float64 `json:"bill_length_mm"`
	BillDepthMM     float64 `json:"bill_depth_mm"`
	FlipperLengthMM float64 `json:"flipper_length_mm"`
	BodyMassG       float64 `json:"body_mass_g"`
}

// Categorical projects the categorical columns for the vectorizer.
func (r Record) Categorical() map[string]string {
	return map[string]string{
		Island: r.Island,
		Sex:    r.Sex,
	}
}

// Numeric projects the numeric columns in NumericColumns order.
func (r Record) Numeric() []float64 {
	return []float64{r.BillLengthMM, r.BillDepthMM, r.FlipperLengthMM, r.BodyMassG}
}

// Parse validates raw into a Record. Missing columns are reported together
// as a *MissingColumnsError. Otherwise the first column, in RequiredColumns
// order, whose value does not fit its type yields an *InvalidValueError.
// Categorical values must be JSON strings. Numeric values must be JSON
// numbers or strings holding a finite decimal number.
func Parse(raw RawRecord) (Record, error) {
	if missing := raw.Missing(); len(missing) > 0 {
		return Record{}, &MissingColumnsError{Columns: missing}
	}

	var rec Record

	categorical := []struct {
		name string
		dst  *string
	}{
		{Island, &rec.Island},
		{Sex, &rec.Sex},
	}
	for _, c := range categorical {
		v, err := parseString(c.name, raw[c.name])
		if err != nil {
			return Record{}, err
		}
		*c.dst = v
	}

	numeric := []struct {
		name string
		dst  *float64
	}{
		{BillLengthMM, &rec.BillLengthMM},
		{BillDepthMM, &rec.BillDepthMM},
		{FlipperLengthMM, &rec.FlipperLengthMM},
		{BodyMassG, &rec.BodyMassG},
	}
	for _, c := range numeric {
		v, err := parseNumber(c.name, raw[c.name])
		if err != nil {
			return Record{}, err
		}
		*c.dst = v
	}

	return rec, nil
}

func parseString(col string, raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)

	var s string
	if len(trimmed) == 0 || trimmed[0] != '"' || json.Unmarshal(trimmed, &s) != nil {
		return "", &InvalidValueError{Column: col, Value: string(raw), Reason: "expected a string"}
	}
	return s, nil
}

func parseNumber(col string, raw json.RawMessage) (float64, error) {
	trimmed := bytes.TrimSpace(raw)

	var text string
	switch {
	case len(trimmed) > 0 && trimmed[0] == '"':
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0, &InvalidValueError{Column: col, Value: string(raw), Reason: "expected a number"}
		}
		text = strings.TrimSpace(text)
	case len(trimmed) > 0 && (trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9')):
		text = string(trimmed)
	default:
		return 0, &InvalidValueError{Column: col, Value: string(raw), Reason: "expected a number"}
	}

	if strings.ContainsAny(text, "xX_") {
		return 0, &InvalidValueError{Column: col, Value: string(raw), Reason: "expected a decimal number"}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidValueError{Column: col, Value: string(raw), Reason: "expected a finite number"}
	}
	return v, nil
}
