package transform

import "fmt"

// StandardScaler standardizes numeric columns as (x - Mean) / Scale.
// A nil Mean skips centering, a nil Scale skips scaling, and a zero scale
// entry divides by one.
type StandardScaler struct {
	Mean        []float64 `json:"mean"`
	Scale       []float64 `json:"scale"`
	NFeaturesIn int       `json:"n_features_in"`
}

// DecodeStandardScaler parses a standard_scaler artifact document.
func DecodeStandardScaler(data []byte) (*StandardScaler, error) {
	s := &StandardScaler{}
	if err := decode(data, KindStandardScaler, s); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStandardScaler builds a scaler from fitted statistics.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	s := &StandardScaler{Mean: mean, Scale: scale}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return s, nil
}

// Width returns the number of input and output columns.
func (s *StandardScaler) Width() int {
	return s.NFeaturesIn
}

// Transform standardizes one row.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != s.NFeaturesIn {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrDimension, len(x), s.NFeaturesIn)
	}

	out := make([]float64, len(x))
	for i, v := range x {
		if s.Mean != nil {
			v -= s.Mean[i]
		}
		if s.Scale != nil && s.Scale[i] != 0 {
			v /= s.Scale[i]
		}
		out[i] = v
	}
	return out, nil
}

func (s *StandardScaler) validate() error {
	widths := make([]int, 0, 3)
	if s.Mean != nil {
		widths = append(widths, len(s.Mean))
	}
	if s.Scale != nil {
		widths = append(widths, len(s.Scale))
	}
	if s.NFeaturesIn != 0 {
		widths = append(widths, s.NFeaturesIn)
	}
	if len(widths) == 0 {
		return fmt.Errorf("width unknown: set mean, scale or n_features_in")
	}

	for _, w := range widths[1:] {
		if w != widths[0] {
			return fmt.Errorf("inconsistent widths %v", widths)
		}
	}
	if widths[0] == 0 {
		return fmt.Errorf("width must be positive")
	}

	s.NFeaturesIn = widths[0]
	return nil
}
