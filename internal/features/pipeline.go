package features

import (
	"fmt"
	"slices"
)

// Encoder maps categorical values to a fixed-width block.
type Encoder interface {
	Transform(map[string]string) []float64
	Width() int
}

// Scaler maps numeric values to a fixed-width block.
type Scaler interface {
	Transform([]float64) ([]float64, error)
	Width() int
}

// Vector is one model input row: the encoder block followed by the scaler block.
type Vector []float64

// Pipeline turns records into vectors with the fitted encoder and scaler.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	encoder Encoder
	scaler  Scaler
}

// NewPipeline returns a pipeline over the given fitted transforms.
func NewPipeline(encoder Encoder, scaler Scaler) *Pipeline {
	return &Pipeline{encoder: encoder, scaler: scaler}
}

// Width returns the length of every vector Build produces.
func (p *Pipeline) Width() int {
	return p.encoder.Width() + p.scaler.Width()
}

// Build encodes the categorical columns, standardizes the numeric columns,
// and concatenates the two blocks in that order.
func (p *Pipeline) Build(rec Record) (Vector, error) {
	cat := p.encoder.Transform(rec.Categorical())

	num, err := p.scaler.Transform(rec.Numeric())
	if err != nil {
		return nil, fmt.Errorf("%w: scale numeric columns: %w", ErrInvalidValue, err)
	}

	return Vector(slices.Concat(cat, num)), nil
}

// BuildRaw validates raw and builds its vector.
func (p *Pipeline) BuildRaw(raw RawRecord) (Vector, error) {
	rec, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return p.Build(rec)
}
