// Package transform applies fitted preprocessing steps decoded from JSON
// artifact documents: a dictionary vectorizer for categorical values and
// a standard scaler for numeric values.
package transform

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kinds understood by this package.
const (
	KindDictVectorizer = "dict_vectorizer"
	KindStandardScaler = "standard_scaler"
)

var (
	// ErrKindMismatch indicates an artifact describes a different transform.
	ErrKindMismatch = errors.New("artifact kind mismatch")
	// ErrInvalidArtifact indicates an artifact's parameters are inconsistent.
	ErrInvalidArtifact = errors.New("invalid transform artifact")
	// ErrDimension indicates an input does not match the fitted width.
	ErrDimension = errors.New("feature dimension mismatch")
)

type validator interface {
	validate() error
}

func decode(data []byte, kind string, v validator) error {
	var h struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if h.Kind != kind {
		return fmt.Errorf("%w: got %q, want %q", ErrKindMismatch, h.Kind, kind)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, kind, err)
	}
	if err := v.validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, kind, err)
	}
	return nil
}
