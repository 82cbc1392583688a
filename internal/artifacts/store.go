// Package artifacts loads the fitted classifiers and preprocessing
// transforms once at startup and serves them read-only afterwards.
package artifacts

import (
	"errors"
	"fmt"
	"slices"

	"github.com/JaimeStill/palmer/internal/features"
	"github.com/JaimeStill/palmer/pkg/classifier"
	"github.com/JaimeStill/palmer/pkg/transform"
)

// Model names served by the API, in listing order.
const (
	LogisticRegression = "logistic_regression"
	SVM                = "svm"
	DecisionTree       = "decision_tree"
	KNN                = "knn"
)

var modelNames = []string{LogisticRegression, SVM, DecisionTree, KNN}

// ErrIncompatible indicates the loaded artifacts do not fit together.
var ErrIncompatible = errors.New("incompatible artifacts")

// Store holds the loaded artifacts. It is immutable after construction and
// safe for concurrent use.
type Store struct {
	models   map[string]classifier.Classifier
	encoder  *transform.DictVectorizer
	scaler   *transform.StandardScaler
	pipeline *features.Pipeline
}

// ModelNames returns the served model names in listing order.
func ModelNames() []string {
	return slices.Clone(modelNames)
}

// NewStore assembles a Store. It checks that every model name is present,
// that the encoder was fitted on exactly the categorical columns, and that
// every classifier accepts vectors of encoder width plus scaler width.
func NewStore(models map[string]classifier.Classifier, encoder *transform.DictVectorizer, scaler *transform.StandardScaler) (*Store, error) {
	if encoder == nil || scaler == nil {
		return nil, fmt.Errorf("%w: encoder and scaler are required", ErrIncompatible)
	}

	if keys := encoder.Keys(); !sameKeys(keys, features.CategoricalColumns) {
		return nil, fmt.Errorf(
			"%w: encoder is fitted on keys %v, records carry %v",
			ErrIncompatible, keys, features.CategoricalColumns,
		)
	}

	width := encoder.Width() + scaler.Width()
	owned := make(map[string]classifier.Classifier, len(modelNames))

	for _, name := range modelNames {
		m, ok := models[name]
		if !ok || m == nil {
			return nil, fmt.Errorf("%w: model %s not provided", ErrIncompatible, name)
		}
		if m.Features() != width {
			return nil, fmt.Errorf(
				"%w: model %s expects %d features, encoder and scaler produce %d",
				ErrIncompatible, name, m.Features(), width,
			)
		}
		owned[name] = m
	}

	return &Store{
		models:   owned,
		encoder:  encoder,
		scaler:   scaler,
		pipeline: features.NewPipeline(encoder, scaler),
	}, nil
}

// Model returns the classifier registered under name.
func (s *Store) Model(name string) (classifier.Classifier, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Names returns the model names in listing order.
func (s *Store) Names() []string {
	return ModelNames()
}

// Encoder returns the categorical encoder.
func (s *Store) Encoder() *transform.DictVectorizer {
	return s.encoder
}

// Scaler returns the numeric scaler.
func (s *Store) Scaler() *transform.StandardScaler {
	return s.scaler
}

// Pipeline returns the feature pipeline built from the encoder and scaler.
func (s *Store) Pipeline() *features.Pipeline {
	return s.pipeline
}

// ModelCount returns the number of loaded classifiers.
func (s *Store) ModelCount() int {
	return len(s.models)
}

// PreprocessorCount returns the number of loaded preprocessing transforms.
func (s *Store) PreprocessorCount() int {
	return 2
}

// sameKeys reports whether a and b hold the same keys in any order.
func sameKeys(a, b []string) bool {
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
