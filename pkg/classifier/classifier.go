// Package classifier evaluates fitted multi-class classifiers decoded from
// JSON artifact documents. Each document names its estimator in a "kind"
// field and carries the fitted parameters of that estimator.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kinds understood by Decode.
const (
	KindLogisticRegression = "logistic_regression"
	KindSVC                = "svc"
	KindDecisionTree       = "decision_tree"
	KindKNN                = "knn"
)

var (
	// ErrUnknownKind indicates an artifact names an estimator this package cannot evaluate.
	ErrUnknownKind = errors.New("unknown classifier kind")
	// ErrInvalidArtifact indicates an artifact's parameters are inconsistent.
	ErrInvalidArtifact = errors.New("invalid classifier artifact")
	// ErrDimension indicates an input row does not match the classifier's feature count.
	ErrDimension = errors.New("feature dimension mismatch")
)

// Classifier maps rows of features to class labels.
type Classifier interface {
	// Predict returns one label per row of X.
	Predict(X [][]float64) ([]string, error)
	// Features returns the row width the classifier was fitted on.
	Features() int
}

type header struct {
	Kind string `json:"kind"`
}

type artifact interface {
	Classifier
	validate() error
}

// Decode parses an artifact document into the Classifier its kind names.
func Decode(data []byte) (Classifier, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	var c artifact

	switch h.Kind {
	case KindLogisticRegression:
		c = &LogisticRegression{}
	case KindSVC:
		c = &SVC{}
	case KindDecisionTree:
		c = &DecisionTree{}
	case KindKNN:
		c = &KNN{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, h.Kind)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, h.Kind, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, h.Kind, err)
	}

	return c, nil
}

func predictRows(X [][]float64, width int, predict func([]float64) string) ([]string, error) {
	labels := make([]string, len(X))
	for i, row := range X {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimension, i, len(row), width)
		}
		labels[i] = predict(row)
	}
	return labels, nil
}

func validateClasses(classes []string) error {
	if len(classes) < 2 {
		return fmt.Errorf("need at least 2 classes, got %d", len(classes))
	}
	seen := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		if _, ok := seen[c]; ok {
			return fmt.Errorf("duplicate class %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func validateMatrix(name string, m [][]float64, width int) error {
	for i, row := range m {
		if len(row) != width {
			return fmt.Errorf("%s row %d has %d columns, want %d", name, i, len(row), width)
		}
	}
	return nil
}
