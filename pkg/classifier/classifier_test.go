package classifier_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/palmer/pkg/classifier"
)

// Scaled feature vectors (encoder block then scaler block) for three
// reference penguins.
var (
	torgersen = []float64{0, 0, 1, 0, 1, -0.8828, 0.7868, -1.4168, -0.5633}
	biscoe    = []float64{1, 0, 0, 1, 0, 0.8755, -1.0406, 1.4993, 1.4318}
	dream     = []float64{0, 1, 0, 1, 0, 1.022, 0.6345, -0.421, -0.501}
)

func loadModel(t *testing.T, name string) classifier.Classifier {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "models", name))
	require.NoError(t, err)

	c, err := classifier.Decode(data)
	require.NoError(t, err)
	return c
}

func TestReferenceModels(t *testing.T) {
	for _, name := range []string{"logistic_regression.json", "svm.json", "decision_tree.json", "knn.json"} {
		t.Run(name, func(t *testing.T) {
			c := loadModel(t, name)
			assert.Equal(t, 9, c.Features())

			labels, err := c.Predict([][]float64{torgersen, biscoe, dream})
			require.NoError(t, err)
			assert.Equal(t, []string{"Adelie", "Gentoo", "Chinstrap"}, labels)
		})
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	c := loadModel(t, "knn.json")

	_, err := c.Predict([][]float64{torgersen, {1, 2, 3}})
	assert.ErrorIs(t, err, classifier.ErrDimension)
}

func TestPredictEmptyBatch(t *testing.T) {
	c := loadModel(t, "decision_tree.json")

	labels, err := c.Predict(nil)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"malformed", `{"kind":`, classifier.ErrInvalidArtifact},
		{"unknown kind", `{"kind":"random_forest"}`, classifier.ErrUnknownKind},
		{"missing kind", `{}`, classifier.ErrUnknownKind},
		{
			"logistic row count",
			`{"kind":"logistic_regression","classes":["a","b","c"],"coef":[[1],[2]],"intercept":[0,0]}`,
			classifier.ErrInvalidArtifact,
		},
		{
			"duplicate classes",
			`{"kind":"logistic_regression","classes":["a","a"],"coef":[[1]],"intercept":[0]}`,
			classifier.ErrInvalidArtifact,
		},
		{
			"svc intercept count",
			`{"kind":"svc","kernel":"linear","classes":["a","b","c"],"n_support":[1,1,1],
			  "support_vectors":[[0],[1],[2]],"dual_coef":[[1,1,1],[1,1,1]],"intercept":[0]}`,
			classifier.ErrInvalidArtifact,
		},
		{
			"svc rbf without gamma",
			`{"kind":"svc","kernel":"rbf","classes":["a","b"],"n_support":[1,1],
			  "support_vectors":[[0],[1]],"dual_coef":[[1,-1]],"intercept":[0]}`,
			classifier.ErrInvalidArtifact,
		},
		{
			"tree cycle",
			`{"kind":"decision_tree","classes":["a","b"],"n_features":1,"nodes":[
			  {"feature":0,"threshold":0,"left":0,"right":1},
			  {"feature":0,"threshold":0,"left":-1,"right":-1,"value":[1,0]}]}`,
			classifier.ErrInvalidArtifact,
		},
		{
			"tree feature out of range",
			`{"kind":"decision_tree","classes":["a","b"],"n_features":1,"nodes":[
			  {"feature":3,"threshold":0,"left":1,"right":2},
			  {"feature":0,"threshold":0,"left":-1,"right":-1,"value":[1,0]},
			  {"feature":0,"threshold":0,"left":-1,"right":-1,"value":[0,1]}]}`,
			classifier.ErrInvalidArtifact,
		},
		{
			"knn label out of range",
			`{"kind":"knn","classes":["a","b"],"n_neighbors":1,"fit_x":[[0]],"fit_y":[5]}`,
			classifier.ErrInvalidArtifact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classifier.Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogisticRegressionBinary(t *testing.T) {
	c, err := classifier.Decode([]byte(`{
		"kind": "logistic_regression",
		"classes": ["neg", "pos"],
		"coef": [[2, -1]],
		"intercept": [-0.5]
	}`))
	require.NoError(t, err)

	labels, err := c.Predict([][]float64{{1, 0}, {0, 1}, {0.25, 0}})
	require.NoError(t, err)
	assert.Equal(t, []string{"pos", "neg", "neg"}, labels)
}

func TestSVCRBF(t *testing.T) {
	c, err := classifier.Decode([]byte(`{
		"kind": "svc",
		"kernel": "rbf",
		"gamma": 1,
		"classes": ["low", "high"],
		"n_support": [1, 1],
		"support_vectors": [[0], [2]],
		"dual_coef": [[1, -1]],
		"intercept": [0]
	}`))
	require.NoError(t, err)

	labels, err := c.Predict([][]float64{{0.1}, {1.9}})
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "high"}, labels)
}

func TestKNNUniformTieGoesToFirstClass(t *testing.T) {
	c, err := classifier.Decode([]byte(`{
		"kind": "knn",
		"classes": ["a", "b"],
		"n_neighbors": 2,
		"fit_x": [[0], [2]],
		"fit_y": [1, 0]
	}`))
	require.NoError(t, err)

	labels, err := c.Predict([][]float64{{1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, labels)
}

func TestKNNDistanceExactMatch(t *testing.T) {
	c, err := classifier.Decode([]byte(`{
		"kind": "knn",
		"classes": ["a", "b"],
		"n_neighbors": 3,
		"weights": "distance",
		"fit_x": [[0], [0.1], [0.2]],
		"fit_y": [0, 1, 1]
	}`))
	require.NoError(t, err)

	labels, err := c.Predict([][]float64{{0}, {0.15}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, labels)
}

func TestDecisionTreeLeafArgmax(t *testing.T) {
	c, err := classifier.Decode([]byte(`{
		"kind": "decision_tree",
		"classes": ["a", "b", "c"],
		"n_features": 2,
		"nodes": [
			{"feature": 1, "threshold": 0, "left": 1, "right": 2},
			{"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": [1, 4, 4]},
			{"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": [0, 0, 9]}
		]
	}`))
	require.NoError(t, err)

	labels, err := c.Predict([][]float64{{5, 0}, {5, 0.01}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, labels)
}
