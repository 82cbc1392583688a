package transform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/palmer/pkg/transform"
)

func readModel(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "models", name))
	require.NoError(t, err)
	return data
}

func TestDictVectorizerTransform(t *testing.T) {
	v, err := transform.DecodeDictVectorizer(readModel(t, "dict_vectorizer.json"))
	require.NoError(t, err)

	assert.Equal(t, 5, v.Width())
	assert.Equal(t, []string{"island", "sex"}, v.Keys())

	tests := []struct {
		name   string
		record map[string]string
		want   []float64
	}{
		{"known levels", map[string]string{"island": "Dream", "sex": "Male"}, []float64{0, 1, 0, 0, 1}},
		{"unknown island", map[string]string{"island": "Atlantis", "sex": "Female"}, []float64{0, 0, 0, 1, 0}},
		{"case sensitive", map[string]string{"island": "biscoe", "sex": "male"}, []float64{0, 0, 0, 0, 0}},
		{"extra keys ignored", map[string]string{"island": "Biscoe", "sex": "Female", "species": "Gentoo"}, []float64{1, 0, 0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Transform(tt.record))
		})
	}
}

func TestDictVectorizerInvalid(t *testing.T) {
	_, err := transform.NewDictVectorizer([]string{"a=1", "a=1"}, "=")
	assert.ErrorIs(t, err, transform.ErrInvalidArtifact)

	_, err = transform.DecodeDictVectorizer([]byte(`{"kind":"standard_scaler","mean":[1]}`))
	assert.ErrorIs(t, err, transform.ErrKindMismatch)
}

func TestStandardScalerTransform(t *testing.T) {
	s, err := transform.DecodeStandardScaler(readModel(t, "scaler.json"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Width())

	got, err := s.Transform([]float64{39.1, 18.7, 181, 3750})
	require.NoError(t, err)

	want := []float64{-0.8828, 0.7868, -1.4168, -0.5633}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Errorf("scaled vector mismatch (-want +got):\n%s", diff)
	}
}

func TestStandardScalerPartial(t *testing.T) {
	tests := []struct {
		name  string
		mean  []float64
		scale []float64
		in    []float64
		want  []float64
	}{
		{"mean only", []float64{1, 2}, nil, []float64{3, 3}, []float64{2, 1}},
		{"scale only", nil, []float64{2, 4}, []float64{3, 3}, []float64{1.5, 0.75}},
		{"zero scale", []float64{1, 1}, []float64{0, 2}, []float64{3, 3}, []float64{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := transform.NewStandardScaler(tt.mean, tt.scale)
			require.NoError(t, err)

			got, err := s.Transform(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardScalerErrors(t *testing.T) {
	_, err := transform.NewStandardScaler([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, transform.ErrInvalidArtifact)

	_, err = transform.NewStandardScaler(nil, nil)
	assert.ErrorIs(t, err, transform.ErrInvalidArtifact)

	s, err := transform.NewStandardScaler([]float64{0, 0}, nil)
	require.NoError(t, err)

	_, err = s.Transform([]float64{1})
	assert.ErrorIs(t, err, transform.ErrDimension)
}
