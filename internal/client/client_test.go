package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/palmer/internal/client"
)

var modelNames = []string{"logistic_regression", "svm", "decision_tree", "knn"}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","models_loaded":4,"preprocessors_loaded":2}`))
	})
	mux.HandleFunc("GET /models", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"models": modelNames})
	})
	mux.HandleFunc("POST /predict/{model}", func(w http.ResponseWriter, r *http.Request) {
		model := r.PathValue("model")
		if model == "random_forest" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"error":            `model "random_forest" not found`,
				"available_models": modelNames,
			})
			return
		}

		var record map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&record))

		species := "Adelie"
		if record["island"] == "Biscoe" {
			species = "Gentoo"
		}
		json.NewEncoder(w).Encode(map[string]any{"model": model, "prediction": species, "input": record})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPredictEscapesModelName(t *testing.T) {
	c := client.New(newServer(t).URL, time.Second)

	for _, name := range []string{"svm/v2", "knn?k=3", "decision tree"} {
		p, err := c.Predict(context.Background(), name, client.DefaultSamples()[0].Record)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Model)
	}
}

func TestHealth(t *testing.T) {
	c := client.New(newServer(t).URL, time.Second)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &client.Health{Status: "ok", ModelsLoaded: 4, PreprocessorsLoaded: 2}, h)
}

func TestModels(t *testing.T) {
	c := client.New(newServer(t).URL+"/", time.Second)

	models, err := c.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, modelNames, models)
}

func TestPredict(t *testing.T) {
	c := client.New(newServer(t).URL, time.Second)
	sample := client.DefaultSamples()[0]

	p, err := c.Predict(context.Background(), "knn", sample.Record)
	require.NoError(t, err)

	assert.Equal(t, "knn", p.Model)
	assert.Equal(t, "Adelie", p.Prediction)
	assert.Equal(t, "Torgersen", p.Input["island"])
	assert.Equal(t, 39.1, p.Input["bill_length_mm"])
}

func TestPredictAPIError(t *testing.T) {
	c := client.New(newServer(t).URL, time.Second)

	_, err := c.Predict(context.Background(), "random_forest", map[string]any{})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, `model "random_forest" not found`, apiErr.Message)
	assert.Len(t, apiErr.Fields["available_models"], 4)
}

func TestPredictUnreachable(t *testing.T) {
	c := client.New("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := c.Health(context.Background())
	assert.Error(t, err)
}

func TestDefaultSamples(t *testing.T) {
	samples := client.DefaultSamples()

	require.Len(t, samples, 2)
	assert.Equal(t, "torgersen-male", samples[0].Name)
	assert.Equal(t, "Biscoe", samples[1].Record["island"])
	assert.Equal(t, 5350.0, samples[1].Record["body_mass_g"])
}

func TestLoadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- record:
    island: Dream
    sex: Female
    bill_length_mm: 49.5
    bill_depth_mm: 18.4
    flipper_length_mm: 195
    body_mass_g: 3800
`), 0o644))

	samples, err := client.LoadSamples(path)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "sample-1", samples[0].Name)
	assert.Equal(t, "Dream", samples[0].Record["island"])
}

func TestParseSamplesInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":     ``,
		"no record": "- name: x\n",
		"not list":  "island: Dream\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := client.ParseSamples([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestSweep(t *testing.T) {
	c := client.New(newServer(t).URL, time.Second)

	results := client.Sweep(context.Background(), c, []string{"svm", "random_forest"}, client.DefaultSamples())

	require.Len(t, results, 4)
	assert.Equal(t, client.Result{Model: "svm", Sample: "torgersen-male", Prediction: "Adelie"}, results[0])
	assert.Equal(t, "Gentoo", results[1].Prediction)
	assert.Error(t, results[2].Err)
	assert.Error(t, results[3].Err)

	var buf bytes.Buffer
	client.RenderResults(&buf, results)

	out := buf.String()
	assert.Contains(t, out, "torgersen-male")
	assert.Contains(t, out, "Gentoo")
	assert.Contains(t, strings.ToLower(out), "4 (2 failed)")
	assert.Contains(t, strings.ToLower(out), "prediction")
}
