package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","models_loaded":4,"preprocessors_loaded":2}`))
	})
	mux.HandleFunc("GET /models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":["logistic_regression","svm","decision_tree","knn"]}`))
	})
	mux.HandleFunc("POST /predict/{model}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"model": r.PathValue("model"), "prediction": "Adelie"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootFlags.samples = ""
	rootFlags.models = nil

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestSweepCommand(t *testing.T) {
	srv := fakeService(t)

	out, err := execute(t, "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Sending 2 samples to 4 models")
	assert.Contains(t, strings.ToLower(out), "8 (0 failed)")
}

func TestSweepSelectedModels(t *testing.T) {
	srv := fakeService(t)

	out, err := execute(t, "--base-url", srv.URL, "--model", "knn", "--model", "svm")
	require.NoError(t, err)
	assert.Contains(t, out, "Sending 2 samples to 2 models")
}

func TestModelsCommand(t *testing.T) {
	srv := fakeService(t)

	out, err := execute(t, "models", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "logistic_regression\nsvm\ndecision_tree\nknn\n", out)
}

func TestHealthCommand(t *testing.T) {
	srv := fakeService(t)

	out, err := execute(t, "health", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "models_loaded")
}

func TestSweepFailsWhenUnhealthy(t *testing.T) {
	_, err := execute(t, "--base-url", "http://127.0.0.1:1", "--timeout", "200ms")
	assert.ErrorContains(t, err, "health check")
}
