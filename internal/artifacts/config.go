package artifacts

import (
	"fmt"
	"os"
	"time"
)

// Config maps each artifact to its storage key.
type Config struct {
	LogisticRegression string `toml:"logistic_regression"`
	SVM                string `toml:"svm"`
	DecisionTree       string `toml:"decision_tree"`
	KNN                string `toml:"knn"`
	Encoder            string `toml:"encoder"`
	Scaler             string `toml:"scaler"`
	LoadTimeout        string `toml:"load_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	LogisticRegression string
	SVM                string
	DecisionTree       string
	KNN                string
	Encoder            string
	Scaler             string
	LoadTimeout        string
}

// LoadTimeoutDuration returns LoadTimeout as a time.Duration.
func (c *Config) LoadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.LoadTimeout)
	return d
}

// ModelKeys returns the storage key of each classifier by model name.
func (c *Config) ModelKeys() map[string]string {
	return map[string]string{
		LogisticRegression: c.LogisticRegression,
		SVM:                c.SVM,
		DecisionTree:       c.DecisionTree,
		KNN:                c.KNN,
	}
}

// Keys returns every artifact key: the classifiers in listing order, then
// the encoder and the scaler.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(modelNames)+2)
	for _, name := range modelNames {
		keys = append(keys, c.ModelKeys()[name])
	}
	return append(keys, c.Encoder, c.Scaler)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogisticRegression != "" {
		c.LogisticRegression = overlay.LogisticRegression
	}
	if overlay.SVM != "" {
		c.SVM = overlay.SVM
	}
	if overlay.DecisionTree != "" {
		c.DecisionTree = overlay.DecisionTree
	}
	if overlay.KNN != "" {
		c.KNN = overlay.KNN
	}
	if overlay.Encoder != "" {
		c.Encoder = overlay.Encoder
	}
	if overlay.Scaler != "" {
		c.Scaler = overlay.Scaler
	}
	if overlay.LoadTimeout != "" {
		c.LoadTimeout = overlay.LoadTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.LogisticRegression == "" {
		c.LogisticRegression = "logistic_regression.json"
	}
	if c.SVM == "" {
		c.SVM = "svm.json"
	}
	if c.DecisionTree == "" {
		c.DecisionTree = "decision_tree.json"
	}
	if c.KNN == "" {
		c.KNN = "knn.json"
	}
	if c.Encoder == "" {
		c.Encoder = "dict_vectorizer.json"
	}
	if c.Scaler == "" {
		c.Scaler = "scaler.json"
	}
	if c.LoadTimeout == "" {
		c.LoadTimeout = "30s"
	}
}

// loadEnv overlays set variables; unset ones leave fields unchanged.
func (c *Config) loadEnv(env *Env) {
	overlay := Config{
		LogisticRegression: os.Getenv(env.LogisticRegression),
		SVM:                os.Getenv(env.SVM),
		DecisionTree:       os.Getenv(env.DecisionTree),
		KNN:                os.Getenv(env.KNN),
		Encoder:            os.Getenv(env.Encoder),
		Scaler:             os.Getenv(env.Scaler),
		LoadTimeout:        os.Getenv(env.LoadTimeout),
	}
	c.Merge(&overlay)
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.LoadTimeout)
	if err != nil {
		return fmt.Errorf("invalid load_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("load_timeout must be positive")
	}

	seen := make(map[string]bool)
	for _, key := range []string{c.LogisticRegression, c.SVM, c.DecisionTree, c.KNN, c.Encoder, c.Scaler} {
		if seen[key] {
			return fmt.Errorf("artifact key %q assigned twice", key)
		}
		seen[key] = true
	}
	return nil
}
