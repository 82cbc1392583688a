package client

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed samples.yaml
var defaultSamples []byte

// Sample is a named record to send to every model.
type Sample struct {
	Name   string         `yaml:"name"`
	Record map[string]any `yaml:"record"`
}

// DefaultSamples returns the built-in reference penguins.
func DefaultSamples() []Sample {
	samples, err := ParseSamples(defaultSamples)
	if err != nil {
		panic(fmt.Sprintf("embedded samples: %v", err))
	}
	return samples
}

// LoadSamples reads samples from a YAML file.
func LoadSamples(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return ParseSamples(data)
}

// ParseSamples decodes a YAML list of samples. Unnamed samples are named
// by position.
func ParseSamples(data []byte) ([]Sample, error) {
	var samples []Sample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, errors.New("no samples defined")
	}

	for i := range samples {
		if samples[i].Name == "" {
			samples[i].Name = fmt.Sprintf("sample-%d", i+1)
		}
		if len(samples[i].Record) == 0 {
			return nil, fmt.Errorf("sample %s has no record", samples[i].Name)
		}
	}
	return samples, nil
}
