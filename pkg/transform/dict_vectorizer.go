package transform

import (
	"fmt"
	"strings"
)

// DictVectorizer one-hot encodes string values by their fitted column
// names. A value v under key k sets the column named k+Separator+v; values
// with no fitted column leave every column of that key at zero.
type DictVectorizer struct {
	FeatureNames []string `json:"feature_names"`
	Separator    string   `json:"separator"`

	index map[string]int
}

// DecodeDictVectorizer parses a dict_vectorizer artifact document.
func DecodeDictVectorizer(data []byte) (*DictVectorizer, error) {
	v := &DictVectorizer{}
	if err := decode(data, KindDictVectorizer, v); err != nil {
		return nil, err
	}
	return v, nil
}

// NewDictVectorizer builds a vectorizer from fitted column names.
func NewDictVectorizer(featureNames []string, separator string) (*DictVectorizer, error) {
	v := &DictVectorizer{FeatureNames: featureNames, Separator: separator}
	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	return v, nil
}

// Width returns the number of output columns.
func (v *DictVectorizer) Width() int {
	return len(v.FeatureNames)
}

// Keys returns the distinct input keys the vectorizer was fitted on, in
// column order.
func (v *DictVectorizer) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, name := range v.FeatureNames {
		key, _, _ := strings.Cut(name, v.Separator)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Transform encodes one record.
func (v *DictVectorizer) Transform(record map[string]string) []float64 {
	out := make([]float64, len(v.FeatureNames))
	for key, value := range record {
		if i, ok := v.index[key+v.Separator+value]; ok {
			out[i] = 1
		}
	}
	return out
}

func (v *DictVectorizer) validate() error {
	if v.Separator == "" {
		v.Separator = "="
	}
	if len(v.FeatureNames) == 0 {
		return fmt.Errorf("feature_names is empty")
	}

	v.index = make(map[string]int, len(v.FeatureNames))
	for i, name := range v.FeatureNames {
		if _, ok := v.index[name]; ok {
			return fmt.Errorf("duplicate feature name %q", name)
		}
		v.index[name] = i
	}
	return nil
}
