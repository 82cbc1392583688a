package classifier

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a fitted linear model scored one-vs-rest or
// multinomially; both pick the class with the highest linear score. A
// binary model stores a single coefficient row scoring the second class.
type LogisticRegression struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

func (m *LogisticRegression) Features() int {
	if len(m.Coef) == 0 {
		return 0
	}
	return len(m.Coef[0])
}

func (m *LogisticRegression) Predict(X [][]float64) ([]string, error) {
	return predictRows(X, m.Features(), m.predict)
}

func (m *LogisticRegression) predict(x []float64) string {
	if len(m.Coef) == 1 {
		if floats.Dot(m.Coef[0], x)+m.Intercept[0] > 0 {
			return m.Classes[1]
		}
		return m.Classes[0]
	}

	scores := make([]float64, len(m.Coef))
	for k, w := range m.Coef {
		scores[k] = floats.Dot(w, x) + m.Intercept[k]
	}
	return m.Classes[floats.MaxIdx(scores)]
}

func (m *LogisticRegression) validate() error {
	if err := validateClasses(m.Classes); err != nil {
		return err
	}

	rows := len(m.Classes)
	if rows == 2 && len(m.Coef) == 1 {
		rows = 1
	}
	if len(m.Coef) != rows {
		return fmt.Errorf("coef has %d rows, want %d", len(m.Coef), rows)
	}
	if len(m.Intercept) != rows {
		return fmt.Errorf("intercept has %d entries, want %d", len(m.Intercept), rows)
	}
	if m.Features() == 0 {
		return fmt.Errorf("coef has no columns")
	}
	return validateMatrix("coef", m.Coef, m.Features())
}
