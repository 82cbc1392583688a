package classifier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kernel names accepted by SVC.
const (
	KernelLinear  = "linear"
	KernelRBF     = "rbf"
	KernelPoly    = "poly"
	KernelSigmoid = "sigmoid"
)

// SVC is a fitted support vector classifier evaluated one-vs-one.
//
// Parameters follow the libsvm layout: support vectors are grouped by class
// in class order with NSupport[i] vectors for class i, DualCoef has
// len(Classes)-1 rows over all support vectors, and Intercept holds one
// entry per class pair (0,1), (0,2), ..., (1,2), ... A positive pair
// decision is a vote for the lower class index.
type SVC struct {
	Classes        []string    `json:"classes"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       [][]float64 `json:"dual_coef"`
	Intercept      []float64   `json:"intercept"`
	NSupport       []int       `json:"n_support"`
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         float64     `json:"degree"`

	starts []int
}

func (m *SVC) Features() int {
	if len(m.SupportVectors) == 0 {
		return 0
	}
	return len(m.SupportVectors[0])
}

func (m *SVC) Predict(X [][]float64) ([]string, error) {
	return predictRows(X, m.Features(), m.predict)
}

func (m *SVC) predict(x []float64) string {
	k := make([]float64, len(m.SupportVectors))
	for i, sv := range m.SupportVectors {
		k[i] = m.kernel(sv, x)
	}

	n := len(m.Classes)
	votes := make([]float64, n)
	p := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum := m.Intercept[p]
			for s := m.starts[i]; s < m.starts[i]+m.NSupport[i]; s++ {
				sum += m.DualCoef[j-1][s] * k[s]
			}
			for s := m.starts[j]; s < m.starts[j]+m.NSupport[j]; s++ {
				sum += m.DualCoef[i][s] * k[s]
			}

			if sum > 0 {
				votes[i]++
			} else {
				votes[j]++
			}
			p++
		}
	}

	return m.Classes[floats.MaxIdx(votes)]
}

func (m *SVC) kernel(a, b []float64) float64 {
	switch m.Kernel {
	case KernelRBF:
		d := floats.Distance(a, b, 2)
		return math.Exp(-m.Gamma * d * d)
	case KernelPoly:
		return math.Pow(m.Gamma*floats.Dot(a, b)+m.Coef0, m.Degree)
	case KernelSigmoid:
		return math.Tanh(m.Gamma*floats.Dot(a, b) + m.Coef0)
	default:
		return floats.Dot(a, b)
	}
}

func (m *SVC) validate() error {
	if err := validateClasses(m.Classes); err != nil {
		return err
	}

	if m.Kernel == "" {
		m.Kernel = KernelRBF
	}
	switch m.Kernel {
	case KernelLinear:
	case KernelRBF, KernelSigmoid:
		if m.Gamma <= 0 {
			return fmt.Errorf("%s kernel requires gamma > 0", m.Kernel)
		}
	case KernelPoly:
		if m.Gamma <= 0 {
			return fmt.Errorf("poly kernel requires gamma > 0")
		}
		if m.Degree == 0 {
			m.Degree = 3
		}
	default:
		return fmt.Errorf("unsupported kernel %q", m.Kernel)
	}

	n := len(m.Classes)
	if len(m.NSupport) != n {
		return fmt.Errorf("n_support has %d entries, want %d", len(m.NSupport), n)
	}

	m.starts = make([]int, n)
	total := 0
	for i, c := range m.NSupport {
		if c < 0 {
			return fmt.Errorf("n_support[%d] is negative", i)
		}
		m.starts[i] = total
		total += c
	}

	if total == 0 || len(m.SupportVectors) != total {
		return fmt.Errorf("have %d support vectors, n_support sums to %d", len(m.SupportVectors), total)
	}
	if err := validateMatrix("support_vectors", m.SupportVectors, m.Features()); err != nil {
		return err
	}
	if len(m.DualCoef) != n-1 {
		return fmt.Errorf("dual_coef has %d rows, want %d", len(m.DualCoef), n-1)
	}
	if err := validateMatrix("dual_coef", m.DualCoef, total); err != nil {
		return err
	}
	if pairs := n * (n - 1) / 2; len(m.Intercept) != pairs {
		return fmt.Errorf("intercept has %d entries, want %d", len(m.Intercept), pairs)
	}
	return nil
}
