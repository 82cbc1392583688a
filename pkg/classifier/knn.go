package classifier

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Neighbour weightings accepted by KNN.
const (
	WeightsUniform  = "uniform"
	WeightsDistance = "distance"
)

// KNN is a fitted k-nearest-neighbours classifier over Minkowski distance.
// FitY holds indices into Classes for each row of FitX.
type KNN struct {
	Classes    []string    `json:"classes"`
	FitX       [][]float64 `json:"fit_x"`
	FitY       []int       `json:"fit_y"`
	NNeighbors int         `json:"n_neighbors"`
	Weights    string      `json:"weights"`
	P          float64     `json:"p"`
}

type neighbour struct {
	dist  float64
	class int
}

func (m *KNN) Features() int {
	if len(m.FitX) == 0 {
		return 0
	}
	return len(m.FitX[0])
}

func (m *KNN) Predict(X [][]float64) ([]string, error) {
	return predictRows(X, m.Features(), m.predict)
}

// predict ranks training rows by distance, keeping training order among
// equal distances, and sums the class weights of the nearest k. When
// weighting by distance and some neighbours sit at distance zero, only
// those neighbours vote. Ties go to the lowest class index.
func (m *KNN) predict(x []float64) string {
	ns := make([]neighbour, len(m.FitX))
	for i, row := range m.FitX {
		ns[i] = neighbour{dist: floats.Distance(row, x, m.P), class: m.FitY[i]}
	}
	slices.SortStableFunc(ns, func(a, b neighbour) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return 0
	})
	ns = ns[:min(m.NNeighbors, len(ns))]

	votes := make([]float64, len(m.Classes))
	exact := m.Weights == WeightsDistance && ns[0].dist == 0

	for _, n := range ns {
		switch {
		case exact:
			if n.dist == 0 {
				votes[n.class]++
			}
		case m.Weights == WeightsDistance:
			votes[n.class] += 1 / n.dist
		default:
			votes[n.class]++
		}
	}

	return m.Classes[floats.MaxIdx(votes)]
}

func (m *KNN) validate() error {
	if err := validateClasses(m.Classes); err != nil {
		return err
	}
	if m.Weights == "" {
		m.Weights = WeightsUniform
	}
	if m.Weights != WeightsUniform && m.Weights != WeightsDistance {
		return fmt.Errorf("unsupported weights %q", m.Weights)
	}
	if m.P == 0 {
		m.P = 2
	}
	if m.P < 1 {
		return fmt.Errorf("p must be >= 1")
	}
	if m.NNeighbors < 1 {
		return fmt.Errorf("n_neighbors must be positive")
	}
	if len(m.FitX) == 0 || m.Features() == 0 {
		return fmt.Errorf("no training rows")
	}
	if len(m.FitY) != len(m.FitX) {
		return fmt.Errorf("fit_y has %d labels for %d rows", len(m.FitY), len(m.FitX))
	}
	for i, y := range m.FitY {
		if y < 0 || y >= len(m.Classes) {
			return fmt.Errorf("fit_y[%d] = %d is not a class index", i, y)
		}
	}
	return validateMatrix("fit_x", m.FitX, m.Features())
}
