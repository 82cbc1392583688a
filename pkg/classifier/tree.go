package classifier

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Node is one entry of a flattened decision tree. A node whose Left is -1
// is a leaf; Value holds its per-class weights. Internal nodes send x to
// Left when x[Feature] <= Threshold and to Right otherwise.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// IsLeaf reports whether n terminates traversal.
func (n Node) IsLeaf() bool {
	return n.Left == -1
}

// DecisionTree is a fitted classification tree rooted at Nodes[0].
type DecisionTree struct {
	Classes   []string `json:"classes"`
	NFeatures int      `json:"n_features"`
	Nodes     []Node   `json:"nodes"`
}

func (m *DecisionTree) Features() int {
	return m.NFeatures
}

func (m *DecisionTree) Predict(X [][]float64) ([]string, error) {
	return predictRows(X, m.NFeatures, m.predict)
}

// predict relies on validate having rejected out-of-range children and
// cycles, so the walk always reaches a leaf.
func (m *DecisionTree) predict(x []float64) string {
	node := m.Nodes[0]
	for !node.IsLeaf() {
		if x[node.Feature] <= node.Threshold {
			node = m.Nodes[node.Left]
		} else {
			node = m.Nodes[node.Right]
		}
	}
	return m.Classes[floats.MaxIdx(node.Value)]
}

func (m *DecisionTree) validate() error {
	if err := validateClasses(m.Classes); err != nil {
		return err
	}
	if m.NFeatures <= 0 {
		return fmt.Errorf("n_features must be positive")
	}
	if len(m.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}

	for i, n := range m.Nodes {
		if n.IsLeaf() {
			if len(n.Value) != len(m.Classes) {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(n.Value), len(m.Classes))
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= m.NFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, n.Feature, m.NFeatures)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(m.Nodes) {
				return fmt.Errorf("node %d has child %d outside (%d, %d)", i, child, i, len(m.Nodes))
			}
		}
	}

	return nil
}
