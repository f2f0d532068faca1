package model

import (
	"fmt"
	"math"
)

// linearScores computes per-class decision scores w·x + b
func linearScores(weights [][]float64, bias []float64, x []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("model has no weight rows")
	}
	scores := make([]float64, len(weights))
	for c, row := range weights {
		if len(row) != len(x) {
			return nil, fmt.Errorf("expected %d features, got %d", len(row), len(x))
		}
		s := 0.0
		for i, w := range row {
			s += w * x[i]
		}
		if c < len(bias) {
			s += bias[c]
		}
		scores[c] = s
	}
	return scores, nil
}

func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

// LinearSVM is a pre-fitted linear support vector classifier. It decides
// by margin only; calibrated probabilities were never exported with the
// artifact, so Probabilities always declines.
type LinearSVM struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
	Classes []string    `json:"classes"`
}

// Predict returns the class with the largest decision margin
func (m *LinearSVM) Predict(x []float64) (string, error) {
	scores, err := linearScores(m.Weights, m.Bias, x)
	if err != nil {
		return "", err
	}
	idx := argmax(scores)
	if idx >= len(m.Classes) {
		return "", fmt.Errorf("class index %d out of range", idx)
	}
	return m.Classes[idx], nil
}

// Probabilities declines: margins are not calibrated probabilities
func (m *LinearSVM) Probabilities(x []float64) (map[string]float64, bool) {
	return nil, false
}

// Importances declines: per-feature weights of a multi-class margin
// model are not comparable contribution scores
func (m *LinearSVM) Importances() ([]float64, bool) {
	return nil, false
}

// Capabilities reports what an SVM artifact supports
func (m *LinearSVM) Capabilities() Capability {
	return Capability{}
}

// Validate checks the artifact is internally consistent and usable
func (m *LinearSVM) Validate() error {
	return validateLinear(m.Weights, m.Classes)
}

// Logistic is a pre-fitted logistic regression artifact. Scores pass
// through softmax, so it is probabilistic but not explainable.
type Logistic struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
	Classes []string    `json:"classes"`
}

// Predict returns the class with the highest probability
func (m *Logistic) Predict(x []float64) (string, error) {
	scores, err := linearScores(m.Weights, m.Bias, x)
	if err != nil {
		return "", err
	}
	idx := argmax(scores)
	if idx >= len(m.Classes) {
		return "", fmt.Errorf("class index %d out of range", idx)
	}
	return m.Classes[idx], nil
}

// Probabilities returns the softmax distribution over classes
func (m *Logistic) Probabilities(x []float64) (map[string]float64, bool) {
	scores, err := linearScores(m.Weights, m.Bias, x)
	if err != nil {
		return nil, false
	}

	// Shift by the max score for numeric stability
	max := scores[argmax(scores)]
	sum := 0.0
	exp := make([]float64, len(scores))
	for i, s := range scores {
		exp[i] = math.Exp(s - max)
		sum += exp[i]
	}

	proba := make(map[string]float64, len(m.Classes))
	for i, class := range m.Classes {
		if i < len(exp) {
			proba[class] = exp[i] / sum
		}
	}
	return proba, true
}

// Importances declines: regression coefficients are not importance weights
func (m *Logistic) Importances() ([]float64, bool) {
	return nil, false
}

// Capabilities reports what a logistic artifact supports
func (m *Logistic) Capabilities() Capability {
	return Capability{Probabilistic: true}
}

// Validate checks the artifact is internally consistent and usable
func (m *Logistic) Validate() error {
	return validateLinear(m.Weights, m.Classes)
}

func validateLinear(weights [][]float64, classes []string) error {
	if len(weights) == 0 {
		return fmt.Errorf("model has no weight rows")
	}
	if len(weights) != len(classes) {
		return fmt.Errorf("weight rows %d do not match classes %d", len(weights), len(classes))
	}
	width := len(weights[0])
	if width == 0 {
		return fmt.Errorf("model has no features")
	}
	for i, row := range weights {
		if len(row) != width {
			return fmt.Errorf("weight row %d has %d features, expected %d", i, len(row), width)
		}
	}
	return nil
}
