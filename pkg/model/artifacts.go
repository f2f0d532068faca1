package model

import "fmt"

// LabelEncoder maps between model-internal class ids and human labels
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Decode returns the label for a class id
func (le *LabelEncoder) Decode(id int) (string, bool) {
	if id < 0 || id >= len(le.Classes) {
		return "", false
	}
	return le.Classes[id], true
}

// Encode returns the class id for a label
func (le *LabelEncoder) Encode(label string) (int, bool) {
	for i, class := range le.Classes {
		if class == label {
			return i, true
		}
	}
	return 0, false
}

// Scaler standardizes a feature vector with per-column mean and
// standard deviation captured at training time
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform returns the standardized copy of x. Columns with zero
// variance pass through centred only.
func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) || len(x) != len(s.Std) {
		return nil, fmt.Errorf("scaler fitted on %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - s.Mean[i]
		if s.Std[i] != 0 {
			out[i] /= s.Std[i]
		}
	}
	return out, nil
}
