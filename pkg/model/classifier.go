package model

// Task identifies a prediction task the service serves
type Task string

const (
	TaskDosha  Task = "dosha"
	TaskCancer Task = "cancer"
)

// Algorithm identifies a trained model backend
type Algorithm string

const (
	AlgoRandomForest Algorithm = "rf"
	AlgoSVM          Algorithm = "svm"
	AlgoLogistic     Algorithm = "lr"
)

// Priority is the fixed order in which backends are tried for a task.
// Absent entries are skipped; an empty sweep is degraded mode, not an error.
var Priority = []Algorithm{AlgoRandomForest, AlgoSVM, AlgoLogistic}

// Capability declares what a loaded artifact can do. Flags are fixed at
// load time so callers never probe the concrete type at request time.
type Capability struct {
	Probabilistic bool
	Explainable   bool
}

// Classifier is the one call shape every trained backend answers to.
// Predict returns the winning class label. Probabilities and Importances
// are best-effort: the bool reports whether the backend can produce them
// for this input, and a false never fails the surrounding request.
type Classifier interface {
	Predict(x []float64) (string, error)
	Probabilities(x []float64) (map[string]float64, bool)
	Importances() ([]float64, bool)
	Capabilities() Capability
}
