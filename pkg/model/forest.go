package model

import (
	"fmt"
)

// TreeNode is one node of a serialized decision tree. Leaves carry the
// class distribution observed at training time.
type TreeNode struct {
	IsLeaf       bool           `json:"is_leaf"`
	Class        string         `json:"class,omitempty"`
	ClassCounts  map[string]int `json:"class_counts,omitempty"`
	FeatureIndex int            `json:"feature_index,omitempty"`
	Threshold    float64        `json:"threshold,omitempty"`
	Left         *TreeNode      `json:"left,omitempty"`
	Right        *TreeNode      `json:"right,omitempty"`
	SamplesCount int            `json:"samples_count"`
}

// Tree is a single serialized decision tree over the canonical feature
// vector. Trees are fitted offline; this type only evaluates them.
type Tree struct {
	Root *TreeNode `json:"root"`
}

// predict walks the tree to the winning class for x
func (t *Tree) predict(x []float64) (string, bool) {
	leaf := t.leaf(x)
	if leaf == nil {
		return "", false
	}
	return leaf.Class, true
}

func (t *Tree) leaf(x []float64) *TreeNode {
	node := t.Root
	for node != nil && !node.IsLeaf {
		if x[node.FeatureIndex] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

// accumulateImportance adds this tree's split weights into the shared
// importance vector. A split's weight is the sample count that reached
// it, the same impurity-share approximation the training side used.
func (t *Tree) accumulateImportance(importance []float64) {
	var walk func(node *TreeNode)
	walk = func(node *TreeNode) {
		if node == nil || node.IsLeaf {
			return
		}
		if node.FeatureIndex >= 0 && node.FeatureIndex < len(importance) {
			importance[node.FeatureIndex] += float64(node.SamplesCount)
		}
		walk(node.Left)
		walk(node.Right)
	}
	walk(t.Root)
}

// Forest is a pre-fitted random forest artifact. Prediction is majority
// vote across trees; probabilities are the vote shares.
type Forest struct {
	Trees        []*Tree  `json:"trees"`
	FeatureNames []string `json:"feature_names"`
	Classes      []string `json:"classes"`
	NumFeatures  int      `json:"num_features"`
}

// Predict returns the majority-vote class for a single sample
func (f *Forest) Predict(x []float64) (string, error) {
	votes, err := f.vote(x)
	if err != nil {
		return "", err
	}

	best := ""
	bestVotes := 0
	for _, class := range f.Classes {
		if votes[class] > bestVotes {
			best = class
			bestVotes = votes[class]
		}
	}
	if best == "" {
		return "", fmt.Errorf("no valid predictions from trees")
	}
	return best, nil
}

// Probabilities returns per-class vote shares for a single sample
func (f *Forest) Probabilities(x []float64) (map[string]float64, bool) {
	votes, err := f.vote(x)
	if err != nil {
		return nil, false
	}

	total := 0
	for _, count := range votes {
		total += count
	}
	if total == 0 {
		return nil, false
	}

	proba := make(map[string]float64, len(f.Classes))
	for _, class := range f.Classes {
		proba[class] = float64(votes[class]) / float64(total)
	}
	return proba, true
}

func (f *Forest) vote(x []float64) (map[string]int, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	if len(x) != f.NumFeatures {
		return nil, fmt.Errorf("expected %d features, got %d", f.NumFeatures, len(x))
	}

	votes := make(map[string]int)
	for _, tree := range f.Trees {
		if tree == nil {
			continue
		}
		if class, ok := tree.predict(x); ok {
			votes[class]++
		}
	}
	return votes, nil
}

// Importances returns the normalized per-feature importance vector,
// aligned with FeatureNames order
func (f *Forest) Importances() ([]float64, bool) {
	if len(f.Trees) == 0 || f.NumFeatures == 0 {
		return nil, false
	}

	importance := make([]float64, f.NumFeatures)
	for _, tree := range f.Trees {
		if tree != nil {
			tree.accumulateImportance(importance)
		}
	}

	total := 0.0
	for _, v := range importance {
		total += v
	}
	if total == 0 {
		return nil, false
	}
	for i := range importance {
		importance[i] /= total
	}
	return importance, true
}

// Capabilities reports what a forest artifact supports
func (f *Forest) Capabilities() Capability {
	return Capability{Probabilistic: true, Explainable: true}
}

// Validate checks the artifact is internally consistent and usable
func (f *Forest) Validate() error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	if f.NumFeatures <= 0 {
		return fmt.Errorf("forest has no features")
	}
	if len(f.FeatureNames) != f.NumFeatures {
		return fmt.Errorf("feature name count %d does not match num_features %d", len(f.FeatureNames), f.NumFeatures)
	}
	if len(f.Classes) == 0 {
		return fmt.Errorf("forest has no classes")
	}
	valid := 0
	for _, tree := range f.Trees {
		if tree != nil && tree.Root != nil {
			valid++
		}
	}
	if valid == 0 {
		return fmt.Errorf("no valid trees in forest")
	}
	return nil
}
