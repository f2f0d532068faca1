package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stumpForest builds a forest whose trees split on feature 0 at 0.5:
// left votes leftClass, right votes rightClass.
func stumpForest(numFeatures int, leftClass, rightClass string, classes []string, featureNames []string) *Forest {
	tree := &Tree{Root: &TreeNode{
		FeatureIndex: 0,
		Threshold:    0.5,
		SamplesCount: 10,
		Left:         &TreeNode{IsLeaf: true, Class: leftClass, ClassCounts: map[string]int{leftClass: 8, rightClass: 2}, SamplesCount: 10},
		Right:        &TreeNode{IsLeaf: true, Class: rightClass, ClassCounts: map[string]int{rightClass: 9, leftClass: 1}, SamplesCount: 10},
	}}
	return &Forest{
		Trees:        []*Tree{tree},
		FeatureNames: featureNames,
		Classes:      classes,
		NumFeatures:  numFeatures,
	}
}

// votingForest builds a forest of constant trees voting the given
// classes regardless of input.
func votingForest(numFeatures int, votes []string, classes []string, featureNames []string) *Forest {
	trees := make([]*Tree, len(votes))
	for i, class := range votes {
		trees[i] = &Tree{Root: &TreeNode{IsLeaf: true, Class: class, ClassCounts: map[string]int{class: 5}, SamplesCount: 5}}
	}
	return &Forest{
		Trees:        trees,
		FeatureNames: featureNames,
		Classes:      classes,
		NumFeatures:  numFeatures,
	}
}

func TestForestPredict(t *testing.T) {
	f := stumpForest(3, "vata", "pitta", []string{"vata", "pitta"}, []string{"a", "b", "c"})

	label, err := f.Predict([]float64{0.0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, "vata", label)

	label, err = f.Predict([]float64{1.0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, "pitta", label)
}

func TestForestPredictShapeMismatch(t *testing.T) {
	f := stumpForest(3, "vata", "pitta", []string{"vata", "pitta"}, []string{"a", "b", "c"})

	_, err := f.Predict([]float64{1.0})
	assert.Error(t, err)
}

func TestForestProbabilitiesAreVoteShares(t *testing.T) {
	votes := []string{"vata", "pitta", "pitta", "pitta", "kapha"}
	f := votingForest(2, votes, []string{"vata", "pitta", "kapha"}, []string{"a", "b"})

	proba, ok := f.Probabilities([]float64{0, 0})
	require.True(t, ok)
	assert.InDelta(t, 0.2, proba["vata"], 1e-9)
	assert.InDelta(t, 0.6, proba["pitta"], 1e-9)
	assert.InDelta(t, 0.2, proba["kapha"], 1e-9)

	label, err := f.Predict([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, "pitta", label)
}

func TestForestImportancesNormalized(t *testing.T) {
	tree := &Tree{Root: &TreeNode{
		FeatureIndex: 1,
		Threshold:    2,
		SamplesCount: 30,
		Left: &TreeNode{
			FeatureIndex: 0,
			Threshold:    1,
			SamplesCount: 10,
			Left:         &TreeNode{IsLeaf: true, Class: "a", SamplesCount: 5},
			Right:        &TreeNode{IsLeaf: true, Class: "b", SamplesCount: 5},
		},
		Right: &TreeNode{IsLeaf: true, Class: "b", SamplesCount: 20},
	}}
	f := &Forest{Trees: []*Tree{tree}, Classes: []string{"a", "b"}, FeatureNames: []string{"x", "y"}, NumFeatures: 2}

	imp, ok := f.Importances()
	require.True(t, ok)
	require.Len(t, imp, 2)
	assert.InDelta(t, 0.25, imp[0], 1e-9) // 10 of 40 split samples
	assert.InDelta(t, 0.75, imp[1], 1e-9) // 30 of 40 split samples

	sum := imp[0] + imp[1]
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForestCapabilities(t *testing.T) {
	f := &Forest{}
	assert.True(t, f.Capabilities().Probabilistic)
	assert.True(t, f.Capabilities().Explainable)
}

func TestForestValidate(t *testing.T) {
	f := stumpForest(3, "a", "b", []string{"a", "b"}, []string{"x", "y", "z"})
	assert.NoError(t, f.Validate())

	assert.Error(t, (&Forest{}).Validate())

	bad := stumpForest(3, "a", "b", []string{"a", "b"}, []string{"x"})
	assert.Error(t, bad.Validate())
}
