package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testThresholds = RiskThresholds{LowBelow: 0.33, HighAtOrAbove: 0.66}

func TestBucketBoundaries(t *testing.T) {
	assert.Equal(t, RiskLow, testThresholds.Bucket(0.0))
	assert.Equal(t, RiskLow, testThresholds.Bucket(0.3299))
	assert.Equal(t, RiskModerate, testThresholds.Bucket(0.33))
	assert.Equal(t, RiskModerate, testThresholds.Bucket(0.5))
	assert.Equal(t, RiskModerate, testThresholds.Bucket(0.6599))
	assert.Equal(t, RiskHigh, testThresholds.Bucket(0.66))
	assert.Equal(t, RiskHigh, testThresholds.Bucket(1.0))
}

func TestBucketIsDeterministicAndMonotonic(t *testing.T) {
	rank := map[string]int{RiskLow: 0, RiskModerate: 1, RiskHigh: 2}

	prev := -1
	for p := 0.0; p <= 1.0; p += 0.01 {
		first := testThresholds.Bucket(p)
		second := testThresholds.Bucket(p)
		assert.Equal(t, first, second)

		r := rank[first]
		assert.GreaterOrEqual(t, r, prev, "bucket must not decrease as probability rises")
		prev = r
	}
}

func TestBuildCancerResultDegraded(t *testing.T) {
	res := buildCancerResult("", nil, testThresholds)

	assert.Equal(t, RiskUnknown, res.RiskLevel)
	assert.Equal(t, 50.0, res.Percentage)
	assert.Equal(t, 0.5, res.Probability)
	assert.Equal(t, "Risk Unknown", res.Label)
	assert.NotEmpty(t, res.CancerStatusComment)
	assert.NotEmpty(t, res.Recommendations)
	assert.Empty(t, res.TopFeatures)
}

func TestBuildCancerResultWithDistribution(t *testing.T) {
	res := buildCancerResult("positive", map[string]float64{
		"negative": 0.2, "positive": 0.8,
	}, testThresholds)

	assert.Equal(t, RiskHigh, res.RiskLevel)
	assert.Equal(t, 0.8, res.Probability)
	assert.Equal(t, 80.0, res.Percentage)
	assert.Equal(t, "High Risk", res.Label)
}

func TestBuildCancerResultWithoutDistribution(t *testing.T) {
	// Prediction-only backends fall back to the 0.5 default, landing in
	// the moderate band — distinct from the unknown sentinel
	res := buildCancerResult("positive", nil, testThresholds)

	assert.Equal(t, RiskModerate, res.RiskLevel)
	assert.Equal(t, 0.5, res.Probability)
	assert.Equal(t, 50.0, res.Percentage)
}

func TestPositiveProbabilityFallbacks(t *testing.T) {
	// Unconventional class names: the predicted class's own probability
	// stands in, inverted for a negative prediction
	p := positiveProbability("malignant", map[string]float64{"malignant": 0.7, "benign": 0.3})
	assert.Equal(t, 0.7, p)

	p = positiveProbability("negative", map[string]float64{"negative": 0.9})
	assert.InDelta(t, 0.1, p, 1e-9)
}
