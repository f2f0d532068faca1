package assess

// RiskThresholds buckets a positive-class probability into risk levels.
// These are policy, not science: they come from configuration.
type RiskThresholds struct {
	LowBelow      float64
	HighAtOrAbove float64
}

// Bucket maps a probability to its risk level. It is pure and
// monotonic: a higher probability never yields a lower bucket.
func (t RiskThresholds) Bucket(probability float64) string {
	switch {
	case probability < t.LowBelow:
		return RiskLow
	case probability >= t.HighAtOrAbove:
		return RiskHigh
	default:
		return RiskModerate
	}
}

// defaultProbability is used when the model cannot estimate one, and as
// the "no basis for an estimate" percentage in degraded mode
const defaultProbability = 0.5

var riskLabels = map[string]string{
	RiskLow:      "Low Risk",
	RiskModerate: "Moderate Risk",
	RiskHigh:     "High Risk",
	RiskUnknown:  "Risk Unknown",
}

var riskComments = map[string]string{
	RiskLow:      "Your responses do not indicate elevated cancer risk factors.",
	RiskModerate: "Some of your responses indicate risk factors worth discussing with a doctor.",
	RiskHigh:     "Several of your responses indicate elevated risk factors. Please consult a doctor.",
	RiskUnknown:  "No risk model is currently available, so no estimate could be made.",
}

var riskRecommendations = map[string]string{
	RiskLow:      "Keep up your healthy habits and attend routine screenings appropriate for your age.",
	RiskModerate: "Consider lifestyle changes around smoking, alcohol, and activity, and schedule a screening.",
	RiskHigh:     "Book a consultation promptly and bring this assessment with you. Early screening matters.",
	RiskUnknown:  "Please retry later or consult a healthcare professional directly.",
}

var riskColors = map[string]Colors{
	RiskLow:      {Color: "#66bb6a", Gradient: [2]string{"#81c784", "#388e3c"}},
	RiskModerate: {Color: "#ffa726", Gradient: [2]string{"#ffb74d", "#f57c00"}},
	RiskHigh:     {Color: "#ef5350", Gradient: [2]string{"#e57373", "#c62828"}},
	RiskUnknown:  {Color: "#90a4ae", Gradient: [2]string{"#b0bec5", "#607d8b"}},
}

// buildCancerResult converts a prediction plus optional distribution
// into the client contract. A nil distribution uses the 0.5 default;
// the caller passes prediction="" only in degraded mode, which yields
// the unknown sentinel rather than a false moderate reading.
func buildCancerResult(prediction string, proba map[string]float64, thresholds RiskThresholds) CancerResult {
	if prediction == "" {
		return CancerResult{
			RiskLevel:           RiskUnknown,
			Label:               riskLabels[RiskUnknown],
			Probability:         defaultProbability,
			Percentage:          50.0,
			Colors:              riskColors[RiskUnknown],
			CancerStatusComment: riskComments[RiskUnknown],
			Recommendations:     riskRecommendations[RiskUnknown],
			TopFeatures:         []TopFeature{},
		}
	}

	probability := positiveProbability(prediction, proba)
	level := thresholds.Bucket(probability)

	return CancerResult{
		RiskLevel:           level,
		Label:               riskLabels[level],
		Probability:         probability,
		Percentage:          round2(probability * 100),
		Colors:              riskColors[level],
		CancerStatusComment: riskComments[level],
		Recommendations:     riskRecommendations[level],
		TopFeatures:         []TopFeature{},
	}
}

// positiveProbability extracts the probability of the positive class.
// The deployed binary classifiers label their classes negative/positive;
// when a distribution uses other names, the predicted class's own
// probability stands in, inverted for a negative prediction.
func positiveProbability(prediction string, proba map[string]float64) float64 {
	if proba == nil {
		return defaultProbability
	}
	if p, ok := proba["positive"]; ok {
		return p
	}
	if p, ok := proba[prediction]; ok {
		if prediction == "negative" {
			return 1 - p
		}
		return p
	}
	return defaultProbability
}
