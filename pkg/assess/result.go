package assess

// Colors is the display palette attached to a result
type Colors struct {
	Color    string    `json:"color"`
	Gradient [2]string `json:"gradient"`
}

// TopFeature is one contributing questionnaire field, ranked by the
// explaining model's importance weight
type TopFeature struct {
	Rank        int      `json:"rank"`
	Feature     string   `json:"feature"`
	Question    string   `json:"question"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Value       string   `json:"value"`
	Importance  float64  `json:"importance"`
}

// DoshaResult is the body-constitution profile returned to clients.
// The three percentages always sum to 100.
type DoshaResult struct {
	Vata        float64      `json:"vata"`
	Pitta       float64      `json:"pitta"`
	Kapha       float64      `json:"kapha"`
	Dominant    string       `json:"dominant"`
	Advice      string       `json:"advice"`
	Colors      Colors       `json:"colors"`
	TopFeatures []TopFeature `json:"top_features"`
}

// Risk levels for the cancer result. RiskUnknown marks degraded mode:
// no deployed model, therefore no basis for an estimate.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskUnknown  = "unknown"
)

// CancerResult is the risk estimate returned to clients
type CancerResult struct {
	RiskLevel           string       `json:"risk_level"`
	Label               string       `json:"label"`
	Probability         float64      `json:"probability"`
	Percentage          float64      `json:"percentage"`
	Colors              Colors       `json:"colors"`
	CancerStatusComment string       `json:"cancer_status_comment"`
	Recommendations     string       `json:"recommendations"`
	TopFeatures         []TopFeature `json:"top_features"`
}
