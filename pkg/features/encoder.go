package features

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EncodedPayload is the dual form of a questionnaire submission: the
// numeric vector fed to the models and the human-readable values echoed
// back to the client and written to the audit trail. The two always
// describe the same encoding decision.
type EncodedPayload struct {
	Normalized map[string]string
	Vector     []float64
}

// Encode turns a raw answer payload into an EncodedPayload. The input
// is untyped client data: fields may be missing, values may be numbers,
// strings, or garbage. Encoding is total and deterministic — unknown
// categorical values fall back to class index 0, absent numerics to 0.
func Encode(raw map[string]any) EncodedPayload {
	vector := make([]float64, len(catalog))
	normalized := make(map[string]string, len(catalog))

	for i, spec := range catalog {
		value, present := raw[spec.Field]

		switch spec.Encoder {
		case Categorical:
			idx := 0
			if present {
				idx = classIndex(spec, value)
			}
			vector[i] = float64(idx)
			normalized[spec.Field] = spec.Examples[idx]
		default: // Numeric
			f := 0.0
			if present {
				f = toFloat(value)
			}
			vector[i] = f
			normalized[spec.Field] = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	return EncodedPayload{Normalized: normalized, Vector: vector}
}

// classIndex maps a raw answer to its trained class index. Matching is
// case-insensitive on the full class text; anything unseen at training
// time maps to index 0, the most frequent class.
func classIndex(spec FeatureSpec, value any) int {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		text = strconv.Itoa(v)
	case bool:
		if v {
			text = "yes"
		} else {
			text = "no"
		}
	case json.Number:
		text = v.String()
	default:
		return 0
	}

	text = strings.ToLower(strings.TrimSpace(text))
	for i, class := range spec.Examples {
		if strings.ToLower(class) == text {
			return i
		}
	}
	return 0
}

// toFloat coerces a raw numeric answer, defaulting to 0 on anything
// that does not parse
func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}
