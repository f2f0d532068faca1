package assess

import "math"

// doshaAdvice is the canned guidance per dominant constitution
var doshaAdvice = map[string]string{
	"vata":     "Favour warm, grounding routines: regular meals, oil massage, early nights, and gentle steady exercise.",
	"pitta":    "Keep cool and avoid overexertion: favour cooling foods, moderate intensity, and time to unwind after work.",
	"kapha":    "Seek stimulation and lightness: vigorous exercise, lighter warm meals, and variety in your daily routine.",
	"balanced": "Your constitution is well balanced. Maintain your current routine of diet, rest, and exercise.",
}

// doshaColors is the display palette per dominant constitution
var doshaColors = map[string]Colors{
	"vata":     {Color: "#7e57c2", Gradient: [2]string{"#9575cd", "#5e35b1"}},
	"pitta":    {Color: "#ef5350", Gradient: [2]string{"#ff8a65", "#d32f2f"}},
	"kapha":    {Color: "#66bb6a", Gradient: [2]string{"#81c784", "#388e3c"}},
	"balanced": {Color: "#26a69a", Gradient: [2]string{"#4db6ac", "#00796b"}},
}

// balancedShare is the neutral per-dosha percentage used when no
// probability distribution is available
const balancedShare = 33.33

// buildDoshaResult converts a raw prediction and optional class
// distribution into the client contract. The distribution may include a
// "balanced" class and rarely sums to exactly 1; only the three dosha
// components are kept and rescaled so the output sums to exactly 100.
func buildDoshaResult(proba map[string]float64) DoshaResult {
	vata, pitta, kapha, ok := rescaleDoshas(proba)

	dominant := "Balanced"
	if ok {
		dominant = "vata"
		if pitta > vata {
			dominant = "pitta"
		}
		if kapha > vata && kapha > pitta {
			dominant = "kapha"
		}
	}

	key := dominant
	if dominant == "Balanced" {
		key = "balanced"
	}

	return DoshaResult{
		Vata:        vata,
		Pitta:       pitta,
		Kapha:       kapha,
		Dominant:    dominant,
		Advice:      doshaAdvice[key],
		Colors:      doshaColors[key],
		TopFeatures: []TopFeature{},
	}
}

// rescaleDoshas maps a raw distribution onto three percentages summing
// to exactly 100. Reports false when there is no usable distribution,
// in which case the equal fallback split is returned.
func rescaleDoshas(proba map[string]float64) (vata, pitta, kapha float64, ok bool) {
	if proba != nil {
		v, p, k := proba["vata"], proba["pitta"], proba["kapha"]
		sum := v + p + k
		if sum > 0 {
			vata = round2(v / sum * 100)
			pitta = round2(p / sum * 100)
			kapha = round2(k / sum * 100)

			// Fold the rounding residual into the largest component so
			// the three always sum to exactly 100.00
			residual := round2(100 - vata - pitta - kapha)
			switch {
			case vata >= pitta && vata >= kapha:
				vata = round2(vata + residual)
			case pitta >= kapha:
				pitta = round2(pitta + residual)
			default:
				kapha = round2(kapha + residual)
			}
			return vata, pitta, kapha, true
		}
	}
	return balancedShare, balancedShare, balancedShare, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
