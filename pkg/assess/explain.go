package assess

import (
	"sort"

	"github.com/prakriti-health/prakriti-api/pkg/features"
	"github.com/prakriti-health/prakriti-api/pkg/model"
)

// topFeatures ranks a model's importance weights and joins the top n
// with feature metadata and the user's own normalized answers. Any gap —
// nil model, a backend without importances, or a weight vector whose
// length disagrees with the feature catalog (stale artifact) — returns
// an empty list; an explanation must never block the prediction.
func topFeatures(clf model.Classifier, normalized map[string]string, n int) []TopFeature {
	if clf == nil || n <= 0 {
		return []TopFeature{}
	}

	weights, ok := clf.Importances()
	if !ok {
		return []TopFeature{}
	}

	names := features.FeatureNames()
	if len(weights) != len(names) {
		return []TopFeature{}
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return []TopFeature{}
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	// Descending weight; catalog order breaks ties so output is stable
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}

	out := make([]TopFeature, 0, n)
	for rank, idx := range order[:n] {
		spec := features.Metadata(names[idx])
		out = append(out, TopFeature{
			Rank:        rank + 1,
			Feature:     spec.Field,
			Question:    spec.Question,
			Description: spec.Description,
			Examples:    spec.Examples,
			Value:       normalized[spec.Field],
			Importance:  round2(weights[idx] / total * 100),
		})
	}
	return out
}
