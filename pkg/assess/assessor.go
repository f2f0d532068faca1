package assess

import (
	"fmt"
	"strconv"

	"github.com/prakriti-health/prakriti-api/pkg/features"
	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/model"
)

// Assessor runs the inference pipeline: encoded payload in, calibrated
// user-facing result out. It holds no per-request state and is safe for
// concurrent use.
type Assessor struct {
	registry   *model.Registry
	logger     *logging.Logger
	thresholds RiskThresholds
	topN       int
}

// NewAssessor creates an assessor over a model registry
func NewAssessor(registry *model.Registry, logger *logging.Logger, thresholds RiskThresholds, topN int) *Assessor {
	return &Assessor{
		registry:   registry,
		logger:     logger,
		thresholds: thresholds,
		topN:       topN,
	}
}

// Assessment is the combined response of one submission
type Assessment struct {
	Dosha  DoshaResult       `json:"dosha"`
	Cancer CancerResult      `json:"cancer"`
	Inputs map[string]string `json:"inputs"`
}

// Assess encodes a raw submission once and runs both tasks over it
func (a *Assessor) Assess(raw map[string]any) (Assessment, error) {
	payload := features.Encode(raw)

	dosha, err := a.AssessDosha(payload)
	if err != nil {
		return Assessment{}, err
	}
	cancer, err := a.AssessCancer(payload)
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{Dosha: dosha, Cancer: cancer, Inputs: payload.Normalized}, nil
}

// AssessDosha produces the constitution profile for an encoded payload.
// No deployed model is degraded mode, not an error; a model that cannot
// evaluate the vector at all is a real failure and propagates.
func (a *Assessor) AssessDosha(payload features.EncodedPayload) (DoshaResult, error) {
	clf, vector, err := a.prepare(model.TaskDosha, payload)
	if err != nil {
		return DoshaResult{}, err
	}

	if clf == nil {
		a.logger.Warn("no dosha model deployed, returning balanced fallback",
			logging.Component("assess"))
		result := buildDoshaResult(nil)
		result.TopFeatures = a.explain(model.TaskDosha, payload.Normalized)
		return result, nil
	}

	if _, err := clf.Predict(vector); err != nil {
		return DoshaResult{}, fmt.Errorf("dosha prediction failed: %w", err)
	}

	proba := a.probabilities(model.TaskDosha, clf, vector)
	result := buildDoshaResult(proba)
	result.TopFeatures = a.explain(model.TaskDosha, payload.Normalized)
	return result, nil
}

// AssessCancer produces the risk estimate for an encoded payload
func (a *Assessor) AssessCancer(payload features.EncodedPayload) (CancerResult, error) {
	clf, vector, err := a.prepare(model.TaskCancer, payload)
	if err != nil {
		return CancerResult{}, err
	}

	if clf == nil {
		a.logger.Warn("no cancer model deployed, returning unknown risk",
			logging.Component("assess"))
		result := buildCancerResult("", nil, a.thresholds)
		result.TopFeatures = a.explain(model.TaskCancer, payload.Normalized)
		return result, nil
	}

	prediction, err := clf.Predict(vector)
	if err != nil {
		return CancerResult{}, fmt.Errorf("cancer prediction failed: %w", err)
	}
	prediction = a.decodeLabel(model.TaskCancer, prediction)

	proba := a.probabilities(model.TaskCancer, clf, vector)
	result := buildCancerResult(prediction, proba, a.thresholds)
	result.TopFeatures = a.explain(model.TaskCancer, payload.Normalized)
	return result, nil
}

// prepare selects the highest-priority deployed model for a task and
// applies the task's scaler when one is registered. A nil classifier
// with a nil error means degraded mode.
func (a *Assessor) prepare(task model.Task, payload features.EncodedPayload) (model.Classifier, []float64, error) {
	vector := payload.Vector
	if scaler, ok := a.registry.ScalerFor(task); ok {
		scaled, err := scaler.Transform(vector)
		if err != nil {
			return nil, nil, fmt.Errorf("scaling %s features: %w", task, err)
		}
		vector = scaled
	}

	for _, algo := range model.Priority {
		if clf, ok := a.registry.Model(task, algo); ok {
			return clf, vector, nil
		}
	}
	return nil, vector, nil
}

// probabilities is the best-effort enhancement: backends that cannot
// estimate a distribution simply contribute none
func (a *Assessor) probabilities(task model.Task, clf model.Classifier, vector []float64) map[string]float64 {
	if !clf.Capabilities().Probabilistic {
		return nil
	}
	proba, ok := clf.Probabilities(vector)
	if !ok {
		return nil
	}
	return a.decodeDistribution(task, proba)
}

// explain always prefers the random-forest artifact: only tree
// ensembles expose usable importance weights, whichever backend made
// the prediction
func (a *Assessor) explain(task model.Task, normalized map[string]string) []TopFeature {
	rf, _ := a.registry.Model(task, model.AlgoRandomForest)
	return topFeatures(rf, normalized, a.topN)
}

// decodeLabel maps a model-internal class id onto its human label when
// a label encoder is deployed for the task
func (a *Assessor) decodeLabel(task model.Task, raw string) string {
	le, ok := a.registry.Labels(task)
	if !ok {
		return raw
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	if label, ok := le.Decode(id); ok {
		return label
	}
	return raw
}

func (a *Assessor) decodeDistribution(task model.Task, proba map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(proba))
	for class, p := range proba {
		out[a.decodeLabel(task, class)] = p
	}
	return out
}
