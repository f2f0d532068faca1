package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/prakriti-health/prakriti-api/pkg/assess"
	"github.com/prakriti-health/prakriti-api/pkg/features"
	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	answers, ok := decodeAnswers(w, r)
	if !ok {
		return
	}

	result, err := s.assessor.Assess(answers)
	if err != nil {
		s.logger.Error("assessment failed", err, logging.Component("assess"))
		writeErrorResponse(w, http.StatusServiceUnavailable, "Assessment temporarily unavailable")
		return
	}

	s.persistDosha(userID, result.Dosha, result.Inputs)
	s.persistCancer(userID, result.Cancer)
	s.recordActivity(userID, "assessment_completed")

	writeJSONResponse(w, http.StatusOK, result)
}

func (s *Server) handleDosha(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	answers, ok := decodeAnswers(w, r)
	if !ok {
		return
	}

	payload := features.Encode(answers)
	result, err := s.assessor.AssessDosha(payload)
	if err != nil {
		s.logger.Error("dosha assessment failed", err, logging.Component("assess"))
		writeErrorResponse(w, http.StatusServiceUnavailable, "Assessment temporarily unavailable")
		return
	}

	s.persistDosha(userID, result, payload.Normalized)
	s.recordActivity(userID, "dosha_assessed")

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"dosha":  result,
		"inputs": payload.Normalized,
	})
}

func (s *Server) handleCancerRisk(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	answers, ok := decodeAnswers(w, r)
	if !ok {
		return
	}

	payload := features.Encode(answers)
	result, err := s.assessor.AssessCancer(payload)
	if err != nil {
		s.logger.Error("cancer risk assessment failed", err, logging.Component("assess"))
		writeErrorResponse(w, http.StatusServiceUnavailable, "Assessment temporarily unavailable")
		return
	}

	s.persistCancer(userID, result)
	s.recordActivity(userID, "cancer_risk_assessed")

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"cancer": result,
		"inputs": payload.Normalized,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := parseLimit(r, 20)

	doshas, err := s.store.ListDoshaEvaluations(userID, limit)
	if err != nil {
		s.logger.Error("failed to list dosha history", err, logging.Component("history"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	risks, err := s.store.ListCancerRiskResults(userID, limit)
	if err != nil {
		s.logger.Error("failed to list risk history", err, logging.Component("history"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"dosha_evaluations":   doshas,
		"cancer_risk_results": risks,
	})
}

// decodeAnswers parses the questionnaire body shared by all assessment
// endpoints. Accepts either a bare answer map or {"answers": {...}}.
func decodeAnswers(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body struct {
		Answers map[string]any `json:"answers"`
	}
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return nil, false
	}
	if nested, ok := raw["answers"].(map[string]any); ok {
		body.Answers = nested
	} else {
		body.Answers = raw
	}
	if len(body.Answers) == 0 {
		writeBadRequestResponse(w, "Answers are required")
		return nil, false
	}
	return body.Answers, true
}

func (s *Server) persistDosha(userID string, result assess.DoshaResult, inputs map[string]string) {
	eval := &store.DoshaEvaluation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Vata:      result.Vata,
		Pitta:     result.Pitta,
		Kapha:     result.Kapha,
		Dominant:  result.Dominant,
		Inputs:    inputs,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertDoshaEvaluation(eval); err != nil {
		s.logger.Error("failed to persist dosha evaluation", err, logging.Component("assess"))
	}
}

func (s *Server) persistCancer(userID string, result assess.CancerResult) {
	row := &store.CancerRiskResult{
		ID:          uuid.New().String(),
		UserID:      userID,
		Risk:        result.RiskLevel,
		Probability: result.Probability,
		Percentage:  result.Percentage,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertCancerRiskResult(row); err != nil {
		s.logger.Error("failed to persist cancer risk result", err, logging.Component("assess"))
	}
}
