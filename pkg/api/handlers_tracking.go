package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := parseLimit(r, 50)

	entries, err := s.store.ListActivity(userID, limit)
	if err != nil {
		s.logger.Error("failed to list activity", err, logging.Component("activity"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load activity")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"activity": entries})
}

type yogaSessionRequest struct {
	Practice        string     `json:"practice"`
	DurationMinutes int        `json:"duration_minutes"`
	PerformedAt     *time.Time `json:"performed_at"`
}

func (s *Server) handleAddYogaSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req yogaSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return
	}
	if req.Practice == "" || req.DurationMinutes <= 0 {
		writeBadRequestResponse(w, "Practice and a positive duration are required")
		return
	}

	now := time.Now().UTC()
	performedAt := now
	if req.PerformedAt != nil {
		performedAt = req.PerformedAt.UTC()
	}

	session := &store.YogaSession{
		ID:              uuid.New().String(),
		UserID:          userID,
		Practice:        req.Practice,
		DurationMinutes: req.DurationMinutes,
		PerformedAt:     performedAt,
		CreatedAt:       now,
	}
	if err := s.store.AddYogaSession(session); err != nil {
		s.logger.Error("failed to add yoga session", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	s.recordActivity(userID, "yoga_session_logged")
	writeJSONResponse(w, http.StatusCreated, session)
}

func (s *Server) handleListYogaSessions(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := parseLimit(r, 30)

	sessions, err := s.store.ListYogaSessions(userID, limit)
	if err != nil {
		s.logger.Error("failed to list yoga sessions", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleYogaStreak(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	streak, err := s.store.YogaStreak(userID, time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to compute yoga streak", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to compute streak")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"streak_days": streak})
}

type dietEntryRequest struct {
	Meal        string     `json:"meal"`
	Description string     `json:"description"`
	Calories    int        `json:"calories"`
	EatenAt     *time.Time `json:"eaten_at"`
}

func (s *Server) handleAddDietEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req dietEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return
	}
	if req.Meal == "" {
		writeBadRequestResponse(w, "Meal is required")
		return
	}
	if req.Calories < 0 {
		writeBadRequestResponse(w, "Calories cannot be negative")
		return
	}

	now := time.Now().UTC()
	eatenAt := now
	if req.EatenAt != nil {
		eatenAt = req.EatenAt.UTC()
	}

	entry := &store.DietEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		Meal:        req.Meal,
		Description: req.Description,
		Calories:    req.Calories,
		EatenAt:     eatenAt,
		CreatedAt:   now,
	}
	if err := s.store.AddDietEntry(entry); err != nil {
		s.logger.Error("failed to add diet entry", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to save entry")
		return
	}

	s.recordActivity(userID, "diet_entry_logged")
	writeJSONResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleListDietEntries(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := parseLimit(r, 30)

	entries, err := s.store.ListDietEntries(userID, limit)
	if err != nil {
		s.logger.Error("failed to list diet entries", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"entries": entries})
}

type hydrationRequest struct {
	AmountML int        `json:"amount_ml"`
	LoggedAt *time.Time `json:"logged_at"`
}

func (s *Server) handleAddHydration(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req hydrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return
	}
	if req.AmountML <= 0 {
		writeBadRequestResponse(w, "A positive amount_ml is required")
		return
	}

	now := time.Now().UTC()
	loggedAt := now
	if req.LoggedAt != nil {
		loggedAt = req.LoggedAt.UTC()
	}

	log := &store.HydrationLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		AmountML:  req.AmountML,
		LoggedAt:  loggedAt,
		CreatedAt: now,
	}
	if err := s.store.AddHydrationLog(log); err != nil {
		s.logger.Error("failed to add hydration log", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to save log")
		return
	}

	s.recordActivity(userID, "hydration_logged")
	writeJSONResponse(w, http.StatusCreated, log)
}

func (s *Server) handleHydrationToday(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	now := time.Now().UTC()

	total, err := s.store.HydrationTotalForDay(userID, now)
	if err != nil {
		s.logger.Error("failed to total hydration", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load hydration")
		return
	}
	streak, err := s.store.HydrationStreak(userID, now)
	if err != nil {
		s.logger.Error("failed to compute hydration streak", err, logging.Component("tracking"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to compute streak")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"total_ml":    total,
		"streak_days": streak,
	})
}
