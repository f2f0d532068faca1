package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	profile, err := s.store.GetProfile(userID)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONResponse(w, http.StatusOK, map[string]any{"preferences": map[string]any{}})
		return
	}
	if err != nil {
		s.logger.Error("failed to load profile", err, logging.Component("settings"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"preferences": profile.Preferences})
}

// handleUpdatePreferences merges the submitted keys into the stored
// preferences; keys absent from the request are left untouched
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return
	}
	if len(updates) == 0 {
		writeBadRequestResponse(w, "No preferences provided")
		return
	}

	now := time.Now().UTC()
	profile, err := s.store.GetProfile(userID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &store.Profile{
			UserID:      userID,
			Preferences: map[string]any{},
			CreatedAt:   now,
		}
	} else if err != nil {
		s.logger.Error("failed to load profile", err, logging.Component("settings"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	for k, v := range updates {
		profile.Preferences[k] = v
	}
	profile.UpdatedAt = now

	if err := s.store.SaveProfile(profile); err != nil {
		s.logger.Error("failed to save profile", err, logging.Component("settings"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	s.recordActivity(userID, "preferences_updated")
	writeJSONResponse(w, http.StatusOK, map[string]any{"preferences": profile.Preferences})
}
