package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Language string `json:"language"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *store.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeBadRequestResponse(w, "Email and password are required")
		return
	}

	now := time.Now().UTC()
	user := &store.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: HashPassword(req.Password),
		CreatedAt:    now,
	}

	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeErrorResponse(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		s.logger.Error("failed to create user", err, logging.Component("auth"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	language := req.Language
	if language == "" {
		language = "en"
	}
	profile := &store.Profile{
		UserID:      user.ID,
		Preferences: map[string]any{"language": language},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.SaveProfile(profile); err != nil {
		s.logger.Error("failed to create profile", err, logging.Component("auth"))
	}
	s.recordActivity(user.ID, "user_registered")

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to issue token", err, logging.Component("auth"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSONResponse(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, "Invalid JSON body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeBadRequestResponse(w, "Email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil || !VerifyPassword(req.Password, user.PasswordHash) {
		writeErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to issue token", err, logging.Component("auth"))
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	s.recordActivity(user.ID, "user_logged_in")
	writeJSONResponse(w, http.StatusOK, authResponse{Token: token, User: user})
}

// recordActivity appends an audit entry; failures are logged, never
// surfaced to the client
func (s *Server) recordActivity(userID, action string) {
	entry := &store.ActivityEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.LogActivity(entry); err != nil {
		s.logger.Error("failed to record activity", err,
			logging.String("action", action),
			logging.Component("activity"))
	}
}
