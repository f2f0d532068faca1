package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/prakriti-health/prakriti-api/pkg/assess"
	"github.com/prakriti-health/prakriti-api/pkg/config"
	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

// Server wires the HTTP surface over the assessor and the store
type Server struct {
	router   *mux.Router
	store    *store.Store
	assessor *assess.Assessor
	tokens   *TokenManager
	logger   *logging.Logger
	cors     *cors.Cors
}

// NewServer creates a configured API server
func NewServer(cfg *config.Config, logger *logging.Logger, st *store.Store, assessor *assess.Assessor) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		store:    st,
		assessor: assessor,
		tokens:   NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenExpiryHours)*time.Hour),
		logger:   logger,
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Language"},
			AllowCredentials: true,
		}),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.errorRecoveryMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	s.router.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	s.router.HandleFunc("/api/questions", s.handleQuestions).Methods("GET")

	authed := s.router.PathPrefix("/api").Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/assess", s.handleAssess).Methods("POST")
	authed.HandleFunc("/dosha", s.handleDosha).Methods("POST")
	authed.HandleFunc("/cancer-risk", s.handleCancerRisk).Methods("POST")
	authed.HandleFunc("/history", s.handleHistory).Methods("GET")
	authed.HandleFunc("/activity", s.handleActivity).Methods("GET")

	authed.HandleFunc("/yoga", s.handleAddYogaSession).Methods("POST")
	authed.HandleFunc("/yoga", s.handleListYogaSessions).Methods("GET")
	authed.HandleFunc("/yoga/streak", s.handleYogaStreak).Methods("GET")
	authed.HandleFunc("/diet", s.handleAddDietEntry).Methods("POST")
	authed.HandleFunc("/diet", s.handleListDietEntries).Methods("GET")
	authed.HandleFunc("/hydration", s.handleAddHydration).Methods("POST")
	authed.HandleFunc("/hydration/today", s.handleHydrationToday).Methods("GET")

	authed.HandleFunc("/settings/preferences", s.handleGetPreferences).Methods("GET")
	authed.HandleFunc("/settings/preferences", s.handleUpdatePreferences).Methods("PUT")
}

// Handler returns the full middleware-wrapped handler
func (s *Server) Handler() http.Handler {
	return s.cors.Handler(s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "prakriti-api",
	})
}
