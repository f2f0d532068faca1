package store

import (
	"errors"
	"time"
)

// Sentinel errors callers branch on
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// User is a registered account. The email doubles as the login name.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile holds per-user preferences as a free-form JSON blob
type Profile struct {
	UserID      string         `json:"user_id"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DoshaEvaluation is one persisted constitution assessment. Rows are
// append-only history; they are never updated after creation.
type DoshaEvaluation struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Vata      float64           `json:"vata"`
	Pitta     float64           `json:"pitta"`
	Kapha     float64           `json:"kapha"`
	Dominant  string            `json:"dominant"`
	Inputs    map[string]string `json:"inputs"`
	CreatedAt time.Time         `json:"created_at"`
}

// CancerRiskResult is one persisted risk assessment, append-only
type CancerRiskResult struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Risk        string    `json:"risk"`
	Probability float64   `json:"probability"`
	Percentage  float64   `json:"percentage"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityEntry is one audit row, append-only
type ActivityEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// YogaSession is one practice session record
type YogaSession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Practice        string    `json:"practice"`
	DurationMinutes int       `json:"duration_minutes"`
	PerformedAt     time.Time `json:"performed_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// DietEntry is one logged meal
type DietEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Meal        string    `json:"meal"`
	Description string    `json:"description"`
	Calories    int       `json:"calories"`
	EatenAt     time.Time `json:"eaten_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// HydrationLog is one logged water intake
type HydrationLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AmountML  int       `json:"amount_ml"`
	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
}
