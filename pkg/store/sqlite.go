package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides SQLite-based persistence for accounts, assessment
// history, and tracking data. Result and audit tables are append-only:
// nothing here mutates them after insert.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and prepares the schema
func New(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writes are serialized by SQLite anyway; keep the pool small
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT,
		phone TEXT,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		preferences TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS dosha_evaluations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		vata REAL NOT NULL,
		pitta REAL NOT NULL,
		kapha REAL NOT NULL,
		dominant TEXT NOT NULL,
		inputs TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_dosha_evaluations_user_id ON dosha_evaluations(user_id);

	CREATE TABLE IF NOT EXISTS cancer_risk_results (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		risk TEXT NOT NULL,
		probability REAL NOT NULL,
		percentage REAL NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_cancer_risk_results_user_id ON cancer_risk_results(user_id);

	CREATE TABLE IF NOT EXISTS activity_log (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		action TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_activity_log_user_id ON activity_log(user_id);

	CREATE TABLE IF NOT EXISTS yoga_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		practice TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		performed_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_yoga_sessions_user_id ON yoga_sessions(user_id);

	CREATE TABLE IF NOT EXISTS diet_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		meal TEXT NOT NULL,
		description TEXT,
		calories INTEGER NOT NULL,
		eaten_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_diet_entries_user_id ON diet_entries(user_id);

	CREATE TABLE IF NOT EXISTS hydration_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount_ml INTEGER NOT NULL,
		logged_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_hydration_logs_user_id ON hydration_logs(user_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateUser inserts a new account. A duplicate email reports
// ErrDuplicateEmail.
func (s *Store) CreateUser(u *User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, phone, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.Phone, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail looks up an account by login email
func (s *Store) GetUserByEmail(email string) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, email, name, phone, password_hash, created_at FROM users WHERE email = ?`, email))
}

// GetUserByID looks up an account by id
func (s *Store) GetUserByID(id string) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, email, name, phone, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// SaveProfile creates or replaces a user's profile
func (s *Store) SaveProfile(p *Profile) error {
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO profiles (user_id, preferences, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET preferences = excluded.preferences, updated_at = excluded.updated_at`,
		p.UserID, string(prefs), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile returns a user's profile
func (s *Store) GetProfile(userID string) (*Profile, error) {
	var (
		p     Profile
		prefs string
	)
	err := s.db.QueryRow(
		`SELECT user_id, preferences, created_at, updated_at FROM profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &prefs, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if err := json.Unmarshal([]byte(prefs), &p.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &p, nil
}

// InsertDoshaEvaluation appends one assessment to the history
func (s *Store) InsertDoshaEvaluation(e *DoshaEvaluation) error {
	inputs, err := json.Marshal(e.Inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO dosha_evaluations (id, user_id, vata, pitta, kapha, dominant, inputs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Vata, e.Pitta, e.Kapha, e.Dominant, string(inputs), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dosha evaluation: %w", err)
	}
	return nil
}

// ListDoshaEvaluations returns a user's history, newest first
func (s *Store) ListDoshaEvaluations(userID string, limit int) ([]*DoshaEvaluation, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, vata, pitta, kapha, dominant, inputs, created_at
		 FROM dosha_evaluations WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dosha evaluations: %w", err)
	}
	defer rows.Close()

	var out []*DoshaEvaluation
	for rows.Next() {
		var (
			e      DoshaEvaluation
			inputs string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Vata, &e.Pitta, &e.Kapha, &e.Dominant, &inputs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dosha evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(inputs), &e.Inputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// InsertCancerRiskResult appends one risk result to the history
func (s *Store) InsertCancerRiskResult(r *CancerRiskResult) error {
	_, err := s.db.Exec(
		`INSERT INTO cancer_risk_results (id, user_id, risk, probability, percentage, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Risk, r.Probability, r.Percentage, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cancer risk result: %w", err)
	}
	return nil
}

// ListCancerRiskResults returns a user's history, newest first
func (s *Store) ListCancerRiskResults(userID string, limit int) ([]*CancerRiskResult, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, risk, probability, percentage, created_at
		 FROM cancer_risk_results WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancer risk results: %w", err)
	}
	defer rows.Close()

	var out []*CancerRiskResult
	for rows.Next() {
		var r CancerRiskResult
		if err := rows.Scan(&r.ID, &r.UserID, &r.Risk, &r.Probability, &r.Percentage, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cancer risk result: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// LogActivity appends one audit entry
func (s *Store) LogActivity(e *ActivityEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO activity_log (id, user_id, action, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.UserID, e.Action, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// ListActivity returns a user's audit trail, newest first
func (s *Store) ListActivity(userID string, limit int) ([]*ActivityEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, action, created_at FROM activity_log
		 WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var out []*ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// AddYogaSession records one practice session
func (s *Store) AddYogaSession(y *YogaSession) error {
	_, err := s.db.Exec(
		`INSERT INTO yoga_sessions (id, user_id, practice, duration_minutes, performed_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		y.ID, y.UserID, y.Practice, y.DurationMinutes, y.PerformedAt, y.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add yoga session: %w", err)
	}
	return nil
}

// ListYogaSessions returns a user's sessions, newest first
func (s *Store) ListYogaSessions(userID string, limit int) ([]*YogaSession, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, practice, duration_minutes, performed_at, created_at
		 FROM yoga_sessions WHERE user_id = ? ORDER BY performed_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list yoga sessions: %w", err)
	}
	defer rows.Close()

	var out []*YogaSession
	for rows.Next() {
		var y YogaSession
		if err := rows.Scan(&y.ID, &y.UserID, &y.Practice, &y.DurationMinutes, &y.PerformedAt, &y.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan yoga session: %w", err)
		}
		out = append(out, &y)
	}
	return out, rows.Err()
}

// YogaStreak returns the user's consecutive-day practice streak as of
// the given day
func (s *Store) YogaStreak(userID string, today time.Time) (int, error) {
	return s.streak("yoga_sessions", "performed_at", userID, today)
}

// AddDietEntry records one meal
func (s *Store) AddDietEntry(d *DietEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO diet_entries (id, user_id, meal, description, calories, eaten_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Meal, d.Description, d.Calories, d.EatenAt, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add diet entry: %w", err)
	}
	return nil
}

// ListDietEntries returns a user's meals, newest first
func (s *Store) ListDietEntries(userID string, limit int) ([]*DietEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, meal, description, calories, eaten_at, created_at
		 FROM diet_entries WHERE user_id = ? ORDER BY eaten_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list diet entries: %w", err)
	}
	defer rows.Close()

	var out []*DietEntry
	for rows.Next() {
		var d DietEntry
		if err := rows.Scan(&d.ID, &d.UserID, &d.Meal, &d.Description, &d.Calories, &d.EatenAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan diet entry: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// AddHydrationLog records one water intake
func (s *Store) AddHydrationLog(h *HydrationLog) error {
	_, err := s.db.Exec(
		`INSERT INTO hydration_logs (id, user_id, amount_ml, logged_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.AmountML, h.LoggedAt, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add hydration log: %w", err)
	}
	return nil
}

// HydrationTotalForDay sums a user's intake on one calendar day
func (s *Store) HydrationTotalForDay(userID string, day time.Time) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		`SELECT SUM(amount_ml) FROM hydration_logs WHERE user_id = ? AND date(logged_at) = date(?)`,
		userID, day,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total hydration: %w", err)
	}
	return int(total.Int64), nil
}

// HydrationStreak returns the user's consecutive-day hydration streak
func (s *Store) HydrationStreak(userID string, today time.Time) (int, error) {
	return s.streak("hydration_logs", "logged_at", userID, today)
}

// streak counts consecutive calendar days with at least one row,
// walking back from today. A streak survives a not-yet-logged today by
// anchoring on yesterday instead.
func (s *Store) streak(table, column, userID string, today time.Time) (int, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT DISTINCT date(%s) FROM %s WHERE user_id = ? ORDER BY 1 DESC`, column, table),
		userID)
	if err != nil {
		return 0, fmt.Errorf("failed to query streak days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return 0, fmt.Errorf("failed to scan streak day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return countStreak(days, today), nil
}

// countStreak counts consecutive days in a descending date list,
// anchored at today or yesterday
func countStreak(days []string, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	const layout = "2006-01-02"
	anchor := today
	if days[0] != anchor.Format(layout) {
		anchor = today.AddDate(0, 0, -1)
		if days[0] != anchor.Format(layout) {
			return 0
		}
	}

	streak := 0
	for _, d := range days {
		if d != anchor.Format(layout) {
			break
		}
		streak++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return streak
}
