package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/stockroom/internal/model"
)

// SessionTTL is how long an unused session is kept.
const SessionTTL = 30 * 24 * time.Hour

// CreateSession stores a new session with default preferences.
func CreateSession(ctx context.Context, db *sql.DB) (*model.Session, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, `INSERT INTO sessions (id) VALUES (?)`, id)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	// Opportunistically clean up stale sessions.
	_, _ = db.ExecContext(ctx,
		`DELETE FROM sessions WHERE last_seen < ?`, time.Now().Add(-SessionTTL).UTC(),
	)

	return GetSession(ctx, db, id)
}

// GetSession returns a session by ID, or nil if it does not exist.
func GetSession(ctx context.Context, db *sql.DB, id string) (*model.Session, error) {
	s := &model.Session{}
	err := db.QueryRowContext(ctx,
		`SELECT id, dark_mode, created_at, last_seen FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Preferences.DarkMode, &s.CreatedAt, &s.LastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return s, nil
}

// SetPreferences stores the display preferences of a session.
func SetPreferences(ctx context.Context, db *sql.DB, id string, prefs model.Preferences) error {
	result, err := db.ExecContext(ctx,
		`UPDATE sessions SET dark_mode = ? WHERE id = ?`, prefs.DarkMode, id,
	)
	if err != nil {
		return fmt.Errorf("updating session preferences: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}

// TouchSession records that a session was just used.
func TouchSession(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET last_seen = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	return nil
}
