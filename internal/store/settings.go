package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// signingKeySetting names the settings row holding the HMAC key that signs
// session cookies.
const signingKeySetting = "session_signing_key"

// SessionSigningKey returns the key used to sign session cookies, creating
// a random one on first use. Cookies issued by an earlier run stay valid
// because the key survives restarts.
func SessionSigningKey(ctx context.Context, db *sql.DB) (string, error) {
	return settingOrCreate(ctx, db, signingKeySetting, randomHex)
}

// settingOrCreate returns the value stored under key, storing generate's
// result first if the key is unset. Concurrent callers all see the value
// that was inserted first.
func settingOrCreate(ctx context.Context, db *sql.DB, key string, generate func() (string, error)) (string, error) {
	candidate, err := generate()
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", key, err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`,
		key, candidate,
	); err != nil {
		return "", fmt.Errorf("storing %s: %w", key, err)
	}

	var value string
	if err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value); err != nil {
		return "", fmt.Errorf("querying %s: %w", key, err)
	}
	return value, nil
}

// randomHex returns 32 random bytes, hex encoded.
func randomHex() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
