package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/stockroom/internal/model"
)

// RecordActivity appends one action outcome to the activity log.
func RecordActivity(ctx context.Context, db *sql.DB, a model.Activity) (*model.Activity, error) {
	var sessionID sql.NullString
	if a.SessionID != "" {
		sessionID = sql.NullString{String: a.SessionID, Valid: true}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO activity (session_id, action, item_name, ok, message) VALUES (?, ?, ?, ?, ?)`,
		sessionID, a.Action, a.ItemName, a.OK, a.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("recording activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting activity id: %w", err)
	}

	out := &model.Activity{}
	var sid sql.NullString
	err = db.QueryRowContext(ctx,
		`SELECT id, session_id, action, item_name, ok, message, created_at FROM activity WHERE id = ?`, id,
	).Scan(&out.ID, &sid, &out.Action, &out.ItemName, &out.OK, &out.Message, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	out.SessionID = sid.String
	return out, nil
}

// ListActivity returns the most recent activity, newest first. A non-empty
// sessionID limits the result to that session's entries; an empty one lists
// every entry, including those recorded by the CLI.
func ListActivity(ctx context.Context, db *sql.DB, sessionID string, limit int) ([]model.Activity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, session_id, action, item_name, ok, message, created_at
		 FROM activity WHERE ? = '' OR session_id = ?
		 ORDER BY id DESC LIMIT ?`, sessionID, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		var a model.Activity
		var sid sql.NullString
		if err := rows.Scan(&a.ID, &sid, &a.Action, &a.ItemName, &a.OK, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		a.SessionID = sid.String
		out = append(out, a)
	}
	return out, rows.Err()
}
