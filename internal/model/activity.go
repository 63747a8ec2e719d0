package model

import "time"

// Activity is one create, update or delete attempted through this client.
type Activity struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Action    string    `json:"action"`
	ItemName  string    `json:"item_name"`
	OK        bool      `json:"ok"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)
