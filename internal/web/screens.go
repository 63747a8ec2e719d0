package web

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"github.com/erazemk/stockroom/internal/controller"
	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// Screen holds one session's view controllers.
type Screen struct {
	List   *controller.List
	Create *controller.Create
	Manage *controller.Manage
}

// Screens keeps the view controllers of every live session in memory.
type Screens struct {
	db  *sql.DB
	inv controller.Inventory

	mu      sync.Mutex
	screens map[string]*Screen
}

// NewScreens returns an empty registry backed by inv. Activity is recorded
// in db.
func NewScreens(db *sql.DB, inv controller.Inventory) *Screens {
	return &Screens{db: db, inv: inv, screens: make(map[string]*Screen)}
}

// Get returns the screen of a session, creating it on first use.
func (s *Screens) Get(sessionID string) *Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.screens[sessionID]; ok {
		return sc
	}
	rec := s.recorder(sessionID)
	sc := &Screen{
		List:   controller.NewList(s.inv),
		Create: controller.NewCreate(s.inv, rec),
		Manage: controller.NewManage(s.inv, rec),
	}
	s.screens[sessionID] = sc
	return sc
}

// recorder stores activity tagged with the session.
func (s *Screens) recorder(sessionID string) controller.Recorder {
	return func(ctx context.Context, a model.Activity) {
		a.SessionID = sessionID
		if _, err := store.RecordActivity(ctx, s.db, a); err != nil {
			slog.Error("failed to record activity", "action", a.Action, "item", a.ItemName, "error", err)
		}
	}
}
