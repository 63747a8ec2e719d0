package store

import (
	"context"
	"testing"

	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/model"
)

func TestRecordAndListActivity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s, _ := CreateSession(ctx, database)

	a, err := RecordActivity(ctx, database, model.Activity{
		SessionID: s.ID,
		Action:    model.ActionCreate,
		ItemName:  "Mouse",
		OK:        true,
		Message:   "Item added successfully",
	})
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if a.ID == 0 || a.SessionID != s.ID {
		t.Errorf("unexpected activity %+v", a)
	}

	// Actions from the CLI carry no session.
	if _, err := RecordActivity(ctx, database, model.Activity{
		Action:   model.ActionDelete,
		ItemName: "Laptop",
		Message:  "Laptop cannot be deleted",
	}); err != nil {
		t.Fatalf("RecordActivity without session: %v", err)
	}

	list, err := ListActivity(ctx, database, "", 10)
	if err != nil {
		t.Fatalf("ListActivity: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ItemName != "Laptop" || list[0].OK {
		t.Errorf("expected newest entry first, got %+v", list[0])
	}
	if list[1].ItemName != "Mouse" || !list[1].OK {
		t.Errorf("unexpected second entry %+v", list[1])
	}
}

func TestListActivityLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		RecordActivity(ctx, database, model.Activity{Action: model.ActionUpdate, ItemName: name, OK: true})
	}

	list, _ := ListActivity(ctx, database, "", 2)
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ItemName != "C" {
		t.Errorf("expected C first, got %q", list[0].ItemName)
	}
}

func TestRecordActivityRejectsUnknownAction(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := RecordActivity(context.Background(), database, model.Activity{Action: "rename", ItemName: "X"})
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestListActivityForSession(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mine, _ := CreateSession(ctx, database)
	theirs, _ := CreateSession(ctx, database)

	RecordActivity(ctx, database, model.Activity{SessionID: mine.ID, Action: model.ActionCreate, ItemName: "Mouse", OK: true})
	RecordActivity(ctx, database, model.Activity{SessionID: theirs.ID, Action: model.ActionDelete, ItemName: "Desk", OK: true})
	RecordActivity(ctx, database, model.Activity{Action: model.ActionUpdate, ItemName: "Hammer", OK: true})

	list, err := ListActivity(ctx, database, mine.ID, 10)
	if err != nil {
		t.Fatalf("ListActivity: %v", err)
	}
	if len(list) != 1 || list[0].ItemName != "Mouse" {
		t.Fatalf("expected only Mouse for this session, got %+v", list)
	}

	all, _ := ListActivity(ctx, database, "", 10)
	if len(all) != 3 {
		t.Errorf("expected 3 entries across sessions, got %d", len(all))
	}
}
