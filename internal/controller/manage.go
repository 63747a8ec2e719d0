package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/erazemk/stockroom/internal/client"
	"github.com/erazemk/stockroom/internal/model"
)

// Manage screen status messages.
const (
	MsgFound           = "Item found"
	MsgNotFound        = "Item not found"
	MsgSearchFirst     = "Search for an item first"
	MsgUpdated         = "Item updated successfully"
	MsgUpdateFailed    = "Update failed"
	MsgUpdateCancelled = "Update cancelled"
	MsgDeleted         = "Item deleted"
	MsgDeleteFailed    = "Delete failed (Laptop cannot be deleted or name not found)"
	MsgDeleteCancelled = "Delete cancelled"
)

// Pending is a destructive action waiting for the user's answer.
type Pending struct {
	Action string
	Prompt string
	Name   string
	Form   model.RecordForm
}

// Manage is the Update/Delete screen: find one record by name, edit it, or
// delete a record by name. Every action validates before calling the
// service and clears the other actions' stale messages.
type Manage struct {
	inv    Inventory
	record Recorder

	mu         sync.Mutex
	searchName string
	current    *model.Record
	form       model.RecordForm
	deleteName string
	pending    *Pending

	formMessage   string
	formIsError   bool
	updateMessage string
	updateIsError bool
	deleteMessage string
	deleteIsError bool

	searchSeq sequence
	updateSeq sequence
	deleteSeq sequence
	// actionSeq is bumped by every Search, Update and Delete. A mutation
	// result only changes the screen if no newer action has started.
	actionSeq sequence
}

// ManageState is a snapshot of the Update/Delete screen.
type ManageState struct {
	SearchName string
	Current    *model.Record
	Form       model.RecordForm
	DeleteName string
	Pending    *Pending

	FormMessage   string
	FormIsError   bool
	UpdateMessage string
	UpdateIsError bool
	DeleteMessage string
	DeleteIsError bool
}

// NewManage returns an Update/Delete screen backed by inv. rec may be nil.
func NewManage(inv Inventory, rec Recorder) *Manage {
	return &Manage{inv: inv, record: rec}
}

// State returns a copy of the current screen state.
func (m *Manage) State() ManageState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := ManageState{
		SearchName:    m.searchName,
		Form:          m.form,
		DeleteName:    m.deleteName,
		FormMessage:   m.formMessage,
		FormIsError:   m.formIsError,
		UpdateMessage: m.updateMessage,
		UpdateIsError: m.updateIsError,
		DeleteMessage: m.deleteMessage,
		DeleteIsError: m.deleteIsError,
	}
	if m.current != nil {
		cur := *m.current
		st.Current = &cur
	}
	if m.pending != nil {
		p := *m.pending
		st.Pending = &p
	}
	return st
}

// clearMessages drops every status message and any pending confirmation.
// Callers must hold m.mu.
func (m *Manage) clearMessages() {
	m.formMessage, m.formIsError = "", false
	m.updateMessage, m.updateIsError = "", false
	m.deleteMessage, m.deleteIsError = "", false
	m.pending = nil
}

// Search looks up name and loads the first match as the current record.
func (m *Manage) Search(ctx context.Context, name string) {
	m.mu.Lock()
	m.clearMessages()
	m.actionSeq.next()
	m.searchName = name
	if err := model.ValidateLookupName(name, "search"); err != nil {
		m.formMessage, m.formIsError = err.Error(), true
		m.mu.Unlock()
		return
	}
	seq := m.searchSeq.next()
	m.mu.Unlock()

	records, err := m.inv.FindByName(ctx, strings.TrimSpace(name))

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.searchSeq.latest(seq) {
		return
	}
	if err != nil || len(records) == 0 {
		if err != nil {
			slog.Warn("item lookup failed", "name", name, "error", err)
		}
		m.current = nil
		m.form = model.RecordForm{}
		m.formMessage, m.formIsError = MsgNotFound, true
		return
	}

	rec := records[0]
	rec.FeaturedItem = model.NormalizeFlag(rec.FeaturedItem)
	m.current = &rec
	m.form = model.FormFromRecord(rec)
	m.formMessage, m.formIsError = MsgFound, false
}

// Update validates the edits in f, asks for confirmation and saves them to
// the loaded record. The record is addressed by its name before the edit.
func (m *Manage) Update(ctx context.Context, f model.RecordForm, confirm Confirmer) {
	m.mu.Lock()
	m.clearMessages()
	act := m.actionSeq.next()
	if m.current == nil {
		m.updateMessage, m.updateIsError = MsgSearchFirst, true
		m.mu.Unlock()
		return
	}
	base := *m.current
	m.form = f
	m.mu.Unlock()

	rec, err := f.Apply(base)
	if err != nil {
		m.setUpdate(err.Error(), true)
		return
	}

	prompt := fmt.Sprintf("Save changes to %q?", base.ItemName)
	ok, err := confirm.Confirm(ctx, prompt)
	if errors.Is(err, ErrConfirmationPending) {
		m.mu.Lock()
		m.pending = &Pending{Action: model.ActionUpdate, Prompt: prompt, Name: base.ItemName, Form: f}
		m.mu.Unlock()
		return
	}
	if err != nil {
		slog.Warn("update confirmation failed", "item", base.ItemName, "error", err)
	}
	if err != nil || !ok {
		m.setUpdate(MsgUpdateCancelled, true)
		return
	}

	m.mu.Lock()
	seq := m.updateSeq.next()
	m.mu.Unlock()

	_, err = m.inv.Update(ctx, base.ItemName, rec)

	msg := MsgUpdated
	if err != nil {
		msg = MsgUpdateFailed
		if server, ok := client.ServerMessage(err); ok {
			msg = server
		}
		slog.Warn("failed to update item", "item", base.ItemName, "error", err)
	} else {
		slog.Info("item updated", "item", base.ItemName, "name", rec.ItemName)
	}
	m.record.record(ctx, model.ActionUpdate, base.ItemName, err == nil, msg)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.updateSeq.latest(seq) || !m.actionSeq.latest(act) {
		return
	}
	if err != nil {
		m.updateMessage, m.updateIsError = msg, true
		return
	}
	m.current = nil
	m.form = model.RecordForm{}
	m.searchName = ""
	m.updateMessage, m.updateIsError = msg, false
}

// Delete validates name, asks for confirmation and deletes the record.
func (m *Manage) Delete(ctx context.Context, name string, confirm Confirmer) {
	m.mu.Lock()
	m.clearMessages()
	act := m.actionSeq.next()
	m.deleteName = name
	m.mu.Unlock()

	if err := model.ValidateLookupName(name, "delete"); err != nil {
		m.setDelete(err.Error(), true)
		return
	}
	name = strings.TrimSpace(name)

	prompt := fmt.Sprintf("Delete %q?", name)
	ok, err := confirm.Confirm(ctx, prompt)
	if errors.Is(err, ErrConfirmationPending) {
		m.mu.Lock()
		m.pending = &Pending{Action: model.ActionDelete, Prompt: prompt, Name: name}
		m.mu.Unlock()
		return
	}
	if err != nil {
		slog.Warn("delete confirmation failed", "item", name, "error", err)
	}
	if err != nil || !ok {
		m.setDelete(MsgDeleteCancelled, true)
		return
	}

	m.mu.Lock()
	seq := m.deleteSeq.next()
	m.mu.Unlock()

	resp, err := m.inv.Delete(ctx, name)

	msg := MsgDeleted
	switch {
	case err != nil:
		msg = MsgDeleteFailed
		if server, ok := client.ServerMessage(err); ok {
			msg = server
		}
		slog.Warn("failed to delete item", "item", name, "error", err)
	case resp != nil && resp.Message != "":
		msg = resp.Message
	}
	if err == nil {
		slog.Info("item deleted", "item", name)
	}
	m.record.record(ctx, model.ActionDelete, name, err == nil, msg)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.deleteSeq.latest(seq) || !m.actionSeq.latest(act) {
		return
	}
	if err != nil {
		m.deleteMessage, m.deleteIsError = msg, true
		return
	}
	m.deleteName = ""
	m.deleteMessage, m.deleteIsError = msg, false
	if m.current != nil && m.current.ItemName == name {
		m.current = nil
		m.form = model.RecordForm{}
	}
}

func (m *Manage) setUpdate(msg string, isError bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateMessage, m.updateIsError = msg, isError
}

func (m *Manage) setDelete(msg string, isError bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteMessage, m.deleteIsError = msg, isError
}
