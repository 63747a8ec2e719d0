package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/erazemk/stockroom/internal/model"
)

// Create screen status messages.
const (
	MsgCreated      = "Item added successfully"
	MsgCreateFailed = "Failed to add item. Please try again."
	MsgFixFields    = "Please fix the highlighted fields"
)

// Create is the Add screen: a draft record and the featured list.
type Create struct {
	inv    Inventory
	record Recorder

	mu          sync.Mutex
	draft       model.Draft
	featured    []model.Record
	message     string
	isError     bool
	fieldErrors map[string]string

	submitSeq   sequence
	featuredSeq sequence
}

// CreateState is a snapshot of the Add screen.
type CreateState struct {
	Draft       model.Draft
	Featured    []model.Record
	Message     string
	IsError     bool
	FieldErrors map[string]string
}

// NewCreate returns an Add screen backed by inv. rec may be nil.
func NewCreate(inv Inventory, rec Recorder) *Create {
	return &Create{inv: inv, record: rec, draft: model.EmptyDraft()}
}

// State returns a copy of the current screen state.
func (c *Create) State() CreateState {
	c.mu.Lock()
	defer c.mu.Unlock()
	fields := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		fields[k] = v
	}
	return CreateState{
		Draft:       c.draft,
		Featured:    cloneRecords(c.featured),
		Message:     c.message,
		IsError:     c.isError,
		FieldErrors: fields,
	}
}

// SubmitForm reads a draft from raw form values and submits it.
func (c *Create) SubmitForm(ctx context.Context, get func(string) string) {
	d, err := model.DraftFromForm(get)
	if err != nil {
		c.reject(d, err)
		return
	}
	c.Submit(ctx, d)
}

// Submit validates d and sends it to the service. On success the draft is
// reset and the featured list reloaded; on failure the draft is kept so the
// user can retry.
func (c *Create) Submit(ctx context.Context, d model.Draft) {
	if err := model.ValidateDraft(d); err != nil {
		c.reject(d, err)
		return
	}

	c.mu.Lock()
	c.draft = d
	c.fieldErrors = nil
	c.message = ""
	c.isError = false
	seq := c.submitSeq.next()
	c.mu.Unlock()

	rec := d.Record()
	_, err := c.inv.Create(ctx, rec)

	c.mu.Lock()
	if !c.submitSeq.latest(seq) {
		c.mu.Unlock()
		return
	}
	if err != nil {
		slog.Warn("failed to create item", "item", rec.ItemName, "error", err)
		c.message = MsgCreateFailed
		c.isError = true
		c.mu.Unlock()
		c.record.record(ctx, model.ActionCreate, rec.ItemName, false, MsgCreateFailed)
		return
	}
	c.message = MsgCreated
	c.isError = false
	c.draft = model.EmptyDraft()
	c.mu.Unlock()

	slog.Info("item created", "item", rec.ItemName, "featured", rec.IsFeatured())
	c.record.record(ctx, model.ActionCreate, rec.ItemName, true, MsgCreated)
	c.LoadFeatured(ctx)
}

// LoadFeatured refreshes the featured list. On failure the previous list is
// kept.
func (c *Create) LoadFeatured(ctx context.Context) {
	c.mu.Lock()
	seq := c.featuredSeq.next()
	c.mu.Unlock()

	records, err := c.inv.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.featuredSeq.latest(seq) {
		return
	}
	if err != nil {
		slog.Error("failed to load featured items", "error", err)
		return
	}
	featured := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if rec.IsFeatured() {
			featured = append(featured, rec)
		}
	}
	c.featured = featured
}

func (c *Create) reject(d model.Draft, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
	c.message = MsgFixFields
	c.isError = true
	c.fieldErrors = nil

	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		c.fieldErrors = verrs.Messages()
	}
}
