// Package controller holds the per-screen view state of the inventory
// client. Each controller wraps calls to the remote collection, applies the
// results to its own fields and never lets a remote failure escape as an
// error: failures only change the status text and the working data.
package controller

import (
	"context"
	"errors"

	"github.com/erazemk/stockroom/internal/client"
	"github.com/erazemk/stockroom/internal/model"
)

// Inventory is the remote collection the controllers talk to.
// *client.Client satisfies it.
type Inventory interface {
	List(ctx context.Context) ([]model.Record, error)
	FindByName(ctx context.Context, name string) ([]model.Record, error)
	Create(ctx context.Context, rec model.Record) (*client.Response, error)
	Update(ctx context.Context, name string, rec model.Record) (*client.Response, error)
	Delete(ctx context.Context, name string) (*client.Response, error)
}

// Recorder receives the outcome of every mutating call. It may be nil.
type Recorder func(ctx context.Context, a model.Activity)

func (r Recorder) record(ctx context.Context, action, item string, ok bool, message string) {
	if r == nil {
		return
	}
	r(ctx, model.Activity{Action: action, ItemName: item, OK: ok, Message: message})
}

// ErrConfirmationPending is returned by a Confirmer that cannot answer
// synchronously. The controller keeps the action as Pending and expects it
// to be resubmitted with an answer.
var ErrConfirmationPending = errors.New("confirmation pending")

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// sequence tags requests so that a response arriving after a newer request
// of the same kind is dropped. Guarded by the owning controller's mutex.
type sequence struct {
	n uint64
}

func (s *sequence) next() uint64 {
	s.n++
	return s.n
}

func (s *sequence) latest(id uint64) bool {
	return s.n == id
}

func cloneRecords(recs []model.Record) []model.Record {
	if recs == nil {
		return nil
	}
	out := make([]model.Record, len(recs))
	copy(out, recs)
	return out
}
