package controller

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/erazemk/stockroom/internal/model"
)

// List is the Home screen: the full collection plus a search by name.
type List struct {
	inv Inventory

	mu         sync.Mutex
	all        []model.Record
	displayed  []model.Record
	searchTerm string
	loading    bool
	loadErr    error

	loadSeq    sequence
	displaySeq sequence
}

// ListState is a snapshot of the List screen.
type ListState struct {
	All        []model.Record
	Displayed  []model.Record
	SearchTerm string
	Loading    bool
	// LoadErr is the error of the last collection load, nil on success.
	LoadErr error
}

// NewList returns a List screen backed by inv.
func NewList(inv Inventory) *List {
	return &List{inv: inv, loading: true}
}

// State returns a copy of the current screen state.
func (l *List) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ListState{
		All:        cloneRecords(l.all),
		Displayed:  cloneRecords(l.displayed),
		SearchTerm: l.searchTerm,
		Loading:    l.loading,
		LoadErr:    l.loadErr,
	}
}

// Activate loads the full collection. On failure both lists stay empty.
func (l *List) Activate(ctx context.Context) {
	l.mu.Lock()
	l.loading = true
	load := l.loadSeq.next()
	display := l.displaySeq.next()
	l.mu.Unlock()

	records, err := l.inv.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loadSeq.latest(load) {
		return
	}
	l.loading = false
	l.loadErr = err
	if err != nil {
		slog.Error("failed to fetch inventory", "error", err)
		l.all = nil
		if l.displaySeq.latest(display) {
			l.displayed = nil
		}
		return
	}
	l.all = records
	// A blank search shows the full list, even if it was issued while this
	// load was in flight.
	if l.displaySeq.latest(display) || strings.TrimSpace(l.searchTerm) == "" {
		l.displayed = records
	}
}

// Search shows the records matching term. A blank term restores the full
// list without a request.
func (l *List) Search(ctx context.Context, term string) {
	l.mu.Lock()
	l.searchTerm = term
	seq := l.displaySeq.next()
	if strings.TrimSpace(term) == "" {
		l.displayed = l.all
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	records, err := l.inv.FindByName(ctx, strings.TrimSpace(term))

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.displaySeq.latest(seq) {
		return
	}
	if err != nil {
		slog.Warn("inventory search failed", "term", term, "error", err)
		l.displayed = []model.Record{}
		return
	}
	l.displayed = records
}

// Reset clears the search term and shows the full list again.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchTerm = ""
	l.displaySeq.next()
	l.displayed = l.all
}
