// Package artgalley is an in-memory implementation of the remote inventory
// collection. It backs the fake-api command and the client and controller
// tests.
package artgalley

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/erazemk/stockroom/internal/model"
)

// CollectionPath is the route of the inventory collection.
const CollectionPath = "/ArtGalley"

// ProtectedName is the record the service refuses to delete.
const ProtectedName = "Laptop"

// Operation names used for failure injection and call counting.
const (
	OpList   = "list"
	OpFind   = "find"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Service holds the collection and serves the REST contract.
type Service struct {
	mu      sync.Mutex
	records map[string]model.Record
	nextID  int64

	failures map[string]int
	calls    map[string]int
}

// New returns a service holding the given records. Records without an ID
// get one assigned.
func New(records ...model.Record) *Service {
	s := &Service{
		records:  make(map[string]model.Record),
		nextID:   1,
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
	for _, rec := range records {
		if rec.ItemID == 0 {
			rec.ItemID = s.nextID
		}
		if rec.ItemID >= s.nextID {
			s.nextID = rec.ItemID + 1
		}
		s.records[rec.ItemName] = rec
	}
	return s
}

// Handler returns the HTTP handler with every route registered.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+CollectionPath, s.List)
	mux.HandleFunc("POST "+CollectionPath, s.Create)
	mux.HandleFunc("GET "+CollectionPath+"/{name}", s.Find)
	mux.HandleFunc("PUT "+CollectionPath+"/{name}", s.Update)
	mux.HandleFunc("DELETE "+CollectionPath+"/{name}", s.Delete)
	return mux
}

// FailNext makes the next call of op answer with status instead of being
// served.
func (s *Service) FailNext(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

// Calls returns how many requests of op reached the service.
func (s *Service) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Get returns the stored record with exactly this name.
func (s *Service) Get(name string) (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[name]
	return rec, ok
}

// enter counts the call and reports an injected failure, if any. Callers
// must hold s.mu.
func (s *Service) enter(w http.ResponseWriter, op string) bool {
	s.calls[op]++
	if status, ok := s.failures[op]; ok {
		delete(s.failures, op)
		jsonError(w, status, "injected failure")
		return false
	}
	return true
}

// sorted returns the records ordered by ID. Callers must hold s.mu.
func (s *Service) sorted() []model.Record {
	out := make([]model.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// List handles GET /ArtGalley.
func (s *Service) List(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enter(w, OpList) {
		return
	}
	jsonResponse(w, http.StatusOK, s.sorted())
}

// Find handles GET /ArtGalley/{name}. Matching is a case-insensitive
// substring search.
func (s *Service) Find(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enter(w, OpFind) {
		return
	}

	needle := strings.ToLower(r.PathValue("name"))
	matches := []model.Record{}
	for _, rec := range s.sorted() {
		if strings.Contains(strings.ToLower(rec.ItemName), needle) {
			matches = append(matches, rec)
		}
	}
	jsonResponse(w, http.StatusOK, matches)
}

// Create handles POST /ArtGalley.
func (s *Service) Create(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enter(w, OpCreate) {
		return
	}

	var rec model.Record
	if err := decodeJSON(r, &rec); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(rec.ItemName) == "" {
		jsonError(w, http.StatusBadRequest, "item_name required")
		return
	}
	if _, exists := s.records[rec.ItemName]; exists {
		jsonError(w, http.StatusConflict, "item already exists")
		return
	}

	rec.ItemID = s.nextID
	s.nextID++
	s.records[rec.ItemName] = rec

	slog.Info("record created", "item", rec.ItemName, "id", rec.ItemID)
	jsonResponse(w, http.StatusCreated, rec)
}

// Update handles PUT /ArtGalley/{name}.
func (s *Service) Update(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enter(w, OpUpdate) {
		return
	}

	name := r.PathValue("name")
	existing, ok := s.records[name]
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var rec model.Record
	if err := decodeJSON(r, &rec); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(rec.ItemName) == "" {
		rec.ItemName = name
	}
	if rec.ItemName != name {
		if _, taken := s.records[rec.ItemName]; taken {
			jsonError(w, http.StatusConflict, "another item already uses that name")
			return
		}
		delete(s.records, name)
	}

	rec.ItemID = existing.ItemID
	s.records[rec.ItemName] = rec

	slog.Info("record updated", "item", name)
	jsonMessage(w, http.StatusOK, "Item updated")
}

// Delete handles DELETE /ArtGalley/{name}.
func (s *Service) Delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enter(w, OpDelete) {
		return
	}

	name := r.PathValue("name")
	if strings.EqualFold(name, ProtectedName) {
		jsonError(w, http.StatusForbidden, ProtectedName+" cannot be deleted")
		return
	}
	if _, ok := s.records[name]; !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	delete(s.records, name)
	slog.Info("record deleted", "item", name)
	jsonMessage(w, http.StatusOK, "Item deleted")
}
