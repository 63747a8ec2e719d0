package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/stockroom/internal/artgalley"
	"github.com/erazemk/stockroom/internal/client"
	"github.com/erazemk/stockroom/internal/model"
)

// setupInventory starts an in-memory collection seeded with the sample
// records and returns it with a client pointed at it.
func setupInventory(t *testing.T) (*artgalley.Service, *client.Client) {
	t.Helper()
	svc := artgalley.New(artgalley.SampleRecords()...)
	server := httptest.NewServer(svc.Handler())
	t.Cleanup(server.Close)
	return svc, client.New(server.URL+artgalley.CollectionPath, 2*time.Second)
}

// rawInventory serves fixed JSON bodies for the list and find routes.
func rawInventory(t *testing.T, listBody, findBody string) *client.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ArtGalley", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listBody))
	})
	mux.HandleFunc("GET /ArtGalley/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(findBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return client.New(server.URL+"/ArtGalley", 2*time.Second)
}

// answer is a Confirmer with a fixed reply that remembers its prompts.
type answer struct {
	ok      bool
	err     error
	prompts []string
}

func (a *answer) Confirm(_ context.Context, prompt string) (bool, error) {
	a.prompts = append(a.prompts, prompt)
	return a.ok, a.err
}

// activityLog collects recorded activity.
type activityLog struct {
	mu      sync.Mutex
	entries []model.Activity
}

func (l *activityLog) recorder() Recorder {
	return func(_ context.Context, a model.Activity) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.entries = append(l.entries, a)
	}
}

func (l *activityLog) all() []model.Activity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Activity(nil), l.entries...)
}

// gatedInventory blocks FindByName and Update calls until released, so tests
// can make responses resolve out of order. Update calls are gated under
// "update <name>".
type gatedInventory struct {
	Inventory
	entered chan string
	gates   map[string]chan struct{}
	mu      sync.Mutex
}

func newGatedInventory(inv Inventory) *gatedInventory {
	return &gatedInventory{Inventory: inv, entered: make(chan string, 8)}
}

func (g *gatedInventory) gate(name string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gates == nil {
		g.gates = make(map[string]chan struct{})
	}
	ch, ok := g.gates[name]
	if !ok {
		ch = make(chan struct{})
		g.gates[name] = ch
	}
	return ch
}

func (g *gatedInventory) FindByName(ctx context.Context, name string) ([]model.Record, error) {
	g.entered <- name
	<-g.gate(name)
	return g.Inventory.FindByName(ctx, name)
}

func (g *gatedInventory) Update(ctx context.Context, name string, rec model.Record) (*client.Response, error) {
	key := "update " + name
	g.entered <- key
	<-g.gate(key)
	return g.Inventory.Update(ctx, name, rec)
}

func requireNoRequests(t *testing.T, svc *artgalley.Service) {
	t.Helper()
	for _, op := range []string{artgalley.OpList, artgalley.OpFind, artgalley.OpCreate, artgalley.OpUpdate, artgalley.OpDelete} {
		require.Zero(t, svc.Calls(op), "unexpected %s request", op)
	}
}
