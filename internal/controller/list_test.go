package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/stockroom/internal/artgalley"
	"github.com/erazemk/stockroom/internal/client"
)

func TestListActivate(t *testing.T) {
	svc, c := setupInventory(t)
	l := NewList(c)
	require.True(t, l.State().Loading)

	l.Activate(context.Background())

	st := l.State()
	assert.False(t, st.Loading)
	assert.Len(t, st.All, len(artgalley.SampleRecords()))
	assert.Equal(t, st.All, st.Displayed)
	assert.Equal(t, 1, svc.Calls(artgalley.OpList))
}

func TestListActivateFailure(t *testing.T) {
	svc, c := setupInventory(t)
	svc.FailNext(artgalley.OpList, http.StatusInternalServerError)

	l := NewList(c)
	l.Activate(context.Background())

	st := l.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.All)
	assert.Empty(t, st.Displayed)

	var terr *client.TransportError
	require.True(t, errors.As(st.LoadErr, &terr))
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)

	// A later successful load clears the error.
	l.Activate(context.Background())
	st = l.State()
	assert.NoError(t, st.LoadErr)
	assert.NotEmpty(t, st.Displayed)
}

func TestListSearchAndReset(t *testing.T) {
	svc, c := setupInventory(t)
	ctx := context.Background()
	l := NewList(c)
	l.Activate(ctx)

	l.Search(ctx, "drill")
	st := l.State()
	require.Len(t, st.Displayed, 1)
	assert.Equal(t, "Cordless Drill", st.Displayed[0].ItemName)
	assert.Equal(t, "drill", st.SearchTerm)

	l.Search(ctx, "submarine")
	assert.Empty(t, l.State().Displayed)

	// Blank search is a local reset.
	calls := svc.Calls(artgalley.OpFind)
	l.Search(ctx, "   ")
	assert.Equal(t, calls, svc.Calls(artgalley.OpFind))
	assert.Len(t, l.State().Displayed, len(artgalley.SampleRecords()))

	l.Search(ctx, "chair")
	l.Reset()
	st = l.State()
	assert.Empty(t, st.SearchTerm)
	assert.Equal(t, st.All, st.Displayed)
	assert.Equal(t, calls+1, svc.Calls(artgalley.OpFind))
}

func TestListSearchFailureShowsEmpty(t *testing.T) {
	svc, c := setupInventory(t)
	ctx := context.Background()
	l := NewList(c)
	l.Activate(ctx)

	svc.FailNext(artgalley.OpFind, http.StatusBadGateway)
	l.Search(ctx, "chair")

	st := l.State()
	assert.NotNil(t, st.Displayed)
	assert.Empty(t, st.Displayed)
	assert.Len(t, st.All, len(artgalley.SampleRecords()))
}

func TestListDropsStaleSearch(t *testing.T) {
	_, c := setupInventory(t)
	gated := newGatedInventory(c)
	l := NewList(gated)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		l.Search(ctx, "chair")
		close(done)
	}()

	require.Equal(t, "chair", <-gated.entered)

	// Let the newer search finish first, then release the older one.
	close(gated.gate("drill"))
	l.Search(ctx, "drill")
	close(gated.gate("chair"))
	<-done

	st := l.State()
	require.Len(t, st.Displayed, 1)
	assert.Equal(t, "Cordless Drill", st.Displayed[0].ItemName)
}
