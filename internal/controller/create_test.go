package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/stockroom/internal/artgalley"
	"github.com/erazemk/stockroom/internal/model"
)

func mouseDraft() model.Draft {
	qty := 10
	price := decimal.RequireFromString("9.99")
	return model.Draft{
		ItemName:     "Mouse",
		Category:     string(model.CategoryElectronics),
		Quantity:     &qty,
		Price:        &price,
		SupplierName: "Logi",
		StockStatus:  string(model.StockIn),
		Featured:     true,
	}
}

func TestCreateSubmitFeatured(t *testing.T) {
	svc, c := setupInventory(t)
	log := &activityLog{}
	cr := NewCreate(c, log.recorder())

	cr.Submit(context.Background(), mouseDraft())

	st := cr.State()
	assert.Equal(t, MsgCreated, st.Message)
	assert.False(t, st.IsError)
	assert.Equal(t, model.EmptyDraft(), st.Draft)

	// The featured list is reloaded exactly once after a successful create.
	assert.Equal(t, 1, svc.Calls(artgalley.OpList))

	var mouse *model.Record
	for i := range st.Featured {
		require.True(t, st.Featured[i].IsFeatured())
		if st.Featured[i].ItemName == "Mouse" {
			mouse = &st.Featured[i]
		}
	}
	require.NotNil(t, mouse, "expected Mouse in featured list")
	assert.Equal(t, model.Flag(1), mouse.FeaturedItem)

	stored, ok := svc.Get("Mouse")
	require.True(t, ok)
	assert.Nil(t, stored.SpecialNote)

	entries := log.all()
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionCreate, entries[0].Action)
	assert.True(t, entries[0].OK)
}

func TestCreateSubmitFailureKeepsDraft(t *testing.T) {
	svc, c := setupInventory(t)
	cr := NewCreate(c, nil)
	svc.FailNext(artgalley.OpCreate, http.StatusInternalServerError)

	d := mouseDraft()
	cr.Submit(context.Background(), d)

	st := cr.State()
	assert.Equal(t, MsgCreateFailed, st.Message)
	assert.True(t, st.IsError)
	assert.Equal(t, d, st.Draft)
	assert.Zero(t, svc.Calls(artgalley.OpList))
}

func TestCreateInvalidDraftSendsNothing(t *testing.T) {
	svc, c := setupInventory(t)
	cr := NewCreate(c, nil)

	d := mouseDraft()
	d.SupplierName = "4242"
	d.Price = nil
	cr.Submit(context.Background(), d)

	st := cr.State()
	assert.True(t, st.IsError)
	assert.Equal(t, MsgFixFields, st.Message)
	assert.Equal(t, "Supplier name must include text", st.FieldErrors["supplier_name"])
	assert.Equal(t, "Price is required", st.FieldErrors["price"])
	requireNoRequests(t, svc)
}

func TestCreateSubmitForm(t *testing.T) {
	svc, c := setupInventory(t)
	cr := NewCreate(c, nil)

	form := map[string]string{
		"item_name":     "Bookshelf",
		"category":      "Furniture",
		"quantity":      "abc",
		"price":         "59.90",
		"supplier_name": "Woodworks",
		"stock_status":  "Low stock",
	}
	cr.SubmitForm(context.Background(), func(k string) string { return form[k] })
	assert.Equal(t, "Quantity must be a number", cr.State().FieldErrors["quantity"])
	assert.Zero(t, svc.Calls(artgalley.OpCreate))

	form["quantity"] = "3"
	cr.SubmitForm(context.Background(), func(k string) string { return form[k] })
	assert.Equal(t, MsgCreated, cr.State().Message)

	stored, ok := svc.Get("Bookshelf")
	require.True(t, ok)
	assert.Equal(t, 3, stored.Quantity)
	assert.False(t, stored.IsFeatured())
}

func TestLoadFeaturedKeepsPreviousOnFailure(t *testing.T) {
	svc, c := setupInventory(t)
	cr := NewCreate(c, nil)
	ctx := context.Background()

	cr.LoadFeatured(ctx)
	before := cr.State().Featured
	require.Len(t, before, 2)

	svc.FailNext(artgalley.OpList, http.StatusServiceUnavailable)
	cr.LoadFeatured(ctx)
	assert.Equal(t, before, cr.State().Featured)
}
