package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateLookupName(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"", "Enter name to search"},
		{"   ", "Enter name to search"},
		{"42", "Name must include text"},
		{" 007 ", "Name must include text"},
		{"Laptop", ""},
		{"Model 42", ""},
		{"4K TV", ""},
	}

	for _, tt := range tests {
		err := ValidateLookupName(tt.name, "search")
		if tt.wantMsg == "" {
			if err != nil {
				t.Errorf("ValidateLookupName(%q) = %v, want nil", tt.name, err)
			}
			continue
		}
		if err == nil || err.Error() != tt.wantMsg {
			t.Errorf("ValidateLookupName(%q) = %v, want %q", tt.name, err, tt.wantMsg)
		}
	}
}

func TestValidateDraft(t *testing.T) {
	qty := 5
	price := decimal.RequireFromString("1499.99")
	valid := Draft{
		ItemName:     "Laptop",
		Category:     "Electronics",
		Quantity:     &qty,
		Price:        &price,
		SupplierName: "Tech World",
		StockStatus:  "In stock",
	}
	if err := ValidateDraft(valid); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	zero := 0
	withZero := valid
	withZero.Quantity = &zero
	if err := ValidateDraft(withZero); err != nil {
		t.Errorf("expected zero quantity to be valid, got %v", err)
	}

	err := ValidateDraft(EmptyDraft())
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	msgs := verrs.Messages()
	for _, field := range []string{"item_name", "category", "quantity", "price", "supplier_name", "stock_status"} {
		if msgs[field] == "" {
			t.Errorf("expected a message for %s", field)
		}
	}

	neg := -1
	bad := valid
	bad.Quantity = &neg
	bad.SupplierName = "12345"
	bad.StockStatus = "Plenty"
	err = ValidateDraft(bad)
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	msgs = verrs.Messages()
	if _, ok := msgs["price"]; ok {
		t.Errorf("unexpected price message %q", msgs["price"])
	}
	if msgs["quantity"] != "Quantity cannot be negative" {
		t.Errorf("unexpected quantity message %q", msgs["quantity"])
	}
	if msgs["supplier_name"] != "Supplier name must include text" {
		t.Errorf("unexpected supplier message %q", msgs["supplier_name"])
	}
	if msgs["stock_status"] != "Choose a valid stock status" {
		t.Errorf("unexpected stock status message %q", msgs["stock_status"])
	}
}

func TestValidateDraftPrice(t *testing.T) {
	qty := 1
	d := Draft{
		ItemName:     "Cable",
		Category:     "Electronics",
		Quantity:     &qty,
		SupplierName: "Tech World",
		StockStatus:  "In stock",
	}

	free := decimal.Zero
	d.Price = &free
	if err := ValidateDraft(d); err != nil {
		t.Errorf("expected zero price to be valid, got %v", err)
	}

	neg := decimal.RequireFromString("-0.01")
	d.Price = &neg
	var verrs ValidationErrors
	if !errors.As(ValidateDraft(d), &verrs) {
		t.Fatal("expected ValidationErrors for negative price")
	}
	if msg := verrs.Messages()["price"]; msg != "Price cannot be negative" {
		t.Errorf("unexpected price message %q", msg)
	}
}

func TestDraftFromForm(t *testing.T) {
	values := map[string]string{
		"item_name":     "Mouse",
		"quantity":      "10",
		"price":         "",
		"featured":      "on",
		"supplier_name": "Logi",
	}
	d, err := DraftFromForm(func(k string) string { return values[k] })
	if err != nil {
		t.Fatalf("DraftFromForm: %v", err)
	}
	if d.Quantity == nil || *d.Quantity != 10 {
		t.Errorf("expected quantity 10, got %v", d.Quantity)
	}
	if d.Price != nil {
		t.Errorf("expected nil price for blank input, got %v", *d.Price)
	}
	if !d.Featured {
		t.Error("expected featured to be set")
	}

	values["price"] = "0.10"
	d, err = DraftFromForm(func(k string) string { return values[k] })
	if err != nil {
		t.Fatalf("DraftFromForm: %v", err)
	}
	if d.Price == nil || d.Price.String() != "0.1" {
		t.Errorf("expected exact price 0.1, got %v", d.Price)
	}

	values["price"] = "ten"
	_, err = DraftFromForm(func(k string) string { return values[k] })
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || verrs.Messages()["price"] != "Price must be a number" {
		t.Errorf("expected price error, got %v", err)
	}
}
