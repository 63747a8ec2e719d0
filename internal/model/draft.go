package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Draft is the in-progress create form. Quantity and Price stay nil until
// the user fills them in.
type Draft struct {
	ItemName     string           `json:"item_name" validate:"notblank"`
	Category     string           `json:"category" validate:"required,oneof=Electronics Furniture Clothing Tools Miscellaneous"`
	Quantity     *int             `json:"quantity" validate:"required,gte=0"`
	Price        *decimal.Decimal `json:"price" validate:"required,nonnegative"`
	SupplierName string           `json:"supplier_name" validate:"notblank,hastext"`
	StockStatus  string           `json:"stock_status" validate:"required,oneof='In stock' 'Low stock' 'Out of stock'"`
	Featured     bool             `json:"featured"`
	SpecialNote  string           `json:"special_note"`
}

// EmptyDraft returns the blank form shape.
func EmptyDraft() Draft {
	return Draft{}
}

// Record maps the draft to the server shape: numeric quantity and price, a
// 0/1 featured flag and a null special note when blank.
func (d Draft) Record() Record {
	rec := Record{
		ItemName:     strings.TrimSpace(d.ItemName),
		Category:     Category(d.Category),
		SupplierName: strings.TrimSpace(d.SupplierName),
		StockStatus:  StockStatus(d.StockStatus),
		FeaturedItem: FlagFromBool(d.Featured),
	}
	if d.Quantity != nil {
		rec.Quantity = *d.Quantity
	}
	if d.Price != nil {
		rec.Price = Price{*d.Price}
	}
	if note := strings.TrimSpace(d.SpecialNote); note != "" {
		rec.SpecialNote = &note
	}
	return rec
}

// DraftFromForm builds a draft from raw form values. Blank numeric fields
// stay nil; non-numeric ones are reported as validation errors.
func DraftFromForm(get func(string) string) (Draft, error) {
	d := Draft{
		ItemName:     get("item_name"),
		Category:     get("category"),
		SupplierName: get("supplier_name"),
		StockStatus:  get("stock_status"),
		Featured:     isChecked(get("featured")),
		SpecialNote:  get("special_note"),
	}

	var errs ValidationErrors
	if s := strings.TrimSpace(get("quantity")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, &ValidationError{Field: "quantity", Message: "Quantity must be a number"})
		} else {
			d.Quantity = &n
		}
	}
	if s := strings.TrimSpace(get("price")); s != "" {
		p, err := decimal.NewFromString(s)
		if err != nil {
			errs = append(errs, &ValidationError{Field: "price", Message: "Price must be a number"})
		} else {
			d.Price = &p
		}
	}
	if len(errs) > 0 {
		return d, errs
	}
	return d, nil
}

// RecordForm is the textual edit of a loaded record. Quantity and Price are
// kept as typed so that non-numeric input can be rejected.
type RecordForm struct {
	ItemName     string
	Category     string
	Quantity     string
	Price        string
	SupplierName string
	StockStatus  string
	Featured     bool
	SpecialNote  string
}

// FormFromRecord fills an edit form with the record's current values.
func FormFromRecord(r Record) RecordForm {
	return RecordForm{
		ItemName:     r.ItemName,
		Category:     string(r.Category),
		Quantity:     strconv.Itoa(r.Quantity),
		Price:        r.Price.String(),
		SupplierName: r.SupplierName,
		StockStatus:  string(r.StockStatus),
		Featured:     r.IsFeatured(),
		SpecialNote:  r.Note(),
	}
}

// RecordFormFromValues reads an edit form from raw form values.
func RecordFormFromValues(get func(string) string) RecordForm {
	return RecordForm{
		ItemName:     get("item_name"),
		Category:     get("category"),
		Quantity:     get("quantity"),
		Price:        get("price"),
		SupplierName: get("supplier_name"),
		StockStatus:  get("stock_status"),
		Featured:     isChecked(get("featured")),
		SpecialNote:  get("special_note"),
	}
}

// Apply validates the form and returns base with the edits applied. The
// item ID of base is preserved.
func (f RecordForm) Apply(base Record) (Record, error) {
	supplier := strings.TrimSpace(f.SupplierName)
	if supplier == "" {
		return base, &ValidationError{Field: "supplier_name", Message: "Supplier name is required"}
	}
	if IsNumericOnly(supplier) {
		return base, &ValidationError{Field: "supplier_name", Message: "Supplier name must include text"}
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		return base, &ValidationError{Field: "quantity", Message: "Quantity must be a number"}
	}
	price, err := NewPrice(f.Price)
	if err != nil {
		return base, &ValidationError{Field: "price", Message: "Price must be a number"}
	}
	if quantity < 0 || price.IsNegative() {
		return base, &ValidationError{Field: "quantity", Message: "Quantity and price cannot be negative"}
	}

	rec := base
	if name := strings.TrimSpace(f.ItemName); name != "" {
		rec.ItemName = name
	}
	if c := Category(f.Category); c != "" {
		if !c.Valid() {
			return base, &ValidationError{Field: "category", Message: "Choose a valid category"}
		}
		rec.Category = c
	}
	if s := StockStatus(f.StockStatus); s != "" {
		if !s.Valid() {
			return base, &ValidationError{Field: "stock_status", Message: "Choose a valid stock status"}
		}
		rec.StockStatus = s
	}
	rec.Quantity = quantity
	rec.Price = price
	rec.SupplierName = supplier
	rec.FeaturedItem = FlagFromBool(f.Featured)
	rec.SpecialNote = nil
	if note := strings.TrimSpace(f.SpecialNote); note != "" {
		rec.SpecialNote = &note
	}
	return rec, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
