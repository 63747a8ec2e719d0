package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one inventory item as exchanged with the remote service.
// ItemName is the natural key used by lookup, update and delete routes.
type Record struct {
	ItemID       int64       `json:"item_id,omitempty"`
	ItemName     string      `json:"item_name"`
	Category     Category    `json:"category"`
	Quantity     int         `json:"quantity"`
	Price        Price       `json:"price"`
	SupplierName string      `json:"supplier_name"`
	StockStatus  StockStatus `json:"stock_status"`
	FeaturedItem Flag        `json:"featured_item"`
	SpecialNote  *string     `json:"special_note"`
}

// IsFeatured reports whether the record is flagged for promotional display.
func (r Record) IsFeatured() bool {
	return r.FeaturedItem == 1
}

// Note returns the special note or an empty string.
func (r Record) Note() string {
	if r.SpecialNote == nil {
		return ""
	}
	return *r.SpecialNote
}

// Category of an inventory record.
type Category string

// Categories.
const (
	CategoryElectronics   Category = "Electronics"
	CategoryFurniture     Category = "Furniture"
	CategoryClothing      Category = "Clothing"
	CategoryTools         Category = "Tools"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryFurniture,
	CategoryClothing,
	CategoryTools,
	CategoryMiscellaneous,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StockStatus of an inventory record.
type StockStatus string

// Stock statuses.
const (
	StockIn  StockStatus = "In stock"
	StockLow StockStatus = "Low stock"
	StockOut StockStatus = "Out of stock"
)

// StockStatuses lists every stock status in display order.
var StockStatuses = []StockStatus{StockIn, StockLow, StockOut}

// Valid reports whether s is one of the known stock statuses.
func (s StockStatus) Valid() bool {
	for _, known := range StockStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Price is a non-float money amount. It is sent to the service as a JSON
// number and accepts either a number or a numeric string on receipt.
type Price struct {
	decimal.Decimal
}

// NewPrice parses a price such as "9.99".
func NewPrice(s string) (Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{}, err
	}
	return Price{d}, nil
}

// MarshalJSON encodes the price as a bare JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// Flag is the server's integer featured flag. It always holds exactly 0 or 1.
type Flag int

// FlagFromBool converts a toggle state into a Flag.
func FlagFromBool(b bool) Flag {
	if b {
		return 1
	}
	return 0
}

// MarshalJSON encodes the flag as 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f != 0 {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts numbers, booleans, numeric or boolean-like strings
// and null, and normalizes them to 0 or 1.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = NormalizeFlag(raw)
	return nil
}

// NormalizeFlag maps a loosely typed featured value to 0 or 1.
func NormalizeFlag(v any) Flag {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		return FlagFromBool(t)
	case float64:
		return FlagFromBool(t != 0)
	case int:
		return FlagFromBool(t != 0)
	case Flag:
		return FlagFromBool(t != 0)
	case json.Number:
		n, err := t.Float64()
		return FlagFromBool(err == nil && n != 0)
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "true", "yes", "on":
			return 1
		case "", "false", "no", "off":
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		return FlagFromBool(err == nil && n != 0)
	default:
		return 0
	}
}
