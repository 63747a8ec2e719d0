package artgalley

import "github.com/erazemk/stockroom/internal/model"

// SampleRecords returns the records the fake-api command starts with.
func SampleRecords() []model.Record {
	note := "Display model, do not sell"
	return []model.Record{
		{
			ItemName:     ProtectedName,
			Category:     model.CategoryElectronics,
			Quantity:     5,
			Price:        mustPrice("1499.99"),
			SupplierName: "Tech World",
			StockStatus:  model.StockIn,
			FeaturedItem: 1,
			SpecialNote:  &note,
		},
		{
			ItemName:     "Office Chair",
			Category:     model.CategoryFurniture,
			Quantity:     2,
			Price:        mustPrice("249.50"),
			SupplierName: "Seat Co",
			StockStatus:  model.StockLow,
		},
		{
			ItemName:     "Rain Jacket",
			Category:     model.CategoryClothing,
			Quantity:     0,
			Price:        mustPrice("89.00"),
			SupplierName: "Outdoor Supply",
			StockStatus:  model.StockOut,
		},
		{
			ItemName:     "Cordless Drill",
			Category:     model.CategoryTools,
			Quantity:     12,
			Price:        mustPrice("129.95"),
			SupplierName: "Build Right",
			StockStatus:  model.StockIn,
			FeaturedItem: 1,
		},
	}
}

func mustPrice(s string) model.Price {
	p, err := model.NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}
