package model

import "github.com/shopspring/decimal"

func init() {
	// The backend parses price as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

type StockStatus string

const (
	StockAvailable   StockStatus = "available"
	StockUnavailable StockStatus = "unavailable"
)

func (s StockStatus) Valid() bool {
	return s == StockAvailable || s == StockUnavailable
}

// Toggle flips between available and unavailable. Unknown values become available.
func (s StockStatus) Toggle() StockStatus {
	if s == StockAvailable {
		return StockUnavailable
	}
	return StockAvailable
}

type Product struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"productName"`
	Name        string          `json:"name,omitempty"` // /category/{id}/products uses "name"
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockStatus StockStatus     `json:"stockStatus"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  int64           `json:"categoryId"`
	Category    *Category       `json:"Category,omitempty"` // joined on getEachProduct
}

func (p Product) EntityID() int64 { return p.ID }

// DisplayName returns whichever name field the endpoint populated.
func (p Product) DisplayName() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	return p.Name
}

// WithToggledStock returns a copy with the stock status flipped.
func (p Product) WithToggledStock() Product {
	p.StockStatus = p.StockStatus.Toggle()
	return p
}
