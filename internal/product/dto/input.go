package dto

import (
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/shopspring/decimal"
)

// ProductPayload is the persisted shape of a product, already normalized.
type ProductPayload struct {
	ProductName string            `json:"productName"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	StockStatus model.StockStatus `json:"stockStatus"`
	ImageURL    string            `json:"imageUrl"`
	CategoryID  int64             `json:"categoryId"`
}

// UpdateProductInput is the update body: the payload plus its identifier.
type UpdateProductInput struct {
	ID int64 `json:"id"`
	*ProductPayload
}
