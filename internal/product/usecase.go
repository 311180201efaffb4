package product

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
)

// UseCase is one product listing view. Each view owns its rows.
type UseCase interface {
	ListProducts(ctx context.Context, q *dto.ProductQuery) ([]model.Product, error)
	ClearFilters(ctx context.Context) ([]model.Product, error)
	Refresh(ctx context.Context) ([]model.Product, error)
	ToggleStockStatus(id int64) bool
	Products() []model.Product
	Query() dto.ProductQuery
	Close()
}
