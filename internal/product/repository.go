package product

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
)

type Repository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, payload *dto.ProductPayload) (*model.Product, error)
	Update(ctx context.Context, id int64, payload *dto.ProductPayload) (*model.Product, error)
	Search(ctx context.Context, productName string) ([]model.Product, error)
	Filter(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
}
