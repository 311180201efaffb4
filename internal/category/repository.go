package category

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/category/dto"
	"github.com/fekuna/omnipos-admin-console/internal/model"
)

type Repository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, payload *dto.CategoryPayload) (*model.Category, error)
	Update(ctx context.Context, id int64, payload *dto.CategoryPayload) (*model.Category, error)
	Search(ctx context.Context, categoryName string) ([]model.Category, error)
	ProductsOf(ctx context.Context, id int64) (*model.CategoryProducts, error)
}
