package category

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/model"
)

// UseCase is one category listing view.
type UseCase interface {
	ListCategories(ctx context.Context, term string) ([]model.Category, error)
	Categories() []model.Category
	ProductsOf(ctx context.Context, id int64) (*model.CategoryProducts, error)
	Close()
}
