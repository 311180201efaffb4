package usecase

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/category"
	"github.com/fekuna/omnipos-admin-console/internal/listing"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/query"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	items  *listing.Collection[model.Category]
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		items:  listing.New[model.Category](nil),
		logger: log,
	}
}

// ListCategories searches by name, or lists everything for a blank term.
func (uc *categoryUseCase) ListCategories(ctx context.Context, term string) ([]model.Category, error) {
	plan := query.ComposeSearch(term)

	var (
		categories []model.Category
		err        error
	)
	if plan.Mode == query.ModeSearch {
		categories, err = uc.repo.Search(ctx, plan.Term)
	} else {
		categories, err = uc.repo.List(ctx)
	}
	if err != nil {
		uc.logger.Error("Failed to load categories", zap.String("mode", plan.Mode.String()), zap.Error(err))
		return nil, err
	}

	uc.items.ReplaceAll(categories)
	return uc.items.Items(), nil
}

func (uc *categoryUseCase) Categories() []model.Category {
	return uc.items.Items()
}

func (uc *categoryUseCase) ProductsOf(ctx context.Context, id int64) (*model.CategoryProducts, error) {
	if id == 0 {
		return nil, apperr.MissingIdentifier("list products of", apperr.EntityCategory)
	}
	out, err := uc.repo.ProductsOf(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to load category products", zap.Int64("category_id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (uc *categoryUseCase) Close() {
	uc.items.Close()
}
