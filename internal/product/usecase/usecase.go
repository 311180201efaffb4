package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-admin-console/internal/listing"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
	"github.com/fekuna/omnipos-admin-console/internal/query"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	items  *listing.Collection[model.Product]
	logger logger.ZapLogger

	mu    sync.Mutex
	query dto.ProductQuery
	seq   uint64
}

func NewProductUseCase(repo product.Repository, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		items:  listing.New(model.Product.WithToggledStock),
		logger: log,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, q *dto.ProductQuery) ([]model.Product, error) {
	if q == nil {
		q = &dto.ProductQuery{}
	}
	uc.mu.Lock()
	uc.query = *q
	uc.seq++
	seq := uc.seq
	uc.mu.Unlock()

	plan := query.Compose(query.Input{
		Term:        q.SearchTerm,
		CategoryID:  q.CategoryID,
		StockStatus: q.StockStatus,
	})

	var (
		products []model.Product
		err      error
	)
	switch plan.Mode {
	case query.ModeSearch:
		products, err = uc.repo.Search(ctx, plan.Term)
	case query.ModeFilter:
		products, err = uc.repo.Filter(ctx, &dto.ProductFilters{
			CategoryID:  plan.CategoryID,
			StockStatus: plan.StockStatus,
		})
	default:
		products, err = uc.repo.List(ctx)
	}
	if err != nil {
		uc.logger.Error("Failed to load products", zap.String("mode", plan.Mode.String()), zap.Error(err))
		return nil, err
	}

	uc.mu.Lock()
	stale := seq != uc.seq
	uc.mu.Unlock()
	if stale {
		uc.logger.Debug("Dropping stale product listing", zap.String("mode", plan.Mode.String()))
		return uc.items.Items(), nil
	}

	uc.items.ReplaceAll(products)
	return uc.items.Items(), nil
}

// ClearFilters drops category and stock filters and reloads the full list.
// The search term is dropped too: the unfiltered list is what gets requested.
func (uc *productUseCase) ClearFilters(ctx context.Context) ([]model.Product, error) {
	return uc.ListProducts(ctx, &dto.ProductQuery{})
}

// Refresh reissues the last query.
func (uc *productUseCase) Refresh(ctx context.Context) ([]model.Product, error) {
	q := uc.Query()
	return uc.ListProducts(ctx, &q)
}

// ToggleStockStatus flips the row locally. The backend has no stock status
// endpoint, so the change lasts until the next fetch.
func (uc *productUseCase) ToggleStockStatus(id int64) bool {
	ok := uc.items.ApplyToggle(id)
	uc.logger.Debug("Toggled stock status locally", zap.Int64("product_id", id), zap.Bool("found", ok))
	return ok
}

func (uc *productUseCase) Products() []model.Product {
	return uc.items.Items()
}

func (uc *productUseCase) Query() dto.ProductQuery {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.query
}

func (uc *productUseCase) Close() {
	uc.items.Close()
}
