package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/fekuna/omnipos-admin-console/internal/fakeapi"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
	"github.com/fekuna/omnipos-admin-console/internal/product/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T) (*fakeapi.Server, product.UseCase) {
	t.Helper()
	srv, client := fakeapi.StartTest(t)
	srv.SeedCategories(model.Category{ID: 10, CategoryName: "Shoes"})
	srv.SeedProducts(
		model.Product{ID: 1, ProductName: "Boot", Price: decimal.NewFromInt(50), StockStatus: model.StockAvailable, CategoryID: 10},
		model.Product{ID: 2, ProductName: "Sandal", Price: decimal.NewFromInt(20), StockStatus: model.StockAvailable, CategoryID: 10},
		model.Product{ID: 3, ProductName: "Sneaker", Price: decimal.NewFromInt(35), StockStatus: model.StockUnavailable, CategoryID: 10},
	)
	srv.ResetCalls()
	return srv, NewProductUseCase(repository.NewHTTPRepository(client), logger.NewNop())
}

func TestProductUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("ListProducts_SearchWinsOverFilters", func(t *testing.T) {
		srv, uc := newView(t)

		products, err := uc.ListProducts(ctx, &dto.ProductQuery{
			SearchTerm:  "  san ",
			CategoryID:  10,
			StockStatus: model.StockUnavailable,
		})

		require.NoError(t, err)
		require.Len(t, products, 1)
		require.Equal(t, 1, srv.CallCount("/products/searchProduct"))
		require.Zero(t, srv.CallCount("/products/filter"))
		require.Equal(t, "productName=san", srv.Calls()[0].Query)
	})

	t.Run("ListProducts_NothingSetListsAll", func(t *testing.T) {
		srv, uc := newView(t)

		products, err := uc.ListProducts(ctx, &dto.ProductQuery{SearchTerm: "   "})

		require.NoError(t, err)
		require.Len(t, products, 3)
		require.Equal(t, []fakeapi.Call{{Method: http.MethodGet, Path: "/products/listProducts"}}, srv.Calls())
	})

	t.Run("ListProducts_FilterSendsOnlySetFilters", func(t *testing.T) {
		srv, uc := newView(t)

		products, err := uc.ListProducts(ctx, &dto.ProductQuery{StockStatus: model.StockAvailable})

		require.NoError(t, err)
		require.Len(t, products, 2)
		require.Equal(t, "stockStatus=available", srv.Calls()[0].Query)
	})

	t.Run("ClearFilters_RequestsUnfilteredList", func(t *testing.T) {
		srv, uc := newView(t)
		_, err := uc.ListProducts(ctx, &dto.ProductQuery{CategoryID: 10, StockStatus: model.StockUnavailable})
		require.NoError(t, err)
		require.Len(t, uc.Products(), 1)

		products, err := uc.ClearFilters(ctx)

		require.NoError(t, err)
		require.Len(t, products, 3)
		calls := srv.Calls()
		require.Len(t, calls, 2)
		require.Equal(t, "/products/listProducts", calls[1].Path)
		require.Empty(t, calls[1].Query)
		require.Equal(t, dto.ProductQuery{}, uc.Query())
	})

	t.Run("ToggleThenRefresh_ServerTruthWins", func(t *testing.T) {
		_, uc := newView(t)
		_, err := uc.ListProducts(ctx, nil)
		require.NoError(t, err)

		require.True(t, uc.ToggleStockStatus(2))
		require.Equal(t, model.StockUnavailable, uc.Products()[1].StockStatus)

		products, err := uc.Refresh(ctx)
		require.NoError(t, err)
		require.Equal(t, model.StockAvailable, products[1].StockStatus)
	})

	t.Run("ListProducts_FailureKeepsRows", func(t *testing.T) {
		srv, uc := newView(t)
		_, err := uc.ListProducts(ctx, nil)
		require.NoError(t, err)

		srv.Fail(fakeapi.RouteSearchProducts, http.StatusInternalServerError)
		_, err = uc.ListProducts(ctx, &dto.ProductQuery{SearchTerm: "boot"})

		require.Error(t, err)
		require.Len(t, uc.Products(), 3)
	})

	t.Run("Close_LateFetchIsInert", func(t *testing.T) {
		srv, uc := newView(t)
		release := srv.Hold(fakeapi.RouteListProducts)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = uc.ListProducts(ctx, nil)
		}()
		require.Eventually(t, func() bool { return srv.CallCount("/products/listProducts") == 1 }, time.Second, time.Millisecond)
		uc.Close()
		release()
		<-done

		require.Empty(t, uc.Products())
	})
}
