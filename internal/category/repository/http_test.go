package repository

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/category/dto"
	"github.com/fekuna/omnipos-admin-console/internal/fakeapi"
	"github.com/stretchr/testify/require"
)

func TestHTTPRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_ThenGetByNewID", func(t *testing.T) {
		_, client := fakeapi.StartTest(t)
		repo := NewHTTPRepository(client)

		created, err := repo.Create(ctx, &dto.CategoryPayload{CategoryName: "Shoes", Description: ""})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Shoes", fetched.CategoryName)
	})

	t.Run("Update_SendsIDInBody", func(t *testing.T) {
		srv, client := fakeapi.StartTest(t)
		srv.SeedDemo()
		repo := NewHTTPRepository(client)

		_, err := repo.Update(ctx, 2, &dto.CategoryPayload{CategoryName: "Handbags", Description: "Leather"})
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, "Handbags", fetched.CategoryName)
		require.Equal(t, "Leather", fetched.Description)
	})

	t.Run("Search_And_List", func(t *testing.T) {
		srv, client := fakeapi.StartTest(t)
		srv.SeedDemo()
		repo := NewHTTPRepository(client)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)

		found, err := repo.Search(ctx, "BAG")
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, int64(2), found[0].ID)
	})

	t.Run("ProductsOf_ReturnsCategoryAndProducts", func(t *testing.T) {
		srv, client := fakeapi.StartTest(t)
		srv.SeedDemo()
		repo := NewHTTPRepository(client)

		out, err := repo.ProductsOf(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "Shoes", out.Category.CategoryName)
		require.Len(t, out.Products, 2)
		require.Equal(t, "Trail Boot", out.Products[0].DisplayName())
	})

	t.Run("GetByID_Unknown", func(t *testing.T) {
		_, client := fakeapi.StartTest(t)
		repo := NewHTTPRepository(client)

		_, err := repo.GetByID(ctx, 77)
		require.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}
