package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/fakeapi"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv *fakeapi.Server
	out *bytes.Buffer
	err *bytes.Buffer
	cfg *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := fakeapi.New(fakeapi.Config{Prefix: "/api", URLPrefix: "http://cdn.test/uploads"}, logger.NewNop())
	srv.SeedDemo()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	cfg := config.LoadEnv()
	cfg.API.BaseURL = ts.URL
	cfg.API.Prefix = "/api"
	cfg.API.Timeout = 5 * time.Second
	cfg.Upload.ProgressTick = time.Millisecond
	cfg.Form.ProductSuccessDelay = 0
	cfg.Form.CategorySuccessDelay = 0

	return &harness{srv: srv, out: &bytes.Buffer{}, err: &bytes.Buffer{}, cfg: cfg}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.err.Reset()
	a := newApp(h.cfg, logger.NewNop(), h.out, h.err)
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err != nil {
		a.printError(err)
	}
	return err
}

func TestConsole(t *testing.T) {
	t.Run("ProductsList_Search", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.run("products", "list", "--search", "boot", "--category", "2"))

		require.Contains(t, h.out.String(), "Trail Boot")
		require.NotContains(t, h.out.String(), "Leather Tote")
		require.Zero(t, h.srv.CallCount("/products/filter"))
	})

	t.Run("ProductsCreate_ResolvesCategoryNameAndUploads", func(t *testing.T) {
		h := newHarness(t)
		img := filepath.Join(t.TempDir(), "boot.png")
		require.NoError(t, os.WriteFile(img, []byte("\x89PNG boot"), 0o600))

		require.NoError(t, h.run("products", "create",
			"--name", "Rain Boot", "--price", "25.50", "--category", "shoes", "--image", img))

		require.Contains(t, h.out.String(), "created")
		require.Contains(t, h.out.String(), "Rain Boot")
		require.Equal(t, 1, h.srv.CallCount("/upload"))
		require.Equal(t, 1, h.srv.CallCount("/category/listCategory"))
		require.Contains(t, h.err.String(), "100%")
	})

	t.Run("ProductsCreate_ValidationPrintsFields", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("products", "create", "--name", "Rain Boot")

		require.Error(t, err)
		require.Contains(t, h.err.String(), "All required fields must be filled in")
		require.Contains(t, h.err.String(), "price: required")
		require.Zero(t, h.srv.CallCount("/products/addProducts"))
	})

	t.Run("ProductsUpdate_OnlyChangedFields", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.run("products", "update", "3", "--stock", "unavailable"))

		p, ok := h.srv.Product(3)
		require.True(t, ok)
		require.Equal(t, "unavailable", string(p.StockStatus))
		require.Equal(t, "Trail Boot", p.ProductName)
		require.Equal(t, "Waterproof", p.Description)
	})

	t.Run("CategoriesCreate_And_Products", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.run("categories", "create", "--name", "Hats"))
		require.Contains(t, h.out.String(), "created")

		require.NoError(t, h.run("categories", "products", "1"))
		require.Contains(t, h.out.String(), "Shoes")
		require.Contains(t, h.out.String(), "Canvas Sneaker")
	})

	t.Run("AdminsRemove_MissingUser", func(t *testing.T) {
		h := newHarness(t)

		require.Error(t, h.run("admins", "remove", "99"))
		require.NoError(t, h.run("admins", "remove", "6"))
		require.NotContains(t, h.out.String(), "dara@shop.test")
	})

	t.Run("ConsumersList_Search", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.run("consumers", "list", "-s", "guest"))
		require.Contains(t, h.out.String(), "guest@mail.test")
		require.NotContains(t, h.out.String(), "vannak")
	})
}
