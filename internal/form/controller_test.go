package form

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	categoryRepo "github.com/fekuna/omnipos-admin-console/internal/category/repository"
	"github.com/fekuna/omnipos-admin-console/internal/fakeapi"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
	productRepo "github.com/fekuna/omnipos-admin-console/internal/product/repository"
	"github.com/fekuna/omnipos-admin-console/internal/upload"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var boot = upload.File{Name: "boot.png", ContentType: "image/png", Data: []byte("\x89PNG boot")}

type productFixture struct {
	srv      *fakeapi.Server
	schema   *ProductSchema
	pipeline *upload.Pipeline
	form     *Controller[dto.ProductPayload]
	done     chan struct{}
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	srv, client := fakeapi.StartTest(t)
	srv.SeedDemo()
	srv.SeedProducts(model.Product{
		ID:          20,
		ProductName: "Suede Loafer",
		Price:       decimal.RequireFromString("60"),
		StockStatus: model.StockAvailable,
		ImageURL:    "http://cdn.test/uploads/old.png",
		CategoryID:  1,
	})
	srv.ResetCalls()

	log := logger.NewNop()
	pipeline := upload.NewPipeline(&config.UploadConfig{
		ProgressFloor:   10,
		ProgressStep:    10,
		ProgressCeiling: 90,
		ProgressTick:    time.Millisecond,
	}, upload.NewHTTPUploader(client, "image"), log)

	f := &productFixture{
		srv:      srv,
		schema:   NewProductSchema(productRepo.NewHTTPRepository(client), categoryRepo.NewHTTPRepository(client)),
		pipeline: pipeline,
		done:     make(chan struct{}, 1),
	}
	f.form = NewProductForm(f.schema, Options{
		Pipeline:     pipeline,
		SuccessDelay: 5 * time.Millisecond,
		OnDone:       func() { f.done <- struct{}{} },
	}, log)
	return f
}

func (f *productFixture) fill(t *testing.T, values Values) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, f.form.Set(k, v))
	}
}

func TestProductForm(t *testing.T) {
	ctx := context.Background()

	t.Run("EnterCreate_DefaultsStockToAvailable", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()

		d := f.form.Draft()
		require.Equal(t, Editing, d.State)
		require.Equal(t, "available", d.Values[FieldStockStatus])
		require.Equal(t, "", d.Values[FieldPrice])
		require.NotContains(t, d.Values, FieldImageURL)
		require.Empty(t, f.srv.Calls())
	})

	t.Run("Submit_MissingRequiredFieldsIssuesNoCalls", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "", FieldCategoryID: ""})

		err := f.form.Submit(ctx)

		ae, ok := apperr.As(err)
		require.True(t, ok)
		require.Equal(t, apperr.KindValidation, ae.Kind)
		require.Equal(t, map[string]string{FieldPrice: "required", FieldCategoryID: "required"}, ae.Fields)
		require.Empty(t, f.srv.Calls())
		require.Equal(t, Editing, f.form.State())
	})

	t.Run("Submit_NegativePriceIsValidationFailure", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "-1", FieldCategoryID: "1"})

		err := f.form.Submit(ctx)

		require.True(t, apperr.Is(err, apperr.KindValidation))
		require.Empty(t, f.srv.Calls())
	})

	t.Run("Submit_UnparseablePriceIsValidationFailure", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "abc", FieldCategoryID: "1"})

		err := f.form.Submit(ctx)

		ae, ok := apperr.As(err)
		require.True(t, ok)
		require.Equal(t, "number", ae.Fields[FieldPrice])
		require.Empty(t, f.srv.Calls())
	})

	t.Run("Set_UnknownFieldRejected", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()

		require.ErrorIs(t, f.form.Set("id", "3"), ErrUnknownField)
		require.ErrorIs(t, f.form.Set(FieldImageURL, "x"), ErrImageField)
		require.NotContains(t, f.form.Draft().Values, "id")
	})

	t.Run("Set_ChangesOnlyOneField", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldDescription: "Warm"})

		require.NoError(t, f.form.Set(FieldDescription, "Dry"))

		d := f.form.Draft()
		require.Equal(t, "Boot", d.Values[FieldProductName])
		require.Equal(t, "Dry", d.Values[FieldDescription])
	})

	t.Run("Submit_CreateRoutesToCreateAfterEditSession", func(t *testing.T) {
		f := newProductFixture(t)
		require.NoError(t, f.form.EnterEdit(ctx, 3))
		f.form.EnterCreate()
		_ = f.form.Set("id", "3")
		f.fill(t, Values{FieldProductName: "Rain Boot", FieldPrice: "25.50", FieldCategoryID: "1"})

		require.NoError(t, f.form.Submit(ctx))

		require.Equal(t, 1, f.srv.CallCount("/products/addProducts"))
		require.Zero(t, f.srv.CallCount("/products/updateProdct"))
		d := f.form.Draft()
		require.Equal(t, Succeeded, d.State)
		created, ok := f.srv.Product(d.CreatedID)
		require.True(t, ok)
		require.True(t, created.Price.Equal(decimal.RequireFromString("25.5")))
		require.Equal(t, int64(1), created.CategoryID)
	})

	t.Run("EnterEdit_SeedsFieldsAndUpdates", func(t *testing.T) {
		f := newProductFixture(t)

		require.NoError(t, f.form.EnterEdit(ctx, 3))
		d := f.form.Draft()
		require.Equal(t, ModeEdit, d.Mode)
		require.Equal(t, "Trail Boot", d.Values[FieldProductName])
		require.Equal(t, "89.9", d.Values[FieldPrice])
		require.Equal(t, "1", d.Values[FieldCategoryID])
		require.Equal(t, upload.Empty, d.Image)

		require.NoError(t, f.form.Set(FieldPrice, "79"))
		require.NoError(t, f.form.Submit(ctx))

		require.Equal(t, 1, f.srv.CallCount("/products/updateProdct"))
		p, _ := f.srv.Product(3)
		require.True(t, p.Price.Equal(decimal.NewFromInt(79)))
		require.Equal(t, "Waterproof", p.Description)
	})

	t.Run("Submit_ReusesExistingImageWithoutUpload", func(t *testing.T) {
		f := newProductFixture(t)
		require.NoError(t, f.form.EnterEdit(ctx, 20))
		require.Equal(t, upload.Resolved, f.form.Draft().Image)

		require.NoError(t, f.form.Submit(ctx))

		require.Zero(t, f.srv.CallCount("/upload"))
		p, _ := f.srv.Product(20)
		require.Equal(t, "http://cdn.test/uploads/old.png", p.ImageURL)
	})

	t.Run("Submit_UploadsStagedImageFirst", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})
		require.NoError(t, f.form.SelectImage(boot))

		require.NoError(t, f.form.Submit(ctx))

		calls := f.srv.Calls()
		require.Len(t, calls, 2)
		require.Equal(t, "/upload", calls[0].Path)
		require.Equal(t, "/products/addProducts", calls[1].Path)
		p, _ := f.srv.Product(f.form.Draft().CreatedID)
		require.Contains(t, p.ImageURL, "http://cdn.test/uploads/")
		require.Equal(t, 100, f.form.Draft().Progress)
	})

	t.Run("Submit_UploadFailureKeepsDraft", func(t *testing.T) {
		f := newProductFixture(t)
		f.srv.Fail(fakeapi.RouteUpload, http.StatusInternalServerError)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})
		require.NoError(t, f.form.SelectImage(boot))
		before := f.form.Draft().Values

		err := f.form.Submit(ctx)

		require.True(t, apperr.Is(err, apperr.KindUpload))
		d := f.form.Draft()
		require.Equal(t, Editing, d.State)
		require.Equal(t, before, d.Values)
		require.Equal(t, upload.PreviewReady, d.Image)
		require.Zero(t, f.srv.CallCount("/products/addProducts"))

		f.srv.Recover(fakeapi.RouteUpload)
		require.NoError(t, f.form.Submit(ctx))
		require.Equal(t, 1, f.srv.CallCount("/products/addProducts"))
	})

	t.Run("Submit_UploadThenClearPersistsNoImage", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})
		require.NoError(t, f.form.SelectImage(boot))
		require.NoError(t, f.pipeline.AwaitPreview(ctx))
		_, err := f.pipeline.Upload(ctx)
		require.NoError(t, err)

		require.NoError(t, f.form.ClearImage())
		require.NoError(t, f.form.Submit(ctx))

		p, ok := f.srv.Product(f.form.Draft().CreatedID)
		require.True(t, ok)
		require.Empty(t, p.ImageURL)
	})

	t.Run("Submit_RepositoryFailureReturnsToEditing", func(t *testing.T) {
		f := newProductFixture(t)
		f.srv.Fail(fakeapi.RouteAddProduct, http.StatusInternalServerError)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})

		err := f.form.Submit(ctx)

		require.True(t, apperr.Is(err, apperr.KindNetwork))
		d := f.form.Draft()
		require.Equal(t, Failed, d.State)
		require.Equal(t, "failed to create product", d.Reason)
		require.Equal(t, "Boot", d.Values[FieldProductName])

		require.NoError(t, f.form.Set(FieldDescription, "retry"))
		require.Equal(t, Editing, f.form.State())
	})

	t.Run("Submit_UpdateFailureReason", func(t *testing.T) {
		f := newProductFixture(t)
		f.srv.Fail(fakeapi.RouteUpdateProduct, http.StatusBadGateway)
		require.NoError(t, f.form.EnterEdit(ctx, 3))

		require.Error(t, f.form.Submit(ctx))
		require.Equal(t, "failed to update product", f.form.Draft().Reason)
	})

	t.Run("Submit_WhileSubmittingIsNoop", func(t *testing.T) {
		f := newProductFixture(t)
		release := f.srv.Hold(fakeapi.RouteAddProduct)
		defer release()
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})

		errc := make(chan error, 1)
		go func() { errc <- f.form.Submit(ctx) }()
		require.Eventually(t, func() bool { return f.srv.CallCount("/products/addProducts") == 1 }, time.Second, time.Millisecond)

		require.ErrorIs(t, f.form.Submit(ctx), ErrSubmitInProgress)
		require.ErrorIs(t, f.form.Set(FieldProductName, "x"), ErrSubmitInProgress)

		release()
		require.NoError(t, <-errc)
		require.Equal(t, 1, f.srv.CallCount("/products/addProducts"))
	})

	t.Run("Submit_SuccessCallsOnDoneAfterDelay", func(t *testing.T) {
		f := newProductFixture(t)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})

		require.NoError(t, f.form.Submit(ctx))

		select {
		case <-f.done:
		case <-time.After(time.Second):
			t.Fatal("OnDone was not called")
		}
	})

	t.Run("Discard_LateSubmitIsInert", func(t *testing.T) {
		f := newProductFixture(t)
		release := f.srv.Hold(fakeapi.RouteAddProduct)
		f.form.EnterCreate()
		f.fill(t, Values{FieldProductName: "Boot", FieldPrice: "10", FieldCategoryID: "2"})

		errc := make(chan error, 1)
		go func() { errc <- f.form.Submit(ctx) }()
		require.Eventually(t, func() bool { return f.srv.CallCount("/products/addProducts") == 1 }, time.Second, time.Millisecond)

		f.form.Discard()
		release()

		require.ErrorIs(t, <-errc, ErrDiscarded)
		require.Equal(t, Idle, f.form.State())
		select {
		case <-f.done:
			t.Fatal("OnDone fired for a discarded session")
		case <-time.After(20 * time.Millisecond):
		}
	})

	t.Run("EnterEdit_LoadFailureReturnsToIdle", func(t *testing.T) {
		f := newProductFixture(t)

		err := f.form.EnterEdit(ctx, 999)

		require.True(t, apperr.Is(err, apperr.KindNotFound))
		d := f.form.Draft()
		require.Equal(t, Idle, d.State)
		require.Equal(t, "failed to fetch product", d.Reason)
		require.ErrorIs(t, f.form.Submit(ctx), ErrNotEditing)
	})

	t.Run("LoadCategories_FillsOptions", func(t *testing.T) {
		f := newProductFixture(t)

		categories, err := f.schema.LoadCategories(ctx)

		require.NoError(t, err)
		require.Len(t, categories, 2)
		require.Equal(t, categories, f.schema.CategoryOptions())
	})
}
