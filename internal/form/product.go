package form

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/category"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
	"github.com/shopspring/decimal"
)

const (
	FieldProductName = "productName"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldStockStatus = "stockStatus"
	FieldImageURL    = "imageUrl"
	FieldCategoryID  = "categoryId"
)

type ProductSchema struct {
	repo       product.Repository
	categories category.Repository

	mu      sync.Mutex
	options []model.Category
}

func NewProductSchema(repo product.Repository, categories category.Repository) *ProductSchema {
	return &ProductSchema{repo: repo, categories: categories}
}

func (s *ProductSchema) Entity() apperr.Entity { return apperr.EntityProduct }

func (s *ProductSchema) Fields() []string {
	return []string{FieldProductName, FieldDescription, FieldPrice, FieldStockStatus, FieldImageURL, FieldCategoryID}
}

func (s *ProductSchema) Defaults() Values {
	return Values{FieldStockStatus: string(model.StockAvailable)}
}

func (s *ProductSchema) Rules(Mode) map[string]string {
	return map[string]string{
		FieldProductName: "required",
		FieldPrice:       "required",
		FieldCategoryID:  "required",
	}
}

func (s *ProductSchema) ImageField() string { return FieldImageURL }

func (s *ProductSchema) Load(ctx context.Context, id int64) (Values, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Values{
		FieldProductName: p.ProductName,
		FieldDescription: p.Description,
		FieldPrice:       p.Price.String(),
		FieldStockStatus: string(p.StockStatus),
		FieldImageURL:    p.ImageURL,
		FieldCategoryID:  formatID(p.CategoryID),
	}, nil
}

// Normalize coerces price and category. A price that does not parse or is
// negative is a validation failure, never a silent zero.
func (s *ProductSchema) Normalize(v Values) (*dto.ProductPayload, error) {
	invalid := map[string]string{}

	price, err := decimal.NewFromString(strings.TrimSpace(v[FieldPrice]))
	switch {
	case err != nil:
		invalid[FieldPrice] = "number"
	case price.IsNegative():
		invalid[FieldPrice] = "gte=0"
	}

	categoryID, err := strconv.ParseInt(strings.TrimSpace(v[FieldCategoryID]), 10, 64)
	if err != nil || categoryID <= 0 {
		invalid[FieldCategoryID] = "number"
	}

	stock := model.StockStatus(strings.TrimSpace(v[FieldStockStatus]))
	if stock == "" {
		stock = model.StockAvailable
	}
	if !stock.Valid() {
		invalid[FieldStockStatus] = "oneof=available unavailable"
	}

	if len(invalid) > 0 {
		return nil, apperr.Validation(apperr.EntityProduct, invalid)
	}
	return &dto.ProductPayload{
		ProductName: strings.TrimSpace(v[FieldProductName]),
		Description: v[FieldDescription],
		Price:       price,
		StockStatus: stock,
		ImageURL:    v[FieldImageURL],
		CategoryID:  categoryID,
	}, nil
}

func (s *ProductSchema) Create(ctx context.Context, payload *dto.ProductPayload) (int64, error) {
	p, err := s.repo.Create(ctx, payload)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *ProductSchema) Update(ctx context.Context, id int64, payload *dto.ProductPayload) error {
	_, err := s.repo.Update(ctx, id, payload)
	return err
}

// LoadCategories fetches the options for the category picker.
func (s *ProductSchema) LoadCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = categories
	return append([]model.Category(nil), categories...), nil
}

func (s *ProductSchema) CategoryOptions() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Category(nil), s.options...)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func NewProductForm(schema *ProductSchema, opts Options, log logger.ZapLogger) *Controller[dto.ProductPayload] {
	return NewController[dto.ProductPayload](schema, opts, log)
}
