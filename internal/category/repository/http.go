package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/category/dto"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
)

type HTTPRepository struct {
	client *transport.Client
}

func NewHTTPRepository(client *transport.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func op(name string) transport.Op {
	return transport.Op{Name: name, Entity: apperr.EntityCategory}
}

func (r *HTTPRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.client.Get(ctx, op("list"), "/category/listCategory", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if id == 0 {
		return nil, apperr.MissingIdentifier("get", apperr.EntityCategory)
	}
	var c model.Category
	if err := r.client.Get(ctx, op("get"), "/category/"+strconv.FormatInt(id, 10), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *HTTPRepository) Create(ctx context.Context, payload *dto.CategoryPayload) (*model.Category, error) {
	var c model.Category
	if err := r.client.Post(ctx, op("create"), "/category/createCategory", payload, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *HTTPRepository) Update(ctx context.Context, id int64, payload *dto.CategoryPayload) (*model.Category, error) {
	if id == 0 {
		return nil, apperr.MissingIdentifier("update", apperr.EntityCategory)
	}
	body := &dto.UpdateCategoryInput{ID: id, CategoryPayload: payload}

	var c model.Category
	if err := r.client.Post(ctx, op("update"), "/category/updateCategoryInfo", body, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *HTTPRepository) Search(ctx context.Context, categoryName string) ([]model.Category, error) {
	var categories []model.Category
	q := url.Values{"categoryName": {categoryName}}
	if err := r.client.Get(ctx, op("search"), "/category/searchCategory", q, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *HTTPRepository) ProductsOf(ctx context.Context, id int64) (*model.CategoryProducts, error) {
	if id == 0 {
		return nil, apperr.MissingIdentifier("list products of", apperr.EntityCategory)
	}
	var out model.CategoryProducts
	if err := r.client.Get(ctx, op("list products of"), "/category/"+strconv.FormatInt(id, 10)+"/products", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
