package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/product/dto"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
)

type HTTPRepository struct {
	client *transport.Client
}

func NewHTTPRepository(client *transport.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func op(name string) transport.Op {
	return transport.Op{Name: name, Entity: apperr.EntityProduct}
}

func (r *HTTPRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.client.Get(ctx, op("list"), "/products/listProducts", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *HTTPRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id == 0 {
		return nil, apperr.MissingIdentifier("get", apperr.EntityProduct)
	}
	var p model.Product
	if err := r.client.Get(ctx, op("get"), "/products/getEachProduct/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepository) Create(ctx context.Context, payload *dto.ProductPayload) (*model.Product, error) {
	var p model.Product
	if err := r.client.Post(ctx, op("create"), "/products/addProducts", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepository) Update(ctx context.Context, id int64, payload *dto.ProductPayload) (*model.Product, error) {
	if id == 0 {
		return nil, apperr.MissingIdentifier("update", apperr.EntityProduct)
	}
	body := &dto.UpdateProductInput{ID: id, ProductPayload: payload}

	var p model.Product
	// The misspelled path is the backend's.
	if err := r.client.Post(ctx, op("update"), "/products/updateProdct", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepository) Search(ctx context.Context, productName string) ([]model.Product, error) {
	var products []model.Product
	q := url.Values{"productName": {productName}}
	if err := r.client.Get(ctx, op("search"), "/products/searchProduct", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *HTTPRepository) Filter(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	q := url.Values{}
	if f.CategoryID != 0 {
		q.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.StockStatus != "" {
		q.Set("stockStatus", string(f.StockStatus))
	}

	var products []model.Product
	if err := r.client.Get(ctx, op("filter"), "/products/filter", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}
