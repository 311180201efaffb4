package repository

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/transport"
	"github.com/fekuna/omnipos-admin-console/internal/user/dto"
)

type AdminHTTPRepository struct {
	client *transport.Client
}

func NewAdminHTTPRepository(client *transport.Client) *AdminHTTPRepository {
	return &AdminHTTPRepository{client: client}
}

func adminOp(name string) transport.Op {
	return transport.Op{Name: name, Entity: apperr.EntityAdminUser}
}

func (r *AdminHTTPRepository) List(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	if err := r.client.Get(ctx, adminOp("list"), "/users/listAdmin", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AdminHTTPRepository) Create(ctx context.Context, payload *dto.CreateAdminInput) (*model.AdminUser, error) {
	var u model.AdminUser
	if err := r.client.Post(ctx, adminOp("create"), "/users/addUser", payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Remove refuses a zero id before any request is made.
func (r *AdminHTTPRepository) Remove(ctx context.Context, id int64) error {
	if id == 0 {
		return apperr.MissingIdentifier("remove", apperr.EntityAdminUser)
	}
	return r.client.Post(ctx, adminOp("remove"), "/users/removeUser", &dto.RemoveUserInput{ID: id}, nil)
}

type ConsumerHTTPRepository struct {
	client *transport.Client
}

func NewConsumerHTTPRepository(client *transport.Client) *ConsumerHTTPRepository {
	return &ConsumerHTTPRepository{client: client}
}

func (r *ConsumerHTTPRepository) List(ctx context.Context) ([]model.ConsumerUser, error) {
	var users []model.ConsumerUser
	op := transport.Op{Name: "list", Entity: apperr.EntityConsumerUser}
	if err := r.client.Get(ctx, op, "/users/listConsumer", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
