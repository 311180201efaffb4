package user

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/user/dto"
)

type AdminRepository interface {
	List(ctx context.Context) ([]model.AdminUser, error)
	Create(ctx context.Context, payload *dto.CreateAdminInput) (*model.AdminUser, error)
	Remove(ctx context.Context, id int64) error
}

// ConsumerRepository is read-only: the backend exposes no consumer writes.
type ConsumerRepository interface {
	List(ctx context.Context) ([]model.ConsumerUser, error)
}
