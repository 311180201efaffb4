package user

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/user/dto"
)

// AdminUseCase is the admin user listing view.
type AdminUseCase interface {
	Load(ctx context.Context) ([]model.AdminUser, error)
	Visible(term string) []model.AdminUser
	Find(id int64) (model.AdminUser, bool)
	Toggle(id int64) bool
	Remove(ctx context.Context, id int64) error
	Add(ctx context.Context, input *dto.CreateAdminInput) (*model.AdminUser, error)
	Rename(id int64, edit dto.ProfileEdit) bool
	Close()
}

// ConsumerUseCase is the consumer listing view. Consumers cannot be
// deleted from the console.
type ConsumerUseCase interface {
	Load(ctx context.Context) ([]model.ConsumerUser, error)
	Visible(term string) []model.ConsumerUser
	Find(id int64) (model.ConsumerUser, bool)
	Toggle(id int64) bool
	Rename(id int64, edit dto.ProfileEdit) bool
	Close()
}
