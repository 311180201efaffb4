package usecase

import (
	"context"

	"github.com/fekuna/omnipos-admin-console/internal/listing"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/query"
	"github.com/fekuna/omnipos-admin-console/internal/user"
	"github.com/fekuna/omnipos-admin-console/internal/user/dto"
	"go.uber.org/zap"
)

type adminUseCase struct {
	repo   user.AdminRepository
	items  *listing.Collection[model.AdminUser]
	logger logger.ZapLogger
}

func NewAdminUseCase(repo user.AdminRepository, log logger.ZapLogger) user.AdminUseCase {
	return &adminUseCase{
		repo:   repo,
		items:  listing.New(model.AdminUser.WithToggledStatus),
		logger: log,
	}
}

func (uc *adminUseCase) Load(ctx context.Context) ([]model.AdminUser, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load admin users", zap.Error(err))
		return nil, err
	}
	uc.items.ReplaceAll(users)
	return uc.items.Items(), nil
}

// Visible narrows the loaded rows by name or email. There is no admin
// search endpoint.
func (uc *adminUseCase) Visible(term string) []model.AdminUser {
	return query.Filter(uc.items.Items(), term, func(u model.AdminUser) []string {
		return []string{u.UserName, u.Email}
	})
}

func (uc *adminUseCase) Find(id int64) (model.AdminUser, bool) {
	return uc.items.Find(id)
}

// Toggle flips the status locally only; the next Load restores server truth.
func (uc *adminUseCase) Toggle(id int64) bool {
	ok := uc.items.ApplyToggle(id)
	uc.logger.Debug("Toggled admin status locally", zap.Int64("user_id", id), zap.Bool("found", ok))
	return ok
}

func (uc *adminUseCase) Remove(ctx context.Context, id int64) error {
	if err := uc.items.ApplyRemoval(ctx, id, uc.repo.Remove); err != nil {
		uc.logger.Error("Failed to remove admin user", zap.Int64("user_id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("Removed admin user", zap.Int64("user_id", id))
	return nil
}

// Add creates an active admin with the default role and appends it to the view.
func (uc *adminUseCase) Add(ctx context.Context, input *dto.CreateAdminInput) (*model.AdminUser, error) {
	body := *input
	if body.RoleID == 0 {
		body.RoleID = dto.DefaultAdminRoleID
	}
	body.Status = model.UserActive

	u, err := uc.repo.Create(ctx, &body)
	if err != nil {
		uc.logger.Error("Failed to create admin user", zap.String("email", body.Email), zap.Error(err))
		return nil, err
	}
	uc.items.Append(*u)
	return u, nil
}

// Rename applies a local name and email edit. Nothing is sent to the backend.
func (uc *adminUseCase) Rename(id int64, edit dto.ProfileEdit) bool {
	return uc.items.ApplyPatch(id, func(u model.AdminUser) model.AdminUser {
		u.UserName = edit.UserName
		u.Email = edit.Email
		return u
	})
}

func (uc *adminUseCase) Close() {
	uc.items.Close()
}
