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

type consumerUseCase struct {
	repo   user.ConsumerRepository
	items  *listing.Collection[model.ConsumerUser]
	logger logger.ZapLogger
}

func NewConsumerUseCase(repo user.ConsumerRepository, log logger.ZapLogger) user.ConsumerUseCase {
	return &consumerUseCase{
		repo:   repo,
		items:  listing.New(model.ConsumerUser.WithToggledStatus),
		logger: log,
	}
}

func (uc *consumerUseCase) Load(ctx context.Context) ([]model.ConsumerUser, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load consumers", zap.Error(err))
		return nil, err
	}
	uc.items.ReplaceAll(users)
	return uc.items.Items(), nil
}

func (uc *consumerUseCase) Visible(term string) []model.ConsumerUser {
	return query.Filter(uc.items.Items(), term, func(u model.ConsumerUser) []string {
		return []string{u.UserName, u.Email}
	})
}

func (uc *consumerUseCase) Find(id int64) (model.ConsumerUser, bool) {
	return uc.items.Find(id)
}

func (uc *consumerUseCase) Toggle(id int64) bool {
	ok := uc.items.ApplyToggle(id)
	uc.logger.Debug("Toggled consumer status locally", zap.Int64("user_id", id), zap.Bool("found", ok))
	return ok
}

func (uc *consumerUseCase) Rename(id int64, edit dto.ProfileEdit) bool {
	return uc.items.ApplyPatch(id, func(u model.ConsumerUser) model.ConsumerUser {
		u.UserName = edit.UserName
		u.Email = edit.Email
		return u
	})
}

func (uc *consumerUseCase) Close() {
	uc.items.Close()
}
