package form

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"github.com/fekuna/omnipos-admin-console/internal/model"
	"github.com/fekuna/omnipos-admin-console/internal/user"
	"github.com/fekuna/omnipos-admin-console/internal/user/dto"
)

const (
	FieldUserName = "userName"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// AdminSchema edits admin users through their listing view: the backend
// only creates and removes admins, so edits are local to the view.
type AdminSchema struct {
	view user.AdminUseCase
}

func NewAdminSchema(view user.AdminUseCase) *AdminSchema {
	return &AdminSchema{view: view}
}

func (s *AdminSchema) Entity() apperr.Entity { return apperr.EntityAdminUser }

func (s *AdminSchema) Fields() []string {
	return []string{FieldUserName, FieldEmail, FieldPassword}
}

func (s *AdminSchema) Defaults() Values { return Values{} }

func (s *AdminSchema) Rules(mode Mode) map[string]string {
	rules := map[string]string{
		FieldUserName: "required",
		FieldEmail:    "required",
	}
	if mode == ModeCreate {
		rules[FieldPassword] = "required"
	}
	return rules
}

func (s *AdminSchema) Load(_ context.Context, id int64) (Values, error) {
	u, ok := s.view.Find(id)
	if !ok {
		return nil, apperr.NotFound("get", apperr.EntityAdminUser, nil)
	}
	return Values{
		FieldUserName: u.UserName,
		FieldEmail:    u.Email,
	}, nil
}

func (s *AdminSchema) Normalize(v Values) (*dto.CreateAdminInput, error) {
	return &dto.CreateAdminInput{
		UserName: strings.TrimSpace(v[FieldUserName]),
		Email:    strings.TrimSpace(v[FieldEmail]),
		Password: v[FieldPassword],
		RoleID:   dto.DefaultAdminRoleID,
		Status:   model.UserActive,
	}, nil
}

func (s *AdminSchema) Create(ctx context.Context, payload *dto.CreateAdminInput) (int64, error) {
	u, err := s.view.Add(ctx, payload)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Update renames the listed row. The password is write-only and ignored here.
func (s *AdminSchema) Update(_ context.Context, id int64, payload *dto.CreateAdminInput) error {
	edit := dto.ProfileEdit{UserName: payload.UserName, Email: payload.Email}
	if !s.view.Rename(id, edit) {
		return apperr.NotFound("update", apperr.EntityAdminUser, nil)
	}
	return nil
}

func NewAdminForm(schema *AdminSchema, opts Options, log logger.ZapLogger) *Controller[dto.CreateAdminInput] {
	return NewController[dto.CreateAdminInput](schema, opts, log)
}
