package form

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/category"
	"github.com/fekuna/omnipos-admin-console/internal/category/dto"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
)

const FieldCategoryName = "categoryName"

type CategorySchema struct {
	repo category.Repository
}

func NewCategorySchema(repo category.Repository) *CategorySchema {
	return &CategorySchema{repo: repo}
}

func (s *CategorySchema) Entity() apperr.Entity { return apperr.EntityCategory }

func (s *CategorySchema) Fields() []string {
	return []string{FieldCategoryName, FieldDescription}
}

func (s *CategorySchema) Defaults() Values { return Values{} }

func (s *CategorySchema) Rules(Mode) map[string]string {
	return map[string]string{FieldCategoryName: "required"}
}

func (s *CategorySchema) Load(ctx context.Context, id int64) (Values, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Values{
		FieldCategoryName: c.CategoryName,
		FieldDescription:  c.Description,
	}, nil
}

func (s *CategorySchema) Normalize(v Values) (*dto.CategoryPayload, error) {
	return &dto.CategoryPayload{
		CategoryName: strings.TrimSpace(v[FieldCategoryName]),
		Description:  v[FieldDescription],
	}, nil
}

func (s *CategorySchema) Create(ctx context.Context, payload *dto.CategoryPayload) (int64, error) {
	c, err := s.repo.Create(ctx, payload)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *CategorySchema) Update(ctx context.Context, id int64, payload *dto.CategoryPayload) error {
	_, err := s.repo.Update(ctx, id, payload)
	return err
}

func NewCategoryForm(schema *CategorySchema, opts Options, log logger.ZapLogger) *Controller[dto.CategoryPayload] {
	return NewController[dto.CategoryPayload](schema, opts, log)
}
