package category

import (
	"context"
	"errors"
	"strings"

	"online-bookstore/internal/domain"
	categoryrepo "online-bookstore/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

type UpsertInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Service) Create(ctx context.Context, in UpsertInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	return s.repo.Create(ctx, categoryrepo.CreateCategoryInput{Name: in.Name, Description: in.Description})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in UpsertInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	return s.repo.Update(ctx, id, categoryrepo.CreateCategoryInput{Name: in.Name, Description: in.Description})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
