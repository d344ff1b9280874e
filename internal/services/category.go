package services

import (
	"context"

	"github.com/pathforge/roadmap-backend/internal/logger"
	"github.com/pathforge/roadmap-backend/internal/repos"
	"github.com/pathforge/roadmap-backend/internal/types"
)

type CategoryService interface {
	List(ctx context.Context) ([]*types.Category, error)
}

type categoryService struct {
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	return &categoryService{
		log:          log.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
	}
}

func (cs *categoryService) List(ctx context.Context) ([]*types.Category, error) {
	return cs.categoryRepo.List(ctx, nil)
}
