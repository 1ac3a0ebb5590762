package service

import (
	"fmt"
	"strconv"

	"github.com/lshigami/trivia-api/internal/dto"
	"github.com/lshigami/trivia-api/internal/repository"
	"github.com/rs/zerolog/log"
)

type CategoryService interface {
	GetCategories() (*dto.CategoriesResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetCategories() (*dto.CategoriesResponse, error) {
	categories, err := s.repo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories from repository")
		return nil, fmt.Errorf("%w: fetching categories: %w", ErrNotProcessable, err)
	}

	byID := make(map[string]string, len(categories))
	for _, c := range categories {
		byID[strconv.FormatUint(uint64(c.ID), 10)] = c.Type
	}
	return &dto.CategoriesResponse{Success: true, Categories: byID}, nil
}
