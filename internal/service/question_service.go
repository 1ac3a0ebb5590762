package service

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/trivia-api/config"
	"github.com/lshigami/trivia-api/internal/dto"
	"github.com/lshigami/trivia-api/internal/model"
	"github.com/lshigami/trivia-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	minDifficulty = 1
	maxDifficulty = 5
)

type QuestionService interface {
	// ListQuestions returns one page of questions. Non-positive page or
	// limit fall back to the first page and the configured page size.
	ListQuestions(page, limit int) (*dto.QuestionPageResponse, error)
	DeleteQuestion(id uint) (*dto.DeleteQuestionResponse, error)
	SearchQuestions(term string) (*dto.SearchQuestionsResponse, error)
	CreateQuestion(req dto.QuestionCreateOrSearchRequest) (*dto.CreateQuestionResponse, error)
	GetQuestionsByCategory(categoryID uint) (*dto.CategoryQuestionsResponse, error)
}

type questionService struct {
	repo         repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	pageSize     int
}

func NewQuestionService(repo repository.QuestionRepository, categoryRepo repository.CategoryRepository, cfg *config.Config) QuestionService {
	return &questionService{repo: repo, categoryRepo: categoryRepo, pageSize: cfg.Trivia.QuestionsPerPage}
}

func (s *questionService) ListQuestions(page, limit int) (*dto.QuestionPageResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.pageSize
	}
	if page-1 > math.MaxInt/limit {
		return nil, fmt.Errorf("%w: page %d is out of range", ErrNotProcessable, page)
	}
	offset := (page - 1) * limit

	questions, err := s.repo.FindPage(offset, limit)
	if err != nil {
		log.Error().Err(err).Int("page", page).Int("limit", limit).Msg("Failed to fetch question page")
		return nil, fmt.Errorf("%w: fetching page %d: %w", ErrNotProcessable, page, err)
	}
	// A page past the end is a processing failure, not a 404.
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: page %d has no questions", ErrNotProcessable, page)
	}

	total, err := s.repo.Count()
	if err != nil {
		log.Error().Err(err).Msg("Failed to count questions")
		return nil, fmt.Errorf("%w: counting questions: %w", ErrNotProcessable, err)
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch categories for question page")
		return nil, fmt.Errorf("%w: fetching categories: %w", ErrNotProcessable, err)
	}
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.Type)
	}

	return &dto.QuestionPageResponse{
		Success:         true,
		TotalQuestions:  total,
		Questions:       toQuestionResponses(questions),
		CurrentCategory: nil,
		Categories:      labels,
	}, nil
}

func (s *questionService) DeleteQuestion(id uint) (*dto.DeleteQuestionResponse, error) {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Uint("questionID", id).Msg("Delete requested for missing question")
			return nil, fmt.Errorf("%w: question %d does not exist", ErrNotProcessable, id)
		}
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return nil, fmt.Errorf("%w: deleting question %d: %w", ErrNotProcessable, id, err)
	}
	log.Info().Uint("questionID", id).Msg("Question deleted")
	return &dto.DeleteQuestionResponse{
		Success: true,
		Message: fmt.Sprintf("Question was deleted: %d", id),
	}, nil
}

func (s *questionService) SearchQuestions(term string) (*dto.SearchQuestionsResponse, error) {
	questions, err := s.repo.SearchByText(term)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("Failed to search questions")
		return nil, fmt.Errorf("%w: searching questions: %w", ErrNotProcessable, err)
	}
	return &dto.SearchQuestionsResponse{
		Success:        true,
		StatusCode:     http.StatusOK,
		TotalQuestions: len(questions),
		Questions:      toQuestionResponses(questions),
	}, nil
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateOrSearchRequest) (*dto.CreateQuestionResponse, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrNotProcessable)
	}
	difficulty := int(req.Difficulty)
	if difficulty < minDifficulty || difficulty > maxDifficulty {
		return nil, fmt.Errorf("%w: difficulty must be between %d and %d, got %d", ErrNotProcessable, minDifficulty, maxDifficulty, difficulty)
	}

	var question model.Question
	if err := copier.Copy(&question, &req); err != nil {
		return nil, fmt.Errorf("%w: preparing question: %w", ErrNotProcessable, err)
	}
	question.Category = string(req.Category)
	question.Difficulty = difficulty

	if err := s.repo.Create(&question); err != nil {
		log.Error().Err(err).Interface("request", req).Msg("Failed to create question")
		return nil, fmt.Errorf("%w: creating question: %w", ErrNotProcessable, err)
	}
	log.Info().Uint("questionID", question.ID).Str("category", question.Category).Msg("Question created")
	return &dto.CreateQuestionResponse{Success: true, StatusCode: http.StatusOK}, nil
}

func (s *questionService) GetQuestionsByCategory(categoryID uint) (*dto.CategoryQuestionsResponse, error) {
	category := fmt.Sprint(categoryID)
	questions, err := s.repo.FindByCategory(category)
	if err != nil {
		log.Error().Err(err).Uint("categoryID", categoryID).Msg("Failed to fetch questions by category")
		return nil, fmt.Errorf("%w: fetching category %d: %w", ErrNotProcessable, categoryID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in category %d", ErrNotFound, categoryID)
	}
	return &dto.CategoryQuestionsResponse{
		Success:        true,
		CategoryID:     categoryID,
		TotalQuestions: len(questions),
		Questions:      toQuestionResponses(questions),
	}, nil
}

func toQuestionResponse(q model.Question) dto.QuestionResponse {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, &q); err != nil {
		log.Error().Err(err).Uint("questionID", q.ID).Msg("Failed to copy Question model to QuestionResponse")
	}
	return resp
}

func toQuestionResponses(questions []model.Question) []dto.QuestionResponse {
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, toQuestionResponse(q))
	}
	return resp
}
