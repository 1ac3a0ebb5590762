package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/lshigami/trivia-api/internal/dto"
	"github.com/lshigami/trivia-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizService serves the next question of a quiz round.
type QuizService interface {
	// NextQuestion draws uniformly from the candidate pool: questions in the
	// requested category (any category when none is given) minus the ones
	// already played.
	NextQuestion(req dto.PlayRequest) (*dto.PlayResponse, error)
}

type quizService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	pick         func(n int) int
}

func NewQuizService(questionRepo repository.QuestionRepository, categoryRepo repository.CategoryRepository) QuizService {
	return &quizService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		pick:         rand.Intn,
	}
}

func (s *quizService) NextQuestion(req dto.PlayRequest) (*dto.PlayResponse, error) {
	category := ""
	if req.QuizCategory.ID.IsSet() {
		id, err := req.QuizCategory.ID.Uint()
		if err != nil {
			log.Warn().Err(err).Msg("Play: invalid quiz category")
			return nil, fmt.Errorf("%w: %w", ErrNotProcessable, err)
		}
		if _, err := s.categoryRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn().Uint("categoryID", id).Msg("Play: unknown quiz category")
				return nil, fmt.Errorf("%w: category %d does not exist", ErrNotProcessable, id)
			}
			log.Error().Err(err).Uint("categoryID", id).Msg("Play: failed to look up category")
			return nil, fmt.Errorf("%w: looking up category %d: %w", ErrNotProcessable, id, err)
		}
		category = strconv.FormatUint(uint64(id), 10)
	}

	ids, err := s.questionRepo.FindCandidateIDs(category, req.PreviousQuestions)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("Play: failed to build candidate pool")
		return nil, fmt.Errorf("%w: building candidate pool: %w", ErrNotProcessable, err)
	}
	if len(ids) == 0 {
		log.Info().Str("category", category).Int("previous", len(req.PreviousQuestions)).Msg("Play: candidate pool exhausted")
		return nil, fmt.Errorf("%w: no questions left to play", ErrNotFound)
	}

	chosen := ids[s.pick(len(ids))]
	question, err := s.questionRepo.FindByID(chosen)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted between the pool query and the fetch.
			return nil, fmt.Errorf("%w: question %d disappeared", ErrNotFound, chosen)
		}
		log.Error().Err(err).Uint("questionID", chosen).Msg("Play: failed to fetch chosen question")
		return nil, fmt.Errorf("%w: fetching question %d: %w", ErrNotProcessable, chosen, err)
	}

	return &dto.PlayResponse{Success: true, Question: toQuestionResponse(*question)}, nil
}
