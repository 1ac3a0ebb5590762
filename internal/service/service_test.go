package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lshigami/trivia-api/config"
	"github.com/lshigami/trivia-api/internal/dto"
	"github.com/lshigami/trivia-api/internal/model"
	"github.com/lshigami/trivia-api/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{Trivia: config.Trivia{QuestionsPerPage: 10}}
}

// seededStore holds 3 categories and 23 questions: 12 in category 1,
// 11 in category 2, none in category 3.
func seededStore() *repotest.Store {
	store := repotest.NewStore()
	store.AddCategory(1, "Science")
	store.AddCategory(2, "Art")
	store.AddCategory(3, "Geography")
	for i := 1; i <= 23; i++ {
		category := "1"
		if i%2 == 0 {
			category = "2"
		}
		store.AddQuestion(fmt.Sprintf("Question number %d?", i), fmt.Sprintf("Answer %d", i), category, i%5+1)
	}
	return store
}

func newQuestionService(store *repotest.Store) QuestionService {
	return NewQuestionService(store.Questions(), store.Categories(), testConfig())
}

func TestToQuestionResponse(t *testing.T) {
	q := model.Question{ID: 7, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: "4", Difficulty: 2}
	assert.Equal(t, dto.QuestionResponse{
		ID:         7,
		Question:   q.Question,
		Answer:     "Maya Angelou",
		Category:   "4",
		Difficulty: 2,
	}, toQuestionResponse(q))

	assert.Equal(t, []dto.QuestionResponse{}, toQuestionResponses(nil))
}

func TestGetCategories(t *testing.T) {
	store := seededStore()
	resp, err := NewCategoryService(store.Categories()).GetCategories()
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]string{"1": "Science", "2": "Art", "3": "Geography"}, resp.Categories)
}

func TestGetCategoriesStoreFailure(t *testing.T) {
	store := seededStore()
	store.Err = repotest.ErrBroken
	_, err := NewCategoryService(store.Categories()).GetCategories()
	assert.ErrorIs(t, err, ErrNotProcessable)
	assert.ErrorIs(t, err, repotest.ErrBroken)
}

func TestListQuestionsPages(t *testing.T) {
	svc := newQuestionService(seededStore())

	cases := []struct {
		page    int
		wantLen int
		firstID uint
	}{
		{1, 10, 1},
		{2, 10, 11},
		{3, 3, 21},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("page %d", tc.page), func(t *testing.T) {
			resp, err := svc.ListQuestions(tc.page, 0)
			require.NoError(t, err)
			assert.Len(t, resp.Questions, tc.wantLen)
			assert.Equal(t, tc.firstID, resp.Questions[0].ID)
			assert.Equal(t, int64(23), resp.TotalQuestions)
			assert.Nil(t, resp.CurrentCategory)
			assert.Equal(t, []string{"Science", "Art", "Geography"}, resp.Categories)
		})
	}
}

func TestListQuestionsDefaultsAndLimit(t *testing.T) {
	svc := newQuestionService(seededStore())

	resp, err := svc.ListQuestions(0, -1)
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 10)
	assert.Equal(t, uint(1), resp.Questions[0].ID)

	resp, err = svc.ListQuestions(2, 5)
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 5)
	assert.Equal(t, uint(6), resp.Questions[0].ID)
}

func TestListQuestionsPastTheEnd(t *testing.T) {
	svc := newQuestionService(seededStore())
	for _, page := range []int{4, 1000} {
		_, err := svc.ListQuestions(page, 0)
		assert.ErrorIs(t, err, ErrNotProcessable)
	}
}

func TestListQuestionsHugePageDoesNotOverflow(t *testing.T) {
	svc := newQuestionService(seededStore())
	_, err := svc.ListQuestions(int(^uint(0)>>1), 10)
	assert.ErrorIs(t, err, ErrNotProcessable)
}

func TestDeleteQuestion(t *testing.T) {
	store := seededStore()
	svc := newQuestionService(store)

	resp, err := svc.DeleteQuestion(5)
	require.NoError(t, err)
	assert.Equal(t, "Question was deleted: 5", resp.Message)

	_, err = store.Questions().FindByID(5)
	assert.Error(t, err)

	_, err = svc.DeleteQuestion(5)
	assert.ErrorIs(t, err, ErrNotProcessable)

	_, err = svc.DeleteQuestion(1_000_000)
	assert.ErrorIs(t, err, ErrNotProcessable)
}

func TestDeleteQuestionConcurrently(t *testing.T) {
	svc := newQuestionService(seededStore())

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.DeleteQuestion(7)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrNotProcessable)
	}
	assert.Equal(t, 1, succeeded)
}

func TestSearchQuestions(t *testing.T) {
	store := seededStore()
	store.AddQuestion("What is the title of the 1990 fantasy film?", "Edward Scissorhands", "5", 3)
	svc := newQuestionService(store)

	resp, err := svc.SearchQuestions("TITLE")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalQuestions)
	assert.Equal(t, "Edward Scissorhands", resp.Questions[0].Answer)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = svc.SearchQuestions("number 1")
	require.NoError(t, err)
	// 1, 10..19
	assert.Equal(t, 11, resp.TotalQuestions)
}

func TestSearchQuestionsNoMatch(t *testing.T) {
	svc := newQuestionService(seededStore())
	resp, err := svc.SearchQuestions("zebra crossing")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.TotalQuestions)
	assert.NotNil(t, resp.Questions)
	assert.Empty(t, resp.Questions)
}

func TestCreateQuestion(t *testing.T) {
	store := seededStore()
	svc := newQuestionService(store)

	resp, err := svc.CreateQuestion(dto.QuestionCreateOrSearchRequest{
		Question:   "What is the animal for House Hufflepuff?",
		Answer:     "Badger",
		Category:   "7",
		Difficulty: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, &dto.CreateQuestionResponse{Success: true, StatusCode: 200}, resp)

	found, err := store.Questions().SearchByText("hufflepuff")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "7", found[0].Category)
	assert.Equal(t, 5, found[0].Difficulty)
}

func TestCreateQuestionRejectsInvalidInput(t *testing.T) {
	svc := newQuestionService(seededStore())
	cases := map[string]dto.QuestionCreateOrSearchRequest{
		"missing question":   {Answer: "a", Difficulty: 1},
		"missing answer":     {Question: "q", Difficulty: 1},
		"difficulty too low": {Question: "q", Answer: "a", Difficulty: 0},
		"difficulty too big": {Question: "q", Answer: "a", Difficulty: 6},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateQuestion(req)
			assert.ErrorIs(t, err, ErrNotProcessable)
		})
	}
}

func TestCreateQuestionStoreFailure(t *testing.T) {
	store := seededStore()
	store.CreateErr = repotest.ErrBroken
	svc := newQuestionService(store)

	_, err := svc.CreateQuestion(dto.QuestionCreateOrSearchRequest{Question: "q", Answer: "a", Category: "1", Difficulty: 2})
	assert.ErrorIs(t, err, ErrNotProcessable)

	total, err := store.Questions().Count()
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)
}

func TestGetQuestionsByCategory(t *testing.T) {
	svc := newQuestionService(seededStore())

	resp, err := svc.GetQuestionsByCategory(2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), resp.CategoryID)
	assert.Equal(t, 11, resp.TotalQuestions)
	for _, q := range resp.Questions {
		assert.Equal(t, "2", q.Category)
	}

	_, err = svc.GetQuestionsByCategory(3)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetQuestionsByCategory(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuestionWithinCategory(t *testing.T) {
	store := seededStore()
	svc := NewQuizService(store.Questions(), store.Categories())

	for i := 0; i < 50; i++ {
		resp, err := svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "2"}})
		require.NoError(t, err)
		assert.Equal(t, "2", resp.Question.Category)
	}
}

func TestNextQuestionExcludesPrevious(t *testing.T) {
	store := seededStore()
	svc := NewQuizService(store.Questions(), store.Categories())

	previous := []uint{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}
	for i := 0; i < 50; i++ {
		resp, err := svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "2"}, PreviousQuestions: previous})
		require.NoError(t, err)
		assert.Equal(t, uint(22), resp.Question.ID)
	}
}

func TestNextQuestionWithoutCategoryExcludesPrevious(t *testing.T) {
	store := repotest.NewStore()
	first := store.AddQuestion("a?", "a", "1", 1)
	second := store.AddQuestion("b?", "b", "2", 1)
	svc := NewQuizService(store.Questions(), store.Categories())

	resp, err := svc.NextQuestion(dto.PlayRequest{PreviousQuestions: []uint{first}})
	require.NoError(t, err)
	assert.Equal(t, second, resp.Question.ID)

	_, err = svc.NextQuestion(dto.PlayRequest{PreviousQuestions: []uint{first, second}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuestionPoolExhausted(t *testing.T) {
	store := seededStore()
	svc := NewQuizService(store.Questions(), store.Categories())

	all, err := store.Questions().FindByCategory("1")
	require.NoError(t, err)
	var previous []uint
	for _, q := range all {
		previous = append(previous, q.ID)
	}

	_, err = svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "1"}, PreviousQuestions: previous})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "3"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuestionUnknownCategory(t *testing.T) {
	store := seededStore()
	svc := NewQuizService(store.Questions(), store.Categories())

	_, err := svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "9999"}})
	assert.ErrorIs(t, err, ErrNotProcessable)

	_, err = svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "history"}})
	assert.ErrorIs(t, err, ErrNotProcessable)
}

func TestNextQuestionEmptyStore(t *testing.T) {
	store := repotest.NewStore()
	svc := NewQuizService(store.Questions(), store.Categories())
	_, err := svc.NextQuestion(dto.PlayRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextQuestionUsesPicker(t *testing.T) {
	store := seededStore()
	svc := NewQuizService(store.Questions(), store.Categories()).(*quizService)

	var seen []int
	svc.pick = func(n int) int {
		seen = append(seen, n)
		return n - 1
	}
	resp, err := svc.NextQuestion(dto.PlayRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int{23}, seen)
	assert.Equal(t, uint(23), resp.Question.ID)
}

func TestNextQuestionCoversPool(t *testing.T) {
	store := repotest.NewStore()
	store.AddCategory(1, "Science")
	ids := map[uint]bool{}
	for i := 0; i < 3; i++ {
		ids[store.AddQuestion(fmt.Sprintf("q%d", i), "a", "1", 1)] = false
	}
	svc := NewQuizService(store.Questions(), store.Categories())

	for i := 0; i < 300; i++ {
		resp, err := svc.NextQuestion(dto.PlayRequest{QuizCategory: dto.QuizCategory{ID: "1"}})
		require.NoError(t, err)
		ids[resp.Question.ID] = true
	}
	for id, drawn := range ids {
		assert.True(t, drawn, "question %d never drawn", id)
	}
}
